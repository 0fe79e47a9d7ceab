package models

// FilePayload is an inline attachment on an inbound send frame. Data is the
// base64-encoded content, with or without a data-URL prefix.
type FilePayload struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// SendFrame is the inbound wire frame: {recipient, text?, file?}.
type SendFrame struct {
	Recipient string       `json:"recipient"`
	Text      string       `json:"text"`
	File      *FilePayload `json:"file"`
}

// RosterEntry is one authenticated online identity.
type RosterEntry struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// RosterFrame is pushed to every connection whenever membership changes.
type RosterFrame struct {
	Online []RosterEntry `json:"online"`
}

// MessageFrame is the relayed message push. File is null when the message
// carries no attachment; ID is the store-assigned message ID.
type MessageFrame struct {
	Text      string  `json:"text"`
	Recipient string  `json:"recipient"`
	File      *string `json:"file"`
	ID        uint    `json:"_id"`
}
