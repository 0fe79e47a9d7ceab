package models

import "time"

// Message is a persisted chat message between two users. The store assigns
// ID and CreatedAt on creation; rows are immutable afterwards.
//
// JSON tags follow the history endpoint contract: clients key off `_id`,
// `sender`, `recipient`, `text` and `file`.
type Message struct {
	ID uint `gorm:"primaryKey" json:"_id"`
	// SenderID is always the authenticated identity of the sending
	// connection, never a client-supplied value.
	SenderID    string `gorm:"type:text;not null;index:idx_participants" json:"sender"`
	RecipientID string `gorm:"type:text;not null;index:idx_participants" json:"recipient"`
	// Text and File are each optional, but at least one is present.
	Text string `gorm:"type:text" json:"text"`
	// File is the stored attachment name, empty when the message has none.
	File      string    `gorm:"type:text" json:"file,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
