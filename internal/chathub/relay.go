package chathub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"time"

	"relaychat/backend/internal/models"
)

// HandleFrame validates an inbound frame from connection c, persists the
// message (and its attachment, if any) and forwards it to every live
// connection of the recipient. Invalid frames are dropped without closing
// the connection; store failures are scoped to this one message.
func (h *Hub) HandleFrame(c Client, raw []byte) {
	senderID, _, ok := h.Registry.Identity(c)
	if !ok {
		slog.Warn("dropping frame from unauthenticated connection")
		return
	}

	var frame models.SendFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		slog.Warn("dropping malformed frame", "sender", senderID, "error", err)
		return
	}
	if frame.Recipient == "" || (frame.Text == "" && frame.File == nil) {
		return
	}

	var storedName string
	if frame.File != nil {
		name, err := h.storeAttachment(frame.File)
		if err != nil {
			slog.Error("failed to store attachment",
				"sender", senderID, "name", frame.File.Name, "error", err)
			if frame.Text == "" {
				// The file was the whole payload; nothing left to deliver.
				return
			}
			// Deliver the text without a dangling attachment reference.
		} else {
			storedName = name
		}
	}

	msg := &models.Message{
		SenderID:    senderID,
		RecipientID: frame.Recipient,
		Text:        frame.Text,
		File:        storedName,
	}
	if err := h.Storage.SaveMessage(msg); err != nil {
		return
	}

	var fileRef *string
	if msg.File != "" {
		fileRef = &msg.File
	}
	out, err := json.Marshal(models.MessageFrame{
		Text:      msg.Text,
		Recipient: msg.RecipientID,
		File:      fileRef,
		ID:        msg.ID,
	})
	if err != nil {
		slog.Error("failed to encode message frame", "message_id", msg.ID, "error", err)
		return
	}

	// Multi-device fan-out: every live connection of the recipient gets the
	// same payload. The sender gets no echo.
	for _, rc := range h.Registry.FindByUserID(msg.RecipientID) {
		rc.Send(out)
	}
}

// storeAttachment decodes the inline payload and writes it to the attachment
// store under a timestamp-derived name that keeps the original extension.
func (h *Hub) storeAttachment(file *models.FilePayload) (string, error) {
	data := file.Data
	// Browser clients send data URLs ("data:image/png;base64,...").
	if i := strings.Index(data, "base64,"); i >= 0 {
		data = data[i+len("base64,"):]
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode attachment data: %w", err)
	}

	name := storedName(file.Name)
	contentType := mime.TypeByExtension(name[strings.LastIndex(name, "."):])
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := h.Files.Write(context.Background(), name, contentType, decoded); err != nil {
		return "", err
	}
	return name, nil
}

// storedName derives the stored filename from the original one: a unix-milli
// timestamp with the original extension kept.
func storedName(original string) string {
	parts := strings.Split(original, ".")
	ext := parts[len(parts)-1]
	return fmt.Sprintf("%d.%s", time.Now().UnixMilli(), ext)
}
