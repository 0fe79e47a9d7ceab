package chathub

import (
	"encoding/json"
	"log/slog"
	"time"

	"relaychat/backend/internal/models"
	"relaychat/backend/internal/storage"
)

// LivenessConfig carries the per-connection heartbeat timings.
type LivenessConfig struct {
	ProbeInterval time.Duration
	AckWindow     time.Duration
}

// Default timings: probe every 5s, evict after a 1s silent window.
const (
	DefaultProbeInterval = 5 * time.Second
	DefaultAckWindow     = 1 * time.Second
)

func (c LivenessConfig) withDefaults() LivenessConfig {
	if c.ProbeInterval <= 0 {
		c.ProbeInterval = DefaultProbeInterval
	}
	if c.AckWindow <= 0 {
		c.AckWindow = DefaultAckWindow
	}
	return c
}

// Hub owns the connection registry and coordinates presence broadcasts and
// message relaying. There is one Hub per server process.
type Hub struct {
	Registry *Registry
	Storage  storage.Storage
	Files    storage.AttachmentStore
	Liveness LivenessConfig
}

func NewHub(s storage.Storage, files storage.AttachmentStore, liveness LivenessConfig) *Hub {
	return &Hub{
		Registry: NewRegistry(),
		Storage:  s,
		Files:    files,
		Liveness: liveness.withDefaults(),
	}
}

// Join registers a connection and announces the updated roster. Pass empty
// identity fields for a connection whose credential did not verify; it still
// receives roster pushes but cannot send.
func (h *Hub) Join(c Client, userID, username string) {
	h.Registry.Add(c)
	if userID != "" {
		if err := h.Registry.SetIdentity(c, userID, username); err != nil {
			slog.Error("failed to bind connection identity", "user_id", userID, "error", err)
		}
	}
	h.Announce()
}

// Leave removes a connection and, if it was still registered, announces the
// shrunken roster. Liveness timeout and transport close may both land here;
// only the first caller triggers a broadcast.
func (h *Hub) Leave(c Client) {
	if h.Registry.Remove(c) {
		h.Announce()
	}
}

// Announce pushes the current roster to every registered connection,
// including anonymous ones and whichever connection triggered the change.
// The frame is serialized once and every connection gets identical bytes.
func (h *Hub) Announce() {
	frame, err := json.Marshal(models.RosterFrame{Online: h.Registry.Roster()})
	if err != nil {
		slog.Error("failed to encode roster frame", "error", err)
		return
	}
	h.Registry.ForEach(func(c Client) {
		c.Send(frame)
	})
}
