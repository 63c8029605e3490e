package models

import "time"

type ConnectionStatus string

const (
	Connected    ConnectionStatus = "connected"
	Disconnected ConnectionStatus = "disconnected"
)

// ConnectionState is derived from poll outcomes only.
type ConnectionState struct {
	Status    ConnectionStatus `json:"status"`
	ChangedAt time.Time        `json:"changed_at"` // zero until the first transition
}

// IsConnected reports whether the last processed poll succeeded.
func (s ConnectionState) IsConnected() bool {
	return s.Status == Connected
}
