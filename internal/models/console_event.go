package models

import "time"

// Console event types.
const (
	EventConnected        = "CONNECTED"
	EventDisconnected     = "DISCONNECTED"
	EventSessionOpened    = "SESSION_OPENED"
	EventSessionClosed    = "SESSION_CLOSED"
	EventConfigLoaded     = "CONFIG_LOADED"
	EventConfigLoadFailed = "CONFIG_LOAD_FAILED"
	EventConfigSaved      = "CONFIG_SAVED"
	EventConfigSaveFailed = "CONFIG_SAVE_FAILED"
)

// ConsoleEvent is a single entry of the operator audit log.
type ConsoleEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // CONNECTED | DISCONNECTED | SESSION_* | CONFIG_*
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
