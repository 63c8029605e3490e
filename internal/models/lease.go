package models

import "time"

// HeartbeatLease mirrors the device-side "suppress ticking" lease.
type HeartbeatLease struct {
	Active      bool      `json:"active"`
	StartedAt   time.Time `json:"started_at,omitempty"`
	LastRenewal time.Time `json:"last_renewal,omitempty"`
}
