package service

import (
	"time"

	"geiger_console/internal/models"
)

// TelemetryView is a snapshot formatted for display.
type TelemetryView struct {
	DoseRate    string    `json:"dose_rate"` // µSv/h, 3 decimals
	CPM         string    `json:"cpm"`
	Counts      string    `json:"counts"`
	HVError     bool      `json:"hv_error"`
	EnvVisible  bool      `json:"env_visible"`
	Temperature string    `json:"temperature,omitempty"`
	Humidity    string    `json:"humidity,omitempty"`
	Pressure    string    `json:"pressure,omitempty"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version,omitempty"`
	ReceivedAt  time.Time `json:"received_at"`
}

// DashboardView is what a freshly connected presenter needs to draw the page.
type DashboardView struct {
	Telemetry  *TelemetryView         `json:"telemetry,omitempty"` // nil before the first snapshot
	Connection models.ConnectionState `json:"connection"`
	LastUpdate string                 `json:"last_update"`
}

// RenderSink receives plain data from the poller and the connection tracker.
// Implementations must not block: they are called while the caller holds its
// state lock.
type RenderSink interface {
	RenderTelemetry(view TelemetryView)
	RenderConnection(state models.ConnectionState)
}

// MultiSink fans every render out to all sinks in order.
type MultiSink []RenderSink

func (m MultiSink) RenderTelemetry(view TelemetryView) {
	for _, s := range m {
		s.RenderTelemetry(view)
	}
}

func (m MultiSink) RenderConnection(state models.ConnectionState) {
	for _, s := range m {
		s.RenderConnection(state)
	}
}

// NopSink discards renders.
type NopSink struct{}

func (NopSink) RenderTelemetry(TelemetryView)          {}
func (NopSink) RenderConnection(models.ConnectionState) {}
