package models

import "time"

// StatusReport is the body of the device's GET /status endpoint.
type StatusReport struct {
	DoseUSvh    float64  `json:"dose_uSvh"`
	CPM         float64  `json:"cpm"`
	Counts      float64  `json:"counts"`
	HVError     bool     `json:"hv_error"`
	HasTHP      bool     `json:"has_thp"`
	Temperature *float64 `json:"temperature,omitempty"` // °C
	Humidity    *float64 `json:"humidity,omitempty"`    // %
	Pressure    *float64 `json:"pressure,omitempty"`    // hPa
	UptimeS     int64    `json:"uptime_s"`
	Version     string   `json:"version,omitempty"`
}

// Environment is the optional temperature/humidity/pressure triple.
type Environment struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Pressure    *float64 `json:"pressure,omitempty"`
}

// TelemetrySnapshot is one self-contained reading. A newer snapshot replaces
// the previous one entirely; nothing is merged.
type TelemetrySnapshot struct {
	DoseRate      float64      `json:"dose_uSvh"`
	CPM           float64      `json:"cpm"`
	Counts        float64      `json:"counts"`
	HVError       bool         `json:"hv_error"`
	Environment   *Environment `json:"environment,omitempty"` // nil unless the device reports has_thp
	UptimeSeconds int64        `json:"uptime_s"`
	Version       string       `json:"version,omitempty"`
	ReceivedAt    time.Time    `json:"received_at"`
}

// NewTelemetrySnapshot tags a decoded report with its receipt time.
func NewTelemetrySnapshot(r StatusReport, receivedAt time.Time) TelemetrySnapshot {
	s := TelemetrySnapshot{
		DoseRate:      r.DoseUSvh,
		CPM:           r.CPM,
		Counts:        r.Counts,
		HVError:       r.HVError,
		UptimeSeconds: r.UptimeS,
		Version:       r.Version,
		ReceivedAt:    receivedAt,
	}
	if r.HasTHP {
		s.Environment = &Environment{
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
			Pressure:    r.Pressure,
		}
	}
	return s
}

// HasEnvironment reports whether the snapshot carries environmental data.
func (s TelemetrySnapshot) HasEnvironment() bool {
	return s.Environment != nil
}
