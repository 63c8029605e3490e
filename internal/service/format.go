package service

import (
	"fmt"
	"strconv"
	"time"

	"geiger_console/internal/models"
)

const (
	missingValue   = "-"
	neverUpdated   = "Never"
	justUpdated    = "Just updated"
	unknownVersion = "Unknown"
)

// FormatTelemetry renders a snapshot the way the dashboard displays it.
func FormatTelemetry(s models.TelemetrySnapshot) TelemetryView {
	v := TelemetryView{
		DoseRate:   formatFixed(s.DoseRate, 3),
		CPM:        formatFixed(s.CPM, 1),
		Counts:     formatFixed(s.Counts, 0),
		HVError:    s.HVError,
		EnvVisible: s.HasEnvironment(),
		Uptime:     FormatUptime(s.UptimeSeconds),
		Version:    s.Version,
		ReceivedAt: s.ReceivedAt,
	}
	if env := s.Environment; env != nil {
		v.Temperature = formatOptional(env.Temperature, 1)
		v.Humidity = formatOptional(env.Humidity, 1)
		v.Pressure = formatOptional(env.Pressure, 1)
	}
	return v
}

// FormatUptime keeps the two most significant units: "2d 3h 4m", "1h 2m",
// "5m 10s" or "42s".
func FormatUptime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// LastUpdateText describes how long ago the last snapshot arrived.
func LastUpdateText(receivedAt, now time.Time) string {
	if receivedAt.IsZero() {
		return neverUpdated
	}
	diff := int64(now.Sub(receivedAt) / time.Second)
	if diff <= 0 {
		return justUpdated
	}
	return fmt.Sprintf("Updated %ds ago", diff)
}

func formatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func formatOptional(v *float64, decimals int) string {
	if v == nil {
		return missingValue
	}
	return formatFixed(*v, decimals)
}
