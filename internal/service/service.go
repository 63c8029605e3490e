package service

import (
	"context"

	"geiger_console/internal/models"
	"geiger_console/internal/repository"
)

// Dashboard exposes the live telemetry view.
type Dashboard interface {
	Current() DashboardView
}

// ConfigEditor drives the settings page: session lifecycle, form edits and save.
type ConfigEditor interface {
	Open(ctx context.Context) (FormView, error)
	Close()
	Save(ctx context.Context) (FormView, error)
	Edit(changes map[string]any) (FormView, error)
	ToggleSection(id string) (FormView, error)
	Reset() FormView
	View() FormView
	IsOpen() bool
	Lease() models.HeartbeatLease
}

// DeviceInfo exposes static device facts.
type DeviceInfo interface {
	Version(ctx context.Context) string
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ConsoleEvent, error)
}

// Service aggregates everything the HTTP layer needs.
type Service struct {
	Dashboard
	ConfigEditor
	DeviceInfo
	EventLog
}

func NewService(repos *repository.Repository, dashboard Dashboard, editor ConfigEditor, device DeviceInfo) *Service {
	return &Service{
		Dashboard:    dashboard,
		ConfigEditor: editor,
		DeviceInfo:   device,
		EventLog:     NewEventLogService(repos.EventRepo),
	}
}
