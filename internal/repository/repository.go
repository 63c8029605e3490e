package repository

import (
	"context"
	"database/sql"
	"time"

	"geiger_console/internal/models"
)

// EventRepo stores the operator audit log. Telemetry is never written here.
type EventRepo interface {
	Append(ctx context.Context, e models.ConsoleEvent) error
	List(ctx context.Context, from, to time.Time, typ string, limit int) ([]models.ConsoleEvent, error)
}

type Repository struct {
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EventRepo: NewEventSQLite(db),
	}
}
