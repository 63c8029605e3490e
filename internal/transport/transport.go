// Package transport talks to the MultiGeiger's status/config endpoints.
package transport

import (
	"context"
	"errors"
	"fmt"

	"geiger_console/internal/models"
)

// Endpoint paths relative to the device API base URL.
const (
	PathStatus = "/status"
	PathConfig = "/config"
	PathPing   = "/config/ping"
)

// Operation names used in errors and logs.
const (
	OpFetchStatus = "fetch_status"
	OpFetchConfig = "fetch_config"
	OpSaveConfig  = "save_config"
	OpPing        = "ping"
)

// Kind classifies a transport failure.
type Kind string

const (
	KindNetwork Kind = "network"
	KindStatus  Kind = "status"
	KindDecode  Kind = "decode"
)

// ErrPingUnsupported is returned by transports without a lease endpoint.
var ErrPingUnsupported = errors.New("config ping not supported by this transport")

type StatusFetcher interface {
	FetchStatus(ctx context.Context) (models.StatusReport, error)
}

type ConfigLoader interface {
	FetchConfig(ctx context.Context) (models.ConfigDocument, error)
}

type ConfigSaver interface {
	SaveConfig(ctx context.Context, payload map[string]any) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Transport is the full device contract. Success or failure is all callers
// may rely on.
type Transport interface {
	StatusFetcher
	ConfigLoader
	ConfigSaver
	Pinger
}

// Error is a classified transport failure.
type Error struct {
	Op         string
	Kind       Kind
	StatusCode int // set for KindStatus
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Classify returns the failure kind of err, or "" if err is not a transport error.
func Classify(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}
