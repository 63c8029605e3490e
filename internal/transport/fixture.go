package transport

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"geiger_console/internal/logger"
	"geiger_console/internal/models"
)

// Fixture file names inside the fixtures directory.
const (
	FixtureStatus = "status.json"
	FixtureConfig = "config.json"
)

// FixtureClient serves static JSON files instead of a device, for local
// development. Files are re-read on every call so they can be edited live.
type FixtureClient struct {
	dir string
	log *logger.Logger
}

func NewFixtureClient(dir string, log *logger.Logger) *FixtureClient {
	return &FixtureClient{dir: dir, log: log}
}

func (f *FixtureClient) FetchStatus(ctx context.Context) (models.StatusReport, error) {
	var report models.StatusReport
	if err := f.readJSON(ctx, OpFetchStatus, FixtureStatus, &report); err != nil {
		return models.StatusReport{}, err
	}
	return report, nil
}

func (f *FixtureClient) FetchConfig(ctx context.Context) (models.ConfigDocument, error) {
	var doc models.ConfigDocument
	if err := f.readJSON(ctx, OpFetchConfig, FixtureConfig, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = models.ConfigDocument{}
	}
	return doc, nil
}

// SaveConfig accepts the payload without persisting it.
func (f *FixtureClient) SaveConfig(ctx context.Context, payload map[string]any) error {
	if err := ctx.Err(); err != nil {
		return &Error{Op: OpSaveConfig, Kind: KindNetwork, Err: err}
	}
	if f.log != nil {
		f.log.Infow("fixture_config_save", "fields", len(payload))
	}
	return nil
}

func (f *FixtureClient) Ping(ctx context.Context) error {
	return ErrPingUnsupported
}

func (f *FixtureClient) readJSON(ctx context.Context, op, name string, out any) error {
	if err := ctx.Err(); err != nil {
		return &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	b, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Error{Op: op, Kind: KindStatus, StatusCode: 404, Err: err}
		}
		return &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	if err := json.Unmarshal(b, out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Err: err}
	}
	return nil
}
