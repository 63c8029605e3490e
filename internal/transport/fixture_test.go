package transport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"geiger_console/internal/logger"
)

func writeFixture(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestFixtureClient_ReadsFiles(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, FixtureStatus, `{"dose_uSvh":0.2,"cpm":60,"counts":10,"uptime_s":5}`)
	writeFixture(t, dir, FixtureConfig, `{"thingName":"geiger","hasLora":true}`)
	c := NewFixtureClient(dir, logger.Nop())

	report, err := c.FetchStatus(context.Background())
	if err != nil || report.CPM != 60 {
		t.Fatalf("FetchStatus = %+v, %v", report, err)
	}
	doc, err := c.FetchConfig(context.Background())
	if err != nil || doc["thingName"] != "geiger" || !doc.Capability("hasLora") {
		t.Fatalf("FetchConfig = %#v, %v", doc, err)
	}
}

func TestFixtureClient_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, FixtureStatus, `not json`)
	c := NewFixtureClient(dir, logger.Nop())

	if _, err := c.FetchStatus(context.Background()); Classify(err) != KindDecode {
		t.Fatalf("malformed fixture: want decode error, got %v", err)
	}
	_, err := c.FetchConfig(context.Background())
	var te *Error
	if !errors.As(err, &te) || te.Kind != KindStatus || te.StatusCode != 404 {
		t.Fatalf("missing fixture: want 404 status error, got %v", err)
	}
}

func TestFixtureClient_SaveAndPing(t *testing.T) {
	c := NewFixtureClient(t.TempDir(), logger.Nop())
	if err := c.SaveConfig(context.Background(), map[string]any{"thingName": "x"}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if err := c.Ping(context.Background()); !errors.Is(err, ErrPingUnsupported) {
		t.Fatalf("Ping = %v, want ErrPingUnsupported", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.SaveConfig(ctx, nil); Classify(err) != KindNetwork {
		t.Fatalf("canceled save: want network error, got %v", err)
	}
}
