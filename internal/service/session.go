package service

import (
	"context"
	"errors"
	"sync"

	"geiger_console/internal/logger"
	"geiger_console/internal/models"
	"geiger_console/internal/transport"
)

// ConfigSession is one visit to the settings page: the heartbeat runs while
// it is open and the form is synced with the device.
type ConfigSession struct {
	form      *FormSync
	heartbeat *Heartbeat
	saver     transport.ConfigSaver
	events    EventSink
	log       *logger.Logger

	// serializes Open and Save so a reopen cannot restart the heartbeat
	// underneath a save that is about to commit the session
	opMu sync.Mutex

	mu   sync.Mutex
	open bool
}

func NewConfigSession(form *FormSync, heartbeat *Heartbeat, saver transport.ConfigSaver,
	events EventSink, log *logger.Logger) *ConfigSession {
	if log == nil {
		log = logger.Nop()
	}
	return &ConfigSession{
		form:      form,
		heartbeat: heartbeat,
		saver:     saver,
		events:    events,
		log:       log,
	}
}

// Open starts the heartbeat and loads the form. A load failure keeps the
// session open; the error is also reported in the form status. An Open issued
// while a save is in flight waits for it and then starts a fresh session.
func (s *ConfigSession) Open(ctx context.Context) (FormView, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	// the heartbeat outlives the request that opened the session
	if err := s.heartbeat.Start(context.WithoutCancel(ctx)); err != nil {
		return s.form.View(), err
	}

	s.mu.Lock()
	first := !s.open
	s.open = true
	s.mu.Unlock()
	if first {
		s.record(models.EventSessionOpened, "Configuration session opened", nil)
	}

	if err := s.form.Load(ctx); err != nil {
		if errors.Is(err, errStaleLoad) {
			// a newer Open owns the form now
			return s.form.View(), nil
		}
		s.record(models.EventConfigLoadFailed, msgLoadFailed,
			map[string]any{"kind": transport.Classify(err), "error": err.Error()})
		return s.form.View(), err
	}
	s.record(models.EventConfigLoaded, "Configuration loaded", nil)
	return s.form.View(), nil
}

// Close stops the heartbeat. It is safe to call at any time.
func (s *ConfigSession) Close() {
	s.heartbeat.Stop()

	s.mu.Lock()
	wasOpen := s.open
	s.open = false
	s.mu.Unlock()

	if wasOpen {
		s.record(models.EventSessionClosed, "Configuration session closed", nil)
	}
}

// Save validates the form, stops the heartbeat and sends the payload. The
// heartbeat is not restarted when the save fails: the device lease simply
// expires.
func (s *ConfigSession) Save(ctx context.Context) (FormView, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.form.Validate(); err != nil {
		s.form.SetStatus(StatusMessage{Kind: StatusError, Text: msgRequiredFields})
		return s.form.View(), err
	}

	s.heartbeat.Stop()
	payload := s.form.Serialize()

	if err := s.saver.SaveConfig(ctx, payload); err != nil {
		kind := transport.Classify(err)
		s.form.SetStatus(StatusMessage{Kind: StatusError, Text: msgSaveFailed, Classification: kind})
		s.log.Errorw("config_save_failed", "err", err, "kind", kind)
		s.record(models.EventConfigSaveFailed, msgSaveFailed, map[string]any{"kind": kind, "error": err.Error()})
		return s.form.View(), err
	}

	s.form.SetStatus(StatusMessage{Kind: StatusSuccess, Text: msgSaved})
	s.log.Infow("config_saved", "fields", len(payload))
	s.record(models.EventConfigSaved, msgSaved, map[string]any{"fields": len(payload)})

	s.mu.Lock()
	wasOpen := s.open
	s.open = false
	s.mu.Unlock()
	if wasOpen {
		s.record(models.EventSessionClosed, "Configuration session committed", nil)
	}
	return s.form.View(), nil
}

func (s *ConfigSession) Edit(changes map[string]any) (FormView, error) {
	if err := s.form.Edit(changes); err != nil {
		return s.form.View(), err
	}
	return s.form.View(), nil
}

func (s *ConfigSession) ToggleSection(id string) (FormView, error) {
	if err := s.form.ToggleSection(id); err != nil {
		return s.form.View(), err
	}
	return s.form.View(), nil
}

func (s *ConfigSession) Reset() FormView {
	s.form.Reset()
	return s.form.View()
}

func (s *ConfigSession) View() FormView {
	return s.form.View()
}

// IsOpen reports whether a session is currently open.
func (s *ConfigSession) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Lease exposes the heartbeat lease for diagnostics.
func (s *ConfigSession) Lease() models.HeartbeatLease {
	return s.heartbeat.Lease()
}

func (s *ConfigSession) record(typ, description string, metadata any) {
	if s.events == nil {
		return
	}
	s.events.Record(typ, description, metadata)
}
