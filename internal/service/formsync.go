package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"geiger_console/internal/logger"
	"geiger_console/internal/models"
	"geiger_console/internal/transport"
)

var (
	ErrUnknownField   = errors.New("unknown field")
	ErrFieldType      = errors.New("invalid field value")
	ErrUnknownSection = errors.New("unknown section")
	ErrRequiredField  = errors.New("required field is empty")
	errStaleLoad      = errors.New("config load superseded")
)

// Inline status texts.
const (
	msgRequiredFields = "Please fill in all required fields"
	msgSaved          = "Configuration saved! Device will restart..."
	msgSaveFailed     = "Failed to save configuration"
	msgLoadFailed     = "Failed to load configuration"
	msgFormReset      = "Form reset"
)

type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// StatusMessage is the inline message shown above the form.
type StatusMessage struct {
	Kind           StatusKind     `json:"kind"`
	Text           string         `json:"text"`
	Classification transport.Kind `json:"classification,omitempty"`
}

// FormView is the complete state of the settings form.
type FormView struct {
	Fields   map[string]any `json:"fields"`
	Sections []SectionState `json:"sections"`
	Status   *StatusMessage `json:"status,omitempty"`
	Loaded   bool           `json:"loaded"`
}

// FormSync mirrors the device configuration into an editable form whose
// sections follow the device's capability flags.
type FormSync struct {
	loader transport.ConfigLoader
	log    *logger.Logger

	mu       sync.Mutex
	loadSeq  uint64
	original models.ConfigDocument // as loaded; never mutated
	values   map[string]any
	acc      *accordion
	status   *StatusMessage
}

func NewFormSync(loader transport.ConfigLoader, log *logger.Logger) *FormSync {
	if log == nil {
		log = logger.Nop()
	}
	f := &FormSync{
		loader: loader,
		log:    log,
		acc:    newAccordion(Catalogue),
	}
	f.values = emptyValues()
	return f
}

func emptyValues() map[string]any {
	values := make(map[string]any)
	for _, s := range Catalogue {
		for _, fs := range s.Fields {
			values[fs.Name] = zeroValue(fs)
		}
	}
	return values
}

// Load fetches the device configuration and populates the form. If a newer
// Load starts before this one completes, this result is dropped.
func (f *FormSync) Load(ctx context.Context) error {
	f.mu.Lock()
	f.loadSeq++
	seq := f.loadSeq
	f.mu.Unlock()

	doc, err := f.loader.FetchConfig(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.loadSeq {
		return errStaleLoad
	}
	if err != nil {
		f.status = &StatusMessage{Kind: StatusError, Text: msgLoadFailed, Classification: transport.Classify(err)}
		f.log.Warnw("config_load_failed", "err", err, "kind", transport.Classify(err))
		return err
	}

	f.original = doc.Clone()
	if f.original == nil {
		f.original = models.ConfigDocument{}
	}
	f.populateLocked(f.original, false)
	f.log.Infow("config_loaded", "lora", f.original.Capability(models.CapabilityLora))
	return nil
}

// populateLocked copies document values into the form. Hidden capability
// sections are only written when all is set.
func (f *FormSync) populateLocked(doc models.ConfigDocument, all bool) {
	for _, s := range Catalogue {
		revealed := s.Capability == "" || doc.Capability(s.Capability)
		if s.Capability != "" {
			f.acc.setVisible(s.ID, revealed)
		}
		if !revealed && !all {
			continue
		}
		for _, fs := range s.Fields {
			if v, ok := documentValue(fs, doc[fs.Name]); ok {
				f.values[fs.Name] = v
			}
		}
	}
}

// Serialize builds the save payload from the form as it is now. Fields of
// hidden sections are left out, as are capability flags.
func (f *FormSync) Serialize() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.serializeLocked()
}

func (f *FormSync) serializeLocked() map[string]any {
	payload := make(map[string]any)
	for _, s := range Catalogue {
		if !f.acc.visible[s.ID] {
			continue
		}
		for _, fs := range s.Fields {
			payload[fs.Name] = payloadValue(fs, f.values[fs.Name])
		}
	}
	return payload
}

// Reset discards edits. With a loaded document every field, hidden ones
// included, goes back to its loaded value; otherwise the form is cleared.
func (f *FormSync) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values = emptyValues()
	if f.original == nil {
		f.status = nil
		return
	}
	f.populateLocked(f.original, true)
	f.status = &StatusMessage{Kind: StatusSuccess, Text: msgFormReset}
}

// Edit applies field changes atomically: if any change is rejected the form
// is left untouched.
func (f *FormSync) Edit(changes map[string]any) error {
	next := make(map[string]any, len(changes))
	for name, v := range changes {
		if isCapabilityFlag(name) {
			return fmt.Errorf("%w: %s is read-only", ErrUnknownField, name)
		}
		fs, ok := lookupField(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		val, err := editValue(fs, v)
		if err != nil {
			return err
		}
		next[name] = val
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for name, v := range next {
		f.values[name] = v
	}
	return nil
}

// ToggleSection flips one section between expanded and collapsed.
func (f *FormSync) ToggleSection(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.acc.has(id) {
		return fmt.Errorf("%w: %s", ErrUnknownSection, id)
	}
	f.acc.toggle(id)
	return nil
}

// Validate checks that every required field of a visible section is filled.
func (f *FormSync) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range Catalogue {
		if !f.acc.visible[s.ID] {
			continue
		}
		for _, fs := range s.Fields {
			if !fs.Required {
				continue
			}
			if v, _ := f.values[fs.Name].(string); v == "" {
				return fmt.Errorf("%w: %s", ErrRequiredField, fs.Name)
			}
		}
	}
	return nil
}

// SetStatus replaces the inline status message.
func (f *FormSync) SetStatus(msg StatusMessage) {
	f.mu.Lock()
	f.status = &msg
	f.mu.Unlock()
}

func (f *FormSync) View() FormView {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields := make(map[string]any, len(f.values))
	for k, v := range f.values {
		fields[k] = v
	}
	view := FormView{
		Fields:   fields,
		Sections: f.acc.states(Catalogue),
		Loaded:   f.original != nil,
	}
	if f.status != nil {
		st := *f.status
		view.Status = &st
	}
	return view
}
