package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"geiger_console/internal/models"
)

// FieldKind decides how a field is populated from the document and how it
// is written back into the save payload.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldCheckbox FieldKind = "checkbox"
	FieldInt      FieldKind = "int"
	FieldDecimal  FieldKind = "decimal"
)

// FieldSpec describes one editable setting.
type FieldSpec struct {
	Name     string    `json:"name"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required,omitempty"`
	Default  float64   `json:"default,omitempty"` // numeric fields only
}

// SectionSpec groups fields under one collapsible header. Sections with a
// Capability are hidden unless the device reports that flag as true.
type SectionSpec struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Capability string      `json:"capability,omitempty"`
	Fields     []FieldSpec `json:"fields"`
}

// Section ids in display order.
const (
	SectionWifi         = "wifi"
	SectionMisc         = "misc"
	SectionTransmission = "transmission"
	SectionMQTT         = "mqtt"
	SectionAlarm        = "alarm"
	SectionLora         = "lora"
)

// Catalogue is the settings form in display order.
var Catalogue = []SectionSpec{
	{
		ID: SectionWifi, Title: "WiFi",
		Fields: []FieldSpec{
			{Name: "thingName", Kind: FieldText, Required: true},
			{Name: "apPassword", Kind: FieldText},
			{Name: "wifiSsid", Kind: FieldText},
			{Name: "wifiPassword", Kind: FieldText},
		},
	},
	{
		ID: SectionMisc, Title: "Miscellaneous",
		Fields: []FieldSpec{
			{Name: "startSound", Kind: FieldCheckbox},
			{Name: "speakerTick", Kind: FieldCheckbox},
			{Name: "ledTick", Kind: FieldCheckbox},
			{Name: "showDisplay", Kind: FieldCheckbox},
		},
	},
	{
		ID: SectionTransmission, Title: "Transmission",
		Fields: []FieldSpec{
			{Name: "sendToCommunity", Kind: FieldCheckbox},
			{Name: "sendToMadavi", Kind: FieldCheckbox},
			{Name: "sendToBle", Kind: FieldCheckbox},
		},
	},
	{
		ID: SectionMQTT, Title: "MQTT",
		Fields: []FieldSpec{
			{Name: "sendToMqtt", Kind: FieldCheckbox},
			{Name: "mqttHost", Kind: FieldText},
			{Name: "mqttPort", Kind: FieldInt, Default: 1883},
			{Name: "mqttUseTls", Kind: FieldCheckbox},
			{Name: "mqttRetain", Kind: FieldCheckbox},
			{Name: "mqttUsername", Kind: FieldText},
			{Name: "mqttPassword", Kind: FieldText},
			{Name: "mqttBaseTopic", Kind: FieldText},
		},
	},
	{
		ID: SectionAlarm, Title: "Local alarm",
		Fields: []FieldSpec{
			{Name: "soundLocalAlarm", Kind: FieldCheckbox},
			{Name: "localAlarmThreshold", Kind: FieldDecimal, Default: 0.5},
			{Name: "localAlarmFactor", Kind: FieldInt, Default: 10},
		},
	},
	{
		ID: SectionLora, Title: "LoRa", Capability: models.CapabilityLora,
		Fields: []FieldSpec{
			{Name: "sendToLora", Kind: FieldCheckbox},
			{Name: "devaddr", Kind: FieldText},
			{Name: "nwkskey", Kind: FieldText},
			{Name: "appskey", Kind: FieldText},
		},
	},
}

func lookupField(name string) (FieldSpec, bool) {
	for _, s := range Catalogue {
		for _, f := range s.Fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return FieldSpec{}, false
}

func isCapabilityFlag(name string) bool {
	for _, s := range Catalogue {
		if s.Capability != "" && s.Capability == name {
			return true
		}
	}
	return false
}

// zeroValue is what a cleared field holds.
func zeroValue(f FieldSpec) any {
	if f.Kind == FieldCheckbox {
		return false
	}
	return ""
}

// documentValue converts a document value into the field's form value.
// ok is false when a text-like field has no value, which leaves the field
// as it was.
func documentValue(f FieldSpec, v any) (any, bool) {
	if f.Kind == FieldCheckbox {
		return truthy(v), true
	}
	if v == nil {
		return nil, false
	}
	return displayString(v), true
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}

func displayString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

var (
	leadingInt     = regexp.MustCompile(`^[+-]?\d+`)
	leadingDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// parseIntField reads the leading integer of s. Malformed input and zero
// both yield def.
func parseIntField(s string, def float64) int64 {
	m := leadingInt.FindString(strings.TrimSpace(s))
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil || n == 0 {
		return int64(def)
	}
	return n
}

// parseDecimalField reads the leading decimal of s. Malformed input and zero
// both yield def.
func parseDecimalField(s string, def float64) float64 {
	m := leadingDecimal.FindString(strings.TrimSpace(s))
	n, err := strconv.ParseFloat(m, 64)
	if err != nil || n == 0 {
		return def
	}
	return n
}

// payloadValue converts a form value into its outbound representation.
func payloadValue(f FieldSpec, v any) any {
	switch f.Kind {
	case FieldCheckbox:
		b, _ := v.(bool)
		return b
	case FieldInt:
		s, _ := v.(string)
		return parseIntField(s, f.Default)
	case FieldDecimal:
		s, _ := v.(string)
		return parseDecimalField(s, f.Default)
	default:
		s, _ := v.(string)
		return s
	}
}

// editValue validates an edit against the field kind. Numeric fields accept
// either their textual form or a JSON number.
func editValue(f FieldSpec, v any) (any, error) {
	switch f.Kind {
	case FieldCheckbox:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case FieldInt, FieldDecimal:
		switch t := v.(type) {
		case string:
			return t, nil
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64), nil
		case int:
			return strconv.Itoa(t), nil
		}
	default:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s expects %s, got %T", ErrFieldType, f.Name, f.Kind, v)
}
