package models

import "maps"

// CapabilityLora is the capability flag reported by boards with a LoRa module.
const CapabilityLora = "hasLora"

// ConfigDocument is the flat settings map returned by GET /config. Capability
// flags live in the same map but are read-only.
type ConfigDocument map[string]any

// Capability reports whether the flag is present and exactly true.
func (d ConfigDocument) Capability(name string) bool {
	v, ok := d[name].(bool)
	return ok && v
}

// Clone returns an independent copy. Values are JSON scalars, so a shallow
// copy is enough.
func (d ConfigDocument) Clone() ConfigDocument {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}
