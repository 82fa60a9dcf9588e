package kitchen

import "sync"

// Registry holds the live kitchen configuration. Every read hands out a
// deep copy, so a snapshot given to a scheduling run never changes under it.
type Registry struct {
	mu     sync.RWMutex
	preset string
	inv    Inventory
}

// NewRegistry starts a registry from the named preset ("" for the default).
func NewRegistry(preset string) (*Registry, error) {
	r := &Registry{}
	if _, err := r.Reset(preset); err != nil {
		return nil, err
	}
	return r, nil
}

// Preset returns the name of the preset the registry was last reset to.
func (r *Registry) Preset() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.preset
}

// Snapshot returns a copy of the current inventory.
func (r *Registry) Snapshot() Inventory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inv.Clone()
}

// Update merges ov into the current inventory. On error the registry is
// unchanged.
func (r *Registry) Update(ov Overrides) (Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged, err := Merge(r.inv, ov)
	if err != nil {
		return Inventory{}, err
	}
	r.inv = merged
	return merged.Clone(), nil
}

// Reset discards all overrides and reloads a preset. An empty name keeps
// the current preset.
func (r *Registry) Reset(preset string) (Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if preset == "" {
		preset = r.preset
	}
	inv, err := Preset(preset)
	if err != nil {
		return Inventory{}, err
	}
	if preset == "" {
		preset = DefaultPreset()
	}
	r.preset = preset
	r.inv = inv
	return inv.Clone(), nil
}
