// Package vanilla disables the built-in ore features of biomes that veins replace.
package vanilla

import (
	"slices"
	"sync"

	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/generator/populate"
)

// Disabler keeps track of the features it removed from each biome, so that a biome can be reconciled with a new
// configuration without knowing the features it originally had. A Disabler is safe for concurrent use.
type Disabler struct {
	mu     sync.Mutex
	states *world.StateSet
	all    bool
	// disabled holds, per biome, the features removed from it that have not been re-added.
	disabled map[string][]populate.Populator
}

// NewDisabler returns a Disabler that disables nothing until configured.
func NewDisabler() *Disabler {
	return &Disabler{disabled: make(map[string][]populate.Populator)}
}

// Configure sets the block states whose ore features are disabled. If all is true, every ore feature is disabled
// regardless of its state. Configure does not change any biome: Reconcile must be called for each biome to apply
// the new configuration.
func (d *Disabler) Configure(states *world.StateSet, all bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.states, d.all = states, all
}

// ShouldDisable checks if a feature is disabled by the current configuration.
func (d *Disabler) ShouldDisable(f populate.Populator) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shouldDisable(f)
}

func (d *Disabler) shouldDisable(f populate.Populator) bool {
	o, ok := f.(populate.OreFeature)
	if !ok {
		return false
	}
	switch o.Kind() {
	case populate.KindOre, populate.KindEmeraldOre:
		return d.all || d.states.Contains(o.State())
	}
	return false
}

// Result is the outcome of reconciling the features of a biome.
type Result struct {
	// Features is the new feature list of the biome.
	Features []populate.Populator
	// ReAdded holds the features that were disabled before and are enabled again.
	ReAdded []populate.Populator
	// Removed holds the features that were disabled by this reconciliation.
	Removed []populate.Populator
}

// Changed checks if the reconciliation changed the feature list.
func (r Result) Changed() bool {
	return len(r.ReAdded) > 0 || len(r.Removed) > 0
}

// Reconcile applies the current configuration to the features of a biome. Features disabled by an earlier call
// that the configuration no longer disables are re-added at the end of the list, and features in current that
// are now disabled are removed. Only features that changed status are touched; features are compared by identity.
func (d *Disabler) Reconcile(biome string, current []populate.Populator) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	var res Result
	cached := d.disabled[biome]
	for _, f := range cached {
		if !d.shouldDisable(f) {
			res.ReAdded = append(res.ReAdded, f)
		}
	}
	for _, f := range current {
		if d.shouldDisable(f) {
			res.Removed = append(res.Removed, f)
		}
	}

	for _, f := range res.Removed {
		if !slices.Contains(cached, f) {
			cached = append(cached, f)
		}
	}
	cached = slices.DeleteFunc(cached, func(f populate.Populator) bool { return slices.Contains(res.ReAdded, f) })
	if len(cached) == 0 {
		delete(d.disabled, biome)
	} else {
		d.disabled[biome] = cached
	}

	res.Features = make([]populate.Populator, 0, len(current)+len(res.ReAdded))
	for _, f := range current {
		if !slices.Contains(res.Removed, f) {
			res.Features = append(res.Features, f)
		}
	}
	res.Features = append(res.Features, res.ReAdded...)
	return res
}

// Disabled returns the features currently disabled for a biome.
func (d *Disabler) Disabled(biome string) []populate.Populator {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.disabled[biome])
}
