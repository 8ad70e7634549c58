package vein

import (
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/world"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
)

// RegistryConfig holds the configuration of a Registry.
type RegistryConfig struct {
	// Log is the Logger reload summaries and rejected definitions are logged to. If nil, Log is set to
	// slog.Default().
	Log *slog.Logger
	// Flags are the flags the conditions of definitions are tested against.
	Flags Flags
}

// Registry holds the vein types currently registered. Its contents are replaced as a whole by Reload, so that
// readers always see the types of exactly one reload. A Registry is safe for concurrent use.
type Registry struct {
	log   *slog.Logger
	flags Flags

	snapshot atomic.Pointer[snapshot]
}

// snapshot is the immutable result of one reload.
type snapshot struct {
	generation uuid.UUID
	types      map[string]*Type
	names      map[*Type]string
	ids        []string
	oreStates  *world.StateSet
	radius     int
}

// NewRegistry creates an empty Registry.
func NewRegistry(conf RegistryConfig) *Registry {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	r := &Registry{log: conf.Log.With("subsystem", "veins"), flags: maps.Clone(conf.Flags)}
	r.snapshot.Store(&snapshot{types: map[string]*Type{}, names: map[*Type]string{}, oreStates: world.NewStateSet()})
	return r
}

// ReloadResult summarises a call to Registry.Reload.
type ReloadResult struct {
	// Generation identifies the set of types published by the reload.
	Generation uuid.UUID
	// Registered holds the ids of the types registered, sorted.
	Registered []string
	// Skipped holds the ids of definitions whose conditions were not met, sorted.
	Skipped []string
	// Failed holds the error for each definition that could not be decoded. All errors are of type
	// *DefinitionError.
	Failed map[string]error
}

// Reload decodes all documents passed and replaces the registered types with the ones decoded. Documents are
// processed in order of their id. A document that fails to decode is logged and dropped without affecting the
// others.
func (r *Registry) Reload(docs map[string]doc.Document) ReloadResult {
	res := ReloadResult{Generation: uuid.New(), Failed: map[string]error{}}
	s := &snapshot{
		generation: res.Generation,
		types:      make(map[string]*Type, len(docs)),
		names:      make(map[*Type]string, len(docs)),
		oreStates:  world.NewStateSet(),
	}

	ids := maps.Keys(docs)
	slices.Sort(ids)
	for _, id := range ids {
		d := docs[id]
		ok, err := conditionsMet(d, r.flags)
		if err == nil && !ok {
			r.log.Info("Skipping vein as its conditions were not met.", "vein", id)
			res.Skipped = append(res.Skipped, id)
			continue
		}
		var t *Type
		if err == nil {
			t, err = Decode(d)
		}
		if err != nil {
			err = &DefinitionError{ID: id, Err: err}
			r.log.Warn("Vein failed to decode.", "vein", id, "err", err, "hint", errors.FlattenHints(err))
			res.Failed[id] = err
			continue
		}
		s.types[id], s.names[t] = t, id
		s.ids = append(s.ids, id)
		s.oreStates.AddAll(t.OreStates())
		s.radius = max(s.radius, t.ChunkRadius())
	}
	res.Registered = slices.Clone(s.ids)

	r.snapshot.Store(s)
	r.log.Info("Registered veins.", "count", len(s.ids), "generation", s.generation)
	return res
}

// Type looks up the Type registered under the id passed.
func (r *Registry) Type(id string) (*Type, bool) {
	t, ok := r.snapshot.Load().types[id]
	return t, ok
}

// Name returns the id the Type passed is registered under. The bool returned is false if the Type is not part of
// the current set of types.
func (r *Registry) Name(t *Type) (string, bool) {
	id, ok := r.snapshot.Load().names[t]
	return id, ok
}

// IDs returns the ids of all registered types, sorted.
func (r *Registry) IDs() []string {
	return slices.Clone(r.snapshot.Load().ids)
}

// Types returns all registered types with their ids, in order of their id.
func (r *Registry) Types() []Entry {
	s := r.snapshot.Load()
	entries := make([]Entry, len(s.ids))
	for i, id := range s.ids {
		entries[i] = Entry{ID: id, Type: s.types[id]}
	}
	return entries
}

// Entry is a Type together with the id it is registered under.
type Entry struct {
	ID   string
	Type *Type
}

// OreStates returns the set of all block states any registered type may place. The set returned must not be
// modified.
func (r *Registry) OreStates() *world.StateSet {
	return r.snapshot.Load().oreStates
}

// ChunkRadius returns the largest chunk radius of any registered type: the distance in chunks from a chunk within
// which veins may have their origin and still reach into that chunk.
func (r *Registry) ChunkRadius() int {
	return r.snapshot.Load().radius
}

// Len returns the amount of registered types.
func (r *Registry) Len() int {
	return len(r.snapshot.Load().ids)
}

// Generation returns the generation of the last reload, or uuid.Nil if the Registry was never reloaded.
func (r *Registry) Generation() uuid.UUID {
	return r.snapshot.Load().generation
}
