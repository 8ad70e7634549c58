// Package generator runs the per-chunk generation of veins on top of the vanilla features of the built-in biomes.
package generator

import (
	"encoding/binary"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/df-mc/oreveins/server/config"
	"github.com/df-mc/oreveins/server/vein"
	"github.com/df-mc/oreveins/server/vein/vanilla"
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/biome"
	"github.com/df-mc/oreveins/server/world/cube"
)

// Config holds the settings of a Generator.
type Config struct {
	// Seed is the seed of the world generated. Veins are placed identically for the same seed and vein types.
	Seed int64
	// Registry holds the vein types placed. It must not be nil.
	Registry *vein.Registry
	// Biomes are the biomes whose vanilla features populate chunks. If nil, biome.Overworld(Seed) is used.
	Biomes *biome.Set
	// Log is the Logger used to log reconfiguration. If nil, Log is set to slog.Default().
	Log *slog.Logger
	// Metrics, if not nil, records the veins, ores and indicators placed.
	Metrics *Metrics
}

// Generator places vanilla features and veins in chunks. Chunks may be generated concurrently, as long as each
// goroutine writes to its own chunk.
type Generator struct {
	conf     Config
	log      *slog.Logger
	disabler *vanilla.Disabler

	mu           sync.Mutex
	avoidCutoffs atomic.Bool
}

// New creates a Generator. Vanilla features stay enabled until Reconfigure is called.
func New(conf Config) *Generator {
	if conf.Registry == nil {
		panic("generator: Config.Registry must not be nil")
	}
	if conf.Biomes == nil {
		conf.Biomes = biome.Overworld(conf.Seed)
	}
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	return &Generator{conf: conf, log: conf.Log.With("subsystem", "generator"), disabler: vanilla.NewDisabler()}
}

// Biomes returns the biomes of the Generator.
func (g *Generator) Biomes() *biome.Set {
	return g.conf.Biomes
}

// Disabler returns the Disabler that keeps track of the vanilla features disabled in the biomes of the Generator.
func (g *Generator) Disabler() *vanilla.Disabler {
	return g.disabler
}

// Reconfigure applies a configuration: the vanilla ore features it disables are removed from every biome, and
// features disabled by an earlier configuration that are no longer disabled are restored.
func (g *Generator) Reconfigure(c config.Config) error {
	states, err := c.DisabledStates()
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.disabler.Configure(states, c.NoOres)
	var removed, reAdded int
	for _, b := range g.conf.Biomes.All() {
		res := g.disabler.Reconcile(b.Name(), b.Features())
		if !res.Changed() {
			continue
		}
		b.SetFeatures(res.Features)
		removed += len(res.Removed)
		reAdded += len(res.ReAdded)
		g.log.Debug("Updated vanilla features of biome.", "biome", b.Name(), "removed", len(res.Removed), "re_added", len(res.ReAdded))
	}
	g.avoidCutoffs.Store(c.AvoidVeinCutoffs)
	g.log.Info("Applied configuration.", "removed_features", removed, "restored_features", reAdded, "no_ores", c.NoOres, "avoid_vein_cutoffs", c.AvoidVeinCutoffs)
	return nil
}

// GenerateChunk populates a chunk with the vanilla features of the biome at its centre and then places veins in
// it. It returns the amount of ores placed by veins.
func (g *Generator) GenerateChunk(w world.Writer, pos world.ChunkPos) int {
	centre := cube.Pos{pos.BlockX() + 7, w.Dimension().Range().Min(), pos.BlockZ() + 7}
	if b, ok := g.conf.Biomes.ByName(w.Biome(centre).Name()); ok {
		r := g.rand(pos, "vanilla")
		for _, f := range b.Features() {
			f.Populate(w, pos, r)
		}
	}
	return g.PlaceVeins(w, pos)
}

// PlaceVeins places the ores of all veins that reach into a chunk. Veins are recreated for every chunk within the
// chunk radius of their type, so a vein crossing chunk borders is placed consistently in each of them. It returns
// the amount of ores placed.
func (g *Generator) PlaceVeins(w world.Writer, pos world.ChunkPos) int {
	var (
		total  int
		veins  []*vein.Vein
		dim    = w.Dimension()
		avoid  = g.avoidCutoffs.Load()
		placer = g.rand(pos, "place")
	)
	for _, e := range g.conf.Registry.Types() {
		t := e.Type
		if !t.MatchesDimension(dim) {
			continue
		}
		radius := int32(t.ChunkRadius())
		veins = veins[:0]
		for cx := pos.X() - radius; cx <= pos.X()+radius; cx++ {
			for cz := pos.Z() - radius; cz <= pos.Z()+radius; cz++ {
				src := world.ChunkPos{cx, cz}
				veins = t.CreateVeins(veins, src, g.rand(src, e.ID), avoid)
			}
		}

		var created, placed, indicators int
		for _, v := range veins {
			if !t.MatchesBiome(func() world.Biome { return w.Biome(v.Pos) }) {
				continue
			}
			created++
			n, ind := g.placeVein(w, pos, v, placer)
			placed += n
			indicators += ind
		}
		g.conf.Metrics.AddVeins(e.ID, created)
		g.conf.Metrics.AddBlocks(e.ID, placed)
		g.conf.Metrics.AddIndicators(e.ID, indicators)
		total += placed
	}
	return total
}

// placeVein places the ores of a vein within a chunk, together with any indicators they produce.
func (g *Generator) placeVein(w world.Writer, pos world.ChunkPos, v *vein.Vein, r *rand.Rand) (placed, indicators int) {
	t := v.Type
	lo, hi := v.VerticalRange()
	lo, hi, ok := w.Dimension().Range().Clamp(lo, hi)
	if !ok {
		return 0, 0
	}
	for x := pos.BlockX(); x < pos.BlockX()+16; x++ {
		for z := pos.BlockZ(); z < pos.BlockZ()+16; z++ {
			if !v.InRange(x, z) {
				continue
			}
			for y := lo; y <= hi; y++ {
				p := cube.Pos{x, y, z}
				if !t.CanGenerateAt(w, p) || r.Float64() >= v.ChanceToGenerate(p) {
					continue
				}
				s, ok := t.StateToGenerate(v, p, r)
				if !ok {
					continue
				}
				w.SetBlock(p, s)
				placed++

				if ind, ok := t.Indicator(r); ok && ind.Roll(r) {
					if surface, ok := ind.Surface(w, p); ok {
						w.SetBlock(surface, ind.Block(r))
						indicators++
					}
				}
			}
		}
	}
	return placed, indicators
}

// rand returns a random source for a chunk, derived from the world seed, the chunk position and a salt.
func (g *Generator) rand(pos world.ChunkPos, salt string) *rand.Rand {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(g.conf.Seed))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(pos[0]))
	binary.LittleEndian.PutUint32(buf[12:], uint32(pos[1]))

	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(salt)
	h := d.Sum64()
	return rand.New(rand.NewPCG(h, h^0x9e3779b97f4a7c15))
}
