package populate

import (
	"math/rand/v2"

	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
)

// EmeraldOre places between MinCount and MaxCount single ores in a chunk, as found in mountain biomes.
type EmeraldOre struct {
	Material, Replaces   world.BlockState
	MinCount, MaxCount   int
	MinHeight, MaxHeight int
}

// Kind ...
func (*EmeraldOre) Kind() Kind { return KindEmeraldOre }

// State ...
func (e *EmeraldOre) State() world.BlockState { return e.Material }

// Populate ...
func (e *EmeraldOre) Populate(w world.Writer, pos world.ChunkPos, r *rand.Rand) {
	n := e.MinCount + r.IntN(e.MaxCount-e.MinCount+1)
	for range n {
		p := cube.Pos{
			pos.BlockX() + r.IntN(16),
			e.MinHeight + r.IntN(e.MaxHeight-e.MinHeight+1),
			pos.BlockZ() + r.IntN(16),
		}
		if w.Block(p) == e.Replaces {
			w.SetBlock(p, e.Material)
		}
	}
}
