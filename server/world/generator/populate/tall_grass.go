package populate

import (
	"math/rand/v2"

	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
)

// TallGrass places short grass on top of grass blocks.
type TallGrass struct {
	Amount int
}

// Populate ...
func (t *TallGrass) Populate(w world.Writer, pos world.ChunkPos, r *rand.Rand) {
	amount := r.IntN(2) + t.Amount
	for range amount {
		x, z := pos.BlockX()+r.IntN(16), pos.BlockZ()+r.IntN(16)
		if y, ok := highestWorkableBlock(w, x, z); ok {
			w.SetBlock(cube.Pos{x, y, z}, world.ShortGrass)
		}
	}
}

// highestWorkableBlock returns the Y of the highest air block in a column that sits on top of a grass block.
func highestWorkableBlock(w world.Reader, x, z int) (int, bool) {
	r := w.Dimension().Range()
	next := w.Block(cube.Pos{x, r.Max(), z})
	for y := r.Max(); y > r.Min(); y-- {
		b := next
		next = w.Block(cube.Pos{x, y - 1, z})
		if b == world.Air && next == world.Grass {
			return y, true
		}
	}
	return 0, false
}
