package generator

import (
	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
)

// Strip replaces every block within radius of centre, horizontally, that is not in keep with air, leaving only
// the veins in the area visible. Blocks outside the world height are ignored. It returns the amount of blocks
// replaced.
func Strip(w world.Writer, centre cube.Pos, radius int, keep *world.StateSet) int {
	r := w.Dimension().Range()
	n := 0
	for x := centre.X() - radius; x <= centre.X()+radius; x++ {
		for z := centre.Z() - radius; z <= centre.Z()+radius; z++ {
			for y := r.Min(); y <= r.Max(); y++ {
				p := cube.Pos{x, y, z}
				if s := w.Block(p); s != world.Air && !keep.Contains(s) {
					w.SetBlock(p, world.Air)
					n++
				}
			}
		}
	}
	return n
}
