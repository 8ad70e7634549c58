package populate

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/df-mc/oreveins/server/world"
	"github.com/df-mc/oreveins/server/world/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Ore places ClusterCount clusters of Material in a chunk. Each cluster replaces only blocks equal to Replaces.
type Ore struct {
	Material, Replaces        world.BlockState
	ClusterCount, ClusterSize int
	MinHeight, MaxHeight      int
}

// Kind ...
func (*Ore) Kind() Kind { return KindOre }

// State ...
func (o *Ore) State() world.BlockState { return o.Material }

// String ...
func (o *Ore) String() string {
	return fmt.Sprintf("ore(%v, count=%d, size=%d, y=%d-%d)", o.Material, o.ClusterCount, o.ClusterSize, o.MinHeight, o.MaxHeight)
}

// Populate ...
func (o *Ore) Populate(w world.Writer, pos world.ChunkPos, r *rand.Rand) {
	for i := 0; i < o.ClusterCount; i++ {
		p := cube.Pos{
			pos.BlockX() + r.IntN(16),
			o.MinHeight + r.IntN(o.MaxHeight-o.MinHeight+1),
			pos.BlockZ() + r.IntN(16),
		}
		if w.Block(p) == o.Replaces {
			o.place(w, pos, p, r)
		}
	}
}

// place places a single cluster: a chain of blobs along a short line through pos, thickest in the middle. Blocks
// outside the chunk populated are left untouched.
func (o *Ore) place(w world.Writer, chunk world.ChunkPos, pos cube.Pos, r *rand.Rand) {
	clusterSize := float64(o.ClusterSize)
	vec := pos.Vec3()
	angle := r.Float64() * math.Pi
	offset := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(clusterSize / 8)
	x1, x2 := vec[0]+offset[0], vec[0]-offset[0]
	z1, z2 := vec[2]+offset[1], vec[2]-offset[1]
	y1, y2 := vec[1]+float64(r.IntN(3))+2, vec[1]+float64(r.IntN(3))+2

	for i := 0.0; i <= clusterSize; i++ {
		seed := mgl64.Vec3{
			x1 + (x2-x1)*i/clusterSize,
			y1 + (y2-y1)*i/clusterSize,
			z1 + (z2-z1)*i/clusterSize,
		}
		size := ((math.Sin(i*(math.Pi/clusterSize))+1)*r.Float64()*clusterSize/16 + 1) / 2

		for xx := int(seed[0] - size); xx <= int(seed[0]+size); xx++ {
			sizeX := sq((float64(xx) + 0.5 - seed[0]) / size)
			if sizeX >= 1 {
				continue
			}
			for yy := int(seed[1] - size); yy <= int(seed[1]+size); yy++ {
				sizeY := sq((float64(yy) + 0.5 - seed[1]) / size)
				if yy <= 0 || sizeX+sizeY >= 1 {
					continue
				}
				for zz := int(seed[2] - size); zz <= int(seed[2]+size); zz++ {
					sizeZ := sq((float64(zz) + 0.5 - seed[2]) / size)
					target := cube.Pos{xx, yy, zz}
					if sizeX+sizeY+sizeZ < 1 && chunk.Contains(target) && w.Block(target) == o.Replaces {
						w.SetBlock(target, o.Material)
					}
				}
			}
		}
	}
}

func sq(f float64) float64 {
	return f * f
}
