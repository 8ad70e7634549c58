package rule

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/df-mc/oreveins/server/vein/doc"
	"github.com/df-mc/oreveins/server/world/cube"
)

// Distance is a rule over vein origins.
type Distance = Node[cube.Pos]

// Distances is the Family of origin distance rules, read from the "origin_distance" field of a vein definition.
// An object without a type is a distance band:
//
//	{"minimum": 500, "maximum": 2000, "metric": "chebyshev", "origin_x": 0, "origin_z": 0}
//
// Distances are measured horizontally from the origin. The metric is euclidean unless set to chebyshev.
var Distances = NewFamily[cube.Pos]("origin_distance", nil, distanceBand)

// DefaultDistance matches every position.
var DefaultDistance = Always[cube.Pos]()

func init() {
	Distances.Register("band", distanceBand)
}

func distanceBand(params doc.Document) (Predicate[cube.Pos], error) {
	lo, err := params.Float("minimum", 0)
	if err != nil {
		return nil, err
	}
	hi, err := params.Float("maximum", math.Inf(1))
	if err != nil {
		return nil, err
	}
	if lo < 0 || hi < lo {
		return nil, errors.Newf("distance band requires 0 <= minimum <= maximum, got %v and %v", lo, hi)
	}
	ox, err := params.Int("origin_x", 0)
	if err != nil {
		return nil, err
	}
	oz, err := params.Int("origin_z", 0)
	if err != nil {
		return nil, err
	}
	metric, err := params.String("metric", "euclidean")
	if err != nil {
		return nil, err
	}
	switch metric {
	case "euclidean":
		lo2, hi2 := lo*lo, hi*hi
		return func(pos cube.Pos) bool {
			dx, dz := float64(pos.X()-ox), float64(pos.Z()-oz)
			d := dx*dx + dz*dz
			return d >= lo2 && d <= hi2
		}, nil
	case "chebyshev":
		return func(pos cube.Pos) bool {
			d := math.Max(math.Abs(float64(pos.X()-ox)), math.Abs(float64(pos.Z()-oz)))
			return d >= lo && d <= hi
		}, nil
	}
	return nil, errors.Newf("unknown distance metric %q", metric)
}
