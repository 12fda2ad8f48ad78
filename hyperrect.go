package kmeans

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// HyperRect is an axis-aligned bounding box described by its two extreme
// corners. Invariant: Min[d] <= Max[d] for every dimension d.
type HyperRect struct {
	Min []float64
	Max []float64
}

// boundingRect computes the tightest HyperRect containing all points.
// Panics if points is empty.
func boundingRect(points [][]float64) HyperRect {
	lo := clonePoint(points[0])
	hi := clonePoint(points[0])
	for _, p := range points[1:] {
		for d, v := range p {
			if v < lo[d] {
				lo[d] = v
			}
			if v > hi[d] {
				hi[d] = v
			}
		}
	}
	return HyperRect{Min: lo, Max: hi}
}

// Closest returns the point inside the rectangle nearest to p: each
// coordinate of p clamped to [Min[d], Max[d]]. A point already inside maps
// to itself.
func (r HyperRect) Closest(p []float64) []float64 {
	out := make([]float64, len(p))
	for d, v := range p {
		if v < r.Min[d] {
			v = r.Min[d]
		} else if v > r.Max[d] {
			v = r.Max[d]
		}
		out[d] = v
	}
	return out
}

// Distance returns the Euclidean distance from p to the rectangle, i.e. the
// distance from p to the nearest contained point. Zero if p lies inside.
func (r HyperRect) Distance(p []float64) float64 {
	var sum float64
	for d, v := range p {
		if g := r.Min[d] - v; g > 0 {
			sum += g * g
		} else if g := v - r.Max[d]; g > 0 {
			sum += g * g
		}
	}
	return math.Sqrt(sum)
}

// Split cuts the rectangle along dim at value, returning the lower and upper
// halves. Both halves share value as their boundary coordinate. The returned
// rectangles do not alias r or each other.
func (r HyperRect) Split(dim int, value float64) (HyperRect, HyperRect) {
	lower := HyperRect{Min: clonePoint(r.Min), Max: clonePoint(r.Max)}
	upper := HyperRect{Min: clonePoint(r.Min), Max: clonePoint(r.Max)}
	lower.Max[dim] = value
	upper.Min[dim] = value
	return lower, upper
}

// Width returns the per-dimension extent Max - Min.
func (r HyperRect) Width() []float64 {
	out := make([]float64, len(r.Min))
	floats.SubTo(out, r.Max, r.Min)
	return out
}
