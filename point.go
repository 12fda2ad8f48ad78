package kmeans

import "gonum.org/v1/gonum/floats"

// Distance returns the Euclidean (L2) distance between two points.
// Panics if a and b differ in dimensionality.
func Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// clonePoint returns an independent copy of p.
func clonePoint(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}

// clonePoints returns a deep copy of points: a fresh outer slice and a fresh
// row for every point.
func clonePoints(points [][]float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = clonePoint(p)
	}
	return out
}

// divScalar divides every coordinate of p by s, in place. The division must
// not be rewritten as multiplication by 1/s; the two differ in floating point,
// and center-of-mass coordinates are defined as sum/count.
func divScalar(p []float64, s float64) {
	for i := range p {
		p[i] /= s
	}
}

// zeroPoints allocates k zeroed points of the given dimensionality.
func zeroPoints(k, dims int) [][]float64 {
	out := make([][]float64, k)
	for i := range out {
		out[i] = make([]float64, dims)
	}
	return out
}
