package kmeans

import "gonum.org/v1/gonum/floats"

// lloydTotals computes one assignment pass by brute force: sums[k] is the
// coordinate sum and counts[k] the number of points whose nearest center
// is k. Points accumulate in input order. This is the reference
// behavior the tree traversal must reproduce.
func lloydTotals(centers Centers, points [][]float64) (sums [][]float64, counts []int) {
	sums = zeroPoints(len(centers), len(points[0]))
	counts = make([]int, len(centers))
	for _, p := range points {
		k := centers.Closest(p)
		floats.Add(sums[k], p)
		counts[k]++
	}
	return sums, counts
}

// assignLabels returns the index of the nearest center for every point.
func assignLabels(centers Centers, points [][]float64) []int {
	labels := make([]int, len(points))
	for i, p := range points {
		labels[i] = centers.Closest(p)
	}
	return labels
}
