package kmeans

import "math/rand"

// Median returns the median coordinate of points along dimension dim: the
// value of rank (n-1)/2 (the lower median for even n) among the dim-th
// coordinates. Runs in expected linear time via quickselect with pivots drawn
// uniformly from rng. The caller's slice is left in its original order and
// the point rows are never written. Panics if points is empty.
func Median(points [][]float64, dim int, rng *rand.Rand) float64 {
	list := make([][]float64, len(points))
	copy(list, points)

	k := (len(list) - 1) / 2
	left, right := 0, len(list)-1
	for {
		if left == right {
			return list[left][dim]
		}
		pivotIndex := left + rng.Intn(right-left+1)
		pivotIndex = partition(list, left, right, pivotIndex, dim)
		switch {
		case k == pivotIndex:
			return list[k][dim]
		case k < pivotIndex:
			right = pivotIndex - 1
		default:
			left = pivotIndex + 1
		}
	}
}

// partition reorders list[left:right+1] around the dim-th coordinate of the
// pivot row (Lomuto scheme): rows with a strictly smaller coordinate end up
// before the pivot's final position, everything else after. Returns the
// pivot's final index.
func partition(list [][]float64, left, right, pivotIndex, dim int) int {
	pivotValue := list[pivotIndex][dim]
	list[pivotIndex], list[right] = list[right], list[pivotIndex]
	store := left
	for i := left; i < right; i++ {
		if list[i][dim] < pivotValue {
			list[i], list[store] = list[store], list[i]
			store++
		}
	}
	list[right], list[store] = list[store], list[right]
	return store
}
