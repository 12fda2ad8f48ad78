package kmeans

import (
	"sync"

	"gonum.org/v1/gonum/floats"
)

// parallelMinPoints is the point count below which the parallel code paths
// fall back to their sequential counterparts; smaller work items cost more
// to schedule than to compute.
const parallelMinPoints = 512

// UpdateParallel is the concurrent variant of [Centers.Update]. Contested
// subtrees are descended by concurrent workers, and every pair of subtree
// totals is folded left-then-right exactly as in the sequential traversal,
// so the result is bitwise identical to Update for any worker count.
// Falls back to Update if workers <= 1 or the subtree is small.
func (c Centers) UpdateParallel(t *Tree, workers int) (sums [][]float64, counts []int) {
	if workers <= 1 || t.count < parallelMinPoints {
		return c.Update(t)
	}
	if sums, counts, ok := c.updateNode(t); ok {
		return sums, counts
	}

	var (
		rs [][]float64
		rc []int
		wg sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		rs, rc = c.UpdateParallel(t.right, workers/2)
	}()
	sums, counts = c.UpdateParallel(t.left, workers-workers/2)
	wg.Wait()

	combineTotals(sums, counts, rs, rc)
	return sums, counts
}

// lloydTotalsParallel is the concurrent variant of lloydTotals. Workers
// label disjoint contiguous ranges of points, then the labeled points are
// accumulated sequentially in input order, so the result is bitwise
// identical to lloydTotals for any worker count.
// Falls back to lloydTotals if workers <= 1 or there are few points.
func lloydTotalsParallel(centers Centers, points [][]float64, workers int) (sums [][]float64, counts []int) {
	if workers <= 1 || len(points) < parallelMinPoints {
		return lloydTotals(centers, points)
	}

	labels := assignLabelsParallel(centers, points, workers)
	sums = zeroPoints(len(centers), len(points[0]))
	counts = make([]int, len(centers))
	for i, p := range points {
		k := labels[i]
		floats.Add(sums[k], p)
		counts[k]++
	}
	return sums, counts
}

// assignLabelsParallel is the concurrent variant of assignLabels.
// Each worker labels a contiguous range of points; since the ranges don't
// overlap, no synchronization is needed for the writes.
// Falls back to assignLabels if workers <= 1 or there are few points.
func assignLabelsParallel(centers Centers, points [][]float64, workers int) []int {
	n := len(points)
	if workers <= 1 || n < parallelMinPoints {
		return assignLabels(centers, points)
	}

	labels := make([]int, n)

	var wg sync.WaitGroup
	perWorker := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if end > n {
			end = n
		}
		if start >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				labels[i] = centers.Closest(points[i])
			}
		}(start, end)
	}

	wg.Wait()
	return labels
}
