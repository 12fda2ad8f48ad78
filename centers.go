package kmeans

import "gonum.org/v1/gonum/floats"

// Centers is a set of cluster centers consulted during an assignment pass.
// The methods treat both the centers and the tree as read-only and retain
// no references to either.
type Centers [][]float64

// Closest returns the index of the center nearest to p. Ties break toward
// the lower index.
func (c Centers) Closest(p []float64) int {
	best := 0
	bestDist := Distance(p, c[0])
	for i := 1; i < len(c); i++ {
		if d := Distance(p, c[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Owner returns the index of the center that owns box: the center proven to
// be strictly closest to every point inside it. A center owns the box when
// it is the unique nearest center to the box itself and it dominates every
// other center over the box. Returns ok=false when no owner can be proven;
// a false result says nothing about whether a single center actually claims
// all of the box's points.
func (c Centers) Owner(box HyperRect) (int, bool) {
	best := 0
	bestDist := box.Distance(c[0])
	unique := true
	for i := 1; i < len(c); i++ {
		d := box.Distance(c[i])
		if d < bestDist {
			best = i
			bestDist = d
			unique = true
		} else if d == bestDist {
			unique = false
		}
	}
	if !unique {
		return 0, false
	}
	for i := range c {
		if i != best && !dominates(c[best], c[i], box) {
			return 0, false
		}
	}
	return best, true
}

// dominates reports whether every point of box is strictly closer to c1
// than to c2. It suffices to test the single corner of box most favorable
// to c2: the squared-distance difference is linear in each coordinate, so
// it is maximized at the corner that takes box.Max where c1 < c2 and
// box.Min elsewhere.
func dominates(c1, c2 []float64, box HyperRect) bool {
	p := make([]float64, len(c1))
	for d := range c1 {
		if c1[d] < c2[d] {
			p[d] = box.Max[d]
		} else {
			p[d] = box.Min[d]
		}
	}
	return Distance(p, c1) < Distance(p, c2)
}

// Update performs one assignment pass over the tree and returns, for each
// center, the coordinate sum and the count of the points whose nearest
// center it is. Subtrees whose bounding box has a proven owner contribute
// their cached aggregates wholesale without visiting their points; only
// contested regions are descended. Counts match a full per-point scan
// exactly; sums match up to floating-point summation order.
func (c Centers) Update(t *Tree) (sums [][]float64, counts []int) {
	if sums, counts, ok := c.updateNode(t); ok {
		return sums, counts
	}
	sums, counts = c.Update(t.left)
	rs, rc := c.Update(t.right)
	combineTotals(sums, counts, rs, rc)
	return sums, counts
}

// updateNode resolves the two non-recursive cases of an assignment pass:
// a leaf assigns its single point by distance, and an owned box contributes
// count*centerOfMass to the owner. ok=false means the node is contested and
// the caller must descend.
func (c Centers) updateNode(t *Tree) ([][]float64, []int, bool) {
	if t.isLeaf() {
		sums := zeroPoints(len(c), len(t.point))
		counts := make([]int, len(c))
		k := c.Closest(t.point)
		floats.Add(sums[k], t.point)
		counts[k] = 1
		return sums, counts, true
	}
	if owner, ok := c.Owner(t.bounds); ok {
		sums := zeroPoints(len(c), len(t.com))
		counts := make([]int, len(c))
		floats.AddScaled(sums[owner], float64(t.count), t.com)
		counts[owner] = t.count
		return sums, counts, true
	}
	return nil, nil, false
}

// combineTotals folds the right-hand totals into the left-hand ones
// elementwise. Keeping the fold direction fixed keeps the summation order
// of Update independent of how the recursion is scheduled.
func combineTotals(sums [][]float64, counts []int, rs [][]float64, rc []int) {
	for k := range sums {
		floats.Add(sums[k], rs[k])
		counts[k] += rc[k]
	}
}
