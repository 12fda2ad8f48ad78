package kmeans

import (
	"iter"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Tree is a kd-tree over a fixed point set in which every node caches
// aggregate statistics of the points beneath it: their count, their center
// of mass, and the sum of their Euclidean norms. The cached aggregates let
// an assignment traversal account for a whole subtree in O(1) once a single
// nearest center has been established for its bounding box.
//
// Nodes form a binary tree with exactly one point per leaf. A node is a
// leaf iff left and right are nil; internal nodes record the dimension and
// coordinate they were split at. The tree holds references to the caller's
// point rows and never mutates them; callers must not mutate them either
// while the tree is in use.
type Tree struct {
	bounds  HyperRect
	count   int       // number of points in the subtree
	com     []float64 // center of mass of the subtree's points
	normSum float64   // sum of Euclidean norms of the subtree's points

	point []float64 // leaf payload; nil on internal nodes

	splitDim int
	splitVal float64
	left     *Tree
	right    *Tree
}

// NewTree builds a Tree over the given points. rng supplies the pivot
// choices for the median splits; a seeded rng gives a reproducible tree
// shape. Points are split at the median of one coordinate per level,
// cycling through the dimensions round-robin starting at 0, with ties going
// to the lower half. Panics if points is empty.
func NewTree(points [][]float64, rng *rand.Rand) *Tree {
	if len(points) == 0 {
		panic("kmeans: NewTree requires at least one point")
	}
	return makeNode(points, boundingRect(points), 0, rng)
}

// makeNode recursively builds the subtree for points, known to lie within
// bounds, splitting first along dimension dim.
func makeNode(points [][]float64, bounds HyperRect, dim int, rng *rand.Rand) *Tree {
	t := &Tree{
		bounds: bounds,
		count:  len(points),
		com:    make([]float64, len(points[0])),
	}
	for _, p := range points {
		floats.Add(t.com, p)
		t.normSum += floats.Norm(p, 2)
	}
	divScalar(t.com, float64(t.count))

	if len(points) == 1 {
		t.point = points[0]
		return t
	}

	v := Median(points, dim, rng)
	lowerPts, upperPts := splitPoints(points, dim, v)
	lowerBox, upperBox := bounds.Split(dim, v)

	next := (dim + 1) % len(points[0])
	t.splitDim = dim
	t.splitVal = v
	t.left = makeNode(lowerPts, lowerBox, next, rng)
	t.right = makeNode(upperPts, upperBox, next, rng)
	return t
}

// splitPoints partitions points around value v on dimension dim, ties to the
// lower half, preserving relative order. The lower-median property of v
// guarantees the lower half is never empty; when every point is <= v the
// split degenerates and a fallback keeps both halves non-empty: first a
// strict-< partition, and if the points do not differ on dim at all, a plain
// positional split.
func splitPoints(points [][]float64, dim int, v float64) (lower, upper [][]float64) {
	for _, p := range points {
		if p[dim] <= v {
			lower = append(lower, p)
		} else {
			upper = append(upper, p)
		}
	}
	if len(upper) > 0 {
		return lower, upper
	}

	lower, upper = lower[:0], upper[:0]
	for _, p := range points {
		if p[dim] < v {
			lower = append(lower, p)
		} else {
			upper = append(upper, p)
		}
	}
	if len(lower) > 0 {
		return lower, upper
	}

	half := (len(points) + 1) / 2
	return points[:half:half], points[half:]
}

// Points yields every point stored in the subtree, leftmost leaf first.
// Intended for diagnostics and testing; the assignment traversal never
// enumerates points.
func (t *Tree) Points() iter.Seq[[]float64] {
	return func(yield func([]float64) bool) {
		t.pushPoints(yield)
	}
}

func (t *Tree) pushPoints(yield func([]float64) bool) bool {
	if t.isLeaf() {
		return yield(t.point)
	}
	return t.left.pushPoints(yield) && t.right.pushPoints(yield)
}

func (t *Tree) isLeaf() bool { return t.left == nil }

// --- aggregate accessors ---

// Count returns the number of points in the subtree.
func (t *Tree) Count() int { return t.count }

// CenterOfMass returns the mean of the subtree's points. The returned slice
// is shared with the tree and must not be modified.
func (t *Tree) CenterOfMass() []float64 { return t.com }

// NormSum returns the sum of the Euclidean norms of the subtree's points.
func (t *Tree) NormSum() float64 { return t.normSum }

// Bounds returns the node's bounding box. The box of the root is the tight
// bounding box of the input; child boxes partition their parent at the
// split coordinate.
func (t *Tree) Bounds() HyperRect { return t.bounds }
