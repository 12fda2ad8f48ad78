// Package kmeans implements exact k-means clustering (Lloyd's algorithm)
// accelerated by a multiresolution kd-tree.
//
// The tree stores aggregate statistics (point count, center of mass, summed
// norms) at every node. During an update pass, a subtree whose bounding box
// provably belongs to a single center is credited to that center wholesale
// from its cached aggregates, without visiting its points. The result is
// identical to running plain Lloyd iterations; the geometry only prunes
// work, it never changes which center a point is assigned to.
//
// Basic usage:
//
//	cfg := kmeans.DefaultConfig()
//	cfg.K = 10
//	cfg.Seed = 42
//	result, err := kmeans.Cluster(data, cfg)
//	// result.Centers[k] is the position of center k
//	// result.Labels[i] is the center index assigned to point i
//
// # Algorithm selection
//
// By default (Algorithm: "auto"), Cluster uses the tree-accelerated path for
// low-dimensional data, where box-based pruning is effective, and falls back
// to the brute-force scan in high dimension. Set Config.Algorithm to force a
// specific strategy:
//
//	cfg.Algorithm = kmeans.AlgorithmLloyd  // brute-force nearest-center scan
//	cfg.Algorithm = kmeans.AlgorithmTree   // kd-tree with ownership pruning
package kmeans
