package kmeans

// treeMaxDims bounds the dimensionality for which AlgorithmAuto selects the
// tree-accelerated path. Axis-aligned pruning proves ownership less often
// as dimensionality grows, until the tree traversal degenerates into a
// slower full scan.
const treeMaxDims = 30

// selectAlgorithm resolves AlgorithmAuto into a concrete algorithm choice
// based on data dimensionality.
func selectAlgorithm(cfg Config, dims int) Algorithm {
	if cfg.Algorithm != AlgorithmAuto {
		return cfg.Algorithm
	}
	if dims <= treeMaxDims {
		return AlgorithmTree
	}
	return AlgorithmLloyd
}
