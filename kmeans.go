package kmeans

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Algorithm selects the assignment strategy for the update passes.
type Algorithm string

const (
	// AlgorithmAuto picks between the tree and brute-force paths based on
	// data dimensionality.
	AlgorithmAuto Algorithm = "auto"

	// AlgorithmLloyd assigns points by a brute-force nearest-center scan.
	AlgorithmLloyd Algorithm = "lloyd"

	// AlgorithmTree assigns points through a kd-tree with cached
	// aggregates, crediting whole subtrees to a center once its ownership
	// of their bounding box is proven.
	AlgorithmTree Algorithm = "tree"
)

// Config controls k-means clustering behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// K is the number of clusters. Must be >= 1 and at most the number of
	// data points. Default: 8.
	K int

	// Algorithm selects the assignment strategy. "auto" picks based on
	// dimensionality. "lloyd" scans every point-center pair. "tree" prunes
	// the scan through a kd-tree with cached aggregates (fastest for
	// low-dimensional data). Default: "auto".
	Algorithm Algorithm

	// MaxIterations caps the number of update passes. 0 means iterate
	// until the centers stop moving. Must be >= 0. Default: 0.
	MaxIterations int

	// Seed seeds the random source used to pick the initial centers and
	// the median pivots during tree construction. 0 means derive a seed
	// from the current time; any other value makes the run reproducible.
	// Default: 0.
	Seed int64

	// Workers controls the number of goroutines used by the update passes.
	// 0 means use runtime.NumCPU(). Default: 0 (auto).
	Workers int
}

// Result contains the output of k-means clustering.
type Result struct {
	// Centers holds the K cluster centers.
	Centers [][]float64

	// Labels assigns each data point the index of its nearest center.
	Labels []int

	// Counts is the number of points assigned to each center.
	Counts []int

	// Iterations is the number of update passes performed.
	Iterations int

	// Converged reports whether the centers reached a fixed point before
	// MaxIterations stopped the run. Always true when MaxIterations is 0.
	Converged bool
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		K:         8,
		Algorithm: AlgorithmAuto,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.K < 1 {
		return fmt.Errorf("kmeans: K must be >= 1, got %d", cfg.K)
	}
	if cfg.MaxIterations < 0 {
		return fmt.Errorf("kmeans: MaxIterations must be >= 0 (0 means run to convergence), got %d", cfg.MaxIterations)
	}
	switch cfg.Algorithm {
	case AlgorithmAuto, AlgorithmLloyd, AlgorithmTree:
		// valid
	default:
		return fmt.Errorf("kmeans: invalid Algorithm %q", cfg.Algorithm)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
// K is deliberately not defaulted here; a zero K is a validation error.
func applyDefaults(cfg *Config) {
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmAuto
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// Cluster performs k-means clustering on the given data.
// Each element is a point (float64 slice); all points must have the same
// dimensionality. The input is never modified. Returns an error if the
// config is invalid or there are fewer points than clusters.
func Cluster(data [][]float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	n := len(data)
	if n < cfg.K {
		return nil, fmt.Errorf("kmeans: need at least K=%d points, got %d", cfg.K, n)
	}

	dims := len(data[0])
	algo := selectAlgorithm(cfg, dims)
	rng := rand.New(rand.NewSource(cfg.Seed))

	centers := initialCenters(data, cfg.K, rng)

	var tree *Tree
	if algo == AlgorithmTree {
		tree = NewTree(data, rng)
	}

	iterations := 0
	converged := false
	for cfg.MaxIterations == 0 || iterations < cfg.MaxIterations {
		var sums [][]float64
		var counts []int
		if tree != nil {
			sums, counts = centers.UpdateParallel(tree, cfg.Workers)
		} else {
			sums, counts = lloydTotalsParallel(centers, data, cfg.Workers)
		}
		iterations++

		changed := false
		for k := range centers {
			if counts[k] == 0 {
				// A center that claimed no points keeps its position.
				continue
			}
			divScalar(sums[k], float64(counts[k]))
			if !floats.Equal(centers[k], sums[k]) {
				changed = true
			}
			centers[k] = sums[k]
		}
		if !changed {
			converged = true
			break
		}
	}

	labels := assignLabelsParallel(centers, data, cfg.Workers)
	counts := make([]int, cfg.K)
	for _, l := range labels {
		counts[l]++
	}

	return &Result{
		Centers:    centers,
		Labels:     labels,
		Counts:     counts,
		Iterations: iterations,
		Converged:  converged,
	}, nil
}

// initialCenters picks k distinct data points uniformly at random and
// returns independent copies of them. Distinct indices do not guarantee
// distinct coordinates when the data contains duplicate points.
func initialCenters(data [][]float64, k int, rng *rand.Rand) Centers {
	centers := make(Centers, k)
	for i, j := range rng.Perm(len(data))[:k] {
		centers[i] = clonePoint(data[j])
	}
	return centers
}
