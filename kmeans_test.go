package kmeans

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.K != 8 {
		t.Errorf("K: got %d, want 8", cfg.K)
	}
	if cfg.Algorithm != AlgorithmAuto {
		t.Errorf("Algorithm: got %q, want %q", cfg.Algorithm, AlgorithmAuto)
	}
	if cfg.MaxIterations != 0 {
		t.Errorf("MaxIterations: got %d, want 0", cfg.MaxIterations)
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed: got %d, want 0", cfg.Seed)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers: got %d, want 0", cfg.Workers)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero K", func(c *Config) { c.K = 0 }},
		{"negative K", func(c *Config) { c.K = -3 }},
		{"negative MaxIterations", func(c *Config) { c.MaxIterations = -1 }},
		{"invalid algorithm", func(c *Config) { c.Algorithm = "bogus" }},
	}

	// Enough points that only the mutated field can cause an error.
	data := make([][]float64, 10)
	for i := range data {
		data[i] = []float64{float64(i), float64(i * 2)}
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Seed = 1
			tt.mutate(&cfg)
			_, err := Cluster(data, cfg)
			if err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestClusterFewerPointsThanK(t *testing.T) {
	data := [][]float64{{1, 2}, {3, 4}}
	cfg := DefaultConfig() // K=8
	cfg.Seed = 1
	_, err := Cluster(data, cfg)
	if err == nil {
		t.Error("expected error when there are fewer points than K")
	}
}

func TestClusterEmptyData(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	_, err := Cluster([][]float64{}, cfg)
	if err == nil {
		t.Error("expected error for empty data")
	}
}

func TestClusterTwoBlobs(t *testing.T) {
	data := twoBlobs(30, 7)

	cfg := DefaultConfig()
	cfg.K = 2
	cfg.Seed = 42
	result, err := Cluster(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Converged {
		t.Error("expected convergence on well-separated blobs")
	}
	if len(result.Centers) != 2 {
		t.Fatalf("expected 2 centers, got %d", len(result.Centers))
	}
	if len(result.Labels) != 60 {
		t.Fatalf("expected 60 labels, got %d", len(result.Labels))
	}

	// Every point in a blob shares a label, and the two blobs differ.
	first := result.Labels[0]
	for i := 1; i < 30; i++ {
		if result.Labels[i] != first {
			t.Fatalf("labels[%d] = %d, want %d (first blob split)", i, result.Labels[i], first)
		}
	}
	second := result.Labels[30]
	if second == first {
		t.Fatal("both blobs were assigned to the same center")
	}
	for i := 31; i < 60; i++ {
		if result.Labels[i] != second {
			t.Fatalf("labels[%d] = %d, want %d (second blob split)", i, result.Labels[i], second)
		}
	}

	if result.Counts[first] != 30 || result.Counts[second] != 30 {
		t.Errorf("counts: got %v, want 30 per blob", result.Counts)
	}

	// Each converged center sits at the mean of its blob.
	if !floats.EqualApprox(result.Centers[first], meanPoint(data[:30]), 1e-9) {
		t.Errorf("centers[%d] = %v, want mean of first blob %v", first, result.Centers[first], meanPoint(data[:30]))
	}
	if !floats.EqualApprox(result.Centers[second], meanPoint(data[30:]), 1e-9) {
		t.Errorf("centers[%d] = %v, want mean of second blob %v", second, result.Centers[second], meanPoint(data[30:]))
	}
}

func TestClusterSeedReproducible(t *testing.T) {
	data := twoBlobs(25, 11)
	cfg := DefaultConfig()
	cfg.K = 3
	cfg.Seed = 99

	r1, err := Cluster(data, cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	r2, err := Cluster(data, cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if r1.Iterations != r2.Iterations {
		t.Errorf("iterations differ: %d vs %d", r1.Iterations, r2.Iterations)
	}
	for k := range r1.Centers {
		if !floats.Equal(r1.Centers[k], r2.Centers[k]) {
			t.Errorf("centers[%d] differ: %v vs %v", k, r1.Centers[k], r2.Centers[k])
		}
	}
	for i := range r1.Labels {
		if r1.Labels[i] != r2.Labels[i] {
			t.Fatalf("labels[%d] differ: %d vs %d", i, r1.Labels[i], r2.Labels[i])
		}
	}
}

// TestClusterTreeMatchesLloyd runs the same seeded clustering through both
// assignment strategies. The tree path accumulates sums in a different
// order, so centers agree to within rounding while labels match exactly.
func TestClusterTreeMatchesLloyd(t *testing.T) {
	data := fourBlobs(60, 3)

	base := DefaultConfig()
	base.K = 4
	base.Seed = 5

	treeCfg := base
	treeCfg.Algorithm = AlgorithmTree
	lloydCfg := base
	lloydCfg.Algorithm = AlgorithmLloyd

	tr, err := Cluster(data, treeCfg)
	if err != nil {
		t.Fatalf("tree run: %v", err)
	}
	ll, err := Cluster(data, lloydCfg)
	if err != nil {
		t.Fatalf("lloyd run: %v", err)
	}

	for i := range tr.Labels {
		if tr.Labels[i] != ll.Labels[i] {
			t.Errorf("labels[%d]: tree=%d, lloyd=%d", i, tr.Labels[i], ll.Labels[i])
		}
	}
	for k := range tr.Centers {
		if !floats.EqualApprox(tr.Centers[k], ll.Centers[k], 1e-8) {
			t.Errorf("centers[%d]: tree=%v, lloyd=%v", k, tr.Centers[k], ll.Centers[k])
		}
	}
}

func TestClusterWorkersDoNotChangeResult(t *testing.T) {
	// Enough points to cross the parallel threshold.
	data := twoBlobs(400, 21)

	for _, algo := range []Algorithm{AlgorithmLloyd, AlgorithmTree} {
		cfg := DefaultConfig()
		cfg.K = 5
		cfg.Seed = 17
		cfg.Algorithm = algo

		serial := cfg
		serial.Workers = 1
		parallel := cfg
		parallel.Workers = 3

		r1, err := Cluster(data, serial)
		if err != nil {
			t.Fatalf("%s serial run: %v", algo, err)
		}
		r2, err := Cluster(data, parallel)
		if err != nil {
			t.Fatalf("%s parallel run: %v", algo, err)
		}

		if r1.Iterations != r2.Iterations {
			t.Errorf("%s: iterations differ: %d vs %d", algo, r1.Iterations, r2.Iterations)
		}
		for k := range r1.Centers {
			if !floats.Equal(r1.Centers[k], r2.Centers[k]) {
				t.Errorf("%s: centers[%d] differ: %v vs %v", algo, k, r1.Centers[k], r2.Centers[k])
			}
		}
		for i := range r1.Labels {
			if r1.Labels[i] != r2.Labels[i] {
				t.Fatalf("%s: labels[%d] differ: %d vs %d", algo, i, r1.Labels[i], r2.Labels[i])
			}
		}
	}
}

func TestClusterDoesNotModifyInput(t *testing.T) {
	data := twoBlobs(20, 31)
	saved := clonePoints(data)

	cfg := DefaultConfig()
	cfg.K = 2
	cfg.Seed = 8
	if _, err := Cluster(data, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range data {
		if !floats.Equal(data[i], saved[i]) {
			t.Errorf("data[%d] was modified: %v, want %v", i, data[i], saved[i])
		}
	}
}

// --- Helpers ---

// twoBlobs returns perBlob points scattered in the unit square at the
// origin followed by perBlob points scattered in the unit square at
// (100, 100).
func twoBlobs(perBlob int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	points := make([][]float64, 0, 2*perBlob)
	for i := 0; i < perBlob; i++ {
		points = append(points, []float64{rng.Float64(), rng.Float64()})
	}
	for i := 0; i < perBlob; i++ {
		points = append(points, []float64{100 + rng.Float64(), 100 + rng.Float64()})
	}
	return points
}

// fourBlobs returns perBlob points around each corner of a 100x100 square.
func fourBlobs(perBlob int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	corners := [][]float64{{0, 0}, {0, 100}, {100, 0}, {100, 100}}
	points := make([][]float64, 0, 4*perBlob)
	for _, c := range corners {
		for i := 0; i < perBlob; i++ {
			points = append(points, []float64{c[0] + rng.Float64(), c[1] + rng.Float64()})
		}
	}
	return points
}

// meanPoint returns the coordinate-wise mean of points.
func meanPoint(points [][]float64) []float64 {
	m := make([]float64, len(points[0]))
	for _, p := range points {
		floats.Add(m, p)
	}
	divScalar(m, float64(len(points)))
	return m
}
