// Command kmeans clusters numeric CSV data and prints the cluster centers.
package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/larsgw/kmeans"
	"github.com/spf13/cobra"
)

var (
	flagK           int
	flagAlgorithm   string
	flagMaxIter     int
	flagSeed        int64
	flagWorkers     int
	flagSkipHeader  bool
	flagSkipColumns int
	flagLabelsPath  string
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "kmeans [flags] <input.csv>",
	Short: "Cluster CSV data with exact k-means",
	Long: `kmeans reads one point per CSV row, clusters the points with exact
k-means, and writes the cluster centers as CSV to stdout.

Inputs ending in .zst or .gz are decompressed transparently.

Examples:
  kmeans -k 10 points.csv
  kmeans -k 3 --seed 42 --labels labels.txt points.csv.zst
  kmeans -k 8 --algorithm lloyd --max-iterations 50 --skip-header points.csv.gz`,
	Args: cobra.ExactArgs(1),
	RunE: runCluster,
}

func init() {
	rootCmd.Flags().IntVarP(&flagK, "clusters", "k", 8, "Number of clusters")
	rootCmd.Flags().StringVarP(&flagAlgorithm, "algorithm", "a", "auto", "Assignment strategy: auto, lloyd, or tree")
	rootCmd.Flags().IntVarP(&flagMaxIter, "max-iterations", "m", 0, "Iteration cap (0 means run to convergence)")
	rootCmd.Flags().Int64VarP(&flagSeed, "seed", "s", 0, "Random seed (0 means derive one from the current time)")
	rootCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 0, "Worker goroutines (0 means one per CPU)")
	rootCmd.Flags().BoolVar(&flagSkipHeader, "skip-header", false, "Skip the first row of the input")
	rootCmd.Flags().IntVar(&flagSkipColumns, "skip-columns", 0, "Ignore the first N columns of every row")
	rootCmd.Flags().StringVarP(&flagLabelsPath, "labels", "l", "", "Write per-point cluster labels to this file, one per line")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log progress to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCluster(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path := args[0]
	data, err := readPoints(path, flagSkipHeader, flagSkipColumns)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%s: no data rows", path)
	}
	logger.Info("loaded input", "path", path, "points", len(data), "dims", len(data[0]))

	cfg := kmeans.Config{
		K:             flagK,
		Algorithm:     kmeans.Algorithm(flagAlgorithm),
		MaxIterations: flagMaxIter,
		Seed:          flagSeed,
		Workers:       flagWorkers,
	}

	start := time.Now()
	result, err := kmeans.Cluster(data, cfg)
	if err != nil {
		return err
	}
	logger.Info("clustering finished",
		"iterations", result.Iterations,
		"converged", result.Converged,
		"duration", time.Since(start).Round(time.Millisecond))

	if err := writeCenters(cmd.OutOrStdout(), result.Centers); err != nil {
		return err
	}
	if flagLabelsPath != "" {
		if err := writeLabels(flagLabelsPath, result.Labels); err != nil {
			return err
		}
		logger.Info("wrote labels", "path", flagLabelsPath)
	}
	return nil
}

// readPoints loads one point per CSV row from path, decompressing .zst and
// .gz inputs transparently.
func readPoints(path string, skipHeader bool, skipColumns int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	case strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		defer gr.Close()
		r = gr
	}

	return parsePoints(r, skipHeader, skipColumns)
}

// parsePoints parses numeric CSV rows into points. The header row is exempt
// from the field count check so that a label-style header can sit above
// wider or narrower data rows.
func parsePoints(r io.Reader, skipHeader bool, skipColumns int) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	var points [][]float64
	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++
		if skipHeader && row == 1 {
			continue
		}
		if skipColumns >= len(record) {
			return nil, fmt.Errorf("row %d: cannot skip %d of %d columns", row, skipColumns, len(record))
		}
		point := make([]float64, 0, len(record)-skipColumns)
		for _, field := range record[skipColumns:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			point = append(point, v)
		}
		if len(points) > 0 && len(point) != len(points[0]) {
			return nil, fmt.Errorf("row %d: got %d values, want %d", row, len(point), len(points[0]))
		}
		points = append(points, point)
	}
	return points, nil
}

// writeCenters writes one center per CSV row.
func writeCenters(w io.Writer, centers [][]float64) error {
	cw := csv.NewWriter(w)
	for _, c := range centers {
		record := make([]string, len(c))
		for d, v := range c {
			record[d] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeLabels writes one label per line to path.
func writeLabels(path string, labels []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, l := range labels {
		if _, err := fmt.Fprintln(w, l); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
