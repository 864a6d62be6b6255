// Package main provides a performance benchmarking tool for the appraise CLI.
// It generates rosters of increasing size, seeds every store backend with a full
// evaluation of each task and times the ranking command. The first successful run of
// each backend is treated as cold and the rest are averaged as warm.
//
// Prerequisites:
// - appraise binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated rosters and stores (created if missing)
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/huangsam/appraise/schema"
	"gopkg.in/yaml.v3"
)

// BenchmarkResult holds the timings of one roster size on one backend.
type BenchmarkResult struct {
	Assignees int
	Backend   string
	SeedTime  string
	ColdTime  string
	WarmTime  string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir        string
	Period         string
	Timeout        time.Duration
	Runs           int
	TasksPerPerson int
	Sizes          []int
	Backends       []string
}

// rosterFile mirrors the roster YAML layout read by --roster.
type rosterFile struct {
	Assignees []schema.Assignee `yaml:"assignees"`
	Tasks     []schema.Task     `yaml:"tasks"`
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:        os.Args[1],
		Period:         "2025-H1",
		Timeout:        2 * time.Minute,
		Runs:           4,
		TasksPerPerson: 4,
		Sizes:          []int{10, 100, 1000},
		Backends:       []string{"blob", "sqlite"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the appraise binary exists and prepares the work dir
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("appraise"); err != nil {
		return fmt.Errorf("appraise binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// runBenchmarks generates every roster size and benchmarks it on every backend
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: sizes %v, backends %v, %d runs, %v timeout\n",
		config.Sizes, config.Backends, config.Runs, config.Timeout)

	for _, size := range config.Sizes {
		rosterPath, evalPath, err := generateFixtures(config, size)
		if err != nil {
			fmt.Printf("Skipping %d assignees: %v\n", size, err)
			continue
		}
		for _, backend := range config.Backends {
			results = append(results, runBenchmarkSuite(config, size, backend, rosterPath, evalPath))
		}
	}

	return results
}

// generateFixtures writes a roster and a fully evaluated store blob for size assignees
func generateFixtures(config BenchmarkConfig, size int) (rosterPath, evalPath string, err error) {
	roster := rosterFile{}
	evals := schema.EvaluationMap{}

	for i := range size {
		assigneeID := fmt.Sprintf("user%04d", i)
		roster.Assignees = append(roster.Assignees, schema.Assignee{
			ID:         assigneeID,
			Name:       fmt.Sprintf("Benchmark User %d", i),
			Department: fmt.Sprintf("Team %d", i%8),
		})
		for j := range config.TasksPerPerson {
			taskType := schema.PlanningTask
			if j%2 == 1 {
				taskType = schema.DevelopmentTask
			}
			taskID := fmt.Sprintf("t%04d-%d", i, j)
			roster.Tasks = append(roster.Tasks, schema.Task{ID: taskID, AssigneeID: assigneeID, Name: "Task " + taskID, Type: taskType})
			evals[schema.EvaluationKey(config.Period, taskID)] = schema.TaskEvaluationData{
				Metrics: map[string]schema.MetricData{
					"plan_specificity":    {ConfigID: "plan_specificity", InputValue: float64(90 + (i+j)%60)},
					"schedule_changes":    {ConfigID: "schedule_changes", InputValue: float64((i * j) % 6)},
					"start_compliance":    {ConfigID: "start_compliance", InputValue: float64(70 + i%31)},
					"deadline_compliance": {ConfigID: "deadline_compliance", InputValue: float64(60 + j*10)},
					"delay_days":          {ConfigID: "delay_days", InputValue: float64(i % 20)},
				},
				QualitativeScore: float64(60 + (i+j)%41),
			}
		}
	}

	rosterData, err := yaml.Marshal(roster)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode roster: %w", err)
	}
	evalData, err := json.Marshal(evals)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode evaluations: %w", err)
	}

	rosterPath = filepath.Join(config.WorkDir, fmt.Sprintf("roster_%d.yaml", size))
	evalPath = filepath.Join(config.WorkDir, fmt.Sprintf("evals_%d.json", size))
	if err := os.WriteFile(rosterPath, rosterData, 0o644); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(evalPath, evalData, 0o644); err != nil {
		return "", "", err
	}
	return rosterPath, evalPath, nil
}

// runBenchmarkSuite seeds a fresh store for one backend and times the ranking runs
func runBenchmarkSuite(config BenchmarkConfig, size int, backend, rosterPath, evalPath string) BenchmarkResult {
	fmt.Printf("Benchmarking %d assignees on %s\n", size, backend)

	storePath := filepath.Join(config.WorkDir, fmt.Sprintf("store_%d_%s", size, backend))
	storeArgs := []string{"--store-backend", backend, "--store-path", storePath}

	if _, err := runAppraise(config, append([]string{"store", "clear"}, storeArgs...)); err != nil {
		fmt.Printf("  Warning: failed to clear store: %v\n", err)
	}

	seedTime := "FAILED"
	if d, err := runAppraise(config, append([]string{"store", "import", evalPath}, storeArgs...)); err == nil {
		seedTime = fmt.Sprintf("%.3fs", d)
	} else {
		fmt.Printf("  Warning: failed to seed store: %v\n", err)
	}

	args := append([]string{"ranking", "--output", "json", "--period", config.Period, "--roster", rosterPath}, storeArgs...)
	var times []float64
	for range config.Runs {
		if d, err := runAppraise(config, args); err == nil {
			times = append(times, d)
		}
	}

	coldTime, warmTime := "TIMEOUT", "TIMEOUT"
	if len(times) > 0 {
		coldTime = fmt.Sprintf("%.3fs", times[0])
	}
	if len(times) > 1 {
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		warmTime = fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
	}

	fmt.Printf("  Seed: %s, Cold: %s, Warm average: %s\n", seedTime, coldTime, warmTime)

	return BenchmarkResult{
		Assignees: size,
		Backend:   backend,
		SeedTime:  seedTime,
		ColdTime:  coldTime,
		WarmTime:  warmTime,
	}
}

// runAppraise executes one appraise command and returns its wall time in seconds
func runAppraise(config BenchmarkConfig, args []string) (float64, error) {
	start := time.Now()
	cmd := exec.Command("appraise", args...)
	cmd.Dir = config.WorkDir

	done := make(chan error, 1)
	var output []byte
	go func() {
		var err error
		output, err = cmd.CombinedOutput()
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return 0, fmt.Errorf("%w: %s", err, output)
		}
		return time.Since(start).Seconds(), nil
	case <-time.After(config.Timeout):
		_ = cmd.Process.Kill()
		return 0, fmt.Errorf("timed out after %v", config.Timeout)
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("appraise_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"assignees", "backend", "seed_time", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		row := []string{fmt.Sprint(result.Assignees), result.Backend, result.SeedTime, result.ColdTime, result.WarmTime}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results grouped by backend
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, backend := range []string{"blob", "sqlite"} {
		fmt.Printf("%s backend:\n", backend)
		for _, result := range results {
			if result.Backend == backend {
				fmt.Printf("  %6d assignees: Seed: %s, Cold: %s, Warm: %s\n", result.Assignees, result.SeedTime, result.ColdTime, result.WarmTime)
			}
		}
	}
}
