// Package main provides a performance benchmarking tool for the covidash CLI.
// It times each command against a dataset file and against the dataset store,
// treating the first successful run as cold and averaging the rest as warm,
// and writes the results as CSV.
//
// Prerequisites:
// - covidash binary installed and available in PATH
// - A dataset file such as covid_19_clean_complete.csv
//
// Usage: go run benchmark/main.go [dataset-file]
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run per source.
type BenchmarkResult struct {
	Command   string
	FileCold  string
	FileWarm  string
	StoreCold string
	StoreWarm string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Dataset  string
	StoreDB  string
	Timeout  time.Duration
	Runs     int
	Commands [][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [dataset-file]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		Dataset: os.Args[1],
		StoreDB: filepath.Join(os.TempDir(), "covidash_benchmark.db"),
		Timeout: 2 * time.Minute,
		Runs:    4,
		Commands: [][]string{
			{"summary"},
			{"pie", "--country", "India"},
			{"bar", "--region", "Europe"},
			{"maps"},
			{"contribution", "--contribution-type", "Deaths"},
			{"export", "--output-dir", os.TempDir()},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Importing %s into %s...\n", config.Dataset, config.StoreDB)
	importCmd := exec.Command("covidash", "store", "import", config.Dataset, "--store-db-connect", config.StoreDB)
	if output, err := importCmd.CombinedOutput(); err != nil {
		fmt.Printf("Failed to import dataset: %v\nOutput: %s\n", err, string(output))
		os.Exit(1)
	}
	defer func() { _ = os.Remove(config.StoreDB) }()

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the covidash binary and the dataset exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("covidash"); err != nil {
		return fmt.Errorf("covidash binary not found in PATH")
	}
	if _, err := os.Stat(config.Dataset); err != nil {
		return fmt.Errorf("dataset not found at %s: %w", config.Dataset, err)
	}
	return nil
}

// runBenchmarks times every command against both sources
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d commands, %v timeout, %d runs per source\n",
		len(config.Commands), config.Timeout, config.Runs)

	for _, command := range config.Commands {
		fmt.Printf("Benchmarking %s\n", command[0])

		fileArgs := append(append([]string{}, command...), config.Dataset, "--output", "csv")
		fileCold, fileWarm := summarize(runBenchmark(config, fileArgs))

		storeArgs := append(append([]string{}, command...), "--source", "store", "--store-db-connect", config.StoreDB, "--output", "csv")
		storeCold, storeWarm := summarize(runBenchmark(config, storeArgs))

		fmt.Printf("  File: cold %s, warm %s; Store: cold %s, warm %s\n", fileCold, fileWarm, storeCold, storeWarm)
		results = append(results, BenchmarkResult{
			Command:   command[0],
			FileCold:  fileCold,
			FileWarm:  fileWarm,
			StoreCold: storeCold,
			StoreWarm: storeWarm,
		})
	}

	return results
}

// summarize formats the cold time and the average of the warm times
func summarize(times []float64) (cold, warm string) {
	if len(times) == 0 {
		return "TIMEOUT", "TIMEOUT"
	}
	cold = fmt.Sprintf("%.3fs", times[0])
	if len(times) == 1 {
		return cold, "n/a"
	}
	var sum float64
	for _, t := range times[1:] {
		sum += t
	}
	return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
}

// runBenchmark executes a covidash command multiple times and returns the successful run times
func runBenchmark(config BenchmarkConfig, args []string) []float64 {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()
		cmd := exec.Command("covidash", args...)

		done := make(chan error, 1)
		go func() {
			_, err := cmd.CombinedOutput()
			done <- err
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}
	return times
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("covidash_benchmark_%s.csv", timestamp))

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

	if err := writer.Write([]string{"cmd", "file_cold", "file_warm", "store_cold", "store_warm"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Command, result.FileCold, result.FileWarm, result.StoreCold, result.StoreWarm}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-12s: File: %s / %s, Store: %s / %s\n",
			result.Command, result.FileCold, result.FileWarm, result.StoreCold, result.StoreWarm)
	}
}
