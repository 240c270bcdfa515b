// Package batch discovers and processes many sample stats files, fanning
// the per-sample pipeline out over a worker pool while reporting results in
// discovery order.
package batch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// Sample is one discovered stats file.
type Sample struct {
	Name      string // derived from the file name
	StatsPath string
}

// Discover walks dir recursively and returns all gene_stats_*.txt samples
// in walk order.
func Discover(dir string) ([]Sample, error) {
	var samples []Sample
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "gene_stats_") && strings.HasSuffix(name, ".txt") {
			samples = append(samples, Sample{Name: SampleName(name), StatsPath: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk input directory: %w", err)
	}
	return samples, nil
}

// SampleName derives the sample name from a stats file name by stripping
// the gene_stats_ prefix and the .txt/.csv extension.
func SampleName(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".txt")
	name = strings.TrimSuffix(name, ".csv")
	if strings.HasPrefix(name, "gene_stats_") {
		return strings.TrimPrefix(name, "gene_stats_")
	}
	return name
}

// WorkItem is one sample queued for processing.
type WorkItem struct {
	Seq    int
	Sample Sample
}

// WorkResult holds the outcome of processing one sample.
type WorkResult struct {
	Seq    int
	Sample Sample
	Err    error
}

// ProcessFunc processes one sample.
type ProcessFunc func(Sample) error

// Run processes work items using a pool of workers and returns a channel of
// results in arrival order. Use OrderedCollect to consume results in
// sequence order. If workers is 0, runtime.NumCPU() is used.
func Run(items <-chan WorkItem, workers int, process ProcessFunc) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- WorkResult{
					Seq:    item.Seq,
					Sample: item.Sample,
					Err:    process(item.Sample),
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order. It
// buffers out-of-order results and emits them as soon as the next expected
// sequence number is available. Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
