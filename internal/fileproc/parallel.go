// Package fileproc provides concurrent file processing utilities.
package fileproc

import (
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/panbanda/clonescan/pkg/extractor"
)

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for
// worker count. 2x is optimal for mixed I/O and CGO workloads.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

func defaultWorkers(maxWorkers int) int {
	if maxWorkers > 0 {
		return maxWorkers
	}
	return runtime.NumCPU() * DefaultWorkerMultiplier
}

// ExtractFiles runs the block extractor over files in parallel, one
// extractor per worker so parser and query caches are reused across
// that worker's files without locking. Results are returned in the
// same order as the input; per-file failures surface as FileResult.Err
// rather than aborting the run.
func ExtractFiles(files []string, newExtractor func() *extractor.Extractor, onProgress ProgressFunc) []extractor.FileResult {
	if len(files) == 0 {
		return nil
	}

	maxWorkers := defaultWorkers(0)
	if maxWorkers > len(files) {
		maxWorkers = len(files)
	}

	extractors := make(chan *extractor.Extractor, maxWorkers)
	for range maxWorkers {
		extractors <- newExtractor()
	}

	results := make([]extractor.FileResult, len(files))

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for i, path := range files {
		p.Go(func() {
			ex := <-extractors
			defer func() { extractors <- ex }()

			results[i] = ex.ExtractFile(path)

			if onProgress != nil {
				onProgress()
			}
		})
	}
	p.Wait()

	close(extractors)
	for ex := range extractors {
		ex.Close()
	}

	return results
}

// ForEachFile processes files in parallel, calling fn for each file.
// Results are collected in arbitrary order; files whose fn returns an
// error contribute no result.
func ForEachFile[T any](files []string, fn func(string) (T, error)) []T {
	return ForEachFileWithProgress(files, fn, nil)
}

// ForEachFileWithProgress processes files in parallel with optional
// progress callback.
func ForEachFileWithProgress[T any](files []string, fn func(string) (T, error), onProgress ProgressFunc) []T {
	if len(files) == 0 {
		return nil
	}

	results := make([]T, 0, len(files))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(defaultWorkers(0))
	for _, path := range files {
		p.Go(func() {
			result, err := fn(path)

			if onProgress != nil {
				onProgress()
			}
			if err != nil {
				return
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	p.Wait()

	return results
}
