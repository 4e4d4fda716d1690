// Package inspect reports page counts of queued documents.
package inspect

import (
	"runtime"
	"sync"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"
)

// PageCounter returns the number of pages of the document at path.
type PageCounter func(path string) (int, error)

// PDFCPUPageCount counts pages with pdfcpu.
func PDFCPUPageCount(path string) (int, error) {
	return pdfapi.PageCountFile(path)
}

// PageInfo is the page count of one input, or the error reading it.
type PageInfo struct {
	Index int    // Position in the input list.
	Path  string // Input path.
	Pages int    // Page count, zero on error.
	Err   error  // Failure to open or parse the input.
}

type job struct {
	index int
	path  string
}

// PageCounts counts the pages of every path using a pool of maxWorkers
// goroutines. Results are returned in input order. maxWorkers <= 0 uses one
// worker per CPU.
func PageCounts(paths []string, maxWorkers int, count PageCounter, logger *zap.Logger) []PageInfo {
	if logger == nil {
		logger = zap.NewNop()
	}
	if count == nil {
		count = PDFCPUPageCount
	}
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}
	if maxWorkers > len(paths) {
		maxWorkers = len(paths)
	}

	jobs := make(chan job, len(paths))
	results := make(chan PageInfo, len(paths))
	var wg sync.WaitGroup

	logger.Debug("Initializing worker pool", zap.Int("workers", maxWorkers))
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go worker(w, jobs, results, count, &wg, logger.With(zap.Int("workerID", w)))
	}

	for i, p := range paths {
		jobs <- job{index: i, path: p}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	infos := make([]PageInfo, len(paths))
	for info := range results {
		infos[info.Index] = info
	}

	logger.Debug("All files inspected", zap.Int("inspectedFiles", len(infos)))
	return infos
}

func worker(id int, jobs <-chan job, results chan<- PageInfo, count PageCounter, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()

	for j := range jobs {
		pages, err := count(j.path)
		if err != nil {
			logger.Warn("Failed to count pages", zap.String("filePath", j.path), zap.Error(err))
			results <- PageInfo{Index: j.index, Path: j.path, Err: err}
			continue
		}
		results <- PageInfo{Index: j.index, Path: j.path, Pages: pages}
	}
	logger.Debug("Worker finished processing", zap.Int("workerID", id))
}

// Total sums the page counts of infos, ignoring failed entries.
func Total(infos []PageInfo) int {
	total := 0
	for _, info := range infos {
		if info.Err == nil {
			total += info.Pages
		}
	}
	return total
}
