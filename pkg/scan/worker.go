package scan

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"codescope/pkg/checksum"

	"go.uber.org/zap"
)

// ReadFilesConcurrently reads the filtered files using a bounded worker
// pool and returns the successfully read records. A per-file read failure
// is logged as a warning and that file is dropped from the result set; it
// never aborts the other in-flight reads. The returned order is the pool's
// completion order.
func ReadFilesConcurrently(candidates []Candidate, maxWorkers int, hashContent bool, logger *zap.Logger) []FileRecord {
	jobs := make(chan Candidate, len(candidates))
	results := make(chan FileRecord, len(candidates))
	var wg sync.WaitGroup

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}

	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		workerLogger := logger.With(zap.Int("workerID", w))
		go worker(jobs, results, hashContent, &wg, workerLogger)
	}

	for _, cand := range candidates {
		jobs <- cand
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	records := make([]FileRecord, 0, len(candidates))
	for rec := range results {
		records = append(records, rec)
	}

	logger.Debug("All files read", zap.Int("readFiles", len(records)))
	return records
}

// worker reads files from the jobs channel until it closes. Failures are
// logged and swallowed so one bad file never stalls the pool.
func worker(jobs <-chan Candidate, results chan<- FileRecord, hashContent bool, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()

	for cand := range jobs {
		rec, err := readSingleFile(cand, hashContent)
		if err != nil {
			logger.Warn("Dropping unreadable file",
				zap.String("file", cand.Path),
				zap.Error(err))
			continue
		}
		results <- rec
	}
}

// readSingleFile reads one file into a FileRecord. Content with embedded
// null bytes is treated as binary and rejected; invalid UTF-8 sequences are
// dropped from the decoded text. The content hash from the filter stage is
// carried through, or computed here if the filter never needed it.
func readSingleFile(cand Candidate, hashContent bool) (FileRecord, error) {
	data, err := os.ReadFile(cand.Path)
	if err != nil {
		return FileRecord{}, fmt.Errorf("error reading file %s: %w", cand.Path, err)
	}

	if looksBinary(data) {
		return FileRecord{}, fmt.Errorf("file %s appears to be binary", cand.Path)
	}

	hash := cand.Hash
	if hashContent && hash == "" {
		hash, err = checksum.File(cand.Path)
		if err != nil {
			return FileRecord{}, err
		}
	}

	return FileRecord{
		Path:    cand.Path,
		Content: strings.ToValidUTF8(string(data), ""),
		Hash:    hash,
	}, nil
}
