// Package scan implements the CodeScope aggregation pipeline: collect
// candidate files under a root, filter them by extension, size, age,
// pattern, and checksum, read the survivors with a bounded worker pool, and
// concatenate their contents into a single text artifact.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codescope/pkg/checksum"
	"codescope/pkg/config"
	"codescope/pkg/ignore"

	"go.uber.org/zap"
)

// IgnoreFileName is the optional per-project file supplying extra regex
// ignore patterns, one per line.
const IgnoreFileName = ".codescopeignore"

// Run executes the full pipeline for the given configuration. Setup
// failures (unreadable root, unwritable output location) are fatal and
// returned; per-file failures are logged and never abort the run.
func Run(cfg config.Config, logger *zap.Logger) error {
	startTime := time.Now()

	root, err := cfg.Root()
	if err != nil {
		return err
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("scan root is not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("scan root %s is not a directory", root)
	}

	folder, filename := cfg.OutputTarget()
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder %s: %w", folder, err)
	}

	logger.Info("Starting scan", zap.String("root", root))

	patterns := ignore.Compile(cfg.IgnorePatterns, logger)
	if extra := ignore.LoadPatternFile(filepath.Join(root, IgnoreFileName), logger); len(extra) > 0 {
		patterns.Append(extra...)
	}

	cache := checksum.Cache{}
	if cfg.UseChecksumCache {
		cache = checksum.Load(cfg.ChecksumCache, logger)
	}

	candidates := CollectCandidates(root, cfg, patterns, logger)
	logger.Info("Collected candidate files", zap.Int("candidates", len(candidates)))

	cutoff := cfg.Cutoff(logger)
	filtered := FilterCandidates(candidates, cfg, cutoff, patterns, cache, logger)
	logger.Info("Filtered files", zap.Int("remaining", len(filtered)))

	records := ReadFilesConcurrently(filtered, cfg.Threads, cfg.UseChecksumCache, logger)

	// The pool has drained; merge the workers' hashes into the cache
	// single-threaded instead of locking inside the read path.
	if cfg.UseChecksumCache {
		for _, rec := range records {
			if rec.Hash != "" {
				cache[rec.Path] = rec.Hash
			}
		}
	}

	outputPath := filepath.Join(folder, filename)
	finalPath, err := WriteOutput(records, outputPath, cfg.CompressOutput, logger)
	if err != nil {
		return err
	}

	if cfg.UseChecksumCache {
		checksum.Save(cfg.ChecksumCache, cache, logger)
	}

	logger.Info("Scan completed",
		zap.String("output", finalPath),
		zap.Int("files", len(records)),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}
