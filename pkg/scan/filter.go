package scan

import (
	"fmt"
	"os"
	"strings"
	"time"

	"codescope/pkg/checksum"
	"codescope/pkg/config"
	"codescope/pkg/ignore"

	"go.uber.org/zap"
)

// IsExcluded applies the exclusion rules to a candidate in fixed order,
// short-circuiting on the first rule that matches:
//
//  1. the path ends with an ignored extension;
//  2. the file exceeds the maximum size;
//  3. the file was last modified before the cutoff date;
//  4. the path matches an ignore pattern;
//  5. with checksum caching enabled, the content hash equals the cached
//     hash for the same path, meaning the file is unchanged.
//
// The hash computed for rule 5 is returned so the read phase can reuse it
// instead of hashing the file a second time. A metadata or hash failure is
// returned as an error for this single file.
func IsExcluded(path string, cfg config.Config, cutoff time.Time, patterns ignore.Matcher, cache checksum.Cache) (bool, string, error) {
	for _, ext := range cfg.IgnoreExtensions {
		if strings.HasSuffix(path, ext) {
			return true, "", nil
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > cfg.MaxFileSize {
		return true, "", nil
	}

	if info.ModTime().Before(cutoff) {
		return true, "", nil
	}

	if patterns.MatchesPath(path) {
		return true, "", nil
	}

	if cfg.UseChecksumCache {
		hash, err := checksum.File(path)
		if err != nil {
			return false, "", err
		}
		if old, ok := cache[path]; ok && old == hash {
			return true, hash, nil
		}
		return false, hash, nil
	}

	return false, "", nil
}

// FilterCandidates reduces the candidate list to the files that pass every
// exclusion rule. A per-file filtering failure excludes that file with a
// warning and never aborts the run.
func FilterCandidates(candidates []string, cfg config.Config, cutoff time.Time, patterns ignore.Matcher, cache checksum.Cache, logger *zap.Logger) []Candidate {
	filtered := make([]Candidate, 0, len(candidates))
	for _, path := range candidates {
		excluded, hash, err := IsExcluded(path, cfg, cutoff, patterns, cache)
		if err != nil {
			logger.Warn("Excluding file after filter error",
				zap.String("file", path),
				zap.Error(err))
			continue
		}
		if excluded {
			logger.Debug("Excluded file", zap.String("file", path))
			continue
		}
		filtered = append(filtered, Candidate{Path: path, Hash: hash})
	}
	return filtered
}
