// Package checksum persists the path-to-content-hash cache used to detect
// unchanged files across runs.
package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// ChunkSize is the read buffer size used when hashing file contents.
const ChunkSize = 8192

// Cache maps a file path to the hex digest of its content.
type Cache map[string]string

// Load reads a path-to-hash JSON mapping from the cache file. Any read or
// parse failure yields an empty cache with a warning; it is never fatal.
func Load(path string, logger *zap.Logger) Cache {
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Could not load checksum cache",
				zap.String("file", path),
				zap.Error(err))
		}
		return Cache{}
	}

	cache := Cache{}
	if err := json.Unmarshal(content, &cache); err != nil {
		logger.Warn("Could not parse checksum cache, starting empty",
			zap.String("file", path),
			zap.Error(err))
		return Cache{}
	}
	return cache
}

// Save serializes the cache back to the given path. A write failure is
// logged and non-fatal; the run's primary output is unaffected.
func Save(path string, cache Cache, logger *zap.Logger) {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		logger.Warn("Could not serialize checksum cache",
			zap.String("file", path),
			zap.Error(err))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Warn("Could not save checksum cache",
			zap.String("file", path),
			zap.Error(err))
	}
}

// File computes the hex content digest of a file, reading in fixed-size
// chunks.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for hashing: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
