package jsparse

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// scriptExtensions marks the files treated as script-language source.
var scriptExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// GatherSummaries recursively enumerates script files under root, parses
// each, and returns the summaries sorted by path. A file that cannot be
// read is logged and omitted from the result; it never aborts the batch.
func GatherSummaries(root string, logger *zap.Logger) []FileSummary {
	summaries := []FileSummary{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during summary walk",
				zap.String("path", path),
				zap.Error(err))
			return nil
		}
		if d.IsDir() || !isScriptFile(d.Name()) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable script file",
				zap.String("file", path),
				zap.Error(err))
			return nil
		}

		src := strings.ToValidUTF8(string(data), "")
		summaries = append(summaries, Parse(path, src))
		return nil
	})
	if err != nil {
		logger.Warn("Summary walk ended early", zap.Error(err))
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].File < summaries[j].File
	})
	return summaries
}

// WriteSummary runs GatherSummaries over root and serializes the result as
// a JSON array to outputPath. An unwritable output location is a run-level
// error.
func WriteSummary(root, outputPath string, logger *zap.Logger) error {
	summaries := GatherSummaries(root, logger)

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize summary: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary file %s: %w", outputPath, err)
	}

	logger.Info("Wrote structural summary",
		zap.String("file", outputPath),
		zap.Int("files", len(summaries)))
	return nil
}

func isScriptFile(name string) bool {
	for _, ext := range scriptExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
