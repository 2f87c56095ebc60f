package scan

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
)

// WriteOutput serializes the file records into a single text artifact at
// outputPath. Each record contributes the file path on its own line,
// immediately followed by the file content and a trailing newline. Records
// are written in lexicographic path order so repeated runs produce the same
// artifact regardless of worker completion order. With compression enabled
// the path gains a .gz suffix and the stream is gzip-encoded.
//
// Returns the final output path. A write failure here is a run-level error.
func WriteOutput(records []FileRecord, outputPath string, compress bool, logger *zap.Logger) (string, error) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})

	finalPath := outputPath
	if compress {
		finalPath += ".gz"
	}

	outFile, err := os.Create(finalPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file %s: %w", finalPath, err)
	}
	defer outFile.Close()

	var dst io.Writer = outFile
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(outFile)
		dst = gz
	}

	writer := bufio.NewWriter(dst)
	for _, rec := range records {
		if _, err := writer.WriteString(rec.Path + "\n"); err != nil {
			return "", fmt.Errorf("failed to write output: %w", err)
		}
		if _, err := writer.WriteString(rec.Content + "\n"); err != nil {
			return "", fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush output: %w", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return "", fmt.Errorf("failed to finalize compressed output: %w", err)
		}
	}
	if err := outFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close output file: %w", err)
	}

	logger.Debug("Wrote output artifact",
		zap.String("file", finalPath),
		zap.Int("records", len(records)))
	return finalPath, nil
}
