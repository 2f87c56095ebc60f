// Package ignore matches paths against ordered regular-expression ignore
// patterns.
package ignore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Matcher reports whether a path is excluded by the configured patterns.
type Matcher interface {
	MatchesPath(path string) bool
}

// PatternSet holds an ordered list of compiled ignore patterns. Matching is
// an unanchored regex search against the slash-normalized path.
type PatternSet struct {
	patterns []*regexp.Regexp
	logger   *zap.Logger
}

// Compile builds a PatternSet from regex pattern lines. An invalid pattern
// is logged and skipped; it never fails the whole set.
func Compile(lines []string, logger *zap.Logger) *PatternSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	ps := &PatternSet{logger: logger}
	ps.Append(lines...)
	return ps
}

// Append compiles additional pattern lines onto the set, preserving order.
func (ps *PatternSet) Append(lines ...string) {
	for _, line := range lines {
		re, err := regexp.Compile(line)
		if err != nil {
			ps.logger.Warn("Skipping invalid ignore pattern",
				zap.String("pattern", line),
				zap.Error(err))
			continue
		}
		ps.patterns = append(ps.patterns, re)
	}
}

// Len returns the number of compiled patterns.
func (ps *PatternSet) Len() int {
	return len(ps.patterns)
}

// MatchesPath checks the path against every pattern in order.
func (ps *PatternSet) MatchesPath(path string) bool {
	normalized := filepath.ToSlash(path)
	for _, re := range ps.patterns {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}

// LoadPatternFile reads regex pattern lines from a file, one per line.
// Blank lines and '#' comments are skipped. A missing or unreadable file
// yields no patterns.
func LoadPatternFile(path string, logger *zap.Logger) []string {
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Could not read ignore pattern file",
				zap.String("file", path),
				zap.Error(err))
		}
		return nil
	}

	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, trimmed)
	}

	logger.Debug("Loaded ignore pattern file",
		zap.String("file", path),
		zap.Int("patterns", len(lines)))
	return lines
}
