// Package jsparse extracts a structural summary from JS/TS source files
// using a naive line-oriented lexical scan. Every line is classified as a
// declaration (context), inside a tracked block (skipped), or plain
// (non-context). The scan tracks brace depth only; it does not understand
// string literals, comments, or template literals containing braces.
package jsparse

import (
	"regexp"
	"strings"
)

// Declaration patterns, checked per line in priority order. At most one
// pattern matches a given line; the first hit wins.
var (
	importPattern    = regexp.MustCompile(`^\s*import\s+(?:[\w*\s{},]+from\s+)?["']([^"']+)["']`)
	requirePattern   = regexp.MustCompile(`\brequire\s*\(\s*["']([^"']+)["']\s*\)`)
	functionPattern  = regexp.MustCompile(`(?:export\s+)?function\s+([\w$]+)\s*\(`)
	classPattern     = regexp.MustCompile(`(?:export\s+)?class\s+([\w$]+)\s*\{`)
	prototypePattern = regexp.MustCompile(`([\w$]+)\.prototype\.([\w$]+)\s*=\s*function\s*\([^)]*\)`)
)

// Stats counts how every line of a file was classified. The counts always
// satisfy TotalLines == ContextLines + SkippedLines + NonContextLines.
type Stats struct {
	TotalLines      int `json:"total_lines"`
	ContextLines    int `json:"context_lines"`
	SkippedLines    int `json:"skipped_lines"`
	NonContextLines int `json:"non_context_lines"`
}

// FileSummary is the structural summary of one source file.
type FileSummary struct {
	File             string   `json:"file"`
	Imports          []string `json:"imports"`
	Requires         []string `json:"requires"`
	Functions        []string `json:"functions"`
	Classes          []string `json:"classes"`
	PrototypeMethods []string `json:"prototype_methods"`
	Stats            Stats    `json:"stats"`
}

// parser is the transient per-file scan state.
type parser struct {
	lines   int
	inBlock bool
	depth   int

	context int
	skipped int

	summary FileSummary
}

// Parse scans the source of one file and returns its structural summary.
// The input is assumed to be decoded text; callers are responsible for
// skipping files that cannot be decoded.
func Parse(path, src string) FileSummary {
	lines := splitLines(src)

	p := &parser{
		lines: len(lines),
		summary: FileSummary{
			File:             path,
			Imports:          []string{},
			Requires:         []string{},
			Functions:        []string{},
			Classes:          []string{},
			PrototypeMethods: []string{},
		},
	}

	i := 0
	for i < len(lines) {
		line := lines[i]

		if p.inBlock {
			p.skipped++
			p.depth += strings.Count(line, "{") - strings.Count(line, "}")
			if p.depth <= 0 {
				p.inBlock = false
				p.depth = 0
			}
			i++
			continue
		}

		if m := importPattern.FindStringSubmatch(line); m != nil {
			p.summary.Imports = append(p.summary.Imports, m[1])
			p.context++
			i++
			continue
		}
		if m := requirePattern.FindStringSubmatch(line); m != nil {
			p.summary.Requires = append(p.summary.Requires, m[1])
			p.context++
			i++
			continue
		}
		if m := functionPattern.FindStringSubmatch(line); m != nil {
			p.summary.Functions = append(p.summary.Functions, m[1])
			p.context++
			i = p.enterBlock(lines, i)
			continue
		}
		if m := classPattern.FindStringSubmatch(line); m != nil {
			p.summary.Classes = append(p.summary.Classes, m[1])
			p.context++
			i = p.enterBlock(lines, i)
			continue
		}
		if m := prototypePattern.FindStringSubmatch(line); m != nil {
			p.summary.PrototypeMethods = append(p.summary.PrototypeMethods, m[1]+"."+m[2])
			p.context++
			i = p.enterBlock(lines, i)
			continue
		}

		// Plain line: accounted for implicitly as non-context.
		i++
	}

	p.summary.Stats = Stats{
		TotalLines:      p.lines,
		ContextLines:    p.context,
		SkippedLines:    p.skipped,
		NonContextLines: p.lines - p.context - p.skipped,
	}
	return p.summary
}

// enterBlock starts brace-depth tracking after a block-opening declaration
// matched on lines[i]. If the declaration line has no opening brace, the
// scan advances line by line, counting each advanced line as skipped, until
// it finds one; reaching end of file simply ends the scan with the partial
// stats standing. Returns the index of the next line to process.
func (p *parser) enterBlock(lines []string, i int) int {
	if strings.Contains(lines[i], "{") {
		p.inBlock = true
		p.depth = 1
		return i + 1
	}

	for {
		i++
		if i >= len(lines) {
			return i
		}
		p.skipped++
		if strings.Contains(lines[i], "{") {
			p.inBlock = true
			p.depth = 1
			return i + 1
		}
	}
}

// splitLines splits source text into lines the way a line-by-line reader
// would: a trailing newline does not produce an extra empty line, and empty
// input has no lines.
func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	lines := strings.Split(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
