package scan

import (
	"os"
	"path/filepath"
	"testing"

	"codescope/pkg/config"
	"codescope/pkg/ignore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollectCandidatesFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "a.py"), "print()")
	mustWrite(t, filepath.Join(root, "sub", "c.js"), "let x;")
	mustWrite(t, filepath.Join(root, "binary.exe"), "xx")

	candidates := CollectCandidates(root, config.Default(), ignore.Compile(nil, zaptest.NewLogger(t)), zaptest.NewLogger(t))

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a.py"),
		filepath.Join(root, "sub", "c.js"),
	}, candidates)
}

func TestCollectCandidatesPrunesIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "keep.js"), "a")
	mustWrite(t, filepath.Join(root, "node_modules", "dep.js"), "b")
	mustWrite(t, filepath.Join(root, "node_modules", "deep", "nested.js"), "c")

	candidates := CollectCandidates(root, config.Default(), ignore.Compile(nil, zaptest.NewLogger(t)), zaptest.NewLogger(t))

	assert.Equal(t, []string{filepath.Join(root, "keep.js")}, candidates)
}

func TestCollectCandidatesPrunesPatternMatchedDirectories(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "keep.js"), "a")
	mustWrite(t, filepath.Join(root, "generated", "out.js"), "b")

	patterns := ignore.Compile([]string{`.*generated.*`}, zaptest.NewLogger(t))
	candidates := CollectCandidates(root, config.Default(), patterns, zaptest.NewLogger(t))

	assert.Equal(t, []string{filepath.Join(root, "keep.js")}, candidates)
}

func TestCollectCandidatesRootNeverPruned(t *testing.T) {
	// Even a root whose own path matches an ignore pattern is still walked;
	// pruning applies to subdirectories only.
	root := t.TempDir()
	sub := filepath.Join(root, "project_secret_stuff")
	mustWrite(t, filepath.Join(sub, "a.js"), "x")

	patterns := ignore.Compile([]string{`.*secret.*`}, zaptest.NewLogger(t))
	candidates := CollectCandidates(sub, config.Default(), patterns, zaptest.NewLogger(t))

	assert.Equal(t, []string{filepath.Join(sub, "a.js")}, candidates)
}
