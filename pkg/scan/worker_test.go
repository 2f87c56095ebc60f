package scan

import (
	"os"
	"path/filepath"
	"testing"

	"codescope/pkg/checksum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestReadFilesConcurrentlyReadsAll(t *testing.T) {
	dir := t.TempDir()
	var candidates []Candidate
	want := map[string]string{}
	for _, name := range []string{"a.js", "b.js", "c.js", "d.js"} {
		path := filepath.Join(dir, name)
		content := "content of " + name + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		candidates = append(candidates, Candidate{Path: path})
		want[path] = content
	}

	records := ReadFilesConcurrently(candidates, 2, false, zaptest.NewLogger(t))

	require.Len(t, records, len(candidates))
	for _, rec := range records {
		assert.Equal(t, want[rec.Path], rec.Content)
	}
}

func TestReadFilesConcurrentlyDropsFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.js")
	require.NoError(t, os.WriteFile(good, []byte("ok"), 0o644))

	candidates := []Candidate{
		{Path: good},
		{Path: filepath.Join(dir, "vanished.js")},
	}

	records := ReadFilesConcurrently(candidates, 4, false, zaptest.NewLogger(t))

	require.Len(t, records, 1)
	assert.Equal(t, good, records[0].Path)
}

func TestReadFilesConcurrentlyDropsBinaryContent(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "blob.js")
	require.NoError(t, os.WriteFile(bin, []byte{0x00, 0x01, 0x02, 'a'}, 0o644))

	records := ReadFilesConcurrently([]Candidate{{Path: bin}}, 1, false, zaptest.NewLogger(t))
	assert.Empty(t, records)
}

func TestReadFilesConcurrentlySanitizesInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mixed.js")
	require.NoError(t, os.WriteFile(path, []byte{'o', 'k', 0xff, 0xfe, '!', '\n'}, 0o644))

	records := ReadFilesConcurrently([]Candidate{{Path: path}}, 1, false, zaptest.NewLogger(t))

	require.Len(t, records, 1)
	assert.Equal(t, "ok!\n", records[0].Content)
}

func TestReadFilesConcurrentlyCarriesFilterHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(path, []byte("let a;\n"), 0o644))

	records := ReadFilesConcurrently([]Candidate{{Path: path, Hash: "precomputed"}}, 1, true, zaptest.NewLogger(t))

	require.Len(t, records, 1)
	assert.Equal(t, "precomputed", records[0].Hash)
}

func TestReadFilesConcurrentlyComputesMissingHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(path, []byte("let a;\n"), 0o644))

	want, err := checksum.File(path)
	require.NoError(t, err)

	records := ReadFilesConcurrently([]Candidate{{Path: path}}, 1, true, zaptest.NewLogger(t))

	require.Len(t, records, 1)
	assert.Equal(t, want, records[0].Hash)
}

func TestReadFilesConcurrentlyZeroWorkersDefaultsToCPUs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	records := ReadFilesConcurrently([]Candidate{{Path: path}}, 0, false, zaptest.NewLogger(t))
	assert.Len(t, records, 1)
}
