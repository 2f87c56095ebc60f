package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMatchesPath(t *testing.T) {
	ps := Compile([]string{`.*secret.*`, `.*\.log`}, zaptest.NewLogger(t))

	assert.True(t, ps.MatchesPath("/app/config/secrets.yaml"))
	assert.True(t, ps.MatchesPath("/var/run/server.log"))
	assert.False(t, ps.MatchesPath("/app/main.py"))
}

func TestMatchesPathNormalizesSeparators(t *testing.T) {
	ps := Compile([]string{`build/artifacts`}, zaptest.NewLogger(t))

	assert.True(t, ps.MatchesPath(filepath.Join("project", "build", "artifacts", "out.js")))
}

func TestInvalidPatternIsSkipped(t *testing.T) {
	ps := Compile([]string{`[unclosed`, `valid.*`}, zaptest.NewLogger(t))

	assert.Equal(t, 1, ps.Len())
	assert.True(t, ps.MatchesPath("validpath"))
}

func TestAppendPreservesExistingPatterns(t *testing.T) {
	ps := Compile([]string{`one`}, zaptest.NewLogger(t))
	ps.Append(`two`)

	assert.Equal(t, 2, ps.Len())
	assert.True(t, ps.MatchesPath("path/one"))
	assert.True(t, ps.MatchesPath("path/two"))
}

func TestLoadPatternFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".codescopeignore")
	content := "# generated artifacts\n.*\\.min\\.js\n\n  .*vendor.*  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lines := LoadPatternFile(path, zaptest.NewLogger(t))
	assert.Equal(t, []string{`.*\.min\.js`, `.*vendor.*`}, lines)
}

func TestLoadPatternFileMissing(t *testing.T) {
	lines := LoadPatternFile(filepath.Join(t.TempDir(), "absent"), zaptest.NewLogger(t))
	assert.Nil(t, lines)
}
