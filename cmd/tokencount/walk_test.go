package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		text     string
		expected bool
	}{
		{name: "literal match", pattern: "main.go", text: "main.go", expected: true},
		{name: "literal mismatch", pattern: "main.go", text: "main_test.go", expected: false},
		{name: "star within component", pattern: "*.go", text: "main.go", expected: true},
		{name: "star does not cross slash", pattern: "*.go", text: "cmd/main.go", expected: false},
		{name: "double star crosses slash", pattern: "**/*.go", text: "a/b/main.go", expected: true},
		{name: "dot is literal", pattern: "a.go", text: "axgo", expected: false},
		{name: "prefix star", pattern: "test*", text: "testdata", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, globMatch(tt.pattern, tt.text))
		})
	}
}

func TestMatchesIgnore(t *testing.T) {
	base := "/repo"
	tests := []struct {
		name     string
		path     string
		patterns []string
		expected bool
	}{
		{name: "no patterns", path: "/repo/a.go", patterns: nil, expected: false},
		{name: "basename glob", path: "/repo/sub/a.log", patterns: []string{"*.log"}, expected: true},
		{name: "path glob", path: "/repo/vendor/x/y.go", patterns: []string{"vendor/**"}, expected: true},
		{name: "directory prefix", path: "/repo/node_modules/pkg/index.js", patterns: []string{"node_modules"}, expected: true},
		{name: "unrelated pattern", path: "/repo/a.go", patterns: []string{"*.md"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matchesIgnore(tt.path, base, tt.patterns))
		})
	}
}

func TestIsBinaryFile(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "text.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("plain text\n"), 0o644))
	assert.False(t, isBinaryFile(textPath))

	binPath := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(binPath, []byte{'a', 0x00, 'b'}, 0o644))
	assert.True(t, isBinaryFile(binPath))

	emptyPath := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(emptyPath, nil, 0o644))
	assert.False(t, isBinaryFile(emptyPath))
}

func TestExpandPaths(t *testing.T) {
	logger := zaptest.NewLogger(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("aaa"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bin"), []byte{0x00, 0x01}, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.txt"), []byte("ccc"), 0o644))

	t.Run("directory without recursive fails", func(t *testing.T) {
		_, err := expandPaths([]string{dir}, false, false, nil, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "use -r")
	})

	t.Run("recursive walk skips binaries", func(t *testing.T) {
		files, err := expandPaths([]string{dir}, true, false, nil, logger)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.txt"),
			filepath.Join(dir, "sub", "c.txt"),
		}, files)
	})

	t.Run("ignore pattern filters", func(t *testing.T) {
		files, err := expandPaths([]string{dir}, true, false, []string{"sub"}, logger)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, files)
	})

	t.Run("explicit file bypasses binary check", func(t *testing.T) {
		bin := filepath.Join(dir, "b.bin")
		files, err := expandPaths([]string{bin}, false, false, nil, logger)
		require.NoError(t, err)
		assert.Equal(t, []string{bin}, files)
	})

	t.Run("missing path errors", func(t *testing.T) {
		_, err := expandPaths([]string{filepath.Join(dir, "nope")}, false, false, nil, logger)
		require.Error(t, err)
	})
}
