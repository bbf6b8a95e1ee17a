package fileutil

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/harrison/coverlint/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}
}

func TestShouldSkip(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root,
		"pkg/a",
		"vendor",
		"nested/vendor",
		".git",
		".gen",
		".tmp",
		"go-build",
		"tools/testlib",
		"internal/mocks",
		"internal/mock",
		"internal/mockery",
		"fixtures/deep/testdata",
	)
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg/file.go"), []byte("package pkg"), 0644))

	cfg := &config.Config{
		SkippedPaths:      []string{"tools/testlib"},
		SkippedRegexPaths: []*regexp.Regexp{regexp.MustCompile(`^(?:.*mocks?$)`)},
		SkippedGlobPaths:  []string{"**/testdata"},
	}
	detector := NewSkipDetector(root, cfg)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "plain package", path: "pkg/a", want: false},
		{name: "regular file", path: "pkg/file.go", want: true},
		{name: "missing path", path: "does/not/exist", want: true},
		{name: "vendor at root", path: "vendor", want: true},
		{name: "vendor below root is only skipped at root", path: "nested/vendor", want: false},
		{name: ".git", path: ".git", want: true},
		{name: ".gen", path: ".gen", want: true},
		{name: ".tmp", path: ".tmp", want: true},
		{name: "go-build", path: "go-build", want: true},
		{name: "explicit skip", path: "tools/testlib", want: true},
		{name: "explicit skip is exact", path: "tools", want: false},
		{name: "regex skip mocks", path: "internal/mocks", want: true},
		{name: "regex skip mock", path: "internal/mock", want: true},
		{name: "regex must match to end", path: "internal/mockery", want: false},
		{name: "glob skip", path: "fixtures/deep/testdata", want: true},
		{name: "glob parent not skipped", path: "fixtures/deep", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.ShouldSkip(filepath.Join(root, tt.path)))
		})
	}
}

func TestShouldSkipSymlinks(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "real")

	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "broken")))

	detector := NewSkipDetector(root, nil)

	assert.False(t, detector.ShouldSkip(filepath.Join(root, "real")))
	assert.True(t, detector.ShouldSkip(filepath.Join(root, "link")), "symlinked directories are skipped")
	assert.True(t, detector.ShouldSkip(filepath.Join(root, "broken")), "broken symlinks are skipped")
}

func TestShouldSkipNilConfig(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "vendor", "pkg")

	detector := NewSkipDetector(root, nil)
	assert.True(t, detector.ShouldSkip(filepath.Join(root, "vendor")))
	assert.False(t, detector.ShouldSkip(filepath.Join(root, "pkg")))
}

func TestShouldSkipCleansConfiguredPaths(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a/b")

	detector := NewSkipDetector(root, &config.Config{SkippedPaths: []string{"a/b/"}})
	assert.True(t, detector.ShouldSkip(filepath.Join(root, "a", "b")))
}

func TestParseFileIgnore(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		ignore, err := ParseFileIgnore("   ")
		require.NoError(t, err)
		assert.Empty(t, ignore)
		assert.False(t, ignore.Matches("/src/a.go"))
	})

	t.Run("whitespace separated", func(t *testing.T) {
		ignore, err := ParseFileIgnore("  .*_mock\\.go$ \t /src/gen/.*\n")
		require.NoError(t, err)
		require.Len(t, ignore, 2)

		assert.True(t, ignore.Matches("/src/pkg/store_mock.go"))
		assert.True(t, ignore.Matches("/src/gen/types.go"))
		assert.False(t, ignore.Matches("/src/pkg/store.go"))
		assert.False(t, ignore.Matches("/other/src/gen/types.go"), "patterns are anchored at the start")
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := ParseFileIgnore("ok.* (broken")
		assert.Error(t, err)
	})
}
