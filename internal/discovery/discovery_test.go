package discovery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileDiscovery:
// - Walk returns files matching include patterns, including root-level files
// - Ignored directories are skipped entirely
// - Ignored file patterns are excluded
// - Expand keeps explicit files, walks directories, dedupes and sorts
// - ExpandMatching filters walked files but never explicit ones
// - Expand fails on missing paths
// - Invalid patterns are rejected

func createTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("export {}\n"), 0644))
	}
	return root
}

func rel(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestWalk_IncludeAndIgnore(t *testing.T) {
	t.Parallel()

	// Test: include patterns select files, ignore patterns prune them
	root := createTree(t,
		"main.ts",
		"src/app/app.component.ts",
		"src/app/app.component.spec.ts",
		"src/app/app.component.html",
		"node_modules/lib/index.ts",
		"dist/out.ts",
	)

	fd, err := New([]string{"**/*.ts"}, []string{"node_modules/**", "dist/**", "**/*.spec.ts"})
	require.NoError(t, err)

	files, err := fd.Walk(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main.ts", "src/app/app.component.ts"}, rel(t, root, files))
}

func TestExpand_FilesAndDirectories(t *testing.T) {
	t.Parallel()

	// Test: explicit files bypass patterns, results are sorted and unique
	root := createTree(t, "a/x.component.ts", "b/y.component.ts", "notes.md")

	fd, err := New([]string{"**/*.ts"}, nil)
	require.NoError(t, err)

	explicit := filepath.Join(root, "notes.md")
	files, err := fd.Expand([]string{filepath.Join(root, "b"), root, explicit})
	require.NoError(t, err)

	assert.Equal(t, []string{"a/x.component.ts", "b/y.component.ts", "notes.md"}, rel(t, root, files))
}

func TestExpandMatching_FiltersWalkedFilesOnly(t *testing.T) {
	t.Parallel()

	// Test: the keep filter drops walked files, explicit files survive it
	root := createTree(t, "src/a.component.ts", "src/x.service.ts", "lib/y.service.ts")

	fd, err := New([]string{"**/*.ts"}, nil)
	require.NoError(t, err)

	keep := func(path string) bool { return strings.HasSuffix(path, ".component.ts") }
	explicit := filepath.Join(root, "lib", "y.service.ts")
	files, err := fd.ExpandMatching([]string{filepath.Join(root, "src"), explicit}, keep)
	require.NoError(t, err)

	assert.Equal(t, []string{"lib/y.service.ts", "src/a.component.ts"}, rel(t, root, files))
}

func TestExpand_MissingPath(t *testing.T) {
	t.Parallel()

	// Test: missing paths are errors
	fd, err := New([]string{"**/*.ts"}, nil)
	require.NoError(t, err)

	_, err = fd.Expand([]string{filepath.Join(t.TempDir(), "missing.ts")})
	assert.Error(t, err)
}

func TestNew_InvalidPattern(t *testing.T) {
	t.Parallel()

	// Test: patterns that do not compile are rejected
	_, err := New([]string{"src/[a"}, nil)
	assert.Error(t, err)
}

func TestShouldIgnore(t *testing.T) {
	t.Parallel()

	fd, err := New(nil, []string{"node_modules/**", "**/*.d.ts"})
	require.NoError(t, err)

	// Test: directory names match their /** ignore pattern
	assert.True(t, fd.ShouldIgnore("node_modules"))
	assert.True(t, fd.ShouldIgnore("src/types.d.ts"))
	assert.False(t, fd.ShouldIgnore("src/app.component.ts"))
}
