package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery expands paths into candidate source files using glob
// include and ignore rules.
type FileDiscovery struct {
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// New creates a file discovery instance.
func New(includePatterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{}

	var err error
	if fd.includePatterns, err = compile(includePatterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compile(ignorePatterns); err != nil {
		return nil, err
	}

	return fd, nil
}

func compile(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// Expand resolves each path: files are kept as given, directories are
// walked and filtered by the include and ignore patterns relative to the
// directory. The result is deduplicated and sorted.
func (fd *FileDiscovery) Expand(paths []string) ([]string, error) {
	return fd.ExpandMatching(paths, nil)
}

// ExpandMatching is Expand with an extra filter applied to files found by
// walking a directory. Files named explicitly are never filtered.
func (fd *FileDiscovery) ExpandMatching(paths []string, keep func(path string) bool) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !seen[p] {
				seen[p] = true
				files = append(files, p)
			}
			continue
		}

		found, err := fd.Walk(p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if keep != nil && !keep(f) {
				continue
			}
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// Walk walks rootDir and returns the files matching the include patterns.
func (fd *FileDiscovery) Walk(rootDir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath != "." && fd.ShouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.ShouldIgnore(relPath) {
			return nil
		}

		if fd.matchesAnyPattern(relPath, fd.includePatterns) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// ShouldIgnore checks if a relative path matches any ignore pattern.
func (fd *FileDiscovery) ShouldIgnore(relPath string) bool {
	if fd.matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// Also check if this is a directory that would match with /** suffix
	// For example, "node_modules" should match pattern "node_modules/**"
	pathWithSuffix := relPath + "/**"
	return fd.matchesAnyPattern(pathWithSuffix, fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Special handling: if path is in root (no slash), also try matching against
	// patterns with **/ prefix removed. This makes "**/*.ts" match both
	// "app.component.ts" and "src/app.component.ts".
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
