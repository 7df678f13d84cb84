package cssprefix

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
	ignore "github.com/sabhiram/go-gitignore"
)

// isGenerated checks if a file is build output that should not be rewritten:
// minified bundles and source maps.
func isGenerated(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(base, ".min.css") ||
		strings.HasSuffix(base, ".map")
}

// loadGitIgnore loads the .gitignore file in dir.
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore(dir string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// isSassPartial checks for an underscore-prefixed Sass file. Partials are
// only compiled through the files importing them.
func isSassPartial(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return strings.HasPrefix(filepath.Base(path), "_") && (ext == ".scss" || ext == ".sass")
}

// fileFilter decides which discovered files are processed.
type fileFilter struct {
	excludes     []string
	gitignore    *ignore.GitIgnore
	outputDir    string // Absolute; files below it are previous output
	skipPartials bool
}

// shouldSkip determines if a file should be excluded from processing.
// rel is the path relative to the source directory.
//
// Three-layer filtering:
// 1. Pattern check (fast): generated files, Sass partials when compiling and
// the output directory
// 2. Exclude globs from the configuration
// 3. Gitignore check: ignored paths within the source directory
func (f *fileFilter) shouldSkip(path, rel string) bool {
	if isGenerated(path) || (f.skipPartials && isSassPartial(path)) {
		return true
	}
	if f.outputDir != "" {
		if abs, err := filepath.Abs(path); err == nil && isWithin(abs, f.outputDir) {
			return true
		}
	}

	slashRel := filepath.ToSlash(rel)
	for _, pattern := range f.excludes {
		if ok, _ := doublestar.Match(pattern, slashRel); ok {
			return true
		}
	}

	return f.gitignore != nil && f.gitignore.MatchesPath(slashRel)
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// discoverFiles expands include globs below sourceDir and tracks statistics.
// The returned paths are unique and in natural order (part2 before part10).
func discoverFiles(config Config) ([]string, ScanStats, error) {
	stats := ScanStats{}

	includes := config.Includes
	if len(includes) == 0 {
		includes = DefaultIncludes
	}

	for _, pattern := range append(slices.Clone(includes), config.Excludes...) {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, stats, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}

	filter := &fileFilter{
		excludes:     config.Excludes,
		gitignore:    loadGitIgnore(config.SourceDir),
		skipPartials: config.Sass.Enabled,
	}
	if config.OutputDir != "" {
		if abs, err := filepath.Abs(config.OutputDir); err == nil {
			filter.outputDir = abs
		}
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range includes {
		// Use doublestar for ** glob support
		matches, err := doublestar.FilepathGlob(filepath.Join(config.SourceDir, pattern))
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			rel, err := filepath.Rel(config.SourceDir, match)
			if err != nil {
				rel = match
			}
			if filter.shouldSkip(match, rel) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	sort.Sort(natural.StringSlice(files))
	return files, stats, nil
}
