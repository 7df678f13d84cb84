package prefixer

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Matches @import, @use and @forward rules whose path starts with "~".
// Group 1 is the optional url/reference/inline keyword, group 2 the path.
var tildeImport = regexp.MustCompile(`^\s*@(?:import|use|forward)\s*(url|reference|inline)?["';\s(]+?(~[^'";\s)]+)["';\s)]+?.*$`)

// TildeFilter resolves "~" imports in LESS and Sass sources the way webpack
// loaders do. A "~pkg/file" import becomes "pkg/file" when that file exists
// under ProjectDir/node_modules, otherwise ProjectDir/pkg/file when that
// exists, and is left alone otherwise.
type TildeFilter struct {
	ProjectDir string
	log        *zap.Logger
}

// NewTildeFilter creates a filter resolving imports against projectDir.
func NewTildeFilter(projectDir string, log *zap.Logger) *TildeFilter {
	if log == nil {
		log = zap.NewNop()
	}
	return &TildeFilter{ProjectDir: projectDir, log: log.Named("tilde")}
}

func (f *TildeFilter) Name() string { return "tilde" }

func (f *TildeFilter) Load(_ context.Context, asset *Asset) error {
	switch ext := asset.Ext(); ext {
	case "less", "sass", "scss":
		asset.Content = f.Resolve(asset.Content, ext)
	}
	return nil
}

func (f *TildeFilter) Dump(context.Context, *Asset) error { return nil }

// Resolve rewrites every resolvable "~" import in content. ext is the
// extension probed when an import omits it.
func (f *TildeFilter) Resolve(content, ext string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "//") {
			continue
		}
		m := tildeImport.FindStringSubmatch(line)
		if m == nil || m[1] == "url" {
			continue
		}

		importPath := m[2]
		resolved, ok := f.resolve(importPath, ext)
		if !ok {
			f.log.Debug("Unresolved tilde import", zap.String("import", importPath))
			continue
		}
		lines[i] = strings.Replace(line, importPath, resolved, 1)
	}
	return strings.Join(lines, "\n")
}

func (f *TildeFilter) resolve(importPath, ext string) (string, bool) {
	rel := strings.TrimPrefix(strings.TrimPrefix(importPath, "~"), "/")

	nodeModules := filepath.Join(f.ProjectDir, "node_modules")
	if info, err := os.Stat(nodeModules); err == nil && info.IsDir() {
		if importable(filepath.Join(nodeModules, filepath.FromSlash(rel)), ext) {
			return rel, true
		}
	}

	abs := filepath.ToSlash(filepath.Join(f.ProjectDir, filepath.FromSlash(rel)))
	if importable(filepath.FromSlash(abs), ext) {
		return abs, true
	}
	return "", false
}

// importable reports whether an import of path would find a file: the path
// itself, path.ext, or the partial _name.ext next to it.
func importable(path, ext string) bool {
	dir, name := filepath.Split(path)
	for _, candidate := range []string{path, path + "." + ext, filepath.Join(dir, "_"+name+"."+ext)} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}
