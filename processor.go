package cssprefix

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/cssprefix/internal/prefixer"
)

// DefaultWorkers is used when Config.Workers is not positive.
const DefaultWorkers = 4

// Process is the main entry point. It discovers stylesheets below
// config.SourceDir, runs each through the filter pipeline and writes the
// results unless config.DryRun is set.
//
// Failing files do not stop the run: they are reported in Changes and the
// returned error combines every failure. The result is always non-nil
// once discovery succeeds.
func Process(ctx context.Context, config Config, log *zap.Logger) (*ProcessResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("process")

	result := &ProcessResult{DryRun: config.DryRun}

	// 1. Discover files
	files, stats, err := discoverFiles(config)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.ScanStats = stats
	log.Debug("Discovered files",
		zap.Int("discovered", stats.FilesDiscovered),
		zap.Int("scanned", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))

	// 2. Build the engine once; it is shared by all workers
	engine := prefixer.NewEngine(prefixer.Options{
		Overrides: config.Overrides,
		MaxDepth:  config.MaxDepth,
		Logger:    log,
	})
	result.Warnings = engine.Warnings()

	pipeline := BuildPipeline(config, engine, nil, log)

	// 3. Run files through the pipeline
	changes := make([]FileChange, len(files))
	errs := make([]error, len(files))

	workers := config.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			changes[i], errs[i] = processFile(gctx, pipeline, config, file)
			if errs[i] != nil {
				log.Warn("File failed", zap.String("path", file), zap.Error(errs[i]))
			}
			return nil
		})
	}
	_ = g.Wait()

	// 4. Aggregate
	var combined error
	for i, change := range changes {
		if errs[i] != nil {
			result.FilesFailed++
			combined = multierr.Append(combined, errs[i])
		}
		if change.Changed {
			result.FilesChanged++
		}
		if change.DepthExceeded {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: nesting deeper than %d levels was not scanned", change.Path, maxDepth(config)))
		}
		result.Declarations += change.Declarations
		result.Expanded += change.Expanded
		result.Emitted += change.Emitted
	}
	result.Changes = changes

	log.Debug("Processed files",
		zap.Int("changed", result.FilesChanged),
		zap.Int("failed", result.FilesFailed),
		zap.Int("expanded", result.Expanded))

	return result, combined
}

// BuildPipeline assembles the filters for config in execution order: "~"
// import resolution, optional Sass compilation, prefixing and optional
// minification. A nil compiler runs the configured Sass binary.
func BuildPipeline(config Config, engine *prefixer.Engine, compiler prefixer.Compiler, log *zap.Logger) *prefixer.Pipeline {
	projectDir := config.ProjectDir
	if projectDir == "" {
		projectDir = config.SourceDir
	}

	filters := []prefixer.Filter{prefixer.NewTildeFilter(projectDir, log)}

	if config.Sass.Enabled {
		if compiler == nil {
			compiler = prefixer.NewExecCompiler(prefixer.Flavor(config.Sass.Flavor), config.Sass.Binary, log)
		}
		filters = append(filters, &prefixer.SassFilter{
			Compiler: compiler,
			Options: prefixer.CompileOptions{
				ImportPaths: config.Sass.ImportPaths,
				OutputStyle: prefixer.OutputStyle(config.Sass.Style),
				SourceMap:   config.Sass.SourceMap,
			},
		})
	}

	filters = append(filters, prefixer.NewPrefixFilter(engine))

	if config.Minify {
		filters = append(filters, prefixer.MinifyFilter{})
	}

	return prefixer.NewPipeline(log, filters...)
}

// processFile runs one file through the pipeline and writes the output.
func processFile(ctx context.Context, pipeline *prefixer.Pipeline, config Config, path string) (FileChange, error) {
	change := FileChange{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		change.Error = err.Error()
		return change, fmt.Errorf("read %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		change.Error = err.Error()
		return change, fmt.Errorf("read %s: %w", path, err)
	}

	asset := &prefixer.Asset{Content: string(data), SourcePath: path}
	if err := pipeline.Run(ctx, asset); err != nil {
		change.Error = err.Error()
		return change, fmt.Errorf("%s: %w", path, err)
	}

	change.Declarations = asset.Report.Declarations
	change.Expanded = asset.Report.Expanded
	change.Emitted = asset.Report.Emitted
	change.Properties = asset.Report.Properties
	change.DepthExceeded = asset.Report.DepthExceeded

	out := outputPath(config, path)
	if out != path {
		change.OutputPath = out
	}
	change.Changed = out != path || asset.Content != string(data)

	if config.DryRun || !change.Changed {
		return change, nil
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		change.Error = err.Error()
		return change, fmt.Errorf("write %s: %w", out, err)
	}
	if err := os.WriteFile(out, []byte(asset.Content), info.Mode().Perm()); err != nil {
		change.Error = err.Error()
		return change, fmt.Errorf("write %s: %w", out, err)
	}

	return change, nil
}

// outputPath mirrors path below config.OutputDir. Compiled Sass sources
// are written as .css next to their source when no output directory is set.
func outputPath(config Config, path string) string {
	out := path
	if config.OutputDir != "" {
		rel, err := filepath.Rel(config.SourceDir, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = filepath.Base(path)
		}
		out = filepath.Join(config.OutputDir, rel)
	}

	if config.Sass.Enabled {
		ext := filepath.Ext(out)
		switch strings.ToLower(ext) {
		case ".scss", ".sass":
			out = strings.TrimSuffix(out, ext) + ".css"
		}
	}
	return out
}

func maxDepth(config Config) int {
	if config.MaxDepth > 0 {
		return config.MaxDepth
	}
	return prefixer.DefaultMaxDepth
}
