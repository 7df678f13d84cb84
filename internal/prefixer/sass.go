package prefixer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// OutputStyle is the formatting a Sass compiler emits.
type OutputStyle string

const (
	StyleExpanded   OutputStyle = "expanded"
	StyleCompressed OutputStyle = "compressed"
	StyleNested     OutputStyle = "nested"  // sassc only
	StyleCompact    OutputStyle = "compact" // sassc only
)

// CompileOptions are passed to a Compiler for one source.
type CompileOptions struct {
	ImportPaths []string
	OutputStyle OutputStyle
	SourceMap   bool // Inline source map
	Indented    bool // Indented .sass syntax
}

// Compiler turns Sass source into CSS.
type Compiler interface {
	Compile(ctx context.Context, source string, opts CompileOptions) (string, error)
}

// CompileError is returned when the compiler process fails.
type CompileError struct {
	Binary string
	Stderr string
	Err    error
}

func (e *CompileError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s: %v", e.Binary, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Binary, e.Err, msg)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Flavor selects the command line dialect of the compiler binary.
type Flavor string

const (
	FlavorDart  Flavor = "dart" // dart-sass "sass"
	FlavorSassC Flavor = "sassc"
)

// ExecCompiler runs a Sass binary, feeding the source on stdin and reading
// CSS from stdout.
type ExecCompiler struct {
	Binary string // Defaults to "sass" or "sassc" by Flavor
	Flavor Flavor
	log    *zap.Logger
}

// NewExecCompiler creates a compiler for flavor. binary may be empty.
func NewExecCompiler(flavor Flavor, binary string, log *zap.Logger) *ExecCompiler {
	if log == nil {
		log = zap.NewNop()
	}
	if flavor == "" {
		flavor = FlavorDart
	}
	if binary == "" {
		binary = "sass"
		if flavor == FlavorSassC {
			binary = "sassc"
		}
	}
	return &ExecCompiler{Binary: binary, Flavor: flavor, log: log.Named("sass")}
}

// Args returns the command line arguments for opts.
func (c *ExecCompiler) Args(opts CompileOptions) []string {
	if c.Flavor == FlavorSassC {
		args := []string{"--stdin"}
		for _, p := range opts.ImportPaths {
			args = append(args, "--load-path", p)
		}
		if opts.OutputStyle != "" {
			args = append(args, "--style", string(opts.OutputStyle))
		}
		if opts.SourceMap {
			args = append(args, "--sourcemap=inline")
		}
		if opts.Indented {
			args = append(args, "--sass")
		}
		return args
	}

	args := []string{"--stdin"}
	for _, p := range opts.ImportPaths {
		args = append(args, "--load-path="+p)
	}
	if opts.OutputStyle != "" {
		args = append(args, "--style="+string(opts.OutputStyle))
	}
	if opts.SourceMap {
		args = append(args, "--embed-source-map")
	} else {
		args = append(args, "--no-source-map")
	}
	if opts.Indented {
		args = append(args, "--indented")
	}
	return args
}

// Compile runs the binary over source.
func (c *ExecCompiler) Compile(ctx context.Context, source string, opts CompileOptions) (string, error) {
	args := c.Args(opts)
	c.log.Debug("Running compiler", zap.String("binary", c.Binary), zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, c.Binary, args...)
	cmd.Stdin = strings.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CompileError{Binary: c.Binary, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}

// SassFilter compiles .scss and .sass assets when they are loaded. The
// asset's own directory is searched for imports before Options.ImportPaths.
type SassFilter struct {
	Compiler Compiler
	Options  CompileOptions
}

func (f *SassFilter) Name() string { return "sass" }

func (f *SassFilter) Load(ctx context.Context, asset *Asset) error {
	ext := asset.Ext()
	if ext != "scss" && ext != "sass" {
		return nil
	}

	opts := f.Options
	opts.Indented = ext == "sass"
	opts.ImportPaths = slices.Clone(f.Options.ImportPaths)
	if dir := asset.SourceDir(); dir != "" {
		dir = filepath.Clean(dir)
		opts.ImportPaths = slices.DeleteFunc(opts.ImportPaths, func(p string) bool { return filepath.Clean(p) == dir })
		opts.ImportPaths = slices.Insert(opts.ImportPaths, 0, dir)
	}

	out, err := f.Compiler.Compile(ctx, asset.Content, opts)
	if err != nil {
		return err
	}
	asset.Content = out
	return nil
}

func (f *SassFilter) Dump(context.Context, *Asset) error { return nil }
