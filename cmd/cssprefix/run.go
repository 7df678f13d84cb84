package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/cssprefix"
	"github.com/yacobolo/cssprefix/internal/prefixer"
)

var runCmd = &cobra.Command{
	Use:     "run [-]",
	Aliases: []string{"prefix"},
	Short:   "Add vendor prefixes to stylesheets",
	Long: `Rewrite every stylesheet matched below the source directory, expanding
declarations that need vendor prefixes. With "-" a single stylesheet is
read from stdin and the result written to stdout.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runPrefix,
}

func init() {
	f := runCmd.Flags()
	f.String("source", ".", "Source directory")
	f.StringSlice("include", nil, "Glob patterns for stylesheets to include (default **/*.css, **/*.scss, **/*.less)")
	f.StringSlice("exclude", nil, "Glob patterns to exclude")
	f.String("output-dir", "", "Write results below this directory instead of in place")
	f.Bool("dry-run", false, "Report changes without writing files")
	f.Bool("minify", false, "Minify .css and .less output")
	f.String("project-dir", "", "Root for ~ imports (default: source directory)")
	f.Bool("preconfigured-only", false, "Only accept override prefixes that are in the built-in table")
	f.Int("max-depth", prefixer.DefaultMaxDepth, "Maximum block nesting to scan")
	f.Int("workers", cssprefix.DefaultWorkers, "Files processed concurrently")
	f.String("output-format", "", "Output format: changes|summary|full|json|markdown")
	f.String("stdin-path", "stdin.css", "File name used for the stdin stylesheet")

	f.Bool("sass", false, "Compile .scss and .sass sources to .css before prefixing")
	f.String("sass-binary", "", "Sass binary (default: sass or sassc)")
	f.String("sass-flavor", "dart", "Sass implementation: dart|sassc")
	f.String("sass-style", "expanded", "Sass output style: expanded|compressed|nested|compact")
	f.StringSlice("sass-import-path", nil, "Additional Sass import paths")
	f.Bool("sass-source-map", false, "Embed source maps in compiled output")
}

func runPrefix(cmd *cobra.Command, args []string) error {
	quiet := getBoolWithFallback("quiet", "quiet", false)
	log := newLogger(getBoolWithFallback("verbose", "verbose", false), quiet)
	defer log.Sync()

	config, err := buildConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) == 1 {
		if args[0] != "-" {
			return fmt.Errorf("unexpected argument %q (use - to read stdin)", args[0])
		}
		return runStdin(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), config, log)
	}

	result, err := cssprefix.Process(ctx, config, log)
	if result == nil {
		return fmt.Errorf("prefixing failed: %w", err)
	}

	if !quiet {
		outputFormat := getStringWithFallback("output-format", "prefix.output-format", "")
		format := cssprefix.DetermineOutputFormat(outputFormat, quiet)
		cssprefix.WriteOutput(cmd.OutOrStdout(), result, format, getBoolWithFallback("color", "color", false))
	}

	if err != nil {
		log.Debug("Failures", zap.Error(err))
		return fmt.Errorf("%d of %d files failed", result.FilesFailed, result.FilesScanned)
	}
	return nil
}

// runStdin runs one stylesheet from r through the pipeline and writes it to w.
func runStdin(ctx context.Context, r io.Reader, w io.Writer, config cssprefix.Config, log *zap.Logger) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	engine := prefixer.NewEngine(prefixer.Options{
		Overrides: config.Overrides,
		MaxDepth:  config.MaxDepth,
		Logger:    log,
	})
	pipeline := cssprefix.BuildPipeline(config, engine, nil, log)

	asset := &prefixer.Asset{
		Content:    string(data),
		SourcePath: getStringWithFallback("stdin-path", "prefix.stdin-path", "stdin.css"),
	}
	if err := pipeline.Run(ctx, asset); err != nil {
		return err
	}

	_, err = io.WriteString(w, asset.Content)
	return err
}
