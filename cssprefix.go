// Package cssprefix adds vendor-prefixed variants to CSS, SCSS and LESS
// stylesheets.
//
// Declarations such as "display: flex" or "transition: opacity 1s" are
// rewritten in place into the prefixed forms older browsers need, keeping
// the original formatting and leaving everything else in the file untouched.
//
// # Processing
//
// Prefix every stylesheet below a directory:
//
//	config := cssprefix.Config{
//		SourceDir: "web/styles",
//		Includes:  []string{"**/*.css", "**/*.scss"},
//	}
//	result, err := cssprefix.Process(ctx, config, logger)
//
// Built-in prefix lists can be replaced per property or value:
//
//	config.Overrides = cssprefix.Overrides{
//		Properties: map[string][]string{"transition": {"-webkit-*", "transition"}},
//	}
//
// # Single documents
//
// The engine in internal/prefixer rewrites individual documents and is
// safe for concurrent use. The CLI exposes it through "cssprefix run -" and
// the HTTP server started by "cssprefix serve".
//
// # CLI Tool
//
// Install with:
//
//	go install github.com/yacobolo/cssprefix/cmd/cssprefix@latest
package cssprefix

// Public API:
// - Process(ctx, config Config, log *zap.Logger) (*ProcessResult, error)
// - BuildPipeline(config Config, engine, compiler, log) *prefixer.Pipeline
// - DetermineOutputFormat(requested string, quiet bool) OutputFormat
// - WriteOutput(w io.Writer, result *ProcessResult, format OutputFormat, forceColors bool)
