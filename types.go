package cssprefix

import "github.com/yacobolo/cssprefix/internal/prefixer"

// Overrides replaces built-in prefix lists. See prefixer.Overrides.
type Overrides = prefixer.Overrides

// Config holds file processing configuration
type Config struct {
	SourceDir  string   // "web/styles"
	Includes   []string // ["**/*.css", "**/*.scss"], relative to SourceDir
	Excludes   []string // ["vendor/**"], relative to SourceDir
	OutputDir  string   // Empty rewrites files in place
	DryRun     bool     // Report changes without writing
	Minify     bool     // Minify .css and .less output
	ProjectDir string   // Root for "~" imports (default: SourceDir)
	Workers    int      // Files processed concurrently (default: 4)
	Verbose    bool

	Overrides Overrides
	MaxDepth  int // Block nesting limit (default: 64)

	Sass SassConfig
}

// SassConfig controls compiling .scss and .sass sources before prefixing.
type SassConfig struct {
	Enabled     bool
	Binary      string   // Defaults to "sass" (dart) or "sassc"
	Flavor      string   // "dart" | "sassc" (default: dart)
	Style       string   // "expanded" | "compressed" | "nested" | "compact"
	ImportPaths []string // Searched after the source file's directory
	SourceMap   bool
}

// DefaultIncludes are used when Config.Includes is empty.
var DefaultIncludes = []string{"**/*.css", "**/*.scss", "**/*.less"}

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually processed (after filtering)
	FilesSkipped    int // Files skipped by excludes, .gitignore or generated-file rules
}

// FileChange describes what happened to one file
type FileChange struct {
	Path          string   `json:"path"`
	OutputPath    string   `json:"output_path,omitempty"`
	Declarations  int      `json:"declarations"`
	Expanded      int      `json:"expanded"`
	Emitted       int      `json:"emitted"`
	Properties    []string `json:"properties,omitempty"`
	Changed       bool     `json:"changed"`
	DepthExceeded bool     `json:"depth_exceeded,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// ProcessResult contains processing stats
type ProcessResult struct {
	ScanStats
	FilesChanged int
	FilesFailed  int
	Declarations int // Distinct declarations found across all files
	Expanded     int // Declarations replaced by prefixed variants
	Emitted      int // Declarations written in their place
	DryRun       bool
	Changes      []FileChange // In natural path order
	Warnings     []string
}

// OutputFormat represents the report format
type OutputFormat string

const (
	// OutputChanges lists changed and failed files with a short summary (default)
	OutputChanges OutputFormat = "changes"
	// OutputSummary shows statistics and expanded properties only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows changes, statistics and warnings
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
	// OutputMarkdown generates a Markdown report (shareable reports)
	OutputMarkdown OutputFormat = "markdown"
)
