package cssprefix

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Reporter handles formatting and outputting processing results
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a new reporter. forceColors enables colors regardless
// of the environment.
func NewReporter(w io.Writer, forceColors bool) *Reporter {
	return &Reporter{
		w:         w,
		useColors: shouldUseColors(forceColors),
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintChanges outputs one line per changed or failed file.
// Format: path: N declarations expanded (prop, prop)
func (r *Reporter) PrintChanges(changes []FileChange) {
	for _, change := range changes {
		switch {
		case change.Error != "":
			fmt.Fprintf(r.w, "%s %s\n",
				RenderStyle(StyleRed, change.Path+":", r.useColors),
				change.Error)
		case change.Changed:
			r.printChange(change)
		}
	}
}

func (r *Reporter) printChange(change FileChange) {
	location := change.Path + ":"
	if change.OutputPath != "" {
		location = fmt.Sprintf("%s -> %s:", change.Path, change.OutputPath)
	}

	props := ""
	if len(change.Properties) > 0 {
		props = " (" + strings.Join(change.Properties, ", ") + ")"
	}

	fmt.Fprintf(r.w, "%s %s expanded%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		pluralizeCount(change.Expanded, "declaration", "declarations"),
		RenderStyle(StyleGray, props, r.useColors))
}

// PrintSummary outputs the file count summary
func (r *Reporter) PrintSummary(result ProcessResult) {
	fmt.Fprintln(r.w, "")

	unchanged := result.FilesScanned - result.FilesChanged - result.FilesFailed
	if unchanged < 0 {
		unchanged = 0
	}

	verb := "changed"
	if result.DryRun {
		verb = "would change"
	}

	line := fmt.Sprintf("%s %s, %d unchanged",
		pluralizeCount(result.FilesChanged, "file", "files"), verb, unchanged)
	if result.FilesFailed > 0 {
		line += ", " + RenderStyle(StyleRed, fmt.Sprintf("%d failed", result.FilesFailed), r.useColors)
	}
	fmt.Fprintln(r.w, line)

	fmt.Fprintf(r.w, "%s expanded into %d\n",
		pluralizeCount(result.Expanded, "declaration", "declarations"), result.Emitted)

	if result.DryRun && result.FilesChanged > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Dry run: no files were written", r.useColors))
	}
}

// PrintStatistics outputs detailed processing statistics
func (r *Reporter) PrintStatistics(result ProcessResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Prefixer Statistics", r.useColors))
	fmt.Fprintln(r.w, "-------------------")

	fmt.Fprintf(r.w, "Files Discovered:  %d\n", result.FilesDiscovered)
	fmt.Fprintf(r.w, "Files Scanned:     %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:     %d\n", result.FilesSkipped)
	fmt.Fprintf(r.w, "Files Changed:     %d\n", result.FilesChanged)
	fmt.Fprintf(r.w, "Files Failed:      %d\n", result.FilesFailed)
	fmt.Fprintf(r.w, "Declarations:      %d\n", result.Declarations)
	fmt.Fprintf(r.w, "Expanded:          %d\n", result.Expanded)
	fmt.Fprintf(r.w, "Emitted:           %d\n", result.Emitted)
}

// PrintProperties shows how often each property was expanded, most frequent first.
func (r *Reporter) PrintProperties(result ProcessResult) {
	counts := propertyCounts(result.Changes)
	if len(counts) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Expanded Properties", r.useColors))
	fmt.Fprintln(r.w, "-------------------")
	for _, pc := range counts {
		fmt.Fprintf(r.w, "%-20s %s\n", pc.Property, pluralizeCount(pc.Files, "file", "files"))
	}
}

// PrintWarnings shows configuration and nesting warnings
func (r *Reporter) PrintWarnings(result ProcessResult) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "--------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
