package cssprefix

import (
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown writes the processing result as a Markdown report
func WriteMarkdown(w io.Writer, result *ProcessResult) error {
	var b strings.Builder

	b.WriteString("# CSS Prefixer Report\n\n")

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| **Status** | %s |\n", markdownStatus(result))
	fmt.Fprintf(&b, "| **Files Scanned** | %d (%d skipped) |\n", result.FilesScanned, result.FilesSkipped)
	fmt.Fprintf(&b, "| **Files Changed** | %d |\n", result.FilesChanged)
	fmt.Fprintf(&b, "| **Files Failed** | %d |\n", result.FilesFailed)
	fmt.Fprintf(&b, "| **Declarations Expanded** | %d / %d |\n", result.Expanded, result.Declarations)
	fmt.Fprintf(&b, "| **Declarations Emitted** | %d |\n", result.Emitted)
	if result.DryRun {
		b.WriteString("| **Mode** | dry run |\n")
	}

	if counts := propertyCounts(result.Changes); len(counts) > 0 {
		b.WriteString("\n## Expanded Properties\n\n")
		b.WriteString("| Property | Files |\n")
		b.WriteString("|----------|-------|\n")
		for _, pc := range counts {
			fmt.Fprintf(&b, "| `%s` | %d |\n", pc.Property, pc.Files)
		}
	}

	var changed, failed []FileChange
	for _, change := range result.Changes {
		switch {
		case change.Error != "":
			failed = append(failed, change)
		case change.Changed:
			changed = append(changed, change)
		}
	}

	if len(changed) > 0 {
		b.WriteString("\n## Changed Files\n\n")
		b.WriteString("| File | Expanded | Emitted |\n")
		b.WriteString("|------|----------|---------|\n")
		for _, change := range changed {
			fmt.Fprintf(&b, "| `%s` | %d | %d |\n", change.Path, change.Expanded, change.Emitted)
		}
	}

	if len(failed) > 0 {
		b.WriteString("\n## Errors\n\n")
		for _, change := range failed {
			fmt.Fprintf(&b, "- `%s`: %s\n", change.Path, change.Error)
		}
	}

	if len(result.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
	}

	b.WriteString("\n---\n*Generated by cssprefix*\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func markdownStatus(result *ProcessResult) string {
	switch {
	case result.FilesFailed > 0:
		return "🔴 Failures"
	case len(result.Warnings) > 0:
		return "🟡 Warnings"
	default:
		return "🟢 OK"
	}
}
