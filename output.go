package cssprefix

import (
	"io"
	"os"
)

// DetermineOutputFormat selects the output format from flags. Unknown
// formats fall back to OutputChanges.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit quiet flag wins (exit code only)
	if quiet {
		return OutputChanges // Suppressed by the CLI
	}

	switch formatFlag {
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	case "markdown", "md":
		return OutputMarkdown
	default:
		return OutputChanges
	}
}

// WriteOutput writes the processing result in the specified format
func WriteOutput(w io.Writer, result *ProcessResult, format OutputFormat, forceColors bool) {
	switch format {
	case OutputSummary:
		reporter := NewReporter(w, forceColors)
		reporter.PrintStatistics(*result)
		reporter.PrintProperties(*result)
		reporter.PrintWarnings(*result)

	case OutputFull:
		reporter := NewReporter(w, forceColors)
		reporter.PrintChanges(result.Changes)
		reporter.PrintSummary(*result)
		reporter.PrintStatistics(*result)
		reporter.PrintProperties(*result)
		reporter.PrintWarnings(*result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			// Log error but don't crash
			os.Stderr.WriteString("Error writing JSON: " + err.Error() + "\n")
		}

	case OutputMarkdown:
		if err := WriteMarkdown(w, result); err != nil {
			os.Stderr.WriteString("Error writing Markdown: " + err.Error() + "\n")
		}

	default:
		reporter := NewReporter(w, forceColors)
		reporter.PrintChanges(result.Changes)
		reporter.PrintSummary(*result)
	}
}
