package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yacobolo/cssprefix/internal/prefixer"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the effective prefix table",
	Long: `Print the built-in prefix table with configured overrides applied.
The YAML output can be pasted under "prefix:" in .cssprefix.yaml.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		overrides, err := buildOverrides()
		if err != nil {
			return err
		}

		quiet := getBoolWithFallback("quiet", "quiet", false)
		log := newLogger(getBoolWithFallback("verbose", "verbose", false), quiet)
		defer log.Sync()

		engine := prefixer.NewEngine(prefixer.Options{Overrides: overrides, Logger: log})
		snap := engine.Table().Snapshot()

		out := cmd.OutOrStdout()
		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(snap)
		case "yaml", "":
			encoder := yaml.NewEncoder(out)
			encoder.SetIndent(2)
			if err := encoder.Encode(snap); err != nil {
				return err
			}
			return encoder.Close()
		default:
			return fmt.Errorf("unknown format %q (use yaml or json)", format)
		}
	},
}

func init() {
	tableCmd.Flags().String("format", "yaml", "Output format: yaml|json")
	tableCmd.Flags().Bool("preconfigured-only", false, "Only accept override prefixes that are in the built-in table")
}
