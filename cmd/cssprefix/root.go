package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cssprefix",
	Short: "Vendor prefixer for CSS, SCSS and LESS stylesheets",
	Long: `Rewrite stylesheets in place, adding the vendor-prefixed variants
older browsers need. Formatting and everything else in the file is kept.`,
	// Default behavior: run prefixing when no subcommand is given.
	// We must call loadConfig here because PreRunE of runCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runPrefix(runCmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".cssprefix.yaml", "Config file path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
