package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssprefix.yaml config file",
	Long:  `Create a .cssprefix.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".cssprefix.yaml"); err == nil && !force {
			return fmt.Errorf(".cssprefix.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".cssprefix.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created .cssprefix.yaml")
		return nil
	},
}

const defaultConfig = `# cssprefix configuration

# Shared settings
verbose: false
color: false

# Prefixing settings
prefix:
  source: .
  include:
    - "**/*.css"
    - "**/*.scss"
    - "**/*.less"
  exclude:
    - "node_modules/**"
  output-dir: ""           # empty rewrites files in place
  dry-run: false
  minify: false
  project-dir: ""          # root for ~ imports (default: source)
  max-depth: 64
  workers: 4
  output-format: changes   # changes | summary | full | json | markdown

  # Replace built-in prefix lists. "-webkit-*" expands to the built-in
  # entries starting with "-webkit-".
  preconfigured-only: false
  properties: {}
  #  transition: ["-webkit-*", "transition"]
  values: {}
  #  display:
  #    flex: ["-webkit-flex", "flex"]

# Compile .scss/.sass before prefixing
sass:
  enabled: false
  binary: ""               # default: sass (dart) or sassc
  flavor: dart             # dart | sassc
  style: expanded          # expanded | compressed | nested | compact
  import-paths: []
  source-map: false

# HTTP server
serve:
  addr: ":8080"
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
