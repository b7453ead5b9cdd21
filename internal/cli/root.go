// Package cli provides the Cobra command structure for parkdown.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/parkdown/internal/configloader"
	"github.com/yaklabco/parkdown/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root parkdown command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "parkdown",
		Short: "A PEG parser for Markdown documents with embedded tags",
		Long: `parkdown parses Markdown with a PEG grammar into a lossless parse tree.

Headings, thematic breaks, HTML-style tags and fenced code blocks with
attribute dictionaries are recognised by the grammar; everything else is
kept as text. The tree can be printed as an outline, a token listing or
JSON, or rendered to HTML.` + envHelp(),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

// envHelp lists the PARKDOWN_* variables for the root help text.
func envHelp() string {
	var help strings.Builder

	help.WriteString("\n\nEnvironment:\n")
	for _, v := range configloader.ListEnvVars() {
		fmt.Fprintf(&help, "  %-26s %s\n", v.Name, v.Description)
	}

	return strings.TrimRight(help.String(), "\n")
}
