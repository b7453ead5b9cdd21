package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/parkdown/internal/ui/pretty"
	"github.com/yaklabco/parkdown/pkg/grammar"
)

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

func newRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List grammar rules",
		Long: `List every rule of the Markdown grammar with its kind and a short
description. Any rule can be passed to "parkdown parse --rule".`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := ruleInfos()

			switch format {
			case formatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return fmt.Errorf("encoding rules: %w", err)
				}
				return nil
			case "text", "":
				return printRules(cmd, infos)
			default:
				return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func ruleInfos() []ruleInfo {
	rules := grammar.Rules()
	infos := make([]ruleInfo, 0, len(rules))

	for _, rule := range rules {
		kind, _ := grammar.Markdown.Kind(rule)
		infos = append(infos, ruleInfo{
			Name:        rule.String(),
			Kind:        kind.String(),
			Description: rule.Description(),
		})
	}

	return infos
}

func printRules(cmd *cobra.Command, infos []ruleInfo) error {
	color, _ := cmd.Flags().GetString("color")
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))

	var nameWidth, kindWidth int
	for _, info := range infos {
		nameWidth = max(nameWidth, len(info.Name))
		kindWidth = max(kindWidth, len(info.Kind))
	}

	for _, info := range infos {
		if _, err := fmt.Fprintf(out, "%s  %s  %s\n",
			styles.RuleName.Render(fmt.Sprintf("%-*s", nameWidth, info.Name)),
			styles.Dim.Render(fmt.Sprintf("%-*s", kindWidth, info.Kind)),
			styles.Message.Render(info.Description),
		); err != nil {
			return fmt.Errorf("write rules: %w", err)
		}
	}

	return nil
}
