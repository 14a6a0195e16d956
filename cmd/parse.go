package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"magazine/catalog/internal/attr"
)

var parseJSON bool

type parseResult struct {
	Input    string     `json:"input"`
	Type     string     `json:"type"`
	Value    any        `json:"value"`
	UnitText string     `json:"unit_text,omitempty"`
	Unit     *attr.Unit `json:"unit"`
}

var parseCmd = &cobra.Command{
	Use:   "parse <value>...",
	Short: "Show how free-text values would be classified, without storing anything",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		parser := attr.NewParser(d, nil)
		results := make([]parseResult, 0, len(args))
		for _, input := range args {
			c := attr.Classify(input)
			res := parseResult{Input: input, Type: string(c.Variant), UnitText: c.UnitText}
			switch c.Variant {
			case attr.VariantInt, attr.VariantFloat:
				res.Value = c.Int
				if c.Variant == attr.VariantFloat {
					res.Value = c.Float
				}
				res.Unit, err = parser.ResolveUnit(cmd.Context(), c.UnitText)
				if err != nil {
					return fmt.Errorf("resolving unit for %q: %w", input, err)
				}
			case attr.VariantBool:
				res.Value = c.Bool
			default:
				res.Value = c.Text
			}
			results = append(results, res)
		}

		out := cmd.OutOrStdout()
		if parseJSON {
			return writeJSON(out, results)
		}
		for _, r := range results {
			unit := "-"
			if r.Unit != nil {
				unit = r.Unit.String()
			} else if r.UnitText != "" {
				unit = fmt.Sprintf("%q (unknown)", r.UnitText)
			}
			fmt.Fprintf(out, "  %-20s %-5s %-14v unit: %s\n", truncText(r.Input, 20), r.Type, r.Value, unit)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(parseCmd)
}
