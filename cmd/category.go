package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"magazine/catalog/internal/attr"
)

var categoryJSON bool

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage attribute categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List attribute categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		cats, err := d.AllCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing categories: %w", err)
		}
		out := cmd.OutOrStdout()
		if categoryJSON {
			if cats == nil {
				cats = []attr.Category{}
			}
			return writeJSON(out, cats)
		}
		for _, c := range cats {
			fmt.Fprintf(out, "  %-4d %s\n", c.ID, c.Name)
		}
		if len(cats) == 0 {
			fmt.Fprintln(out, "  (no categories)")
		}
		return nil
	},
}

var categorySeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the categories listed in the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		n, err := d.SeedCategories(cmd.Context(), cfg.Categories)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d configured categories\n", n, len(cfg.Categories))
		return nil
	},
}

func init() {
	categoryCmd.PersistentFlags().BoolVar(&categoryJSON, "json", false, "Output as JSON")
	categoryCmd.AddCommand(categoryListCmd, categorySeedCmd)
	rootCmd.AddCommand(categoryCmd)
}
