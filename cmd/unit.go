package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"magazine/catalog/internal/attr"
)

var unitJSON bool

var unitCmd = &cobra.Command{
	Use:   "unit",
	Short: "Manage units of measurement",
}

var unitAddCmd = &cobra.Command{
	Use:   "add <name> <plural> <symbol>",
	Short: "Register a unit",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		u, err := d.CreateUnit(cmd.Context(), attr.Unit{Name: args[0], Plural: args[1], Symbol: args[2]})
		if err != nil {
			return err
		}
		if unitJSON {
			return writeJSON(cmd.OutOrStdout(), u)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created unit %d: %s\n", u.ID, u)
		return nil
	},
}

var unitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered units",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		units, err := d.AllUnits(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing units: %w", err)
		}
		out := cmd.OutOrStdout()
		if unitJSON {
			if units == nil {
				units = []attr.Unit{}
			}
			return writeJSON(out, units)
		}
		for _, u := range units {
			fmt.Fprintf(out, "  %-4d %-16s %-16s %s\n", u.ID, u.Name, u.Plural, u.Symbol)
		}
		if len(units) == 0 {
			fmt.Fprintln(out, "  (no units)")
		}
		return nil
	},
}

var unitSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Register the units listed in the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		n, err := d.SeedUnits(cmd.Context(), cfg.Units)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d configured unit(s)\n", n, len(cfg.Units))
		return nil
	},
}

func init() {
	unitCmd.PersistentFlags().BoolVar(&unitJSON, "json", false, "Output as JSON")
	unitCmd.AddCommand(unitAddCmd, unitListCmd, unitSeedCmd)
	rootCmd.AddCommand(unitCmd)
}
