package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"magazine/catalog/internal/attr"
	"magazine/catalog/internal/owner"
)

var (
	attrJSON     bool
	attrCategory string
	attrName     string
)

var attrCmd = &cobra.Command{
	Use:   "attr",
	Short: "Attach and list typed attributes",
}

var attrAddCmd = &cobra.Command{
	Use:   "add <kind:id> <name> <value>",
	Short: "Attach an attribute to an entity",
	Long: `Attach an attribute to an entity. The value is classified from its text:
"12м" is an integer in metres, "1,5" a float, "да"/"нет" a boolean, and
anything else a shared string token.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		ref, err := owner.ParseRef(args[0])
		if err != nil {
			return err
		}

		a := attr.NewAttacher(d, ownerRegistry(d), nil)
		created, err := a.Attach(cmd.Context(), ref, args[1], args[2], attrCategory)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if attrJSON {
			return writeJSON(out, created)
		}
		fmt.Fprintf(out, "Attached %s = %s to %s (attribute %d, value %d)\n",
			created.Value.Name, created.Value, ref, created.ID, created.Value.ID)
		return nil
	},
}

var attrListCmd = &cobra.Command{
	Use:   "list <kind:id>",
	Short: "List the attributes of an entity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		ref, err := ResolveOwner(cmd, ownerRegistry(d), args[0])
		if err != nil {
			return err
		}
		attrs, err := d.AttributesByOwner(cmd.Context(), ref, attrName)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if attrJSON {
			if attrs == nil {
				attrs = []attr.Attribute{}
			}
			return writeJSON(out, attrs)
		}
		fmt.Fprintf(out, "\n  Attributes of %s\n\n", ref)
		printAttributes(out, attrs)
		return nil
	},
}

func init() {
	attrCmd.PersistentFlags().BoolVar(&attrJSON, "json", false, "Output as JSON")
	attrAddCmd.Flags().StringVar(&attrCategory, "category", "", "Category name (created if missing)")
	attrListCmd.Flags().StringVar(&attrName, "name", "", "Only attributes whose name contains this text")
	attrCmd.AddCommand(attrAddCmd, attrListCmd)
	rootCmd.AddCommand(attrCmd)
}
