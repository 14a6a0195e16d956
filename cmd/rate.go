package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"magazine/catalog/internal/rating"
)

var (
	rateJSON bool
	rateUser int64
)

var rateCmd = &cobra.Command{
	Use:   "rate <kind:id> [value]",
	Short: "Rate an entity from 1 to 10 (default 5)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := 0
		if len(args) == 2 {
			v, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("rating value %q: %w", args[1], err)
			}
			value = v
			if value == 0 {
				return fmt.Errorf("%w: 0 not in [%d, %d]", rating.ErrValueRange, rating.MinValue, rating.MaxValue)
			}
		}

		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		ref, err := ResolveOwner(cmd, ownerRegistry(d), args[0])
		if err != nil {
			return err
		}
		r, err := rating.New(rateUser, ref, value)
		if err != nil {
			return err
		}
		created, err := d.CreateRating(cmd.Context(), r)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if rateJSON {
			return writeJSON(out, created)
		}
		fmt.Fprintf(out, "User %d rated %s: %d\n", created.UserID, ref, created.Value)
		return nil
	},
}

type ratingsSummary struct {
	Owner   string          `json:"owner"`
	Count   int             `json:"count"`
	Average *float64        `json:"average_rating"`
	Ratings []rating.Rating `json:"ratings"`
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings <kind:id>",
	Short: "Show the ratings of an entity and their average",
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
		rs, err := d.RatingsByOwner(cmd.Context(), ref)
		if err != nil {
			return err
		}
		if rs == nil {
			rs = []rating.Rating{}
		}
		summary := ratingsSummary{Owner: ref.String(), Count: len(rs), Average: rating.Aggregate(rs), Ratings: rs}

		out := cmd.OutOrStdout()
		if rateJSON {
			return writeJSON(out, summary)
		}
		fmt.Fprintf(out, "\n  %s: %s rating(s), average %s\n\n",
			summary.Owner, humanize.Comma(int64(summary.Count)), formatRating(summary.Average))
		for _, r := range rs {
			fmt.Fprintf(out, "  %2d  user %-6d %s\n", r.Value, r.UserID, formatAge(r.CreatedAt))
		}
		return nil
	},
}

func init() {
	rateCmd.Flags().Int64Var(&rateUser, "user", 0, "Id of the rating user (required)")
	_ = rateCmd.MarkFlagRequired("user")
	rateCmd.Flags().BoolVar(&rateJSON, "json", false, "Output as JSON")
	ratingsCmd.Flags().BoolVar(&rateJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(rateCmd, ratingsCmd)
}
