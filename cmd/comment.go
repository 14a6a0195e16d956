package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"magazine/catalog/internal/comment"
)

var (
	commentJSON bool
	commentUser int64
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Write and read threaded comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <kind:id> <text>",
	Short: "Start a new comment thread on an entity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if commentUser <= 0 {
			return fmt.Errorf("--user must be a positive user id")
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
		n, err := d.AddRoot(cmd.Context(), ref, commentUser, args[1])
		if err != nil {
			return err
		}
		return printCreatedComment(cmd, n)
	},
}

var commentReplyCmd = &cobra.Command{
	Use:   "reply <comment-id> <text>",
	Short: "Reply to a comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if commentUser <= 0 {
			return fmt.Errorf("--user must be a positive user id")
		}
		parentID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("comment id %q: %w", args[0], err)
		}
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		n, err := d.AddChild(cmd.Context(), parentID, commentUser, args[1])
		if err != nil {
			return err
		}
		return printCreatedComment(cmd, n)
	},
}

var commentTreeCmd = &cobra.Command{
	Use:   "tree <comment-id>",
	Short: "Show a comment and its replies, best rated first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("comment id %q: %w", args[0], err)
		}
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		tree, err := comment.NewThread(d, nil, nil).Subtree(cmd.Context(), id)
		if err != nil {
			return err
		}
		if commentJSON {
			return writeJSON(cmd.OutOrStdout(), tree)
		}
		printTree(cmd.OutOrStdout(), tree, time.Now())
		return nil
	},
}

var commentListCmd = &cobra.Command{
	Use:   "list <kind:id>",
	Short: "List the comment threads started on an entity",
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
		roots, err := d.CommentsByOwner(cmd.Context(), ref)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if commentJSON {
			if roots == nil {
				roots = []comment.Node{}
			}
			return writeJSON(out, roots)
		}
		for _, n := range roots {
			fmt.Fprintf(out, "  #%-5d [%s] user %d %s: %s\n",
				n.ID, formatRating(n.Rating), n.UserID, formatAge(n.CreatedAt), truncText(n.Text, 60))
		}
		if len(roots) == 0 {
			fmt.Fprintln(out, "  (no comments)")
		}
		return nil
	},
}

func printCreatedComment(cmd *cobra.Command, n comment.Node) error {
	if commentJSON {
		return writeJSON(cmd.OutOrStdout(), n)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created comment %d at %s on %s\n", n.ID, n.Path, n.Owner)
	return nil
}

func init() {
	commentCmd.PersistentFlags().BoolVar(&commentJSON, "json", false, "Output as JSON")
	commentAddCmd.Flags().Int64Var(&commentUser, "user", 0, "Id of the commenting user")
	commentReplyCmd.Flags().Int64Var(&commentUser, "user", 0, "Id of the commenting user")
	commentCmd.AddCommand(commentAddCmd, commentReplyCmd, commentTreeCmd, commentListCmd)
	rootCmd.AddCommand(commentCmd)
}
