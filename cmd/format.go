package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"magazine/catalog/internal/attr"
	"magazine/catalog/internal/comment"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncText shortens s to at most max runes, marking the cut with "...".
func truncText(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}

func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *r)
}

func formatAge(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

func formatCategory(c *attr.Category) string {
	if c == nil {
		return "-"
	}
	return c.Name
}

func printAttributes(w io.Writer, attrs []attr.Attribute) {
	if len(attrs) == 0 {
		fmt.Fprintln(w, "  (no attributes)")
		return
	}
	for _, a := range attrs {
		fmt.Fprintf(w, "  %-6d %-24s %-24s %-5s %s\n",
			a.ID, truncText(a.Value.Name, 24), truncText(a.Value.String(), 24),
			a.Value.Variant, formatCategory(a.Category))
	}
	fmt.Fprintf(w, "\n  %s attribute(s)\n", humanize.Comma(int64(len(attrs))))
}

// printTree writes t and its descendants, one comment per line, indented by
// depth below t.
func printTree(w io.Writer, t *comment.Tree, now time.Time) {
	var walk func(n *comment.Tree, indent int)
	walk = func(n *comment.Tree, indent int) {
		age := ""
		if !n.CreatedAt.IsZero() {
			age = humanize.RelTime(n.CreatedAt, now, "ago", "from now")
		}
		fmt.Fprintf(w, "%s#%d [%s] user %d %s: %s\n",
			strings.Repeat("  ", indent), n.ID, formatRating(n.Rating), n.UserID, age, truncText(n.Text, 60))
		for _, c := range n.Children {
			walk(c, indent+1)
		}
	}
	walk(t, 0)
}
