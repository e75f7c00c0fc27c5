package diagram

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gofemdesign/internal/results"
)

// RenderTable writes results as aligned tables, one per record kind in
// the order results.Kinds lists them.
func RenderTable(w io.Writer, rs []results.Result) error {
	groups := results.GroupByKind(rs)
	first := true
	for _, kind := range results.Kinds() {
		rows := groups[kind]
		if len(rows) == 0 {
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false

		title := fmt.Sprintf("%s (%d)", kind, len(rows))
		if _, err := fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("─", len(title))); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tw, "%s\t\n", strings.Join(results.Columns(kind), "\t"))
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t\n", strings.Join(r.Fields(), "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// ReactionSums returns the total vertical reaction per load case or
// combination, in the order the cases first appear.
func ReactionSums(reactions []results.PointSupportReaction) ([]string, map[string]float64) {
	var order []string
	sums := make(map[string]float64)
	for _, r := range reactions {
		if _, ok := sums[r.CaseId]; !ok {
			order = append(order, r.CaseId)
		}
		sums[r.CaseId] += r.Fz
	}
	return order, sums
}
