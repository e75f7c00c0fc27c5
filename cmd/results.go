package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gofemdesign/internal/diagram"
	"github.com/alexiusacademia/gofemdesign/internal/results"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	resKinds     []string
	resCase      string
	resPlot      string
	resBar       string
	resComponent string
	resSums      bool
)

var resultsCmd = &cobra.Command{
	Use:   "results <listing>...",
	Short: "Read list generator output",
	Long: `Read result listings written by the FEM-Design list generator and print
them as tables. Several files are read concurrently.

Examples:
  gofd results beam/results/*.csv
  gofd results beam/results/*.csv --kind PointSupportReaction --sums
  gofd results beam/results/*.csv --plot reactions.svg
  gofd results forces.csv --bar B.1 --component My --plot my.png`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)

	resultsCmd.Flags().StringSliceVarP(&resKinds, "kind", "k", nil, "Only show these result kinds")
	resultsCmd.Flags().StringVar(&resCase, "case", "", "Only show this load case or combination")
	resultsCmd.Flags().StringVarP(&resPlot, "plot", "p", "", "Write a chart to this file")
	resultsCmd.Flags().StringVar(&resBar, "bar", "", "Plot internal forces of this bar instead of reactions")
	resultsCmd.Flags().StringVar(&resComponent, "component", "My", "Internal force component to plot ("+strings.Join(diagram.ForceComponents, ", ")+")")
	resultsCmd.Flags().BoolVar(&resSums, "sums", false, "Print the total vertical reaction per case")
}

func runResults(cmd *cobra.Command, args []string) error {
	rs, err := results.ParseFiles(context.Background(), args)
	if err != nil {
		return err
	}
	logger.Debug("Listings read", zap.Int("files", len(args)), zap.Int("results", len(rs)))

	kinds, err := parseKinds(resKinds)
	if err != nil {
		return err
	}
	rs = filterResults(rs, kinds, resCase)

	out := cmd.OutOrStdout()
	if err := diagram.RenderTable(out, rs); err != nil {
		return err
	}

	reactions := results.Filter[results.PointSupportReaction](rs)
	if resSums && len(reactions) > 0 {
		fmt.Fprintln(out)
		order, sums := diagram.ReactionSums(reactions)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Case\tΣFz'\n")
		for _, c := range order {
			fmt.Fprintf(w, "  %s\t%.3f\n", c, sums[c])
		}
		w.Flush()
	}

	if resPlot == "" {
		return nil
	}
	var path string
	if resBar != "" {
		path, err = diagram.ExportInternalForceDiagram(results.Filter[results.BarInternalForce](rs), resBar, resComponent, resPlot)
	} else {
		path, err = diagram.ExportReactionChart(reactions, resPlot)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nChart written to %s\n", path)
	return nil
}

func filterResults(rs []results.Result, kinds []results.Kind, caseID string) []results.Result {
	if len(kinds) == 0 && caseID == "" {
		return rs
	}
	want := make(map[results.Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	var out []results.Result
	for _, r := range rs {
		if len(want) > 0 && !want[r.Kind()] {
			continue
		}
		if caseID != "" && !strings.EqualFold(r.CaseIdentifier(), caseID) {
			continue
		}
		out = append(out, r)
	}
	return out
}
