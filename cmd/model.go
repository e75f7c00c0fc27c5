package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gofemdesign/internal/loads"
	"github.com/alexiusacademia/gofemdesign/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var modelOutput string

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Build and inspect struxml models",
	Long: `Build FEM-Design struxml models from YAML descriptions and inspect
existing ones.

Subcommands:
  build    - Convert a YAML model description to struxml
  info     - Summarise a struxml model

Example YAML file structure:
  country: S
  bars:
    - identifier: B
      type: beam
      start: {x: 2, y: 2, z: 0}
      end: {x: 10, y: 2, z: 0}
      material: C35/45
      section: Concrete sections, Rectangle, 300x900
  supports:
    - position: {x: 2, y: 2, z: 0}
      motions: rigid
      rotations: free
  load_cases:
    - {name: Deadload, type: dead_load, duration: permanent}
  point_loads:
    - {load_case: Deadload, position: {x: 6, y: 2, z: 0}, force: {x: 0, y: 0, z: -5}}`,
}

var modelBuildCmd = &cobra.Command{
	Use:   "build <model.yaml>",
	Short: "Convert a YAML model description to struxml",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelBuild,
}

var modelInfoCmd = &cobra.Command{
	Use:   "info <model.struxml>",
	Short: "Summarise a struxml model",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelInfo,
}

func init() {
	rootCmd.AddCommand(modelCmd)
	modelCmd.AddCommand(modelBuildCmd, modelInfoCmd)

	modelBuildCmd.Flags().StringVarP(&modelOutput, "output", "o", "", "struxml file to write (default: input name with .struxml)")
}

// loadModel reads a struxml model or builds one from a YAML description.
func loadModel(path string) (*model.Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return model.LoadInput(path)
	}
	return model.DeserializeFromFilePath(path)
}

func struxmlPathFor(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + model.Extension
}

func runModelBuild(cmd *cobra.Command, args []string) error {
	m, err := model.LoadInput(args[0])
	if err != nil {
		return err
	}
	out := modelOutput
	if out == "" {
		out = struxmlPathFor(args[0])
	}
	if err := m.SerializeModel(out); err != nil {
		return err
	}
	logger.Info("Model written", zap.String("input", args[0]), zap.String("output", out))
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runModelInfo(cmd *cobra.Command, args []string) error {
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n  %s (country %s, %s)\n\n", filepath.Base(args[0]), m.Country, m.SourceSoftware)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	l := m.Entities.Loads
	fmt.Fprintf(w, "  Bars:\t%d\n", len(m.Entities.Bars))
	fmt.Fprintf(w, "  Point supports:\t%d\n", len(m.Entities.PointSupports))
	fmt.Fprintf(w, "  Materials:\t%d\n", len(m.Materials.Materials))
	fmt.Fprintf(w, "  Sections:\t%d\n", len(m.Sections.Sections))
	fmt.Fprintf(w, "  Load cases:\t%d\n", len(l.LoadCases))
	fmt.Fprintf(w, "  Load combinations:\t%d\n", len(l.LoadCombinations))
	fmt.Fprintf(w, "  Point loads:\t%d\n", len(l.PointLoads))
	fmt.Fprintf(w, "  Line loads:\t%d\n", len(l.LineLoads))
	w.Flush()

	if len(l.LoadCases) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Load case\tType\tDuration\n")
		for _, lc := range l.LoadCases {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", lc.Name, lc.Type, lc.DurationClass)
		}
		w.Flush()
	}
	if len(l.LoadCombinations) > 0 {
		fmt.Fprintln(out)
		printCombinations(out, l.LoadCombinations)
		fmt.Fprintln(out)
		printFactorMatrix(out, l.LoadCases, l.LoadCombinations)
	}
	if len(l.LineLoads) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Line load\tLoad case\tDirection\tProjected\n")
		for i, ll := range l.LineLoads {
			dir := "changing"
			if ll.ConstLoadDir() {
				dir = "constant"
			}
			caseName := ll.LoadCase
			if lc := m.LoadCaseByGUID(ll.LoadCase); lc != nil {
				caseName = lc.Name
			}
			fmt.Fprintf(w, "  %d\t%s\t%s\t%t\n", i+1, caseName, dir, ll.LoadProjection)
		}
		w.Flush()
	}
	fmt.Fprintln(out)
	return nil
}

// printFactorMatrix prints the partial factor of every load case in every
// combination, "-" where a case is not part of it.
func printFactorMatrix(out io.Writer, cases []*loads.LoadCase, combos []*loads.LoadCombination) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "  Factors")
	for _, lc := range cases {
		fmt.Fprintf(w, "\t%s", lc.Name)
	}
	fmt.Fprintln(w)
	for _, c := range combos {
		fmt.Fprintf(w, "  %s", c.Name)
		for _, lc := range cases {
			if f := c.Factor(lc); f != 0 {
				fmt.Fprintf(w, "\t%g", f)
			} else {
				fmt.Fprint(w, "\t-")
			}
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
