package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gofemdesign/internal/loads"
	"github.com/alexiusacademia/gofemdesign/internal/model"
	"github.com/alexiusacademia/gofemdesign/internal/nscp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	comboModel      string
	comboPrefix     string
	comboSimplified bool
	comboWrite      bool
	showAll         bool
)

// Load case names and unfactored effects per NSCP kind
var (
	comboCaseNames = map[nscp.Kind]*string{}
	effectValues   = map[nscp.Kind]*float64{}
)

var kindFlags = []struct {
	kind  nscp.Kind
	name  string
	short string
	label string
}{
	{nscp.Dead, "dead", "d", "Dead load (D)"},
	{nscp.Live, "live", "l", "Live load (L)"},
	{nscp.Roof, "roof", "r", "Roof live load (Lr)"},
	{nscp.Wind, "wind", "w", "Wind load (W)"},
	{nscp.Earthquake, "earthquake", "e", "Earthquake load (E)"},
	{nscp.Rain, "rain", "R", "Rain load (R)"},
}

var comboCmd = &cobra.Command{
	Use:   "combo",
	Short: "NSCP 2015 load combinations",
	Long: `Work with NSCP 2015 strength design load combinations
(Section 203.3).

Subcommands:
  nscp     - Generate FEM-Design load combinations for a model
  factor   - Compute factored effects from unfactored ones

Load Types:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load`,
}

var comboNSCPCmd = &cobra.Command{
	Use:   "nscp",
	Short: "Generate NSCP load combinations from a model's load cases",
	Long: `Generate NSCP 2015 load combinations from the load cases of a struxml
model. Name the load case that carries each load type; types without a
load case are left out of the combinations.

Examples:
  gofd combo nscp --model beam.struxml --dead Deadload --live Liveload
  gofd combo nscp --model beam.struxml --dead DL --live LL --wind WX --write`,
	RunE: runComboNSCP,
}

var comboFactorCmd = &cobra.Command{
	Use:   "factor",
	Short: "Calculate factored effects using NSCP load combinations",
	Long: `Calculate the factored effect (moment, shear, reaction) for every NSCP
2015 load combination from the unfactored effects of each load type.

Examples:
  # Simple gravity loads (dead + live)
  gofd combo factor --dead 50 --live 30

  # With wind load, all combinations
  gofd combo factor --dead 50 --live 30 --wind 20 --all`,
	RunE: runComboFactor,
}

func init() {
	rootCmd.AddCommand(comboCmd)
	comboCmd.AddCommand(comboNSCPCmd, comboFactorCmd)

	comboNSCPCmd.Flags().StringVarP(&comboModel, "model", "m", "", "struxml model (required)")
	comboNSCPCmd.Flags().StringVar(&comboPrefix, "prefix", "NSCP ", "Name prefix of the generated combinations")
	comboNSCPCmd.Flags().BoolVarP(&comboWrite, "write", "W", false, "Add the combinations to the model file")
	comboNSCPCmd.MarkFlagRequired("model")

	for _, kf := range kindFlags {
		comboCaseNames[kf.kind] = comboNSCPCmd.Flags().String(kf.name, "", kf.label+" load case name")
		effectValues[kf.kind] = comboFactorCmd.Flags().Float64P(kf.name, kf.short, 0, kf.label+" effect")
	}

	for _, c := range []*cobra.Command{comboNSCPCmd, comboFactorCmd} {
		c.Flags().BoolVarP(&comboSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
	}
	comboFactorCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show all load combination results")
}

func combinationTable() []nscp.LoadCombination {
	if comboSimplified {
		return nscp.SimplifiedCombinations
	}
	return nscp.LoadCombinations
}

func runComboNSCP(cmd *cobra.Command, args []string) error {
	m, err := model.DeserializeFromFilePath(comboModel)
	if err != nil {
		return err
	}

	set := nscp.LoadCaseSet{}
	for _, kf := range kindFlags {
		name := *comboCaseNames[kf.kind]
		if name == "" {
			continue
		}
		lc := m.LoadCaseByName(name)
		if lc == nil {
			return fmt.Errorf("load case %q not found in %s", name, comboModel)
		}
		set[kf.kind] = lc
	}
	if set[nscp.Dead] == nil {
		return errors.New("a dead load case is required (--dead)")
	}

	combos, err := nscp.Build(set, combinationTable(), comboPrefix)
	if err != nil {
		return err
	}
	printCombinations(cmd.OutOrStdout(), combos)

	if !comboWrite {
		return nil
	}
	if err := m.AddLoadCombinations(combos); err != nil {
		return err
	}
	if err := m.SerializeModel(comboModel); err != nil {
		return err
	}
	logger.Info("Load combinations added", zap.String("model", comboModel), zap.Int("count", len(combos)))
	fmt.Fprintf(cmd.OutOrStdout(), "\nAdded %d load combinations to %s\n", len(combos), comboModel)
	return nil
}

func printCombinations(out io.Writer, combos []*loads.LoadCombination) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name\tType\tCombination\n")
	fmt.Fprintf(w, "  ────\t────\t───────────\n")
	for _, c := range combos {
		terms := make([]string, 0, len(c.Cases))
		for _, mc := range c.Cases {
			name := mc.GUID
			if mc.Case != nil {
				name = mc.Case.Name
			}
			terms = append(terms, fmt.Sprintf("%g %s", mc.Gamma, name))
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", c.Name, c.Type, strings.Join(terms, " + "))
	}
	w.Flush()
}

func runComboFactor(cmd *cobra.Command, args []string) error {
	effects := nscp.LoadEffects{}
	for _, kf := range kindFlags {
		if v := *effectValues[kf.kind]; v != 0 {
			effects[kf.kind] = v
		}
	}
	if len(effects) == 0 {
		return errors.New("provide at least one unfactored effect, see 'gofd combo factor --help'")
	}

	out := cmd.OutOrStdout()
	combinations := combinationTable()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "          NSCP 2015 FACTORED EFFECT CALCULATION")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "UNFACTORED EFFECTS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, kf := range kindFlags {
		if v, ok := effects[kf.kind]; ok {
			fmt.Fprintf(w, "  %s:\t%.2f\n", kf.label, v)
		}
	}
	w.Flush()
	fmt.Fprintln(out)

	maxU, governing := nscp.Governing(effects, combinations)

	if showAll {
		fmt.Fprintln(out, "LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tU\n")
		fmt.Fprintf(w, "  ─\t───────────\t─\n")
		for _, combo := range combinations {
			u, _ := combo.Factored(effects)
			marker := ""
			if combo.ID == governing.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", combo.ID, combo.Description, u, marker)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "RESULT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	fmt.Fprintf(out, "  Governing Combination: %s (%s)\n", governing.ID, governing.Description)
	fmt.Fprintf(out, "  Factored effect U = %.2f\n", maxU)
	fmt.Fprintln(out)
	return nil
}
