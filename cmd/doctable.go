package cmd

import (
	"encoding/xml"
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/gofemdesign/internal/calculate"
	"github.com/spf13/cobra"
)

var (
	dtIndex     int
	dtWithUnits bool
	dtList      bool
)

var docTableCmd = &cobra.Command{
	Use:   "doctable [listproc]",
	Short: "Print the doctable command for a list procedure",
	Long: `Print the cmddoctable element that selects a result table in a bsc
file. The list procedure may be given by name or by its script code.

Without --index the table lists all load cases (LoadCase procedures) or
all load combinations (LoadCombination procedures and vibration shapes).

Examples:
  gofd doctable PointSupportReactionsLoadCase
  gofd doctable CoResBarsIF --index 0 --units
  gofd doctable --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocTable,
}

func init() {
	rootCmd.AddCommand(docTableCmd)

	docTableCmd.Flags().IntVarP(&dtIndex, "index", "i", 0, "Case index to list instead of all cases")
	docTableCmd.Flags().BoolVarP(&dtWithUnits, "units", "u", false, "Include the units from the config file")
	docTableCmd.Flags().BoolVarP(&dtList, "list", "l", false, "List the known list procedures")
}

func runDocTable(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if dtList {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  List procedure\tCode\tRestype\tDefault index\n")
		fmt.Fprintf(w, "  ──────────────\t────\t───────\t─────────────\n")
		for _, l := range calculate.ListProcs() {
			code, _ := l.Code()
			rt, idx := "-", "-"
			if v, err := calculate.ResType(l); err == nil {
				rt = fmt.Sprint(v)
			}
			if v, err := calculate.DefaultCaseIndex(l); err == nil {
				idx = fmt.Sprint(v)
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", l, code, rt, idx)
		}
		return w.Flush()
	}

	if len(args) == 0 {
		return fmt.Errorf("a list procedure is required, see 'gofd doctable --list'")
	}
	l, err := calculate.ParseListProc(args[0])
	if err != nil {
		return err
	}

	var opts []calculate.DocTableOption
	if cmd.Flags().Changed("index") {
		opts = append(opts, calculate.WithCaseIndex(dtIndex))
	}
	if dtWithUnits {
		opts = append(opts, calculate.WithUnits(cfg.Units))
	}
	dt, err := calculate.NewDocTable(l, opts...)
	if err != nil {
		return err
	}

	data, err := xml.MarshalIndent(calculate.NewCmdDocTable(dt), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}
