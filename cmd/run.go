package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alexiusacademia/gofemdesign/internal/calculate"
	"github.com/alexiusacademia/gofemdesign/internal/diagram"
	"github.com/alexiusacademia/gofemdesign/internal/results"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runOutput   string
	runAnalysis string
	runShapes   int
	runKinds    []string
	runPlot     string
)

var runCmd = &cobra.Command{
	Use:   "run <model.yaml|model.struxml>",
	Short: "Analyse a model with FEM-Design and print the results",
	Long: `Write the model as struxml, run an analysis in FEM-Design through its
batch interface, and print the listed results.

The FEM-Design executable is taken from the config file (femdesign.executable)
or the FEMDESIGN_EXE environment variable.

Examples:
  gofd run beam.yaml --kind PointSupportReaction --kind BarInternalForce
  gofd run frame.struxml --analysis frequency --shapes 5 --kind EigenFrequency
  gofd run beam.yaml --kind PointSupportReaction --plot reactions.png`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "struxml file to write (default: input name with .struxml)")
	runCmd.Flags().StringVarP(&runAnalysis, "analysis", "a", "static", "Analysis: static or frequency")
	runCmd.Flags().IntVar(&runShapes, "shapes", 5, "Number of vibration shapes for frequency analysis")
	runCmd.Flags().StringSliceVarP(&runKinds, "kind", "k", []string{string(results.KindPointSupportReaction)}, "Result kinds to list")
	runCmd.Flags().StringVarP(&runPlot, "plot", "p", "", "Write a support reaction chart to this file")
}

func newApplication() (*calculate.Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return calculate.NewApplication(cfg.FemDesign.Executable,
		calculate.WithTimeout(cfg.GetTimeout()),
		calculate.WithOutputTimeout(cfg.GetOutputTimeout()),
		calculate.WithMinimized(cfg.FemDesign.Minimized),
		calculate.WithProgram(cfg.FemDesign.Version, cfg.FemDesign.Module),
		calculate.WithLogger(logger),
	), nil
}

func runRun(cmd *cobra.Command, args []string) error {
	m, err := loadModel(args[0])
	if err != nil {
		return err
	}
	analysis, err := calculate.ParseAnalysis(runAnalysis, runShapes)
	if err != nil {
		return err
	}
	kinds, err := parseKinds(runKinds)
	if err != nil {
		return err
	}
	app, err := newApplication()
	if err != nil {
		return err
	}

	struxml := runOutput
	if struxml == "" {
		struxml = struxmlPathFor(args[0])
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := app.Analyse(ctx, m, struxml, analysis, kinds, &cfg.Units)
	if err != nil {
		if res != nil && res.Run != nil {
			for _, l := range res.Run.Log {
				logger.Warn("FEM-Design log", zap.String("line", l))
			}
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, diagram.DrawSummaryBox("FEM-Design analysis", []string{
		fmt.Sprintf("Model:    %s", struxml),
		fmt.Sprintf("Script:   %s", res.Script.FdScriptPath),
		fmt.Sprintf("Duration: %s", res.Run.Duration.Round(time.Millisecond)),
		fmt.Sprintf("Results:  %d", len(res.Results)),
	}))
	fmt.Fprintln(out)
	if err := diagram.RenderTable(out, res.Results); err != nil {
		return err
	}

	if runPlot != "" {
		path, err := diagram.ExportReactionChart(results.Filter[results.PointSupportReaction](res.Results), runPlot)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nReaction chart written to %s\n", path)
	}
	return nil
}
