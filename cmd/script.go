package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofemdesign/internal/calculate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	scriptModel    string
	scriptAnalysis string
	scriptShapes   int
	scriptKinds    []string
	scriptKeepOpen bool
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Write an analysis fdscript for a model",
	Long: `Write the fdscript that opens a struxml model, runs an analysis, lists
the requested result kinds and saves the model. The script and its bsc
files go to "<model dir>/<model name>/scripts", listings to
"<model dir>/<model name>/results".

Run it with:
  fd3dstruct.exe /s <model name>/scripts/Analysis.fdscript

Examples:
  gofd script --model beam.struxml --kind PointSupportReaction
  gofd script --model frame.struxml --analysis frequency --shapes 5 --kind EigenFrequency`,
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)

	scriptCmd.Flags().StringVarP(&scriptModel, "model", "m", "", "struxml model (required)")
	scriptCmd.Flags().StringVarP(&scriptAnalysis, "analysis", "a", "static", "Analysis: static or frequency")
	scriptCmd.Flags().IntVar(&scriptShapes, "shapes", 5, "Number of vibration shapes for frequency analysis")
	scriptCmd.Flags().StringSliceVarP(&scriptKinds, "kind", "k", nil, "Result kinds to list")
	scriptCmd.Flags().BoolVar(&scriptKeepOpen, "keep-open", false, "Leave FEM-Design open when the script ends")
	scriptCmd.MarkFlagRequired("model")
}

func runScript(cmd *cobra.Command, args []string) error {
	analysis, err := calculate.ParseAnalysis(scriptAnalysis, scriptShapes)
	if err != nil {
		return err
	}
	kinds, err := parseKinds(scriptKinds)
	if err != nil {
		return err
	}
	bscPaths, err := calculate.BscPathsFromResultKinds(kinds, scriptModel, &cfg.Units)
	if err != nil {
		return err
	}
	s, err := calculate.NewAnalysisScript(scriptModel, analysis, bscPaths, !scriptKeepOpen)
	if err != nil {
		return err
	}
	s.SetProgram(cfg.FemDesign.Version, cfg.FemDesign.Module)
	if err := s.Serialize(); err != nil {
		return err
	}

	logger.Info("Script written", zap.String("path", s.FdScriptPath), zap.Int("listings", len(bscPaths)))
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, s.FdScriptPath)
	for _, o := range s.OutFiles() {
		fmt.Fprintf(out, "  -> %s\n", o)
	}
	return nil
}
