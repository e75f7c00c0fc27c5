package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/alexiusacademia/gofemdesign/internal/calculate"
	"github.com/alexiusacademia/gofemdesign/internal/results"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	bscModel     string
	bscKinds     []string
	bscListProcs []string
	bscDir       string
)

var bscCmd = &cobra.Command{
	Use:   "bsc",
	Short: "Write bsc files for the list generator",
	Long: `Write bsc batch files that tell the FEM-Design list generator which
result tables to write.

With --model the files are written for result kinds into
"<model dir>/<model name>/scripts". With --listproc they are written into
--dir, one file per list procedure.

Result kinds:
  NodalDisplacement, PointSupportReaction, BarDisplacement,
  BarInternalForce, EigenFrequency

Examples:
  gofd bsc --model beam.struxml --kind PointSupportReaction --kind BarInternalForce
  gofd bsc --listproc ResPtSupportReactions --dir scripts`,
	RunE: runBsc,
}

func init() {
	rootCmd.AddCommand(bscCmd)

	bscCmd.Flags().StringVarP(&bscModel, "model", "m", "", "struxml model the listings belong to")
	bscCmd.Flags().StringSliceVarP(&bscKinds, "kind", "k", nil, "Result kinds to list")
	bscCmd.Flags().StringSliceVarP(&bscListProcs, "listproc", "p", nil, "List procedures to write")
	bscCmd.Flags().StringVarP(&bscDir, "dir", "o", ".", "Output directory for --listproc")
}

func parseKinds(names []string) ([]results.Kind, error) {
	kinds := make([]results.Kind, 0, len(names))
	for _, n := range names {
		k, err := results.ParseKind(n)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func runBsc(cmd *cobra.Command, args []string) error {
	var paths []string
	switch {
	case len(bscListProcs) > 0:
		for _, name := range bscListProcs {
			l, err := calculate.ParseListProc(name)
			if err != nil {
				return err
			}
			b, err := calculate.NewBsc(l, filepath.Join(bscDir, string(l)+calculate.BscExtension), &cfg.Units)
			if err != nil {
				return err
			}
			if err := b.Serialize(); err != nil {
				return err
			}
			paths = append(paths, b.Path)
		}
	case bscModel != "":
		kinds, err := parseKinds(bscKinds)
		if err != nil {
			return err
		}
		if len(kinds) == 0 {
			return fmt.Errorf("at least one --kind is required with --model")
		}
		paths, err = calculate.BscPathsFromResultKinds(kinds, bscModel, &cfg.Units)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("either --model with --kind or --listproc is required")
	}

	logger.Debug("bsc files written", zap.Strings("paths", paths))
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
