package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofemdesign/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gofd",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gofd v%s\n", version.Version)
		fmt.Fprintln(out, "FEM-Design interoperability tool")
		fmt.Fprintf(out, "FEM-Design script version %s\n", version.FemDesignVersion)
		if version.GitCommit != "unknown" {
			fmt.Fprintf(out, "commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
