package cli

import (
	"fmt"
	"os"

	"github.com/rfielding/ontime/graphfile"
	"github.com/spf13/cobra"
)

var dotOutput string

var dotCmd = &cobra.Command{
	Use:   "dot <graph-file>",
	Short: "Export a graph description as Graphviz DOT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := graphfile.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		dot := g.DOT()
		if dotOutput == "" {
			fmt.Print(dot)
			return nil
		}
		return os.WriteFile(dotOutput, []byte(dot), 0o644)
	},
}

func init() {
	dotCmd.Flags().StringVarP(&dotOutput, "output", "o", "", "Write DOT to a file instead of stdout")
	rootCmd.AddCommand(dotCmd)
}
