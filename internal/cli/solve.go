package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rfielding/ontime/game"
	"github.com/rfielding/ontime/graphfile"
	"github.com/spf13/cobra"
)

var (
	solveTarget     string
	solveDeadline   int
	solvePolicy     string
	solveRetain     string
	solveWorkers    int
	solveNoShortcut bool
	solveStrategy   bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <graph-file>",
	Short: "Compute the winning set at time 0",
	Long: `solve reads a temporal graph description, then computes from which
vertices the controller can force a visit to the target set within the
deadline. The winning vertices at time 0 are reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveTarget, "target", "t", "", "Comma-separated target vertices (required)")
	solveCmd.Flags().IntVarP(&solveDeadline, "deadline", "d", 0, "Deadline (time horizon, required)")
	solveCmd.Flags().StringVar(&solvePolicy, "policy", "by", "Reach the target \"by\" the deadline or exactly \"at\" it")
	solveCmd.Flags().StringVar(&solveRetain, "retain", "all", "Winning-set rows to keep: \"all\" or \"last\"")
	solveCmd.Flags().IntVar(&solveWorkers, "workers", 0, "Parallel vertex evaluation per step (0 = sequential)")
	solveCmd.Flags().BoolVar(&solveNoShortcut, "no-shortcut", false, "Disable the periodicity shortcut")
	solveCmd.Flags().BoolVar(&solveStrategy, "strategy", false, "Record and report witnessing moves at time 0")
	_ = solveCmd.MarkFlagRequired("target")
	_ = solveCmd.MarkFlagRequired("deadline")
	rootCmd.AddCommand(solveCmd)
}

// solveReport is the --json shape of a solve run.
type solveReport struct {
	Graph    string            `json:"graph"`
	Deadline int               `json:"deadline"`
	Policy   string            `json:"policy"`
	Winning  []string          `json:"winning_at_zero"`
	Moves    map[string]string `json:"moves_at_zero,omitempty"`
	Stats    statsReport       `json:"stats"`
}

type statsReport struct {
	StepsComputed int    `json:"steps_computed"`
	StepsSkipped  int    `json:"steps_skipped"`
	CycleLength   int    `json:"cycle_length,omitempty"`
	Period        int    `json:"period,omitempty"`
	Elapsed       string `json:"elapsed"`
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	targets, err := parseTargetList(solveTarget)
	if err != nil {
		return err
	}
	opts, err := solveOptions()
	if err != nil {
		return err
	}

	g, err := graphfile.Load(ctx, args[0])
	if err != nil {
		return err
	}
	table, err := game.Solve(ctx, g, targets, solveDeadline, opts)
	if err != nil {
		return err
	}

	winning, _ := table.Winning(0)
	moves := movesAtZero(table, winning)

	if jsonOutput {
		report := solveReport{
			Graph:    args[0],
			Deadline: solveDeadline,
			Policy:   opts.Policy.String(),
			Winning:  vertexNames(winning),
			Moves:    moves,
			Stats: statsReport{
				StepsComputed: table.Stats().StepsComputed,
				StepsSkipped:  table.Stats().StepsSkipped,
				CycleLength:   table.Stats().CycleLength,
				Period:        table.Stats().Period,
				Elapsed:       table.Stats().Elapsed.String(),
			},
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if len(winning) == 0 {
		fmt.Println("No winning vertices at time 0.")
	} else {
		headerColor.Printf("Winning at time 0 (%d of %d vertices):\n", len(winning), g.NumVertices())
		for _, v := range winning {
			if mv, ok := moves[string(v)]; ok {
				winColor.Printf("  %s", string(v))
				fmt.Printf("  -> %s\n", mv)
			} else {
				winColor.Printf("  %s\n", string(v))
			}
		}
	}
	st := table.Stats()
	if st.StepsSkipped > 0 {
		faintColor.Printf("computed %d steps, skipped %d via cycle of length %d\n",
			st.StepsComputed, st.StepsSkipped, st.CycleLength)
	} else {
		faintColor.Printf("computed %d steps\n", st.StepsComputed)
	}
	return nil
}

func solveOptions() (game.Options, error) {
	var opts game.Options
	switch solvePolicy {
	case "by":
		opts.Policy = game.VisitBy
	case "at":
		opts.Policy = game.VisitAt
	default:
		return opts, fmt.Errorf("unknown policy %q (want \"by\" or \"at\")", solvePolicy)
	}
	switch solveRetain {
	case "all":
		opts.Retain = game.RetainAll
	case "last":
		opts.Retain = game.RetainLast
	default:
		return opts, fmt.Errorf("unknown retention %q (want \"all\" or \"last\")", solveRetain)
	}
	opts.Workers = solveWorkers
	opts.NoShortcut = solveNoShortcut
	opts.Strategy = solveStrategy
	return opts, nil
}

// parseTargetList splits the comma-separated target-set literal.
func parseTargetList(s string) ([]game.VertexID, error) {
	var out []game.VertexID
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, game.VertexID(part))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty target set literal %q", s)
	}
	return out, nil
}

func movesAtZero(table *game.Table, winning []game.VertexID) map[string]string {
	strat := table.Strategy()
	if strat == nil {
		return nil
	}
	moves := make(map[string]string)
	for _, v := range winning {
		if to, ok := strat.Move(v, 0); ok {
			moves[string(v)] = string(to)
		}
	}
	if len(moves) == 0 {
		return nil
	}
	return moves
}

func vertexNames(ids []game.VertexID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
