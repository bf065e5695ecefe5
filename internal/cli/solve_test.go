package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rfielding/ontime/game"
	"github.com/stretchr/testify/require"
)

func TestParseTargetList(t *testing.T) {
	targets, err := parseTargetList("s0, s3 ,s7")
	require.NoError(t, err)
	require.Equal(t, []game.VertexID{"s0", "s3", "s7"}, targets)

	targets, err = parseTargetList("solo")
	require.NoError(t, err)
	require.Equal(t, []game.VertexID{"solo"}, targets)

	_, err = parseTargetList(" , ,")
	require.Error(t, err)
}

func TestSolveOptionsParsing(t *testing.T) {
	solvePolicy, solveRetain = "at", "last"
	solveWorkers, solveNoShortcut, solveStrategy = 3, true, true
	defer func() {
		solvePolicy, solveRetain = "by", "all"
		solveWorkers, solveNoShortcut, solveStrategy = 0, false, false
	}()

	opts, err := solveOptions()
	require.NoError(t, err)
	require.Equal(t, game.VisitAt, opts.Policy)
	require.Equal(t, game.RetainLast, opts.Retain)
	require.Equal(t, 3, opts.Workers)
	require.True(t, opts.NoShortcut)
	require.True(t, opts.Strategy)

	solvePolicy = "eventually"
	_, err = solveOptions()
	require.Error(t, err)

	solvePolicy, solveRetain = "by", "sometimes"
	_, err = solveOptions()
	require.Error(t, err)
}

// captureStdout runs fn with os.Stdout redirected into a buffer.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	runErr := fn()
	require.NoError(t, w.Close())

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String(), runErr
}

func writeBranchGraph(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.hcl")
	src := `
vertex "s" { owner = "controller" }
vertex "t" { owner = "controller" }
vertex "u" { owner = "controller" }

edge "s" "t" { at = 0 }
edge "s" "u" { at = 0 }
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestSolveCommandJSON(t *testing.T) {
	path := writeBranchGraph(t)

	rootCmd.SetArgs([]string{"solve", path, "--target", "t", "--deadline", "1", "--strategy", "--json"})
	out, err := captureStdout(t, Execute)
	require.NoError(t, err)

	var report solveReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, 1, report.Deadline)
	require.Equal(t, "by", report.Policy)
	require.Equal(t, []string{"s", "t"}, report.Winning)
	require.Equal(t, map[string]string{"s": "t"}, report.Moves)
	require.Equal(t, 1, report.Stats.StepsComputed)
}

func TestSolveCommandUnknownTarget(t *testing.T) {
	path := writeBranchGraph(t)

	rootCmd.SetArgs([]string{"solve", path, "--target", "ghost", "--deadline", "1"})
	_, err := captureStdout(t, Execute)
	require.ErrorIs(t, err, game.ErrUnknownVertex)
}

func TestInspectCommandJSON(t *testing.T) {
	path := writeBranchGraph(t)

	rootCmd.SetArgs([]string{"inspect", path, "--json"})
	out, err := captureStdout(t, Execute)
	require.NoError(t, err)

	var report inspectReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, map[string]string{
		"s": "controller",
		"t": "controller",
		"u": "controller",
	}, report.Vertices)
	require.Len(t, report.Edges, 2)
}

func TestDotCommand(t *testing.T) {
	path := writeBranchGraph(t)

	rootCmd.SetArgs([]string{"dot", path})
	out, err := captureStdout(t, Execute)
	require.NoError(t, err)
	require.Contains(t, out, "digraph TemporalGraph")
	require.Contains(t, out, `"s" -> "t"`)
}
