package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrategyWitnessesTheWin(t *testing.T) {
	g := branchGraph(t)
	tb := mustSolve(t, g, []VertexID{"t"}, 1, Options{Strategy: true})

	strat := tb.Strategy()
	require.NotNil(t, strat)

	// s wins by moving to t; u is outside W_1 and never a witness
	move, ok := strat.Move("s", 0)
	require.True(t, ok)
	require.Equal(t, VertexID("t"), move)

	// t is winning only because it already sits on the target
	_, ok = strat.Move("t", 0)
	require.False(t, ok)
}

func TestStrategyTieBreakIsFirstDeclared(t *testing.T) {
	g, err := NewGraph(
		[]Vertex{
			{ID: "s", Owner: Controller},
			{ID: "a", Owner: Controller},
			{ID: "b", Owner: Controller},
		},
		[]Edge{
			{From: "s", To: "b", When: At(0)},
			{From: "s", To: "a", When: At(0)},
		},
	)
	require.NoError(t, err)

	// both successors witness the win; the earlier-declared vertex is chosen
	tb := mustSolve(t, g, []VertexID{"a", "b"}, 1, Options{Strategy: true})
	move, ok := tb.Strategy().Move("s", 0)
	require.True(t, ok)
	require.Equal(t, VertexID("a"), move)
}

func TestStrategyNotRecordedByDefault(t *testing.T) {
	g := branchGraph(t)
	tb := mustSolve(t, g, []VertexID{"t"}, 1, Options{})
	require.Nil(t, tb.Strategy())
}

func TestStrategySurvivesShortcutReplay(t *testing.T) {
	g := periodicGraph(t)
	target := []VertexID{"goal"}
	const deadline = 500

	full := mustSolve(t, g, target, deadline, Options{Strategy: true, NoShortcut: true})
	fast := mustSolve(t, g, target, deadline, Options{Strategy: true})
	require.Greater(t, fast.Stats().StepsSkipped, 0)

	for step := 0; step < deadline; step++ {
		for _, v := range g.Vertices() {
			wantMove, wantOK := full.Strategy().Move(v, step)
			gotMove, gotOK := fast.Strategy().Move(v, step)
			require.Equal(t, wantOK, gotOK, "move presence for %s at %d", v, step)
			require.Equal(t, wantMove, gotMove, "move for %s at %d", v, step)
		}
	}
}

func TestOpponentVerticesHaveNoMoves(t *testing.T) {
	g := periodicGraph(t)
	tb := mustSolve(t, g, []VertexID{"goal"}, 10, Options{Strategy: true})
	for step := 0; step < 10; step++ {
		_, ok := tb.Strategy().Move("p1", step)
		require.False(t, ok, "opponent vertex p1 has a recorded move at %d", step)
		_, ok = tb.Strategy().Move("p3", step)
		require.False(t, ok, "opponent vertex p3 has a recorded move at %d", step)
	}
}
