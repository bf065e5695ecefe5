package graphfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rfielding/ontime/game"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) (*game.Graph, error) {
	t.Helper()
	return Parse(context.Background(), []byte(src), "test.hcl")
}

func mustParse(t *testing.T, src string) *game.Graph {
	t.Helper()
	g, err := parse(t, src)
	require.NoError(t, err)
	return g
}

func TestParseFullDescription(t *testing.T) {
	g := mustParse(t, `
vertex "s0" { owner = "controller" }
vertex "s1" { owner = "opponent" }
vertex "s2" { owner = "controller" }

edge "s0" "s1" { at = [4, 9] }
edge "s1" "s1" { always = true }
edge "s0" "s0" {
  every = 5
  phase = 2
}
edge "s1" "s2" { from = 5 }
edge "s2" "s0" {
  every = 3
  until = 30
}
`)

	require.Equal(t, 3, g.NumVertices())
	require.Equal(t, 5, g.NumEdges())

	owner, err := g.OwnerOf("s1")
	require.NoError(t, err)
	require.Equal(t, game.Opponent, owner)

	succs, err := g.SuccessorsAt("s0", 4)
	require.NoError(t, err)
	require.Equal(t, []game.VertexID{"s1"}, succs)

	succs, err = g.SuccessorsAt("s0", 7) // 7 ≡ 2 (mod 5)
	require.NoError(t, err)
	require.Equal(t, []game.VertexID{"s0"}, succs)

	succs, err = g.SuccessorsAt("s2", 33) // periodic but past `until`
	require.NoError(t, err)
	require.Empty(t, succs)
}

func TestParseScalarAt(t *testing.T) {
	g := mustParse(t, `
vertex "a" { owner = "controller" }
vertex "b" { owner = "controller" }
edge "a" "b" { at = 7 }
`)
	succs, err := g.SuccessorsAt("a", 7)
	require.NoError(t, err)
	require.Equal(t, []game.VertexID{"b"}, succs)
	succs, err = g.SuccessorsAt("a", 6)
	require.NoError(t, err)
	require.Empty(t, succs)
}

func TestParseAlwaysFalseIsNever(t *testing.T) {
	g := mustParse(t, `
vertex "a" { owner = "controller" }
edge "a" "a" { always = false }
`)
	succs, err := g.SuccessorsAt("a", 0)
	require.NoError(t, err)
	require.Empty(t, succs)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", `vertex "a" {`},
		{"bad owner", `vertex "a" { owner = "referee" }`},
		{"no schedule", `
vertex "a" { owner = "controller" }
edge "a" "a" {}
`},
		{"phase without every", `
vertex "a" { owner = "controller" }
edge "a" "a" { phase = 2 }
`},
		{"always combined", `
vertex "a" { owner = "controller" }
edge "a" "a" {
  always = true
  every  = 3
}
`},
		{"at combined", `
vertex "a" { owner = "controller" }
edge "a" "a" {
  at   = [1]
  from = 2
}
`},
		{"non-positive every", `
vertex "a" { owner = "controller" }
edge "a" "a" { every = 0 }
`},
		{"at wrong type", `
vertex "a" { owner = "controller" }
edge "a" "a" { at = "soon" }
`},
		{"duplicate vertex", `
vertex "a" { owner = "controller" }
vertex "a" { owner = "opponent" }
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse(t, tc.src)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseUnknownEndpointIsUnknownVertex(t *testing.T) {
	_, err := parse(t, `
vertex "a" { owner = "controller" }
edge "a" "ghost" { always = true }
`)
	require.ErrorIs(t, err, game.ErrUnknownVertex)
	require.NotErrorIs(t, err, ErrMalformed)
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.hcl")
	src := `
vertex "a" { owner = "controller" }
vertex "b" { owner = "opponent" }
edge "a" "b" { every = 2 }
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	g, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 2, g.NumVertices())

	_, err = Load(context.Background(), filepath.Join(dir, "missing.hcl"))
	require.Error(t, err)
}
