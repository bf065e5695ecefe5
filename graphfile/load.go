// Package graphfile reads temporal graph descriptions from HCL files.
//
// A description declares vertices with their owning player, then temporal
// edges with their availability schedule:
//
//	vertex "s0" { owner = "controller" }
//	vertex "s1" { owner = "opponent" }
//
//	edge "s0" "s1" { at = [4, 9] }
//	edge "s1" "s1" { always = true }
//	edge "s0" "s0" { every = 5  phase = 2 }   # t ≡ 2 (mod 5)
//	edge "s1" "s0" { from = 5 }
package graphfile

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rfielding/ontime/game"
	"github.com/rfielding/ontime/internal/ctxlog"
)

// ErrMalformed marks syntax and schema errors in a graph description.
// References to undeclared vertices surface as game.ErrUnknownVertex
// instead. Match with errors.Is.
var ErrMalformed = errors.New("malformed graph description")

// Load parses the HCL file at path and builds the temporal graph.
func Load(ctx context.Context, path string) (*game.Graph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, diags.Error())
	}

	var config graphConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, diags.Error())
	}
	return build(ctx, path, &config)
}

// Parse is Load for in-memory sources; filename only feeds diagnostics.
func Parse(ctx context.Context, src []byte, filename string) (*game.Graph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, diags.Error())
	}

	var config graphConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, diags.Error())
	}
	return build(ctx, filename, &config)
}

func build(ctx context.Context, name string, config *graphConfig) (*game.Graph, error) {
	vertices := make([]game.Vertex, 0, len(config.Vertices))
	for _, vb := range config.Vertices {
		owner, err := game.ParseOwner(vb.Owner)
		if err != nil {
			return nil, fmt.Errorf("%w: vertex %q: %v", ErrMalformed, vb.Name, err)
		}
		vertices = append(vertices, game.Vertex{ID: game.VertexID(vb.Name), Owner: owner})
	}

	edges := make([]game.Edge, 0, len(config.Edges))
	for _, eb := range config.Edges {
		when, err := eb.schedule()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		edges = append(edges, game.Edge{
			From: game.VertexID(eb.Source),
			To:   game.VertexID(eb.Dest),
			When: when,
		})
	}

	g, err := game.NewGraph(vertices, edges)
	if err != nil {
		if errors.Is(err, game.ErrUnknownVertex) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	ctxlog.From(ctx).Debug("graph loaded",
		"source", name, "vertices", g.NumVertices(), "edges", g.NumEdges())
	return g, nil
}
