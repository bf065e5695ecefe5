package game

import (
	"fmt"
	"strings"
)

// DOT renders the temporal graph in Graphviz DOT form. Controller vertices
// are drawn as ellipses, Opponent vertices as boxes (the usual convention
// for two-player game arenas), and each edge is labeled with its schedule.
func (g *Graph) DOT() string {
	var sb strings.Builder

	sb.WriteString("digraph TemporalGraph {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("\n")

	for i, id := range g.ids {
		shape := "ellipse"
		if g.owners[i] == Opponent {
			shape = "box"
		}
		sb.WriteString(fmt.Sprintf("  %q [shape=%s];\n", string(id), shape))
	}
	sb.WriteString("\n")

	for _, e := range g.edges {
		sb.WriteString(fmt.Sprintf("  %q -> %q [label=%q];\n",
			string(g.ids[e.from]), string(g.ids[e.to]), e.when.String()))
	}

	sb.WriteString("}\n")
	return sb.String()
}
