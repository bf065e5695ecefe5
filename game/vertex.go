package game

import "fmt"

// VertexID is the external name of a vertex, as it appears in graph
// description files and on the command line.
type VertexID string

// Owner tags a vertex with the player who chooses the move out of it.
// Controller holds the reachability objective by default; Opponent tries
// to keep play away from the target set.
type Owner uint8

const (
	Controller Owner = iota
	Opponent
)

func (o Owner) String() string {
	switch o {
	case Controller:
		return "controller"
	case Opponent:
		return "opponent"
	}
	return fmt.Sprintf("owner(%d)", uint8(o))
}

// Other returns the opposing player.
func (o Owner) Other() Owner {
	if o == Controller {
		return Opponent
	}
	return Controller
}

// ParseOwner maps the textual ownership tag used by graph files onto an Owner.
func ParseOwner(s string) (Owner, error) {
	switch s {
	case "controller":
		return Controller, nil
	case "opponent":
		return Opponent, nil
	}
	return Controller, fmt.Errorf("unknown owner %q (want \"controller\" or \"opponent\")", s)
}

// Vertex is a declaration handed to NewGraph.
type Vertex struct {
	ID    VertexID
	Owner Owner
}
