package game

import (
	"errors"
	"fmt"
)

// ErrUnknownVertex is returned when a target set or an edge endpoint names a
// vertex that was never declared. Match with errors.Is.
var ErrUnknownVertex = errors.New("unknown vertex")

func unknownVertex(id VertexID) error {
	return fmt.Errorf("%w: %q", ErrUnknownVertex, string(id))
}
