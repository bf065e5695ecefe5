package game

// Strategy annotates winning reacher-owned vertices with one witnessing
// successor per time step. It is a byproduct of the backward pass and never
// changes its result: the move stored for (v, t) is the lowest-indexed
// (first-declared) successor of v at time t that lies in W_{t+1}, so output
// is reproducible run to run.
//
// Vertices owned by the other player need no stored choice: when they are
// winning, every available move keeps them winning.
type Strategy struct {
	g     *Graph
	moves [][]int32 // [t][vertex] -> successor index, -1 when none
}

// Move returns the recorded move out of v at time t. ok is false when v is
// not a winning reacher-owned vertex at t with an available move toward the
// target; in particular a vertex that is winning only because it already
// sits in the target set has no move to make.
func (s *Strategy) Move(v VertexID, t int) (VertexID, bool) {
	i, found := s.g.indexOf(v)
	if !found || t < 0 || t >= len(s.moves) {
		return "", false
	}
	m := s.moves[t][i]
	if m < 0 {
		return "", false
	}
	return s.g.ids[m], true
}
