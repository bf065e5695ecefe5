package game

import (
	"fmt"
	"time"
)

// Stats describes what one backward pass actually did.
type Stats struct {
	// Deadline is the horizon T the table was computed for.
	Deadline int
	// StepsComputed counts recurrence steps evaluated edge by edge.
	StepsComputed int
	// StepsSkipped counts steps answered by replaying a detected cycle.
	StepsSkipped int
	// CycleStart and CycleLength describe the detected repetition: the
	// winning set at time CycleStart equalled the one at time
	// CycleStart+CycleLength. Both are zero when no cycle was used.
	CycleStart  int
	CycleLength int
	// Period is the graph's global edge-schedule period, 0 when the
	// schedule is not fully periodic.
	Period  int
	Elapsed time.Duration
}

// Table holds the winning-set snapshots produced by Solve, indexed by time
// step from 0 to the deadline. Rows are immutable once recorded.
type Table struct {
	g        *Graph
	deadline int
	retain   Retention
	rows     []*Set // all rows when RetainAll, nil otherwise
	zero     *Set   // W_0, always kept
	strat    *Strategy
	stats    Stats
}

// Deadline returns the horizon T.
func (tb *Table) Deadline() int { return tb.deadline }

// Zero returns W_0: the vertices from which the reacher wins when play
// starts at time 0. The returned set must not be mutated.
func (tb *Table) Zero() *Set { return tb.zero }

// At returns W_t if that row was retained.
func (tb *Table) At(t int) (*Set, bool) {
	if t < 0 || t > tb.deadline {
		return nil, false
	}
	if tb.retain == RetainAll {
		return tb.rows[t], true
	}
	if t == 0 {
		return tb.zero, true
	}
	return nil, false
}

// Winning returns the vertex names in W_t sorted by name, if that row was
// retained.
func (tb *Table) Winning(t int) ([]VertexID, bool) {
	row, ok := tb.At(t)
	if !ok {
		return nil, false
	}
	return tb.g.names(row.Members()), true
}

// IsWinning reports whether v is in W_t.
func (tb *Table) IsWinning(t int, v VertexID) (bool, error) {
	i, ok := tb.g.indexOf(v)
	if !ok {
		return false, unknownVertex(v)
	}
	row, ok := tb.At(t)
	if !ok {
		return false, fmt.Errorf("winning set for time %d not retained", t)
	}
	return row.Has(i), nil
}

// Strategy returns the recorded witnessing moves, or nil when Solve ran
// without Options.Strategy.
func (tb *Table) Strategy() *Strategy { return tb.strat }

// Stats returns what the backward pass did.
func (tb *Table) Stats() Stats { return tb.stats }
