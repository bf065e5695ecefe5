package game

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/rfielding/ontime/internal/ctxlog"
)

// Policy fixes the meaning of "reach the target by deadline T".
type Policy uint8

const (
	// VisitBy counts a play as winning when it sits on the target at some
	// time <= T: the target set is folded into every W_t.
	VisitBy Policy = iota
	// VisitAt requires the play to sit on the target at exactly time T.
	VisitAt
)

func (p Policy) String() string {
	if p == VisitAt {
		return "at"
	}
	return "by"
}

// Retention chooses how much of the table Solve keeps.
type Retention uint8

const (
	// RetainAll keeps every row from T down to 0.
	RetainAll Retention = iota
	// RetainLast keeps only W_0, using O(1) rows of memory.
	RetainLast
)

// Options tunes a backward pass. The zero value is a sensible default:
// VisitBy, RetainAll, sequential, shortcut enabled, no strategy recording,
// Controller as the reaching player.
type Options struct {
	Policy  Policy
	Retain  Retention
	Reacher Owner

	// Workers > 1 evaluates each step's vertices on that many goroutines.
	// Partitions are aligned to bitset words so no word is written twice.
	Workers int

	// NoShortcut disables cycle detection even on periodic graphs.
	NoShortcut bool

	// Strategy records one witnessing move per winning reacher vertex per
	// step, retrievable through Table.Strategy.
	Strategy bool
}

// Solve runs backward induction on the reachability game: starting from
// W_T = target it derives W_t from W_{t+1} using only the edges available
// at instant t, down to W_0.
//
//	reacher-owned v:  v in W_t  iff  some successor at t is in W_{t+1}
//	other-owned v:    v in W_t  iff  every successor at t is in W_{t+1}
//	                                 (vacuously true when v has no edge at t)
//
// Each step starts from the stuck-vertex baseline, so vertices without
// edges at t cost nothing beyond a word copy; the rest is one linear pass
// over the edges active at t. On fully periodic edge schedules a repeated
// (winning set, t mod period) pair short-circuits the remaining steps by
// replaying the detected cycle; the result is identical to the full
// computation.
//
// The context only carries the logger; the pass itself is finite and is not
// cancelled midway.
func Solve(ctx context.Context, g *Graph, target []VertexID, deadline int, opts Options) (*Table, error) {
	if deadline < 0 {
		return nil, fmt.Errorf("deadline must be non-negative, got %d", deadline)
	}
	tset, err := g.setOf(target)
	if err != nil {
		return nil, err
	}
	if opts.Workers < 0 {
		opts.Workers = 0
	}

	logger := ctxlog.From(ctx).With(
		"vertices", g.NumVertices(), "edges", g.NumEdges(), "deadline", deadline)
	logger.Debug("starting backward pass",
		"policy", opts.Policy.String(), "reacher", opts.Reacher.String(),
		"retain_all", opts.Retain == RetainAll, "workers", opts.Workers)

	s := &solver{g: g, opts: opts, target: tset, deadline: deadline, logger: logger}
	return s.run()
}

type solver struct {
	g        *Graph
	opts     Options
	target   *Set
	deadline int
	logger   *slog.Logger

	// baseline is the stuck-vertex convention as a set: vertices owned by
	// the non-reaching player win vacuously when stuck, reacher-owned
	// vertices lose.
	baseline *Set

	rows  []*Set       // full table when RetainAll
	snaps map[int]*Set // rows by time when cycle detection needs them
	moves [][]int32    // strategy choices, [t][vertex]

	// per-source edge buckets for the parallel path, rebuilt each step
	head    []int32
	nextE   []int32
	touched []int32
}

func (s *solver) run() (*Table, error) {
	start := time.Now()
	g, opts := s.g, s.opts
	n := g.NumVertices()
	deadline := s.deadline

	s.baseline = g.ownerMask(opts.Reacher.Other())

	if opts.Retain == RetainAll {
		s.rows = make([]*Set, deadline+1)
	}
	if opts.Strategy {
		s.moves = make([][]int32, deadline)
	}

	period, periodic := g.Period()
	shortcut := periodic && !opts.NoShortcut && deadline > 0
	var visited map[string]int
	if shortcut {
		visited = make(map[string]int)
		s.snaps = make(map[int]*Set)
	}

	stats := Stats{Deadline: deadline}
	if periodic {
		stats.Period = period
	}

	w := s.target.Clone()
	s.record(deadline, w)
	if shortcut {
		visited[cycleKey(deadline%period, w)] = deadline
		s.snaps[deadline] = w
	}

	if opts.Workers > 1 {
		s.head = make([]int32, n)
		for i := range s.head {
			s.head[i] = -1
		}
		s.nextE = make([]int32, len(g.edges))
	}

	for t := deadline - 1; t >= 0; t-- {
		w = s.step(w, t)
		s.record(t, w)
		stats.StepsComputed++

		if !shortcut {
			continue
		}
		key := cycleKey(t%period, w)
		if prev, seen := visited[key]; seen && t > 0 {
			cycleLen := prev - t
			s.logger.Debug("winning-set cycle detected",
				"time", t, "repeats", prev, "cycle_length", cycleLen, "steps_skipped", t)
			s.snaps[t] = w
			w = s.replay(t, cycleLen)
			stats.StepsSkipped = t
			stats.CycleStart = t
			stats.CycleLength = cycleLen
			break
		}
		visited[key] = t
		s.snaps[t] = w
	}

	stats.Elapsed = time.Since(start)
	tb := &Table{
		g:        g,
		deadline: deadline,
		retain:   opts.Retain,
		rows:     s.rows,
		zero:     w,
		stats:    stats,
	}
	if opts.Strategy {
		tb.strat = &Strategy{g: g, moves: s.moves}
	}
	s.logger.Debug("backward pass complete",
		"steps", stats.StepsComputed, "skipped", stats.StepsSkipped,
		"winning_at_zero", w.Count(), "elapsed", stats.Elapsed)
	return tb, nil
}

// step derives W_t from next = W_{t+1}. It returns a fresh snapshot and
// never mutates next, so rows already published stay immutable.
func (s *solver) step(next *Set, t int) *Set {
	cur := s.baseline.Clone()
	var choose []int32
	if s.moves != nil {
		choose = make([]int32, s.g.NumVertices())
		for i := range choose {
			choose[i] = -1
		}
		s.moves[t] = choose
	}

	if s.opts.Workers > 1 {
		s.stepParallel(cur, next, t, choose)
	} else {
		reacher := s.opts.Reacher
		g := s.g
		g.forEachEdgeAt(t, func(ei int32) {
			e := g.edges[ei]
			if g.owners[e.from] == reacher {
				if next.Has(e.to) {
					cur.Add(e.from)
					if choose != nil && (choose[e.from] < 0 || int32(e.to) < choose[e.from]) {
						choose[e.from] = int32(e.to)
					}
				}
			} else if !next.Has(e.to) {
				cur.Remove(e.from)
			}
		})
	}

	if s.opts.Policy == VisitBy {
		cur.or(s.target)
	}
	return cur
}

// stepParallel buckets the active edges by source vertex, then evaluates
// vertex memberships on word-aligned partitions. Every worker writes only
// bitset words in its own range and only strategy slots of its own
// vertices, so no shared word is written by two goroutines.
func (s *solver) stepParallel(cur, next *Set, t int, choose []int32) {
	g := s.g
	s.touched = s.touched[:0]
	g.forEachEdgeAt(t, func(ei int32) {
		from := int32(g.edges[ei].from)
		if s.head[from] < 0 {
			s.touched = append(s.touched, from)
		}
		s.nextE[ei] = s.head[from]
		s.head[from] = ei
	})

	words := len(cur.words)
	if words == 0 {
		return
	}
	workers := s.opts.Workers
	if workers > words {
		workers = words
	}
	per := (words + workers - 1) / workers

	var wg sync.WaitGroup
	for wk := 0; wk < workers; wk++ {
		loV := wk * per * 64
		hiV := (wk + 1) * per * 64
		wg.Add(1)
		go func() {
			defer wg.Done()
			reacher := s.opts.Reacher
			for _, v := range s.touched {
				if int(v) < loV || int(v) >= hiV {
					continue
				}
				if g.owners[v] == reacher {
					best := int32(-1)
					for ei := s.head[v]; ei >= 0; ei = s.nextE[ei] {
						to := int32(g.edges[ei].to)
						if next.Has(int(to)) && (best < 0 || to < best) {
							best = to
						}
					}
					if best >= 0 {
						cur.Add(int(v))
						if choose != nil {
							choose[v] = best
						}
					}
				} else {
					for ei := s.head[v]; ei >= 0; ei = s.nextE[ei] {
						if !next.Has(g.edges[ei].to) {
							cur.Remove(int(v))
							break
						}
					}
				}
			}
		}()
	}
	wg.Wait()

	// reset buckets for the next step
	for _, v := range s.touched {
		s.head[v] = -1
	}
}

// replay answers the remaining steps from the detected cycle: for every
// j < t, W_j equals the recorded row at j + m*cycleLen with the smallest m
// that lands in the already-computed range [t, deadline]. Called with t > 0.
// Returns W_0.
func (s *solver) replay(t, cycleLen int) *Set {
	rowAt := func(j int) *Set {
		if s.rows != nil {
			return s.rows[j]
		}
		return s.snaps[j]
	}
	lift := func(j int) int {
		m := (t - j + cycleLen - 1) / cycleLen
		return j + m*cycleLen
	}
	if s.rows != nil {
		for j := t - 1; j >= 0; j-- {
			s.rows[j] = s.rows[lift(j)]
		}
	}
	if s.moves != nil {
		// moves at time j use edges at j and W_{j+1}, both equal to those
		// of the lifted time, so the recorded choices replay unchanged
		for j := t - 1; j >= 0; j-- {
			s.moves[j] = s.moves[lift(j)]
		}
	}
	return rowAt(lift(0))
}

// record stores a finished row where the retention mode wants it.
func (s *solver) record(t int, w *Set) {
	if s.rows != nil {
		s.rows[t] = w
	}
}

func cycleKey(residue int, w *Set) string {
	return strconv.Itoa(residue) + "|" + w.Key()
}
