package game

import (
	"fmt"
	"sort"
	"strings"
)

// Availability is an edge schedule: at which time instants the edge may be
// taken. Punctual schedules (At) name exact instants; the remaining kinds
// cover the constraint formulas of physical/transport temporal graphs,
// where availability repeats with a period or opens after a threshold.
type Availability interface {
	// Available reports whether the edge is usable at exactly instant t.
	Available(t int) bool
	// Period returns (p, true) when the schedule is fully periodic:
	// Available(t) == Available(t+p) for all t >= 0. Finite or one-sided
	// schedules (At, From, Until) report false.
	Period() (int, bool)
	String() string
}

type alwaysSched struct{}
type neverSched struct{}

type atSched struct{ instants []int }

type fromSched struct{ start int }

type untilSched struct{ end int }

type everySched struct{ period, phase int }

type allSched struct{ parts []Availability }
type anySched struct{ parts []Availability }
type notSched struct{ inner Availability }

// Always is usable at every instant.
func Always() Availability { return alwaysSched{} }

// Never is usable at no instant.
func Never() Availability { return neverSched{} }

// At is usable at exactly the given instants (punctual availability).
func At(instants ...int) Availability {
	is := append([]int(nil), instants...)
	sort.Ints(is)
	// dedup
	out := is[:0]
	for i, v := range is {
		if i == 0 || v != is[i-1] {
			out = append(out, v)
		}
	}
	return atSched{instants: out}
}

// From is usable at every instant t >= start.
func From(start int) Availability { return fromSched{start: start} }

// Until is usable at every instant t <= end.
func Until(end int) Availability { return untilSched{end: end} }

// Every is usable at instants t with t ≡ phase (mod period). period must be
// positive; phase is normalized into [0, period).
func Every(period, phase int) Availability {
	if period <= 0 {
		panic(fmt.Sprintf("game: Every period must be positive, got %d", period))
	}
	return everySched{period: period, phase: ((phase % period) + period) % period}
}

// AllOf is usable when every part is (conjunction).
func AllOf(parts ...Availability) Availability {
	return allSched{parts: append([]Availability(nil), parts...)}
}

// AnyOf is usable when at least one part is (disjunction).
func AnyOf(parts ...Availability) Availability {
	return anySched{parts: append([]Availability(nil), parts...)}
}

// Not inverts a schedule.
func Not(inner Availability) Availability { return notSched{inner: inner} }

func (alwaysSched) Available(int) bool  { return true }
func (alwaysSched) Period() (int, bool) { return 1, true }
func (alwaysSched) String() string      { return "always" }

func (neverSched) Available(int) bool  { return false }
func (neverSched) Period() (int, bool) { return 1, true }
func (neverSched) String() string      { return "never" }

func (a atSched) Available(t int) bool {
	i := sort.SearchInts(a.instants, t)
	return i < len(a.instants) && a.instants[i] == t
}
func (a atSched) Period() (int, bool) { return 0, false }
func (a atSched) String() string {
	parts := make([]string, len(a.instants))
	for i, v := range a.instants {
		parts[i] = fmt.Sprint(v)
	}
	return "at " + strings.Join(parts, ",")
}

func (f fromSched) Available(t int) bool { return t >= f.start }
func (f fromSched) Period() (int, bool)  { return 0, false }
func (f fromSched) String() string       { return fmt.Sprintf("from %d", f.start) }

func (u untilSched) Available(t int) bool { return t <= u.end }
func (u untilSched) Period() (int, bool)  { return 0, false }
func (u untilSched) String() string       { return fmt.Sprintf("until %d", u.end) }

func (e everySched) Available(t int) bool {
	if t < 0 {
		return false
	}
	return t%e.period == e.phase
}
func (e everySched) Period() (int, bool) { return e.period, true }
func (e everySched) String() string {
	if e.phase == 0 {
		return fmt.Sprintf("every %d", e.period)
	}
	return fmt.Sprintf("every %d phase %d", e.period, e.phase)
}

func (a allSched) Available(t int) bool {
	for _, p := range a.parts {
		if !p.Available(t) {
			return false
		}
	}
	return true
}
func (a allSched) Period() (int, bool) { return jointPeriod(a.parts) }
func (a allSched) String() string      { return joinSched("all", a.parts) }

func (a anySched) Available(t int) bool {
	for _, p := range a.parts {
		if p.Available(t) {
			return true
		}
	}
	return false
}
func (a anySched) Period() (int, bool) { return jointPeriod(a.parts) }
func (a anySched) String() string      { return joinSched("any", a.parts) }

func (n notSched) Available(t int) bool { return !n.inner.Available(t) }
func (n notSched) Period() (int, bool)  { return n.inner.Period() }
func (n notSched) String() string       { return fmt.Sprintf("not(%s)", n.inner) }

func joinSched(op string, parts []Availability) string {
	ss := make([]string, len(parts))
	for i, p := range parts {
		ss[i] = p.String()
	}
	return op + "(" + strings.Join(ss, "; ") + ")"
}

// jointPeriod is the lcm of the part periods; ok only if every part is periodic.
func jointPeriod(parts []Availability) (int, bool) {
	out := 1
	for _, p := range parts {
		pp, ok := p.Period()
		if !ok {
			return 0, false
		}
		out = lcm(out, pp)
	}
	return out, true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int { return a / gcd(a, b) * b }
