package graphfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/rfielding/ontime/game"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// graphConfig is the top-level structure of a graph description file.
type graphConfig struct {
	Vertices []vertexBlock `hcl:"vertex,block"`
	Edges    []edgeBlock   `hcl:"edge,block"`
}

// vertexBlock is a `vertex "name" { owner = ... }` block.
type vertexBlock struct {
	Name  string `hcl:"name,label"`
	Owner string `hcl:"owner"`
}

// edgeBlock is an `edge "from" "to" { ... }` block. Exactly one schedule
// form is allowed: `always`, `at` (scalar instant or list of instants), or
// a combination of `every`/`phase`, `from` and `until`.
type edgeBlock struct {
	Source string `hcl:"source,label"`
	Dest   string `hcl:"dest,label"`

	At     hcl.Expression `hcl:"at,optional"`
	Always *bool          `hcl:"always,optional"`
	Every  *int           `hcl:"every,optional"`
	Phase  *int           `hcl:"phase,optional"`
	From   *int           `hcl:"from,optional"`
	Until  *int           `hcl:"until,optional"`
}

func (e edgeBlock) schedule() (game.Availability, error) {
	hasAt := e.At != nil
	if hasAt {
		// gohcl hands us a literal expression; absent optional attributes
		// may surface as a null-valued expression rather than nil
		v, diags := e.At.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("edge %s -> %s: bad `at`: %s", e.Source, e.Dest, diags.Error())
		}
		hasAt = !v.IsNull()
	}

	switch {
	case e.Always != nil:
		if hasAt || e.Every != nil || e.Phase != nil || e.From != nil || e.Until != nil {
			return nil, fmt.Errorf("edge %s -> %s: `always` cannot be combined with other schedule attributes", e.Source, e.Dest)
		}
		if *e.Always {
			return game.Always(), nil
		}
		return game.Never(), nil

	case hasAt:
		if e.Every != nil || e.Phase != nil || e.From != nil || e.Until != nil {
			return nil, fmt.Errorf("edge %s -> %s: `at` cannot be combined with other schedule attributes", e.Source, e.Dest)
		}
		instants, err := instantsFromExpr(e.At)
		if err != nil {
			return nil, fmt.Errorf("edge %s -> %s: %v", e.Source, e.Dest, err)
		}
		return game.At(instants...), nil
	}

	if e.Phase != nil && e.Every == nil {
		return nil, fmt.Errorf("edge %s -> %s: `phase` needs `every`", e.Source, e.Dest)
	}

	var parts []game.Availability
	if e.Every != nil {
		if *e.Every <= 0 {
			return nil, fmt.Errorf("edge %s -> %s: `every` must be positive, got %d", e.Source, e.Dest, *e.Every)
		}
		phase := 0
		if e.Phase != nil {
			phase = *e.Phase
		}
		parts = append(parts, game.Every(*e.Every, phase))
	}
	if e.From != nil {
		parts = append(parts, game.From(*e.From))
	}
	if e.Until != nil {
		parts = append(parts, game.Until(*e.Until))
	}

	switch len(parts) {
	case 0:
		return nil, fmt.Errorf("edge %s -> %s has no schedule", e.Source, e.Dest)
	case 1:
		return parts[0], nil
	}
	return game.AllOf(parts...), nil
}

// instantsFromExpr accepts a single number or a list/tuple of numbers.
func instantsFromExpr(expr hcl.Expression) ([]int, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("bad `at`: %s", diags.Error())
	}
	if v.Type() == cty.Number {
		var t int
		if err := gocty.FromCtyValue(v, &t); err != nil {
			return nil, fmt.Errorf("bad `at` instant: %v", err)
		}
		return []int{t}, nil
	}
	if v.Type().IsTupleType() || v.Type().IsListType() {
		var out []int
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			var t int
			if err := gocty.FromCtyValue(ev, &t); err != nil {
				return nil, fmt.Errorf("bad `at` instant: %v", err)
			}
			out = append(out, t)
		}
		return out, nil
	}
	return nil, fmt.Errorf("`at` must be a number or a list of numbers, got %s", v.Type().FriendlyName())
}
