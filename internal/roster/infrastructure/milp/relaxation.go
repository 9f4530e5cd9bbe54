package milp

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// errInfeasible marks an infeasible relaxation node.
var errInfeasible = errors.New("relaxation infeasible")

// relaxation solves the LP relaxation of the model with some binaries fixed.
// Fixed variables are folded into the right-hand sides, every free variable
// becomes a standard-form column, inequality rows gain slack or surplus
// columns and finite upper bounds become explicit rows, yielding
// min c'x s.t. Ax = b, x >= 0 for gonum's simplex.
func relaxation(m *Model, fixed map[int]float64) (obj float64, values []float64, err error) {
	cols := make([]int, len(m.vars)) // variable -> column, -1 when fixed
	ncols := 0
	for i := range m.vars {
		if _, ok := fixed[i]; ok {
			cols[i] = -1
			continue
		}
		cols[i] = ncols
		ncols++
	}

	type row struct {
		coefs map[int]float64 // column -> coefficient
		rhs   float64
	}
	var rows []row

	// Constraint rows. Slack and surplus columns are appended after the
	// variable columns.
	extra := 0
	for _, c := range m.constraints {
		r := row{coefs: make(map[int]float64), rhs: c.rhs}
		for _, t := range c.terms {
			if v, ok := fixed[int(t.Var)]; ok {
				r.rhs -= t.Coef * v
				continue
			}
			r.coefs[cols[t.Var]] += t.Coef
		}
		switch c.sense {
		case LessOrEqual:
			r.coefs[ncols+extra] = 1
			extra++
		case GreaterOrEqual:
			r.coefs[ncols+extra] = -1
			extra++
		case Equal:
		}
		rows = append(rows, r)
	}

	// Upper-bound rows for free variables with a finite upper end.
	for i, v := range m.vars {
		if cols[i] < 0 || isInf(v.hi) {
			continue
		}
		r := row{coefs: map[int]float64{cols[i]: 1, ncols + extra: 1}, rhs: v.hi}
		extra++
		rows = append(rows, r)
	}

	total := ncols + extra
	if total == 0 {
		// Everything is fixed and only equality rows remain; check their
		// residuals directly.
		for _, r := range rows {
			if r.rhs > 1e-9 || r.rhs < -1e-9 {
				return 0, nil, errInfeasible
			}
		}
		return constantObjective(m, fixed), fixedValues(m, fixed, nil, cols), nil
	}

	c := make([]float64, total)
	for i, v := range m.vars {
		if cols[i] >= 0 {
			c[cols[i]] = v.obj
		}
	}

	a := mat.NewDense(len(rows), total, nil)
	b := make([]float64, len(rows))
	for ri, r := range rows {
		scale := 1.0
		if r.rhs < 0 {
			scale = -1
		}
		b[ri] = scale * r.rhs
		for col, coef := range r.coefs {
			a.Set(ri, col, scale*coef)
		}
	}

	optF, optX, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return 0, nil, errInfeasible
		}
		return 0, nil, err
	}
	return optF + constantObjective(m, fixed), fixedValues(m, fixed, optX, cols), nil
}

// constantObjective sums the objective contribution of fixed variables and
// the model's constant offset.
func constantObjective(m *Model, fixed map[int]float64) float64 {
	obj := m.objConstant
	for i, v := range fixed {
		obj += m.vars[i].obj * v
	}
	return obj
}

// fixedValues assembles the full assignment vector from fixed values and the
// relaxation's columns.
func fixedValues(m *Model, fixed map[int]float64, optX []float64, cols []int) []float64 {
	values := make([]float64, len(m.vars))
	for i := range m.vars {
		if v, ok := fixed[i]; ok {
			values[i] = v
			continue
		}
		if optX != nil {
			values[i] = optX[cols[i]]
		}
	}
	return values
}
