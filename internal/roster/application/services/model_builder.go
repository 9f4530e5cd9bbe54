package services

import (
	"math"

	"github.com/rotaplan/rotaplan/internal/roster/domain"
	"github.com/rotaplan/rotaplan/internal/roster/infrastructure/milp"
)

// Tier selects which constraint families are installed in the MILP. Each
// tier is a strict superset of the one below it.
type Tier int

const (
	// TierLegal carries only legal/contract constraints.
	TierLegal Tier = 1
	// TierCoverage adds slot coverage and the manager floor.
	TierCoverage Tier = 2
	// TierFull adds OJT adjacency and power balance.
	TierFull Tier = 3
)

// Objective penalty weights. Coverage slack is priced so high it acts as a
// hard constraint while keeping every tier's model feasible.
const (
	penaltyCoverageSlack  = 1_000_000
	penaltyManagerSlack   = 500_000
	penaltyOJTSlack       = 200_000
	penaltyPowerSlack     = 10_000
	penaltyMonthlyAbsence = 30_000
	penaltyForcedOvertime = 50_000
	hourlyCostScale       = 0.01
	powerBalanceFactor    = 1.5
	maxConsecutiveDays    = 6
)

// assignmentVar ties one MILP binary to its (staff, date, option) triple.
type assignmentVar struct {
	staffIdx int
	dateIdx  int
	optIdx   int
	v        milp.Var
}

// varTable is the flat variable store with an index by triple.
type varTable struct {
	entries []assignmentVar
	index   map[[3]int]milp.Var
}

// lookup returns the variable for a triple.
func (t *varTable) lookup(staffIdx, dateIdx, optIdx int) (milp.Var, bool) {
	v, ok := t.index[[3]int{staffIdx, dateIdx, optIdx}]
	return v, ok
}

// forPair returns the variables of all options of a (staff, date) pair.
func (t *varTable) forPair(opts *optionTable, staffIdx, dateIdx int) []milp.Var {
	options := opts.at(staffIdx, dateIdx)
	vars := make([]milp.Var, 0, len(options))
	for oi := range options {
		if v, ok := t.lookup(staffIdx, dateIdx, oi); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

// buildTierModel assembles the MILP for one tier. Binary assignment
// variables exist only for open dates outside the staff's NG set with a
// non-empty option list; unavailability needs no constraints.
func buildTierModel(p *domain.Problem, opts *optionTable, tier Tier, force bool) (*milp.Model, *varTable) {
	m := milp.NewModel()
	vars := &varTable{index: make(map[[3]int]milp.Var)}

	for si := range p.Staff {
		for di := range p.Calendar.Days {
			for oi := range opts.at(si, di) {
				v := m.NewBinary()
				vars.entries = append(vars.entries, assignmentVar{staffIdx: si, dateIdx: di, optIdx: oi, v: v})
				vars.index[[3]int{si, di, oi}] = v
			}
		}
	}

	addContractConstraints(m, p, opts, vars, force)
	if tier >= TierCoverage {
		addCoverageConstraints(m, p, opts, vars)
	}
	if tier >= TierFull {
		addTrainingAndBalance(m, p, opts, vars)
	}
	addBaseObjective(m, p, opts, vars, force)
	return m, vars
}

// addContractConstraints installs the always-active legal and contract
// rules: one shift per day, the weekly day cap, and at most six consecutive
// working days (lifted in force mode).
func addContractConstraints(m *milp.Model, p *domain.Problem, opts *optionTable, vars *varTable, force bool) {
	for si := range p.Staff {
		for di := range p.Calendar.Days {
			pairVars := vars.forPair(opts, si, di)
			if len(pairVars) == 0 {
				continue
			}
			c := m.NewConstraint(milp.LessOrEqual, 1)
			for _, v := range pairVars {
				c.NewTerm(1, v)
			}
		}
	}

	for si, staff := range p.Staff {
		maxDays := staff.EffectiveMaxDays(force)
		for _, week := range p.Calendar.Weeks {
			weekVars := collectVars(opts, vars, si, week)
			if len(weekVars) == 0 {
				continue
			}
			c := m.NewConstraint(milp.LessOrEqual, float64(maxDays))
			for _, v := range weekVars {
				c.NewTerm(1, v)
			}
		}
	}

	if force {
		return
	}
	for si := range p.Staff {
		for start := 0; start+maxConsecutiveDays < len(p.Calendar.Days); start++ {
			window := make([]int, 0, maxConsecutiveDays+1)
			for di := start; di <= start+maxConsecutiveDays; di++ {
				window = append(window, di)
			}
			windowVars := collectVars(opts, vars, si, window)
			if len(windowVars) == 0 {
				continue
			}
			c := m.NewConstraint(milp.LessOrEqual, maxConsecutiveDays)
			for _, v := range windowVars {
				c.NewTerm(1, v)
			}
		}
	}
}

// addCoverageConstraints installs per-slot head-count coverage and the
// manager floor, both softened by heavily priced slack so the model stays
// feasible when demand physically cannot be met.
func addCoverageConstraints(m *milp.Model, p *domain.Problem, opts *optionTable, vars *varTable) {
	for di, day := range p.Calendar.Days {
		for i := 0; i < day.Slots.Len(); i++ {
			required := day.Slots.Required[i]
			if required <= 0 {
				continue
			}
			minute := day.Slots.Minute(i)

			covering := coveringVars(p, opts, vars, di, minute, nil)
			if len(covering) > 0 {
				slack := m.NewContinuous(0, math.Inf(1))
				c := m.NewConstraint(milp.GreaterOrEqual, float64(required))
				for _, v := range covering {
					c.NewTerm(1, v)
				}
				c.NewTerm(1, slack)
				m.AddObjectiveTerm(penaltyCoverageSlack, slack)
			}

			managers := coveringVars(p, opts, vars, di, minute, func(s *domain.Staff) bool { return s.IsManager() })
			if len(managers) > 0 && p.Policy.MinManager > 0 {
				slack := m.NewContinuous(0, math.Inf(1))
				c := m.NewConstraint(milp.GreaterOrEqual, float64(p.Policy.MinManager))
				for _, v := range managers {
					c.NewTerm(1, v)
				}
				c.NewTerm(1, slack)
				m.AddObjectiveTerm(penaltyManagerSlack, slack)
			}
		}
	}
}

// addTrainingAndBalance installs the OJT adjacency requirement, the
// power-balance floor and the rank preference costs.
func addTrainingAndBalance(m *milp.Model, p *domain.Problem, opts *optionTable, vars *varTable) {
	for di, day := range p.Calendar.Days {
		for i := 0; i < day.Slots.Len(); i++ {
			if day.Slots.Required[i] <= 0 {
				continue
			}
			minute := day.Slots.Minute(i)
			rookies := coveringVars(p, opts, vars, di, minute, func(s *domain.Staff) bool { return s.IsRookie() })
			if len(rookies) == 0 {
				continue
			}
			mentors := coveringVars(p, opts, vars, di, minute, func(s *domain.Staff) bool { return s.IsMentor() })
			if len(mentors) == 0 {
				// No mentor can reach this slot; price every rookie
				// assignment that would cover it unaccompanied.
				for _, v := range rookies {
					m.AddObjectiveTerm(penaltyOJTSlack, v)
				}
				continue
			}
			slack := m.NewContinuous(0, math.Inf(1))
			c := m.NewConstraint(milp.GreaterOrEqual, 0)
			for _, v := range mentors {
				c.NewTerm(1, v)
			}
			for _, v := range rookies {
				c.NewTerm(-1, v)
			}
			c.NewTerm(1, slack)
			m.AddObjectiveTerm(penaltyOJTSlack, slack)
		}
	}

	for di, day := range p.Calendar.Days {
		if !day.Open() || day.Slots.Empty() {
			continue
		}
		base := p.Policy.BaseRequirement(day.Date)
		if base <= 0 {
			continue
		}
		var terms []milp.Term
		for si, staff := range p.Staff {
			for oi := range opts.at(si, di) {
				if v, ok := vars.lookup(si, di, oi); ok {
					terms = append(terms, milp.Term{Coef: staff.Rank.PowerScore(), Var: v})
				}
			}
		}
		if len(terms) == 0 {
			continue
		}
		slack := m.NewContinuous(0, math.Inf(1))
		c := m.NewConstraint(milp.GreaterOrEqual, powerBalanceFactor*float64(base))
		for _, t := range terms {
			c.NewTerm(t.Coef, t.Var)
		}
		c.NewTerm(1, slack)
		m.AddObjectiveTerm(penaltyPowerSlack, slack)
	}

	for _, entry := range vars.entries {
		cost := p.Staff[entry.staffIdx].Rank.PreferenceCost()
		if cost > 0 {
			m.AddObjectiveTerm(cost, entry.v)
		}
	}
}

// addBaseObjective installs the cost terms present in every tier: the
// monthly-staff absence incentive, the hourly labor cost, and the forced
// overtime penalty.
func addBaseObjective(m *milp.Model, p *domain.Problem, opts *optionTable, vars *varTable, force bool) {
	for si, staff := range p.Staff {
		maxHours := staff.EffectiveMaxHours(force)
		for di, day := range p.Calendar.Days {
			options := opts.at(si, di)
			if len(options) == 0 {
				continue
			}
			if staff.SalaryClass == domain.SalaryMonthly && day.Type != domain.DayClosed {
				m.AddObjectiveConstant(penaltyMonthlyAbsence)
				for oi := range options {
					if v, ok := vars.lookup(si, di, oi); ok {
						m.AddObjectiveTerm(-penaltyMonthlyAbsence, v)
					}
				}
			}
			for oi, opt := range options {
				v, ok := vars.lookup(si, di, oi)
				if !ok {
					continue
				}
				if staff.SalaryClass == domain.SalaryHourly {
					m.AddObjectiveTerm(staff.HourlyWage*opt.Hours*hourlyCostScale, v)
				}
				if force && maxHours > 0 && opt.Hours > maxHours {
					m.AddObjectiveTerm((opt.Hours-maxHours)*penaltyForcedOvertime, v)
				}
			}
		}
	}
}

// coveringVars returns the assignment variables of options containing the
// slot minute, optionally filtered by a staff predicate.
func coveringVars(p *domain.Problem, opts *optionTable, vars *varTable, dateIdx, minute int, keep func(*domain.Staff) bool) []milp.Var {
	var out []milp.Var
	for si, staff := range p.Staff {
		if keep != nil && !keep(staff) {
			continue
		}
		for oi, opt := range opts.at(si, dateIdx) {
			if !opt.Covers(minute) {
				continue
			}
			if v, ok := vars.lookup(si, dateIdx, oi); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// collectVars gathers all assignment variables of one staff over the given
// date indices.
func collectVars(opts *optionTable, vars *varTable, staffIdx int, dateIdxs []int) []milp.Var {
	var out []milp.Var
	for _, di := range dateIdxs {
		for oi := range opts.at(staffIdx, di) {
			if v, ok := vars.lookup(staffIdx, di, oi); ok {
				out = append(out, v)
			}
		}
	}
	return out
}
