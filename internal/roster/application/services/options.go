package services

import (
	"github.com/rotaplan/rotaplan/internal/roster/domain"
)

// optionTable holds the admissible shift options for every (staff, date)
// pair of a solve, indexed by staff index and date index. Closed dates and
// NG dates carry no options at all, which is how unavailability is enforced
// everywhere downstream.
type optionTable struct {
	options [][][]domain.ShiftOption
}

// newOptionTable materializes the per-(staff, date) option lists.
func newOptionTable(p *domain.Problem, force bool) *optionTable {
	table := &optionTable{options: make([][][]domain.ShiftOption, len(p.Staff))}
	for si, staff := range p.Staff {
		table.options[si] = make([][]domain.ShiftOption, len(p.Calendar.Days))
		for di, day := range p.Calendar.Days {
			if day.Type == domain.DayClosed || staff.UnavailableOn(day.Date) {
				continue
			}
			table.options[si][di] = domain.BuildOptions(p.Policy, day, staff, force)
		}
	}
	return table
}

// at returns the option list for a (staff, date) pair.
func (t *optionTable) at(staffIdx, dateIdx int) []domain.ShiftOption {
	return t.options[staffIdx][dateIdx]
}
