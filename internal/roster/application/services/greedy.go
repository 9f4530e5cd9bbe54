package services

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/rotaplan/rotaplan/internal/roster/domain"
)

// maxGreedyPasses bounds the fill loop per date.
const maxGreedyPasses = 30

// rankOrder positions ranks for candidate sorting, best first.
var rankOrder = map[domain.Rank]int{
	domain.RankA: 0,
	domain.RankB: 1,
	domain.RankC: 2,
	domain.RankD: 3,
}

// greedyFill is the deficit-driven fallback used when every MILP tier
// failed. Dates are filled independently in ascending order while running
// weekly counts persist across them. Each pass recomputes the deficit map,
// picks the worst slot and assigns the candidate whose option covers the
// most deficit slots; mentors come before rank order, so the schedule it
// produces degrades the same way the optimizer's preferences do.
func greedyFill(p *domain.Problem, logger *slog.Logger) []domain.Shift {
	if logger == nil {
		logger = slog.Default()
	}

	candidates := make([]*domain.Staff, len(p.Staff))
	copy(candidates, p.Staff)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].IsMentor() != candidates[j].IsMentor() {
			return candidates[i].IsMentor()
		}
		return rankOrder[candidates[i].Rank] < rankOrder[candidates[j].Rank]
	})

	var shifts []domain.Shift
	weeklyCount := make(map[string]int)

	for _, day := range p.Calendar.Days {
		if !day.Open() || day.Slots.Empty() {
			continue
		}
		isoYear, isoWeek := day.Date.ISOWeek()

		var dayShifts []domain.Shift
		assigned := make(map[string]struct{})

		for pass := 0; pass < maxGreedyPasses; pass++ {
			deficits := domain.NewCoverage(day, dayShifts).Deficits()
			if len(deficits) == 0 {
				break
			}
			worst := worstSlot(deficits)

			var bestStaff *domain.Staff
			var bestOption domain.ShiftOption
			bestCovered := 0
			for _, staff := range candidates {
				if _, taken := assigned[staff.ID]; taken {
					continue
				}
				if staff.UnavailableOn(day.Date) {
					continue
				}
				weekKey := fmt.Sprintf("%s/%d-W%d", staff.ID, isoYear, isoWeek)
				if weeklyCount[weekKey] >= staff.EffectiveMaxDays(true) {
					continue
				}
				for _, opt := range domain.BuildOptions(p.Policy, day, staff, false) {
					if !opt.Covers(worst) {
						continue
					}
					covered := 0
					for minute := range deficits {
						if opt.Covers(minute) {
							covered++
						}
					}
					if covered > bestCovered {
						bestCovered = covered
						bestStaff = staff
						bestOption = opt
					}
				}
			}
			if bestStaff == nil {
				break
			}

			dayShifts = append(dayShifts, domain.NewShift(p.Policy, bestStaff, day.Date, bestOption, false))
			assigned[bestStaff.ID] = struct{}{}
			weeklyCount[fmt.Sprintf("%s/%d-W%d", bestStaff.ID, isoYear, isoWeek)]++
		}

		if len(dayShifts) > 0 {
			logger.Debug("greedy filled date", "date", string(day.Date), "shifts", len(dayShifts))
		}
		shifts = append(shifts, dayShifts...)
	}
	return shifts
}

// worstSlot picks the slot with the largest shortage, earliest first on ties.
func worstSlot(deficits map[int]int) int {
	worst, worstShortage := -1, 0
	for minute, shortage := range deficits {
		if shortage > worstShortage || (shortage == worstShortage && (worst < 0 || minute < worst)) {
			worst = minute
			worstShortage = shortage
		}
	}
	return worst
}
