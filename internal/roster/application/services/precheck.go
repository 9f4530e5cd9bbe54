package services

import (
	"fmt"

	"github.com/rotaplan/rotaplan/internal/roster/domain"
)

// Warning severities, mildest first.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Warning is one pre-check finding.
type Warning struct {
	Severity string      `json:"severity"`
	Message  string      `json:"message"`
	Date     domain.Date `json:"date,omitempty"`
}

// DayDetail reports one date's potential coverage shortfall.
type DayDetail struct {
	Date        domain.Date            `json:"date"`
	DayType     domain.DayType         `json:"day_type"`
	Shortages   []domain.ShortageRange `json:"shortages,omitempty"`
	PersonHours float64                `json:"person_hours"`
}

// Summary carries the pre-check counters.
type Summary struct {
	Dates               int     `json:"dates"`
	OpenDates           int     `json:"open_dates"`
	Staff               int     `json:"staff"`
	UsableStaff         int     `json:"usable_staff"`
	ShortagePersonHours float64 `json:"shortage_person_hours"`
}

// PrecheckResult answers whether declared availability can possibly meet the
// slot requirements, without running the solver.
type PrecheckResult struct {
	Feasible     bool        `json:"feasible"`
	Warnings     []Warning   `json:"warnings"`
	DailyDetails []DayDetail `json:"daily_details"`
	Summary      Summary     `json:"summary"`
}

// slotPersonHours converts one slot of shortage to person-hours.
const slotPersonHours = float64(domain.SlotMinutes) / 60

// Precheck computes, per slot, how many available staff could cover it and
// reports the shortfall against the requirement. It never solves; it bounds
// what any solve could achieve.
func Precheck(p *domain.Problem) *PrecheckResult {
	result := &PrecheckResult{
		Feasible: true,
		Summary:  Summary{Dates: len(p.Calendar.Days), Staff: len(p.Staff)},
	}

	var usable []*domain.Staff
	for _, staff := range p.Staff {
		if staff.Usable() {
			usable = append(usable, staff)
			continue
		}
		result.Warnings = append(result.Warnings, Warning{
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("staff %s cannot be scheduled: daily or weekly limit is zero", staff.Name),
		})
	}
	result.Summary.UsableStaff = len(usable)

	for _, day := range p.Calendar.Days {
		if !day.Open() {
			continue
		}
		result.Summary.OpenDates++
		if day.Slots.Empty() {
			continue
		}

		shortage := make(map[int]int)
		personHours := 0.0
		for i, required := range day.Slots.Required {
			if required <= 0 {
				continue
			}
			minute := day.Slots.Minute(i)
			capacity := 0
			for _, staff := range usable {
				if staff.UnavailableOn(day.Date) {
					continue
				}
				for _, opt := range domain.BuildOptions(p.Policy, day, staff, false) {
					if opt.Covers(minute) {
						capacity++
						break
					}
				}
			}
			if capacity < required {
				shortage[minute] = required - capacity
				personHours += float64(required-capacity) * slotPersonHours
			}
		}
		if len(shortage) == 0 {
			continue
		}

		result.Feasible = false
		result.Summary.ShortagePersonHours += personHours
		detail := DayDetail{
			Date:        day.Date,
			DayType:     day.Type,
			Shortages:   domain.ShortageRanges(day.Slots, shortage),
			PersonHours: personHours,
		}
		result.DailyDetails = append(result.DailyDetails, detail)
		result.Warnings = append(result.Warnings, Warning{
			Severity: SeverityCritical,
			Date:     day.Date,
			Message:  fmt.Sprintf("%s: coverage short by %.2f person-hours", day.Date, personHours),
		})
	}

	result.Warnings = append(result.Warnings, weeklyCapacityWarnings(p, usable)...)
	return result
}

// weeklyCapacityWarnings compares, per calendar week, the usable staff's
// total workable days against the peak simultaneous requirement summed over
// the week's open dates.
func weeklyCapacityWarnings(p *domain.Problem, usable []*domain.Staff) []Warning {
	var warnings []Warning
	for _, week := range p.Calendar.Weeks {
		demand := 0
		var first domain.Date
		for _, di := range week {
			day := p.Calendar.Days[di]
			if first == "" {
				first = day.Date
			}
			if !day.Open() {
				continue
			}
			peak := 0
			for _, required := range day.Slots.Required {
				if required > peak {
					peak = required
				}
			}
			demand += peak
		}
		if demand == 0 {
			continue
		}
		capacity := 0
		for _, staff := range usable {
			capacity += staff.EffectiveMaxDays(false)
		}
		if capacity < demand {
			warnings = append(warnings, Warning{
				Severity: SeverityWarning,
				Date:     first,
				Message: fmt.Sprintf("week of %s: staff capacity %d person-days below the %d needed at peak",
					first, capacity, demand),
			})
		}
	}
	return warnings
}
