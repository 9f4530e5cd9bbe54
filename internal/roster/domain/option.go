package domain

// minOptionMinutes is the shortest admissible clipped shift.
const minOptionMinutes = 60

// ShiftOption is one admissible shift window for a (staff, date) pair,
// derived from a configured pattern clipped to the day's opening hours.
type ShiftOption struct {
	Start int
	End   int
	Hours float64
}

// Covers reports whether the option's window contains the slot minute.
func (o ShiftOption) Covers(minute int) bool {
	return o.Start <= minute && minute < o.End
}

// CoversAny reports whether the option covers at least one of the minutes.
func (o ShiftOption) CoversAny(minutes map[int]int) bool {
	for m := range minutes {
		if o.Covers(m) {
			return true
		}
	}
	return false
}

// BuildOptions enumerates the admissible shift options for a staff on a
// given day. Patterns are clipped to the opening window; clips shorter than
// one hour are dropped and duplicate windows collapse. Without force mode,
// staff with a non-positive daily hour cap are unusable and options longer
// than the cap are inadmissible; force mode keeps them and leaves the excess
// to the overtime penalty.
func BuildOptions(p *Policy, day DayPlan, staff *Staff, force bool) []ShiftOption {
	if !day.Hours.IsOpen() {
		return nil
	}
	if !force && staff.MaxHoursPerDay <= 0 {
		return nil
	}
	maxHours := staff.EffectiveMaxHours(force)

	var options []ShiftOption
	seen := make(map[[2]int]struct{}, len(p.Patterns))
	for _, pattern := range p.Patterns {
		start := pattern.Start
		if day.Hours.Open > start {
			start = day.Hours.Open
		}
		end := pattern.End
		if day.Hours.Close < end {
			end = day.Hours.Close
		}
		if end-start < minOptionMinutes {
			continue
		}
		hours := float64(end-start) / 60
		if !force && hours > maxHours {
			continue
		}
		key := [2]int{start, end}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		options = append(options, ShiftOption{Start: start, End: end, Hours: hours})
	}
	return options
}
