package domain

// Coverage counts, per slot of one date, how many shifts contain the slot.
type Coverage struct {
	Slots SlotTable
	Count []int
}

// NewCoverage computes the slot coverage of a date from emitted shifts.
func NewCoverage(day DayPlan, shifts []Shift) Coverage {
	cov := Coverage{
		Slots: day.Slots,
		Count: make([]int, day.Slots.Len()),
	}
	for _, shift := range shifts {
		if shift.Date != day.Date {
			continue
		}
		start, end := shift.Window()
		for i := 0; i < cov.Slots.Len(); i++ {
			m := cov.Slots.Minute(i)
			if start <= m && m < end {
				cov.Count[i]++
			}
		}
	}
	return cov
}

// Deficits returns the uncovered slots as slot minute -> missing head count.
func (c Coverage) Deficits() map[int]int {
	deficits := make(map[int]int)
	for i, required := range c.Slots.Required {
		if c.Count[i] < required {
			deficits[c.Slots.Minute(i)] = required - c.Count[i]
		}
	}
	return deficits
}

// ShortageRange is a run of consecutive slots sharing the same shortage.
type ShortageRange struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Shortage int    `json:"shortage"`
}

// ShortageRanges compresses a slot shortage map over the table's grid into
// contiguous same-shortage ranges, in ascending slot order.
func ShortageRanges(table SlotTable, shortage map[int]int) []ShortageRange {
	var ranges []ShortageRange
	var open *ShortageRange
	for i := 0; i < table.Len(); i++ {
		minute := table.Minute(i)
		missing := shortage[minute]
		if open != nil && missing != open.Shortage {
			open.End = FormatClock(minute)
			ranges = append(ranges, *open)
			open = nil
		}
		if open == nil && missing > 0 {
			open = &ShortageRange{Start: FormatClock(minute), Shortage: missing}
		}
	}
	if open != nil {
		open.End = FormatClock(table.Window.Close)
		ranges = append(ranges, *open)
	}
	return ranges
}
