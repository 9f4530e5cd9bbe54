package domain

// DayType classifies a date for policy resolution.
type DayType string

const (
	DayWeekday DayType = "weekday"
	DayWeekend DayType = "weekend"
	DayHoliday DayType = "holiday"
	DayClosed  DayType = "closed"
)

// SlotTable is a date's per-slot required head count on the 15-minute grid.
// Required[i] belongs to the slot starting at Window.Open + i*SlotMinutes.
type SlotTable struct {
	Window   Window
	Required []int
}

// NewSlotTable allocates a table over the window with every slot set to the
// base requirement.
func NewSlotTable(w Window, base int) SlotTable {
	n := (w.Close - w.Open) / SlotMinutes
	if (w.Close-w.Open)%SlotMinutes != 0 {
		n++
	}
	required := make([]int, n)
	for i := range required {
		required[i] = base
	}
	return SlotTable{Window: w, Required: required}
}

// Len returns the number of slots.
func (t SlotTable) Len() int { return len(t.Required) }

// Empty reports whether the table has no slots.
func (t SlotTable) Empty() bool { return len(t.Required) == 0 }

// Minute returns the start minute of slot i.
func (t SlotTable) Minute(i int) int { return t.Window.Open + i*SlotMinutes }

// DayPlan is the resolved policy for one date of the horizon.
type DayPlan struct {
	Date  Date
	Type  DayType
	Hours Window
	Slots SlotTable
}

// Open reports whether the date takes assignments at all.
func (p DayPlan) Open() bool { return p.Type != DayClosed && p.Hours.IsOpen() }

// Calendar holds the derived per-date tables for a solve horizon: day plans
// in ascending date order and calendar-week groupings by date index.
type Calendar struct {
	Days  []DayPlan
	Weeks [][]int

	indexByDate map[Date]int
}

// NewCalendar resolves every date against the policy. Dates are sorted
// ascending; duplicates collapse to a single plan.
func NewCalendar(p *Policy, dates []Date) *Calendar {
	sorted := SortDates(dates)
	cal := &Calendar{indexByDate: make(map[Date]int, len(sorted))}
	for _, d := range sorted {
		if _, seen := cal.indexByDate[d]; seen {
			continue
		}
		plan := DayPlan{
			Date:  d,
			Type:  p.DayTypeOf(d),
			Hours: p.OpeningHours(d),
			Slots: p.SlotRequirements(d),
		}
		cal.indexByDate[d] = len(cal.Days)
		cal.Days = append(cal.Days, plan)
	}
	cal.Weeks = groupWeeks(cal.Days)
	return cal
}

// Index returns the date's position in the horizon.
func (c *Calendar) Index(d Date) (int, bool) {
	i, ok := c.indexByDate[d]
	return i, ok
}

// Day returns the plan for a date.
func (c *Calendar) Day(d Date) (DayPlan, bool) {
	i, ok := c.indexByDate[d]
	if !ok {
		return DayPlan{}, false
	}
	return c.Days[i], true
}

// groupWeeks splits consecutive dates into calendar weeks: two neighbours
// share a week when they share the ISO (year, week) pair.
func groupWeeks(days []DayPlan) [][]int {
	var weeks [][]int
	var current []int
	var curYear, curWeek int
	for i, day := range days {
		y, w := day.Date.ISOWeek()
		if len(current) > 0 && (y != curYear || w != curWeek) {
			weeks = append(weeks, current)
			current = nil
		}
		curYear, curWeek = y, w
		current = append(current, i)
	}
	if len(current) > 0 {
		weeks = append(weeks, current)
	}
	return weeks
}
