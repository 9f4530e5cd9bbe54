package domain

import "github.com/google/uuid"

// Shift is one emitted assignment: a staff works the window on the date.
type Shift struct {
	ID            uuid.UUID `json:"id"`
	StaffID       string    `json:"staff_id"`
	Date          Date      `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	BreakMinutes  int       `json:"break_minutes"`
	Overtime      bool      `json:"overtime,omitempty"`
	OvertimeHours float64   `json:"overtime_hours,omitempty"`
}

// NewShift builds a shift from an admissible option, resolving the break
// from policy and annotating overtime when the window exceeds the staff's
// daily cap.
func NewShift(p *Policy, staff *Staff, date Date, opt ShiftOption, force bool) Shift {
	shift := Shift{
		ID:           uuid.New(),
		StaffID:      staff.ID,
		Date:         date,
		StartTime:    FormatClock(opt.Start),
		EndTime:      FormatClock(opt.End),
		BreakMinutes: p.BreakMinutes(opt.Hours),
	}
	limit := staff.EffectiveMaxHours(force)
	if limit > 0 && opt.Hours > limit {
		shift.Overtime = true
		shift.OvertimeHours = roundTenth(opt.Hours - limit)
	}
	return shift
}

// Window returns the shift's minutes-of-day window.
func (s Shift) Window() (start, end int) {
	start, _ = ParseClock(s.StartTime)
	end, _ = ParseClock(s.EndTime)
	return start, end
}

// Covers reports whether the shift covers the slot minute.
func (s Shift) Covers(minute int) bool {
	start, end := s.Window()
	return start <= minute && minute < end
}

// roundTenth rounds to one decimal place.
func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
