package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Wire-level defaults applied when the request configuration omits a field.
const (
	defaultOpeningMinute = 9 * 60
	defaultClosingMinute = 22 * 60
	defaultMinWeekday    = 2
	defaultMinWeekend    = 3
	defaultMinHoliday    = 3
	defaultMinManager    = 1
	defaultHourlyWage    = 1100
	defaultMaxDaysWeek   = 5
	// defaultMaxHoursDay is applied when a staff record omits the daily
	// cap. Shift length is bounded by the pattern windows, so an absent
	// cap must not rule any of them out.
	defaultMaxHoursDay = 24
)

// PatternInput is a configured shift pattern on the wire.
type PatternInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Name  string `json:"name"`
}

// WindowInput is an HH:MM window on the wire.
type WindowInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// StaffReqInput holds the per-day-type minimum head counts.
type StaffReqInput struct {
	MinWeekday *int `json:"min_weekday"`
	MinWeekend *int `json:"min_weekend"`
	MinHoliday *int `json:"min_holiday"`
	MinManager *int `json:"min_manager"`
}

// TimeStaffReqInput is a time-windowed reinforcement rule on the wire. Days
// are weekday indices with 0=Sunday.
type TimeStaffReqInput struct {
	Days  []int  `json:"days"`
	Start string `json:"start"`
	End   string `json:"end"`
	Count int    `json:"count"`
}

// BreakRuleInput is one break rule on the wire.
type BreakRuleInput struct {
	MinHours     float64 `json:"min_hours"`
	BreakMinutes int     `json:"break_minutes"`
}

// ConfigInput is the recognized request configuration.
type ConfigInput struct {
	CustomShifts    []PatternInput         `json:"custom_shifts"`
	OpeningTime     string                 `json:"opening_time"`
	ClosingTime     string                 `json:"closing_time"`
	OpeningTimes    map[string]WindowInput `json:"opening_times"`
	StaffReq        *StaffReqInput         `json:"staff_req"`
	TimeStaffReq    []TimeStaffReqInput    `json:"time_staff_req"`
	BreakRules      []BreakRuleInput       `json:"break_rules"`
	ClosedDays      []int                  `json:"closed_days"`
	SpecialHolidays []string               `json:"special_holidays"`
	SpecialDays     map[string]WindowInput `json:"special_days"`
}

// DateList accepts either a JSON array of dates or a single comma-separated
// string, which older clients still send for unavailable dates.
type DateList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *DateList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*l = nil
	for _, part := range strings.Split(joined, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// StaffInput is one staff record on the wire.
type StaffInput struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Role             string   `json:"role"`
	SalaryType       string   `json:"salary_type"`
	HourlyWage       *float64 `json:"hourly_wage"`
	Evaluation       string   `json:"evaluation"`
	MaxHoursDay      *float64 `json:"max_hours_day"`
	MaxDaysWeek      *int     `json:"max_days_week"`
	UnavailableDates DateList `json:"unavailable_dates"`
}

// RequestInput is one staff request on the wire.
type RequestInput struct {
	StaffID string `json:"staff_id"`
	Date    string `json:"date"`
	Type    string `json:"type"`
	Status  string `json:"status"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

// SolveInput is the full engine request.
type SolveInput struct {
	StaffList []StaffInput   `json:"staff_list"`
	Config    ConfigInput    `json:"config"`
	Dates     []string       `json:"dates"`
	Requests  []RequestInput `json:"requests"`
	Mode      string         `json:"mode"`
}

// Problem is a fully resolved solve request: validated staff with merged NG
// sets, the resolved policy, the derived calendar and the solve mode.
type Problem struct {
	Staff    []*Staff
	Policy   *Policy
	Calendar *Calendar
	Mode     Mode

	staffByID map[string]*Staff
}

// StaffByID returns the staff with the given id.
func (p *Problem) StaffByID(id string) (*Staff, bool) {
	s, ok := p.staffByID[id]
	return s, ok
}

// NewProblem validates and resolves a wire request into a Problem. All
// derived tables are rebuilt here; nothing is retained across requests.
func NewProblem(in SolveInput) (*Problem, error) {
	mode, err := ParseMode(in.Mode)
	if err != nil {
		return nil, err
	}
	policy, err := resolvePolicy(in.Config)
	if err != nil {
		return nil, err
	}

	dates := make([]Date, 0, len(in.Dates))
	for _, raw := range in.Dates {
		d, err := ParseDate(raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	problem := &Problem{
		Policy:    policy,
		Calendar:  NewCalendar(policy, dates),
		Mode:      mode,
		staffByID: make(map[string]*Staff, len(in.StaffList)),
	}
	for _, raw := range in.StaffList {
		staff, err := resolveStaff(raw)
		if err != nil {
			return nil, err
		}
		problem.Staff = append(problem.Staff, staff)
		problem.staffByID[staff.ID] = staff
	}

	for _, raw := range in.Requests {
		req, err := resolveRequest(raw)
		if err != nil {
			return nil, err
		}
		if !req.Blocking() {
			continue
		}
		if staff, ok := problem.staffByID[req.StaffID]; ok {
			staff.Unavailable[req.Date] = struct{}{}
		}
	}
	return problem, nil
}

func resolveStaff(in StaffInput) (*Staff, error) {
	if in.ID == "" {
		return nil, NewInvalidInput("staff record without id")
	}
	role, err := ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	salary, err := ParseSalaryClass(in.SalaryType)
	if err != nil {
		return nil, err
	}
	rank, err := ParseRank(in.Evaluation)
	if err != nil {
		return nil, err
	}

	staff := &Staff{
		ID:             in.ID,
		Name:           in.Name,
		Role:           role,
		SalaryClass:    salary,
		HourlyWage:     defaultHourlyWage,
		Rank:           rank,
		MaxHoursPerDay: defaultMaxHoursDay,
		MaxDaysPerWeek: defaultMaxDaysWeek,
		Unavailable:    make(map[Date]struct{}),
	}
	if in.HourlyWage != nil {
		staff.HourlyWage = *in.HourlyWage
	}
	if in.MaxHoursDay != nil {
		staff.MaxHoursPerDay = *in.MaxHoursDay
	}
	if in.MaxDaysWeek != nil {
		staff.MaxDaysPerWeek = *in.MaxDaysWeek
	}
	for _, raw := range in.UnavailableDates {
		d, err := ParseDate(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		staff.Unavailable[d] = struct{}{}
	}
	return staff, nil
}

func resolveRequest(in RequestInput) (LeaveRequest, error) {
	d, err := ParseDate(in.Date)
	if err != nil {
		return LeaveRequest{}, err
	}
	return LeaveRequest{
		StaffID: in.StaffID,
		Date:    d,
		Type:    RequestType(strings.ToLower(in.Type)),
		Status:  strings.ToLower(in.Status),
		Start:   in.Start,
		End:     in.End,
	}, nil
}

func resolvePolicy(in ConfigInput) (*Policy, error) {
	policy := &Policy{
		Default:        Window{Open: defaultOpeningMinute, Close: defaultClosingMinute},
		OpeningTimes:   make(map[DayType]Window),
		MinStaff:       make(map[DayType]int),
		MinManager:     defaultMinManager,
		ClosedWeekdays: make(map[time.Weekday]bool),
		ClosedDates:    make(map[Date]struct{}),
		Overrides:      make(map[Date]Window),
	}

	var err error
	if in.OpeningTime != "" {
		if policy.Default.Open, err = ParseClock(in.OpeningTime); err != nil {
			return nil, err
		}
	}
	if in.ClosingTime != "" {
		if policy.Default.Close, err = ParseClock(in.ClosingTime); err != nil {
			return nil, err
		}
	}

	if len(in.OpeningTimes) == 0 {
		policy.OpeningTimes[DayWeekday] = policy.Default
		policy.OpeningTimes[DayWeekend] = Window{Open: 10 * 60, Close: 20 * 60}
		policy.OpeningTimes[DayHoliday] = Window{Open: 10 * 60, Close: 20 * 60}
	} else {
		for key, win := range in.OpeningTimes {
			dayType := DayType(strings.ToLower(key))
			switch dayType {
			case DayWeekday, DayWeekend, DayHoliday:
			default:
				return nil, NewInvalidInput("unknown opening_times key %q", key)
			}
			w, err := resolveWindow(win, policy.Default)
			if err != nil {
				return nil, err
			}
			policy.OpeningTimes[dayType] = w
		}
	}

	policy.MinStaff[DayWeekday] = defaultMinWeekday
	policy.MinStaff[DayWeekend] = defaultMinWeekend
	policy.MinStaff[DayHoliday] = defaultMinHoliday
	if in.StaffReq != nil {
		if in.StaffReq.MinWeekday != nil {
			policy.MinStaff[DayWeekday] = *in.StaffReq.MinWeekday
		}
		if in.StaffReq.MinWeekend != nil {
			policy.MinStaff[DayWeekend] = *in.StaffReq.MinWeekend
		}
		if in.StaffReq.MinHoliday != nil {
			policy.MinStaff[DayHoliday] = *in.StaffReq.MinHoliday
		}
		if in.StaffReq.MinManager != nil {
			policy.MinManager = *in.StaffReq.MinManager
		}
	}

	if policy.Patterns, err = resolvePatterns(in.CustomShifts, policy.Default); err != nil {
		return nil, err
	}

	for _, rule := range in.TimeStaffReq {
		resolved := ReinforcementRule{Days: make(map[time.Weekday]bool, len(rule.Days)), Count: rule.Count}
		for _, day := range rule.Days {
			if day < 0 || day > 6 {
				return nil, NewInvalidInput("weekday index %d out of range", day)
			}
			resolved.Days[time.Weekday(day)] = true
		}
		if resolved.Start, err = parseClockOr(rule.Start, 0); err != nil {
			return nil, err
		}
		if resolved.End, err = parseClockOr(rule.End, MinutesPerDay); err != nil {
			return nil, err
		}
		policy.Reinforcements = append(policy.Reinforcements, resolved)
	}

	if len(in.BreakRules) == 0 {
		policy.BreakRules = []BreakRule{{MinHours: 6, Minutes: 45}, {MinHours: 8, Minutes: 60}}
	} else {
		for _, rule := range in.BreakRules {
			policy.BreakRules = append(policy.BreakRules, BreakRule{MinHours: rule.MinHours, Minutes: rule.BreakMinutes})
		}
		policy.BreakRules = sortBreakRules(policy.BreakRules)
	}

	for _, day := range in.ClosedDays {
		if day < 0 || day > 6 {
			return nil, NewInvalidInput("closed weekday index %d out of range", day)
		}
		policy.ClosedWeekdays[time.Weekday(day)] = true
	}
	for _, raw := range in.SpecialHolidays {
		d, err := ParseDate(raw)
		if err != nil {
			return nil, err
		}
		policy.ClosedDates[d] = struct{}{}
	}
	for raw, win := range in.SpecialDays {
		d, err := ParseDate(raw)
		if err != nil {
			return nil, err
		}
		w, err := resolveWindow(win, policy.Default)
		if err != nil {
			return nil, err
		}
		policy.Overrides[d] = w
	}
	return policy, nil
}

// resolvePatterns parses the configured shift patterns. Patterns wrapping
// past midnight are rejected; they must be split upstream. Without any
// configured pattern, three standard windows against the default closing
// time keep the engine usable.
func resolvePatterns(in []PatternInput, fallback Window) ([]ShiftPattern, error) {
	if len(in) == 0 {
		var patterns []ShiftPattern
		for _, name := range []string{"09:00", "14:00", "17:00"} {
			start, _ := ParseClock(name)
			if start < fallback.Close {
				patterns = append(patterns, ShiftPattern{Name: name, Start: start, End: fallback.Close})
			}
		}
		return patterns, nil
	}
	patterns := make([]ShiftPattern, 0, len(in))
	for _, p := range in {
		start, err := ParseClock(p.Start)
		if err != nil {
			return nil, err
		}
		end, err := ParseClock(p.End)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, NewInvalidInput("shift pattern %q wraps past midnight", p.Name)
		}
		patterns = append(patterns, ShiftPattern{Name: p.Name, Start: start, End: end})
	}
	return patterns, nil
}

func resolveWindow(in WindowInput, fallback Window) (Window, error) {
	w := fallback
	var err error
	if in.Start != "" {
		if w.Open, err = ParseClock(in.Start); err != nil {
			return Window{}, err
		}
	}
	if in.End != "" {
		if w.Close, err = ParseClock(in.End); err != nil {
			return Window{}, err
		}
	}
	return w, nil
}

func parseClockOr(s string, fallback int) (int, error) {
	if s == "" {
		return fallback, nil
	}
	return ParseClock(s)
}
