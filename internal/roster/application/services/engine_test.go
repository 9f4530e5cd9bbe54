package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaplan/rotaplan/internal/roster/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngine() *Engine {
	return NewEngine(EngineConfig{TimeLimit: 30 * time.Second}, testLogger())
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// singleStaffInput is one hourly staff against one Monday with a single
// nine-to-five pattern and a requirement of one.
func singleStaffInput() domain.SolveInput {
	return domain.SolveInput{
		StaffList: []domain.StaffInput{{
			ID:          "s1",
			Name:        "Sato",
			Role:        "staff",
			SalaryType:  "hourly",
			HourlyWage:  floatPtr(1000),
			Evaluation:  "B",
			MaxHoursDay: floatPtr(8),
			MaxDaysWeek: intPtr(5),
		}},
		Config: domain.ConfigInput{
			CustomShifts: []domain.PatternInput{{Start: "09:00", End: "17:00", Name: "day"}},
			OpeningTimes: map[string]domain.WindowInput{
				"weekday": {Start: "09:00", End: "17:00"},
			},
			StaffReq: &domain.StaffReqInput{
				MinWeekday: intPtr(1),
				MinManager: intPtr(0),
			},
		},
		Dates: []string{"2025-01-06"},
	}
}

func TestSolveSingleStaffSingleDay(t *testing.T) {
	result, err := testEngine().Solve(context.Background(), singleStaffInput())
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, StageTier3, result.Stage)
	require.Len(t, result.Shifts, 1)

	shift := result.Shifts[0]
	assert.Equal(t, "s1", shift.StaffID)
	assert.Equal(t, domain.Date("2025-01-06"), shift.Date)
	assert.Equal(t, "09:00", shift.StartTime)
	assert.Equal(t, "17:00", shift.EndTime)
	assert.Equal(t, 45, shift.BreakMinutes)
	assert.False(t, shift.Overtime)

	assert.Empty(t, result.Violations)
	assert.Equal(t, 1, result.Statistics.Assignments)
	assert.Equal(t, result.Statistics.TotalSlots, result.Statistics.FilledSlots)
	assert.InDelta(t, 1.0, result.Statistics.FillRate, 1e-9)
	assert.InDelta(t, 8.0, result.Statistics.TotalHours, 1e-9)
}

func TestSolveIsDeterministic(t *testing.T) {
	first, err := testEngine().Solve(context.Background(), singleStaffInput())
	require.NoError(t, err)
	second, err := testEngine().Solve(context.Background(), singleStaffInput())
	require.NoError(t, err)

	require.Len(t, second.Shifts, len(first.Shifts))
	for i := range first.Shifts {
		a, b := first.Shifts[i], second.Shifts[i]
		assert.Equal(t, a.StaffID, b.StaffID)
		assert.Equal(t, a.Date, b.Date)
		assert.Equal(t, a.StartTime, b.StartTime)
		assert.Equal(t, a.EndTime, b.EndTime)
	}
}

// mentorRookieInput pairs a manager A with a rookie D over one Monday.
func mentorRookieInput(minWeekday int) domain.SolveInput {
	return domain.SolveInput{
		StaffList: []domain.StaffInput{
			{ID: "rookie", Name: "New", Role: "rookie", Evaluation: "D", HourlyWage: floatPtr(1000)},
			{ID: "boss", Name: "Lead", Role: "manager", Evaluation: "A", HourlyWage: floatPtr(1500)},
		},
		Config: domain.ConfigInput{
			CustomShifts: []domain.PatternInput{{Start: "09:00", End: "18:00", Name: "day"}},
			OpeningTimes: map[string]domain.WindowInput{
				"weekday": {Start: "09:00", End: "18:00"},
			},
			StaffReq: &domain.StaffReqInput{
				MinWeekday: intPtr(minWeekday),
				MinManager: intPtr(1),
			},
		},
		Dates: []string{"2025-01-06"},
	}
}

func TestSolvePrefersManagerOverRookie(t *testing.T) {
	result, err := testEngine().Solve(context.Background(), mentorRookieInput(1))
	require.NoError(t, err)

	require.Len(t, result.Shifts, 1, "one head suffices and the manager floor decides who")
	assert.Equal(t, "boss", result.Shifts[0].StaffID)
}

func TestSolveMentorAccompaniesRookie(t *testing.T) {
	result, err := testEngine().Solve(context.Background(), mentorRookieInput(2))
	require.NoError(t, err)

	require.Len(t, result.Shifts, 2)
	staff := map[string]bool{}
	for _, shift := range result.Shifts {
		staff[shift.StaffID] = true
	}
	assert.True(t, staff["boss"])
	assert.True(t, staff["rookie"])
	assert.Empty(t, result.Violations)
}

func TestSolveAllStaffUnavailable(t *testing.T) {
	input := domain.SolveInput{
		StaffList: []domain.StaffInput{
			{ID: "a", UnavailableDates: domain.DateList{"2025-01-06"}},
			{ID: "b", UnavailableDates: domain.DateList{"2025-01-06"}},
			{ID: "c", UnavailableDates: domain.DateList{"2025-01-06"}},
		},
		Config: domain.ConfigInput{
			CustomShifts: []domain.PatternInput{{Start: "09:00", End: "17:00", Name: "day"}},
			OpeningTimes: map[string]domain.WindowInput{
				"weekday": {Start: "09:00", End: "17:00"},
			},
			StaffReq: &domain.StaffReqInput{MinWeekday: intPtr(2), MinManager: intPtr(0)},
		},
		Dates: []string{"2025-01-06"},
	}

	result, err := testEngine().Solve(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, StageNone, result.Stage)
	assert.Empty(t, result.Shifts)
}

func TestSolveForceWithoutManager(t *testing.T) {
	input := singleStaffInput()
	input.Mode = "force"
	input.Config.StaffReq.MinManager = intPtr(1)

	result, err := testEngine().Solve(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, Stage("tier3_force"), result.Stage)
	require.NotEmpty(t, result.Shifts, "missing managers never block a forced solve")
}

func TestSolveSpecialHolidayYieldsNoShifts(t *testing.T) {
	input := singleStaffInput()
	input.Config.SpecialHolidays = []string{"2025-01-06"}

	result, err := testEngine().Solve(context.Background(), input)
	require.NoError(t, err)
	assert.Empty(t, result.Shifts)
	assert.Equal(t, StageNone, result.Stage)
}

func TestSolveUnderstaffedReportsViolations(t *testing.T) {
	input := singleStaffInput()
	input.Config.StaffReq.MinWeekday = intPtr(2)

	result, err := testEngine().Solve(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, result.Shifts, 1, "slack absorbs the impossible head")
	assert.NotEmpty(t, result.Violations, "validator reports the uncovered slots")
	for _, violation := range result.Violations {
		assert.Equal(t, 2, violation.Required)
		assert.Equal(t, 1, violation.Actual)
	}
}

func TestSolveRespectsUnavailableDates(t *testing.T) {
	input := singleStaffInput()
	input.Dates = []string{"2025-01-06", "2025-01-07"}
	input.Requests = []domain.RequestInput{
		{StaffID: "s1", Date: "2025-01-07", Type: "off", Status: "approved"},
	}

	result, err := testEngine().Solve(context.Background(), input)
	require.NoError(t, err)
	for _, shift := range result.Shifts {
		assert.NotEqual(t, domain.Date("2025-01-07"), shift.Date)
	}
	require.Len(t, result.Shifts, 1)
}

func TestSolveRejectsMalformedInput(t *testing.T) {
	input := singleStaffInput()
	input.Dates = []string{"garbage"}

	_, err := testEngine().Solve(context.Background(), input)
	require.Error(t, err)
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrorKindInvalidInput, domainErr.Kind)
}

func TestSolveMonthlyStaffWorksEveryOpenDay(t *testing.T) {
	input := singleStaffInput()
	input.StaffList[0].SalaryType = "monthly"
	input.Dates = []string{"2025-01-06", "2025-01-07", "2025-01-08"}

	result, err := testEngine().Solve(context.Background(), input)
	require.NoError(t, err)
	assert.Len(t, result.Shifts, 3, "absence of salaried staff is penalized per day")
}
