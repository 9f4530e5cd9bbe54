package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(t *testing.T) *Policy {
	t.Helper()
	policy, err := resolvePolicy(ConfigInput{})
	require.NoError(t, err)
	return policy
}

func TestDayTypeOf(t *testing.T) {
	policy := testPolicy(t)

	assert.Equal(t, DayWeekday, policy.DayTypeOf("2025-01-06")) // Monday
	assert.Equal(t, DayWeekend, policy.DayTypeOf("2025-01-04")) // Saturday
	assert.Equal(t, DayHoliday, policy.DayTypeOf("2025-01-05")) // Sunday
}

func TestDayTypeOfClosures(t *testing.T) {
	policy := testPolicy(t)
	policy.ClosedDates["2025-01-06"] = struct{}{}
	policy.ClosedWeekdays[time.Wednesday] = true

	assert.Equal(t, DayClosed, policy.DayTypeOf("2025-01-06"), "fixed closure")
	assert.Equal(t, DayClosed, policy.DayTypeOf("2025-01-08"), "closed weekday")
	assert.Equal(t, DayWeekday, policy.DayTypeOf("2025-01-07"))
}

func TestDayTypeOfClosureBeatsSunday(t *testing.T) {
	policy := testPolicy(t)
	policy.ClosedWeekdays[time.Sunday] = true
	assert.Equal(t, DayClosed, policy.DayTypeOf("2025-01-05"))
}

func TestOpeningHoursPrecedence(t *testing.T) {
	policy := testPolicy(t)
	policy.OpeningTimes[DayWeekday] = Window{Open: 600, Close: 1200}
	policy.Overrides["2025-01-06"] = Window{Open: 720, Close: 900}

	assert.Equal(t, Window{Open: 720, Close: 900}, policy.OpeningHours("2025-01-06"), "override wins")
	assert.Equal(t, Window{Open: 600, Close: 1200}, policy.OpeningHours("2025-01-13"), "day type entry")

	delete(policy.OpeningTimes, DayWeekday)
	assert.Equal(t, policy.Default, policy.OpeningHours("2025-01-13"), "default pair")
}

func TestBreakMinutesStrictThreshold(t *testing.T) {
	policy := testPolicy(t)

	assert.Equal(t, 0, policy.BreakMinutes(6))
	assert.Equal(t, 45, policy.BreakMinutes(6.25))
	assert.Equal(t, 45, policy.BreakMinutes(8))
	assert.Equal(t, 60, policy.BreakMinutes(8.5))
	assert.Equal(t, 0, policy.BreakMinutes(1))
}

func TestBreakMinutesUnsortedRules(t *testing.T) {
	policy, err := resolvePolicy(ConfigInput{BreakRules: []BreakRuleInput{
		{MinHours: 8, BreakMinutes: 60},
		{MinHours: 4, BreakMinutes: 30},
	}})
	require.NoError(t, err)

	assert.Equal(t, 30, policy.BreakMinutes(5))
	assert.Equal(t, 60, policy.BreakMinutes(9))
}

func TestSlotRequirementsBase(t *testing.T) {
	policy := testPolicy(t)
	policy.OpeningTimes[DayWeekday] = Window{Open: 540, Close: 660} // 09:00-11:00

	table := policy.SlotRequirements("2025-01-06")
	require.Equal(t, 8, table.Len())
	assert.Equal(t, 540, table.Minute(0))
	assert.Equal(t, 645, table.Minute(7))
	for i := 0; i < table.Len(); i++ {
		assert.Equal(t, defaultMinWeekday, table.Required[i])
	}
}

func TestSlotRequirementsReinforcement(t *testing.T) {
	policy := testPolicy(t)
	policy.OpeningTimes[DayWeekday] = Window{Open: 540, Close: 720} // 09:00-12:00
	policy.Reinforcements = []ReinforcementRule{{
		Days:  map[time.Weekday]bool{time.Monday: true},
		Start: 600, // 10:00
		End:   660, // 11:00
		Count: 5,
	}}

	table := policy.SlotRequirements("2025-01-06")
	require.Equal(t, 12, table.Len())
	assert.Equal(t, defaultMinWeekday, table.Required[0])
	assert.Equal(t, 5, table.Required[4], "10:00 raised")
	assert.Equal(t, 5, table.Required[7], "10:45 raised")
	assert.Equal(t, defaultMinWeekday, table.Required[8], "11:00 back to base")

	tue := policy.SlotRequirements("2025-01-07")
	assert.Equal(t, defaultMinWeekday, tue.Required[4], "rule bound to Monday only")
}

func TestSlotRequirementsWrappingRule(t *testing.T) {
	policy := testPolicy(t)
	policy.OpeningTimes[DayWeekday] = Window{Open: 540, Close: 1320} // 09:00-22:00
	policy.Reinforcements = []ReinforcementRule{{
		Days:  map[time.Weekday]bool{time.Monday: true},
		Start: 1260, // 21:00, wraps past midnight
		End:   600,  // 10:00
		Count: 4,
	}}

	table := policy.SlotRequirements("2025-01-06")
	assert.Equal(t, 4, table.Required[0], "09:00 inside the wrapped head")
	assert.Equal(t, 4, table.Required[3], "09:45 inside the wrapped head")
	assert.Equal(t, defaultMinWeekday, table.Required[4], "10:00 outside")
	last := table.Len() - 1
	assert.Equal(t, 4, table.Required[last], "21:45 inside the tail")
}

func TestSlotRequirementsClosedOrZeroBase(t *testing.T) {
	policy := testPolicy(t)
	policy.ClosedDates["2025-01-06"] = struct{}{}
	assert.True(t, policy.SlotRequirements("2025-01-06").Empty())

	policy = testPolicy(t)
	policy.MinStaff[DayWeekday] = 0
	assert.True(t, policy.SlotRequirements("2025-01-13").Empty())
}

func TestReinforcementApplies(t *testing.T) {
	rule := ReinforcementRule{
		Days:  map[time.Weekday]bool{time.Friday: true},
		Start: 1020,
		End:   1140,
		Count: 3,
	}
	assert.True(t, rule.Applies(time.Friday, 1020))
	assert.True(t, rule.Applies(time.Friday, 1125))
	assert.False(t, rule.Applies(time.Friday, 1140), "end exclusive")
	assert.False(t, rule.Applies(time.Monday, 1020), "wrong weekday")
}
