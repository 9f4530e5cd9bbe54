package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/rotaplan/rotaplan/internal/roster/application/services"
	"github.com/rotaplan/rotaplan/internal/roster/domain"
)

// renderSchedule prints the produced schedule as a table plus a summary.
func renderSchedule(w io.Writer, input domain.SolveInput, result *services.SolveResult) {
	names := make(map[string]string, len(input.StaffList))
	for _, staff := range input.StaffList {
		names[staff.ID] = staff.Name
	}

	shifts := make([]domain.Shift, len(result.Shifts))
	copy(shifts, result.Shifts)
	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		if shifts[i].StartTime != shifts[j].StartTime {
			return shifts[i].StartTime < shifts[j].StartTime
		}
		return shifts[i].StaffID < shifts[j].StaffID
	})

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Staff", "Shift", "Break", "Overtime"})
	table.SetBorder(false)
	for _, shift := range shifts {
		name := names[shift.StaffID]
		if name == "" {
			name = shift.StaffID
		}
		overtime := ""
		if shift.Overtime {
			overtime = fmt.Sprintf("+%.1fh", shift.OvertimeHours)
		}
		table.Append([]string{
			string(shift.Date),
			name,
			shift.StartTime + "-" + shift.EndTime,
			fmt.Sprintf("%dm", shift.BreakMinutes),
			overtime,
		})
	}
	table.Render()

	stats := result.Statistics
	fmt.Fprintf(w, "\nmode=%s shifts=%d coverage=%d/%d slots (%.0f%%) hours=%.1f\n",
		result.Stage, stats.Assignments, stats.FilledSlots, stats.TotalSlots,
		stats.FillRate*100, stats.TotalHours)

	if len(result.Violations) > 0 {
		color.New(color.FgYellow).Fprintf(w, "%d slots remain under-covered:\n", len(result.Violations))
		for _, v := range result.Violations {
			fmt.Fprintf(w, "  %s\n", v)
		}
	}
}

// renderPrecheck prints the feasibility analysis with severity colors.
func renderPrecheck(w io.Writer, result *services.PrecheckResult) {
	if result.Feasible {
		color.New(color.FgGreen).Fprintln(w, "Feasible: declared availability covers the demand.")
	} else {
		color.New(color.FgRed).Fprintf(w, "Infeasible: short by %.2f person-hours.\n",
			result.Summary.ShortagePersonHours)
	}
	fmt.Fprintf(w, "dates=%d open=%d staff=%d usable=%d\n",
		result.Summary.Dates, result.Summary.OpenDates,
		result.Summary.Staff, result.Summary.UsableStaff)

	for _, warning := range result.Warnings {
		c := color.New(color.FgWhite)
		switch warning.Severity {
		case services.SeverityCritical:
			c = color.New(color.FgRed)
		case services.SeverityWarning:
			c = color.New(color.FgYellow)
		}
		c.Fprintf(w, "[%s] %s\n", warning.Severity, warning.Message)
	}

	if len(result.DailyDetails) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Type", "Shortage", "Person-hours"})
	table.SetBorder(false)
	for _, detail := range result.DailyDetails {
		for i, rng := range detail.Shortages {
			date, dayType, hours := "", "", ""
			if i == 0 {
				date = string(detail.Date)
				dayType = string(detail.DayType)
				hours = fmt.Sprintf("%.2f", detail.PersonHours)
			}
			table.Append([]string{
				date,
				dayType,
				fmt.Sprintf("%s-%s x%d", rng.Start, rng.End, rng.Shortage),
				hours,
			})
		}
	}
	table.Render()
}
