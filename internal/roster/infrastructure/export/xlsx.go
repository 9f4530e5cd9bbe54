// Package export writes produced rosters to spreadsheet workbooks.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/rotaplan/rotaplan/internal/roster/application/services"
	"github.com/rotaplan/rotaplan/internal/roster/domain"
)

const sheetName = "Roster"

// WriteWorkbook writes the staff-by-date roster of a solve result to an
// Excel workbook: staff rows, date columns, one shift window per cell, and
// per-staff totals in the last column.
func WriteWorkbook(path string, input domain.SolveInput, result *services.SolveResult) error {
	dates := make([]string, len(input.Dates))
	copy(dates, input.Dates)
	sort.Strings(dates)

	type cellKey struct {
		staffID string
		date    string
	}
	cells := make(map[cellKey]domain.Shift, len(result.Shifts))
	hours := make(map[string]float64)
	for _, shift := range result.Shifts {
		cells[cellKey{staffID: shift.StaffID, date: string(shift.Date)}] = shift
		start, end := shift.Window()
		hours[shift.StaffID] += float64(end-start) / 60
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := setCell(f, 1, 1, "Staff"); err != nil {
		return err
	}
	for ci, date := range dates {
		if err := setCell(f, ci+2, 1, date); err != nil {
			return err
		}
	}
	if err := setCell(f, len(dates)+2, 1, "Hours"); err != nil {
		return err
	}

	for ri, staff := range input.StaffList {
		row := ri + 2
		name := staff.Name
		if name == "" {
			name = staff.ID
		}
		if err := setCell(f, 1, row, name); err != nil {
			return err
		}
		for ci, date := range dates {
			shift, ok := cells[cellKey{staffID: staff.ID, date: date}]
			if !ok {
				continue
			}
			value := shift.StartTime + "-" + shift.EndTime
			if shift.BreakMinutes > 0 {
				value += fmt.Sprintf(" (%dm)", shift.BreakMinutes)
			}
			if err := setCell(f, ci+2, row, value); err != nil {
				return err
			}
		}
		if err := setCell(f, len(dates)+2, row, hours[staff.ID]); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// setCell writes one value at 1-based coordinates.
func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}
