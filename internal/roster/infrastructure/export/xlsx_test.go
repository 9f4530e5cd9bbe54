package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rotaplan/rotaplan/internal/roster/application/services"
	"github.com/rotaplan/rotaplan/internal/roster/domain"
)

func TestWriteWorkbook(t *testing.T) {
	input := domain.SolveInput{
		StaffList: []domain.StaffInput{
			{ID: "s1", Name: "Sato"},
			{ID: "s2", Name: "Tanaka"},
		},
		Dates: []string{"2025-01-07", "2025-01-06"},
	}
	result := &services.SolveResult{
		Status: "success",
		Shifts: []domain.Shift{
			{StaffID: "s1", Date: "2025-01-06", StartTime: "09:00", EndTime: "17:00", BreakMinutes: 45},
			{StaffID: "s2", Date: "2025-01-07", StartTime: "14:00", EndTime: "20:00"},
		},
	}

	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, WriteWorkbook(path, input, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Roster", "B1")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", header, "date columns are sorted")

	cell, err := f.GetCellValue("Roster", "B2")
	require.NoError(t, err)
	assert.Equal(t, "09:00-17:00 (45m)", cell)

	cell, err = f.GetCellValue("Roster", "C3")
	require.NoError(t, err)
	assert.Equal(t, "14:00-20:00", cell)

	empty, err := f.GetCellValue("Roster", "C2")
	require.NoError(t, err)
	assert.Empty(t, empty)

	hours, err := f.GetCellValue("Roster", "D2")
	require.NoError(t, err)
	assert.Equal(t, "8", hours)
}

func TestWriteWorkbookEmptySchedule(t *testing.T) {
	input := domain.SolveInput{
		StaffList: []domain.StaffInput{{ID: "s1", Name: "Sato"}},
		Dates:     []string{"2025-01-06"},
	}
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteWorkbook(path, input, &services.SolveResult{Status: "success"}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Roster", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Sato", name)
}
