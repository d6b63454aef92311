package attendance

import (
	"fmt"

	"go-hrms/internal/employee"

	"github.com/xuri/excelize/v2"
)

var reportColumns = []string{
	"Date", "Employee", "Email", "Department", "Status",
	"First Clock In", "Last Clock Out", "Sessions", "Total Hours",
}

// BuildReportWorkbook renders report rows into an Excel workbook.
func BuildReportWorkbook(summaries []DailySummary) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Attendance Report"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "I1", headerStyle); err != nil {
		return nil, err
	}

	for i, s := range summaries {
		row := i + 2
		values := []any{
			s.Date,
			s.Employee.DisplayName(),
			emailOf(s.Employee),
			departmentOf(s.Employee),
			s.Status,
			orEmpty(s.FirstClockIn),
			orEmpty(s.LastClockOut),
			s.SessionCount,
			s.TotalHours,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "I", 20); err != nil {
		return nil, err
	}
	return f, nil
}

// ReportFileName is the attachment name for an export covering the
// given filter.
func ReportFileName(filter ReportFilter) string {
	switch {
	case filter.StartDate != "" && filter.EndDate != "":
		return fmt.Sprintf("attendance_%s_to_%s.xlsx", filter.StartDate, filter.EndDate)
	case filter.Date != "":
		return fmt.Sprintf("attendance_%s.xlsx", filter.Date)
	default:
		return "attendance_report.xlsx"
	}
}

func emailOf(entry employee.DirectoryEntry) string {
	if entry.User == nil {
		return ""
	}
	return entry.User.Email
}

func departmentOf(entry employee.DirectoryEntry) string {
	if entry.Department == nil {
		return ""
	}
	return entry.Department.Name
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
