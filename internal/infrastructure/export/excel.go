package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"skillsync/internal/domain/matching"
	"skillsync/internal/usecase"
)

const (
	matchesSheet = "Matches"
	missingSheet = "Missing Skills"
)

// ExcelReport renders job matches as an .xlsx workbook: one row per job on
// the first sheet, one row per missing skill on the second.
type ExcelReport struct{}

func NewExcelReport() *ExcelReport {
	return &ExcelReport{}
}

func (ExcelReport) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (ExcelReport) WriteJobMatches(w io.Writer, matches []usecase.JobMatch) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", matchesSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(missingSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := writeMatchesSheet(f, matches, headerStyle); err != nil {
		return fmt.Errorf("failed to create matches sheet: %w", err)
	}
	if err := writeMissingSheet(f, matches, headerStyle); err != nil {
		return fmt.Errorf("failed to create missing skills sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeMatchesSheet(f *excelize.File, matches []usecase.JobMatch, headerStyle int) error {
	headers := []string{"Rank", "Job Title", "Company", "Location", "Remote", "Match Score", "Required Skills", "Missing Skills"}
	if err := writeHeader(f, matchesSheet, headers, headerStyle); err != nil {
		return err
	}
	_ = f.SetColWidth(matchesSheet, "B", "C", 30)
	_ = f.SetColWidth(matchesSheet, "G", "H", 40)

	for i, m := range matches {
		row := i + 2
		values := []any{
			i + 1,
			m.Title,
			m.CompanyName,
			m.Location,
			yesNo(m.IsRemote),
			m.MatchScore,
			len(m.Requirements),
			skillNames(m.MissingSkills),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(matchesSheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMissingSheet(f *excelize.File, matches []usecase.JobMatch, headerStyle int) error {
	headers := []string{"Job Title", "Company", "Skill", "Required Level", "Preferred"}
	if err := writeHeader(f, missingSheet, headers, headerStyle); err != nil {
		return err
	}
	_ = f.SetColWidth(missingSheet, "A", "C", 30)

	row := 2
	for _, m := range matches {
		for _, s := range m.MissingSkills {
			values := []any{m.Title, m.CompanyName, s.SkillName, s.RequiredLevel, yesNo(s.Preferred)}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(missingSheet, cell, v); err != nil {
					return err
				}
			}
			row++
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func skillNames(reqs []matching.Requirement) string {
	names := make([]string, 0, len(reqs))
	for _, r := range reqs {
		names = append(names, r.SkillName)
	}
	return strings.Join(names, ", ")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
