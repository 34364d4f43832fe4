package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fmuoria/recruiter-dashboard/internal/models"
	"github.com/fmuoria/recruiter-dashboard/internal/render"
	"github.com/fmuoria/recruiter-dashboard/internal/scoring"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook
const (
	SummarySheet    = "Summary"
	CandidatesSheet = "Candidates"
	DetailsSheet    = "Match Details"
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

var tierFill = map[scoring.Tier]string{
	scoring.TierHigh:   "C6EFCE",
	scoring.TierMedium: "FFEB9C",
	scoring.TierLow:    "FFC7CE",
}

// ExportCandidates writes the job's candidates to an Excel workbook and
// returns the path written. ".xlsx" is appended when missing.
func ExportCandidates(job models.Job, candidates []models.Candidate, outputPath string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	f.SetSheetName("Sheet1", SummarySheet)
	f.NewSheet(CandidatesSheet)
	f.NewSheet(DetailsSheet)

	cards := render.Cards(candidates)

	if err := createSummarySheet(f, job, candidates); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := createCandidatesSheet(f, cards); err != nil {
		return "", fmt.Errorf("failed to create candidates sheet: %w", err)
	}
	if err := createDetailsSheet(f, cards); err != nil {
		return "", fmt.Errorf("failed to create match details sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		// Fall back to writing the buffer ourselves
		var buf bytes.Buffer
		if writeErr := f.Write(&buf); writeErr != nil {
			return "", fmt.Errorf("failed to save Excel file: direct save failed (%v), buffer write also failed: %w", err, writeErr)
		}
		if fileErr := os.WriteFile(outputPath, buf.Bytes(), 0644); fileErr != nil {
			return "", fmt.Errorf("failed to save Excel file: direct save failed (%v), file write failed: %w", err, fileErr)
		}
	}

	return outputPath, nil
}

// Stats summarises the match distribution of a candidate list
type Stats struct {
	Total   int
	High    int
	Medium  int
	Low     int
	Scored  int
	Average float64
}

// Summarize counts tiers and averages the candidates that have a match value
func Summarize(candidates []models.Candidate) Stats {
	s := Stats{Total: len(candidates)}
	var sum float64
	for _, c := range candidates {
		switch scoring.CandidateTier(c) {
		case scoring.TierHigh:
			s.High++
		case scoring.TierMedium:
			s.Medium++
		default:
			s.Low++
		}
		if p, ok := scoring.CandidatePercentage(c); ok {
			sum += p
			s.Scored++
		}
	}
	if s.Scored > 0 {
		s.Average = sum / float64(s.Scored)
	}
	return s
}

func createSummarySheet(f *excelize.File, job models.Job, candidates []models.Candidate) error {
	sheet := SummarySheet
	f.SetColWidth(sheet, "A", "A", 25)
	f.SetColWidth(sheet, "B", "B", 50)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	heading := func(text string) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), text)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
		f.MergeCell(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
		row++
	}
	field := func(label string, value any) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), value)
		row++
	}

	heading("Candidate Report")
	row++

	field("Job Title:", job.Title)
	field("Department:", job.Department)
	field("Location:", render.DisplayLocation(job.Location))
	field("Experience Level:", job.ExperienceLevel)
	field("Required Skills:", strings.Join(job.RequiredSkills, ", "))
	field("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	field("Total Candidates:", len(candidates))
	row++

	stats := Summarize(candidates)
	heading("Match Distribution")
	field(fmt.Sprintf("High (%.0f%%+):", scoring.HighThreshold), stats.High)
	field(fmt.Sprintf("Medium (%.0f-%.0f%%):", scoring.MediumThreshold, scoring.HighThreshold-1), stats.Medium)
	field(fmt.Sprintf("Low (<%.0f%%):", scoring.MediumThreshold), stats.Low)
	row++

	if stats.Scored > 0 {
		field("Average Match:", fmt.Sprintf("%.2f%%", stats.Average))
	} else {
		field("Average Match:", render.NoMatch)
	}

	return nil
}

func createCandidatesSheet(f *excelize.File, cards []render.Card) error {
	sheet := CandidatesSheet
	widths := map[string]float64{"A": 25, "B": 30, "C": 25, "D": 40, "E": 40, "F": 10, "G": 10, "H": 15}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}

	tierStyles := make(map[scoring.Tier]int, len(tierFill))
	linkStyles := make(map[scoring.Tier]int, len(tierFill))
	for tier, color := range tierFill {
		fill := excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
		if tierStyles[tier], err = f.NewStyle(&excelize.Style{Fill: fill, Border: thinBorder}); err != nil {
			return err
		}
		if linkStyles[tier], err = f.NewStyle(&excelize.Style{
			Font:   &excelize.Font{Color: "0563C1", Underline: "single"},
			Fill:   fill,
			Border: thinBorder,
		}); err != nil {
			return err
		}
	}

	headers := []string{"Name", "Email", "Current Title", "Education", "Skills", "Match", "Tier", "Resume"}
	for col, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, card := range cards {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), card.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), card.Email)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), card.Position)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), card.Education)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), card.SkillsSummary)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), card.Match)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), string(card.Tier))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), tierStyles[card.Tier])

		if card.ResumeURL != "" {
			cell := fmt.Sprintf("H%d", row)
			f.SetCellValue(sheet, cell, "Open Resume")
			f.SetCellHyperLink(sheet, cell, card.ResumeURL, "External")
			f.SetCellStyle(sheet, cell, cell, linkStyles[card.Tier])
		}
	}

	if len(cards) > 0 {
		f.AutoFilter(sheet, fmt.Sprintf("A1:H%d", len(cards)+1), []excelize.AutoFilterOptions{})
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

func createDetailsSheet(f *excelize.File, cards []render.Card) error {
	sheet := DetailsSheet
	f.SetColWidth(sheet, "A", "A", 25)
	f.SetColWidth(sheet, "B", "B", 10)
	f.SetColWidth(sheet, "C", "C", 40)
	f.SetColWidth(sheet, "D", "D", 70)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}

	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}

	headers := []string{"Candidate", "Match", "Missing Keywords", "Profile Summary"}
	for col, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, card := range cards {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), card.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), card.Match)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), card.MissingKeywords)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), card.ProfileSummary)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), wrapStyle)
		f.SetRowHeight(sheet, row, 60)
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}
