package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/brightprep/studycal-api/internal/models"
)

// PDFExporter renders a study program into a printable weekly plan.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates one page per week: a header with the date range followed by
// a table of days, subjects, durations, and topic labels. Notes go on a
// closing page.
func (e *PDFExporter) Render(program *models.StudyProgram) ([]byte, error) {
	if program == nil || len(program.Weeks) == 0 {
		return nil, fmt.Errorf("pdf requires a program with at least one week")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)

	translator := pdf.UnicodeTranslatorFromDescriptor("")

	for _, week := range program.Weeks {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, translator(strings.ToUpper(program.Title)), "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, fmt.Sprintf("Week %d  (%s - %s)", week.WeekNumber, week.StartDate, week.EndDate), "", 1, "C", false, 0, "")
		pdf.Ln(3)

		pdf.SetFont("Arial", "B", 10)
		widths := []float64{32, 48, 24, 86}
		headers := []string{"Date", "Subject", "Minutes", "Topics"}
		for i, header := range headers {
			pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, day := range week.Days {
			if len(day.Subjects) == 0 {
				continue
			}
			for i, block := range day.Subjects {
				dateCell := ""
				if i == 0 {
					dateCell = fmt.Sprintf("%s %s", day.Date, day.DayName[:3])
				}
				pdf.CellFormat(widths[0], 7, dateCell, "1", 0, "", false, 0, "")
				pdf.CellFormat(widths[1], 7, translator(block.Name), "1", 0, "", false, 0, "")
				pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d", block.Duration), "1", 0, "C", false, 0, "")
				pdf.CellFormat(widths[3], 7, translator(strings.Join(block.Topics, ", ")), "1", 0, "", false, 0, "")
				pdf.Ln(-1)
			}
		}
	}

	if len(program.Notes) > 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, note := range program.Notes {
			pdf.MultiCell(0, 6, translator("- "+note), "", "L", false)
			pdf.Ln(1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
