package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth   = 190.0
	lineHeight  = 6.0
	headerFill  = 230
	reportTitle = "DCDA Advising Summary"
)

// PDF renders the advising summary: student details, the disclaimer, the
// category progress table and the semester plan. cat supplies course titles
// for the plan and may be nil.
func PDF(s Summary, cat *catalog.Catalog) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetTitle(reportTitle, true)
	pdf.SetCreationDate(s.GeneratedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, strings.ToUpper(reportTitle), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, line := range studentLines(s) {
		pdf.CellFormat(0, lineHeight, tr(line), "", 1, "", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Arial", "I", 8)
	pdf.MultiCell(0, 4, tr(Disclaimer), "", "", false)
	pdf.Ln(4)

	if s.Progress == nil {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, lineHeight, "No degree type selected yet.", "", 1, "", false, 0, "")
	} else {
		section(pdf, "Requirement Progress")
		table(pdf, tr, ProgressDataset(s.Progress), []float64{46, 18, 18, 20, 20, 22, 46})
	}

	if len(s.Plan) > 0 {
		pdf.Ln(4)
		section(pdf, "Semester Plan")
		table(pdf, tr, PlanDataset(s.Plan, cat), []float64{30, 28, 82, 50})
	}

	if notes := strings.TrimSpace(s.Record.Notes); notes != "" {
		pdf.Ln(4)
		section(pdf, "Notes")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, tr(notes), "", "", false)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func studentLines(s Summary) []string {
	rec := s.Record
	lines := []string{"Student: " + orDash(rec.Name)}
	if rec.DegreeType.Decided() {
		lines = append(lines, "Program: DCDA "+strings.ToUpper(string(rec.DegreeType[:1]))+string(rec.DegreeType[1:]))
	}
	lines = append(lines, "Expected graduation: "+orDash(rec.ExpectedGraduation))
	if p := s.Progress; p != nil {
		lines = append(lines, fmt.Sprintf("Hours completed: %d of %d (%.0f%%)", p.CompletedHours, p.TotalHours, p.PercentComplete()*100))
	}
	if !s.GeneratedAt.IsZero() {
		lines = append(lines, "Generated: "+s.GeneratedAt.Format("January 2, 2006"))
	}
	return lines
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, title, "", 1, "", false, 0, "")
}

// table draws data with the given column widths, falling back to equal
// widths when the counts differ.
func table(pdf *gofpdf.Fpdf, tr func(string) string, data Dataset, widths []float64) {
	if len(widths) != len(data.Headers) {
		widths = make([]float64, len(data.Headers))
		for i := range widths {
			widths[i] = pageWidth / float64(len(data.Headers))
		}
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(headerFill, headerFill, headerFill)
	for i, header := range data.Headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range data.Rows {
		for i, header := range data.Headers {
			value := tr(row[header])
			for pdf.GetStringWidth(value) > widths[i]-2 && len(value) > 3 {
				value = value[:len(value)-4] + "..."
			}
			pdf.CellFormat(widths[i], lineHeight, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
