package reports

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"agrorisk-copilot/loan-portal-backend/internal/storage"
)

// PDFColor represents an RGB color.
type PDFColor struct {
	R int
	G int
	B int
}

var decisionColors = map[string]PDFColor{
	"APPROVED":      {R: 46, G: 125, B: 50},
	"MANUAL_REVIEW": {R: 245, G: 124, B: 0},
	"REJECTED":      {R: 198, G: 40, B: 40},
}

// DecisionPDF renders loan decision reports.
type DecisionPDF struct {
	fontFamily  string
	headerColor PDFColor
}

// NewDecisionPDF creates a generator with the portal's default styling.
func NewDecisionPDF() *DecisionPDF {
	return &DecisionPDF{
		fontFamily:  "Arial",
		headerColor: PDFColor{R: 68, G: 114, B: 196},
	}
}

// Render writes a single-page decision report for a loan case.
func (g *DecisionPDF) Render(w io.Writer, lc *storage.LoanCase) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, "Agricultural Loan Decision Report")
	g.addDate(pdf)
	pdf.Ln(6)

	g.addSectionHeader(pdf, "Applicant")
	g.addKeyValue(pdf, "Name", lc.Farmer.Name)
	g.addKeyValue(pdf, "Passport ID", lc.Farmer.PassportID)
	g.addKeyValue(pdf, "Phone", lc.Farmer.Phone)
	g.addKeyValue(pdf, "Years farming", fmt.Sprintf("%d", lc.Application.YearsFarming))
	g.addKeyValue(pdf, "Land", fmt.Sprintf("%.1f ha (%s)", lc.Application.LandAreaHa, lc.Application.LandOwnership))
	pdf.Ln(4)

	g.addSectionHeader(pdf, "Agronomic Assessment")
	g.addKeyValue(pdf, "Location", fmt.Sprintf("%s, %s", lc.Assessment.District, lc.Assessment.Region))
	g.addKeyValue(pdf, "Crop", lc.Assessment.Crop)
	g.addKeyValue(pdf, "Planting month", fmt.Sprintf("%d", lc.Assessment.Month))
	g.addKeyValue(pdf, "Risk score", fmt.Sprintf("%.1f / 100 (%s)", lc.Assessment.Score, lc.Assessment.Category))
	g.addKeyValue(pdf, "Confidence", lc.Assessment.Confidence)
	pdf.Ln(4)

	g.addSectionHeader(pdf, "Loan Request")
	g.addKeyValue(pdf, "Amount", formatCurrency(lc.Application.LoanAmount))
	g.addKeyValue(pdf, "Term", fmt.Sprintf("%d months", lc.Application.LoanTermMonths))
	g.addKeyValue(pdf, "Annual revenue", formatCurrency(lc.Application.AnnualRevenue))
	g.addKeyValue(pdf, "Net profit", formatCurrency(lc.Application.NetProfit))
	g.addKeyValue(pdf, "Total assets", formatCurrency(lc.Application.TotalAssets))
	g.addKeyValue(pdf, "Total debt", formatCurrency(lc.Application.TotalDebt))
	g.addKeyValue(pdf, "Collateral", formatCurrency(lc.Application.CollateralValue))
	pdf.Ln(4)

	g.addSectionHeader(pdf, "Decision")
	g.addKeyValue(pdf, "Agronomic score", fmt.Sprintf("%.1f", lc.Decision.AgroScore))
	g.addKeyValue(pdf, "Financial score", fmt.Sprintf("%.1f", lc.Decision.FinancialScore))
	g.addKeyValue(pdf, "Final score", fmt.Sprintf("%.1f", lc.Decision.FinalScore))
	g.addDecisionBadge(pdf, lc.Decision.Decision)

	pdf.Ln(8)
	pdf.SetFont(g.fontFamily, "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.MultiCell(0, 4, "This report is generated automatically from satellite climate data and the applicant's financial statements. A MANUAL_REVIEW outcome requires sign-off by a credit officer.", "", "L", false)

	return pdf.Output(w)
}

func (g *DecisionPDF) addTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(g.fontFamily, "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
}

func (g *DecisionPDF) addDate(pdf *gofpdf.Fpdf) {
	pdf.SetFont(g.fontFamily, "", 9)
	pdf.SetTextColor(128, 128, 128)
	dateStr := fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04"))
	pdf.CellFormat(0, 6, dateStr, "", 1, "R", false, 0, "")
}

func (g *DecisionPDF) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(g.fontFamily, "B", 11)
	pdf.SetFillColor(g.headerColor.R, g.headerColor.G, g.headerColor.B)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(0, 8, "  "+title, "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

func (g *DecisionPDF) addKeyValue(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont(g.fontFamily, "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(55, 6, key, "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontFamily, "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (g *DecisionPDF) addDecisionBadge(pdf *gofpdf.Fpdf, decision string) {
	color, ok := decisionColors[decision]
	if !ok {
		color = PDFColor{R: 100, G: 100, B: 100}
	}
	pdf.Ln(2)
	pdf.SetFont(g.fontFamily, "B", 13)
	pdf.SetFillColor(color.R, color.G, color.B)
	pdf.SetTextColor(255, 255, 255)
	label := strings.ReplaceAll(decision, "_", " ")
	pdf.CellFormat(70, 10, "  "+label, "", 1, "L", true, 0, "")
}

func formatCurrency(v float64) string {
	return fmt.Sprintf("%s UZS", groupThousands(v))
}

// groupThousands formats 1234567.5 as "1,234,568".
func groupThousands(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
