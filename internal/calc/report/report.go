package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"CasingSafe/internal/calc/assessment"
	"CasingSafe/internal/calc/failure"
	"CasingSafe/internal/calc/sweep"

	"github.com/phpdave11/gofpdf"
)

type Meta struct {
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Title   string    `json:"title"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"-"`
}

const (
	chartHeight = 60.0
	chartGap    = 14.0
)

// Render writes the assessment as an A4 PDF: title block, result table, one chart per curve.
func Render(w io.Writer, meta Meta, b assessment.Bundle) error {
	if meta.Title == "" {
		meta.Title = "Casing Integrity Report"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, meta.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", meta.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", meta.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Well: %s, formation: %s", b.WellType, b.Formation))
	pdf.Ln(10)

	resultTable(pdf, b)

	if meta.Notes != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 6, meta.Notes, "", "L", false)
	}

	for _, c := range b.Curves {
		placeChart(pdf, c)
	}
	return pdf.Output(w)
}

// Row is one line of the result table.
type Row struct {
	Label string
	Value string
}

func Rows(b assessment.Bundle) []Row {
	a := b.Assessment
	return []Row{
		{"Erosion rate (mm/year)", fmt.Sprintf("%.3f", b.ErosionRateMMYear)},
		{"Long-term corrosion rate (mm/year)", fmt.Sprintf("%.4f", b.CorrosionRateMMYear)},
		{"Erosion wall loss (mm)", fmt.Sprintf("%.3f", b.WallLoss.ErosionMM)},
		{"Wear wall loss (mm)", fmt.Sprintf("%.3f", b.WallLoss.WearMM)},
		{"Corrosion wall loss (mm)", fmt.Sprintf("%.3f", b.WallLoss.CorrosionMM)},
		{"Max external pressure (MPa)", fmt.Sprintf("%.2f", b.Pressures.ExternalMPa)},
		{"Max internal pressure (MPa)", fmt.Sprintf("%.2f", b.Pressures.InternalMPa)},
		{"Residual collapse strength (MPa)", fmt.Sprintf("%.2f", a.CollapseMPa)},
		{"Residual burst strength (MPa)", fmt.Sprintf("%.2f", a.BurstMPa)},
		{"Safety level", levelText(a.Level)},
	}
}

func levelText(l failure.SafetyLevel) string {
	switch l {
	case failure.Safe:
		return "Safe"
	case failure.Warning:
		return "Warning"
	case failure.Dangerous:
		return "Dangerous"
	}
	return "Not assessed"
}

func resultTable(pdf *gofpdf.Fpdf, b assessment.Bundle) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(110, 7, "Result", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Value", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range Rows(b) {
		pdf.CellFormat(110, 7, r.Label, "1", 0, "L", false, 0, "")
		if r.Label == "Safety level" {
			red, green, blue := levelColor(b.Assessment.Level)
			pdf.SetTextColor(red, green, blue)
		}
		pdf.CellFormat(60, 7, r.Value, "1", 1, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

func levelColor(l failure.SafetyLevel) (int, int, int) {
	switch l {
	case failure.Safe:
		return 0, 128, 0
	case failure.Warning:
		return 212, 160, 0
	case failure.Dangerous:
		return 200, 0, 0
	}
	return 0, 0, 0
}

func placeChart(pdf *gofpdf.Fpdf, c sweep.Curve) {
	left, _, right, bottom := pdf.GetMargins()
	pageW, pageH := pdf.GetPageSize()
	if pdf.GetY()+chartHeight+chartGap > pageH-bottom {
		pdf.AddPage()
	}
	y := pdf.GetY() + chartGap
	drawCurve(pdf, c, left+12, y, pageW-left-right-12, chartHeight)
	pdf.SetY(y + chartHeight + 8)
}

// drawCurve plots c as a polyline inside the box at (x, y). Non-finite samples are skipped.
func drawCurve(pdf *gofpdf.Fpdf, c sweep.Curve, x, y, w, h float64) {
	minX, maxX, minY, maxY := bounds(c.Points)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(x, y-3, c.Title)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, w, h, "D")

	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(x-11, y+2, fmt.Sprintf("%.3g", maxY))
	pdf.Text(x-11, y+h, fmt.Sprintf("%.3g", minY))
	pdf.Text(x, y+h+4, fmt.Sprintf("%.3g", minX))
	pdf.Text(x+w-8, y+h+4, fmt.Sprintf("%.3g", maxX))
	pdf.Text(x+w/2-15, y+h+4, c.XLabel)
	pdf.Text(x+2, y+4, c.YLabel)

	pdf.SetDrawColor(31, 119, 180)
	pdf.SetLineWidth(0.4)
	px := func(v float64) float64 { return x + (v-minX)/(maxX-minX)*w }
	py := func(v float64) float64 { return y + h - (v-minY)/(maxY-minY)*h }
	var prev *sweep.Point
	for i := range c.Points {
		p := c.Points[i]
		if !finite(p.X) || !finite(p.Y) {
			prev = nil
			continue
		}
		if prev != nil {
			pdf.Line(px(prev.X), py(prev.Y), px(p.X), py(p.Y))
		}
		prev = &c.Points[i]
	}
	pdf.SetDrawColor(0, 0, 0)
}

func bounds(points []sweep.Point) (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	if math.IsInf(minX, 1) {
		return 0, 1, 0, 1
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		minY, maxY = minY-0.5, maxY+0.5
	}
	return minX, maxX, minY, maxY
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
