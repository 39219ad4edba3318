package main

import (
	"bytes"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf/v2"
)

const (
	resumeMargin   = 48.0
	resumePageW    = 595.28
	resumeBodySize = 10.0
)

// ResumeProfile is what goes on the generated résumé.
type ResumeProfile struct {
	Name     string
	Location string
	Links    []string
	About    string
	Projects []Project
}

// BuildResume lays the profile out on a single A4 page.
func BuildResume(p ResumeProfile) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(resumeMargin, resumeMargin, resumeMargin)
	pdf.SetAutoPageBreak(true, resumeMargin)
	pdf.AddPage()

	textW := resumePageW - 2*resumeMargin

	// Header band in the site's dark green.
	pdf.SetFillColor(40, 49, 6)
	pdf.Rect(0, 0, resumePageW, 96, "F")
	pdf.SetTextColor(254, 249, 245)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(resumeMargin, 30)
	pdf.CellFormat(textW, 26, p.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", resumeBodySize)
	pdf.SetX(resumeMargin)
	pdf.CellFormat(textW, 14, strings.Join(append([]string{p.Location}, p.Links...), "  |  "), "", 1, "L", false, 0, "")

	pdf.SetTextColor(40, 49, 6)
	pdf.SetY(120)
	resumeHeading(pdf, "About")
	pdf.SetFont("Helvetica", "", resumeBodySize)
	pdf.MultiCell(textW, 14, stripMarkdown(p.About), "", "L", false)

	pdf.Ln(10)
	resumeHeading(pdf, "Projects")
	for _, proj := range p.Projects {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(textW, 16, proj.Name, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", resumeBodySize)
		pdf.MultiCell(textW, 13, proj.Summary, "", "L", false)
		if len(proj.Tags) > 0 {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(textW, 12, strings.Join(proj.Tags, ", "), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resumeHeading(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 18, strings.ToUpper(title), "B", 1, "L", false, 0, "")
	pdf.Ln(4)
}

// stripMarkdown drops the emphasis markers the page copy uses; the PDF
// core fonts have no inline styling.
func stripMarkdown(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}

// resumeCache builds the PDF on first request and keeps it.
type resumeCache struct {
	once    sync.Once
	profile ResumeProfile
	data    []byte
	err     error
}

func (r *resumeCache) get() ([]byte, error) {
	r.once.Do(func() {
		r.data, r.err = BuildResume(r.profile)
	})
	return r.data, r.err
}

func (a *App) handleResume(c *gin.Context) {
	data, err := a.resume.get()
	if err != nil {
		c.String(http.StatusInternalServerError, "could not build resume")
		return
	}
	c.Header("Content-Disposition", "inline; filename=resume.pdf")
	c.Data(http.StatusOK, "application/pdf", data)
}
