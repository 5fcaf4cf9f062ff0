package minutes

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Snapshot is the reproducible view of an approved record handed to the
// renderer. It carries everything the document shows, so rendering never
// reaches back into the store.
type Snapshot struct {
	Title          string
	Date           time.Time
	Time           string
	Venue          string
	Session        string
	Semester       string
	Attendance     []string
	Text           string
	CreatedByName  string
	CreatedAt      time.Time
	ApprovedByName string
	ApprovedAt     time.Time
}

// Renderer produces the fixed document format for an approved record.
type Renderer interface {
	Render(snap Snapshot) ([]byte, error)
}

// PDFRenderer renders minutes as an A4 PDF.
type PDFRenderer struct {
	heading string
}

// NewPDFRenderer creates a PDFRenderer with the department heading.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{
		heading: "DEPARTMENT OF INDUSTRIAL & PRODUCTION ENGINEERING",
	}
}

// Render implements Renderer.
func (r *PDFRenderer) Render(snap Snapshot) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(snap.Title, true)
	doc.SetAuthor("Department Executive System", true)
	doc.SetMargins(18, 18, 18)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(13, 124, 61)
	doc.MultiCell(0, 8, r.heading, "", "C", false)
	doc.SetFontSize(13)
	doc.SetTextColor(10, 90, 45)
	doc.CellFormat(0, 8, "Meeting Minutes", "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetTextColor(0, 0, 0)
	r.section(doc, "MEETING DETAILS")
	r.line(doc, fmt.Sprintf("Title: %s", snap.Title))
	r.line(doc, fmt.Sprintf("Date: %s", snap.Date.Format("Mon Jan 2 2006")))
	r.line(doc, fmt.Sprintf("Time: %s", snap.Time))
	r.line(doc, fmt.Sprintf("Venue: %s", snap.Venue))
	r.line(doc, fmt.Sprintf("Session: %s", snap.Session))
	r.line(doc, fmt.Sprintf("Semester: %s", snap.Semester))
	doc.Ln(4)

	r.section(doc, "ATTENDANCE")
	if len(snap.Attendance) == 0 {
		doc.SetFont("Helvetica", "I", 11)
		r.line(doc, "No attendance recorded")
	} else {
		for _, attendee := range snap.Attendance {
			r.line(doc, "- "+attendee)
		}
	}
	doc.Ln(4)

	r.section(doc, "MINUTES OF MEETING")
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, snap.Text, "", "L", false)
	doc.Ln(6)

	r.section(doc, "RECORD")
	r.line(doc, fmt.Sprintf("Recorded by: %s on %s", snap.CreatedByName, snap.CreatedAt.Format("Mon Jan 2 2006")))
	r.line(doc, fmt.Sprintf("Approved by: %s on %s", snap.ApprovedByName, snap.ApprovedAt.Format("Mon Jan 2 2006")))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render minutes pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) section(doc *fpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "BU", 13)
	doc.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
}

func (r *PDFRenderer) line(doc *fpdf.Fpdf, text string) {
	doc.CellFormat(0, 6, text, "", 1, "L", false, 0, "")
}
