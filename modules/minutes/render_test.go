package minutes

import (
	"bytes"
	"testing"
	"time"
)

func TestPDFRendererProducesDocument(t *testing.T) {
	renderer := NewPDFRenderer()

	snap := Snapshot{
		Title:          "Weekly Executive Meeting",
		Date:           time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Time:           "4:00 PM",
		Venue:          "Engineering Boardroom",
		Session:        "2024/2025",
		Semester:       "Second Semester",
		Attendance:     []string{"Ada (ADMIN)", "Eve (EXEC)"},
		Text:           "Budget review.\nWelfare plans.",
		CreatedByName:  "Ada Admin",
		CreatedAt:      time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC),
		ApprovedByName: "Bode Admin",
		ApprovedAt:     time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
	}

	pdf, err := renderer.Render(snap)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
	if len(pdf) < 500 {
		t.Errorf("document suspiciously small: %d bytes", len(pdf))
	}
}

func TestPDFRendererHandlesEmptyAttendance(t *testing.T) {
	renderer := NewPDFRenderer()

	pdf, err := renderer.Render(Snapshot{
		Title:          "Emergency Meeting",
		Date:           time.Now(),
		Time:           "Not specified",
		Venue:          "Not specified",
		Text:           "Short note.",
		CreatedByName:  "Ada Admin",
		ApprovedByName: "Bode Admin",
		ApprovedAt:     time.Now(),
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(pdf) == 0 {
		t.Error("expected document bytes")
	}
}
