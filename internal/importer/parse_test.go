package importer

import (
	"strings"
	"testing"
	"time"

	"focusboard/internal/model"

	"github.com/PuerkitoBio/goquery"
)

const timetableHTML = `
<html><body>
<h1>Semester timetable</h1>
<table>
  <thead>
    <tr><th>Title</th><th>Subject</th><th>Due</th><th>Priority</th></tr>
  </thead>
  <tbody>
    <tr><td>Essay draft</td><td>History</td><td>2026-03-15</td><td>high</td></tr>
    <tr><td>Problem set 4</td><td>Math</td><td>20.03.2026</td><td></td></tr>
    <tr><td>Lab report</td><td>Chemistry</td><td></td><td>low</td></tr>
  </tbody>
</table>
</body></html>`

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture HTML: %v", err)
	}
	return doc
}

func TestParseTimetable(t *testing.T) {
	doc := parseHTML(t, timetableHTML)

	assignments, err := ParseTimetable(doc, 42)
	if err != nil {
		t.Fatalf("ParseTimetable returned error: %v", err)
	}

	if len(assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(assignments))
	}

	first := assignments[0]
	if first.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", first.UserID)
	}
	if first.Title != "Essay draft" || first.Subject != "History" {
		t.Errorf("unexpected first assignment: %q / %q", first.Title, first.Subject)
	}
	if first.Priority != model.PriorityHigh {
		t.Errorf("expected high priority, got %s", first.Priority)
	}
	if first.DueAt == nil || !first.DueAt.Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected due date: %v", first.DueAt)
	}

	second := assignments[1]
	if second.Priority != model.PriorityMedium {
		t.Errorf("expected medium priority for row without priority cell, got %s", second.Priority)
	}
	if second.DueAt == nil || !second.DueAt.Equal(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected due date for dotted format: %v", second.DueAt)
	}

	third := assignments[2]
	if third.DueAt != nil {
		t.Errorf("expected nil due date for empty cell, got %v", third.DueAt)
	}
	if third.Priority != model.PriorityLow {
		t.Errorf("expected low priority, got %s", third.Priority)
	}
}

func TestParseTimetableHeaderInFirstRow(t *testing.T) {
	html := `
<table>
  <tr><td>Assignment</td><td>Course</td><td>Deadline</td></tr>
  <tr><td>Reading notes</td><td>Literature</td><td>2026-04-01</td></tr>
</table>`
	doc := parseHTML(t, html)

	assignments, err := ParseTimetable(doc, 7)
	if err != nil {
		t.Fatalf("ParseTimetable returned error: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}
	if assignments[0].Title != "Reading notes" {
		t.Errorf("unexpected title: %q", assignments[0].Title)
	}
}

func TestParseTimetableNoTable(t *testing.T) {
	doc := parseHTML(t, `<html><body><p>Nothing here</p></body></html>`)

	if _, err := ParseTimetable(doc, 1); err == nil {
		t.Error("expected error for document without assignment table")
	}
}

func TestParseTimetableSkipsUnrelatedTable(t *testing.T) {
	html := `
<table>
  <tr><th>Room</th><th>Building</th></tr>
  <tr><td>101</td><td>Main</td></tr>
</table>` + timetableHTML
	doc := parseHTML(t, html)

	assignments, err := ParseTimetable(doc, 1)
	if err != nil {
		t.Fatalf("ParseTimetable returned error: %v", err)
	}
	if len(assignments) != 3 {
		t.Fatalf("expected 3 assignments from the second table, got %d", len(assignments))
	}
}

func TestParseTimetableBadDueDate(t *testing.T) {
	html := `
<table>
  <tr><th>Title</th><th>Due</th></tr>
  <tr><td>Essay</td><td>someday</td></tr>
</table>`
	doc := parseHTML(t, html)

	if _, err := ParseTimetable(doc, 1); err == nil {
		t.Error("expected error for unrecognized due date")
	}
}

func TestParseTimetableUnknownPriority(t *testing.T) {
	html := `
<table>
  <tr><th>Title</th><th>Due</th><th>Priority</th></tr>
  <tr><td>Essay</td><td>2026-04-01</td><td>urgent</td></tr>
</table>`
	doc := parseHTML(t, html)

	if _, err := ParseTimetable(doc, 1); err == nil {
		t.Error("expected error for unknown priority value")
	}
}
