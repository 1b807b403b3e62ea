// Package export renders the filtered task list as json, csv or pdf.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	apperrors "taskpanel/internal/errors"
	"taskpanel/internal/query"
	"taskpanel/internal/service"
	"taskpanel/internal/task"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

var Formats = []string{FormatJSON, FormatCSV, FormatPDF}

type Exporter struct {
	svc   service.Service
	limit int
}

func NewExporter(svc service.Service, limit int) *Exporter {
	if limit <= 0 {
		limit = service.DefaultLimit
	}
	return &Exporter{svc: svc, limit: limit}
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/json"
}

// Export renders the tasks matching state's filters. The page of state is
// ignored: every matching task of the fetched batch is exported.
func (e *Exporter) Export(ctx context.Context, format string, state query.ViewState) ([]byte, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatJSON
	}
	render, ok := renderers[format]
	if !ok {
		return nil, apperrors.NewValidationError("Unsupported export format", "export tasks").WithContext("format", format)
	}

	page, err := e.svc.ListTasks(ctx, 0, e.limit)
	if err != nil {
		return nil, err
	}
	return render(query.Filter(page.Data, state), state)
}

var renderers = map[string]func([]task.Task, query.ViewState) ([]byte, error){
	FormatJSON: renderJSON,
	FormatCSV:  renderCSV,
	FormatPDF:  renderPDF,
}

func renderJSON(tasks []task.Task, _ query.ViewState) ([]byte, error) {
	return json.MarshalIndent(tasks, "", "  ")
}

func renderCSV(tasks []task.Task, _ query.ViewState) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "title", "description", "due_date", "status", "priority", "created_at"})
	for _, t := range tasks {
		_ = w.Write([]string{
			t.ID,
			t.Title,
			deref(t.Description),
			task.FormatDate(t.DueDate),
			string(t.Status),
			string(t.Priority),
			t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return b.Bytes(), nil
}

func renderPDF(tasks []task.Task, state query.ViewState) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	writePDF(pdf, tasks, state)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// writePDF lays out the task list. The core fonts are cp1252, so text is
// translated from UTF-8 first.
func writePDF(pdf *gofpdf.Fpdf, tasks []task.Task, state query.ViewState) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Status: %s  Priority: %s  Total: %d",
		task.StatusLabel(string(state.Status)), task.PriorityLabel(string(state.Priority)), len(tasks))))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		due := task.FormatDate(t.DueDate)
		if due == "" {
			due = "N/A"
		}
		line := fmt.Sprintf("[%s] %s (%s, due %s)",
			task.StatusLabel(string(t.Status)), t.Title, task.PriorityLabel(string(t.Priority)), due)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
		if t.Description != nil {
			pdf.SetFont("Arial", "I", 9)
			pdf.MultiCell(0, 5, tr("    "+*t.Description), "0", "L", false)
			pdf.SetFont("Arial", "", 10)
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
