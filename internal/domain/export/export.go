// Package export renders the project list in the three user-facing export
// formats: full JSON, a fixed-column CSV, and a plain-text report.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/faridfgx/projectorganizer/internal/domain/project"
	"github.com/faridfgx/projectorganizer/internal/domain/stats"
)

// Format selects an export renderer.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// Valid reports whether f names a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatCSV, FormatText:
		return true
	}
	return false
}

// csvColumns is the fixed CSV column subset, in order.
var csvColumns = []string{"name", "language", "priority", "deadline", "completion", "description"}

// Result is a rendered export with a suggested file name.
type Result struct {
	Content  string
	Filename string
}

// Render produces the export in the requested format.
func Render(records []project.Project, f Format, now time.Time) (*Result, error) {
	stamp := now.Format("20060102")
	switch f {
	case FormatJSON:
		content, err := renderJSON(records)
		if err != nil {
			return nil, err
		}
		return &Result{Content: content, Filename: "project_export_" + stamp + ".json"}, nil
	case FormatCSV:
		content, err := renderCSV(records)
		if err != nil {
			return nil, err
		}
		return &Result{Content: content, Filename: "project_export_" + stamp + ".csv"}, nil
	case FormatText:
		return &Result{
			Content:  renderReport(records, now),
			Filename: "project_report_" + stamp + ".txt",
		}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}
}

func renderJSON(records []project.Project) (string, error) {
	if records == nil {
		records = []project.Project{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	return string(data), nil
}

// renderCSV always writes the header row, so an empty store exports as a
// header-only file.
func renderCSV(records []project.Project) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvColumns); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range records {
		row := []string{
			p.Name,
			p.Language,
			string(p.Priority),
			p.Deadline,
			strconv.Itoa(int(p.Completion)),
			p.Description,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}

// renderReport generates the readable text report: summary counts followed
// by per-project sections ordered High, Medium, Low.
func renderReport(records []project.Project, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "PROJECT REPORT - Generated on %s\n", now.Format(project.TimestampLayout))
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	overview := stats.BuildOverview(records, now)
	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "Total Projects: %d\n", overview.Total)
	fmt.Fprintf(&b, "Completed Projects: %d\n", overview.Completed)
	fmt.Fprintf(&b, "High Priority Projects: %d\n", overview.HighPriority)
	fmt.Fprintf(&b, "Completion Rate: %d%%\n\n", overview.CompletionRate)

	b.WriteString("PROJECT DETAILS\n")

	ordered := append([]project.Project(nil), records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority.Rank() < ordered[j].Priority.Rank()
	})

	for i, p := range ordered {
		b.WriteString(strings.Repeat("-", 80) + "\n")
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, p.Name, p.Language)
		fmt.Fprintf(&b, "   Priority: %s\n", p.Priority)
		if p.Deadline != "" {
			fmt.Fprintf(&b, "   Deadline: %s\n", p.Deadline)
		}
		fmt.Fprintf(&b, "   Completion: %d%%\n", int(p.Completion))
		if p.Description != "" {
			fmt.Fprintf(&b, "   Description: %s\n", p.Description)
		}
		b.WriteString("\n")
	}

	return b.String()
}
