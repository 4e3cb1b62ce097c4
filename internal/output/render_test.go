package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/panbanda/clonescan/pkg/analyzer/duplicates"
	"github.com/panbanda/clonescan/pkg/analyzer/size"
	"github.com/panbanda/clonescan/pkg/analyzer/todos"
	"github.com/panbanda/clonescan/pkg/models"
)

func TestFormatLocation(t *testing.T) {
	loc := models.SourceLocation{File: "a.go", StartLine: 10, EndLine: 20}
	if got := formatLocation(loc); got != "a.go:10-20" {
		t.Errorf("formatLocation = %q, want a.go:10-20", got)
	}

	loc.EndLine = 0
	if got := formatLocation(loc); got != "a.go:10" {
		t.Errorf("formatLocation = %q, want a.go:10", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 70); got != "short" {
		t.Errorf("truncate = %q, want unchanged", got)
	}
	long := strings.Repeat("x", 80)
	got := truncate(long, 70)
	if len(got) != 70 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate = %q (len %d)", got, len(got))
	}
}

func TestDuplicatesReport(t *testing.T) {
	group := models.DuplicateGroup{
		Size:          12,
		NumDuplicates: 2,
		Locations: []models.SourceLocation{
			{File: "a.go", StartLine: 3, EndLine: 9},
			{File: "b.go", StartLine: 14, EndLine: 20},
		},
		CrossFile:  true,
		Similarity: 1.0,
	}
	summary := duplicates.NewSummary()
	summary.AddGroup(group)
	summary.AvgSimilarity = 1.0
	summary.P50Similarity = 1.0
	summary.P95Similarity = 1.0

	analysis := &duplicates.Analysis{
		Groups:            []models.DuplicateGroup{group},
		Summary:           summary,
		TotalFilesScanned: 2,
		TotalBlocks:       4,
		MinSize:           10,
		MinSimilarity:     0.8,
		Strategy:          "exact",
		SkippedFiles:      []duplicates.SkippedFile{{File: "c.go", Reason: "no blocks extracted"}},
	}

	var buf bytes.Buffer
	if err := DuplicatesReport(analysis).RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}

	out := buf.String()
	wants := []string{
		"Duplicate Code",
		"Files scanned: 2",
		"Duplicate groups: 1",
		"a.go:3-9; b.go:14-20",
		"1.00",
		"c.go: no blocks extracted",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDuplicatesReportEmpty(t *testing.T) {
	analysis := &duplicates.Analysis{
		Summary:           duplicates.NewSummary(),
		TotalFilesScanned: 3,
		Strategy:          "exact",
		MinSize:           50,
	}

	var buf bytes.Buffer
	if err := DuplicatesReport(analysis).RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Duplicate groups: 0") {
		t.Errorf("output missing empty summary:\n%s", out)
	}
	if strings.Contains(out, "Duplicate Groups") {
		t.Errorf("empty analysis should not render a groups table:\n%s", out)
	}
	if strings.Contains(out, "Similarity: avg") {
		t.Errorf("empty analysis should not render similarity stats:\n%s", out)
	}
}

func TestDuplicatesReportJSONData(t *testing.T) {
	analysis := &duplicates.Analysis{Summary: duplicates.NewSummary(), Strategy: "exact"}
	if got := DuplicatesReport(analysis).RenderData(); got != any(analysis) {
		t.Errorf("RenderData() = %v, want the analysis itself", got)
	}
}

func TestTodosReport(t *testing.T) {
	summary := todos.NewSummary()
	items := []models.TodoComment{
		{File: "a.go", Line: 3, Marker: "TODO", Text: "wire the cache"},
		{File: "b.py", Line: 9, Marker: "FIXME", Text: strings.Repeat("y", 100)},
	}
	for _, item := range items {
		summary.AddItem(item)
	}
	analysis := &todos.Analysis{
		Items:              items,
		Summary:            summary,
		TotalFilesAnalyzed: 2,
		FilesWithTodos:     2,
	}

	var buf bytes.Buffer
	if err := TodosReport(analysis).RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Work Markers", "Markers found: 2", "TODO", "a.go:3", "wire the cache"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, strings.Repeat("y", 100)) {
		t.Error("long marker text should be truncated in the table")
	}
}

func TestSizeReport(t *testing.T) {
	analysis := &size.Analysis{
		LargeFiles: []models.LargeFile{
			{File: "big.go", TokenCount: 900, Threshold: 500, Severity: models.SeverityLow},
		},
		LargeClasses: []models.LargeClass{
			{
				Name:       "Monolith",
				Location:   models.SourceLocation{File: "big.go", StartLine: 10, EndLine: 400},
				TokenCount: 700,
				Threshold:  300,
				Severity:   models.SeverityHigh,
			},
		},
		TotalFilesAnalyzed:  1,
		LargeFileThreshold:  500,
		LargeClassThreshold: 300,
		TopN:                10,
	}

	var buf bytes.Buffer
	if err := SizeReport(analysis).RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Large Files", "big.go", "900", "Large Classes", "Monolith", "big.go:10-400", "high"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
