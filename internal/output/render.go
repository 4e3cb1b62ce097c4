package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/panbanda/clonescan/pkg/analyzer/duplicates"
	"github.com/panbanda/clonescan/pkg/analyzer/size"
	"github.com/panbanda/clonescan/pkg/analyzer/todos"
	"github.com/panbanda/clonescan/pkg/models"
)

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func formatLocation(loc models.SourceLocation) string {
	if loc.EndLine > 0 {
		return fmt.Sprintf("%s:%d-%d", loc.File, loc.StartLine, loc.EndLine)
	}
	return fmt.Sprintf("%s:%d", loc.File, loc.StartLine)
}

// DuplicatesReport builds the renderable report for a duplicate scan.
func DuplicatesReport(a *duplicates.Analysis) Renderable {
	summary := &Section{
		Title: "Summary",
		Content: fmt.Sprintf(
			"Files scanned: %d\nBlocks extracted: %d\nDuplicate groups: %d\nDuplicate blocks: %d\nCross-file groups: %d\nStrategy: %s (min size %d)",
			a.TotalFilesScanned, a.TotalBlocks,
			a.Summary.TotalGroups, a.Summary.TotalDuplicates,
			a.Summary.CrossFileGroups, a.Strategy, a.MinSize),
	}
	if a.Summary.TotalGroups > 0 {
		summary.Content += fmt.Sprintf(
			"\nSimilarity: avg %.2f, p50 %.2f, p95 %.2f",
			a.Summary.AvgSimilarity, a.Summary.P50Similarity, a.Summary.P95Similarity)
	}

	rows := make([][]string, len(a.Groups))
	for i, g := range a.Groups {
		locs := make([]string, len(g.Locations))
		for j, loc := range g.Locations {
			locs[j] = formatLocation(loc)
		}
		crossFile := "no"
		if g.CrossFile {
			crossFile = "yes"
		}
		rows[i] = []string{
			strconv.Itoa(g.Size),
			strconv.Itoa(g.NumDuplicates),
			fmt.Sprintf("%.2f", g.Similarity),
			crossFile,
			strings.Join(locs, "; "),
		}
	}

	sections := []Renderable{summary}
	if len(rows) > 0 {
		sections = append(sections, &Table{
			Title:   "Duplicate Groups",
			Headers: []string{"Tokens", "Blocks", "Similarity", "Cross-File", "Locations"},
			Rows:    rows,
			Data:    a.Groups,
		})
	}
	if len(a.SkippedFiles) > 0 {
		skipped := make([]string, len(a.SkippedFiles))
		for i, s := range a.SkippedFiles {
			skipped[i] = fmt.Sprintf("%s: %s", s.File, s.Reason)
		}
		sections = append(sections, &Section{
			Title:   "Skipped Files",
			Content: strings.Join(skipped, "\n"),
		})
	}

	return &Report{Title: "Duplicate Code", Sections: sections, Data: a}
}

// TodosReport builds the renderable report for a work-marker scan.
func TodosReport(a *todos.Analysis) Renderable {
	rows := make([][]string, len(a.Items))
	for i, item := range a.Items {
		rows[i] = []string{
			item.Marker,
			fmt.Sprintf("%s:%d", item.File, item.Line),
			truncate(item.Text, 70),
		}
	}

	return &Report{
		Title: "Work Markers",
		Sections: []Renderable{
			&Section{
				Title: "Summary",
				Content: fmt.Sprintf("Files scanned: %d\nFiles with markers: %d\nMarkers found: %d",
					a.TotalFilesAnalyzed, a.FilesWithTodos, a.Summary.TotalItems),
			},
			&Table{
				Title:   "Markers",
				Headers: []string{"Marker", "Location", "Text"},
				Rows:    rows,
				Data:    a.Items,
			},
		},
		Data: a,
	}
}

// SizeReport builds the renderable report for a size scan.
func SizeReport(a *size.Analysis) Renderable {
	fileRows := make([][]string, len(a.LargeFiles))
	for i, f := range a.LargeFiles {
		fileRows[i] = []string{
			f.File,
			strconv.Itoa(f.TokenCount),
			strconv.Itoa(f.Threshold),
			f.Severity.String(),
		}
	}

	classRows := make([][]string, len(a.LargeClasses))
	for i, c := range a.LargeClasses {
		classRows[i] = []string{
			c.Name,
			formatLocation(c.Location),
			strconv.Itoa(c.TokenCount),
			strconv.Itoa(c.Threshold),
			c.Severity.String(),
		}
	}

	return &Report{
		Title: "Size Report",
		Sections: []Renderable{
			&Table{
				Title:   "Large Files",
				Headers: []string{"File", "Tokens", "Threshold", "Severity"},
				Rows:    fileRows,
				Data:    a.LargeFiles,
			},
			&Table{
				Title:   "Large Classes",
				Headers: []string{"Class", "Location", "Tokens", "Threshold", "Severity"},
				Rows:    classRows,
				Data:    a.LargeClasses,
			},
		},
		Data: a,
	}
}
