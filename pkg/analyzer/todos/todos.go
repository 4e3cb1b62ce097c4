// Package todos finds work markers (TODO, FIXME, HACK, and similar)
// in source comments.
package todos

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"regexp"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/panbanda/clonescan/internal/fileproc"
	"github.com/panbanda/clonescan/pkg/models"
	"github.com/panbanda/clonescan/pkg/parser"
)

// commentQuery captures every comment node regardless of language.
const commentQuery = "(comment) @comment"

// defaultMarkers are the recognized work markers and their common
// spelling variants.
var defaultMarkers = []string{
	`TODO`, `TO[\s_-]?DO`, `TO[\s_-]?FIX`, `FIXME`, `FIX[\s_-]?ME`, `TOFIX`,
	`BUG`, `HACK`, `XXX`, `NOTE`, `OPTIMIZE`, `REVIEW`, `WARNING`, `TEMP`, `TBD`,
}

// Analyzer scans source comments for work markers.
type Analyzer struct {
	markers []string
	pattern *regexp.Regexp
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithExtraMarkers adds marker words to the default set. Each entry is
// a regular expression fragment matched case-insensitively.
func WithExtraMarkers(markers ...string) Option {
	return func(a *Analyzer) {
		a.markers = append(a.markers, markers...)
	}
}

// New creates a work-marker analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{markers: append([]string(nil), defaultMarkers...)}
	for _, opt := range opts {
		opt(a)
	}
	a.pattern = regexp.MustCompile(
		`(?i)(?:^|[\s#/*-])(` + strings.Join(a.markers, "|") + `)\b[:\s]*(.*)`)
	return a
}

// Analyze scans files for work markers.
func (a *Analyzer) Analyze(files []string) (*Analysis, error) {
	return a.AnalyzeWithProgress(files, nil)
}

// AnalyzeWithProgress scans files in parallel. Unreadable or
// unparsable files contribute no markers.
func (a *Analyzer) AnalyzeWithProgress(files []string, onProgress fileproc.ProgressFunc) (*Analysis, error) {
	perFile := fileproc.ForEachFileWithProgress(files, a.AnalyzeFile, onProgress)

	analysis := &Analysis{
		Items:              make([]models.TodoComment, 0),
		Summary:            NewSummary(),
		TotalFilesAnalyzed: len(files),
	}
	for _, items := range perFile {
		analysis.Items = append(analysis.Items, items...)
	}

	sort.Slice(analysis.Items, func(i, j int) bool {
		if analysis.Items[i].File != analysis.Items[j].File {
			return analysis.Items[i].File < analysis.Items[j].File
		}
		return analysis.Items[i].Line < analysis.Items[j].Line
	})

	for _, item := range analysis.Items {
		analysis.Summary.AddItem(item)
	}
	analysis.FilesWithTodos = len(analysis.Summary.ByFile)

	return analysis, nil
}

// AnalyzeFile scans a single file for work markers. Comment discovery
// follows the extraction split: line scanning for Go and Python,
// tree-sitter comment captures for the rest.
func (a *Analyzer) AnalyzeFile(path string) ([]models.TodoComment, error) {
	lang := parser.DetectLanguage(path)
	if lang == parser.LangUnknown {
		return nil, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch lang {
	case parser.LangGo:
		return a.scanLines(path, source, "//"), nil
	case parser.LangPython:
		return a.scanLines(path, source, "#"), nil
	default:
		return a.scanTree(path, source, lang)
	}
}

// scanLines matches markers in line comments introduced by prefix.
func (a *Analyzer) scanLines(path string, source []byte, prefix string) []models.TodoComment {
	var items []models.TodoComment

	scanner := bufio.NewScanner(bytes.NewReader(source))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		idx := strings.Index(line, prefix)
		if idx < 0 {
			continue
		}
		if item, ok := a.match(line[idx:]); ok {
			item.File = path
			item.Line = lineNum
			items = append(items, item)
		}
	}

	return items
}

// scanTree matches markers in tree-sitter comment nodes. Block
// comments report the line the comment starts on.
func (a *Analyzer) scanTree(path string, source []byte, lang parser.Language) ([]models.TodoComment, error) {
	tsLang, err := parser.GetTreeSitterLanguage(lang)
	if err != nil {
		return nil, err
	}

	psr := sitter.NewParser()
	defer psr.Close()
	psr.SetLanguage(tsLang)

	tree, err := psr.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	query, err := sitter.NewQuery([]byte(commentQuery), tsLang)
	if err != nil {
		return nil, err
	}
	defer query.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	var items []models.TodoComment
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, cap := range m.Captures {
			if item, found := a.match(parser.GetNodeText(cap.Node, source)); found {
				item.File = path
				item.Line = int(cap.Node.StartPoint().Row) + 1
				items = append(items, item)
			}
		}
	}

	return items, nil
}

func (a *Analyzer) match(text string) (models.TodoComment, bool) {
	sub := a.pattern.FindStringSubmatch(text)
	if sub == nil {
		return models.TodoComment{}, false
	}
	return models.TodoComment{
		Marker: strings.ToUpper(sub[1]),
		Text:   strings.TrimSpace(sub[2]),
	}, true
}
