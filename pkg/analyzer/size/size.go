// Package size flags oversized files and class-like blocks by token
// count.
package size

import (
	"go/scanner"
	"go/token"
	"os"
	"regexp"
	"sort"

	"github.com/panbanda/clonescan/internal/fileproc"
	"github.com/panbanda/clonescan/pkg/extractor"
	"github.com/panbanda/clonescan/pkg/models"
	"github.com/panbanda/clonescan/pkg/parser"
)

// Default thresholds.
const (
	DefaultLargeFileTokens  = 500
	DefaultLargeClassTokens = 300
	DefaultTopN             = 10
)

// rawTokenPattern approximates lexical tokens for languages without a
// native lexer here: runs of word characters, or single punctuation.
var rawTokenPattern = regexp.MustCompile(`\w+|[^\s\w]`)

// Analyzer measures file and class sizes in tokens.
type Analyzer struct {
	largeFileTokens  int
	largeClassTokens int
	topN             int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithLargeFileTokens sets the whole-file token threshold.
func WithLargeFileTokens(n int) Option {
	return func(a *Analyzer) {
		a.largeFileTokens = n
	}
}

// WithLargeClassTokens sets the per-class token threshold.
func WithLargeClassTokens(n int) Option {
	return func(a *Analyzer) {
		a.largeClassTokens = n
	}
}

// WithTopN caps how many findings of each kind are reported, largest
// first. Zero reports everything.
func WithTopN(n int) Option {
	return func(a *Analyzer) {
		a.topN = n
	}
}

// New creates a size analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		largeFileTokens:  DefaultLargeFileTokens,
		largeClassTokens: DefaultLargeClassTokens,
		topN:             DefaultTopN,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze measures the given files.
func (a *Analyzer) Analyze(files []string) (*Analysis, error) {
	return a.AnalyzeWithProgress(files, nil)
}

// AnalyzeWithProgress measures files in parallel. Class sizes come
// from extracted blocks; file sizes from a whole-file token count.
// Unreadable or unparsable files contribute no findings.
func (a *Analyzer) AnalyzeWithProgress(files []string, onProgress fileproc.ProgressFunc) (*Analysis, error) {
	analysis := &Analysis{
		LargeFiles:          make([]models.LargeFile, 0),
		LargeClasses:        make([]models.LargeClass, 0),
		TotalFilesAnalyzed:  len(files),
		LargeFileThreshold:  a.largeFileTokens,
		LargeClassThreshold: a.largeClassTokens,
		TopN:                a.topN,
	}

	results := fileproc.ExtractFiles(files, func() *extractor.Extractor {
		return extractor.New()
	}, onProgress)

	for _, r := range results {
		for _, block := range r.Blocks {
			if !classLike(block.Kind) || block.Size() < a.largeClassTokens {
				continue
			}
			analysis.LargeClasses = append(analysis.LargeClasses, models.LargeClass{
				Name:       block.Tokens[0],
				Location:   block.Location,
				TokenCount: block.Size(),
				Threshold:  a.largeClassTokens,
				Severity:   models.SeverityFor(block.Size(), a.largeClassTokens),
			})
		}
	}

	counts := fileproc.ForEachFile(files, a.fileTokens)
	for _, fc := range counts {
		if fc.tokens < a.largeFileTokens {
			continue
		}
		analysis.LargeFiles = append(analysis.LargeFiles, models.LargeFile{
			File:       fc.path,
			TokenCount: fc.tokens,
			Threshold:  a.largeFileTokens,
			Severity:   models.SeverityFor(fc.tokens, a.largeFileTokens),
		})
	}

	sortAndTrim(&analysis.LargeFiles, a.topN, func(f models.LargeFile) (int, string) {
		return f.TokenCount, f.File
	})
	sortAndTrim(&analysis.LargeClasses, a.topN, func(c models.LargeClass) (int, string) {
		return c.TokenCount, c.Location.File
	})

	return analysis, nil
}

func classLike(kind models.BlockKind) bool {
	switch kind {
	case models.KindClass, models.KindStruct:
		return true
	}
	return false
}

type fileCount struct {
	path   string
	tokens int
}

// fileTokens counts lexical tokens in one file: the go/scanner token
// stream for Go, the raw token approximation otherwise.
func (a *Analyzer) fileTokens(path string) (fileCount, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return fileCount{}, err
	}

	if parser.DetectLanguage(path) == parser.LangGo {
		return fileCount{path: path, tokens: countGoTokens(path, source)}, nil
	}
	return fileCount{path: path, tokens: len(rawTokenPattern.FindAll(source, -1))}, nil
}

func countGoTokens(path string, source []byte) int {
	fset := token.NewFileSet()
	file := fset.AddFile(path, fset.Base(), len(source))

	var s scanner.Scanner
	s.Init(file, source, nil, 0)

	count := 0
	for {
		_, tok, _ := s.Scan()
		if tok == token.EOF {
			break
		}
		count++
	}
	return count
}

// sortAndTrim orders findings largest first, ties broken by path for
// deterministic output, and keeps the top n when n > 0.
func sortAndTrim[T any](items *[]T, n int, key func(T) (int, string)) {
	sort.SliceStable(*items, func(i, j int) bool {
		ci, pi := key((*items)[i])
		cj, pj := key((*items)[j])
		if ci != cj {
			return ci > cj
		}
		return pi < pj
	})
	if n > 0 && len(*items) > n {
		*items = (*items)[:n]
	}
}
