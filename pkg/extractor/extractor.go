// Package extractor turns source files into code blocks: token
// sequences with source locations, one per structurally-matched
// function, method, or class.
package extractor

import (
	"embed"
	"fmt"
	"os"

	"github.com/panbanda/clonescan/pkg/models"
	"github.com/panbanda/clonescan/pkg/parser"
)

//go:embed queries/*.scm
var queryFiles embed.FS

// FileResult is the outcome of extracting one file. Per-file failures
// never abort a run: Blocks is empty and Err records why, so callers
// can aggregate skipped files into run diagnostics.
type FileResult struct {
	Path   string
	Blocks []models.CodeBlock
	Err    error
}

// LanguageExtractor extracts code blocks from source of one language
// family.
type LanguageExtractor interface {
	Extract(path string, source []byte) ([]models.CodeBlock, error)
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithQueryOverrides replaces the embedded structural query for the
// named languages. The pattern set is data, not logic; unknown
// language names are ignored.
func WithQueryOverrides(queries map[string]string) Option {
	return func(e *Extractor) {
		for name, src := range queries {
			lang := parser.Language(name)
			if _, err := parser.GetTreeSitterLanguage(lang); err != nil {
				continue
			}
			e.queries[lang] = []byte(src)
		}
	}
}

// Extractor dispatches files to per-language extractors by file
// extension. It owns a grammar provider whose parser and query caches
// persist across files, so it is cheap to reuse for many files but
// must be confined to one goroutine.
type Extractor struct {
	provider *parser.Provider
	queries  map[parser.Language][]byte
	byLang   map[parser.Language]LanguageExtractor
}

// New creates an extractor with the default query set.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		provider: parser.NewProvider(),
		queries:  make(map[parser.Language][]byte),
	}

	for _, lang := range parser.SupportedLanguages() {
		if lang.Native() {
			continue
		}
		if src, err := queryFiles.ReadFile("queries/" + lang.String() + ".scm"); err == nil {
			e.queries[lang] = src
		}
	}

	for _, opt := range opts {
		opt(e)
	}

	e.byLang = make(map[parser.Language]LanguageExtractor)
	for _, lang := range parser.SupportedLanguages() {
		if lang.Native() {
			e.byLang[lang] = goExtractor{}
			continue
		}
		e.byLang[lang] = &treeSitterExtractor{
			provider: e.provider,
			lang:     lang,
			query:    e.queries[lang],
		}
	}

	return e
}

// ExtractFile reads and extracts one file. Unsupported extensions
// yield an empty result with no error; unreadable or unparsable files
// yield an empty result with Err set.
func (e *Extractor) ExtractFile(path string) FileResult {
	lang := parser.DetectLanguage(path)
	if lang == parser.LangUnknown {
		return FileResult{Path: path}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("read: %w", err)}
	}

	return e.ExtractSource(path, source)
}

// ExtractSource extracts blocks from in-memory source. The path is
// used for language dispatch and for block locations.
func (e *Extractor) ExtractSource(path string, source []byte) FileResult {
	lang := parser.DetectLanguage(path)
	le, ok := e.byLang[lang]
	if !ok {
		return FileResult{Path: path}
	}

	blocks, err := le.Extract(path, source)
	if err != nil {
		// Fail soft: a syntax error or query failure costs this file
		// its blocks, never the run.
		return FileResult{Path: path, Err: err}
	}
	return FileResult{Path: path, Blocks: blocks}
}

// Close releases parser and query resources.
func (e *Extractor) Close() {
	e.provider.Close()
}
