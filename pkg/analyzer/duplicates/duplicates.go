// Package duplicates detects duplicated or near-duplicated code
// blocks across a source tree.
package duplicates

import (
	"sort"

	"github.com/panbanda/clonescan/internal/fileproc"
	"github.com/panbanda/clonescan/pkg/extractor"
	"github.com/panbanda/clonescan/pkg/models"
	"github.com/panbanda/clonescan/pkg/stats"
)

// Default matching parameters.
const (
	DefaultMinSize       = 50
	DefaultMinSimilarity = 0.8
)

// Analyzer extracts code blocks from files and groups duplicates with
// the configured strategy.
type Analyzer struct {
	strategy       Strategy
	opts           Options
	queryOverrides map[string]string
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithMinSize sets the inclusive token-count floor for blocks.
func WithMinSize(minSize int) Option {
	return func(a *Analyzer) {
		a.opts.MinSize = minSize
	}
}

// WithMinSimilarity sets the Jaccard floor for the pairwise strategy.
func WithMinSimilarity(minSimilarity float64) Option {
	return func(a *Analyzer) {
		a.opts.MinSimilarity = minSimilarity
	}
}

// WithStrategy selects the matching strategy.
func WithStrategy(s Strategy) Option {
	return func(a *Analyzer) {
		a.strategy = s
	}
}

// WithQueryOverrides passes per-language structural query overrides to
// the extractor.
func WithQueryOverrides(queries map[string]string) Option {
	return func(a *Analyzer) {
		a.queryOverrides = queries
	}
}

// New creates an analyzer. The default strategy is exact-hash
// grouping; use WithStrategy(NewPairwise()) for similarity matching.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		strategy: Exact{},
		opts: Options{
			MinSize:       DefaultMinSize,
			MinSimilarity: DefaultMinSimilarity,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.opts.MinSize <= 0 {
		a.opts.MinSize = DefaultMinSize
	}
	if a.opts.MinSimilarity <= 0 || a.opts.MinSimilarity > 1 {
		a.opts.MinSimilarity = DefaultMinSimilarity
	}
	return a
}

// Analyze extracts blocks from files and matches duplicates.
func (a *Analyzer) Analyze(files []string) (*Analysis, error) {
	return a.AnalyzeWithProgress(files, nil)
}

// AnalyzeWithProgress extracts blocks from all files in parallel, then
// runs the matching strategy over the complete in-memory block list.
// Per-file extraction failures are recorded as skipped files; they
// never abort the run.
func (a *Analyzer) AnalyzeWithProgress(files []string, onProgress fileproc.ProgressFunc) (*Analysis, error) {
	analysis := &Analysis{
		Groups:            make([]models.DuplicateGroup, 0),
		Summary:           NewSummary(),
		TotalFilesScanned: len(files),
		MinSize:           a.opts.MinSize,
		MinSimilarity:     a.opts.MinSimilarity,
		Strategy:          a.strategy.Name(),
	}

	results := fileproc.ExtractFiles(files, func() *extractor.Extractor {
		return extractor.New(extractor.WithQueryOverrides(a.queryOverrides))
	}, onProgress)

	// Results come back in input order, so block order (and therefore
	// group member order) is deterministic for a fixed file ordering.
	var blocks []models.CodeBlock
	for _, r := range results {
		if r.Err != nil {
			analysis.SkippedFiles = append(analysis.SkippedFiles, SkippedFile{
				File:   r.Path,
				Reason: r.Err.Error(),
			})
			continue
		}
		blocks = append(blocks, r.Blocks...)
	}
	analysis.TotalBlocks = len(blocks)

	analysis.Groups = a.strategy.Match(blocks, a.opts)
	for _, g := range analysis.Groups {
		analysis.Summary.AddGroup(g)
	}

	if len(analysis.Groups) > 0 {
		similarities := make([]float64, len(analysis.Groups))
		for i, g := range analysis.Groups {
			similarities[i] = g.Similarity
		}
		analysis.Summary.AvgSimilarity = stats.Mean(similarities)

		sort.Float64s(similarities)
		analysis.Summary.P50Similarity = stats.Percentile(similarities, 50)
		analysis.Summary.P95Similarity = stats.Percentile(similarities, 95)
	}

	return analysis, nil
}

// MatchBlocks runs the configured strategy directly over pre-extracted
// blocks. Matching is a pure, deterministic function of its input.
func (a *Analyzer) MatchBlocks(blocks []models.CodeBlock) []models.DuplicateGroup {
	return a.strategy.Match(blocks, a.opts)
}
