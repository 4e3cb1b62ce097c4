package duplicates

import (
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/panbanda/clonescan/pkg/models"
)

// Pairwise scores every candidate pair of blocks with the Jaccard
// index over their token sets and reports pairs at or above the
// similarity floor. Token order and repetition do not affect the
// score; this trades precision for speed. Quadratic in block count,
// with a size-ratio short-circuit that skips pairs that cannot reach
// the threshold.
type Pairwise struct {
	comparisons int
}

// NewPairwise creates a pairwise strategy.
func NewPairwise() *Pairwise {
	return &Pairwise{}
}

// Name implements Strategy.
func (p *Pairwise) Name() string { return "pairwise" }

// Comparisons returns how many similarity scores the last Match
// computed, after size-ratio pruning.
func (p *Pairwise) Comparisons() int { return p.comparisons }

// Match implements Strategy. Each reported group has exactly two
// members; Size is the smaller block's token count.
func (p *Pairwise) Match(blocks []models.CodeBlock, opts Options) []models.DuplicateGroup {
	p.comparisons = 0

	kept := make([]models.CodeBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Valid() && b.Size() >= opts.MinSize {
			kept = append(kept, b)
		}
	}

	// Ascending by size, so mismatched pairs fail the ratio check
	// cheaply before any set math.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Size() < kept[j].Size()
	})

	sets := make([]map[uint64]struct{}, len(kept))
	for i, b := range kept {
		sets[i] = tokenSet(b.Tokens)
	}

	maxGap := 1 - opts.MinSimilarity

	var groups []models.DuplicateGroup
	for i := 0; i < len(kept); i++ {
		for j := i + 1; j < len(kept); j++ {
			small, large := kept[i].Size(), kept[j].Size()
			if float64(large-small)/float64(large) > maxGap {
				continue
			}

			p.comparisons++
			score := jaccard(sets[i], sets[j])
			if score < opts.MinSimilarity {
				continue
			}

			locations := []models.SourceLocation{kept[i].Location, kept[j].Location}
			groups = append(groups, models.DuplicateGroup{
				Size:          kept[i].Size(),
				NumDuplicates: 2,
				Locations:     locations,
				CrossFile:     models.SpansFiles(locations),
				Tokens:        kept[i].Tokens,
				Similarity:    score,
			})
		}
	}

	return groups
}

// tokenSet interns tokens to xxhash values. Jaccard only needs set
// membership, and comparing uint64s beats comparing strings.
func tokenSet(tokens []string) map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(tokens))
	for _, t := range tokens {
		set[xxhash.Sum64String(t)] = struct{}{}
	}
	return set
}

// jaccard computes |a ∩ b| / |a ∪ b|.
func jaccard(a, b map[uint64]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	intersection := 0
	for k := range small {
		if _, ok := large[k]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
