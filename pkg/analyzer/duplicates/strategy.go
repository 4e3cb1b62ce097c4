package duplicates

import (
	"fmt"

	"github.com/panbanda/clonescan/pkg/models"
)

// Options parameterize a matching strategy. MinSize is an inclusive
// token-count floor: blocks with fewer tokens never join a group.
// MinSimilarity is only meaningful for the pairwise strategy; the
// exact strategy only ever reports 1.0.
type Options struct {
	MinSize       int
	MinSimilarity float64
}

// Strategy groups code blocks into duplicate groups. Implementations
// are pure, deterministic functions of their input: no retries, no
// shared state, and malformed blocks are skipped rather than crashing.
type Strategy interface {
	Name() string
	Match(blocks []models.CodeBlock, opts Options) []models.DuplicateGroup
}

// ForName returns the strategy registered under name.
func ForName(name string) (Strategy, error) {
	switch name {
	case "exact", "":
		return Exact{}, nil
	case "pairwise":
		return NewPairwise(), nil
	default:
		return nil, fmt.Errorf("unknown match strategy: %q (want exact or pairwise)", name)
	}
}
