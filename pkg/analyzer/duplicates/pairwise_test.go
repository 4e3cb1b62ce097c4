package duplicates

import (
	"math"
	"testing"

	"github.com/panbanda/clonescan/pkg/models"
)

func tokensRange(prefix string, n int) []string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = prefix + string(rune('a'+i%26)) + string(rune('0'+i/26))
	}
	return tokens
}

func TestJaccard(t *testing.T) {
	a := tokenSet([]string{"x", "y", "z"})
	b := tokenSet([]string{"x", "y", "z"})
	c := tokenSet([]string{"p", "q", "r"})
	d := tokenSet([]string{"x", "y", "q"})

	if got := jaccard(a, b); got != 1.0 {
		t.Errorf("identical sets: jaccard = %f, want 1.0", got)
	}
	if got := jaccard(a, c); got != 0.0 {
		t.Errorf("disjoint sets: jaccard = %f, want 0.0", got)
	}
	// |{x,y}| / |{x,y,z,q}| = 0.5
	if got := jaccard(a, d); got != 0.5 {
		t.Errorf("jaccard = %f, want 0.5", got)
	}
	if jaccard(a, d) != jaccard(d, a) {
		t.Error("jaccard should be symmetric")
	}
	if got := jaccard(a, tokenSet(nil)); got != 0.0 {
		t.Errorf("empty set: jaccard = %f, want 0.0", got)
	}
}

func TestPairwiseNearIdenticalBlocks(t *testing.T) {
	base := tokensRange("t", 10)
	extended := append(append([]string{}, base...), "extra")

	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, base...),
		mkBlock("b.go", 1, extended...),
	}

	p := NewPairwise()
	groups := p.Match(blocks, Options{MinSize: 5, MinSimilarity: 0.8})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	// 10 shared tokens over a union of 11.
	want := 10.0 / 11.0
	if math.Abs(groups[0].Similarity-want) > 1e-9 {
		t.Errorf("Similarity = %f, want %f", groups[0].Similarity, want)
	}
	if groups[0].Size != 10 {
		t.Errorf("Size = %d, want smaller block size 10", groups[0].Size)
	}
	if groups[0].NumDuplicates != 2 {
		t.Errorf("NumDuplicates = %d, want 2", groups[0].NumDuplicates)
	}
	if !groups[0].CrossFile {
		t.Error("expected cross-file group")
	}
}

func TestPairwiseSizeRatioPruning(t *testing.T) {
	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, tokensRange("a", 10)...),
		mkBlock("b.go", 1, tokensRange("b", 100)...),
	}

	p := NewPairwise()
	groups := p.Match(blocks, Options{MinSize: 5, MinSimilarity: 0.8})
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}

	// (100-10)/100 = 0.9 > 0.2, so the pair never reaches the
	// similarity computation.
	if p.Comparisons() != 0 {
		t.Errorf("Comparisons = %d, want 0", p.Comparisons())
	}
}

func TestPairwiseComparesCloseSizes(t *testing.T) {
	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, tokensRange("a", 10)...),
		mkBlock("b.go", 1, tokensRange("b", 10)...),
	}

	p := NewPairwise()
	groups := p.Match(blocks, Options{MinSize: 5, MinSimilarity: 0.8})
	if len(groups) != 0 {
		t.Errorf("disjoint tokens should not group, got %d groups", len(groups))
	}
	if p.Comparisons() != 1 {
		t.Errorf("Comparisons = %d, want 1", p.Comparisons())
	}
}

func TestPairwiseAllPairsOfIdenticalTriple(t *testing.T) {
	tokens := tokensRange("t", 8)
	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, tokens...),
		mkBlock("b.go", 1, tokens...),
		mkBlock("c.go", 1, tokens...),
	}

	p := NewPairwise()
	groups := p.Match(blocks, Options{MinSize: 5, MinSimilarity: 0.8})
	if len(groups) != 3 {
		t.Fatalf("expected 3 pair groups, got %d", len(groups))
	}
	for _, g := range groups {
		if g.Similarity != 1.0 {
			t.Errorf("Similarity = %f, want 1.0", g.Similarity)
		}
		if len(g.Locations) != 2 {
			t.Errorf("pairwise groups have exactly 2 members, got %d", len(g.Locations))
		}
	}
}

func TestPairwiseMinSizeFilter(t *testing.T) {
	tokens := tokensRange("t", 4)
	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, tokens...),
		mkBlock("b.go", 1, tokens...),
	}

	p := NewPairwise()
	groups := p.Match(blocks, Options{MinSize: 5, MinSimilarity: 0.8})
	if len(groups) != 0 {
		t.Errorf("blocks below min size should be ignored, got %d groups", len(groups))
	}
}

func TestPairwiseOneLiteralDifference(t *testing.T) {
	shared := tokensRange("t", 9)
	a := append(append([]string{}, shared...), "100")
	b := append(append([]string{}, shared...), "100")
	c := append(append([]string{}, shared...), "999")

	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, a...),
		mkBlock("b.go", 1, b...),
		mkBlock("c.go", 1, c...),
	}

	p := NewPairwise()
	groups := p.Match(blocks, Options{MinSize: 5, MinSimilarity: 0.8})
	if len(groups) != 3 {
		t.Fatalf("expected 3 pair groups, got %d", len(groups))
	}

	// 9 shared tokens over a union of 11 for the pairs with c.
	mixed := 9.0 / 11.0
	exact := 0
	for _, g := range groups {
		if g.Similarity == 1.0 {
			exact++
			continue
		}
		if math.Abs(g.Similarity-mixed) > 1e-9 {
			t.Errorf("Similarity = %f, want %f", g.Similarity, mixed)
		}
	}
	if exact != 1 {
		t.Errorf("expected exactly one identical pair, got %d", exact)
	}
}

func TestPairwiseRepetitionInsensitive(t *testing.T) {
	// Same token set with different repetition counts still scores 1.0.
	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, "x", "y", "z", "x", "y"),
		mkBlock("b.go", 1, "z", "y", "x", "z", "z"),
	}

	p := NewPairwise()
	groups := p.Match(blocks, Options{MinSize: 3, MinSimilarity: 0.8})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Similarity != 1.0 {
		t.Errorf("Similarity = %f, want 1.0", groups[0].Similarity)
	}
}
