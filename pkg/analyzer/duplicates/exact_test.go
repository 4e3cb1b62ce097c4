package duplicates

import (
	"testing"

	"github.com/panbanda/clonescan/pkg/models"
)

func mkBlock(file string, line int, tokens ...string) models.CodeBlock {
	return models.CodeBlock{
		Tokens: tokens,
		Location: models.SourceLocation{
			File:      file,
			StartLine: line,
			EndLine:   line + 5,
		},
		Kind: models.KindFunction,
	}
}

func TestExactGroupsIdenticalSequences(t *testing.T) {
	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, "x", "y", "z"),
		mkBlock("b.go", 10, "x", "y", "z"),
		mkBlock("c.go", 20, "x", "z", "y"),
	}

	groups := Exact{}.Match(blocks, Options{MinSize: 2})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	g := groups[0]
	if g.Size != 3 {
		t.Errorf("Size = %d, want 3", g.Size)
	}
	if g.NumDuplicates != 2 {
		t.Errorf("NumDuplicates = %d, want 2", g.NumDuplicates)
	}
	if g.Similarity != 1.0 {
		t.Errorf("Similarity = %f, want 1.0", g.Similarity)
	}
	if !g.CrossFile {
		t.Error("expected cross-file group")
	}
}

func TestExactIsOrderSensitive(t *testing.T) {
	// Same token set, different order: never grouped.
	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, "x", "y", "z"),
		mkBlock("b.go", 1, "z", "y", "x"),
	}

	groups := Exact{}.Match(blocks, Options{MinSize: 2})
	if len(groups) != 0 {
		t.Errorf("expected no groups for reordered tokens, got %d", len(groups))
	}
}

func TestExactTokenBoundariesMatter(t *testing.T) {
	// Concatenation is identical but the token split differs.
	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, "ab", "c"),
		mkBlock("b.go", 1, "a", "bc"),
	}

	groups := Exact{}.Match(blocks, Options{MinSize: 2})
	if len(groups) != 0 {
		t.Errorf("expected no groups across token boundaries, got %d", len(groups))
	}
}

func TestExactFirstSeenOrder(t *testing.T) {
	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, "p", "q", "r"),
		mkBlock("b.go", 1, "x", "y", "z"),
		mkBlock("c.go", 1, "x", "y", "z"),
		mkBlock("d.go", 1, "p", "q", "r"),
	}

	groups := Exact{}.Match(blocks, Options{MinSize: 2})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	// Groups in first-seen order of their first member.
	if groups[0].Locations[0].File != "a.go" {
		t.Errorf("first group should start at a.go, got %s", groups[0].Locations[0].File)
	}
	if groups[1].Locations[0].File != "b.go" {
		t.Errorf("second group should start at b.go, got %s", groups[1].Locations[0].File)
	}
	// Members in first-seen order.
	if groups[0].Locations[1].File != "d.go" {
		t.Errorf("second member should be d.go, got %s", groups[0].Locations[1].File)
	}
}

func TestExactSkipsSmallAndInvalidBlocks(t *testing.T) {
	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, "x", "y"),
		mkBlock("b.go", 1, "x", "y"),
		{Tokens: []string{"x", "y", "z"}}, // no location
		mkBlock("c.go", 1, "x", "y", "z"),
	}

	groups := Exact{}.Match(blocks, Options{MinSize: 3})
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestExactSameFileGroup(t *testing.T) {
	blocks := []models.CodeBlock{
		mkBlock("a.go", 1, "x", "y", "z"),
		mkBlock("a.go", 50, "x", "y", "z"),
	}

	groups := Exact{}.Match(blocks, Options{MinSize: 2})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].CrossFile {
		t.Error("single-file group should not be cross-file")
	}
}
