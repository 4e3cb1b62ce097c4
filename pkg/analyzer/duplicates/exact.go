package duplicates

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/panbanda/clonescan/pkg/models"
)

// Exact groups blocks whose full token sequences are identical
// (order- and repetition-sensitive). It only finds exact duplicates
// but runs in linear time and scales to very large trees.
type Exact struct{}

// Name implements Strategy.
func (Exact) Name() string { return "exact" }

// Match implements Strategy. Member order within a group follows
// first-seen order during the scan, so output is deterministic for a
// fixed input ordering.
func (Exact) Match(blocks []models.CodeBlock, opts Options) []models.DuplicateGroup {
	type bucket struct {
		tokens    []string
		locations []models.SourceLocation
	}

	byKey := make(map[[32]byte]*bucket)
	var order [][32]byte

	for _, b := range blocks {
		if !b.Valid() || b.Size() < opts.MinSize {
			continue
		}
		key := fingerprintTokens(b.Tokens)
		bk, ok := byKey[key]
		if !ok {
			bk = &bucket{tokens: b.Tokens}
			byKey[key] = bk
			order = append(order, key)
		}
		bk.locations = append(bk.locations, b.Location)
	}

	var groups []models.DuplicateGroup
	for _, key := range order {
		bk := byKey[key]
		if len(bk.locations) < 2 {
			continue
		}
		groups = append(groups, models.DuplicateGroup{
			Size:          len(bk.tokens),
			NumDuplicates: len(bk.locations),
			Locations:     bk.locations,
			CrossFile:     models.SpansFiles(bk.locations),
			Tokens:        bk.tokens,
			Similarity:    1.0,
		})
	}

	return groups
}

// fingerprintTokens hashes a token sequence into an identity key.
// Each token is length-prefixed so ["ab","c"] and ["a","bc"] produce
// different keys.
func fingerprintTokens(tokens []string) [32]byte {
	h := blake3.New()
	var lenBuf [4]byte
	for _, t := range tokens {
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(t)))
		h.Write(lenBuf[:])
		h.Write([]byte(t))
	}

	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}
