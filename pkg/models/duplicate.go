package models

// DuplicateGroup is a cluster of two or more code blocks judged
// equivalent by the active matching strategy.
//
// Invariants: NumDuplicates == len(Locations) >= 2; CrossFile is true
// iff Locations span more than one distinct file; Similarity is 1.0
// for exact-match groups and the Jaccard score for pairwise matches.
type DuplicateGroup struct {
	Size          int              `json:"size"`
	NumDuplicates int              `json:"num_duplicates"`
	Locations     []SourceLocation `json:"locations"`
	CrossFile     bool             `json:"cross_file"`
	Tokens        []string         `json:"tokens"`
	Similarity    float64          `json:"similarity"`
}

// SpansFiles reports whether the given locations cover more than one
// distinct file.
func SpansFiles(locations []SourceLocation) bool {
	if len(locations) < 2 {
		return false
	}
	first := locations[0].File
	for _, loc := range locations[1:] {
		if loc.File != first {
			return true
		}
	}
	return false
}
