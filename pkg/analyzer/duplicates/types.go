package duplicates

import (
	"github.com/panbanda/clonescan/pkg/models"
)

// Analysis is the full duplicate detection result for one run.
type Analysis struct {
	Groups            []models.DuplicateGroup `json:"groups"`
	Summary           Summary                 `json:"summary"`
	TotalFilesScanned int                     `json:"total_files_scanned"`
	SkippedFiles      []SkippedFile           `json:"skipped_files,omitempty"`
	TotalBlocks       int                     `json:"total_blocks"`
	MinSize           int                     `json:"min_size"`
	MinSimilarity     float64                 `json:"min_similarity"`
	Strategy          string                  `json:"strategy"`
}

// SkippedFile records a file that contributed no blocks and why.
type SkippedFile struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Summary provides aggregate statistics over the reported groups.
type Summary struct {
	TotalGroups     int            `json:"total_groups"`
	TotalDuplicates int            `json:"total_duplicates"`
	CrossFileGroups int            `json:"cross_file_groups"`
	FileOccurrences map[string]int `json:"file_occurrences"`
	AvgSimilarity   float64        `json:"avg_similarity"`
	P50Similarity   float64        `json:"p50_similarity"`
	P95Similarity   float64        `json:"p95_similarity"`
}

// NewSummary creates an initialized summary.
func NewSummary() Summary {
	return Summary{
		FileOccurrences: make(map[string]int),
	}
}

// AddGroup updates the summary with a new group.
func (s *Summary) AddGroup(g models.DuplicateGroup) {
	s.TotalGroups++
	s.TotalDuplicates += g.NumDuplicates
	if g.CrossFile {
		s.CrossFileGroups++
	}
	for _, loc := range g.Locations {
		s.FileOccurrences[loc.File]++
	}
}
