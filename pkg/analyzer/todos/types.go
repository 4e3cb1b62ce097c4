package todos

import "github.com/panbanda/clonescan/pkg/models"

// Analysis is the full work-marker scan result.
type Analysis struct {
	Items              []models.TodoComment `json:"items"`
	Summary            Summary              `json:"summary"`
	TotalFilesAnalyzed int                  `json:"total_files_analyzed"`
	FilesWithTodos     int                  `json:"files_with_todos"`
}

// Summary provides aggregate statistics.
type Summary struct {
	TotalItems int            `json:"total_items"`
	ByMarker   map[string]int `json:"by_marker"`
	ByFile     map[string]int `json:"by_file"`
}

// NewSummary creates an initialized summary.
func NewSummary() Summary {
	return Summary{
		ByMarker: make(map[string]int),
		ByFile:   make(map[string]int),
	}
}

// AddItem updates the summary with a new marker.
func (s *Summary) AddItem(item models.TodoComment) {
	s.TotalItems++
	s.ByMarker[item.Marker]++
	s.ByFile[item.File]++
}
