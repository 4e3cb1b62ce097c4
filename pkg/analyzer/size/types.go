package size

import "github.com/panbanda/clonescan/pkg/models"

// Analysis is the full size analysis result.
type Analysis struct {
	LargeFiles          []models.LargeFile  `json:"large_files"`
	LargeClasses        []models.LargeClass `json:"large_classes"`
	TotalFilesAnalyzed  int                 `json:"total_files_analyzed"`
	LargeFileThreshold  int                 `json:"large_file_threshold"`
	LargeClassThreshold int                 `json:"large_class_threshold"`
	TopN                int                 `json:"top_n"`
}
