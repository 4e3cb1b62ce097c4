package models

// TodoComment is a work marker (TODO, FIXME, and friends) found in a
// source comment.
type TodoComment struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Marker string `json:"marker"`
	Text   string `json:"text"`
}

// LargeFile is a file whose total token count exceeds the configured
// threshold.
type LargeFile struct {
	File       string   `json:"file"`
	TokenCount int      `json:"token_count"`
	Threshold  int      `json:"threshold"`
	Severity   Severity `json:"severity"`
}

// LargeClass is a class-like block whose token count exceeds the
// configured threshold.
type LargeClass struct {
	Name       string         `json:"name"`
	Location   SourceLocation `json:"location"`
	TokenCount int            `json:"token_count"`
	Threshold  int            `json:"threshold"`
	Severity   Severity       `json:"severity"`
}
