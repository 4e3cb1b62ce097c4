package models

// SourceLocation identifies a span of lines within a source file.
// Line numbers are 1-based. EndLine is 0 when the extractor could not
// determine where the block ends.
type SourceLocation struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line,omitempty"`
}

// BlockKind categorizes the structural node a block was extracted from.
type BlockKind string

const (
	KindFunction  BlockKind = "function"
	KindMethod    BlockKind = "method"
	KindClass     BlockKind = "class"
	KindStruct    BlockKind = "struct"
	KindInterface BlockKind = "interface"
	KindEnum      BlockKind = "enum"
	KindVariable  BlockKind = "variable"
)

// CodeBlock is one structurally-matched region of source code reduced
// to its lexical atoms. Tokens holds identifiers and literal spellings
// in document order; purely syntactic tokens (keywords, braces,
// operators) are not included. A CodeBlock is created once during
// extraction and never mutated afterwards.
type CodeBlock struct {
	Tokens   []string       `json:"tokens"`
	Location SourceLocation `json:"location"`
	Kind     BlockKind      `json:"kind,omitempty"`
}

// Size returns the token count of the block.
func (b CodeBlock) Size() int {
	return len(b.Tokens)
}

// Valid reports whether the block carries enough information to be
// matched. Malformed blocks are skipped by the matcher rather than
// crashing it.
func (b CodeBlock) Valid() bool {
	return len(b.Tokens) > 0 && b.Location.File != "" && b.Location.StartLine > 0
}
