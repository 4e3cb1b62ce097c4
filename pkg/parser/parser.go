// Package parser provides language detection and tree-sitter grammar
// access for the block extractor.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language represents a supported programming language.
type Language string

const (
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangCSharp     Language = "csharp"
	LangUnknown    Language = "unknown"
)

// String returns the language name.
func (l Language) String() string {
	return string(l)
}

// Native reports whether the language is parsed with the Go standard
// library toolchain instead of a tree-sitter grammar.
func (l Language) Native() bool {
	return l == LangGo
}

// DetectLanguage determines the language from a file path.
// Dispatch is strictly by normalized file extension.
func DetectLanguage(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return LangGo
	case ".py", ".pyw", ".pyi":
		return LangPython
	case ".js", ".mjs", ".cjs":
		return LangJavaScript
	case ".jsx":
		return LangTSX // TSX grammar handles JSX syntax
	case ".ts":
		return LangTypeScript
	case ".tsx":
		return LangTSX
	case ".cs":
		return LangCSharp
	default:
		return LangUnknown
	}
}

// GetTreeSitterLanguage returns the tree-sitter grammar for a language.
// Go has no grammar here; it is parsed natively.
func GetTreeSitterLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangPython:
		return python.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangCSharp:
		return csharp.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// SupportedLanguages returns every language the extractor understands,
// including the natively-parsed one.
func SupportedLanguages() []Language {
	return []Language{
		LangGo,
		LangPython,
		LangJavaScript,
		LangTypeScript,
		LangTSX,
		LangCSharp,
	}
}

// GetNodeText extracts the source text for a node.
// Returns empty string if node is nil or byte offsets are out of bounds.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}

// Walk traverses the subtree rooted at node in depth-first order,
// calling visitor for each node. Returning false from the visitor
// prunes the node's children.
func Walk(node *sitter.Node, source []byte, visitor func(node *sitter.Node, source []byte) bool) {
	if node == nil {
		return
	}

	if !visitor(node, source) {
		return
	}

	for i := range int(node.ChildCount()) {
		Walk(node.Child(i), source, visitor)
	}
}
