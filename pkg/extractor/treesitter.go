package extractor

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/panbanda/clonescan/pkg/models"
	"github.com/panbanda/clonescan/pkg/parser"
)

// treeSitterExtractor extracts blocks for grammar-provider languages
// by running the language's structural query and harvesting tokens
// from each captured subtree.
type treeSitterExtractor struct {
	provider *parser.Provider
	lang     parser.Language
	query    []byte
}

func (e *treeSitterExtractor) Extract(path string, source []byte) ([]models.CodeBlock, error) {
	if len(e.query) == 0 {
		return nil, fmt.Errorf("no structural query for language %s", e.lang)
	}

	psr, err := e.provider.GetParser(e.lang)
	if err != nil {
		return nil, err
	}

	tree, err := psr.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	q, err := e.provider.CompileQuery(e.lang, e.query)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	var blocks []models.CodeBlock
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}

		for _, cap := range match.Captures {
			tokens := harvestTokens(cap.Node, source)
			if len(tokens) == 0 {
				continue
			}
			blocks = append(blocks, models.CodeBlock{
				Tokens: tokens,
				Location: models.SourceLocation{
					File:      path,
					StartLine: int(cap.Node.StartPoint().Row) + 1,
					EndLine:   int(cap.Node.EndPoint().Row) + 1,
				},
				Kind: models.BlockKind(q.CaptureNameForId(cap.Index)),
			})
		}
	}

	return blocks, nil
}

// harvestTokens collects identifier and literal tokens from the
// subtree in depth-first order, discarding purely syntactic nodes
// (keywords, braces, operators).
func harvestTokens(node *sitter.Node, source []byte) []string {
	var tokens []string
	parser.Walk(node, source, func(n *sitter.Node, src []byte) bool {
		t := n.Type()
		if isLiteralNode(t) {
			tokens = append(tokens, parser.GetNodeText(n, src))
			// A literal's children are quote marks and fragments;
			// the whole literal is one token.
			return false
		}
		if n.ChildCount() == 0 && isIdentifierNode(t) {
			tokens = append(tokens, parser.GetNodeText(n, src))
		}
		return true
	})
	return tokens
}

// isIdentifierNode matches identifier-like node kinds across grammars
// (identifier, type_identifier, property_identifier, ...).
func isIdentifierNode(nodeType string) bool {
	return nodeType == "identifier" || strings.HasSuffix(nodeType, "_identifier")
}

// literalNodeTypes covers string and numeric literal kinds across the
// supported grammars.
var literalNodeTypes = map[string]bool{
	// python
	"string":  true,
	"integer": true,
	"float":   true,
	// javascript / typescript
	"number":          true,
	"template_string": true,
	// csharp
	"string_literal":                 true,
	"integer_literal":                true,
	"real_literal":                   true,
	"character_literal":              true,
	"verbatim_string_literal":        true,
	"interpolated_string_expression": true,
}

func isLiteralNode(nodeType string) bool {
	return literalNodeTypes[nodeType]
}
