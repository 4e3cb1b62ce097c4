package extractor

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"

	"github.com/panbanda/clonescan/pkg/models"
)

// goExtractor walks Go's own syntax tree, no grammar required.
type goExtractor struct{}

// Extract emits one block per function, method, struct, and interface
// declaration. The first token is the declared name, followed by every
// identifier and literal in the declaration's subtree in depth-first
// order. A file-level syntax error yields zero blocks.
func (goExtractor) Extract(path string, source []byte) ([]models.CodeBlock, error) {
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, path, source, 0)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	var blocks []models.CodeBlock
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			kind := models.KindFunction
			if d.Recv != nil {
				kind = models.KindMethod
			}
			blocks = append(blocks, goBlock(fset, path, d.Name, d, kind))
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				var kind models.BlockKind
				switch ts.Type.(type) {
				case *ast.StructType:
					kind = models.KindStruct
				case *ast.InterfaceType:
					kind = models.KindInterface
				default:
					continue
				}
				blocks = append(blocks, goBlock(fset, path, ts.Name, ts, kind))
			}
		}
	}

	return blocks, nil
}

// goBlock synthesizes a code block from a declaration node.
func goBlock(fset *token.FileSet, path string, name *ast.Ident, node ast.Node, kind models.BlockKind) models.CodeBlock {
	tokens := []string{name.Name}
	ast.Inspect(node, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Ident:
			if v != name {
				tokens = append(tokens, v.Name)
			}
		case *ast.BasicLit:
			// Literal source text, not semantic value: "0x10" and "16"
			// are distinct tokens on purpose.
			tokens = append(tokens, v.Value)
		}
		return true
	})

	return models.CodeBlock{
		Tokens: tokens,
		Location: models.SourceLocation{
			File:      path,
			StartLine: fset.Position(node.Pos()).Line,
			EndLine:   fset.Position(node.End()).Line,
		},
		Kind: kind,
	}
}
