//go:build cgo

package pyast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser wraps tree-sitter for python source parsing.
// A Parser is not safe for concurrent use; create one per worker.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new tree-sitter python parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// ParseImports parses source and extracts every import statement in the
// tree, in source order. Malformed source is a parse failure: the analyzer
// excludes the file and continues, matching the contract for ParseError.
func (p *Parser) ParseImports(ctx context.Context, source []byte) ([]ImportStatement, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse produced no syntax tree")
	}
	if root.HasError() {
		return nil, fmt.Errorf("syntax error in source")
	}

	var stmts []ImportStatement
	collectImports(root, source, &stmts)
	return stmts, nil
}

// collectImports walks the tree and appends import statements wherever they
// occur, including inside function bodies and conditional blocks.
func collectImports(node *sitter.Node, source []byte, out *[]ImportStatement) {
	switch node.Type() {
	case "import_statement":
		*out = append(*out, plainImports(node, source)...)
		return
	case "import_from_statement":
		*out = append(*out, fromImport(node, source))
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child != nil {
			collectImports(child, source, out)
		}
	}
}

// plainImports handles "import a.b, c as d": one statement per target.
func plainImports(node *sitter.Node, source []byte) []ImportStatement {
	var stmts []ImportStatement
	line := int(node.StartPoint().Row) + 1

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}

		switch child.Type() {
		case "dotted_name":
			name := nodeText(child, source)
			stmts = append(stmts, ImportStatement{
				Kind:   ImportPlain,
				Module: name,
				Names:  []string{name},
				Line:   line,
			})
		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			aliasNode := child.ChildByFieldName("alias")
			if nameNode == nil {
				continue
			}
			bound := nodeText(nameNode, source)
			if aliasNode != nil {
				bound = nodeText(aliasNode, source)
			}
			stmts = append(stmts, ImportStatement{
				Kind:   ImportPlain,
				Module: nodeText(nameNode, source),
				Names:  []string{bound},
				Line:   line,
			})
		}
	}

	return stmts
}

// fromImport handles "from X import a, b as c" and "from ..pkg import *".
func fromImport(node *sitter.Node, source []byte) ImportStatement {
	stmt := ImportStatement{
		Kind: ImportFrom,
		Line: int(node.StartPoint().Row) + 1,
	}

	modNode := node.ChildByFieldName("module_name")
	if modNode != nil {
		raw := nodeText(modNode, source)
		for len(raw) > 0 && raw[0] == '.' {
			stmt.Level++
			raw = raw[1:]
		}
		stmt.Module = raw
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil || (modNode != nil && child.Equal(modNode)) {
			continue
		}

		switch child.Type() {
		case "wildcard_import":
			stmt.Wildcard = true
		case "dotted_name":
			stmt.Names = append(stmt.Names, nodeText(child, source))
		case "aliased_import":
			// The original name is what the statement imports; the alias
			// only renames the local binding.
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				stmt.Names = append(stmt.Names, nodeText(nameNode, source))
			}
		}
	}

	return stmt
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// IsAvailable returns whether the parser capability is available.
// Returns true when CGO is enabled.
func IsAvailable() bool {
	return true
}
