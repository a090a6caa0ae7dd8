//go:build !cgo

package pyast

import (
	"context"
	"errors"
)

// ErrNoCGO is returned when parsing is unavailable due to missing CGO.
var ErrNoCGO = errors.New("python parsing requires CGO (tree-sitter)")

// Parser wraps tree-sitter for python source parsing.
// This is a stub implementation for non-CGO builds.
type Parser struct{}

// NewParser creates a new tree-sitter python parser.
// Returns nil when CGO is disabled.
func NewParser() *Parser {
	return nil
}

// ParseImports is unavailable without CGO.
func (p *Parser) ParseImports(ctx context.Context, source []byte) ([]ImportStatement, error) {
	return nil, ErrNoCGO
}

// IsAvailable returns whether the parser capability is available.
// Returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
