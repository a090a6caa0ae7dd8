// Package pyast provides the parser capability for the analyzer: it turns
// python source into a flat list of import statements via tree-sitter.
package pyast

// ImportKind discriminates the two python import statement forms
type ImportKind string

const (
	// ImportPlain is a plain "import a.b" statement
	ImportPlain ImportKind = "import"
	// ImportFrom is a "from X import a, b" statement
	ImportFrom ImportKind = "from"
)

// ImportStatement is one import extracted from a file's syntax tree.
// It is a pure data record: resolution against the discovered module set
// happens later and has no access to the tree.
type ImportStatement struct {
	// Kind is the statement form
	Kind ImportKind `json:"kind"`

	// Module is the dotted path as written, without any leading dots.
	// Empty for a pure-relative "from . import x".
	Module string `json:"module"`

	// Level counts the leading dots of a relative from-import (0 for absolute)
	Level int `json:"level,omitempty"`

	// Names are the literal names bound by the statement: the alias (or
	// module path) for a plain import, each imported name for a from-import.
	// Empty for wildcard imports.
	Names []string `json:"names,omitempty"`

	// Wildcard is true for "from X import *"
	Wildcard bool `json:"wildcard,omitempty"`

	// Line is the 1-based source line of the statement
	Line int `json:"line"`
}
