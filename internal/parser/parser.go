package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// Dialect selects the grammar a file is parsed with
type Dialect int

const (
	// JavaScript covers .js, .mjs, .cjs and .jsx files
	JavaScript Dialect = iota
	// TypeScript covers .ts, .tsx, .mts and .cts files. The tsx grammar is
	// a superset, so one grammar serves both.
	TypeScript
)

func (d Dialect) String() string {
	if d == TypeScript {
		return "typescript"
	}
	return "javascript"
}

func (d Dialect) language() *sitter.Language {
	if d == TypeScript {
		return tsx.GetLanguage()
	}
	return javascript.GetLanguage()
}

// DialectOf picks the dialect from the file extension
func DialectOf(filename string) Dialect {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return TypeScript
	}
	return JavaScript
}

// Parser turns source text into the Node tree. A Parser is not safe for
// concurrent use; create one per goroutine.
type Parser struct {
	ts      *sitter.Parser
	dialect Dialect
}

// New creates a parser for dialect d
func New(d Dialect) *Parser {
	ts := sitter.NewParser()
	ts.SetLanguage(d.language())
	return &Parser{ts: ts, dialect: d}
}

// Dialect returns the grammar of p
func (p *Parser) Dialect() Dialect {
	return p.dialect
}

// Parse builds the tree for source. filename only labels node locations.
// Syntax errors do not fail the parse; tree-sitter recovers and the
// broken region is dropped from the tree.
func (p *Parser) Parse(ctx context.Context, filename string, source []byte) (*Node, error) {
	tree, err := p.ts.ParseCtx(ctx, nil, source)
	if tree == nil {
		if err == nil {
			err = fmt.Errorf("no syntax tree produced")
		}
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse %s: empty syntax tree", filename)
	}
	return NewASTBuilder(filename, source).Build(root), nil
}

// Close releases the tree-sitter parser
func (p *Parser) Close() {
	if p.ts != nil {
		p.ts.Close()
	}
}

// ParseSource parses source with the dialect its filename implies
func ParseSource(ctx context.Context, filename string, source []byte) (*Node, error) {
	p := New(DialectOf(filename))
	defer p.Close()
	return p.Parse(ctx, filename, source)
}
