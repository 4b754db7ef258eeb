// Package testutil provides parse-based fixtures for testing jsplit components
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/jsplit/internal/parser"
)

// ParseJS parses JavaScript source and fails the test on error
func ParseJS(t testing.TB, source string) *parser.Node {
	t.Helper()
	p := parser.New(parser.JavaScript)
	defer p.Close()

	ast, err := p.Parse(context.Background(), "<input>", []byte(source))
	if err != nil {
		t.Fatalf("Failed to parse test code: %v", err)
	}
	return ast
}

// ParseTS parses TypeScript source and fails the test on error
func ParseTS(t testing.TB, source string) *parser.Node {
	t.Helper()
	p := parser.New(parser.TypeScript)
	defer p.Close()

	ast, err := p.Parse(context.Background(), "<input>", []byte(source))
	if err != nil {
		t.Fatalf("Failed to parse test code: %v", err)
	}
	return ast
}

// FindFunction returns the first function literal whose own name, or the
// name of the binding it initializes, is name
func FindFunction(t testing.TB, root *parser.Node, name string) *parser.Node {
	t.Helper()

	var found *parser.Node
	root.Walk(func(n *parser.Node) bool {
		if found != nil {
			return false
		}
		if n.IsFunction() && functionName(n) == name {
			found = n
			return false
		}
		return true
	})

	if found == nil {
		t.Fatalf("function %q not found", name)
	}
	return found
}

// FindFirst returns the first node of the given type in source order, or nil
func FindFirst(root *parser.Node, nodeType parser.NodeType) *parser.Node {
	var found *parser.Node
	root.Walk(func(n *parser.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == nodeType {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node of the given type in source order
func FindAll(root *parser.Node, nodeType parser.NodeType) []*parser.Node {
	var nodes []*parser.Node
	root.Walk(func(n *parser.Node) bool {
		if n.Type == nodeType {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// WriteFile writes content below dir, creating parent directories
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimLeft(content, "\n")), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func functionName(n *parser.Node) string {
	if n.Name != "" {
		return n.Name
	}
	parent := n.Parent
	if parent == nil {
		return ""
	}
	switch parent.Type {
	case parser.NodeVariableDeclarator:
		if parent.ID != nil {
			return parent.ID.Name
		}
	case parser.NodeProperty, parser.NodeClassProperty:
		return parent.Name
	}
	return ""
}
