package jmespath

import (
	"strconv"
	"sync"
)

// JMESPath is a compiled JMESPath expression. The zero value is the
// empty expression: IsEmpty reports true for it, and Search on it
// returns the input data unchanged.
//
// A *JMESPath is safe for concurrent Search calls from multiple
// goroutines: each Search builds its own treeInterpreter, and evaluation
// does not modify jp's AST.
// Recompile is the only mutating method and takes its own lock, so it
// is also safe to call concurrently with Search, though a Search in
// flight when Recompile runs may see either the old or the new AST.
type JMESPath struct {
	mu     sync.RWMutex
	source string
	ast    ASTNode
}

// Compile parses a JMESPath expression and returns, if successful, a
// JMESPath that can be evaluated against data with Search.
func Compile(expression string) (*JMESPath, error) {
	parser := NewParser()
	ast, err := parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	return &JMESPath{source: expression, ast: ast}, nil
}

// MustCompile is like Compile but panics if the expression cannot be
// parsed. It simplifies safe initialization of global variables holding
// compiled JMESPaths.
func MustCompile(expression string) *JMESPath {
	jp, err := Compile(expression)
	if err != nil {
		panic(`jmespath: Compile(` + strconv.Quote(expression) + `): ` + err.Error())
	}
	return jp
}

// Recompile replaces the expression held by jp with a freshly parsed
// one, leaving jp untouched if parsing fails.
func (jp *JMESPath) Recompile(expression string) error {
	parser := NewParser()
	ast, err := parser.Parse(expression)
	if err != nil {
		return err
	}
	jp.mu.Lock()
	defer jp.mu.Unlock()
	jp.source = expression
	jp.ast = ast
	return nil
}

// Source returns the expression text jp was compiled from.
func (jp *JMESPath) Source() string {
	jp.mu.RLock()
	defer jp.mu.RUnlock()
	return jp.source
}

// IsEmpty reports whether jp holds no real expression. This is only
// true for the zero value JMESPath{}; Compile never produces it, since
// an empty expression string is a syntax error.
func (jp *JMESPath) IsEmpty() bool {
	jp.mu.RLock()
	defer jp.mu.RUnlock()
	return jp.ast.NodeType == ASTEmpty
}

// Equals reports whether jp and other were compiled from identical
// source text and so hold structurally identical ASTs.
func (jp *JMESPath) Equals(other *JMESPath) bool {
	if jp == other {
		return true
	}
	if other == nil {
		return false
	}
	jp.mu.RLock()
	defer jp.mu.RUnlock()
	other.mu.RLock()
	defer other.mu.RUnlock()
	return jp.source == other.source && jp.ast.Equal(other.ast)
}

// Search evaluates the compiled expression against data and returns the
// result.
func (jp *JMESPath) Search(data interface{}) (interface{}, error) {
	jp.mu.RLock()
	ast := jp.ast
	jp.mu.RUnlock()
	intr := newInterpreter(data)
	return intr.Execute(ast, data)
}

// Search parses expression and evaluates it against data in one step.
// Prefer Compile when the same expression will be evaluated more than
// once.
func Search(expression string, data interface{}) (interface{}, error) {
	parser := NewParser()
	ast, err := parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	intr := newInterpreter(data)
	return intr.Execute(ast, data)
}
