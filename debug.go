package jmespath

import (
	"fmt"

	"github.com/kr/pretty"
)

// GoString renders a shallow, %#v-style summary of node. kr/pretty calls
// this instead of walking Children recursively, so nested dumps stay
// readable; use PrettyPrint for the full recursive tree.
func (node ASTNode) GoString() string {
	return fmt.Sprintf("ASTNode{NodeType: %s, Value: %#v, Children: %d}", node.NodeType, node.Value, len(node.Children))
}

// DebugDump tokenizes and parses expression and renders both the token
// stream and the resulting AST, the way the teacher's cmd/jp CLI dumped
// them interactively via github.com/kr/pretty. It's meant for ad hoc
// inspection of the lexer/parser, not for production output: the exact
// text is not a stable format.
func DebugDump(expression string) (string, error) {
	lexer := NewLexer()
	tokens, err := lexer.tokenize(expression)
	if err != nil {
		return "", err
	}
	parser := NewParser()
	ast, err := parser.Parse(expression)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("tokens:\n%# v\nast:\n%s\n", pretty.Formatter(tokens), ast.PrettyPrint(0)), nil
}
