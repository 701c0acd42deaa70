package jmespath

import (
	"fmt"
	"reflect"
	"strings"
)

// ASTNodeType identifies the concrete variant held by an ASTNode. It is the
// tag of the tagged union described by the grammar: every node produced by
// the parser carries exactly one of these.
type ASTNodeType int

//go:generate stringer -type ASTNodeType
const (
	ASTEmpty ASTNodeType = iota
	ASTComparator
	ASTCurrentNode
	ASTExpRef
	ASTFunctionExpression
	ASTField
	ASTFilterProjection
	ASTFlatten
	ASTIdentity
	ASTIndex
	ASTIndexExpression
	ASTKeyValPair
	ASTLiteral
	ASTMultiSelectHash
	ASTMultiSelectList
	ASTOrExpression
	ASTAndExpression
	ASTNotExpression
	ASTPipe
	ASTProjection
	ASTSubexpression
	ASTSlice
	ASTValueProjection
)

var astNodeTypeNames = [...]string{
	"ASTEmpty",
	"ASTComparator",
	"ASTCurrentNode",
	"ASTExpRef",
	"ASTFunctionExpression",
	"ASTField",
	"ASTFilterProjection",
	"ASTFlatten",
	"ASTIdentity",
	"ASTIndex",
	"ASTIndexExpression",
	"ASTKeyValPair",
	"ASTLiteral",
	"ASTMultiSelectHash",
	"ASTMultiSelectList",
	"ASTOrExpression",
	"ASTAndExpression",
	"ASTNotExpression",
	"ASTPipe",
	"ASTProjection",
	"ASTSubexpression",
	"ASTSlice",
	"ASTValueProjection",
}

// String implements fmt.Stringer for ASTNodeType, normally produced by
// `go generate` via stringer; kept hand-written here in lockstep with the
// const block above.
func (t ASTNodeType) String() string {
	if t < 0 || int(t) >= len(astNodeTypeNames) {
		return fmt.Sprintf("ASTNodeType(%d)", int(t))
	}
	return astNodeTypeNames[t]
}

// ASTNode is the uniform carrier for every expression node kind. A zero
// value (NodeType == ASTEmpty) is the identity/neutral node used as an
// empty slot while the parser assembles partial trees. The interpreter
// evaluates it like the current node, returning its input unchanged,
// which is what Search on a zero JMESPath does.
type ASTNode struct {
	NodeType ASTNodeType
	Value    interface{}
	Children []ASTNode
}

func (node ASTNode) String() string {
	return node.PrettyPrint(0)
}

// PrettyPrint renders the parsed AST for debugging. The AST shape is an
// implementation detail; don't parse this output.
func (node ASTNode) PrettyPrint(indent int) string {
	spaces := strings.Repeat(" ", indent)
	output := fmt.Sprintf("%s%s {\n", spaces, node.NodeType)
	nextIndent := indent + 2
	if node.Value != nil {
		if converted, ok := node.Value.(fmt.Stringer); ok {
			// Account for things like comparator nodes
			// that are enums with a String() method.
			output += fmt.Sprintf("%svalue: %s\n", strings.Repeat(" ", nextIndent), converted.String())
		} else {
			output += fmt.Sprintf("%svalue: %#v\n", strings.Repeat(" ", nextIndent), node.Value)
		}
	}
	if len(node.Children) > 0 {
		output += fmt.Sprintf("%schildren: {\n", strings.Repeat(" ", nextIndent))
		childIndent := nextIndent + 2
		for _, elem := range node.Children {
			output += elem.PrettyPrint(childIndent)
		}
	}
	output += fmt.Sprintf("%s}\n", spaces)
	return output
}

// Equal reports whether two nodes are structurally identical: same node
// type, same value, and recursively equal children. This is what backs
// JMESPath.Equals (spec §6).
func (node ASTNode) Equal(other ASTNode) bool {
	if node.NodeType != other.NodeType {
		return false
	}
	if !reflect.DeepEqual(node.Value, other.Value) {
		return false
	}
	if len(node.Children) != len(other.Children) {
		return false
	}
	for i := range node.Children {
		if !node.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// isProjection reports whether this node spawns an element-wise fan-out
// over its right child once evaluated (spec §3, "Projection?" column).
func (node ASTNode) isProjection() bool {
	switch node.NodeType {
	case ASTProjection, ASTValueProjection, ASTFilterProjection:
		return true
	case ASTIndexExpression:
		if len(node.Children) == 2 {
			return node.Children[1].NodeType == ASTSlice
		}
	}
	return false
}

// stopsProjection reports whether this node terminates a running
// projection rather than passing it through. Per spec §4.2/§4.3 this is
// true only for ParenExpression and PipeExpression; this implementation
// has no separate ParenExpression node (a parenthesized expression is
// just whatever it contains, per the teacher's nud(tLparen)), so only
// ASTPipe applies here.
func (node ASTNode) stopsProjection() bool {
	return node.NodeType == ASTPipe
}
