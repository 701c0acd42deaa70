package jmespath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestASTNodeEqualIsStructural(t *testing.T) {
	assert := assert.New(t)
	a := ASTNode{NodeType: ASTField, Value: "foo"}
	b := ASTNode{NodeType: ASTField, Value: "foo"}
	c := ASTNode{NodeType: ASTField, Value: "bar"}
	assert.True(a.Equal(b))
	assert.False(a.Equal(c))

	nested1 := ASTNode{NodeType: ASTSubexpression, Children: []ASTNode{a, c}}
	nested2 := ASTNode{NodeType: ASTSubexpression, Children: []ASTNode{a, c}}
	nested3 := ASTNode{NodeType: ASTSubexpression, Children: []ASTNode{a, b}}
	assert.True(nested1.Equal(nested2))
	assert.False(nested1.Equal(nested3))
}

func TestASTNodePrettyPrintIncludesTypeAndChildren(t *testing.T) {
	assert := assert.New(t)
	node := ASTNode{
		NodeType: ASTSubexpression,
		Children: []ASTNode{
			{NodeType: ASTField, Value: "foo"},
			{NodeType: ASTField, Value: "bar"},
		},
	}
	out := node.PrettyPrint(0)
	assert.True(strings.Contains(out, "ASTSubexpression"))
	assert.True(strings.Contains(out, "ASTField"))
	assert.True(strings.Contains(out, "foo"))
	assert.True(strings.Contains(out, "bar"))
}

func TestIsProjectionCoversProjectingVariants(t *testing.T) {
	assert := assert.New(t)
	assert.True(ASTNode{NodeType: ASTProjection}.isProjection())
	assert.True(ASTNode{NodeType: ASTValueProjection}.isProjection())
	assert.True(ASTNode{NodeType: ASTFilterProjection}.isProjection())
	assert.False(ASTNode{NodeType: ASTSubexpression}.isProjection())
	assert.False(ASTNode{NodeType: ASTField}.isProjection())
}

func TestIsProjectionForIndexExpressionDependsOnBracket(t *testing.T) {
	assert := assert.New(t)
	sliceIndex := ASTNode{
		NodeType: ASTIndexExpression,
		Children: []ASTNode{
			{NodeType: ASTIdentity},
			{NodeType: ASTSlice, Value: []*int{nil, nil, nil}},
		},
	}
	assert.True(sliceIndex.isProjection())

	plainIndex := ASTNode{
		NodeType: ASTIndexExpression,
		Children: []ASTNode{
			{NodeType: ASTIdentity},
			{NodeType: ASTIndex, Value: 0},
		},
	}
	assert.False(plainIndex.isProjection())
}

func TestStopsProjectionOnlyForPipe(t *testing.T) {
	assert := assert.New(t)
	assert.True(ASTNode{NodeType: ASTPipe}.stopsProjection())
	assert.False(ASTNode{NodeType: ASTSubexpression}.stopsProjection())
	assert.False(ASTNode{NodeType: ASTProjection}.stopsProjection())
}
