package jmespath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugDumpRendersTokensAndAST(t *testing.T) {
	assert := assert.New(t)
	out, err := DebugDump("foo.bar[*].baz")
	assert.Nil(err)
	assert.True(strings.Contains(out, "tokens:"))
	assert.True(strings.Contains(out, "ast:"))
	assert.True(strings.Contains(out, "ASTField"))
}

func TestDebugDumpPropagatesSyntaxErrors(t *testing.T) {
	assert := assert.New(t)
	_, err := DebugDump("foo.")
	assert.NotNil(err)
}

func TestASTNodeGoStringIsShallow(t *testing.T) {
	assert := assert.New(t)
	node := ASTNode{NodeType: ASTField, Value: "foo"}
	s := node.GoString()
	assert.True(strings.Contains(s, "ASTField"))
	assert.True(strings.Contains(s, `"foo"`))
}
