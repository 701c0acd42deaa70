package jmespath

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUncompiledExpressionSearches(t *testing.T) {
	assert := assert.New(t)
	var j = []byte(`{"foo": {"bar": {"baz": [0, 1, 2, 3, 4]}}}`)
	var d interface{}
	err := json.Unmarshal(j, &d)
	assert.Nil(err)
	result, err := Search("foo.bar.baz[2]", d)
	assert.Nil(err)
	assert.Equal(2.0, result)
}

func TestValidPrecompiledExpressionSearches(t *testing.T) {
	assert := assert.New(t)
	data := make(map[string]interface{})
	data["foo"] = "bar"
	precompiled, err := Compile("foo")
	assert.Nil(err)
	result, err := precompiled.Search(data)
	assert.Nil(err)
	assert.Equal("bar", result)
}

func TestInvalidPrecompileErrors(t *testing.T) {
	assert := assert.New(t)
	_, err := Compile("not a valid expression")
	assert.NotNil(err)
}

func TestInvalidMustCompilePanics(t *testing.T) {
	defer func() {
		r := recover()
		assert.NotNil(t, r)
	}()
	MustCompile("not a valid expression")
}

func TestSourceReturnsOriginalExpression(t *testing.T) {
	assert := assert.New(t)
	jp, err := Compile("foo.bar[*].baz")
	assert.Nil(err)
	assert.Equal("foo.bar[*].baz", jp.Source())
}

func TestZeroValueIsEmpty(t *testing.T) {
	assert := assert.New(t)
	var jp JMESPath
	assert.True(jp.IsEmpty())

	compiled, err := Compile("foo")
	assert.Nil(err)
	assert.False(compiled.IsEmpty())
}

func TestEqualsComparesSourceAndAST(t *testing.T) {
	assert := assert.New(t)
	a, err := Compile("foo.bar")
	assert.Nil(err)
	b, err := Compile("foo.bar")
	assert.Nil(err)
	c, err := Compile("foo.baz")
	assert.Nil(err)

	assert.True(a.Equals(b))
	assert.False(a.Equals(c))
	assert.False(a.Equals(nil))
}

func TestRecompileReplacesExpression(t *testing.T) {
	assert := assert.New(t)
	jp, err := Compile("foo")
	assert.Nil(err)

	err = jp.Recompile("bar")
	assert.Nil(err)
	assert.Equal("bar", jp.Source())

	result, err := jp.Search(map[string]interface{}{"bar": "baz"})
	assert.Nil(err)
	assert.Equal("baz", result)
}

func TestRecompileLeavesHandleUnchangedOnError(t *testing.T) {
	assert := assert.New(t)
	jp, err := Compile("foo")
	assert.Nil(err)

	err = jp.Recompile("not a valid expression")
	assert.NotNil(err)
	assert.Equal("foo", jp.Source())
}
