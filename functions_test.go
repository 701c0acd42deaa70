package jmespath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBuiltinFunctions exercises each built-in directly through Search,
// one or more table entries per function, covering the success path and the
// couple of edge cases (empty input, type coercion) spec §4.5 calls out.
func TestBuiltinFunctions(t *testing.T) {
	cases := []struct {
		name       string
		expression string
		data       interface{}
		expected   interface{}
	}{
		{"avg", "avg(@)", []interface{}{2.0, 4.0, 6.0}, 4.0},
		{"avg empty", "avg(@)", []interface{}{}, nil},
		{"ceil", "ceil(@)", 1.2, 2.0},
		{"ceil negative", "ceil(@)", -1.2, -1.0},
		{"floor", "floor(@)", 1.8, 1.0},
		{"floor negative", "floor(@)", -1.8, -2.0},
		{"ends_with true", "ends_with(@, 'lo')", "hello", true},
		{"ends_with false", "ends_with(@, 'x')", "hello", false},
		{"starts_with true", "starts_with(@, 'he')", "hello", true},
		{"starts_with false", "starts_with(@, 'x')", "hello", false},
		{"join", "join(', ', @)", []interface{}{"a", "b", "c"}, "a, b, c"},
		{"join empty", "join(',', @)", []interface{}{}, ""},
		{"keys", "keys(@)", map[string]interface{}{"a": 1.0, "b": 2.0}, []interface{}{"a", "b"}},
		{"values", "values(@)", map[string]interface{}{"a": 1.0, "b": 2.0}, []interface{}{1.0, 2.0}},
		{"max numbers", "max(@)", []interface{}{3.0, 1.0, 2.0}, 3.0},
		{"max strings", "max(@)", []interface{}{"a", "c", "b"}, "c"},
		{"min numbers", "min(@)", []interface{}{3.0, 1.0, 2.0}, 1.0},
		{"min strings", "min(@)", []interface{}{"a", "c", "b"}, "a"},
		{
			"min_by",
			"min_by(@, &age)",
			[]interface{}{
				map[string]interface{}{"name": "a", "age": 30.0},
				map[string]interface{}{"name": "b", "age": 10.0},
			},
			map[string]interface{}{"name": "b", "age": 10.0},
		},
		{"not_null first", "not_null(a, b, c)", map[string]interface{}{"a": nil, "b": 2.0, "c": 3.0}, 2.0},
		{"not_null all null", "not_null(a, b)", map[string]interface{}{"a": nil, "b": nil}, nil},
		{"sort numbers", "sort(@)", []interface{}{3.0, 1.0, 2.0}, []interface{}{1.0, 2.0, 3.0}},
		{"sort strings", "sort(@)", []interface{}{"c", "a", "b"}, []interface{}{"a", "b", "c"}},
		{"sum", "sum(@)", []interface{}{1.0, 2.0, 3.0}, 6.0},
		{"sum empty", "sum(@)", []interface{}{}, 0.0},
		{"to_array array", "to_array(@)", []interface{}{1.0}, []interface{}{1.0}},
		{"to_array scalar", "to_array(@)", "x", []interface{}{"x"}},
		{"to_number from string", "to_number(@)", "1.5", 1.5},
		{"to_number from number", "to_number(@)", 4.0, 4.0},
		{"to_number unparsable", "to_number(@)", "not a number", nil},
		{"type number", "type(@)", 1.0, "number"},
		{"type string", "type(@)", "x", "string"},
		{"type boolean", "type(@)", true, "boolean"},
		{"type null", "type(@)", nil, "null"},
		{"type array", "type(@)", []interface{}{}, "array"},
		{"type object", "type(@)", map[string]interface{}{}, "object"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := Search(c.expression, c.data)
			assert.Nil(t, err)
			assert.Equal(t, c.expected, result)
		})
	}
}

// merge's registry entry must accept zero arguments (spec §4.5: arity
// "≥ 0"), returning {} rather than raising an ArityError.
func TestMergeAcceptsZeroArguments(t *testing.T) {
	result, err := Search("merge()", map[string]interface{}{})
	assert.Nil(t, err)
	om, ok := result.(*orderedMap)
	if assert.True(t, ok, "merge() should return an *orderedMap") {
		assert.Equal(t, 0, om.Len())
	}
}

// merge overwrites a repeated key's value from later arguments while
// keeping every key's first-seen position (spec §5's ordering
// guarantee for merge).
func TestMergeOverwritesAndPreservesOrder(t *testing.T) {
	data := map[string]interface{}{
		"a": map[string]interface{}{"x": 1.0, "y": 2.0},
		"b": map[string]interface{}{"y": 3.0, "z": 4.0},
	}
	result, err := Search("merge(a, b)", data)
	assert.Nil(t, err)
	om, ok := result.(*orderedMap)
	if assert.True(t, ok, "merge() should return an *orderedMap") {
		assert.Equal(t, []string{"x", "y", "z"}, om.Keys())
		assert.Equal(t, map[string]interface{}{"x": 1.0, "y": 3.0, "z": 4.0}, toObject(om))
	}
}
