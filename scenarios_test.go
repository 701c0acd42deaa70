package jmespath

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scenarioData(t *testing.T) interface{} {
	t.Helper()
	var data interface{}
	raw := []byte(`{
		"people": [
			{"n": "Bob", "age": 30},
			{"n": "Ann", "age": 25},
			{"n": "Zoe", "age": 30}
		],
		"flat": [[1, 2], [3, [4, 5]]]
	}`)
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("unmarshal scenario fixture: %v", err)
	}
	return data
}

func TestScenarioProjectedFieldList(t *testing.T) {
	assert := assert.New(t)
	result, err := Search("people[*].n", scenarioData(t))
	assert.Nil(err)
	assert.Equal([]interface{}{"Bob", "Ann", "Zoe"}, result)
}

func TestScenarioFilterProjection(t *testing.T) {
	assert := assert.New(t)
	result, err := Search("people[?age > `25`].n", scenarioData(t))
	assert.Nil(err)
	assert.Equal([]interface{}{"Bob", "Zoe"}, result)
}

func TestScenarioLengthFunction(t *testing.T) {
	assert := assert.New(t)
	result, err := Search("length(people)", scenarioData(t))
	assert.Nil(err)
	assert.Equal(float64(3), result)
}

func TestScenarioSortByThenLastIsStable(t *testing.T) {
	assert := assert.New(t)
	result, err := Search("sort_by(people, &age)[-1].n", scenarioData(t))
	assert.Nil(err)
	assert.Equal("Zoe", result)
}

func TestScenarioOneLevelFlatten(t *testing.T) {
	assert := assert.New(t)
	result, err := Search("flat[]", scenarioData(t))
	assert.Nil(err)
	assert.Equal([]interface{}{1.0, 2.0, 3.0, []interface{}{4.0, 5.0}}, result)
}

func TestScenarioMaxByPicksFirstMaximum(t *testing.T) {
	assert := assert.New(t)
	result, err := Search("max_by(people, &age).n", scenarioData(t))
	assert.Nil(err)
	assert.Equal("Bob", result)
}

func TestScenarioMultiselectHash(t *testing.T) {
	assert := assert.New(t)
	result, err := Search("{names: people[*].n, count: length(people)}", scenarioData(t))
	assert.Nil(err)
	assert.Equal(map[string]interface{}{
		"names": []interface{}{"Bob", "Ann", "Zoe"},
		"count": float64(3),
	}, result)
}

func TestScenarioLiteralCannotBeDottedInto(t *testing.T) {
	assert := assert.New(t)
	_, err := Search("people[0].`\"literal\"`", scenarioData(t))
	assert.NotNil(err)
	_, ok := err.(SyntaxError)
	assert.True(ok)
}

func TestScenarioAbsOfStringIsArgumentTypeError(t *testing.T) {
	assert := assert.New(t)
	_, err := Search("abs(`\"x\"`)", scenarioData(t))
	assert.NotNil(err)
	_, ok := err.(*ArgumentTypeError)
	assert.True(ok)
}

// P3: missing-key identity.
func TestPropertyMissingKeyIsNull(t *testing.T) {
	assert := assert.New(t)
	result, err := Search("nonexistent", map[string]interface{}{"foo": "bar"})
	assert.Nil(err)
	assert.Nil(result)
}

// P4: a projection never surfaces a nil produced by its right expression.
func TestPropertyProjectionDropsNulls(t *testing.T) {
	assert := assert.New(t)
	data := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"a": 1.0},
			map[string]interface{}{"b": 2.0},
			map[string]interface{}{"a": 3.0},
		},
	}
	result, err := Search("items[*].a", data)
	assert.Nil(err)
	assert.Equal([]interface{}{1.0, 3.0}, result)
}

// P5: truthiness round-trips through double negation.
func TestPropertyDoubleNegationRoundTripsTruthiness(t *testing.T) {
	assert := assert.New(t)
	cases := []interface{}{
		0.0, 1.0, "", "x", []interface{}{}, []interface{}{1.0},
		map[string]interface{}{}, map[string]interface{}{"a": 1.0},
		true, false, nil,
	}
	for _, c := range cases {
		data := map[string]interface{}{"x": c}
		result, err := Search("!(!x)", data)
		assert.Nil(err)
		assert.Equal(isTruthy(c), result)
	}
}

// P6: sort_by is stable under equal keys.
func TestPropertySortByStableOnEqualKeys(t *testing.T) {
	assert := assert.New(t)
	data := []interface{}{
		map[string]interface{}{"a": 1.0, "b": 1.0},
		map[string]interface{}{"a": 1.0, "b": 2.0},
	}
	result, err := Search("sort_by(@, &a)", data)
	assert.Nil(err)
	assert.Equal(data, result)
}

// P7: precedence — "a || b && c" parses as "a || (b && c)".
func TestPropertyAndBindsTighterThanOr(t *testing.T) {
	assert := assert.New(t)
	left, err := Compile("a || b && c")
	assert.Nil(err)
	right, err := Compile("a || (b && c)")
	assert.Nil(err)
	assert.True(left.ast.Equal(right.ast))
}

// P7: pipe is the loosest-binding operator in the NodeRank table, so
// "a | b || c" groups the tighter-binding Or first: "a | (b || c)".
func TestPropertyPipeLooserThanOr(t *testing.T) {
	assert := assert.New(t)
	left, err := Compile("a | b || c")
	assert.Nil(err)
	right, err := Compile("a | (b || c)")
	assert.Nil(err)
	assert.True(left.ast.Equal(right.ast))
}

// P1: round-trip — a successfully compiled expression reports back its
// own source text unchanged.
func TestPropertyCompileRoundTripsSource(t *testing.T) {
	assert := assert.New(t)
	for _, src := range []string{
		"foo.bar[*].baz",
		"sort_by(@, &age)[-1]",
		"people[?age > `25`].n",
		"{a: b, c: d}",
	} {
		jp, err := Compile(src)
		assert.Nil(err)
		assert.Equal(src, jp.Source())
	}
}

// P2: AST determinism — insignificant whitespace outside string/literal
// tokens doesn't change the parsed tree.
func TestPropertyWhitespaceInsensitiveAST(t *testing.T) {
	assert := assert.New(t)
	a, err := Compile("foo.bar[*].baz")
	assert.Nil(err)
	b, err := Compile("  foo . bar [ * ] . baz  ")
	assert.Nil(err)
	assert.True(a.ast.Equal(b.ast))
}
