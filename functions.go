package jmespath

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

type jpFunction func(arguments []interface{}) (interface{}, error)

type jpType string

const (
	jpNumber      jpType = "number"
	jpString      jpType = "string"
	jpArray       jpType = "array"
	jpObject      jpType = "object"
	jpArrayNumber jpType = "array[number]"
	jpArrayString jpType = "array[string]"
	jpExpref      jpType = "expref"
	jpAny         jpType = "any"
)

type functionEntry struct {
	name      string
	arguments []argSpec
	handler   jpFunction
	hasExpRef bool
}

type argSpec struct {
	types    []jpType
	variadic bool
	optional bool
}

type byExprString struct {
	intr     *treeInterpreter
	node     ASTNode
	items    []interface{}
	hasError bool
}

func (a *byExprString) Len() int {
	return len(a.items)
}
func (a *byExprString) Swap(i, j int) {
	a.items[i], a.items[j] = a.items[j], a.items[i]
}
func (a *byExprString) Less(i, j int) bool {
	first, err := a.intr.Execute(a.node, a.items[i])
	if err != nil {
		a.hasError = true
		return true
	}
	ith, ok := first.(string)
	if !ok {
		a.hasError = true
		return true
	}
	second, err := a.intr.Execute(a.node, a.items[j])
	if err != nil {
		a.hasError = true
		return true
	}
	jth, ok := second.(string)
	if !ok {
		a.hasError = true
		return true
	}
	return ith < jth
}

type byExprFloat struct {
	intr     *treeInterpreter
	node     ASTNode
	items    []interface{}
	hasError bool
}

func (a *byExprFloat) Len() int {
	return len(a.items)
}
func (a *byExprFloat) Swap(i, j int) {
	a.items[i], a.items[j] = a.items[j], a.items[i]
}
func (a *byExprFloat) Less(i, j int) bool {
	first, err := a.intr.Execute(a.node, a.items[i])
	if err != nil {
		a.hasError = true
		return true
	}
	ith, ok := first.(float64)
	if !ok {
		a.hasError = true
		return true
	}
	second, err := a.intr.Execute(a.node, a.items[j])
	if err != nil {
		a.hasError = true
		return true
	}
	jth, ok := second.(float64)
	if !ok {
		a.hasError = true
		return true
	}
	return ith < jth
}

// functionCaller owns the closed set of built-ins reachable from a
// FunctionExpression. There is no way to register more: extending the
// set beyond what's listed here is explicitly not supported.
type functionCaller struct {
	functionTable map[string]functionEntry
}

func newFunctionCaller() *functionCaller {
	caller := &functionCaller{}
	caller.functionTable = map[string]functionEntry{
		"abs": {
			name:      "abs",
			arguments: []argSpec{{types: []jpType{jpNumber}}},
			handler:   jpfAbs,
		},
		"avg": {
			name:      "avg",
			arguments: []argSpec{{types: []jpType{jpArrayNumber}}},
			handler:   jpfAvg,
		},
		"ceil": {
			name:      "ceil",
			arguments: []argSpec{{types: []jpType{jpNumber}}},
			handler:   jpfCeil,
		},
		"contains": {
			name: "contains",
			arguments: []argSpec{
				{types: []jpType{jpArray, jpString}},
				{types: []jpType{jpAny}},
			},
			handler: jpfContains,
		},
		"ends_with": {
			name: "ends_with",
			arguments: []argSpec{
				{types: []jpType{jpString}},
				{types: []jpType{jpString}},
			},
			handler: jpfEndsWith,
		},
		"floor": {
			name:      "floor",
			arguments: []argSpec{{types: []jpType{jpNumber}}},
			handler:   jpfFloor,
		},
		"join": {
			name: "join",
			arguments: []argSpec{
				{types: []jpType{jpString}},
				{types: []jpType{jpArrayString}},
			},
			handler: jpfJoin,
		},
		"keys": {
			name:      "keys",
			arguments: []argSpec{{types: []jpType{jpObject}}},
			handler:   jpfKeys,
		},
		"length": {
			name:      "length",
			arguments: []argSpec{{types: []jpType{jpString, jpArray, jpObject}}},
			handler:   jpfLength,
		},
		"map": {
			name: "map",
			arguments: []argSpec{
				{types: []jpType{jpExpref}},
				{types: []jpType{jpArray}},
			},
			handler:   jpfMap,
			hasExpRef: true,
		},
		"max": {
			name:      "max",
			arguments: []argSpec{{types: []jpType{jpArrayNumber, jpArrayString}}},
			handler:   jpfMax,
		},
		"max_by": {
			name: "max_by",
			arguments: []argSpec{
				{types: []jpType{jpArray}},
				{types: []jpType{jpExpref}},
			},
			handler:   jpfMaxBy,
			hasExpRef: true,
		},
		"merge": {
			name:      "merge",
			arguments: []argSpec{{types: []jpType{jpObject}, variadic: true, optional: true}},
			handler:   jpfMerge,
		},
		"min": {
			name:      "min",
			arguments: []argSpec{{types: []jpType{jpArrayNumber, jpArrayString}}},
			handler:   jpfMin,
		},
		"min_by": {
			name: "min_by",
			arguments: []argSpec{
				{types: []jpType{jpArray}},
				{types: []jpType{jpExpref}},
			},
			handler:   jpfMinBy,
			hasExpRef: true,
		},
		"not_null": {
			name:      "not_null",
			arguments: []argSpec{{types: []jpType{jpAny}, variadic: true}},
			handler:   jpfNotNull,
		},
		"reverse": {
			name:      "reverse",
			arguments: []argSpec{{types: []jpType{jpArray, jpString}}},
			handler:   jpfReverse,
		},
		"sort": {
			name:      "sort",
			arguments: []argSpec{{types: []jpType{jpArrayString, jpArrayNumber}}},
			handler:   jpfSort,
		},
		"sort_by": {
			name: "sort_by",
			arguments: []argSpec{
				{types: []jpType{jpArray}},
				{types: []jpType{jpExpref}},
			},
			handler:   jpfSortBy,
			hasExpRef: true,
		},
		"starts_with": {
			name: "starts_with",
			arguments: []argSpec{
				{types: []jpType{jpString}},
				{types: []jpType{jpString}},
			},
			handler: jpfStartsWith,
		},
		"sum": {
			name:      "sum",
			arguments: []argSpec{{types: []jpType{jpArrayNumber}}},
			handler:   jpfSum,
		},
		"to_array": {
			name:      "to_array",
			arguments: []argSpec{{types: []jpType{jpAny}}},
			handler:   jpfToArray,
		},
		"to_number": {
			name:      "to_number",
			arguments: []argSpec{{types: []jpType{jpAny}}},
			handler:   jpfToNumber,
		},
		"to_string": {
			name:      "to_string",
			arguments: []argSpec{{types: []jpType{jpAny}}},
			handler:   jpfToString,
		},
		"type": {
			name:      "type",
			arguments: []argSpec{{types: []jpType{jpAny}}},
			handler:   jpfType,
		},
		"values": {
			name:      "values",
			arguments: []argSpec{{types: []jpType{jpObject}}},
			handler:   jpfValues,
		},
	}
	return caller
}

func (e *functionEntry) resolveArgs(arguments []interface{}) ([]interface{}, error) {
	if len(e.arguments) == 0 {
		return arguments, nil
	}

	variadic := isVariadic(e.arguments)
	minExpected := getMinExpected(e.arguments)
	maxExpected, hasMax := getMaxExpected(e.arguments)
	count := len(arguments)

	if count < minExpected {
		return nil, notEnoughArgumentsSupplied(e.name, count, minExpected, variadic)
	}

	if hasMax && count > maxExpected {
		return nil, tooManyArgumentsSupplied(e.name, count, maxExpected)
	}

	for i, spec := range e.arguments {
		if !spec.optional || i <= len(arguments)-1 {
			userArg := arguments[i]
			if err := spec.typeCheck(userArg); err != nil {
				return nil, &ArgumentTypeError{Name: e.name, Index: i, Value: userArg}
			}
		}
	}
	lastIndex := len(e.arguments) - 1
	lastArg := e.arguments[lastIndex]
	if lastArg.variadic {
		for i := len(e.arguments) - 1; i < len(arguments); i++ {
			userArg := arguments[i]
			if err := lastArg.typeCheck(userArg); err != nil {
				return nil, &ArgumentTypeError{Name: e.name, Index: i, Value: userArg}
			}
		}
	}
	return arguments, nil
}

func isVariadic(arguments []argSpec) bool {
	for _, spec := range arguments {
		if spec.variadic {
			return true
		}
	}
	return false
}
func getMinExpected(arguments []argSpec) int {
	expected := 0
	for _, spec := range arguments {
		if !spec.optional {
			expected++
		}
	}
	return expected
}
func getMaxExpected(arguments []argSpec) (int, bool) {
	if isVariadic(arguments) {
		return 0, false
	}
	return len(arguments), true
}

func (a *argSpec) typeCheck(arg interface{}) error {
	for _, t := range a.types {
		switch t {
		case jpNumber:
			if _, ok := arg.(float64); ok {
				return nil
			}
		case jpString:
			if _, ok := arg.(string); ok {
				return nil
			}
		case jpArray:
			if isSliceType(arg) {
				return nil
			}
		case jpObject:
			if isObject(arg) {
				return nil
			}
		case jpArrayNumber:
			if _, ok := toArrayNum(arg); ok {
				return nil
			}
		case jpArrayString:
			if _, ok := toArrayStr(arg); ok {
				return nil
			}
		case jpAny:
			return nil
		case jpExpref:
			if _, ok := arg.(expRef); ok {
				return nil
			}
		}
	}
	return errors.New("invalid type")
}

// CallFunction dispatches a FunctionExpression by name. When the entry's
// hasExpRef is set (map, max_by, min_by, sort_by), intr is prepended to
// the resolved arguments so the handler can walk the deferred expression
// itself.
func (f *functionCaller) CallFunction(name string, arguments []interface{}, intr *treeInterpreter) (interface{}, error) {
	entry, ok := f.functionTable[name]
	if !ok {
		return nil, &UnknownFunctionError{Name: name}
	}
	resolvedArgs, err := entry.resolveArgs(arguments)
	if err != nil {
		return nil, err
	}
	if entry.hasExpRef {
		withIntr := make([]interface{}, 0, len(resolvedArgs)+1)
		withIntr = append(withIntr, intr)
		resolvedArgs = append(withIntr, resolvedArgs...)
	}
	return entry.handler(resolvedArgs)
}

func jpfAbs(arguments []interface{}) (interface{}, error) {
	num := arguments[0].(float64)
	return math.Abs(num), nil
}

func jpfAvg(arguments []interface{}) (interface{}, error) {
	args := arguments[0].([]interface{})
	if len(args) == 0 {
		return nil, nil
	}
	numerator := 0.0
	for _, n := range args {
		numerator += n.(float64)
	}
	return numerator / float64(len(args)), nil
}

func jpfCeil(arguments []interface{}) (interface{}, error) {
	val := arguments[0].(float64)
	return math.Ceil(val), nil
}

func jpfContains(arguments []interface{}) (interface{}, error) {
	search := arguments[0]
	el := arguments[1]
	if searchStr, ok := search.(string); ok {
		if elStr, ok := el.(string); ok {
			return strings.Contains(searchStr, elStr), nil
		}
		return false, nil
	}
	// Generic contains for any array-shaped value. Elements can be arbitrary
	// JSON values (including other arrays/objects), so compare structurally
	// instead of with == (which panics on unhashable types).
	general := toGenericArray(search)
	for _, item := range general {
		if valuesEqual(item, el) {
			return true, nil
		}
	}
	return false, nil
}

func jpfEndsWith(arguments []interface{}) (interface{}, error) {
	search := arguments[0].(string)
	suffix := arguments[1].(string)
	return strings.HasSuffix(search, suffix), nil
}

func jpfFloor(arguments []interface{}) (interface{}, error) {
	val := arguments[0].(float64)
	return math.Floor(val), nil
}

func jpfJoin(arguments []interface{}) (interface{}, error) {
	sep := arguments[0].(string)
	arrayStr := []string{}
	for _, item := range arguments[1].([]interface{}) {
		arrayStr = append(arrayStr, item.(string))
	}
	return strings.Join(arrayStr, sep), nil
}

func jpfKeys(arguments []interface{}) (interface{}, error) {
	entries := objectEntries(arguments[0])
	collected := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		collected = append(collected, e.Key)
	}
	return collected, nil
}

func jpfLength(arguments []interface{}) (interface{}, error) {
	arg := arguments[0]
	if c, ok := arg.(string); ok {
		return float64(utf8.RuneCountInString(c)), nil
	} else if isSliceType(arg) {
		v := reflect.ValueOf(arg)
		return float64(v.Len()), nil
	} else if isObject(arg) {
		return float64(len(toObject(arg))), nil
	}
	return nil, errors.New("could not compute length()")
}

func jpfMap(arguments []interface{}) (interface{}, error) {
	intr := arguments[0].(*treeInterpreter)
	exp := arguments[1].(expRef)
	node := exp.ref
	arr := toGenericArray(arguments[2])
	mapped := make([]interface{}, 0, len(arr))
	for _, value := range arr {
		current, err := intr.Execute(node, value)
		if err != nil {
			return nil, err
		}
		mapped = append(mapped, current)
	}
	return mapped, nil
}

func jpfMax(arguments []interface{}) (interface{}, error) {
	if items, ok := toArrayNum(arguments[0]); ok {
		if len(items) == 0 {
			return nil, nil
		}
		return extremum(items, true), nil
	}
	items, _ := toArrayStr(arguments[0])
	if len(items) == 0 {
		return nil, nil
	}
	return extremum(items, true), nil
}

func jpfMaxBy(arguments []interface{}) (interface{}, error) {
	return jpfExtremumBy(arguments, true)
}

func jpfMinBy(arguments []interface{}) (interface{}, error) {
	return jpfExtremumBy(arguments, false)
}

// jpfExtremumBy backs both max_by and min_by: evaluate the key
// expression against the first element to learn whether the comparison
// is numeric or lexical, then scan the rest keeping the best element
// under that ordering.
func jpfExtremumBy(arguments []interface{}, greater bool) (interface{}, error) {
	intr := arguments[0].(*treeInterpreter)
	arr := toGenericArray(arguments[1])
	exp := arguments[2].(expRef)
	node := exp.ref
	if len(arr) == 0 {
		return nil, nil
	} else if len(arr) == 1 {
		return arr[0], nil
	}
	start, err := intr.Execute(node, arr[0])
	if err != nil {
		return nil, err
	}
	switch t := start.(type) {
	case float64:
		bestVal := t
		bestItem := arr[0]
		for _, item := range arr[1:] {
			result, err := intr.Execute(node, item)
			if err != nil {
				return nil, err
			}
			current, ok := result.(float64)
			if !ok {
				return nil, errors.New("invalid type, must be number")
			}
			if (greater && current > bestVal) || (!greater && current < bestVal) {
				bestVal = current
				bestItem = item
			}
		}
		return bestItem, nil
	case string:
		bestVal := t
		bestItem := arr[0]
		for _, item := range arr[1:] {
			result, err := intr.Execute(node, item)
			if err != nil {
				return nil, err
			}
			current, ok := result.(string)
			if !ok {
				return nil, errors.New("invalid type, must be string")
			}
			if (greater && current > bestVal) || (!greater && current < bestVal) {
				bestVal = current
				bestItem = item
			}
		}
		return bestItem, nil
	default:
		return nil, errors.New("invalid type, must be number or string")
	}
}

// jpfMerge folds its (possibly zero) object arguments left to right into
// one: a key keeps the position of its first occurrence but takes the
// value of its last. The result is an *orderedMap rather than a plain
// map[string]interface{} so that position survives if the merged object
// is itself later passed to keys(), values(), or another merge() call.
func jpfMerge(arguments []interface{}) (interface{}, error) {
	final := newOrderedMap(0)
	for _, m := range arguments {
		for _, e := range objectEntries(m) {
			final.set(e.Key, e.Value)
		}
	}
	return final, nil
}

func jpfMin(arguments []interface{}) (interface{}, error) {
	if items, ok := toArrayNum(arguments[0]); ok {
		if len(items) == 0 {
			return nil, nil
		}
		return extremum(items, false), nil
	}
	items, _ := toArrayStr(arguments[0])
	if len(items) == 0 {
		return nil, nil
	}
	return extremum(items, false), nil
}

func jpfNotNull(arguments []interface{}) (interface{}, error) {
	for _, arg := range arguments {
		if arg != nil {
			return arg, nil
		}
	}
	return nil, nil
}

func jpfReverse(arguments []interface{}) (interface{}, error) {
	if s, ok := arguments[0].(string); ok {
		r := []rune(s)
		for i, j := 0, len(r)-1; i < len(r)/2; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return string(r), nil
	}
	items := toGenericArray(arguments[0])
	length := len(items)
	reversed := make([]interface{}, length)
	for i, item := range items {
		reversed[length-(i+1)] = item
	}
	return reversed, nil
}

func jpfSort(arguments []interface{}) (interface{}, error) {
	if items, ok := toArrayNum(arguments[0]); ok {
		d := sort.Float64Slice(items)
		sort.Stable(d)
		final := make([]interface{}, len(d))
		for i, val := range d {
			final[i] = val
		}
		return final, nil
	}
	items, _ := toArrayStr(arguments[0])
	d := sort.StringSlice(items)
	sort.Stable(d)
	final := make([]interface{}, len(d))
	for i, val := range d {
		final[i] = val
	}
	return final, nil
}

func jpfSortBy(arguments []interface{}) (interface{}, error) {
	intr := arguments[0].(*treeInterpreter)
	arr := toGenericArray(arguments[1])
	exp := arguments[2].(expRef)
	node := exp.ref
	if len(arr) <= 1 {
		return arr, nil
	}
	start, err := intr.Execute(node, arr[0])
	if err != nil {
		return nil, err
	}
	if _, ok := start.(float64); ok {
		sortable := &byExprFloat{intr, node, arr, false}
		sort.Stable(sortable)
		if sortable.hasError {
			return nil, errors.New("error in sort_by comparison")
		}
		return arr, nil
	} else if _, ok := start.(string); ok {
		sortable := &byExprString{intr, node, arr, false}
		sort.Stable(sortable)
		if sortable.hasError {
			return nil, errors.New("error in sort_by comparison")
		}
		return arr, nil
	}
	return nil, errors.New("invalid type, must be number or string")
}

func jpfStartsWith(arguments []interface{}) (interface{}, error) {
	search := arguments[0].(string)
	prefix := arguments[1].(string)
	return strings.HasPrefix(search, prefix), nil
}

func jpfSum(arguments []interface{}) (interface{}, error) {
	items, _ := toArrayNum(arguments[0])
	sum := 0.0
	for _, item := range items {
		sum += item
	}
	return sum, nil
}

func jpfToArray(arguments []interface{}) (interface{}, error) {
	if _, ok := arguments[0].([]interface{}); ok {
		return arguments[0], nil
	}
	return arguments[:1:1], nil
}

func jpfToString(arguments []interface{}) (interface{}, error) {
	if v, ok := arguments[0].(string); ok {
		return v, nil
	}
	result, err := json.Marshal(arguments[0])
	if err != nil {
		return nil, err
	}
	return string(result), nil
}

func jpfToNumber(arguments []interface{}) (interface{}, error) {
	arg := arguments[0]
	if v, ok := arg.(float64); ok {
		return v, nil
	}
	if v, ok := arg.(string); ok {
		conv, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil
		}
		return conv, nil
	}
	return nil, nil
}

func jpfType(arguments []interface{}) (interface{}, error) {
	arg := arguments[0]
	if _, ok := arg.(float64); ok {
		return "number", nil
	}
	if _, ok := arg.(string); ok {
		return "string", nil
	}
	if _, ok := arg.(bool); ok {
		return "boolean", nil
	}
	if arg == nil {
		return "null", nil
	}
	if isObject(arg) {
		return "object", nil
	}
	if isSliceType(arg) {
		return "array", nil
	}
	return nil, errors.New("unknown type")
}

func jpfValues(arguments []interface{}) (interface{}, error) {
	entries := objectEntries(arguments[0])
	collected := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		collected = append(collected, e.Value)
	}
	return collected, nil
}
