package jmespath

import (
	"reflect"

	"golang.org/x/exp/constraints"
)

// extremum returns the largest (greater=true) or smallest (greater=false)
// element of items. It is shared by max and min over numbers and over
// strings, so the two value kinds only need to agree on an ordering,
// not a common Go type.
func extremum[T constraints.Ordered](items []T, greater bool) T {
	best := items[0]
	for _, item := range items[1:] {
		if (greater && item > best) || (!greater && item < best) {
			best = item
		}
	}
	return best
}

// isSliceType reports whether arg is any Go slice, not just []interface{}.
// It backs the jpArray type check so that a caller who hands in a native
// []string or similar (rather than a decoded JSON array) is still
// recognized as array-shaped.
func isSliceType(arg interface{}) bool {
	if arg == nil {
		return false
	}
	return reflect.TypeOf(arg).Kind() == reflect.Slice
}

// toArrayNum coerces arg to a []float64, succeeding only when arg is a
// []interface{} whose every element is a JSON number.
func toArrayNum(arg interface{}) ([]float64, bool) {
	arr, ok := arg.([]interface{})
	if !ok {
		return nil, false
	}
	result := make([]float64, len(arr))
	for i, v := range arr {
		f, ok := v.(float64)
		if !ok {
			return nil, false
		}
		result[i] = f
	}
	return result, true
}

// toArrayStr coerces arg to a []string, succeeding only when arg is a
// []interface{} whose every element is a JSON string.
func toArrayStr(arg interface{}) ([]string, bool) {
	arr, ok := arg.([]interface{})
	if !ok {
		return nil, false
	}
	result := make([]string, len(arr))
	for i, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		result[i] = s
	}
	return result, true
}

// valuesEqual reports whether a and b represent the same JSON value.
// Object-shaped values are compared through toObject rather than with a
// bare reflect.DeepEqual, so a merge() result (an *orderedMap) compares
// equal to a plain map[string]interface{} holding the same pairs, and
// vice versa — the two are different Go representations of the same
// object and should compare equal regardless of which one a query
// happens to produce.
func valuesEqual(a, b interface{}) bool {
	if isObject(a) && isObject(b) {
		return reflect.DeepEqual(toObject(a), toObject(b))
	}
	return reflect.DeepEqual(a, b)
}

// toGenericArray widens any slice-shaped value (a decoded []interface{} as
// well as a native Go slice like []string surfaced through toObject) into a
// []interface{}. Functions whose argSpec accepts jpArray must use this
// instead of a bare type assertion, since isSliceType's contract promises
// any slice kind, not just []interface{}.
func toGenericArray(arg interface{}) []interface{} {
	if arr, ok := arg.([]interface{}); ok {
		return arr
	}
	rv := reflect.ValueOf(arg)
	result := make([]interface{}, rv.Len())
	for i := range result {
		result[i] = rv.Index(i).Interface()
	}
	return result
}
