package jmespath

import (
	"reflect"
	"sort"
	"strings"
)

type objectKind int

const (
	objectKindNone objectKind = iota
	objectKindStruct
	objectKindMapStringInterface
	objectKindMapStringOther
	objectKindOrdered
)

func getObjectKind(value interface{}) (objectKind, reflect.Value) {
	if _, ok := value.(*orderedMap); ok {
		return objectKindOrdered, reflect.Value{}
	}
	rv := reflect.Indirect(reflect.ValueOf(value))
	if rv.Kind() == reflect.Struct {
		return objectKindStruct, rv
	}
	if rv.Kind() == reflect.Map {
		rt := rv.Type()
		if rt.Key().Kind() == reflect.String {
			if rt.Elem().Kind() == reflect.Interface {
				return objectKindMapStringInterface, rv
			}
			return objectKindMapStringOther, rv
		}
	}
	return objectKindNone, rv
}

func isObject(value interface{}) bool {
	kind, _ := getObjectKind(value)
	return kind != objectKindNone
}

// indirect fully unwraps a chain of pointers and interface-holding
// pointers down to the innermost concrete value, so a struct or map field
// that happens to hold a *float64 (or a *interface{} pointing at another
// *interface{}, and so on) still compares and prints as the plain JSON
// value it represents.
//
// *orderedMap is special-cased and returned as-is: it is itself a
// pointer, but its methods are defined on that pointer receiver, and
// unwrapping it here would hand back a bare orderedMap value that no
// longer satisfies the *orderedMap type assertions getObjectKind and
// objectEntries rely on to recognize it as an ordered object.
func indirect(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	if _, ok := value.(*orderedMap); ok {
		return value
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

// structFieldKey derives the object key a struct field is exposed under,
// honoring a "jmes" tag first and falling back to a "json" tag, the same
// precedence toObject and structEntries both need. skip reports a "-"
// tag that hides the field entirely.
func structFieldKey(f reflect.StructField) (key string, skip bool) {
	key = f.Name
	if t, ok := f.Tag.Lookup("jmes"); ok {
		switch t {
		case "":
			// Leave the key set to the field name
		case "-":
			return "", true
		default:
			key = t
		}
		return key, false
	}
	if t, ok := f.Tag.Lookup("json"); ok {
		switch t {
		case "", "-":
			// Leave the key set to the field name
		default:
			if i := strings.IndexByte(t, ','); i >= 0 {
				if i != 0 {
					key = t[:i]
				} // else leave the key set to the field name
			} else {
				key = t
			}
		}
	}
	return key, false
}

func toObject(value interface{}) map[string]interface{} {
	kind, rv := getObjectKind(value)
	switch kind {
	case objectKindOrdered:
		om := value.(*orderedMap)
		ret := make(map[string]interface{}, om.Len())
		for _, key := range om.Keys() {
			v, _ := om.get(key)
			ret[key] = indirect(v)
		}
		return ret
	case objectKindStruct:
		// This does not flatten fields from anonymous embedded structs into the top-level struct
		// the way the encoding/json package does, as this is quite complicated. These fields can
		// still be accessed by specifying the full path to the embedded field. See the typeFields()
		// function in https://go.dev/src/encoding/json/encode.go if you feel the need to do add
		// flattening functionality.
		ret := make(map[string]interface{})
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if !f.IsExported() {
				continue
			}
			key, skip := structFieldKey(f)
			if skip {
				continue
			}
			ret[key] = indirect(rv.Field(i).Interface())
		}
		return ret
	case objectKindMapStringInterface:
		return rv.Interface().(map[string]interface{})
	case objectKindMapStringOther:
		ret := make(map[string]interface{})
		iter := rv.MapRange()
		for iter.Next() {
			ret[iter.Key().String()] = indirect(iter.Value().Interface())
		}
		return ret
	default:
		return nil
	}
}

// objectEntry is one key/value pair of an object-shaped value, as
// yielded by objectEntries.
type objectEntry struct {
	Key   string
	Value interface{}
}

// objectEntries lists value's key/value pairs in a well-defined order,
// for the handful of operations spec §5 requires to preserve object
// key order: keys(), values(), merge(), and HashWildcard's value
// projection.
//
// An *orderedMap (built by ParseJSON or by merge itself) yields its
// true insertion order. A struct yields its field declaration order,
// the same order toObject already assigns field keys in. A plain
// map[string]interface{} or other Go map has no order of its own by
// the time it reaches this package: json.Unmarshal's target map type
// cannot carry one, and Go deliberately randomizes map iteration order
// between runs on top of that, so those fall back to a sort by key.
// That fallback trades "this is the original insertion order" (which
// the map never retained) for "this is the same order every time" —
// it removes the nondeterminism even where it can't recover history
// the input already lost before ParseJSON could preserve it.
func objectEntries(value interface{}) []objectEntry {
	if om, ok := value.(*orderedMap); ok {
		entries := make([]objectEntry, 0, om.Len())
		for _, key := range om.Keys() {
			v, _ := om.get(key)
			entries = append(entries, objectEntry{Key: key, Value: indirect(v)})
		}
		return entries
	}
	kind, rv := getObjectKind(value)
	if kind == objectKindStruct {
		return structEntries(rv)
	}
	obj := toObject(value)
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	entries := make([]objectEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, objectEntry{Key: key, Value: obj[key]})
	}
	return entries
}

// structEntries lists rv's exported fields in declaration order,
// applying the same jmes/json tag renaming toObject's struct case
// does. It exists because toObject itself folds those fields into a
// map[string]interface{}, which discards the order objectEntries needs
// to hand back.
func structEntries(rv reflect.Value) []objectEntry {
	rt := rv.Type()
	entries := make([]objectEntry, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		key, skip := structFieldKey(f)
		if skip {
			continue
		}
		entries = append(entries, objectEntry{Key: key, Value: indirect(rv.Field(i).Interface())})
	}
	return entries
}
