package jmespath

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// orderedMap is an object value that remembers the order its keys were
// first set in, the way _examples/original_source's hand-rolled
// shared_map.h keeps object entries in insertion order instead of the
// hashed order encoding/json's map[string]interface{} gives. ParseJSON
// and merge() are the two places that build one; everywhere else in
// this package treats it as just another object via isObject/toObject/
// objectEntries.
type orderedMap struct {
	keys   []string
	values map[string]interface{}
}

func newOrderedMap(capacity int) *orderedMap {
	return &orderedMap{
		keys:   make([]string, 0, capacity),
		values: make(map[string]interface{}, capacity),
	}
}

// set assigns key to value. A key already present keeps its original
// position and only has its value replaced; a new key is appended.
func (m *orderedMap) set(key string, value interface{}) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *orderedMap) get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the map's keys in insertion order. The caller must not
// mutate the returned slice.
func (m *orderedMap) Keys() []string {
	return m.keys
}

func (m *orderedMap) Len() int {
	return len(m.keys)
}

// MarshalJSON writes m back out in insertion order. Without this,
// encoding/json would see only the unexported keys/values fields and
// marshal every orderedMap as "{}" — silently corrupting to_string()
// for any merge() result or value parsed through ParseJSON.
func (m *orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// GoString matches the %#v-style rendering ASTNode.GoString and
// kr/pretty use elsewhere in this package (see debug.go).
func (m *orderedMap) GoString() string {
	return fmt.Sprintf("orderedMap{keys: %#v, values: %#v}", m.keys, m.values)
}

// ParseJSON decodes data the way a caller building input for Search
// should, preserving the insertion order of object keys instead of
// losing it to map[string]interface{}'s randomized iteration. This is
// the collaborator this package expects when spec §6 calls for
// "ordered iteration of object entries": json.Unmarshal into
// map[string]interface{} cannot provide that, no matter how the
// resulting map is walked, since Go maps carry no order at all once
// built. Objects decode to *orderedMap, which Search, the built-in
// functions, and value projections all handle as an ordinary object.
func ParseJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	value, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("jmespath: trailing data after JSON value")
	}
	return value, nil
}

func decodeJSONValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (interface{}, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := newOrderedMap(0)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("jmespath: expected object key, got %v", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := make([]interface{}, 0)
			for dec.More() {
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("jmespath: unexpected delimiter %v", t)
	case float64, string, bool, nil:
		return t, nil
	default:
		return nil, fmt.Errorf("jmespath: unexpected JSON token %T", tok)
	}
}
