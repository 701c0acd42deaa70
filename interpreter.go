package jmespath

// expRef is the deferred-expression half of a function argument: the AST
// fragment behind an &expr, passed to higher-order built-ins such as
// sort_by, map, and max_by without being evaluated first.
type expRef struct {
	ref ASTNode
}

// treeInterpreter walks an ASTNode against a JSON context. It holds only
// the root input it was created with (Execute does not read it) and the
// function registry, and changes neither; the JSON value being evaluated is
// threaded through Execute's parameters rather than stored on the
// interpreter, so a single treeInterpreter could in principle be reused
// across evaluations, but api.go creates a fresh one per Search to keep
// that question moot.
type treeInterpreter struct {
	root  interface{}
	fCall *functionCaller
}

func newInterpreter(root interface{}) *treeInterpreter {
	return &treeInterpreter{root: root, fCall: newFunctionCaller()}
}

// Execute evaluates node against value and returns the resulting JSON
// value. Missing keys and out-of-range indices are not errors: they
// produce nil. Errors are of the kinds listed in errors.go, except that
// max_by, min_by and sort_by report a key expression of the wrong type
// with a plain, untyped error, and to_string passes on any error from
// encoding/json.
func (intr *treeInterpreter) Execute(node ASTNode, value interface{}) (interface{}, error) {
	switch node.NodeType {
	case ASTEmpty, ASTIdentity, ASTCurrentNode:
		return value, nil

	case ASTField:
		name, _ := node.Value.(string)
		if !isObject(value) {
			return nil, nil
		}
		obj := toObject(value)
		if result, ok := obj[name]; ok {
			return indirect(result), nil
		}
		return nil, nil

	case ASTLiteral:
		return node.Value, nil

	case ASTSubexpression, ASTPipe:
		left, err := intr.Execute(node.Children[0], value)
		if err != nil {
			return nil, err
		}
		return intr.Execute(node.Children[1], left)

	case ASTIndexExpression:
		left, err := intr.Execute(node.Children[0], value)
		if err != nil {
			return nil, err
		}
		arr, ok := left.([]interface{})
		if !ok {
			return nil, nil
		}
		return intr.Execute(node.Children[1], arr)

	case ASTIndex:
		arr, ok := value.([]interface{})
		if !ok {
			return nil, nil
		}
		idx, _ := node.Value.(int)
		if idx < 0 {
			idx += len(arr)
		}
		if idx < 0 || idx >= len(arr) {
			return nil, nil
		}
		return arr[idx], nil

	case ASTSlice:
		arr, ok := value.([]interface{})
		if !ok {
			return nil, nil
		}
		parts, _ := node.Value.([]*int)
		start, stop, step, err := sliceBounds(len(arr), parts)
		if err != nil {
			return nil, err
		}
		result := make([]interface{}, 0)
		if step > 0 {
			for i := start; i < stop; i += step {
				result = append(result, arr[i])
			}
		} else {
			for i := start; i > stop; i += step {
				result = append(result, arr[i])
			}
		}
		return result, nil

	case ASTFlatten:
		base, err := intr.Execute(node.Children[0], value)
		if err != nil {
			return nil, err
		}
		arr, ok := base.([]interface{})
		if !ok {
			return nil, nil
		}
		result := make([]interface{}, 0, len(arr))
		for _, el := range arr {
			if sub, ok := el.([]interface{}); ok {
				result = append(result, sub...)
			} else {
				result = append(result, el)
			}
		}
		return result, nil

	case ASTValueProjection:
		left, err := intr.Execute(node.Children[0], value)
		if err != nil {
			return nil, err
		}
		if !isObject(left) {
			return nil, nil
		}
		entries := objectEntries(left)
		elements := make([]interface{}, 0, len(entries))
		for _, e := range entries {
			elements = append(elements, e.Value)
		}
		return intr.project(elements, node.Children[1])

	case ASTProjection:
		left, err := intr.Execute(node.Children[0], value)
		if err != nil {
			return nil, err
		}
		arr, ok := left.([]interface{})
		if !ok {
			return nil, nil
		}
		return intr.project(arr, node.Children[1])

	case ASTFilterProjection:
		left, err := intr.Execute(node.Children[0], value)
		if err != nil {
			return nil, err
		}
		arr, ok := left.([]interface{})
		if !ok {
			return nil, nil
		}
		result := make([]interface{}, 0, len(arr))
		for _, el := range arr {
			keep, err := intr.Execute(node.Children[2], el)
			if err != nil {
				return nil, err
			}
			if !isTruthy(keep) {
				continue
			}
			mapped, err := intr.Execute(node.Children[1], el)
			if err != nil {
				return nil, err
			}
			if mapped != nil {
				result = append(result, mapped)
			}
		}
		return result, nil

	case ASTMultiSelectList:
		if value == nil {
			return nil, nil
		}
		result := make([]interface{}, 0, len(node.Children))
		for _, child := range node.Children {
			current, err := intr.Execute(child, value)
			if err != nil {
				return nil, err
			}
			result = append(result, current)
		}
		return result, nil

	case ASTMultiSelectHash:
		if value == nil {
			return nil, nil
		}
		result := make(map[string]interface{}, len(node.Children))
		for _, child := range node.Children {
			key, _ := child.Value.(string)
			current, err := intr.Execute(child.Children[0], value)
			if err != nil {
				return nil, err
			}
			result[key] = current
		}
		return result, nil

	case ASTNotExpression:
		result, err := intr.Execute(node.Children[0], value)
		if err != nil {
			return nil, err
		}
		return !isTruthy(result), nil

	case ASTOrExpression:
		left, err := intr.Execute(node.Children[0], value)
		if err != nil {
			return nil, err
		}
		if isTruthy(left) {
			return left, nil
		}
		return intr.Execute(node.Children[1], value)

	case ASTAndExpression:
		left, err := intr.Execute(node.Children[0], value)
		if err != nil {
			return nil, err
		}
		if !isTruthy(left) {
			return left, nil
		}
		return intr.Execute(node.Children[1], value)

	case ASTComparator:
		return intr.executeComparator(node, value)

	case ASTExpRef:
		return expRef{ref: node.Children[0]}, nil

	case ASTFunctionExpression:
		return intr.executeFunction(node, value)
	}

	return nil, &InvalidArgumentError{Node: node.NodeType}
}

// project is the projection engine from spec §4.3: apply right to every
// element of elements, dropping elements for which right evaluates to
// nil. It is shared by value projections, array/slice/flatten
// projections, and (with its own null-filtering loop) filter
// projections.
func (intr *treeInterpreter) project(elements []interface{}, right ASTNode) (interface{}, error) {
	result := make([]interface{}, 0, len(elements))
	for _, el := range elements {
		mapped, err := intr.Execute(right, el)
		if err != nil {
			return nil, err
		}
		if mapped != nil {
			result = append(result, mapped)
		}
	}
	return result, nil
}

func (intr *treeInterpreter) executeComparator(node ASTNode, value interface{}) (interface{}, error) {
	left, err := intr.Execute(node.Children[0], value)
	if err != nil {
		return nil, err
	}
	right, err := intr.Execute(node.Children[1], value)
	if err != nil {
		return nil, err
	}
	op, _ := node.Value.(tokType)
	switch op {
	case tEQ:
		return valuesEqual(left, right), nil
	case tNE:
		return !valuesEqual(left, right), nil
	case tLT, tLTE, tGT, tGTE:
		leftNum, lok := left.(float64)
		rightNum, rok := right.(float64)
		if !lok || !rok {
			return nil, nil
		}
		switch op {
		case tLT:
			return leftNum < rightNum, nil
		case tLTE:
			return leftNum <= rightNum, nil
		case tGT:
			return leftNum > rightNum, nil
		default:
			return leftNum >= rightNum, nil
		}
	}
	return nil, &InvalidArgumentError{Node: node.NodeType}
}

func (intr *treeInterpreter) executeFunction(node ASTNode, value interface{}) (interface{}, error) {
	name, _ := node.Value.(string)
	resolvedArgs := make([]interface{}, 0, len(node.Children))
	for _, arg := range node.Children {
		if arg.NodeType == ASTExpRef {
			resolvedArgs = append(resolvedArgs, expRef{ref: arg.Children[0]})
			continue
		}
		current, err := intr.Execute(arg, value)
		if err != nil {
			return nil, err
		}
		resolvedArgs = append(resolvedArgs, current)
	}
	return intr.fCall.CallFunction(name, resolvedArgs, intr)
}

// isTruthy implements JMESPath's truthiness (spec §4.3 / GLOSSARY):
// numbers are always truthy (including 0), non-empty strings/arrays/
// objects and the boolean true are truthy, everything else is falsy.
func isTruthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return true
	case string:
		return len(v) > 0
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	default:
		if isObject(value) {
			return len(toObject(value)) > 0
		}
		return true
	}
}

// sliceBounds computes the (start, stop, step) triple for a [start:stop:
// step] slice expression, following the endpoint normalization rules of
// spec §4.3. parts holds three possibly-nil pointers in that order; a nil
// entry means the corresponding slice component was omitted.
func sliceBounds(length int, parts []*int) (start, stop, step int, err error) {
	step = 1
	if parts[2] != nil {
		if *parts[2] == 0 {
			return 0, 0, 0, &InvalidValueError{Reason: "invalid slice, step cannot be 0"}
		}
		step = *parts[2]
	}
	negative := step < 0

	if parts[0] == nil {
		if negative {
			start = length - 1
		} else {
			start = 0
		}
	} else {
		start = capSliceIndex(length, *parts[0], step)
	}

	if parts[1] == nil {
		if negative {
			stop = -1
		} else {
			stop = length
		}
	} else {
		stop = capSliceIndex(length, *parts[1], step)
	}
	return start, stop, step, nil
}

func capSliceIndex(length, actual, step int) int {
	if actual < 0 {
		actual += length
		if actual < 0 {
			if step < 0 {
				return -1
			}
			return 0
		}
		return actual
	}
	if actual >= length {
		if step < 0 {
			return length - 1
		}
		return length
	}
	return actual
}
