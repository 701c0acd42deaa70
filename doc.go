// Package jmespath compiles and evaluates JMESPath expressions against
// arbitrary JSON-shaped Go values.
//
// A JMESPath expression such as foo.bar[*].baz | sort_by(@, &age)[-1] is
// parsed once into an ASTNode and can then be evaluated repeatedly against
// different inputs:
//
//	expr, err := jmespath.Compile("foo.bar[*].baz")
//	if err != nil {
//		// err is a SyntaxError
//	}
//	// expr.Source() == "foo.bar[*].baz"
//	result, err := expr.Search(data)
//
// The package is organized the way it is used: lexer.go turns source text
// into tokens, parser.go assembles an ASTNode using operator-precedence
// parsing, and interpreter.go walks that tree against a JSON context,
// including the projection mechanism that distinguishes JMESPath from a
// plain path language. functions.go holds the closed set of built-ins.
//
// Object key order matters to keys(), values(), merge(), and the
// HashWildcard value projection ("*" over an object). Decoding input
// with json.Unmarshal into map[string]interface{} loses that order
// before this package ever sees it. Callers who need it preserved should decode with ParseJSON
// instead, which keeps object entries in the order they were read off
// the wire.
package jmespath
