// Package literal decodes string-encoded parameter values such as
// "[224, 224]", "0.05" or "True" into native Go values.
//
// Strings are parsed as Python-dialect expressions with the Starlark parser
// and only literal forms are accepted. Nothing is ever executed:
// identifiers other than True, False and None, calls, operators and
// comprehensions are rejected.
//
//	v, err := literal.Eval("[224, 224]") // []any{int64(224), int64(224)}
package literal

import (
	"errors"
	"fmt"
	"strings"

	"go.starlark.net/syntax"
)

// Eval decodes v. Values that are not strings are already structured and
// are returned unchanged, which makes Eval idempotent over its own output
// for every kind except strings.
//
// Decoded kinds: int64, float64, bool, nil, string, []any for lists and
// tuples, map[string]any for dicts.
func Eval(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}

	expr, err := syntax.ParseExpr("<literal>", strings.TrimSpace(s), 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSyntax, s, err)
	}

	out, err := decode(expr)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s, err)
	}
	return out, nil
}

// Lenient decodes v like Eval but hands back the input unchanged when it is
// not a literal. Bare words such as gbdt or rmse pass through as strings.
func Lenient(v any) any {
	out, err := Eval(v)
	if err != nil {
		return v
	}
	return out
}

// IsLiteralError reports whether err came from a rejected or malformed
// literal, as opposed to a coercion failure.
func IsLiteralError(err error) bool {
	return errors.Is(err, ErrSyntax) || errors.Is(err, ErrNotLiteral) || errors.Is(err, ErrOverflow)
}

func decode(expr syntax.Expr) (any, error) {
	switch e := expr.(type) {
	case *syntax.Literal:
		return decodeLiteral(e)

	case *syntax.Ident:
		switch e.Name {
		case "True":
			return true, nil
		case "False":
			return false, nil
		case "None":
			return nil, nil
		}
		return nil, fmt.Errorf("%w: identifier %s", ErrNotLiteral, e.Name)

	case *syntax.ParenExpr:
		return decode(e.X)

	case *syntax.ListExpr:
		return decodeList(e.List)

	case *syntax.TupleExpr:
		return decodeList(e.List)

	case *syntax.DictExpr:
		out := make(map[string]any, len(e.List))
		for _, item := range e.List {
			entry := item.(*syntax.DictEntry)
			key, err := decode(entry.Key)
			if err != nil {
				return nil, err
			}
			k, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("%w: dict key %v is not a string", ErrNotLiteral, key)
			}
			val, err := decode(entry.Value)
			if err != nil {
				return nil, err
			}
			out[k] = val
		}
		return out, nil

	case *syntax.UnaryExpr:
		return decodeSigned(e)
	}

	return nil, fmt.Errorf("%w: %T", ErrNotLiteral, expr)
}

func decodeLiteral(lit *syntax.Literal) (any, error) {
	switch lit.Token {
	case syntax.INT:
		n, ok := lit.Value.(int64)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrOverflow, lit.Raw)
		}
		return n, nil
	case syntax.FLOAT:
		return lit.Value.(float64), nil
	case syntax.STRING:
		return lit.Value.(string), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotLiteral, lit.Raw)
}

func decodeList(items []syntax.Expr) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		v, err := decode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeSigned accepts a sign only directly in front of a numeric literal.
func decodeSigned(e *syntax.UnaryExpr) (any, error) {
	if e.Op != syntax.MINUS && e.Op != syntax.PLUS {
		return nil, fmt.Errorf("%w: operator %s", ErrNotLiteral, e.Op)
	}

	lit, ok := e.X.(*syntax.Literal)
	if !ok || (lit.Token != syntax.INT && lit.Token != syntax.FLOAT) {
		return nil, fmt.Errorf("%w: sign applied to a non-number", ErrNotLiteral)
	}

	v, err := decodeLiteral(lit)
	if err != nil {
		return nil, err
	}
	if e.Op == syntax.PLUS {
		return v, nil
	}

	switch n := v.(type) {
	case int64:
		return -n, nil
	case float64:
		return -n, nil
	}
	return nil, fmt.Errorf("%w: sign applied to %T", ErrNotLiteral, v)
}
