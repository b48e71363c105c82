package literal

import "errors"

// Sentinel errors for literal evaluation and coercion.
var (
	ErrSyntax     = errors.New("invalid literal syntax")
	ErrNotLiteral = errors.New("expression is not a literal")
	ErrOverflow   = errors.New("integer literal overflows int64")
	ErrType       = errors.New("unexpected value type")
)
