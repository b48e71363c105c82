package literal

import (
	"fmt"
	"math"
)

// AsInt converts an evaluated value to int. Floats are accepted only when
// they hold an integral value.
func AsInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d", ErrOverflow, n)
		}
		return int(n), nil
	case float32:
		return integral(float64(n))
	case float64:
		return integral(n)
	}
	return 0, fmt.Errorf("%w: want int, got %T", ErrType, v)
}

func integral(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: want int, got non-integral %v", ErrType, f)
	}
	return int(f), nil
}

// AsFloat converts an evaluated value to float64. Integers widen.
func AsFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case bool:
		return 0, fmt.Errorf("%w: want float, got bool", ErrType)
	}
	if i, err := AsInt(v); err == nil {
		return float64(i), nil
	}
	return 0, fmt.Errorf("%w: want float, got %T", ErrType, v)
}

// AsBool converts an evaluated value to bool. The integers 0 and 1 are
// accepted since experiment files commonly encode flags that way.
func AsBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int, int64:
		i, _ := AsInt(b)
		switch i {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: want bool, got %T(%v)", ErrType, v, v)
}

// AsString converts an evaluated value to string.
func AsString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: want string, got %T", ErrType, v)
	}
	return s, nil
}

// AsList converts an evaluated value to []any. Typed slices produced by
// YAML or TOML decoders are accepted as well.
func AsList(v any) ([]any, error) {
	switch l := v.(type) {
	case []any:
		return l, nil
	case []int:
		return widen(l), nil
	case []int64:
		return widen(l), nil
	case []float64:
		return widen(l), nil
	case []string:
		return widen(l), nil
	}
	return nil, fmt.Errorf("%w: want list, got %T", ErrType, v)
}

func widen[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// AsIntPair converts a two-element list of integers, as used for image
// sizes, into its components.
func AsIntPair(v any) ([2]int, error) {
	var pair [2]int

	list, err := AsList(v)
	if err != nil {
		return pair, err
	}
	if len(list) != 2 {
		return pair, fmt.Errorf("%w: want 2 elements, got %d", ErrType, len(list))
	}

	for i, item := range list {
		n, err := AsInt(item)
		if err != nil {
			return pair, fmt.Errorf("element %d: %w", i, err)
		}
		pair[i] = n
	}
	return pair, nil
}
