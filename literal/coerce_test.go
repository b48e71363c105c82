package literal_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/tailored-agentic-units/dealpipe/literal"
)

func TestAsInt(t *testing.T) {
	for _, in := range []any{8, int64(8), int32(8), uint32(8), 8.0, float32(8)} {
		got, err := literal.AsInt(in)
		if err != nil {
			t.Errorf("AsInt(%T) failed: %v", in, err)
			continue
		}
		if got != 8 {
			t.Errorf("AsInt(%T) = %d, want 8", in, got)
		}
	}

	for _, in := range []any{8.5, "8", true, nil, []any{8}} {
		if _, err := literal.AsInt(in); !errors.Is(err, literal.ErrType) {
			t.Errorf("AsInt(%T(%v)): got error %v, want ErrType", in, in, err)
		}
	}
}

func TestAsFloat(t *testing.T) {
	if got, err := literal.AsFloat(int64(3)); err != nil || got != 3.0 {
		t.Errorf("AsFloat(int64(3)) = %v, %v; want 3, nil", got, err)
	}
	if got, err := literal.AsFloat(0.25); err != nil || got != 0.25 {
		t.Errorf("AsFloat(0.25) = %v, %v; want 0.25, nil", got, err)
	}

	for _, in := range []any{true, "0.25"} {
		if _, err := literal.AsFloat(in); !errors.Is(err, literal.ErrType) {
			t.Errorf("AsFloat(%#v): got error %v, want ErrType", in, err)
		}
	}
}

func TestAsBool(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{in: true, want: true},
		{in: false, want: false},
		{in: int64(1), want: true},
		{in: 0, want: false},
	}
	for _, tt := range tests {
		got, err := literal.AsBool(tt.in)
		if err != nil {
			t.Errorf("AsBool(%#v) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("AsBool(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := literal.AsBool(int64(2)); !errors.Is(err, literal.ErrType) {
		t.Errorf("got error %v, want ErrType", err)
	}
}

func TestAsString(t *testing.T) {
	if got, err := literal.AsString("binary"); err != nil || got != "binary" {
		t.Errorf("AsString(binary) = %q, %v; want binary, nil", got, err)
	}
	if _, err := literal.AsString(int64(1)); !errors.Is(err, literal.ErrType) {
		t.Errorf("got error %v, want ErrType", err)
	}
}

func TestAsList(t *testing.T) {
	got, err := literal.AsList([]int{1, 2})
	if err != nil {
		t.Fatalf("AsList failed: %v", err)
	}
	if want := []any{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}

	got, err = literal.AsList([]any{"a"})
	if err != nil {
		t.Fatalf("AsList failed: %v", err)
	}
	if want := []any{"a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}

	if _, err := literal.AsList("a"); !errors.Is(err, literal.ErrType) {
		t.Errorf("got error %v, want ErrType", err)
	}
}

func TestAsIntPair(t *testing.T) {
	pair, err := literal.AsIntPair([]any{int64(299), 299.0})
	if err != nil {
		t.Fatalf("AsIntPair failed: %v", err)
	}
	if pair != [2]int{299, 299} {
		t.Errorf("got %v, want [299 299]", pair)
	}

	for _, in := range []any{[]any{int64(1)}, []any{int64(1), "x"}, int64(224)} {
		if _, err := literal.AsIntPair(in); !errors.Is(err, literal.ErrType) {
			t.Errorf("AsIntPair(%#v): got error %v, want ErrType", in, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	in := map[string]any{
		"n":    json.Number("32"),
		"f":    json.Number("0.5"),
		"list": []any{json.Number("1"), "a"},
		"nested": map[string]any{
			"big": json.Number("1e3"),
		},
	}

	want := map[string]any{
		"n":      int64(32),
		"f":      0.5,
		"list":   []any{int64(1), "a"},
		"nested": map[string]any{"big": 1000.0},
	}
	if got := literal.Normalize(in); !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}
