package columns_test

import (
	"errors"
	"testing"

	"github.com/tailored-agentic-units/dealpipe/columns"
)

func TestTypes_InferenceSubsetOfTrain(t *testing.T) {
	train, err := columns.Types(columns.PhaseTrain)
	if err != nil {
		t.Fatalf("Types(train) failed: %v", err)
	}
	inference, err := columns.Types(columns.PhaseInference)
	if err != nil {
		t.Fatalf("Types(inference) failed: %v", err)
	}

	for name, tag := range inference {
		got, ok := train[name]
		if !ok {
			t.Errorf("inference column %q missing from train", name)
			continue
		}
		if got != tag {
			t.Errorf("column %q: got train tag %q, want %q", name, got, tag)
		}
	}

	for name := range train {
		if _, ok := inference[name]; !ok && name != columns.DealProbability {
			t.Errorf("train-only column %q, want only %q", name, columns.DealProbability)
		}
	}
	if len(train) != len(inference)+1 {
		t.Errorf("got %d train columns, want %d", len(train), len(inference)+1)
	}
}

func TestTypes_Tags(t *testing.T) {
	train, _ := columns.Types(columns.PhaseTrain)

	tests := []struct {
		column string
		want   columns.TypeTag
	}{
		{column: "price", want: columns.Float64},
		{column: "item_seq_number", want: columns.Uint32},
		{column: "image_top_1", want: columns.Float64},
		{column: "deal_probability", want: columns.Float32},
	}
	for _, tt := range tests {
		if got := train[tt.column]; got != tt.want {
			t.Errorf("column %q: got %q, want %q", tt.column, got, tt.want)
		}
	}
}

func TestTypes_UnknownPhase(t *testing.T) {
	_, err := columns.Types("validation")
	if !errors.Is(err, columns.ErrUnknownPhase) {
		t.Errorf("got error %v, want ErrUnknownPhase", err)
	}
}

func TestTypeMap(t *testing.T) {
	m := columns.TypeMap()
	if len(m) != 2 {
		t.Fatalf("got %d phases, want 2", len(m))
	}
	if _, ok := m[columns.PhaseInference][columns.DealProbability]; ok {
		t.Error("inference types must not carry the target")
	}

	m[columns.PhaseTrain]["price"] = columns.Uint32
	if again := columns.TypeMap(); again[columns.PhaseTrain]["price"] != columns.Float64 {
		t.Error("TypeMap must return an independent copy")
	}
}

func TestSchema(t *testing.T) {
	fields, err := columns.Schema(columns.PhaseTrain)
	if err != nil {
		t.Fatalf("Schema failed: %v", err)
	}

	if got := len(fields); got != len(columns.Features())+2 {
		t.Errorf("got %d fields, want %d", got, len(columns.Features())+2)
	}
	if fields[0].Name != "item_id" || fields[0].Role != columns.RoleID {
		t.Errorf("got first field %+v, want item_id id", fields[0])
	}
	last := fields[len(fields)-1]
	if last.Name != "deal_probability" || last.Role != columns.RoleTarget || last.Type != columns.Float32 {
		t.Errorf("got last field %+v, want float32 target deal_probability", last)
	}

	roles := map[string]columns.Role{}
	for _, f := range fields {
		roles[f.Name] = f.Role
	}
	want := map[string]columns.Role{
		"price":           columns.RoleNumerical,
		"title":           columns.RoleText,
		"image":           columns.RoleImage,
		"activation_date": columns.RoleTimestamp,
		"image_top_1":     columns.RoleCategorical,
	}
	for name, role := range want {
		if roles[name] != role {
			t.Errorf("column %q: got role %q, want %q", name, roles[name], role)
		}
	}

	inference, err := columns.Schema(columns.PhaseInference)
	if err != nil {
		t.Fatalf("Schema(inference) failed: %v", err)
	}
	if len(inference) != len(fields)-1 {
		t.Errorf("got %d inference fields, want %d", len(inference), len(fields)-1)
	}
}
