package columns

import (
	"errors"
	"fmt"
)

// ErrUnknownPhase is returned for a phase other than train or inference.
var ErrUnknownPhase = errors.New("unknown phase")

// Phase identifies which table is being read.
type Phase string

const (
	PhaseTrain     Phase = "train"
	PhaseInference Phase = "inference"
)

// Phases lists the supported phases in a stable order.
func Phases() []Phase {
	return []Phase{PhaseTrain, PhaseInference}
}

// TypeTag is the storage type a column is decoded into. Columns without a
// tag use the reader's inferred type.
type TypeTag string

const (
	Float64 TypeTag = "float64"
	Float32 TypeTag = "float32"
	Uint32  TypeTag = "uint32"
)

var inferenceTypes = map[string]TypeTag{
	Price:             Float64,
	"item_seq_number": Uint32,
	ImageTop1:         Float64,
}

// Types returns the column storage types for the given phase. Training
// additionally carries the target column.
func Types(phase Phase) (map[string]TypeTag, error) {
	out := make(map[string]TypeTag, len(inferenceTypes)+1)
	for name, tag := range inferenceTypes {
		out[name] = tag
	}

	switch phase {
	case PhaseTrain:
		out[DealProbability] = Float32
	case PhaseInference:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
	}
	return out, nil
}

// TypeMap returns the storage types of every phase.
func TypeMap() map[Phase]map[string]TypeTag {
	out := make(map[Phase]map[string]TypeTag, 2)
	for _, phase := range Phases() {
		types, _ := Types(phase)
		out[phase] = types
	}
	return out
}
