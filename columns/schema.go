package columns

import "slices"

// Role is the treatment a column receives downstream.
type Role string

const (
	RoleCategorical Role = "categorical"
	RoleNumerical   Role = "numerical"
	RoleText        Role = "text"
	RoleImage       Role = "image"
	RoleTimestamp   Role = "timestamp"
	RoleTarget      Role = "target"
	RoleID          Role = "id"
)

// Field describes one column of a phase's table. Type is empty when the
// column has no explicit storage type.
type Field struct {
	Name string  `json:"name"`
	Role Role    `json:"role"`
	Type TypeTag `json:"type,omitempty"`
}

// Schema returns the ordered fields read for the given phase: the item id,
// then the features in taxonomy order, then the targets when training.
func Schema(phase Phase) ([]Field, error) {
	types, err := Types(phase)
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, len(features)+2)
	fields = append(fields, Field{Name: ItemID, Role: RoleID})
	for _, name := range features {
		fields = append(fields, Field{Name: name, Role: roleOf(name), Type: types[name]})
	}
	if phase == PhaseTrain {
		for _, name := range targets {
			fields = append(fields, Field{Name: name, Role: RoleTarget, Type: types[name]})
		}
	}
	return fields, nil
}

// roleOf resolves a feature's role. A column in several lists takes the
// first match in categorical, numerical, text, image, timestamp order.
func roleOf(name string) Role {
	switch {
	case slices.Contains(categorical, name):
		return RoleCategorical
	case slices.Contains(numerical, name):
		return RoleNumerical
	case slices.Contains(text, name):
		return RoleText
	case slices.Contains(image, name):
		return RoleImage
	case slices.Contains(timestamps, name):
		return RoleTimestamp
	}
	return ""
}
