package solution

import (
	"fmt"

	"github.com/tailored-agentic-units/dealpipe/literal"
	"github.com/tailored-agentic-units/dealpipe/params"
)

// reader collects parameter errors so one pass reports all of them.
type reader struct {
	p    *params.Params
	errs []error
}

func (r *reader) keep(err error) {
	if err != nil {
		r.errs = append(r.errs, err)
	}
}

func (r *reader) stringParam(name string) string {
	v, err := r.p.String(name)
	r.keep(err)
	return v
}

func (r *reader) intParam(name string) int {
	v, err := r.p.Int(name)
	r.keep(err)
	return v
}

func (r *reader) floatParam(name string) float64 {
	v, err := r.p.Float(name)
	r.keep(err)
	return v
}

func (r *reader) pairParam(name string) [2]int {
	v, err := r.p.IntPair(name)
	r.keep(err)
	return v
}

// tunable reads name as a single value or, when it decodes to a non-empty
// list, as a search space. Bare words are kept as strings so values such as gbdt need
// no quoting.
func tunable[T any](r *reader, name string, conv func(any) (T, error)) Tunable[T] {
	v, err := r.p.Lenient(name)
	if err != nil {
		r.keep(err)
		return Tunable[T]{}
	}

	if _, isString := v.(string); !isString {
		if list, err := literal.AsList(v); err == nil {
			if len(list) == 0 {
				r.keep(fmt.Errorf("parameter %s: %w: empty search space", name, literal.ErrType))
				return Tunable[T]{}
			}
			space := make([]T, 0, len(list))
			for i, item := range list {
				c, err := conv(item)
				if err != nil {
					r.keep(fmt.Errorf("parameter %s[%d]: %w", name, i, err))
					return Tunable[T]{}
				}
				space = append(space, c)
			}
			return Search(space...)
		}
	}

	c, err := conv(v)
	if err != nil {
		r.keep(fmt.Errorf("parameter %s: %w", name, err))
		return Tunable[T]{}
	}
	return Fixed(c)
}
