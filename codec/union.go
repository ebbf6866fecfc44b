package codec

import "strings"

// Variant is one declared shape of a union over T.
type Variant[T any] struct {
	name     string
	describe string
	coerce   func(raw any, st State) (T, error)
	dump     func(v T, st State) (any, bool, error)
}

// Case declares a variant backed by c. wrap lifts a decoded V into T; unwrap
// reports whether a T holds this variant and extracts it for dumping.
func Case[T, V any](name string, c Converter[V], wrap func(V) T, unwrap func(T) (V, bool)) Variant[T] {
	return Variant[T]{
		name:     name,
		describe: c.Describe(),
		coerce: func(raw any, st State) (T, error) {
			v, err := c.Coerce(raw, st)
			if err != nil {
				var zero T
				return zero, err
			}
			return wrap(v), nil
		},
		dump: func(t T, st State) (any, bool, error) {
			v, ok := unwrap(t)
			if !ok {
				return nil, false, nil
			}
			d, err := c.Dump(v, st)
			return d, true, err
		},
	}
}

// OneOf tries each variant in declaration order and keeps the first that
// coerces. Declaration order breaks ties between variants that would accept
// the same input.
func OneOf[T any](variants ...Variant[T]) Converter[T] {
	return unionConverter[T]{variants: variants}
}

type unionConverter[T any] struct {
	variants []Variant[T]
}

func (u unionConverter[T]) Describe() string {
	parts := make([]string, 0, len(u.variants))
	for _, v := range u.variants {
		parts = append(parts, v.describe)
	}
	return strings.Join(parts, " | ")
}

func (u unionConverter[T]) Coerce(raw any, st State) (T, error) {
	attempts := make([]VariantError, 0, len(u.variants))
	for _, v := range u.variants {
		out, err := v.coerce(raw, st)
		if err == nil {
			return out, nil
		}
		attempts = append(attempts, VariantError{Variant: v.name, Err: err})
	}
	var zero T
	return zero, &UnionError{Path: st.Path(), Attempts: attempts}
}

func (u unionConverter[T]) Dump(t T, st State) (any, error) {
	for _, v := range u.variants {
		d, ok, err := v.dump(t, st)
		if !ok {
			continue
		}
		return d, err
	}
	return nil, &DecodeError{Path: st.Path(), Code: CodeNoVariant, Expected: u.Describe(), Message: "value matches no declared variant"}
}

// ScalarOrList is either a single T or a list of T.
type ScalarOrList[T any] struct {
	scalar T
	list   []T
	isList bool
	valid  bool
}

// Scalar returns the single-value variant.
func Scalar[T any](v T) ScalarOrList[T] { return ScalarOrList[T]{scalar: v, valid: true} }

// List returns the list variant. The values are copied.
func List[T any](vs ...T) ScalarOrList[T] {
	cp := make([]T, len(vs))
	copy(cp, vs)
	return ScalarOrList[T]{list: cp, isList: true, valid: true}
}

// Scalar returns the single value when this is the scalar variant.
func (s ScalarOrList[T]) Scalar() (T, bool) { return s.scalar, s.valid && !s.isList }

// List returns the values when this is the list variant.
func (s ScalarOrList[T]) List() ([]T, bool) { return s.list, s.isList }

// IsList reports whether this is the list variant.
func (s ScalarOrList[T]) IsList() bool { return s.isList }

// ScalarOrListOf resolves a scalar first and a list second.
func ScalarOrListOf[T any](elem Converter[T]) Converter[ScalarOrList[T]] {
	return OneOf(
		Case("scalar", elem, Scalar[T], func(s ScalarOrList[T]) (T, bool) { return s.Scalar() }),
		Case("list", ListOf(elem), func(vs []T) ScalarOrList[T] { return List(vs...) }, func(s ScalarOrList[T]) ([]T, bool) { return s.List() }),
	)
}
