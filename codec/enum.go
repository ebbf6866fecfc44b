package codec

// Enum is a string restricted to a closed set of values, with an escape
// hatch for values the client does not know about yet. It is either Known
// (one of the declared values) or Raw (anything else, kept verbatim).
type Enum[E ~string] struct {
	raw   string
	known bool
}

// Known wraps a declared enum value.
func Known[E ~string](v E) Enum[E] { return Enum[E]{raw: string(v), known: true} }

// Raw wraps a value outside the declared set.
func Raw[E ~string](s string) Enum[E] { return Enum[E]{raw: s} }

// Value returns the declared value when the enum is Known.
func (e Enum[E]) Value() (E, bool) {
	if !e.known {
		return "", false
	}
	return E(e.raw), true
}

// IsKnown reports whether the value is one of the declared values.
func (e Enum[E]) IsKnown() bool { return e.known }

// Is reports whether the enum holds v.
func (e Enum[E]) Is(v E) bool { return e.raw == string(v) }

// IsZero reports whether the enum was never assigned.
func (e Enum[E]) IsZero() bool { return e.raw == "" && !e.known }

// String returns the wire value.
func (e Enum[E]) String() string { return e.raw }

// EnumOf returns a converter over the given declared values. Unknown strings
// coerce to Raw without error.
func EnumOf[E ~string](values ...E) Converter[Enum[E]] {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[string(v)] = struct{}{}
	}
	return enumConverter[E]{values: set}
}

type enumConverter[E ~string] struct {
	values map[string]struct{}
}

func (enumConverter[E]) Describe() string { return "enum string" }

func (c enumConverter[E]) Coerce(raw any, st State) (Enum[E], error) {
	s, ok := raw.(string)
	if !ok {
		return Enum[E]{}, typeMismatch(st, "enum string", raw)
	}
	if _, ok := c.values[s]; ok {
		return Enum[E]{raw: s, known: true}, nil
	}
	return Enum[E]{raw: s}, nil
}

func (enumConverter[E]) Dump(v Enum[E], _ State) (any, error) { return v.raw, nil }
