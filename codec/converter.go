package codec

// Converter converts one declared shape between its wire representation and
// its typed representation.
//
// Coerce accepts the decoded JSON value; Dump must produce a value that
// Coerce maps back to an equal T.
type Converter[T any] interface {
	Coerce(raw any, st State) (T, error)
	Dump(v T, st State) (any, error)
	// Describe names the expected shape for error messages.
	Describe() string
}

// Func builds a Converter from a pair of functions.
func Func[T any](describe string, coerce func(raw any, st State) (T, error), dump func(v T, st State) (any, error)) Converter[T] {
	return funcConverter[T]{describe: describe, coerce: coerce, dump: dump}
}

type funcConverter[T any] struct {
	describe string
	coerce   func(raw any, st State) (T, error)
	dump     func(v T, st State) (any, error)
}

func (f funcConverter[T]) Coerce(raw any, st State) (T, error) { return f.coerce(raw, st) }
func (f funcConverter[T]) Dump(v T, st State) (any, error)     { return f.dump(v, st) }
func (f funcConverter[T]) Describe() string                    { return f.describe }

// Decode coerces a decoded JSON value from the root in Lenient mode.
func Decode[T any](c Converter[T], raw any) (T, error) {
	return c.Coerce(raw, NewState(Lenient))
}

// DecodeMode coerces a decoded JSON value from the root in the given mode.
func DecodeMode[T any](c Converter[T], raw any, mode Mode) (T, error) {
	return c.Coerce(raw, NewState(mode))
}

// Encode dumps a typed value from the root.
func Encode[T any](c Converter[T], v T) (any, error) {
	return c.Dump(v, NewState(Lenient))
}
