package codec

type presence uint8

const (
	unset presence = iota
	null
	set
)

// Optional holds an optional model field. The zero value is unset and is
// omitted from dumps; Null is present on the wire as JSON null.
type Optional[T any] struct {
	value    T
	presence presence
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, presence: set} }

// Null returns an Optional that dumps as JSON null.
func Null[T any]() Optional[T] { return Optional[T]{presence: null} }

// Get returns the value and whether one is held. Unset and null both report false.
func (o Optional[T]) Get() (T, bool) { return o.value, o.presence == set }

// Value returns the held value or the zero value of T.
func (o Optional[T]) Value() T { return o.value }

// Or returns the held value or def.
func (o Optional[T]) Or(def T) T {
	if o.presence == set {
		return o.value
	}
	return def
}

// IsSet reports whether the field appears on the wire (as a value or as null).
func (o Optional[T]) IsSet() bool { return o.presence != unset }

// IsNull reports whether the field is explicitly null.
func (o Optional[T]) IsNull() bool { return o.presence == null }

// HasValue reports whether a non-null value is held.
func (o Optional[T]) HasValue() bool { return o.presence == set }
