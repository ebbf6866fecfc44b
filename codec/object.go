package codec

import "fmt"

// Field describes one entry of a model's field table. Values are built with
// RequiredField, OptionalField and Extras.
type Field[M any] interface {
	// WireName is the JSON key.
	WireName() string
	// IsRequired reports whether the key must be present and non-null.
	IsRequired() bool
	coerce(m *M, raw any, present bool, st State) error
	dump(m *M, out map[string]any, st State) error
}

// RequiredField declares a key that must be present and non-null. ref returns
// a pointer to the struct field.
func RequiredField[M, T any](wire string, c Converter[T], ref func(*M) *T) Field[M] {
	return requiredField[M, T]{wire: wire, conv: c, ref: ref}
}

// OptionalField declares a key that may be absent or null.
func OptionalField[M, T any](wire string, c Converter[T], ref func(*M) *Optional[T]) Field[M] {
	return optionalField[M, T]{wire: wire, conv: c, ref: ref}
}

// Extras declares where unknown keys are preserved. A model without Extras
// drops unknown keys in Lenient mode.
func Extras[M any](ref func(*M) *map[string]any) Field[M] {
	return extrasField[M]{ref: ref}
}

type requiredField[M, T any] struct {
	wire string
	conv Converter[T]
	ref  func(*M) *T
}

func (f requiredField[M, T]) WireName() string { return f.wire }
func (f requiredField[M, T]) IsRequired() bool { return true }

func (f requiredField[M, T]) coerce(m *M, raw any, present bool, st State) error {
	if !present {
		return &DecodeError{Path: st.Path(), Code: CodeRequired, Expected: f.conv.Describe(), Actual: "missing"}
	}
	if raw == nil {
		return &DecodeError{Path: st.Path(), Code: CodeRequired, Expected: f.conv.Describe(), Actual: "null"}
	}
	v, err := f.conv.Coerce(raw, st)
	if err != nil {
		return err
	}
	*f.ref(m) = v
	return nil
}

func (f requiredField[M, T]) dump(m *M, out map[string]any, st State) error {
	d, err := f.conv.Dump(*f.ref(m), st)
	if err != nil {
		return err
	}
	out[f.wire] = d
	return nil
}

type optionalField[M, T any] struct {
	wire string
	conv Converter[T]
	ref  func(*M) *Optional[T]
}

func (f optionalField[M, T]) WireName() string { return f.wire }
func (f optionalField[M, T]) IsRequired() bool { return false }

func (f optionalField[M, T]) coerce(m *M, raw any, present bool, st State) error {
	switch {
	case !present:
		*f.ref(m) = Optional[T]{}
	case raw == nil:
		*f.ref(m) = Null[T]()
	default:
		v, err := f.conv.Coerce(raw, st)
		if err != nil {
			return err
		}
		*f.ref(m) = Some(v)
	}
	return nil
}

func (f optionalField[M, T]) dump(m *M, out map[string]any, st State) error {
	o := *f.ref(m)
	switch o.presence {
	case unset:
		return nil
	case null:
		out[f.wire] = nil
		return nil
	}
	d, err := f.conv.Dump(o.value, st)
	if err != nil {
		return err
	}
	out[f.wire] = d
	return nil
}

type extrasField[M any] struct {
	ref func(*M) *map[string]any
}

func (extrasField[M]) WireName() string                     { return "" }
func (extrasField[M]) IsRequired() bool                     { return false }
func (extrasField[M]) coerce(*M, any, bool, State) error    { return nil }
func (extrasField[M]) dump(*M, map[string]any, State) error { return nil }

// ObjectSchema is the converter for a model described by a field table.
type ObjectSchema[M any] struct {
	name   string
	fields []Field[M]
	extras *extrasField[M]
	known  map[string]struct{}
}

// Object builds the converter for model M. It panics on duplicate wire names,
// which are programming errors in the table.
func Object[M any](name string, fields ...Field[M]) *ObjectSchema[M] {
	o := &ObjectSchema[M]{name: name, known: make(map[string]struct{}, len(fields))}
	for _, f := range fields {
		if e, ok := f.(extrasField[M]); ok {
			o.extras = &e
			continue
		}
		if _, dup := o.known[f.WireName()]; dup {
			panic(fmt.Sprintf("codec: %s declares %q twice", name, f.WireName()))
		}
		o.known[f.WireName()] = struct{}{}
		o.fields = append(o.fields, f)
	}
	return o
}

// Name is the model name used in errors.
func (o *ObjectSchema[M]) Name() string { return o.name }

// Fields returns the declared field table, without Extras.
func (o *ObjectSchema[M]) Fields() []Field[M] { return o.fields }

func (o *ObjectSchema[M]) Describe() string { return o.name }

func (o *ObjectSchema[M]) Coerce(raw any, st State) (M, error) {
	var m M
	src, ok := raw.(map[string]any)
	if !ok {
		return m, o.tag(typeMismatch(st, o.name, raw), "")
	}
	for _, f := range o.fields {
		v, present := src[f.WireName()]
		if err := f.coerce(&m, v, present, st.Field(f.WireName())); err != nil {
			return m, o.tag(err, f.WireName())
		}
	}
	var extra map[string]any
	for _, k := range sortedKeys(src) {
		if _, ok := o.known[k]; ok {
			continue
		}
		if st.Strict() {
			err := &DecodeError{Path: st.Field(k).Path(), Code: CodeUnknownKey, Message: fmt.Sprintf("unknown key %q", k)}
			return m, o.tag(err, k)
		}
		if o.extras == nil {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = src[k]
	}
	if o.extras != nil {
		*o.extras.ref(&m) = extra
	}
	return m, nil
}

func (o *ObjectSchema[M]) Dump(v M, st State) (any, error) {
	out := make(map[string]any, len(o.fields))
	if o.extras != nil {
		for k, val := range *o.extras.ref(&v) {
			if _, ok := o.known[k]; ok {
				continue
			}
			out[k] = val
		}
	}
	for _, f := range o.fields {
		if err := f.dump(&v, out, st.Field(f.WireName())); err != nil {
			return nil, o.tag(err, f.WireName())
		}
	}
	return out, nil
}

// tag records the model and field on an error that has not been claimed
// by a nested model yet.
func (o *ObjectSchema[M]) tag(err error, field string) error {
	switch e := err.(type) {
	case *DecodeError:
		if e.Model == "" {
			e.Model, e.Field = o.name, field
		}
	case *UnionError:
		if e.Model == "" {
			e.Model, e.Field = o.name, field
		}
	}
	return err
}
