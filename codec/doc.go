// Package codec maps between decoded JSON values (string, number, bool, nil,
// []any, map[string]any) and typed Go values.
//
// A Converter handles exactly one declared shape in both directions. Models
// describe themselves with a static field table built by Object, and the
// collection and union converters compose over any Converter:
//
//	var lineCodec codec.Converter[Line] = codec.Object("Line",
//		codec.RequiredField("id", codec.String(), func(m *Line) *string { return &m.ID }),
//		codec.OptionalField("price_ht", codec.Float(), func(m *Line) *codec.Optional[float64] { return &m.PriceHT }),
//	)
//
// Coerce fails fast: the first failing field or element aborts the whole
// value and the returned *DecodeError carries the dotted path to it.
package codec
