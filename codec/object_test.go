package codec

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestObjectRoundTripPayload(t *testing.T) {
	payloads := []string{
		`{"id":"l1","label":"Consulting"}`,
		`{"id":"l1","label":"Consulting","price_ht":10.5,"quantity":3,"tags":["a","b"],"kind":"service"}`,
		`{"id":"l1","label":"Consulting","price_ht":null,"tags":[]}`,
		`{"id":"l1","label":"Consulting","kind":"subscription","custom_ref":{"x":1}}`,
	}
	for _, p := range payloads {
		v, err := Decode[line](lineCodec, mustParse(t, p))
		if err != nil {
			t.Fatalf("decode %s: %v", p, err)
		}
		out, err := Encode[line](lineCodec, v)
		if err != nil {
			t.Fatalf("encode %s: %v", p, err)
		}
		assertJSONEqual(t, out, p)
	}
}

func TestObjectRoundTripValue(t *testing.T) {
	want := line{
		ID:       "l1",
		Label:    "Design",
		PriceHT:  Some(99.9),
		Quantity: Null[int64](),
		Tags:     Some([]string{"x"}),
		Kind:     Some(Known(lineKindProduct)),
	}
	raw, err := Encode[line](lineCodec, want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode[line](lineCodec, canonical(t, raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch\n got: %#v\nwant: %#v", got, want)
	}
}

func TestObjectOmitsUnsetAndKeepsNull(t *testing.T) {
	out, err := Encode[line](lineCodec, line{ID: "l1", Label: "x", Quantity: Null[int64]()})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	m := out.(map[string]any)
	if _, ok := m["price_ht"]; ok {
		t.Fatalf("unset optional must be omitted: %v", m)
	}
	if v, ok := m["quantity"]; !ok || v != nil {
		t.Fatalf("null optional must dump as null: %v", m)
	}
}

func TestObjectOptionalPresenceStates(t *testing.T) {
	v, err := Decode[line](lineCodec, mustParse(t, `{"id":"a","label":"b","price_ht":null}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !v.PriceHT.IsSet() || !v.PriceHT.IsNull() || v.PriceHT.HasValue() {
		t.Fatalf("expected explicit null, got %#v", v.PriceHT)
	}
	if v.Quantity.IsSet() {
		t.Fatalf("expected unset quantity, got %#v", v.Quantity)
	}
	if got := v.Quantity.Or(7); got != 7 {
		t.Fatalf("Or default: got %d", got)
	}
}

func TestObjectRequiredField(t *testing.T) {
	cases := map[string]string{
		"missing": `{"id":"a"}`,
		"null":    `{"id":"a","label":null}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode[line](lineCodec, mustParse(t, payload))
			de, ok := AsDecodeError(err)
			if !ok {
				t.Fatalf("expected DecodeError, got %v", err)
			}
			if de.Code != CodeRequired || de.Path != "label" || de.Model != "Line" || de.Field != "label" {
				t.Fatalf("unexpected error: %+v", de)
			}
		})
	}
}

func TestObjectNestedErrorPath(t *testing.T) {
	payload := `{"number":"F-1","lines":[{"id":"a","label":"x"},{"id":"b","label":"y"},{"id":"c","label":"z","price_ht":"ten"}]}`
	_, err := Decode[document](documentCodec, mustParse(t, payload))
	de, ok := AsDecodeError(err)
	if !ok {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if de.Path != "lines.2.price_ht" {
		t.Fatalf("unexpected path %q", de.Path)
	}
	if de.Model != "Line" || de.Field != "price_ht" {
		t.Fatalf("innermost model should be reported: %+v", de)
	}
	if de.Expected != "number" || de.Actual != "string" {
		t.Fatalf("unexpected shapes: %+v", de)
	}
	if !strings.Contains(err.Error(), "lines.2.price_ht") {
		t.Fatalf("message lacks path: %v", err)
	}
}

func TestObjectUnknownKeys(t *testing.T) {
	payload := mustParse(t, `{"id":"a","label":"b","legacy":true}`)

	v, err := Decode[line](lineCodec, payload)
	if err != nil {
		t.Fatalf("lenient decode: %v", err)
	}
	if v.Extra["legacy"] != true {
		t.Fatalf("expected legacy preserved, got %#v", v.Extra)
	}

	_, err = DecodeMode[line](lineCodec, payload, Strict)
	de, ok := AsDecodeError(err)
	if !ok || de.Code != CodeUnknownKey || de.Path != "legacy" {
		t.Fatalf("expected unknown_key error, got %v", err)
	}

	doc, err := Decode[document](documentCodec, mustParse(t, `{"number":"1","lines":[],"dropped":1}`))
	if err != nil {
		t.Fatalf("decode without extras: %v", err)
	}
	out, _ := Encode[document](documentCodec, doc)
	if _, ok := out.(map[string]any)["dropped"]; ok {
		t.Fatalf("models without extras drop unknown keys")
	}
}

func TestObjectExtrasDoNotShadowFields(t *testing.T) {
	v := line{ID: "a", Label: "b", Extra: map[string]any{"label": "stale", "note": "n"}}
	out, err := Encode[line](lineCodec, v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	assertJSONEqual(t, out, `{"id":"a","label":"b","note":"n"}`)
}

func TestObjectRejectsNonMap(t *testing.T) {
	_, err := Decode[line](lineCodec, []any{})
	de, ok := AsDecodeError(err)
	if !ok || de.Code != CodeInvalidType || de.Actual != "list" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestObjectDuplicateWireNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Object("Dup",
		RequiredField("id", String(), func(m *line) *string { return &m.ID }),
		RequiredField("id", String(), func(m *line) *string { return &m.Label }),
	)
}

func TestUnmarshalLeavesDestinationOnFailure(t *testing.T) {
	dst := line{ID: "keep"}
	err := Unmarshal[line](lineCodec, []byte(`{"id":1}`), &dst)
	if err == nil {
		t.Fatalf("expected error")
	}
	var de *DecodeError
	if !errors.As(err, &de) || dst.ID != "keep" {
		t.Fatalf("unexpected state: %v %#v", err, dst)
	}
	if err := Unmarshal[line](lineCodec, []byte(`{"id":"a","label":"b"} {}`), &dst); err == nil {
		t.Fatalf("expected trailing data error")
	}
}

func TestMarshal(t *testing.T) {
	data, err := Marshal[line](lineCodec, line{ID: "a", Label: "b", PriceHT: Some(10.0)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assertJSONEqual(t, mustParse(t, string(data)), `{"id":"a","label":"b","price_ht":10.0}`)
}
