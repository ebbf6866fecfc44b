package codec

import (
	"reflect"
	"testing"
)

func TestListOfFailsAtomicallyWithIndex(t *testing.T) {
	c := ListOf(Float())
	_, err := Decode(c, mustParse(t, `[1, 2.5, "three", 4]`))
	de, ok := AsDecodeError(err)
	if !ok {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if de.Path != "2" {
		t.Fatalf("expected path 2, got %q", de.Path)
	}
}

func TestListOfFirstFailureWins(t *testing.T) {
	_, err := Decode(ListOf(String()), mustParse(t, `["a", 1, true]`))
	de, ok := AsDecodeError(err)
	if !ok || de.Path != "1" {
		t.Fatalf("expected failure at index 1, got %v", err)
	}
}

func TestListOfEmptyAndOrder(t *testing.T) {
	got, err := Decode(ListOf(String()), []any{})
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("empty list should decode to a non-nil empty slice: %#v %v", got, err)
	}
	out, err := Encode(ListOf(String()), nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if l, ok := out.([]any); !ok || len(l) != 0 {
		t.Fatalf("nil slice should dump as an empty list, got %#v", out)
	}
	got, err = Decode(ListOf(String()), []any{"c", "a", "b"})
	if err != nil || !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Fatalf("order not preserved: %#v %v", got, err)
	}
}

func TestListOfRejectsScalar(t *testing.T) {
	_, err := Decode(ListOf(String()), "x")
	de, ok := AsDecodeError(err)
	if !ok || de.Expected != "list<string>" || de.Actual != "string" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMapOf(t *testing.T) {
	c := MapOf(Int())
	got, err := Decode(c, mustParse(t, `{"b":2,"a":1}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]int64{"a": 1, "b": 2}) {
		t.Fatalf("unexpected map %#v", got)
	}
	out, err := Encode(c, got)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	assertJSONEqual(t, out, `{"a":1,"b":2}`)

	_, err = Decode(c, mustParse(t, `{"z":"no","b":2,"c":1.5}`))
	de, ok := AsDecodeError(err)
	if !ok || de.Path != "c" {
		t.Fatalf("expected deterministic failure at c, got %v", err)
	}
}

func TestNestedCollectionsPath(t *testing.T) {
	c := MapOf(ListOf(Bool()))
	_, err := Decode(c, mustParse(t, `{"flags":[true,false,"yes"]}`))
	de, ok := AsDecodeError(err)
	if !ok || de.Path != "flags.2" {
		t.Fatalf("unexpected error: %v", err)
	}
}
