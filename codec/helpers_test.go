package codec

import (
	"encoding/json"
	"reflect"
	"testing"
)

type line struct {
	ID       string
	Label    string
	PriceHT  Optional[float64]
	Quantity Optional[int64]
	Tags     Optional[[]string]
	Kind     Optional[Enum[lineKind]]
	Extra    map[string]any
}

type lineKind string

const (
	lineKindProduct lineKind = "product"
	lineKindService lineKind = "service"
)

var lineCodec = Object("Line",
	RequiredField("id", String(), func(m *line) *string { return &m.ID }),
	RequiredField("label", String(), func(m *line) *string { return &m.Label }),
	OptionalField("price_ht", Float(), func(m *line) *Optional[float64] { return &m.PriceHT }),
	OptionalField("quantity", Int(), func(m *line) *Optional[int64] { return &m.Quantity }),
	OptionalField("tags", ListOf(String()), func(m *line) *Optional[[]string] { return &m.Tags }),
	OptionalField("kind", EnumOf(lineKindProduct, lineKindService), func(m *line) *Optional[Enum[lineKind]] { return &m.Kind }),
	Extras(func(m *line) *map[string]any { return &m.Extra }),
)

type document struct {
	Number string
	Lines  []line
}

var documentCodec = Object("Document",
	RequiredField("number", String(), func(m *document) *string { return &m.Number }),
	RequiredField("lines", ListOf[line](lineCodec), func(m *document) *[]line { return &m.Lines }),
)

// canonical re-encodes a JSON-shape value through encoding/json so values
// produced by different decoders compare equal.
func canonical(t *testing.T, v any) any {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func mustParse(t *testing.T, s string) any {
	t.Helper()
	raw, err := ParseJSON([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return raw
}

func assertJSONEqual(t *testing.T, got any, want string) {
	t.Helper()
	var w any
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("bad fixture %s: %v", want, err)
	}
	if g := canonical(t, got); !reflect.DeepEqual(g, w) {
		gb, _ := json.Marshal(g)
		t.Fatalf("json mismatch\n got: %s\nwant: %s", gb, want)
	}
}
