package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes carried by DecodeError.Code.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidFormat = "invalid_format"
	CodeNoVariant     = "no_variant"
	CodeOverflow      = "overflow"
)

// DecodeError reports a value that does not match its declared shape.
type DecodeError struct {
	Path     string // dotted path from the decode root; "" is the root
	Code     string
	Expected string
	Actual   string
	Message  string
	// Model and Field name the innermost model field the failure occurred in.
	Model string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	b := &strings.Builder{}
	b.WriteString("codec: ")
	if e.Model != "" {
		b.WriteString(e.Model)
		if e.Field != "" {
			b.WriteString(".")
			b.WriteString(e.Field)
		}
		b.WriteString(" ")
	}
	fmt.Fprintf(b, "at %s: ", renderPath(e.Path))
	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Expected != "" || e.Actual != "":
		fmt.Fprintf(b, "expected %s, got %s", e.Expected, e.Actual)
	default:
		b.WriteString(e.Code)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// VariantError is the failure of a single union variant.
type VariantError struct {
	Variant string
	Err     error
}

// UnionError reports that no variant of a union accepted the input.
type UnionError struct {
	Path     string
	Model    string
	Field    string
	Attempts []VariantError
}

func (e *UnionError) Error() string {
	b := &strings.Builder{}
	b.WriteString("codec: ")
	if e.Model != "" {
		fmt.Fprintf(b, "%s.%s ", e.Model, e.Field)
	}
	fmt.Fprintf(b, "at %s: no variant matched", renderPath(e.Path))
	for i, a := range e.Attempts {
		if i == 0 {
			b.WriteString(" (")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s: %v", a.Variant, a.Err)
	}
	if len(e.Attempts) > 0 {
		b.WriteString(")")
	}
	return b.String()
}

func (e *UnionError) Unwrap() []error {
	out := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		out = append(out, a.Err)
	}
	return out
}

// AsDecodeError extracts the first *DecodeError in err's chain.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func renderPath(p string) string {
	if p == "" {
		return "<root>"
	}
	return p
}

func typeMismatch(st State, expected string, raw any) *DecodeError {
	return &DecodeError{
		Path:     st.Path(),
		Code:     CodeInvalidType,
		Expected: expected,
		Actual:   describeRaw(raw),
	}
}

// describeRaw names the JSON shape of a decoded value.
func describeRaw(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, number:
		return "number"
	case []any:
		return "list"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
