package codec

import (
	"math"
	"strconv"
	"time"
)

// number matches json.Number from either encoding/json or goccy/go-json.
type number interface {
	Float64() (float64, error)
	Int64() (int64, error)
	String() string
}

// String accepts JSON strings only.
func String() Converter[string] { return stringConverter{} }

type stringConverter struct{}

func (stringConverter) Describe() string { return "string" }

func (stringConverter) Coerce(raw any, st State) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", typeMismatch(st, "string", raw)
	}
	return s, nil
}

func (stringConverter) Dump(v string, _ State) (any, error) { return v, nil }

// Bool accepts JSON booleans only.
func Bool() Converter[bool] { return boolConverter{} }

type boolConverter struct{}

func (boolConverter) Describe() string { return "bool" }

func (boolConverter) Coerce(raw any, st State) (bool, error) {
	b, ok := raw.(bool)
	if !ok {
		return false, typeMismatch(st, "bool", raw)
	}
	return b, nil
}

func (boolConverter) Dump(v bool, _ State) (any, error) { return v, nil }

// Float accepts any JSON number.
func Float() Converter[float64] { return floatConverter{} }

type floatConverter struct{}

func (floatConverter) Describe() string { return "number" }

func (floatConverter) Coerce(raw any, st State) (float64, error) {
	switch n := raw.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case number:
		f, err := n.Float64()
		if err != nil {
			return 0, &DecodeError{Path: st.Path(), Code: CodeInvalidFormat, Expected: "number", Actual: n.String(), Err: err}
		}
		return f, nil
	default:
		return 0, typeMismatch(st, "number", raw)
	}
}

func (floatConverter) Dump(v float64, st State) (any, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &DecodeError{Path: st.Path(), Code: CodeInvalidFormat, Message: "NaN and Inf have no JSON representation"}
	}
	return v, nil
}

// Int accepts JSON numbers without a fractional part.
func Int() Converter[int64] { return intConverter{} }

type intConverter struct{}

func (intConverter) Describe() string { return "integer" }

func (intConverter) Coerce(raw any, st State) (int64, error) {
	switch n := raw.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, &DecodeError{Path: st.Path(), Code: CodeInvalidFormat, Expected: "integer", Actual: strconv.FormatFloat(n, 'g', -1, 64)}
		}
		if n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, &DecodeError{Path: st.Path(), Code: CodeOverflow, Expected: "integer", Actual: strconv.FormatFloat(n, 'g', -1, 64)}
		}
		return int64(n), nil
	case number:
		i, err := n.Int64()
		if err != nil {
			return 0, &DecodeError{Path: st.Path(), Code: CodeInvalidFormat, Expected: "integer", Actual: n.String(), Err: err}
		}
		return i, nil
	default:
		return 0, typeMismatch(st, "integer", raw)
	}
}

func (intConverter) Dump(v int64, _ State) (any, error) { return v, nil }

// Any passes decoded values through untouched.
func Any() Converter[any] { return anyConverter{} }

type anyConverter struct{}

func (anyConverter) Describe() string                     { return "any" }
func (anyConverter) Coerce(raw any, _ State) (any, error) { return raw, nil }
func (anyConverter) Dump(v any, _ State) (any, error)     { return v, nil }

// DateTime converts RFC 3339 strings to time.Time. The offset of the input is
// kept; dumps use RFC3339Nano.
func DateTime() Converter[time.Time] { return timeConverter{layout: time.RFC3339Nano, describe: "date-time"} }

// Date converts calendar dates ("2006-01-02") to time.Time at UTC midnight.
func Date() Converter[time.Time] { return timeConverter{layout: time.DateOnly, describe: "date"} }

type timeConverter struct {
	layout   string
	describe string
}

func (c timeConverter) Describe() string { return c.describe }

func (c timeConverter) Coerce(raw any, st State) (time.Time, error) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, typeMismatch(st, c.describe, raw)
	}
	t, err := time.Parse(c.layout, s)
	if err != nil {
		return time.Time{}, &DecodeError{Path: st.Path(), Code: CodeInvalidFormat, Expected: c.describe, Actual: strconv.Quote(s), Err: err}
	}
	return t, nil
}

func (c timeConverter) Dump(v time.Time, _ State) (any, error) {
	return v.Format(c.layout), nil
}
