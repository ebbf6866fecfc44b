package codec

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Marshal dumps v and encodes it as JSON.
func Marshal[T any](c Converter[T], v T) ([]byte, error) {
	raw, err := Encode(c, v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// Unmarshal parses JSON and coerces it into dst in Lenient mode.
func Unmarshal[T any](c Converter[T], data []byte, dst *T) error {
	return UnmarshalMode(c, data, dst, Lenient)
}

// UnmarshalMode parses JSON and coerces it into dst. dst is left untouched on
// failure.
func UnmarshalMode[T any](c Converter[T], data []byte, dst *T, mode Mode) error {
	raw, err := ParseJSON(data)
	if err != nil {
		return err
	}
	v, err := DecodeMode(c, raw, mode)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// ParseJSON decodes a single JSON document into plain values. Numbers are
// kept as json.Number so integers survive unchanged.
func ParseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("codec: parse json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("codec: parse json: trailing data after document")
	}
	return raw, nil
}
