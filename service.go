package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/headers"
	"github.com/ledgerdesk/ledgerdesk-go/routes"
)

// validatable is implemented by every parameter type.
type validatable interface {
	Validate() error
}

func notInitialized(name string) error {
	return fmt.Errorf("sdk: %s client not initialized", name)
}

// encodeParams validates p and dumps it into a JSON-shaped body.
func encodeParams[P any](conv codec.Converter[P], p P) (any, error) {
	if v, ok := any(p).(validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	body, err := codec.Encode(conv, p)
	if err != nil {
		return nil, fmt.Errorf("sdk: encode %s: %w", conv.Describe(), err)
	}
	return body, nil
}

// marshalParams backs the MarshalJSON methods of parameter types, so params
// passed to Client.Do or json.Marshal are validated and dumped like the
// typed service calls do.
func marshalParams[P validatable](conv codec.Converter[P], p P) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return codec.Marshal(conv, p)
}

// modeDecoder is implemented by response models; it decodes in the client's
// mode instead of the lenient UnmarshalJSON default.
type modeDecoder interface {
	decodeMode(data []byte, mode codec.Mode) error
}

// routePath expands a route template. Blank identifiers fail validation before
// any request is built.
func routePath(template string, vars routes.Vars) (string, error) {
	var fields []FieldError
	for _, name := range sortedVarNames(vars) {
		if strings.TrimSpace(vars[name]) == "" {
			fields = append(fields, FieldError{Field: name, Message: "required"})
		}
	}
	if len(fields) > 0 {
		return "", &ValidationError{Params: "path", Fields: fields}
	}
	p, err := routes.Expand(template, vars)
	if err != nil {
		return "", fmt.Errorf("sdk: %w", err)
	}
	return p, nil
}

func sortedVarNames(vars routes.Vars) []string {
	m := make(map[string]any, len(vars))
	for k := range vars {
		m[k] = nil
	}
	return sortedKeys(m)
}

func byID(template, uid string) (string, error) {
	return routePath(template, routes.Vars{"uid": uid})
}

// fetch sends a request and decodes the response body through conv.
func fetch[R any](ctx context.Context, c *Client, method, p string, query url.Values, body any, conv codec.Converter[R], opts []RequestOption) (R, error) {
	var out R
	resp, req, err := c.call(ctx, method, p, query, body, opts)
	if err != nil {
		return out, err
	}
	if ct := resp.header.Get(headers.ContentType); !isJSONMediaType(ct) {
		return out, &DecodeError{Model: conv.Describe(), Method: req.Method, URL: req.URL.Redacted(), Err: fmt.Errorf("unexpected content type %q", ct)}
	}
	if err := codec.UnmarshalMode(conv, resp.body, &out, c.mode); err != nil {
		return out, &DecodeError{Model: conv.Describe(), Method: req.Method, URL: req.URL.Redacted(), Err: err}
	}
	return out, nil
}

// remove sends a DELETE and discards the response body.
func remove(ctx context.Context, c *Client, p string, opts []RequestOption) error {
	_, _, err := c.call(ctx, http.MethodDelete, p, nil, nil, opts)
	return err
}
