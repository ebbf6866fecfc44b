package codec

import "sort"

// ListOf lifts elem over JSON arrays. Coercion stops at the first failing
// element and reports its index in the path.
func ListOf[T any](elem Converter[T]) Converter[[]T] { return listConverter[T]{elem: elem} }

type listConverter[T any] struct{ elem Converter[T] }

func (c listConverter[T]) Describe() string { return "list<" + c.elem.Describe() + ">" }

func (c listConverter[T]) Coerce(raw any, st State) ([]T, error) {
	src, ok := raw.([]any)
	if !ok {
		return nil, typeMismatch(st, c.Describe(), raw)
	}
	out := make([]T, 0, len(src))
	for i, item := range src {
		v, err := c.elem.Coerce(item, st.Index(i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c listConverter[T]) Dump(v []T, st State) (any, error) {
	out := make([]any, 0, len(v))
	for i, item := range v {
		d, err := c.elem.Dump(item, st.Index(i))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// MapOf lifts elem over JSON objects with arbitrary keys. Keys are visited in
// sorted order so the reported failure is deterministic.
func MapOf[T any](elem Converter[T]) Converter[map[string]T] { return mapConverter[T]{elem: elem} }

type mapConverter[T any] struct{ elem Converter[T] }

func (c mapConverter[T]) Describe() string { return "map<" + c.elem.Describe() + ">" }

func (c mapConverter[T]) Coerce(raw any, st State) (map[string]T, error) {
	src, ok := raw.(map[string]any)
	if !ok {
		return nil, typeMismatch(st, c.Describe(), raw)
	}
	out := make(map[string]T, len(src))
	for _, k := range sortedKeys(src) {
		v, err := c.elem.Coerce(src[k], st.Field(k))
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (c mapConverter[T]) Dump(v map[string]T, st State) (any, error) {
	out := make(map[string]any, len(v))
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		d, err := c.elem.Dump(v[k], st.Field(k))
		if err != nil {
			return nil, err
		}
		out[k] = d
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
