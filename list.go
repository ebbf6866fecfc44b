package sdk

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
)

var queryEncoder = schema.NewEncoder()

// SortOrder is the direction of a sorted listing.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListParams controls pagination, sorting and free-text filtering of list
// endpoints. The zero value lists the first page with server defaults.
type ListParams struct {
	Page    int       `schema:"page,omitempty" validate:"gte=0"`
	PerPage int       `schema:"per_page,omitempty" validate:"gte=0,lte=100"`
	Sort    string    `schema:"sort,omitempty"`
	Order   SortOrder `schema:"order,omitempty" validate:"omitempty,oneof=asc desc"`
	Query   string    `schema:"q,omitempty"`
}

// Validate checks the paging bounds.
func (p ListParams) Validate() error {
	return validateParams("ListParams", p)
}

// Next returns the params for the page after p.
func (p ListParams) Next() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	p.Page++
	return p
}

func (p ListParams) values() (url.Values, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	v := url.Values{}
	if err := queryEncoder.Encode(p, v); err != nil {
		return nil, fmt.Errorf("sdk: encode list params: %w", err)
	}
	return v, nil
}

// PageMeta describes where a page sits in the full listing.
type PageMeta struct {
	Page       int64
	PerPage    int64
	Total      int64
	TotalPages int64
}

// Page is one page of a list endpoint.
type Page[T any] struct {
	Data []T
	Meta PageMeta
}

// HasMore reports whether pages follow this one.
func (p Page[T]) HasMore() bool { return p.Meta.Page < p.Meta.TotalPages }

var pageMetaCodec codec.Converter[PageMeta] = codec.Object("PageMeta",
	codec.RequiredField("page", codec.Int(), func(m *PageMeta) *int64 { return &m.Page }),
	codec.RequiredField("per_page", codec.Int(), func(m *PageMeta) *int64 { return &m.PerPage }),
	codec.RequiredField("total", codec.Int(), func(m *PageMeta) *int64 { return &m.Total }),
	codec.RequiredField("total_pages", codec.Int(), func(m *PageMeta) *int64 { return &m.TotalPages }),
)

func pageCodec[T any](item codec.Converter[T]) codec.Converter[Page[T]] {
	return codec.Object("Page<"+item.Describe()+">",
		codec.RequiredField("data", codec.ListOf(item), func(m *Page[T]) *[]T { return &m.Data }),
		codec.RequiredField("meta", pageMetaCodec, func(m *Page[T]) *PageMeta { return &m.Meta }),
	)
}
