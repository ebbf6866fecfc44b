package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/routes"
)

// Quote is a priced offer sent to a customer or prospect.
type Quote struct {
	ID         string
	Number     codec.Optional[string]
	Status     codec.Enum[QuoteStatus]
	CompanyID  string
	Date       time.Time
	ValidUntil codec.Optional[time.Time]
	Currency   codec.Optional[string]
	TotalHT    codec.Optional[float64]
	TotalVAT   codec.Optional[float64]
	TotalTTC   codec.Optional[float64]
	Lines      []DocumentLine
	InvoiceID  codec.Optional[string]
	CreatedAt  codec.Optional[time.Time]
	UpdatedAt  codec.Optional[time.Time]
	Extra      map[string]any
}

var quoteCodec codec.Converter[Quote] = codec.Object("Quote",
	codec.RequiredField("id", codec.String(), func(m *Quote) *string { return &m.ID }),
	codec.OptionalField("number", codec.String(), func(m *Quote) *codec.Optional[string] { return &m.Number }),
	codec.RequiredField("status", quoteStatusCodec, func(m *Quote) *codec.Enum[QuoteStatus] { return &m.Status }),
	codec.RequiredField("company_id", codec.String(), func(m *Quote) *string { return &m.CompanyID }),
	codec.RequiredField("date", codec.Date(), func(m *Quote) *time.Time { return &m.Date }),
	codec.OptionalField("valid_until", codec.Date(), func(m *Quote) *codec.Optional[time.Time] { return &m.ValidUntil }),
	codec.OptionalField("currency", codec.String(), func(m *Quote) *codec.Optional[string] { return &m.Currency }),
	codec.OptionalField("total_ht", codec.Float(), func(m *Quote) *codec.Optional[float64] { return &m.TotalHT }),
	codec.OptionalField("total_vat", codec.Float(), func(m *Quote) *codec.Optional[float64] { return &m.TotalVAT }),
	codec.OptionalField("total_ttc", codec.Float(), func(m *Quote) *codec.Optional[float64] { return &m.TotalTTC }),
	codec.RequiredField("lines", documentLinesCodec, func(m *Quote) *[]DocumentLine { return &m.Lines }),
	codec.OptionalField("invoice_id", codec.String(), func(m *Quote) *codec.Optional[string] { return &m.InvoiceID }),
	codec.OptionalField("created_at", codec.DateTime(), func(m *Quote) *codec.Optional[time.Time] { return &m.CreatedAt }),
	codec.OptionalField("updated_at", codec.DateTime(), func(m *Quote) *codec.Optional[time.Time] { return &m.UpdatedAt }),
	codec.Extras(func(m *Quote) *map[string]any { return &m.Extra }),
)

var quotePageCodec = pageCodec(quoteCodec)

func (q Quote) MarshalJSON() ([]byte, error) { return codec.Marshal(quoteCodec, q) }

func (q *Quote) UnmarshalJSON(data []byte) error { return codec.Unmarshal(quoteCodec, data, q) }

func (q *Quote) decodeMode(data []byte, mode codec.Mode) error {
	return codec.UnmarshalMode(quoteCodec, data, q, mode)
}

// QuoteCreateParams creates a draft quote.
type QuoteCreateParams struct {
	CompanyID  string    `validate:"required,notblank"`
	Date       time.Time `validate:"required"`
	ValidUntil codec.Optional[time.Time]
	Currency   codec.Optional[string]
	Lines      codec.Optional[[]LineCreateParams]
}

// NewQuoteCreateParams returns params with the required fields set.
func NewQuoteCreateParams(companyID string, date time.Time) (QuoteCreateParams, error) {
	p := QuoteCreateParams{CompanyID: companyID, Date: date}
	return p, p.Validate()
}

func (p QuoteCreateParams) WithValidUntil(v time.Time) QuoteCreateParams {
	p.ValidUntil = codec.Some(v)
	return p
}

func (p QuoteCreateParams) WithCurrency(v string) QuoteCreateParams {
	p.Currency = codec.Some(v)
	return p
}

func (p QuoteCreateParams) WithLines(lines ...LineCreateParams) QuoteCreateParams {
	p.Lines = codec.Some(append([]LineCreateParams(nil), lines...))
	return p
}

func (p QuoteCreateParams) Validate() error {
	fields, err := collectFieldErrors(p, "", checkOptional("Currency", p.Currency, "iso4217"))
	if err != nil {
		return err
	}
	if lines, ok := p.Lines.Get(); ok {
		lineErrs, err := lineFieldErrors(lines)
		if err != nil {
			return err
		}
		fields = append(fields, lineErrs...)
	}
	if until, ok := p.ValidUntil.Get(); ok && until.Before(p.Date) {
		fields = append(fields, FieldError{Field: "ValidUntil", Message: "must not be before Date"})
	}
	if len(fields) > 0 {
		return &ValidationError{Params: "QuoteCreateParams", Fields: fields}
	}
	return nil
}

var quoteCreateCodec codec.Converter[QuoteCreateParams] = codec.Object("QuoteCreateParams",
	codec.RequiredField("company_id", codec.String(), func(m *QuoteCreateParams) *string { return &m.CompanyID }),
	codec.RequiredField("date", codec.Date(), func(m *QuoteCreateParams) *time.Time { return &m.Date }),
	codec.OptionalField("valid_until", codec.Date(), func(m *QuoteCreateParams) *codec.Optional[time.Time] { return &m.ValidUntil }),
	codec.OptionalField("currency", codec.String(), func(m *QuoteCreateParams) *codec.Optional[string] { return &m.Currency }),
	codec.OptionalField("lines", codec.ListOf(lineCreateCodec), func(m *QuoteCreateParams) *codec.Optional[[]LineCreateParams] { return &m.Lines }),
)

func (p QuoteCreateParams) MarshalJSON() ([]byte, error) { return marshalParams(quoteCreateCodec, p) }

// QuoteUpdateParams patches a quote. Only set fields are sent.
type QuoteUpdateParams struct {
	CompanyID  codec.Optional[string]
	Status     codec.Optional[codec.Enum[QuoteStatus]]
	Date       codec.Optional[time.Time]
	ValidUntil codec.Optional[time.Time]
	Currency   codec.Optional[string]
}

func (p QuoteUpdateParams) WithCompanyID(v string) QuoteUpdateParams {
	p.CompanyID = codec.Some(v)
	return p
}

func (p QuoteUpdateParams) WithStatus(v QuoteStatus) QuoteUpdateParams {
	p.Status = codec.Some(codec.Known(v))
	return p
}

func (p QuoteUpdateParams) WithDate(v time.Time) QuoteUpdateParams {
	p.Date = codec.Some(v)
	return p
}

func (p QuoteUpdateParams) WithValidUntil(v time.Time) QuoteUpdateParams {
	p.ValidUntil = codec.Some(v)
	return p
}

func (p QuoteUpdateParams) ClearValidUntil() QuoteUpdateParams {
	p.ValidUntil = codec.Null[time.Time]()
	return p
}

func (p QuoteUpdateParams) WithCurrency(v string) QuoteUpdateParams {
	p.Currency = codec.Some(v)
	return p
}

func (p QuoteUpdateParams) Validate() error {
	return validateParams("QuoteUpdateParams", p,
		checkOptional("CompanyID", p.CompanyID, "notblank"),
		checkOptional("Currency", p.Currency, "iso4217"),
		checkEnum("Status", p.Status, quoteStatusCodec),
	)
}

var quoteUpdateCodec codec.Converter[QuoteUpdateParams] = codec.Object("QuoteUpdateParams",
	codec.OptionalField("company_id", codec.String(), func(m *QuoteUpdateParams) *codec.Optional[string] { return &m.CompanyID }),
	codec.OptionalField("status", quoteStatusCodec, func(m *QuoteUpdateParams) *codec.Optional[codec.Enum[QuoteStatus]] { return &m.Status }),
	codec.OptionalField("date", codec.Date(), func(m *QuoteUpdateParams) *codec.Optional[time.Time] { return &m.Date }),
	codec.OptionalField("valid_until", codec.Date(), func(m *QuoteUpdateParams) *codec.Optional[time.Time] { return &m.ValidUntil }),
	codec.OptionalField("currency", codec.String(), func(m *QuoteUpdateParams) *codec.Optional[string] { return &m.Currency }),
)

func (p QuoteUpdateParams) MarshalJSON() ([]byte, error) { return marshalParams(quoteUpdateCodec, p) }

// QuotesClient manages quotes and their lines.
type QuotesClient struct {
	client *Client
	lines  linesService
}

func (c *QuotesClient) List(ctx context.Context, params ListParams, opts ...RequestOption) (Page[Quote], error) {
	if c == nil || c.client == nil {
		return Page[Quote]{}, notInitialized("quotes")
	}
	query, err := params.values()
	if err != nil {
		return Page[Quote]{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, routes.Quotes, query, nil, quotePageCodec, opts)
}

func (c *QuotesClient) Get(ctx context.Context, quoteID string, opts ...RequestOption) (Quote, error) {
	if c == nil || c.client == nil {
		return Quote{}, notInitialized("quotes")
	}
	p, err := byID(routes.QuoteByID, quoteID)
	if err != nil {
		return Quote{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, p, nil, nil, quoteCodec, opts)
}

func (c *QuotesClient) Create(ctx context.Context, params QuoteCreateParams, opts ...RequestOption) (Quote, error) {
	if c == nil || c.client == nil {
		return Quote{}, notInitialized("quotes")
	}
	body, err := encodeParams(quoteCreateCodec, params)
	if err != nil {
		return Quote{}, err
	}
	return fetch(ctx, c.client, http.MethodPost, routes.Quotes, nil, body, quoteCodec, opts)
}

func (c *QuotesClient) Update(ctx context.Context, quoteID string, params QuoteUpdateParams, opts ...RequestOption) (Quote, error) {
	if c == nil || c.client == nil {
		return Quote{}, notInitialized("quotes")
	}
	p, err := byID(routes.QuoteByID, quoteID)
	if err != nil {
		return Quote{}, err
	}
	body, err := encodeParams(quoteUpdateCodec, params)
	if err != nil {
		return Quote{}, err
	}
	return fetch(ctx, c.client, http.MethodPatch, p, nil, body, quoteCodec, opts)
}

func (c *QuotesClient) Delete(ctx context.Context, quoteID string, opts ...RequestOption) error {
	if c == nil || c.client == nil {
		return notInitialized("quotes")
	}
	p, err := byID(routes.QuoteByID, quoteID)
	if err != nil {
		return err
	}
	return remove(ctx, c.client, p, opts)
}

// ConvertToInvoice turns a quote into a draft invoice and returns it.
func (c *QuotesClient) ConvertToInvoice(ctx context.Context, quoteID string, opts ...RequestOption) (Invoice, error) {
	if c == nil || c.client == nil {
		return Invoice{}, notInitialized("quotes")
	}
	p, err := byID(routes.QuoteToInvoice, quoteID)
	if err != nil {
		return Invoice{}, err
	}
	return fetch(ctx, c.client, http.MethodPost, p, nil, nil, invoiceCodec, opts)
}

func (c *QuotesClient) ListLines(ctx context.Context, quoteID string, opts ...RequestOption) ([]DocumentLine, error) {
	if c == nil || c.client == nil {
		return nil, notInitialized("quotes")
	}
	return c.lines.list(ctx, quoteID, opts)
}

func (c *QuotesClient) CreateLine(ctx context.Context, quoteID string, params LineCreateParams, opts ...RequestOption) (DocumentLine, error) {
	if c == nil || c.client == nil {
		return DocumentLine{}, notInitialized("quotes")
	}
	return c.lines.create(ctx, quoteID, params, opts)
}

func (c *QuotesClient) UpdateLine(ctx context.Context, quoteID, lineID string, params LineUpdateParams, opts ...RequestOption) (DocumentLine, error) {
	if c == nil || c.client == nil {
		return DocumentLine{}, notInitialized("quotes")
	}
	return c.lines.update(ctx, quoteID, lineID, params, opts)
}

func (c *QuotesClient) DeleteLine(ctx context.Context, quoteID, lineID string, opts ...RequestOption) error {
	if c == nil || c.client == nil {
		return notInitialized("quotes")
	}
	return c.lines.delete(ctx, quoteID, lineID, opts)
}
