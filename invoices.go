package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/routes"
)

// Invoice is a customer invoice.
type Invoice struct {
	ID        string
	Number    codec.Optional[string]
	Status    codec.Enum[InvoiceStatus]
	CompanyID string
	Date      time.Time
	DueDate   codec.Optional[time.Time]
	Currency  codec.Optional[string]
	TotalHT   codec.Optional[float64]
	TotalVAT  codec.Optional[float64]
	TotalTTC  codec.Optional[float64]
	Lines     []DocumentLine
	Metadata  codec.Optional[map[string]string]
	CreatedAt codec.Optional[time.Time]
	UpdatedAt codec.Optional[time.Time]
	Extra     map[string]any
}

var invoiceCodec codec.Converter[Invoice] = codec.Object("Invoice",
	codec.RequiredField("id", codec.String(), func(m *Invoice) *string { return &m.ID }),
	codec.OptionalField("number", codec.String(), func(m *Invoice) *codec.Optional[string] { return &m.Number }),
	codec.RequiredField("status", invoiceStatusCodec, func(m *Invoice) *codec.Enum[InvoiceStatus] { return &m.Status }),
	codec.RequiredField("company_id", codec.String(), func(m *Invoice) *string { return &m.CompanyID }),
	codec.RequiredField("date", codec.Date(), func(m *Invoice) *time.Time { return &m.Date }),
	codec.OptionalField("due_date", codec.Date(), func(m *Invoice) *codec.Optional[time.Time] { return &m.DueDate }),
	codec.OptionalField("currency", codec.String(), func(m *Invoice) *codec.Optional[string] { return &m.Currency }),
	codec.OptionalField("total_ht", codec.Float(), func(m *Invoice) *codec.Optional[float64] { return &m.TotalHT }),
	codec.OptionalField("total_vat", codec.Float(), func(m *Invoice) *codec.Optional[float64] { return &m.TotalVAT }),
	codec.OptionalField("total_ttc", codec.Float(), func(m *Invoice) *codec.Optional[float64] { return &m.TotalTTC }),
	codec.RequiredField("lines", documentLinesCodec, func(m *Invoice) *[]DocumentLine { return &m.Lines }),
	codec.OptionalField("metadata", codec.MapOf(codec.String()), func(m *Invoice) *codec.Optional[map[string]string] { return &m.Metadata }),
	codec.OptionalField("created_at", codec.DateTime(), func(m *Invoice) *codec.Optional[time.Time] { return &m.CreatedAt }),
	codec.OptionalField("updated_at", codec.DateTime(), func(m *Invoice) *codec.Optional[time.Time] { return &m.UpdatedAt }),
	codec.Extras(func(m *Invoice) *map[string]any { return &m.Extra }),
)

var invoicePageCodec = pageCodec(invoiceCodec)

func (i Invoice) MarshalJSON() ([]byte, error) { return codec.Marshal(invoiceCodec, i) }

func (i *Invoice) UnmarshalJSON(data []byte) error { return codec.Unmarshal(invoiceCodec, data, i) }

func (i *Invoice) decodeMode(data []byte, mode codec.Mode) error {
	return codec.UnmarshalMode(invoiceCodec, data, i, mode)
}

// InvoiceCreateParams creates a draft invoice.
type InvoiceCreateParams struct {
	CompanyID string    `validate:"required,notblank"`
	Date      time.Time `validate:"required"`
	DueDate   codec.Optional[time.Time]
	Currency  codec.Optional[string]
	Lines     codec.Optional[[]LineCreateParams]
	Metadata  codec.Optional[map[string]string]
}

// NewInvoiceCreateParams returns params with the required fields set.
func NewInvoiceCreateParams(companyID string, date time.Time) (InvoiceCreateParams, error) {
	p := InvoiceCreateParams{CompanyID: companyID, Date: date}
	return p, p.Validate()
}

func (p InvoiceCreateParams) WithDueDate(v time.Time) InvoiceCreateParams {
	p.DueDate = codec.Some(v)
	return p
}

// WithCurrency sets the ISO 4217 currency code.
func (p InvoiceCreateParams) WithCurrency(v string) InvoiceCreateParams {
	p.Currency = codec.Some(v)
	return p
}

// WithLines replaces the initial lines.
func (p InvoiceCreateParams) WithLines(lines ...LineCreateParams) InvoiceCreateParams {
	p.Lines = codec.Some(append([]LineCreateParams(nil), lines...))
	return p
}

func (p InvoiceCreateParams) WithMetadata(md map[string]string) InvoiceCreateParams {
	p.Metadata = codec.Some(cloneStrings(md))
	return p
}

func (p InvoiceCreateParams) Validate() error {
	fields, err := collectFieldErrors(p, "",
		checkOptional("Currency", p.Currency, "iso4217"),
	)
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
	if due, ok := p.DueDate.Get(); ok && due.Before(p.Date) {
		fields = append(fields, FieldError{Field: "DueDate", Message: "must not be before Date"})
	}
	if len(fields) > 0 {
		return &ValidationError{Params: "InvoiceCreateParams", Fields: fields}
	}
	return nil
}

var invoiceCreateCodec codec.Converter[InvoiceCreateParams] = codec.Object("InvoiceCreateParams",
	codec.RequiredField("company_id", codec.String(), func(m *InvoiceCreateParams) *string { return &m.CompanyID }),
	codec.RequiredField("date", codec.Date(), func(m *InvoiceCreateParams) *time.Time { return &m.Date }),
	codec.OptionalField("due_date", codec.Date(), func(m *InvoiceCreateParams) *codec.Optional[time.Time] { return &m.DueDate }),
	codec.OptionalField("currency", codec.String(), func(m *InvoiceCreateParams) *codec.Optional[string] { return &m.Currency }),
	codec.OptionalField("lines", codec.ListOf(lineCreateCodec), func(m *InvoiceCreateParams) *codec.Optional[[]LineCreateParams] { return &m.Lines }),
	codec.OptionalField("metadata", codec.MapOf(codec.String()), func(m *InvoiceCreateParams) *codec.Optional[map[string]string] { return &m.Metadata }),
)

func (p InvoiceCreateParams) MarshalJSON() ([]byte, error) { return marshalParams(invoiceCreateCodec, p) }

// InvoiceUpdateParams patches an invoice. Only set fields are sent.
type InvoiceUpdateParams struct {
	CompanyID codec.Optional[string]
	Status    codec.Optional[codec.Enum[InvoiceStatus]]
	Date      codec.Optional[time.Time]
	DueDate   codec.Optional[time.Time]
	Currency  codec.Optional[string]
	Metadata  codec.Optional[map[string]string]
}

func (p InvoiceUpdateParams) WithCompanyID(v string) InvoiceUpdateParams {
	p.CompanyID = codec.Some(v)
	return p
}

func (p InvoiceUpdateParams) WithStatus(v InvoiceStatus) InvoiceUpdateParams {
	p.Status = codec.Some(codec.Known(v))
	return p
}

func (p InvoiceUpdateParams) WithDate(v time.Time) InvoiceUpdateParams {
	p.Date = codec.Some(v)
	return p
}

func (p InvoiceUpdateParams) WithDueDate(v time.Time) InvoiceUpdateParams {
	p.DueDate = codec.Some(v)
	return p
}

// ClearDueDate sends due_date as null.
func (p InvoiceUpdateParams) ClearDueDate() InvoiceUpdateParams {
	p.DueDate = codec.Null[time.Time]()
	return p
}

func (p InvoiceUpdateParams) WithCurrency(v string) InvoiceUpdateParams {
	p.Currency = codec.Some(v)
	return p
}

func (p InvoiceUpdateParams) WithMetadata(md map[string]string) InvoiceUpdateParams {
	p.Metadata = codec.Some(cloneStrings(md))
	return p
}

func (p InvoiceUpdateParams) Validate() error {
	return validateParams("InvoiceUpdateParams", p,
		checkOptional("CompanyID", p.CompanyID, "notblank"),
		checkOptional("Currency", p.Currency, "iso4217"),
		checkEnum("Status", p.Status, invoiceStatusCodec),
	)
}

var invoiceUpdateCodec codec.Converter[InvoiceUpdateParams] = codec.Object("InvoiceUpdateParams",
	codec.OptionalField("company_id", codec.String(), func(m *InvoiceUpdateParams) *codec.Optional[string] { return &m.CompanyID }),
	codec.OptionalField("status", invoiceStatusCodec, func(m *InvoiceUpdateParams) *codec.Optional[codec.Enum[InvoiceStatus]] { return &m.Status }),
	codec.OptionalField("date", codec.Date(), func(m *InvoiceUpdateParams) *codec.Optional[time.Time] { return &m.Date }),
	codec.OptionalField("due_date", codec.Date(), func(m *InvoiceUpdateParams) *codec.Optional[time.Time] { return &m.DueDate }),
	codec.OptionalField("currency", codec.String(), func(m *InvoiceUpdateParams) *codec.Optional[string] { return &m.Currency }),
	codec.OptionalField("metadata", codec.MapOf(codec.String()), func(m *InvoiceUpdateParams) *codec.Optional[map[string]string] { return &m.Metadata }),
)

func (p InvoiceUpdateParams) MarshalJSON() ([]byte, error) { return marshalParams(invoiceUpdateCodec, p) }

// InvoiceSearchParams filters invoices. Unset filters match everything.
type InvoiceSearchParams struct {
	CompanyID codec.Optional[string]
	Status    codec.Optional[[]codec.Enum[InvoiceStatus]]
	From      codec.Optional[time.Time]
	To        codec.Optional[time.Time]
	MinTotal  codec.Optional[float64]
	MaxTotal  codec.Optional[float64]
	Query     codec.Optional[string]
}

func (p InvoiceSearchParams) WithCompanyID(v string) InvoiceSearchParams {
	p.CompanyID = codec.Some(v)
	return p
}

func (p InvoiceSearchParams) WithStatus(statuses ...InvoiceStatus) InvoiceSearchParams {
	out := make([]codec.Enum[InvoiceStatus], len(statuses))
	for i, s := range statuses {
		out[i] = codec.Known(s)
	}
	p.Status = codec.Some(out)
	return p
}

// WithPeriod restricts the invoice date to [from, to].
func (p InvoiceSearchParams) WithPeriod(from, to time.Time) InvoiceSearchParams {
	p.From = codec.Some(from)
	p.To = codec.Some(to)
	return p
}

// WithTotalRange restricts total_ttc to [lo, hi].
func (p InvoiceSearchParams) WithTotalRange(lo, hi float64) InvoiceSearchParams {
	p.MinTotal = codec.Some(lo)
	p.MaxTotal = codec.Some(hi)
	return p
}

func (p InvoiceSearchParams) WithQuery(q string) InvoiceSearchParams {
	p.Query = codec.Some(q)
	return p
}

func (p InvoiceSearchParams) Validate() error {
	checks := append([]optionalCheck{
		checkOptional("MinTotal", p.MinTotal, "gte=0"),
		checkOptional("MaxTotal", p.MaxTotal, "gte=0"),
	}, checkEnums("Status", p.Status, invoiceStatusCodec)...)
	fields, err := collectFieldErrors(p, "", checks...)
	if err != nil {
		return err
	}
	from, okFrom := p.From.Get()
	to, okTo := p.To.Get()
	if okFrom && okTo && to.Before(from) {
		fields = append(fields, FieldError{Field: "To", Message: "must not be before From"})
	}
	lo, okLo := p.MinTotal.Get()
	hi, okHi := p.MaxTotal.Get()
	if okLo && okHi && hi < lo {
		fields = append(fields, FieldError{Field: "MaxTotal", Message: "must not be less than MinTotal"})
	}
	if len(fields) > 0 {
		return &ValidationError{Params: "InvoiceSearchParams", Fields: fields}
	}
	return nil
}

var invoiceSearchCodec codec.Converter[InvoiceSearchParams] = codec.Object("InvoiceSearchParams",
	codec.OptionalField("company_id", codec.String(), func(m *InvoiceSearchParams) *codec.Optional[string] { return &m.CompanyID }),
	codec.OptionalField("status", codec.ListOf(invoiceStatusCodec), func(m *InvoiceSearchParams) *codec.Optional[[]codec.Enum[InvoiceStatus]] { return &m.Status }),
	codec.OptionalField("from", codec.Date(), func(m *InvoiceSearchParams) *codec.Optional[time.Time] { return &m.From }),
	codec.OptionalField("to", codec.Date(), func(m *InvoiceSearchParams) *codec.Optional[time.Time] { return &m.To }),
	codec.OptionalField("min_total", codec.Float(), func(m *InvoiceSearchParams) *codec.Optional[float64] { return &m.MinTotal }),
	codec.OptionalField("max_total", codec.Float(), func(m *InvoiceSearchParams) *codec.Optional[float64] { return &m.MaxTotal }),
	codec.OptionalField("q", codec.String(), func(m *InvoiceSearchParams) *codec.Optional[string] { return &m.Query }),
)

func (p InvoiceSearchParams) MarshalJSON() ([]byte, error) { return marshalParams(invoiceSearchCodec, p) }

// InvoicesClient manages invoices and their lines.
type InvoicesClient struct {
	client *Client
	lines  linesService
}

// List returns one page of invoices.
func (c *InvoicesClient) List(ctx context.Context, params ListParams, opts ...RequestOption) (Page[Invoice], error) {
	if c == nil || c.client == nil {
		return Page[Invoice]{}, notInitialized("invoices")
	}
	query, err := params.values()
	if err != nil {
		return Page[Invoice]{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, routes.Invoices, query, nil, invoicePageCodec, opts)
}

// Search filters invoices; page controls pagination of the results.
func (c *InvoicesClient) Search(ctx context.Context, params InvoiceSearchParams, page ListParams, opts ...RequestOption) (Page[Invoice], error) {
	if c == nil || c.client == nil {
		return Page[Invoice]{}, notInitialized("invoices")
	}
	body, err := encodeParams(invoiceSearchCodec, params)
	if err != nil {
		return Page[Invoice]{}, err
	}
	query, err := page.values()
	if err != nil {
		return Page[Invoice]{}, err
	}
	return fetch(ctx, c.client, http.MethodPost, routes.InvoiceSearch, query, body, invoicePageCodec, opts)
}

func (c *InvoicesClient) Get(ctx context.Context, invoiceID string, opts ...RequestOption) (Invoice, error) {
	if c == nil || c.client == nil {
		return Invoice{}, notInitialized("invoices")
	}
	p, err := byID(routes.InvoiceByID, invoiceID)
	if err != nil {
		return Invoice{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, p, nil, nil, invoiceCodec, opts)
}

func (c *InvoicesClient) Create(ctx context.Context, params InvoiceCreateParams, opts ...RequestOption) (Invoice, error) {
	if c == nil || c.client == nil {
		return Invoice{}, notInitialized("invoices")
	}
	body, err := encodeParams(invoiceCreateCodec, params)
	if err != nil {
		return Invoice{}, err
	}
	return fetch(ctx, c.client, http.MethodPost, routes.Invoices, nil, body, invoiceCodec, opts)
}

func (c *InvoicesClient) Update(ctx context.Context, invoiceID string, params InvoiceUpdateParams, opts ...RequestOption) (Invoice, error) {
	if c == nil || c.client == nil {
		return Invoice{}, notInitialized("invoices")
	}
	p, err := byID(routes.InvoiceByID, invoiceID)
	if err != nil {
		return Invoice{}, err
	}
	body, err := encodeParams(invoiceUpdateCodec, params)
	if err != nil {
		return Invoice{}, err
	}
	return fetch(ctx, c.client, http.MethodPatch, p, nil, body, invoiceCodec, opts)
}

func (c *InvoicesClient) Delete(ctx context.Context, invoiceID string, opts ...RequestOption) error {
	if c == nil || c.client == nil {
		return notInitialized("invoices")
	}
	p, err := byID(routes.InvoiceByID, invoiceID)
	if err != nil {
		return err
	}
	return remove(ctx, c.client, p, opts)
}

// ListLines returns every line of an invoice.
func (c *InvoicesClient) ListLines(ctx context.Context, invoiceID string, opts ...RequestOption) ([]DocumentLine, error) {
	if c == nil || c.client == nil {
		return nil, notInitialized("invoices")
	}
	return c.lines.list(ctx, invoiceID, opts)
}

func (c *InvoicesClient) CreateLine(ctx context.Context, invoiceID string, params LineCreateParams, opts ...RequestOption) (DocumentLine, error) {
	if c == nil || c.client == nil {
		return DocumentLine{}, notInitialized("invoices")
	}
	return c.lines.create(ctx, invoiceID, params, opts)
}

// UpdateLine patches one line. Both identifiers travel in the path only.
func (c *InvoicesClient) UpdateLine(ctx context.Context, invoiceID, lineID string, params LineUpdateParams, opts ...RequestOption) (DocumentLine, error) {
	if c == nil || c.client == nil {
		return DocumentLine{}, notInitialized("invoices")
	}
	return c.lines.update(ctx, invoiceID, lineID, params, opts)
}

func (c *InvoicesClient) DeleteLine(ctx context.Context, invoiceID, lineID string, opts ...RequestOption) error {
	if c == nil || c.client == nil {
		return notInitialized("invoices")
	}
	return c.lines.delete(ctx, invoiceID, lineID, opts)
}
