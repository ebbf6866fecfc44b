package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/routes"
)

// Purchase is a supplier bill.
type Purchase struct {
	ID         string
	SupplierID string
	Reference  codec.Optional[string]
	Status     codec.Enum[PurchaseStatus]
	Date       time.Time
	DueDate    codec.Optional[time.Time]
	Currency   codec.Optional[string]
	TotalHT    codec.Optional[float64]
	TotalVAT   codec.Optional[float64]
	TotalTTC   codec.Optional[float64]
	Category   codec.Optional[string]
	CreatedAt  codec.Optional[time.Time]
	UpdatedAt  codec.Optional[time.Time]
	Extra      map[string]any
}

var purchaseCodec codec.Converter[Purchase] = codec.Object("Purchase",
	codec.RequiredField("id", codec.String(), func(m *Purchase) *string { return &m.ID }),
	codec.RequiredField("supplier_id", codec.String(), func(m *Purchase) *string { return &m.SupplierID }),
	codec.OptionalField("reference", codec.String(), func(m *Purchase) *codec.Optional[string] { return &m.Reference }),
	codec.RequiredField("status", purchaseStatusCodec, func(m *Purchase) *codec.Enum[PurchaseStatus] { return &m.Status }),
	codec.RequiredField("date", codec.Date(), func(m *Purchase) *time.Time { return &m.Date }),
	codec.OptionalField("due_date", codec.Date(), func(m *Purchase) *codec.Optional[time.Time] { return &m.DueDate }),
	codec.OptionalField("currency", codec.String(), func(m *Purchase) *codec.Optional[string] { return &m.Currency }),
	codec.OptionalField("total_ht", codec.Float(), func(m *Purchase) *codec.Optional[float64] { return &m.TotalHT }),
	codec.OptionalField("total_vat", codec.Float(), func(m *Purchase) *codec.Optional[float64] { return &m.TotalVAT }),
	codec.OptionalField("total_ttc", codec.Float(), func(m *Purchase) *codec.Optional[float64] { return &m.TotalTTC }),
	codec.OptionalField("category", codec.String(), func(m *Purchase) *codec.Optional[string] { return &m.Category }),
	codec.OptionalField("created_at", codec.DateTime(), func(m *Purchase) *codec.Optional[time.Time] { return &m.CreatedAt }),
	codec.OptionalField("updated_at", codec.DateTime(), func(m *Purchase) *codec.Optional[time.Time] { return &m.UpdatedAt }),
	codec.Extras(func(m *Purchase) *map[string]any { return &m.Extra }),
)

var purchasePageCodec = pageCodec(purchaseCodec)

func (p Purchase) MarshalJSON() ([]byte, error) { return codec.Marshal(purchaseCodec, p) }

func (p *Purchase) UnmarshalJSON(data []byte) error { return codec.Unmarshal(purchaseCodec, data, p) }

func (p *Purchase) decodeMode(data []byte, mode codec.Mode) error {
	return codec.UnmarshalMode(purchaseCodec, data, p, mode)
}

// PurchaseCreateParams records a supplier bill.
type PurchaseCreateParams struct {
	SupplierID string    `validate:"required,notblank"`
	Date       time.Time `validate:"required"`
	TotalHT    float64   `validate:"gte=0"`
	Reference  codec.Optional[string]
	DueDate    codec.Optional[time.Time]
	Currency   codec.Optional[string]
	TotalVAT   codec.Optional[float64]
	Category   codec.Optional[string]
}

// NewPurchaseCreateParams returns params with the required fields set.
func NewPurchaseCreateParams(supplierID string, date time.Time, totalHT float64) (PurchaseCreateParams, error) {
	p := PurchaseCreateParams{SupplierID: supplierID, Date: date, TotalHT: totalHT}
	return p, p.Validate()
}

func (p PurchaseCreateParams) WithReference(v string) PurchaseCreateParams {
	p.Reference = codec.Some(v)
	return p
}

func (p PurchaseCreateParams) WithDueDate(v time.Time) PurchaseCreateParams {
	p.DueDate = codec.Some(v)
	return p
}

func (p PurchaseCreateParams) WithCurrency(v string) PurchaseCreateParams {
	p.Currency = codec.Some(v)
	return p
}

func (p PurchaseCreateParams) WithTotalVAT(v float64) PurchaseCreateParams {
	p.TotalVAT = codec.Some(v)
	return p
}

func (p PurchaseCreateParams) WithCategory(v string) PurchaseCreateParams {
	p.Category = codec.Some(v)
	return p
}

func (p PurchaseCreateParams) Validate() error {
	return validateParams("PurchaseCreateParams", p,
		checkOptional("Currency", p.Currency, "iso4217"),
		checkOptional("TotalVAT", p.TotalVAT, "gte=0"),
	)
}

var purchaseCreateCodec codec.Converter[PurchaseCreateParams] = codec.Object("PurchaseCreateParams",
	codec.RequiredField("supplier_id", codec.String(), func(m *PurchaseCreateParams) *string { return &m.SupplierID }),
	codec.RequiredField("date", codec.Date(), func(m *PurchaseCreateParams) *time.Time { return &m.Date }),
	codec.RequiredField("total_ht", codec.Float(), func(m *PurchaseCreateParams) *float64 { return &m.TotalHT }),
	codec.OptionalField("reference", codec.String(), func(m *PurchaseCreateParams) *codec.Optional[string] { return &m.Reference }),
	codec.OptionalField("due_date", codec.Date(), func(m *PurchaseCreateParams) *codec.Optional[time.Time] { return &m.DueDate }),
	codec.OptionalField("currency", codec.String(), func(m *PurchaseCreateParams) *codec.Optional[string] { return &m.Currency }),
	codec.OptionalField("total_vat", codec.Float(), func(m *PurchaseCreateParams) *codec.Optional[float64] { return &m.TotalVAT }),
	codec.OptionalField("category", codec.String(), func(m *PurchaseCreateParams) *codec.Optional[string] { return &m.Category }),
)

func (p PurchaseCreateParams) MarshalJSON() ([]byte, error) { return marshalParams(purchaseCreateCodec, p) }

// PurchaseUpdateParams patches a purchase. Only set fields are sent.
type PurchaseUpdateParams struct {
	Status    codec.Optional[codec.Enum[PurchaseStatus]]
	Reference codec.Optional[string]
	DueDate   codec.Optional[time.Time]
	TotalHT   codec.Optional[float64]
	TotalVAT  codec.Optional[float64]
	Category  codec.Optional[string]
}

func (p PurchaseUpdateParams) WithStatus(v PurchaseStatus) PurchaseUpdateParams {
	p.Status = codec.Some(codec.Known(v))
	return p
}

func (p PurchaseUpdateParams) WithReference(v string) PurchaseUpdateParams {
	p.Reference = codec.Some(v)
	return p
}

func (p PurchaseUpdateParams) WithDueDate(v time.Time) PurchaseUpdateParams {
	p.DueDate = codec.Some(v)
	return p
}

func (p PurchaseUpdateParams) WithTotals(ht, vat float64) PurchaseUpdateParams {
	p.TotalHT = codec.Some(ht)
	p.TotalVAT = codec.Some(vat)
	return p
}

func (p PurchaseUpdateParams) WithCategory(v string) PurchaseUpdateParams {
	p.Category = codec.Some(v)
	return p
}

// ClearCategory sends category as null.
func (p PurchaseUpdateParams) ClearCategory() PurchaseUpdateParams {
	p.Category = codec.Null[string]()
	return p
}

func (p PurchaseUpdateParams) Validate() error {
	return validateParams("PurchaseUpdateParams", p,
		checkOptional("TotalHT", p.TotalHT, "gte=0"),
		checkOptional("TotalVAT", p.TotalVAT, "gte=0"),
		checkEnum("Status", p.Status, purchaseStatusCodec),
	)
}

var purchaseUpdateCodec codec.Converter[PurchaseUpdateParams] = codec.Object("PurchaseUpdateParams",
	codec.OptionalField("status", purchaseStatusCodec, func(m *PurchaseUpdateParams) *codec.Optional[codec.Enum[PurchaseStatus]] { return &m.Status }),
	codec.OptionalField("reference", codec.String(), func(m *PurchaseUpdateParams) *codec.Optional[string] { return &m.Reference }),
	codec.OptionalField("due_date", codec.Date(), func(m *PurchaseUpdateParams) *codec.Optional[time.Time] { return &m.DueDate }),
	codec.OptionalField("total_ht", codec.Float(), func(m *PurchaseUpdateParams) *codec.Optional[float64] { return &m.TotalHT }),
	codec.OptionalField("total_vat", codec.Float(), func(m *PurchaseUpdateParams) *codec.Optional[float64] { return &m.TotalVAT }),
	codec.OptionalField("category", codec.String(), func(m *PurchaseUpdateParams) *codec.Optional[string] { return &m.Category }),
)

func (p PurchaseUpdateParams) MarshalJSON() ([]byte, error) { return marshalParams(purchaseUpdateCodec, p) }

// PurchasesClient manages supplier purchases.
type PurchasesClient struct {
	client *Client
}

func (c *PurchasesClient) List(ctx context.Context, params ListParams, opts ...RequestOption) (Page[Purchase], error) {
	if c == nil || c.client == nil {
		return Page[Purchase]{}, notInitialized("purchases")
	}
	query, err := params.values()
	if err != nil {
		return Page[Purchase]{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, routes.Purchases, query, nil, purchasePageCodec, opts)
}

func (c *PurchasesClient) Get(ctx context.Context, purchaseID string, opts ...RequestOption) (Purchase, error) {
	if c == nil || c.client == nil {
		return Purchase{}, notInitialized("purchases")
	}
	p, err := byID(routes.PurchaseByID, purchaseID)
	if err != nil {
		return Purchase{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, p, nil, nil, purchaseCodec, opts)
}

func (c *PurchasesClient) Create(ctx context.Context, params PurchaseCreateParams, opts ...RequestOption) (Purchase, error) {
	if c == nil || c.client == nil {
		return Purchase{}, notInitialized("purchases")
	}
	body, err := encodeParams(purchaseCreateCodec, params)
	if err != nil {
		return Purchase{}, err
	}
	return fetch(ctx, c.client, http.MethodPost, routes.Purchases, nil, body, purchaseCodec, opts)
}

func (c *PurchasesClient) Update(ctx context.Context, purchaseID string, params PurchaseUpdateParams, opts ...RequestOption) (Purchase, error) {
	if c == nil || c.client == nil {
		return Purchase{}, notInitialized("purchases")
	}
	p, err := byID(routes.PurchaseByID, purchaseID)
	if err != nil {
		return Purchase{}, err
	}
	body, err := encodeParams(purchaseUpdateCodec, params)
	if err != nil {
		return Purchase{}, err
	}
	return fetch(ctx, c.client, http.MethodPatch, p, nil, body, purchaseCodec, opts)
}

func (c *PurchasesClient) Delete(ctx context.Context, purchaseID string, opts ...RequestOption) error {
	if c == nil || c.client == nil {
		return notInitialized("purchases")
	}
	p, err := byID(routes.PurchaseByID, purchaseID)
	if err != nil {
		return err
	}
	return remove(ctx, c.client, p, opts)
}
