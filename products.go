package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/routes"
)

// Product is a catalog item that can be put on invoice and quote lines.
type Product struct {
	ID          string
	Name        string
	Type        codec.Enum[ProductType]
	Reference   codec.Optional[string]
	Description codec.Optional[string]
	Unit        codec.Optional[string]
	PriceHT     codec.Optional[float64]
	VATRate     codec.Optional[float64]
	Archived    codec.Optional[bool]
	CreatedAt   codec.Optional[time.Time]
	UpdatedAt   codec.Optional[time.Time]
	Extra       map[string]any
}

var productCodec codec.Converter[Product] = codec.Object("Product",
	codec.RequiredField("id", codec.String(), func(m *Product) *string { return &m.ID }),
	codec.RequiredField("name", codec.String(), func(m *Product) *string { return &m.Name }),
	codec.RequiredField("type", productTypeCodec, func(m *Product) *codec.Enum[ProductType] { return &m.Type }),
	codec.OptionalField("reference", codec.String(), func(m *Product) *codec.Optional[string] { return &m.Reference }),
	codec.OptionalField("description", codec.String(), func(m *Product) *codec.Optional[string] { return &m.Description }),
	codec.OptionalField("unit", codec.String(), func(m *Product) *codec.Optional[string] { return &m.Unit }),
	codec.OptionalField("price_ht", codec.Float(), func(m *Product) *codec.Optional[float64] { return &m.PriceHT }),
	codec.OptionalField("vat_rate", codec.Float(), func(m *Product) *codec.Optional[float64] { return &m.VATRate }),
	codec.OptionalField("archived", codec.Bool(), func(m *Product) *codec.Optional[bool] { return &m.Archived }),
	codec.OptionalField("created_at", codec.DateTime(), func(m *Product) *codec.Optional[time.Time] { return &m.CreatedAt }),
	codec.OptionalField("updated_at", codec.DateTime(), func(m *Product) *codec.Optional[time.Time] { return &m.UpdatedAt }),
	codec.Extras(func(m *Product) *map[string]any { return &m.Extra }),
)

var productPageCodec = pageCodec(productCodec)

func (p Product) MarshalJSON() ([]byte, error) { return codec.Marshal(productCodec, p) }

func (p *Product) UnmarshalJSON(data []byte) error { return codec.Unmarshal(productCodec, data, p) }

func (p *Product) decodeMode(data []byte, mode codec.Mode) error {
	return codec.UnmarshalMode(productCodec, data, p, mode)
}

// ProductCreateParams adds a catalog item.
type ProductCreateParams struct {
	Name        string      `validate:"required,notblank,max=255"`
	Type        ProductType `validate:"required,oneof=product service"`
	Reference   codec.Optional[string]
	Description codec.Optional[string]
	Unit        codec.Optional[string]
	PriceHT     codec.Optional[float64]
	VATRate     codec.Optional[float64]
}

// NewProductCreateParams returns params with the required fields set.
func NewProductCreateParams(name string, kind ProductType) (ProductCreateParams, error) {
	p := ProductCreateParams{Name: name, Type: kind}
	return p, p.Validate()
}

func (p ProductCreateParams) WithReference(v string) ProductCreateParams {
	p.Reference = codec.Some(v)
	return p
}

func (p ProductCreateParams) WithDescription(v string) ProductCreateParams {
	p.Description = codec.Some(v)
	return p
}

func (p ProductCreateParams) WithUnit(v string) ProductCreateParams {
	p.Unit = codec.Some(v)
	return p
}

func (p ProductCreateParams) WithPrice(ht, vatRate float64) ProductCreateParams {
	p.PriceHT = codec.Some(ht)
	p.VATRate = codec.Some(vatRate)
	return p
}

func (p ProductCreateParams) Validate() error {
	return validateParams("ProductCreateParams", p,
		checkOptional("PriceHT", p.PriceHT, "gte=0"),
		checkOptional("VATRate", p.VATRate, "gte=0,lte=100"),
	)
}

var productCreateCodec codec.Converter[ProductCreateParams] = codec.Object("ProductCreateParams",
	codec.RequiredField("name", codec.String(), func(m *ProductCreateParams) *string { return &m.Name }),
	codec.RequiredField("type", plainEnum[ProductType](), func(m *ProductCreateParams) *ProductType { return &m.Type }),
	codec.OptionalField("reference", codec.String(), func(m *ProductCreateParams) *codec.Optional[string] { return &m.Reference }),
	codec.OptionalField("description", codec.String(), func(m *ProductCreateParams) *codec.Optional[string] { return &m.Description }),
	codec.OptionalField("unit", codec.String(), func(m *ProductCreateParams) *codec.Optional[string] { return &m.Unit }),
	codec.OptionalField("price_ht", codec.Float(), func(m *ProductCreateParams) *codec.Optional[float64] { return &m.PriceHT }),
	codec.OptionalField("vat_rate", codec.Float(), func(m *ProductCreateParams) *codec.Optional[float64] { return &m.VATRate }),
)

func (p ProductCreateParams) MarshalJSON() ([]byte, error) { return marshalParams(productCreateCodec, p) }

// ProductUpdateParams patches a product. Only set fields are sent.
type ProductUpdateParams struct {
	Name        codec.Optional[string]
	Reference   codec.Optional[string]
	Description codec.Optional[string]
	Unit        codec.Optional[string]
	PriceHT     codec.Optional[float64]
	VATRate     codec.Optional[float64]
	Archived    codec.Optional[bool]
}

func (p ProductUpdateParams) WithName(v string) ProductUpdateParams {
	p.Name = codec.Some(v)
	return p
}

func (p ProductUpdateParams) WithReference(v string) ProductUpdateParams {
	p.Reference = codec.Some(v)
	return p
}

func (p ProductUpdateParams) WithDescription(v string) ProductUpdateParams {
	p.Description = codec.Some(v)
	return p
}

func (p ProductUpdateParams) ClearDescription() ProductUpdateParams {
	p.Description = codec.Null[string]()
	return p
}

func (p ProductUpdateParams) WithUnit(v string) ProductUpdateParams {
	p.Unit = codec.Some(v)
	return p
}

func (p ProductUpdateParams) WithPriceHT(v float64) ProductUpdateParams {
	p.PriceHT = codec.Some(v)
	return p
}

func (p ProductUpdateParams) WithVATRate(v float64) ProductUpdateParams {
	p.VATRate = codec.Some(v)
	return p
}

func (p ProductUpdateParams) WithArchived(v bool) ProductUpdateParams {
	p.Archived = codec.Some(v)
	return p
}

func (p ProductUpdateParams) Validate() error {
	return validateParams("ProductUpdateParams", p,
		checkOptional("Name", p.Name, "notblank,max=255"),
		checkOptional("PriceHT", p.PriceHT, "gte=0"),
		checkOptional("VATRate", p.VATRate, "gte=0,lte=100"),
	)
}

var productUpdateCodec codec.Converter[ProductUpdateParams] = codec.Object("ProductUpdateParams",
	codec.OptionalField("name", codec.String(), func(m *ProductUpdateParams) *codec.Optional[string] { return &m.Name }),
	codec.OptionalField("reference", codec.String(), func(m *ProductUpdateParams) *codec.Optional[string] { return &m.Reference }),
	codec.OptionalField("description", codec.String(), func(m *ProductUpdateParams) *codec.Optional[string] { return &m.Description }),
	codec.OptionalField("unit", codec.String(), func(m *ProductUpdateParams) *codec.Optional[string] { return &m.Unit }),
	codec.OptionalField("price_ht", codec.Float(), func(m *ProductUpdateParams) *codec.Optional[float64] { return &m.PriceHT }),
	codec.OptionalField("vat_rate", codec.Float(), func(m *ProductUpdateParams) *codec.Optional[float64] { return &m.VATRate }),
	codec.OptionalField("archived", codec.Bool(), func(m *ProductUpdateParams) *codec.Optional[bool] { return &m.Archived }),
)

func (p ProductUpdateParams) MarshalJSON() ([]byte, error) { return marshalParams(productUpdateCodec, p) }

// ProductsClient manages the product catalog.
type ProductsClient struct {
	client *Client
}

func (c *ProductsClient) List(ctx context.Context, params ListParams, opts ...RequestOption) (Page[Product], error) {
	if c == nil || c.client == nil {
		return Page[Product]{}, notInitialized("products")
	}
	query, err := params.values()
	if err != nil {
		return Page[Product]{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, routes.Products, query, nil, productPageCodec, opts)
}

func (c *ProductsClient) Get(ctx context.Context, productID string, opts ...RequestOption) (Product, error) {
	if c == nil || c.client == nil {
		return Product{}, notInitialized("products")
	}
	p, err := byID(routes.ProductByID, productID)
	if err != nil {
		return Product{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, p, nil, nil, productCodec, opts)
}

func (c *ProductsClient) Create(ctx context.Context, params ProductCreateParams, opts ...RequestOption) (Product, error) {
	if c == nil || c.client == nil {
		return Product{}, notInitialized("products")
	}
	body, err := encodeParams(productCreateCodec, params)
	if err != nil {
		return Product{}, err
	}
	return fetch(ctx, c.client, http.MethodPost, routes.Products, nil, body, productCodec, opts)
}

func (c *ProductsClient) Update(ctx context.Context, productID string, params ProductUpdateParams, opts ...RequestOption) (Product, error) {
	if c == nil || c.client == nil {
		return Product{}, notInitialized("products")
	}
	p, err := byID(routes.ProductByID, productID)
	if err != nil {
		return Product{}, err
	}
	body, err := encodeParams(productUpdateCodec, params)
	if err != nil {
		return Product{}, err
	}
	return fetch(ctx, c.client, http.MethodPatch, p, nil, body, productCodec, opts)
}

func (c *ProductsClient) Delete(ctx context.Context, productID string, opts ...RequestOption) error {
	if c == nil || c.client == nil {
		return notInitialized("products")
	}
	p, err := byID(routes.ProductByID, productID)
	if err != nil {
		return err
	}
	return remove(ctx, c.client, p, opts)
}
