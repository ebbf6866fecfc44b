package sdk

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/routes"
)

// DocumentLine is an invoice or quote line.
type DocumentLine struct {
	ID           string
	Label        string
	Description  codec.Optional[string]
	Quantity     codec.Optional[float64]
	Unit         codec.Optional[string]
	PriceHT      codec.Optional[float64]
	VATRate      codec.Optional[float64]
	Discount     codec.Optional[float64]
	DiscountType codec.Optional[codec.Enum[DiscountType]]
	ProductID    codec.Optional[string]
	Extra        map[string]any
}

var documentLineCodec codec.Converter[DocumentLine] = codec.Object("DocumentLine",
	codec.RequiredField("id", codec.String(), func(m *DocumentLine) *string { return &m.ID }),
	codec.RequiredField("label", codec.String(), func(m *DocumentLine) *string { return &m.Label }),
	codec.OptionalField("description", codec.String(), func(m *DocumentLine) *codec.Optional[string] { return &m.Description }),
	codec.OptionalField("quantity", codec.Float(), func(m *DocumentLine) *codec.Optional[float64] { return &m.Quantity }),
	codec.OptionalField("unit", codec.String(), func(m *DocumentLine) *codec.Optional[string] { return &m.Unit }),
	codec.OptionalField("price_ht", codec.Float(), func(m *DocumentLine) *codec.Optional[float64] { return &m.PriceHT }),
	codec.OptionalField("vat_rate", codec.Float(), func(m *DocumentLine) *codec.Optional[float64] { return &m.VATRate }),
	codec.OptionalField("discount", codec.Float(), func(m *DocumentLine) *codec.Optional[float64] { return &m.Discount }),
	codec.OptionalField("discount_type", discountTypeCodec, func(m *DocumentLine) *codec.Optional[codec.Enum[DiscountType]] { return &m.DiscountType }),
	codec.OptionalField("product_id", codec.String(), func(m *DocumentLine) *codec.Optional[string] { return &m.ProductID }),
	codec.Extras(func(m *DocumentLine) *map[string]any { return &m.Extra }),
)

func (l DocumentLine) MarshalJSON() ([]byte, error) { return codec.Marshal(documentLineCodec, l) }

func (l *DocumentLine) UnmarshalJSON(data []byte) error {
	return codec.Unmarshal(documentLineCodec, data, l)
}

func (l *DocumentLine) decodeMode(data []byte, mode codec.Mode) error {
	return codec.UnmarshalMode(documentLineCodec, data, l, mode)
}

// LineCreateParams creates a line on an invoice or quote.
type LineCreateParams struct {
	Label        string `validate:"required,notblank,max=255"`
	Description  codec.Optional[string]
	Quantity     codec.Optional[float64]
	Unit         codec.Optional[string]
	PriceHT      codec.Optional[float64]
	VATRate      codec.Optional[float64]
	Discount     codec.Optional[float64]
	DiscountType codec.Optional[codec.Enum[DiscountType]]
	ProductID    codec.Optional[string]
}

// NewLineCreateParams returns params with the required label set.
func NewLineCreateParams(label string) (LineCreateParams, error) {
	p := LineCreateParams{Label: label}
	return p, p.Validate()
}

func (p LineCreateParams) WithDescription(v string) LineCreateParams {
	p.Description = codec.Some(v)
	return p
}

func (p LineCreateParams) WithQuantity(v float64) LineCreateParams {
	p.Quantity = codec.Some(v)
	return p
}

func (p LineCreateParams) WithUnit(v string) LineCreateParams {
	p.Unit = codec.Some(v)
	return p
}

func (p LineCreateParams) WithPriceHT(v float64) LineCreateParams {
	p.PriceHT = codec.Some(v)
	return p
}

func (p LineCreateParams) WithVATRate(v float64) LineCreateParams {
	p.VATRate = codec.Some(v)
	return p
}

// WithDiscount sets the discount and how it is expressed.
func (p LineCreateParams) WithDiscount(v float64, kind DiscountType) LineCreateParams {
	p.Discount = codec.Some(v)
	p.DiscountType = codec.Some(codec.Known(kind))
	return p
}

func (p LineCreateParams) WithProductID(v string) LineCreateParams {
	p.ProductID = codec.Some(v)
	return p
}

func (p LineCreateParams) Validate() error {
	return validateParams("LineCreateParams", p, p.checks()...)
}

func (p LineCreateParams) checks() []optionalCheck {
	return []optionalCheck{
		checkOptional("Quantity", p.Quantity, "gte=0"),
		checkOptional("PriceHT", p.PriceHT, "gte=0"),
		checkOptional("VATRate", p.VATRate, "gte=0,lte=100"),
		checkOptional("Discount", p.Discount, "gte=0"),
		checkEnum("DiscountType", p.DiscountType, discountTypeCodec),
	}
}

var lineCreateCodec codec.Converter[LineCreateParams] = codec.Object("LineCreateParams",
	codec.RequiredField("label", codec.String(), func(m *LineCreateParams) *string { return &m.Label }),
	codec.OptionalField("description", codec.String(), func(m *LineCreateParams) *codec.Optional[string] { return &m.Description }),
	codec.OptionalField("quantity", codec.Float(), func(m *LineCreateParams) *codec.Optional[float64] { return &m.Quantity }),
	codec.OptionalField("unit", codec.String(), func(m *LineCreateParams) *codec.Optional[string] { return &m.Unit }),
	codec.OptionalField("price_ht", codec.Float(), func(m *LineCreateParams) *codec.Optional[float64] { return &m.PriceHT }),
	codec.OptionalField("vat_rate", codec.Float(), func(m *LineCreateParams) *codec.Optional[float64] { return &m.VATRate }),
	codec.OptionalField("discount", codec.Float(), func(m *LineCreateParams) *codec.Optional[float64] { return &m.Discount }),
	codec.OptionalField("discount_type", discountTypeCodec, func(m *LineCreateParams) *codec.Optional[codec.Enum[DiscountType]] { return &m.DiscountType }),
	codec.OptionalField("product_id", codec.String(), func(m *LineCreateParams) *codec.Optional[string] { return &m.ProductID }),
)

func (p LineCreateParams) MarshalJSON() ([]byte, error) { return marshalParams(lineCreateCodec, p) }

// LineUpdateParams patches a line. Only set fields are sent; fields set with
// the Clear helpers are sent as null.
type LineUpdateParams struct {
	Label        codec.Optional[string]
	Description  codec.Optional[string]
	Quantity     codec.Optional[float64]
	Unit         codec.Optional[string]
	PriceHT      codec.Optional[float64]
	VATRate      codec.Optional[float64]
	Discount     codec.Optional[float64]
	DiscountType codec.Optional[codec.Enum[DiscountType]]
	ProductID    codec.Optional[string]
}

func (p LineUpdateParams) WithLabel(v string) LineUpdateParams {
	p.Label = codec.Some(v)
	return p
}

func (p LineUpdateParams) WithDescription(v string) LineUpdateParams {
	p.Description = codec.Some(v)
	return p
}

// ClearDescription sends description as null.
func (p LineUpdateParams) ClearDescription() LineUpdateParams {
	p.Description = codec.Null[string]()
	return p
}

func (p LineUpdateParams) WithQuantity(v float64) LineUpdateParams {
	p.Quantity = codec.Some(v)
	return p
}

func (p LineUpdateParams) WithUnit(v string) LineUpdateParams {
	p.Unit = codec.Some(v)
	return p
}

func (p LineUpdateParams) WithPriceHT(v float64) LineUpdateParams {
	p.PriceHT = codec.Some(v)
	return p
}

func (p LineUpdateParams) WithVATRate(v float64) LineUpdateParams {
	p.VATRate = codec.Some(v)
	return p
}

func (p LineUpdateParams) WithDiscount(v float64, kind DiscountType) LineUpdateParams {
	p.Discount = codec.Some(v)
	p.DiscountType = codec.Some(codec.Known(kind))
	return p
}

// ClearDiscount sends discount and discount_type as null.
func (p LineUpdateParams) ClearDiscount() LineUpdateParams {
	p.Discount = codec.Null[float64]()
	p.DiscountType = codec.Null[codec.Enum[DiscountType]]()
	return p
}

func (p LineUpdateParams) WithProductID(v string) LineUpdateParams {
	p.ProductID = codec.Some(v)
	return p
}

func (p LineUpdateParams) Validate() error {
	return validateParams("LineUpdateParams", p,
		checkOptional("Label", p.Label, "notblank,max=255"),
		checkOptional("Quantity", p.Quantity, "gte=0"),
		checkOptional("PriceHT", p.PriceHT, "gte=0"),
		checkOptional("VATRate", p.VATRate, "gte=0,lte=100"),
		checkOptional("Discount", p.Discount, "gte=0"),
		checkEnum("DiscountType", p.DiscountType, discountTypeCodec),
	)
}

var lineUpdateCodec codec.Converter[LineUpdateParams] = codec.Object("LineUpdateParams",
	codec.OptionalField("label", codec.String(), func(m *LineUpdateParams) *codec.Optional[string] { return &m.Label }),
	codec.OptionalField("description", codec.String(), func(m *LineUpdateParams) *codec.Optional[string] { return &m.Description }),
	codec.OptionalField("quantity", codec.Float(), func(m *LineUpdateParams) *codec.Optional[float64] { return &m.Quantity }),
	codec.OptionalField("unit", codec.String(), func(m *LineUpdateParams) *codec.Optional[string] { return &m.Unit }),
	codec.OptionalField("price_ht", codec.Float(), func(m *LineUpdateParams) *codec.Optional[float64] { return &m.PriceHT }),
	codec.OptionalField("vat_rate", codec.Float(), func(m *LineUpdateParams) *codec.Optional[float64] { return &m.VATRate }),
	codec.OptionalField("discount", codec.Float(), func(m *LineUpdateParams) *codec.Optional[float64] { return &m.Discount }),
	codec.OptionalField("discount_type", discountTypeCodec, func(m *LineUpdateParams) *codec.Optional[codec.Enum[DiscountType]] { return &m.DiscountType }),
	codec.OptionalField("product_id", codec.String(), func(m *LineUpdateParams) *codec.Optional[string] { return &m.ProductID }),
)

func (p LineUpdateParams) MarshalJSON() ([]byte, error) { return marshalParams(lineUpdateCodec, p) }

// lineFieldErrors validates nested line params under "Lines[i].".
func lineFieldErrors(lines []LineCreateParams) ([]FieldError, error) {
	var out []FieldError
	for i, l := range lines {
		fields, err := collectFieldErrors(l, "Lines["+strconv.Itoa(i)+"].", l.checks()...)
		if err != nil {
			return nil, err
		}
		out = append(out, fields...)
	}
	return out, nil
}

// linesService serves the line sub-resource of invoices and quotes.
type linesService struct {
	client     *Client
	collection string
	item       string
	parentVar  string
}

func invoiceLines(c *Client) linesService {
	return linesService{client: c, collection: routes.InvoiceLines, item: routes.InvoiceLineByID, parentVar: "invoice_id"}
}

func quoteLines(c *Client) linesService {
	return linesService{client: c, collection: routes.QuoteLines, item: routes.QuoteLineByID, parentVar: "quote_id"}
}

var documentLinesCodec = codec.ListOf(documentLineCodec)

func (s linesService) list(ctx context.Context, parentID string, opts []RequestOption) ([]DocumentLine, error) {
	p, err := routePath(s.collection, routes.Vars{s.parentVar: parentID})
	if err != nil {
		return nil, err
	}
	return fetch(ctx, s.client, http.MethodGet, p, nil, nil, documentLinesCodec, opts)
}

func (s linesService) create(ctx context.Context, parentID string, params LineCreateParams, opts []RequestOption) (DocumentLine, error) {
	p, err := routePath(s.collection, routes.Vars{s.parentVar: parentID})
	if err != nil {
		return DocumentLine{}, err
	}
	body, err := encodeParams(lineCreateCodec, params)
	if err != nil {
		return DocumentLine{}, err
	}
	return fetch(ctx, s.client, http.MethodPost, p, nil, body, documentLineCodec, opts)
}

func (s linesService) update(ctx context.Context, parentID, lineID string, params LineUpdateParams, opts []RequestOption) (DocumentLine, error) {
	p, err := routePath(s.item, routes.Vars{s.parentVar: parentID, "uid": lineID})
	if err != nil {
		return DocumentLine{}, err
	}
	body, err := encodeParams(lineUpdateCodec, params)
	if err != nil {
		return DocumentLine{}, err
	}
	return fetch(ctx, s.client, http.MethodPatch, p, nil, body, documentLineCodec, opts)
}

func (s linesService) delete(ctx context.Context, parentID, lineID string, opts []RequestOption) error {
	p, err := routePath(s.item, routes.Vars{s.parentVar: parentID, "uid": lineID})
	if err != nil {
		return err
	}
	return remove(ctx, s.client, p, opts)
}
