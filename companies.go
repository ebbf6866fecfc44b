package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/routes"
)

// Address is a postal address.
type Address struct {
	Street     codec.Optional[string]
	PostalCode codec.Optional[string]
	City       codec.Optional[string]
	// Country is an ISO 3166-1 alpha-2 code.
	Country codec.Optional[string]
	Extra   map[string]any
}

var addressCodec codec.Converter[Address] = codec.Object("Address",
	codec.OptionalField("street", codec.String(), func(m *Address) *codec.Optional[string] { return &m.Street }),
	codec.OptionalField("postal_code", codec.String(), func(m *Address) *codec.Optional[string] { return &m.PostalCode }),
	codec.OptionalField("city", codec.String(), func(m *Address) *codec.Optional[string] { return &m.City }),
	codec.OptionalField("country", codec.String(), func(m *Address) *codec.Optional[string] { return &m.Country }),
	codec.Extras(func(m *Address) *map[string]any { return &m.Extra }),
)

func (a Address) MarshalJSON() ([]byte, error) { return codec.Marshal(addressCodec, a) }

func (a *Address) UnmarshalJSON(data []byte) error { return codec.Unmarshal(addressCodec, data, a) }

func (a *Address) decodeMode(data []byte, mode codec.Mode) error {
	return codec.UnmarshalMode(addressCodec, data, a, mode)
}

func (a Address) checks(prefix string) []optionalCheck {
	return []optionalCheck{checkOptional(prefix+"Country", a.Country, "iso3166_1_alpha2")}
}

// Company is a customer, supplier or prospect.
type Company struct {
	ID        string
	Name      string
	Type      codec.Enum[CompanyType]
	Email     codec.Optional[string]
	Phone     codec.Optional[string]
	VATNumber codec.Optional[string]
	Website   codec.Optional[string]
	Address   codec.Optional[Address]
	CreatedAt codec.Optional[time.Time]
	UpdatedAt codec.Optional[time.Time]
	Extra     map[string]any
}

var companyCodec codec.Converter[Company] = codec.Object("Company",
	codec.RequiredField("id", codec.String(), func(m *Company) *string { return &m.ID }),
	codec.RequiredField("name", codec.String(), func(m *Company) *string { return &m.Name }),
	codec.RequiredField("type", companyTypeCodec, func(m *Company) *codec.Enum[CompanyType] { return &m.Type }),
	codec.OptionalField("email", codec.String(), func(m *Company) *codec.Optional[string] { return &m.Email }),
	codec.OptionalField("phone", codec.String(), func(m *Company) *codec.Optional[string] { return &m.Phone }),
	codec.OptionalField("vat_number", codec.String(), func(m *Company) *codec.Optional[string] { return &m.VATNumber }),
	codec.OptionalField("website", codec.String(), func(m *Company) *codec.Optional[string] { return &m.Website }),
	codec.OptionalField("address", addressCodec, func(m *Company) *codec.Optional[Address] { return &m.Address }),
	codec.OptionalField("created_at", codec.DateTime(), func(m *Company) *codec.Optional[time.Time] { return &m.CreatedAt }),
	codec.OptionalField("updated_at", codec.DateTime(), func(m *Company) *codec.Optional[time.Time] { return &m.UpdatedAt }),
	codec.Extras(func(m *Company) *map[string]any { return &m.Extra }),
)

var companyPageCodec = pageCodec(companyCodec)

func (c Company) MarshalJSON() ([]byte, error) { return codec.Marshal(companyCodec, c) }

func (c *Company) UnmarshalJSON(data []byte) error { return codec.Unmarshal(companyCodec, data, c) }

func (c *Company) decodeMode(data []byte, mode codec.Mode) error {
	return codec.UnmarshalMode(companyCodec, data, c, mode)
}

// CompanyCreateParams adds a company.
type CompanyCreateParams struct {
	Name      string      `validate:"required,notblank,max=255"`
	Type      CompanyType `validate:"required,oneof=customer supplier prospect"`
	Email     codec.Optional[string]
	Phone     codec.Optional[string]
	VATNumber codec.Optional[string]
	Website   codec.Optional[string]
	Address   codec.Optional[Address]
}

// NewCompanyCreateParams returns params with the required fields set.
func NewCompanyCreateParams(name string, kind CompanyType) (CompanyCreateParams, error) {
	p := CompanyCreateParams{Name: name, Type: kind}
	return p, p.Validate()
}

func (p CompanyCreateParams) WithEmail(v string) CompanyCreateParams {
	p.Email = codec.Some(v)
	return p
}

func (p CompanyCreateParams) WithPhone(v string) CompanyCreateParams {
	p.Phone = codec.Some(v)
	return p
}

func (p CompanyCreateParams) WithVATNumber(v string) CompanyCreateParams {
	p.VATNumber = codec.Some(v)
	return p
}

func (p CompanyCreateParams) WithWebsite(v string) CompanyCreateParams {
	p.Website = codec.Some(v)
	return p
}

func (p CompanyCreateParams) WithAddress(a Address) CompanyCreateParams {
	p.Address = codec.Some(a)
	return p
}

func (p CompanyCreateParams) Validate() error {
	checks := []optionalCheck{
		checkOptional("Email", p.Email, "email"),
		checkOptional("Website", p.Website, "url"),
	}
	if a, ok := p.Address.Get(); ok {
		checks = append(checks, a.checks("Address.")...)
	}
	return validateParams("CompanyCreateParams", p, checks...)
}

var companyCreateCodec codec.Converter[CompanyCreateParams] = codec.Object("CompanyCreateParams",
	codec.RequiredField("name", codec.String(), func(m *CompanyCreateParams) *string { return &m.Name }),
	codec.RequiredField("type", plainEnum[CompanyType](), func(m *CompanyCreateParams) *CompanyType { return &m.Type }),
	codec.OptionalField("email", codec.String(), func(m *CompanyCreateParams) *codec.Optional[string] { return &m.Email }),
	codec.OptionalField("phone", codec.String(), func(m *CompanyCreateParams) *codec.Optional[string] { return &m.Phone }),
	codec.OptionalField("vat_number", codec.String(), func(m *CompanyCreateParams) *codec.Optional[string] { return &m.VATNumber }),
	codec.OptionalField("website", codec.String(), func(m *CompanyCreateParams) *codec.Optional[string] { return &m.Website }),
	codec.OptionalField("address", addressCodec, func(m *CompanyCreateParams) *codec.Optional[Address] { return &m.Address }),
)

func (p CompanyCreateParams) MarshalJSON() ([]byte, error) { return marshalParams(companyCreateCodec, p) }

// CompanyUpdateParams patches a company. Only set fields are sent.
type CompanyUpdateParams struct {
	Name      codec.Optional[string]
	Type      codec.Optional[codec.Enum[CompanyType]]
	Email     codec.Optional[string]
	Phone     codec.Optional[string]
	VATNumber codec.Optional[string]
	Website   codec.Optional[string]
	Address   codec.Optional[Address]
}

func (p CompanyUpdateParams) WithName(v string) CompanyUpdateParams {
	p.Name = codec.Some(v)
	return p
}

func (p CompanyUpdateParams) WithType(v CompanyType) CompanyUpdateParams {
	p.Type = codec.Some(codec.Known(v))
	return p
}

func (p CompanyUpdateParams) WithEmail(v string) CompanyUpdateParams {
	p.Email = codec.Some(v)
	return p
}

func (p CompanyUpdateParams) ClearEmail() CompanyUpdateParams {
	p.Email = codec.Null[string]()
	return p
}

func (p CompanyUpdateParams) WithPhone(v string) CompanyUpdateParams {
	p.Phone = codec.Some(v)
	return p
}

func (p CompanyUpdateParams) WithVATNumber(v string) CompanyUpdateParams {
	p.VATNumber = codec.Some(v)
	return p
}

func (p CompanyUpdateParams) WithWebsite(v string) CompanyUpdateParams {
	p.Website = codec.Some(v)
	return p
}

func (p CompanyUpdateParams) WithAddress(a Address) CompanyUpdateParams {
	p.Address = codec.Some(a)
	return p
}

func (p CompanyUpdateParams) Validate() error {
	checks := []optionalCheck{
		checkOptional("Name", p.Name, "notblank,max=255"),
		checkOptional("Email", p.Email, "email"),
		checkOptional("Website", p.Website, "url"),
		checkEnum("Type", p.Type, companyTypeCodec),
	}
	if a, ok := p.Address.Get(); ok {
		checks = append(checks, a.checks("Address.")...)
	}
	return validateParams("CompanyUpdateParams", p, checks...)
}

var companyUpdateCodec codec.Converter[CompanyUpdateParams] = codec.Object("CompanyUpdateParams",
	codec.OptionalField("name", codec.String(), func(m *CompanyUpdateParams) *codec.Optional[string] { return &m.Name }),
	codec.OptionalField("type", companyTypeCodec, func(m *CompanyUpdateParams) *codec.Optional[codec.Enum[CompanyType]] { return &m.Type }),
	codec.OptionalField("email", codec.String(), func(m *CompanyUpdateParams) *codec.Optional[string] { return &m.Email }),
	codec.OptionalField("phone", codec.String(), func(m *CompanyUpdateParams) *codec.Optional[string] { return &m.Phone }),
	codec.OptionalField("vat_number", codec.String(), func(m *CompanyUpdateParams) *codec.Optional[string] { return &m.VATNumber }),
	codec.OptionalField("website", codec.String(), func(m *CompanyUpdateParams) *codec.Optional[string] { return &m.Website }),
	codec.OptionalField("address", addressCodec, func(m *CompanyUpdateParams) *codec.Optional[Address] { return &m.Address }),
)

func (p CompanyUpdateParams) MarshalJSON() ([]byte, error) { return marshalParams(companyUpdateCodec, p) }

// CompaniesClient manages customers, suppliers and prospects.
type CompaniesClient struct {
	client *Client
}

func (c *CompaniesClient) List(ctx context.Context, params ListParams, opts ...RequestOption) (Page[Company], error) {
	if c == nil || c.client == nil {
		return Page[Company]{}, notInitialized("companies")
	}
	query, err := params.values()
	if err != nil {
		return Page[Company]{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, routes.Companies, query, nil, companyPageCodec, opts)
}

func (c *CompaniesClient) Get(ctx context.Context, companyID string, opts ...RequestOption) (Company, error) {
	if c == nil || c.client == nil {
		return Company{}, notInitialized("companies")
	}
	p, err := byID(routes.CompanyByID, companyID)
	if err != nil {
		return Company{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, p, nil, nil, companyCodec, opts)
}

func (c *CompaniesClient) Create(ctx context.Context, params CompanyCreateParams, opts ...RequestOption) (Company, error) {
	if c == nil || c.client == nil {
		return Company{}, notInitialized("companies")
	}
	body, err := encodeParams(companyCreateCodec, params)
	if err != nil {
		return Company{}, err
	}
	return fetch(ctx, c.client, http.MethodPost, routes.Companies, nil, body, companyCodec, opts)
}

func (c *CompaniesClient) Update(ctx context.Context, companyID string, params CompanyUpdateParams, opts ...RequestOption) (Company, error) {
	if c == nil || c.client == nil {
		return Company{}, notInitialized("companies")
	}
	p, err := byID(routes.CompanyByID, companyID)
	if err != nil {
		return Company{}, err
	}
	body, err := encodeParams(companyUpdateCodec, params)
	if err != nil {
		return Company{}, err
	}
	return fetch(ctx, c.client, http.MethodPatch, p, nil, body, companyCodec, opts)
}

func (c *CompaniesClient) Delete(ctx context.Context, companyID string, opts ...RequestOption) error {
	if c == nil || c.client == nil {
		return notInitialized("companies")
	}
	p, err := byID(routes.CompanyByID, companyID)
	if err != nil {
		return err
	}
	return remove(ctx, c.client, p, opts)
}
