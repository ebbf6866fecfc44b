package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/routes"
)

// User is a member of the account.
type User struct {
	ID        string
	Email     string
	FirstName codec.Optional[string]
	LastName  codec.Optional[string]
	Role      codec.Enum[UserRole]
	Position  codec.Optional[string]
	Active    codec.Optional[bool]
	CreatedAt codec.Optional[time.Time]
	UpdatedAt codec.Optional[time.Time]
	Extra     map[string]any
}

var userCodec codec.Converter[User] = codec.Object("User",
	codec.RequiredField("id", codec.String(), func(m *User) *string { return &m.ID }),
	codec.RequiredField("email", codec.String(), func(m *User) *string { return &m.Email }),
	codec.OptionalField("first_name", codec.String(), func(m *User) *codec.Optional[string] { return &m.FirstName }),
	codec.OptionalField("last_name", codec.String(), func(m *User) *codec.Optional[string] { return &m.LastName }),
	codec.RequiredField("role", userRoleCodec, func(m *User) *codec.Enum[UserRole] { return &m.Role }),
	codec.OptionalField("position", codec.String(), func(m *User) *codec.Optional[string] { return &m.Position }),
	codec.OptionalField("active", codec.Bool(), func(m *User) *codec.Optional[bool] { return &m.Active }),
	codec.OptionalField("created_at", codec.DateTime(), func(m *User) *codec.Optional[time.Time] { return &m.CreatedAt }),
	codec.OptionalField("updated_at", codec.DateTime(), func(m *User) *codec.Optional[time.Time] { return &m.UpdatedAt }),
	codec.Extras(func(m *User) *map[string]any { return &m.Extra }),
)

var userPageCodec = pageCodec(userCodec)

func (u User) MarshalJSON() ([]byte, error) { return codec.Marshal(userCodec, u) }

func (u *User) UnmarshalJSON(data []byte) error { return codec.Unmarshal(userCodec, data, u) }

func (u *User) decodeMode(data []byte, mode codec.Mode) error {
	return codec.UnmarshalMode(userCodec, data, u, mode)
}

// UserCreateParams invites a user.
type UserCreateParams struct {
	Email     string   `validate:"required,email"`
	Role      UserRole `validate:"required,oneof=admin manager employee"`
	FirstName codec.Optional[string]
	LastName  codec.Optional[string]
	Position  codec.Optional[string]
}

// NewUserCreateParams returns params with the required fields set.
func NewUserCreateParams(email string, role UserRole) (UserCreateParams, error) {
	p := UserCreateParams{Email: email, Role: role}
	return p, p.Validate()
}

// WithName sets the first and last name.
func (p UserCreateParams) WithName(first, last string) UserCreateParams {
	p.FirstName = codec.Some(first)
	p.LastName = codec.Some(last)
	return p
}

func (p UserCreateParams) WithPosition(v string) UserCreateParams {
	p.Position = codec.Some(v)
	return p
}

func (p UserCreateParams) Validate() error {
	return validateParams("UserCreateParams", p)
}

var userCreateCodec codec.Converter[UserCreateParams] = codec.Object("UserCreateParams",
	codec.RequiredField("email", codec.String(), func(m *UserCreateParams) *string { return &m.Email }),
	codec.RequiredField("role", plainEnum[UserRole](), func(m *UserCreateParams) *UserRole { return &m.Role }),
	codec.OptionalField("first_name", codec.String(), func(m *UserCreateParams) *codec.Optional[string] { return &m.FirstName }),
	codec.OptionalField("last_name", codec.String(), func(m *UserCreateParams) *codec.Optional[string] { return &m.LastName }),
	codec.OptionalField("position", codec.String(), func(m *UserCreateParams) *codec.Optional[string] { return &m.Position }),
)

func (p UserCreateParams) MarshalJSON() ([]byte, error) { return marshalParams(userCreateCodec, p) }

// UserUpdateParams patches a user. Only set fields are sent.
type UserUpdateParams struct {
	FirstName codec.Optional[string]
	LastName  codec.Optional[string]
	Role      codec.Optional[codec.Enum[UserRole]]
	Position  codec.Optional[string]
	Active    codec.Optional[bool]
}

func (p UserUpdateParams) WithName(first, last string) UserUpdateParams {
	p.FirstName = codec.Some(first)
	p.LastName = codec.Some(last)
	return p
}

func (p UserUpdateParams) WithRole(v UserRole) UserUpdateParams {
	p.Role = codec.Some(codec.Known(v))
	return p
}

func (p UserUpdateParams) WithPosition(v string) UserUpdateParams {
	p.Position = codec.Some(v)
	return p
}

func (p UserUpdateParams) ClearPosition() UserUpdateParams {
	p.Position = codec.Null[string]()
	return p
}

func (p UserUpdateParams) WithActive(v bool) UserUpdateParams {
	p.Active = codec.Some(v)
	return p
}

func (p UserUpdateParams) Validate() error {
	return validateParams("UserUpdateParams", p, checkEnum("Role", p.Role, userRoleCodec))
}

var userUpdateCodec codec.Converter[UserUpdateParams] = codec.Object("UserUpdateParams",
	codec.OptionalField("first_name", codec.String(), func(m *UserUpdateParams) *codec.Optional[string] { return &m.FirstName }),
	codec.OptionalField("last_name", codec.String(), func(m *UserUpdateParams) *codec.Optional[string] { return &m.LastName }),
	codec.OptionalField("role", userRoleCodec, func(m *UserUpdateParams) *codec.Optional[codec.Enum[UserRole]] { return &m.Role }),
	codec.OptionalField("position", codec.String(), func(m *UserUpdateParams) *codec.Optional[string] { return &m.Position }),
	codec.OptionalField("active", codec.Bool(), func(m *UserUpdateParams) *codec.Optional[bool] { return &m.Active }),
)

func (p UserUpdateParams) MarshalJSON() ([]byte, error) { return marshalParams(userUpdateCodec, p) }

// UsersClient manages account users.
type UsersClient struct {
	client *Client
}

func (c *UsersClient) List(ctx context.Context, params ListParams, opts ...RequestOption) (Page[User], error) {
	if c == nil || c.client == nil {
		return Page[User]{}, notInitialized("users")
	}
	query, err := params.values()
	if err != nil {
		return Page[User]{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, routes.Users, query, nil, userPageCodec, opts)
}

func (c *UsersClient) Get(ctx context.Context, userID string, opts ...RequestOption) (User, error) {
	if c == nil || c.client == nil {
		return User{}, notInitialized("users")
	}
	p, err := byID(routes.UserByID, userID)
	if err != nil {
		return User{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, p, nil, nil, userCodec, opts)
}

// Me returns the user the credentials belong to.
func (c *UsersClient) Me(ctx context.Context, opts ...RequestOption) (User, error) {
	if c == nil || c.client == nil {
		return User{}, notInitialized("users")
	}
	return fetch(ctx, c.client, http.MethodGet, routes.UserMe, nil, nil, userCodec, opts)
}

func (c *UsersClient) Create(ctx context.Context, params UserCreateParams, opts ...RequestOption) (User, error) {
	if c == nil || c.client == nil {
		return User{}, notInitialized("users")
	}
	body, err := encodeParams(userCreateCodec, params)
	if err != nil {
		return User{}, err
	}
	return fetch(ctx, c.client, http.MethodPost, routes.Users, nil, body, userCodec, opts)
}

func (c *UsersClient) Update(ctx context.Context, userID string, params UserUpdateParams, opts ...RequestOption) (User, error) {
	if c == nil || c.client == nil {
		return User{}, notInitialized("users")
	}
	p, err := byID(routes.UserByID, userID)
	if err != nil {
		return User{}, err
	}
	body, err := encodeParams(userUpdateCodec, params)
	if err != nil {
		return User{}, err
	}
	return fetch(ctx, c.client, http.MethodPatch, p, nil, body, userCodec, opts)
}

func (c *UsersClient) Delete(ctx context.Context, userID string, opts ...RequestOption) error {
	if c == nil || c.client == nil {
		return notInitialized("users")
	}
	p, err := byID(routes.UserByID, userID)
	if err != nil {
		return err
	}
	return remove(ctx, c.client, p, opts)
}
