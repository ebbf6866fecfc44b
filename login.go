package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/ledgerdesk/ledgerdesk-go/auth"
	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/routes"
)

// LoginParams exchanges an API key pair for a bearer token.
type LoginParams struct {
	APIKey     string `validate:"required,notblank"`
	PrivateKey string `validate:"required,notblank"`
}

func (p LoginParams) Validate() error { return validateParams("LoginParams", p) }

var loginCodec codec.Converter[LoginParams] = codec.Object("LoginParams",
	codec.RequiredField("api_key", codec.String(), func(m *LoginParams) *string { return &m.APIKey }),
	codec.RequiredField("private_key", codec.String(), func(m *LoginParams) *string { return &m.PrivateKey }),
)

func (p LoginParams) MarshalJSON() ([]byte, error) { return marshalParams(loginCodec, p) }

// AuthToken is a bearer token returned by Login. Pass it to calls with
// WithBearerToken.
type AuthToken struct {
	Token     string
	ExpiresAt codec.Optional[time.Time]
	Extra     map[string]any
}

var authTokenCodec codec.Converter[AuthToken] = codec.Object("AuthToken",
	codec.RequiredField("token", codec.String(), func(m *AuthToken) *string { return &m.Token }),
	codec.OptionalField("expires_at", codec.DateTime(), func(m *AuthToken) *codec.Optional[time.Time] { return &m.ExpiresAt }),
	codec.Extras(func(m *AuthToken) *map[string]any { return &m.Extra }),
)

func (t AuthToken) MarshalJSON() ([]byte, error) { return codec.Marshal(authTokenCodec, t) }

func (t *AuthToken) UnmarshalJSON(data []byte) error { return codec.Unmarshal(authTokenCodec, data, t) }

func (t *AuthToken) decodeMode(data []byte, mode codec.Mode) error {
	return codec.UnmarshalMode(authTokenCodec, data, t, mode)
}

// Claims decodes the token's JWT claims without verifying them.
func (t AuthToken) Claims() (*auth.Claims, error) { return auth.ParseClaims(t.Token) }

// Expiry is expires_at when the API sends it, otherwise the JWT exp claim.
// The zero time means unknown.
func (t AuthToken) Expiry() time.Time {
	if exp, ok := t.ExpiresAt.Get(); ok {
		return exp
	}
	claims, err := t.Claims()
	if err != nil {
		return time.Time{}
	}
	return claims.ExpiresAt()
}

// AuthClient wraps the login endpoint.
type AuthClient struct {
	client *Client
}

// Login returns a bearer token. The client does not keep it.
func (c *AuthClient) Login(ctx context.Context, params LoginParams, opts ...RequestOption) (AuthToken, error) {
	if c == nil || c.client == nil {
		return AuthToken{}, notInitialized("auth")
	}
	body, err := encodeParams(loginCodec, params)
	if err != nil {
		return AuthToken{}, err
	}
	return fetch(ctx, c.client, http.MethodPost, routes.AuthLogin, nil, body, authTokenCodec, opts)
}
