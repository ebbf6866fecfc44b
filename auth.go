// Package sdk provides the LedgerDesk Go SDK for the LedgerDesk
// business-management API: invoices, quotes, purchases, absences, products,
// companies and users.
package sdk

import (
	"net/http"
	"strings"

	"github.com/ledgerdesk/ledgerdesk-go/headers"
)

type authStrategy interface {
	Apply(req *http.Request)
}

type authChain []authStrategy

func (c authChain) Apply(req *http.Request) {
	for _, s := range c {
		if s == nil {
			continue
		}
		s.Apply(req)
	}
}

// staticHeader sets a fixed header. Blank values are never sent.
type staticHeader struct {
	name  string
	value string
}

func (h staticHeader) Apply(req *http.Request) {
	if strings.TrimSpace(h.value) == "" {
		req.Header.Del(h.name)
		return
	}
	req.Header.Set(h.name, h.value)
}

func buildAuthChain(cfg Config) authChain {
	var chain authChain
	if cfg.AppID != "" {
		chain = append(chain, staticHeader{name: headers.AppID, value: cfg.AppID})
	}
	if cfg.AppSecret != "" {
		chain = append(chain, staticHeader{name: headers.AppSecret, value: cfg.AppSecret})
	}
	return chain
}

func normalizeBearer(token string) string {
	t := strings.TrimSpace(token)
	if strings.HasPrefix(strings.ToLower(t), "bearer ") {
		t = strings.TrimSpace(t[7:])
	}
	return t
}
