// Package routes holds the API route templates (RFC 6570) used by the
// resource clients. Templates are relative to the versioned base URL.
package routes

import (
	"fmt"
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

const (
	// AuthLogin exchanges an API key and private key for a bearer token.
	AuthLogin = "/auth/login"

	Invoices        = "/invoice"
	InvoiceSearch   = "/invoice/search"
	InvoiceByID     = "/invoice/{uid}"
	InvoiceLines    = "/invoice/{invoice_id}/line"
	InvoiceLineByID = "/invoice/{invoice_id}/line/{uid}"

	Quotes        = "/quote"
	QuoteByID     = "/quote/{uid}"
	QuoteLines    = "/quote/{quote_id}/line"
	QuoteLineByID = "/quote/{quote_id}/line/{uid}"
	// QuoteToInvoice converts an accepted quote into a draft invoice.
	QuoteToInvoice = "/quote/{uid}/invoice"

	Purchases    = "/purchase"
	PurchaseByID = "/purchase/{uid}"

	Absences      = "/absence"
	AbsenceSearch = "/absence/search"
	AbsenceByID   = "/absence/{uid}"

	Products    = "/product"
	ProductByID = "/product/{uid}"

	Companies   = "/company"
	CompanyByID = "/company/{uid}"

	Users    = "/user"
	UserMe   = "/user/me"
	UserByID = "/user/{uid}"
)

// Vars maps template variable names to values.
type Vars map[string]string

// Expand substitutes vars into template. Every variable the template names
// must be supplied and non-blank; values are percent-encoded.
func Expand(template string, vars Vars) (string, error) {
	tmpl, err := uritemplate.New(template)
	if err != nil {
		return "", fmt.Errorf("routes: parse %q: %w", template, err)
	}
	values := uritemplate.Values{}
	for _, name := range tmpl.Varnames() {
		v, ok := vars[name]
		if !ok || strings.TrimSpace(v) == "" {
			return "", fmt.Errorf("routes: %s required", name)
		}
		values.Set(name, uritemplate.String(v))
	}
	return tmpl.Expand(values)
}
