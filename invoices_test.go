package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/headers"
	"github.com/ledgerdesk/ledgerdesk-go/testutil"
)

func TestInvoiceUpdateLineSendsSinglePatch(t *testing.T) {
	rec := newRecorder(t, testutil.JSON(http.StatusOK, `{"id":"line-1","label":"Consulting","price_ht":10}`))
	client := newTestClient(t, rec.Server)

	line, err := client.Invoices.UpdateLine(context.Background(), "inv-1", "line-1", LineUpdateParams{}.WithPriceHT(10))
	if err != nil {
		t.Fatalf("update line: %v", err)
	}
	exchanges := rec.Exchanges()
	if len(exchanges) != 1 {
		t.Fatalf("expected exactly one request, got %d", len(exchanges))
	}
	ex := exchanges[0]
	if ex.Method != http.MethodPatch || ex.Path != "/invoice/inv-1/line/line-1" {
		t.Fatalf("unexpected request %s %s", ex.Method, ex.Path)
	}
	if ex.Header.Get(headers.ContentType) != "application/json" {
		t.Fatalf("expected json content type, got %q", ex.Header.Get(headers.ContentType))
	}
	assertBody(t, ex.Body, `{"price_ht":10.0}`)
	if line.ID != "line-1" || line.PriceHT.Or(0) != 10 {
		t.Fatalf("unexpected line: %+v", line)
	}
}

func TestLineUpdateClearSendsNull(t *testing.T) {
	mock := NewMockTransport().WithJSON(http.StatusOK, `{"id":"line-1","label":"x"}`)
	client := newMockClient(t, mock)
	params := LineUpdateParams{}.WithLabel("Audit").ClearDiscount()
	if _, err := client.Quotes.UpdateLine(context.Background(), "quo-1", "line-1", params); err != nil {
		t.Fatalf("update line: %v", err)
	}
	req := mock.Requests()[0]
	if req.Path != "/v1/quote/quo-1/line/line-1" {
		t.Fatalf("unexpected path %s", req.Path)
	}
	assertBody(t, req.Body, `{"label":"Audit","discount":null,"discount_type":null}`)
}

func TestParamSettersReturnCopies(t *testing.T) {
	base := LineUpdateParams{}
	priced := base.WithPriceHT(5)
	if base.PriceHT.IsSet() {
		t.Fatalf("setter mutated the receiver")
	}
	if !priced.PriceHT.HasValue() {
		t.Fatalf("setter lost the value")
	}

	lines := []LineCreateParams{{Label: "a"}}
	create := InvoiceCreateParams{CompanyID: "cmp-1", Date: time.Now()}.WithLines(lines...)
	lines[0].Label = "changed"
	got, _ := create.Lines.Get()
	if got[0].Label != "a" {
		t.Fatalf("WithLines must copy its input")
	}
}

func TestInvoiceCreateValidationBlocksRequest(t *testing.T) {
	mock := NewMockTransport()
	client := newMockClient(t, mock)

	bad := InvoiceCreateParams{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}.
		WithCurrency("euro").
		WithLines(LineCreateParams{Label: "ok"}, LineCreateParams{}, LineCreateParams{Label: "neg"}.WithVATRate(-1))
	_, err := client.Invoices.Create(context.Background(), bad)

	var verr *ValidationError
	if !errors.As(err, &verr) || !IsValidation(err) {
		t.Fatalf("expected validation error, got %T %v", err, err)
	}
	want := map[string]bool{"CompanyID": false, "Currency": false, "Lines[1].Label": false, "Lines[2].VATRate": false}
	for _, f := range verr.Fields {
		if _, ok := want[f.Field]; ok {
			want[f.Field] = true
		}
	}
	for field, seen := range want {
		if !seen {
			t.Fatalf("expected field error for %s, got %+v", field, verr.Fields)
		}
	}
	if len(mock.Requests()) != 0 {
		t.Fatalf("validation failures must not hit the network")
	}
}

func TestNewInvoiceCreateParams(t *testing.T) {
	if _, err := NewInvoiceCreateParams("", time.Time{}); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	p, err := NewInvoiceCreateParams("cmp-1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = p.WithDueDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 1 || verr.Fields[0].Field != "DueDate" {
		t.Fatalf("due date before date must fail, got %v", err)
	}
}

func TestInvoiceCreateBody(t *testing.T) {
	mock := NewMockTransport().WithJSON(http.StatusCreated, invoiceJSON)
	client := newMockClient(t, mock)

	params, err := NewInvoiceCreateParams("cmp-1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	params = params.
		WithCurrency("EUR").
		WithLines(LineCreateParams{Label: "Consulting"}.WithQuantity(2).WithPriceHT(50).WithDiscount(10, DiscountTypePercent)).
		WithMetadata(map[string]string{"po": "PO-7"})
	inv, err := client.Invoices.Create(context.Background(), params, WithAutoIdempotencyKey())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	req := mock.Requests()[0]
	if req.Method != http.MethodPost || req.Path != "/v1/invoice" || req.Header.Get(headers.IdempotencyKey) == "" {
		t.Fatalf("unexpected request: %+v", req)
	}
	assertBody(t, req.Body, `{
		"company_id": "cmp-1",
		"date": "2024-03-01",
		"currency": "EUR",
		"lines": [{"label": "Consulting", "quantity": 2, "price_ht": 50, "discount": 10, "discount_type": "percent"}],
		"metadata": {"po": "PO-7"}
	}`)
	if inv.ID != "inv-1" || !inv.Status.Is(InvoiceStatusPending) {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
}

func TestInvoiceGetDecodesModel(t *testing.T) {
	mock := NewMockTransport().WithJSON(http.StatusOK, invoiceJSON)
	client := newMockClient(t, mock)
	inv, err := client.Invoices.Get(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if inv.Number.Or("") != "F-2024-001" || inv.CompanyID != "cmp-1" {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	if !inv.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", inv.Date)
	}
	if due, ok := inv.DueDate.Get(); !ok || due.Day() != 31 {
		t.Fatalf("unexpected due date %v", inv.DueDate)
	}
	if len(inv.Lines) != 1 || inv.Lines[0].VATRate.Or(0) != 20 {
		t.Fatalf("unexpected lines: %+v", inv.Lines)
	}
	if inv.Metadata.IsSet() || inv.UpdatedAt.IsSet() {
		t.Fatalf("absent fields must stay unset")
	}
}

func TestInvoiceRoundTripThroughJSON(t *testing.T) {
	var inv Invoice
	if err := json.Unmarshal([]byte(invoiceJSON), &inv); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assertBody(t, out, invoiceJSON)
}

func TestInvoiceUnknownStatusAndExtras(t *testing.T) {
	body := `{"id":"inv-2","status":"disputed","company_id":"cmp-1","date":"2024-03-01","lines":[],"sales_channel":"web"}`
	mock := NewMockTransport().WithJSON(http.StatusOK, body).WithJSON(http.StatusOK, body)
	lenient := newMockClient(t, mock)

	inv, err := lenient.Invoices.Get(context.Background(), "inv-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if inv.Status.IsKnown() || inv.Status.String() != "disputed" {
		t.Fatalf("unknown status must be kept raw, got %+v", inv.Status)
	}
	if inv.Extra["sales_channel"] != "web" {
		t.Fatalf("unknown keys must be preserved, got %v", inv.Extra)
	}

	strict := newMockClient(t, mock, WithStrictDecoding())
	_, err = strict.Invoices.Get(context.Background(), "inv-2")
	cerr, ok := codec.AsDecodeError(err)
	if !ok || cerr.Code != codec.CodeUnknownKey || cerr.Path != "sales_channel" {
		t.Fatalf("strict decoding must reject unknown keys, got %v", err)
	}
}

func TestInvoiceListEncodesQuery(t *testing.T) {
	page := `{"data":[` + invoiceJSON + `],"meta":{"page":2,"per_page":1,"total":3,"total_pages":3}}`
	mock := NewMockTransport().WithJSON(http.StatusOK, page)
	client := newMockClient(t, mock)

	res, err := client.Invoices.List(context.Background(), ListParams{Page: 2, PerPage: 1, Sort: "date", Order: SortDesc, Query: "acme"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	q, err := url.ParseQuery(mock.Requests()[0].Query)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	want := url.Values{"page": {"2"}, "per_page": {"1"}, "sort": {"date"}, "order": {"desc"}, "q": {"acme"}}
	if q.Encode() != want.Encode() {
		t.Fatalf("unexpected query %q, want %q", q.Encode(), want.Encode())
	}
	if len(res.Data) != 1 || res.Meta.Total != 3 || !res.HasMore() {
		t.Fatalf("unexpected page: %+v", res.Meta)
	}
}

func TestListParamsValidation(t *testing.T) {
	mock := NewMockTransport()
	client := newMockClient(t, mock)
	_, err := client.Invoices.List(context.Background(), ListParams{PerPage: 500, Order: "sideways"})
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Fatalf("expected two field errors, got %v", err)
	}
	if len(mock.Requests()) != 0 {
		t.Fatalf("validation failures must not hit the network")
	}
	if got := (ListParams{}).Next().Page; got != 2 {
		t.Fatalf("next of first page should be 2, got %d", got)
	}
}

func TestEmptyListParamsSendNoQuery(t *testing.T) {
	mock := NewMockTransport().WithJSON(http.StatusOK, `{"data":[],"meta":{"page":1,"per_page":20,"total":0,"total_pages":0}}`)
	client := newMockClient(t, mock)
	res, err := client.Invoices.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if mock.Requests()[0].Query != "" {
		t.Fatalf("expected empty query, got %q", mock.Requests()[0].Query)
	}
	if res.Data == nil || res.HasMore() {
		t.Fatalf("expected empty non-nil page without more results")
	}
}

func TestInvoiceSearch(t *testing.T) {
	mock := NewMockTransport().WithJSON(http.StatusOK, `{"data":[],"meta":{"page":1,"per_page":50,"total":0,"total_pages":0}}`)
	client := newMockClient(t, mock)

	params := InvoiceSearchParams{}.
		WithStatus(InvoiceStatusLate, InvoiceStatusPending).
		WithPeriod(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)).
		WithTotalRange(100, 500)
	if _, err := client.Invoices.Search(context.Background(), params, ListParams{PerPage: 50}); err != nil {
		t.Fatalf("search: %v", err)
	}
	req := mock.Requests()[0]
	if req.Method != http.MethodPost || req.Path != "/v1/invoice/search" || req.Query != "per_page=50" {
		t.Fatalf("unexpected request: %s %s?%s", req.Method, req.Path, req.Query)
	}
	assertBody(t, req.Body, `{"status":["late","pending"],"from":"2024-01-01","to":"2024-03-31","min_total":100,"max_total":500}`)

	if _, err := client.Invoices.Search(context.Background(), InvoiceSearchParams{}.WithTotalRange(10, 1), ListParams{}); !IsValidation(err) {
		t.Fatalf("inverted range must fail validation, got %v", err)
	}
}

func TestInvoiceBlankIDFailsValidation(t *testing.T) {
	mock := NewMockTransport()
	client := newMockClient(t, mock)
	if _, err := client.Invoices.Get(context.Background(), " "); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := client.Invoices.DeleteLine(context.Background(), "inv-1", ""); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(mock.Requests()) != 0 {
		t.Fatalf("blank identifiers must not hit the network")
	}
}

func TestInvoicePathEscaping(t *testing.T) {
	mock := NewMockTransport().WithJSON(http.StatusNoContent, nil)
	client := newMockClient(t, mock)
	if err := client.Invoices.Delete(context.Background(), "a/b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	req := mock.Requests()[0]
	if req.Method != http.MethodDelete || req.Path != "/v1/invoice/a%2Fb" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	if len(req.Body) != 0 {
		t.Fatalf("delete must not send a body")
	}
}

func TestInvoiceLines(t *testing.T) {
	mock := NewMockTransport().
		WithJSON(http.StatusOK, `[{"id":"l1","label":"a"},{"id":"l2","label":"b","discount_type":"bundle"}]`).
		WithJSON(http.StatusCreated, `{"id":"l3","label":"c"}`)
	client := newMockClient(t, mock)

	lines, err := client.Invoices.ListLines(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("list lines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	if dt, _ := lines[1].DiscountType.Get(); dt.IsKnown() || dt.String() != "bundle" {
		t.Fatalf("unknown discount type must be kept raw, got %v", dt)
	}

	params, err := NewLineCreateParams("c")
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if _, err := client.Invoices.CreateLine(context.Background(), "inv-1", params.WithUnit("h")); err != nil {
		t.Fatalf("create line: %v", err)
	}
	reqs := mock.Requests()
	if reqs[0].Path != "/v1/invoice/inv-1/line" || reqs[1].Method != http.MethodPost {
		t.Fatalf("unexpected requests: %+v", reqs)
	}
	assertBody(t, reqs[1].Body, `{"label":"c","unit":"h"}`)
}
