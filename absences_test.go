package sdk

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
)

const emptyPage = `{"data":[],"meta":{"page":1,"per_page":20,"total":0,"total_pages":0}}`

func TestAbsenceSearchPositionTo(t *testing.T) {
	tests := []struct {
		name   string
		params AbsenceSearchParams
		want   string
	}{
		{name: "all", params: AbsenceSearchParams{}.WithPosition(PositionAll), want: `{"position_to":"all"}`},
		{name: "list", params: AbsenceSearchParams{}.WithPositions("p1", "p2"), want: `{"position_to":["p1","p2"]}`},
		{name: "unset", params: AbsenceSearchParams{}, want: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockTransport().WithJSON(http.StatusOK, emptyPage)
			client := newMockClient(t, mock)
			if _, err := client.Absences.Search(context.Background(), tt.params, ListParams{}); err != nil {
				t.Fatalf("search: %v", err)
			}
			req := mock.Requests()[0]
			if req.Method != http.MethodPost || req.Path != "/v1/absence/search" {
				t.Fatalf("unexpected request %s %s", req.Method, req.Path)
			}
			assertBody(t, req.Body, tt.want)
		})
	}
}

func TestAbsenceSearchFilters(t *testing.T) {
	mock := NewMockTransport().WithJSON(http.StatusOK, emptyPage)
	client := newMockClient(t, mock)
	params := AbsenceSearchParams{}.
		WithUserIDs("usr-1").
		WithTypes(AbsenceTypeRemote, AbsenceTypeSickLeave).
		WithStatus(AbsenceStatusApproved).
		WithPeriod(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC))
	if _, err := client.Absences.Search(context.Background(), params, ListParams{Page: 3}); err != nil {
		t.Fatalf("search: %v", err)
	}
	req := mock.Requests()[0]
	if req.Query != "page=3" {
		t.Fatalf("unexpected query %q", req.Query)
	}
	assertBody(t, req.Body, `{
		"user_ids": ["usr-1"],
		"types": ["remote", "sick_leave"],
		"status": ["approved"],
		"from": "2024-07-01",
		"to": "2024-07-31"
	}`)
}

func TestAbsenceSearchValidation(t *testing.T) {
	tests := []struct {
		name   string
		params AbsenceSearchParams
		field  string
	}{
		{name: "blank scalar", params: AbsenceSearchParams{}.WithPosition(" "), field: "PositionTo"},
		{name: "empty list", params: AbsenceSearchParams{}.WithPositions(), field: "PositionTo"},
		{name: "blank list item", params: AbsenceSearchParams{}.WithPositions("p1", ""), field: "PositionTo[1]"},
		{
			name:   "inverted period",
			params: AbsenceSearchParams{}.WithPeriod(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			field:  "To",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *ValidationError
			if err := tt.params.Validate(); !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(verr.Fields) != 1 || verr.Fields[0].Field != tt.field {
				t.Fatalf("expected a single error on %s, got %+v", tt.field, verr.Fields)
			}
		})
	}
}

func TestAbsenceSearchPositionToDecodes(t *testing.T) {
	scalar, err := codec.Decode(absenceSearchCodec, map[string]any{"position_to": "all"})
	if err != nil {
		t.Fatalf("decode scalar: %v", err)
	}
	pos, _ := scalar.PositionTo.Get()
	if v, ok := pos.Scalar(); !ok || v != PositionAll {
		t.Fatalf("expected scalar all, got %+v", pos)
	}

	list, err := codec.Decode(absenceSearchCodec, map[string]any{"position_to": []any{"p1", "p2"}})
	if err != nil {
		t.Fatalf("decode list: %v", err)
	}
	pos, _ = list.PositionTo.Get()
	if ids, ok := pos.List(); !ok || len(ids) != 2 || ids[1] != "p2" {
		t.Fatalf("expected list [p1 p2], got %+v", pos)
	}

	if _, err := codec.Decode(absenceSearchCodec, map[string]any{"position_to": 3.0}); err == nil {
		t.Fatalf("a number matches neither variant")
	}
}

func TestAbsenceCreate(t *testing.T) {
	start := time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 8, 9, 0, 0, 0, 0, time.UTC)

	if _, err := NewAbsenceCreateParams("usr-1", "vacation", start, end); !IsValidation(err) {
		t.Fatalf("unknown absence type must fail validation, got %v", err)
	}
	if _, err := NewAbsenceCreateParams("usr-1", AbsenceTypePaidLeave, end, start); !IsValidation(err) {
		t.Fatalf("inverted dates must fail validation, got %v", err)
	}

	params, err := NewAbsenceCreateParams("usr-1", AbsenceTypePaidLeave, start, end)
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	mock := NewMockTransport().WithJSON(http.StatusCreated, `{
		"id": "abs-1", "user_id": "usr-1", "type": "paid_leave", "status": "pending",
		"start_date": "2024-08-05", "end_date": "2024-08-09", "half_day": false
	}`)
	client := newMockClient(t, mock)
	abs, err := client.Absences.Create(context.Background(), params.WithComment("summer"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	assertBody(t, mock.Requests()[0].Body, `{
		"user_id": "usr-1", "type": "paid_leave",
		"start_date": "2024-08-05", "end_date": "2024-08-09", "comment": "summer"
	}`)
	if !abs.Type.Is(AbsenceTypePaidLeave) || !abs.Status.Is(AbsenceStatusPending) {
		t.Fatalf("unexpected absence: %+v", abs)
	}
	if half, ok := abs.HalfDay.Get(); !ok || half {
		t.Fatalf("expected half_day=false to be present, got %+v", abs.HalfDay)
	}
}

func TestAbsenceUpdateAndDelete(t *testing.T) {
	mock := NewMockTransport().
		WithJSON(http.StatusOK, `{"id":"abs-1","user_id":"usr-1","type":"remote","status":"approved","start_date":"2024-08-05","end_date":"2024-08-05"}`).
		WithJSON(http.StatusNoContent, nil)
	client := newMockClient(t, mock)

	if _, err := client.Absences.Update(context.Background(), "abs-1", AbsenceUpdateParams{}.WithStatus(AbsenceStatusApproved).ClearComment()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := client.Absences.Delete(context.Background(), "abs-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	reqs := mock.Requests()
	if reqs[0].Method != http.MethodPatch || reqs[0].Path != "/v1/absence/abs-1" {
		t.Fatalf("unexpected update request %s %s", reqs[0].Method, reqs[0].Path)
	}
	assertBody(t, reqs[0].Body, `{"status":"approved","comment":null}`)
	if reqs[1].Method != http.MethodDelete || reqs[1].Path != "/v1/absence/abs-1" {
		t.Fatalf("unexpected delete request %s %s", reqs[1].Method, reqs[1].Path)
	}
}
