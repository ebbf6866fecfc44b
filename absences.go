package sdk

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
	"github.com/ledgerdesk/ledgerdesk-go/routes"
)

// PositionAll selects absences of every position in AbsenceSearchParams.
const PositionAll = "all"

// Absence is a leave or remote-work period of a user.
type Absence struct {
	ID         string
	UserID     string
	Type       codec.Enum[AbsenceType]
	Status     codec.Enum[AbsenceStatus]
	StartDate  time.Time
	EndDate    time.Time
	HalfDay    codec.Optional[bool]
	Comment    codec.Optional[string]
	ApprovedBy codec.Optional[string]
	CreatedAt  codec.Optional[time.Time]
	UpdatedAt  codec.Optional[time.Time]
	Extra      map[string]any
}

var absenceCodec codec.Converter[Absence] = codec.Object("Absence",
	codec.RequiredField("id", codec.String(), func(m *Absence) *string { return &m.ID }),
	codec.RequiredField("user_id", codec.String(), func(m *Absence) *string { return &m.UserID }),
	codec.RequiredField("type", absenceTypeCodec, func(m *Absence) *codec.Enum[AbsenceType] { return &m.Type }),
	codec.RequiredField("status", absenceStatusCodec, func(m *Absence) *codec.Enum[AbsenceStatus] { return &m.Status }),
	codec.RequiredField("start_date", codec.Date(), func(m *Absence) *time.Time { return &m.StartDate }),
	codec.RequiredField("end_date", codec.Date(), func(m *Absence) *time.Time { return &m.EndDate }),
	codec.OptionalField("half_day", codec.Bool(), func(m *Absence) *codec.Optional[bool] { return &m.HalfDay }),
	codec.OptionalField("comment", codec.String(), func(m *Absence) *codec.Optional[string] { return &m.Comment }),
	codec.OptionalField("approved_by", codec.String(), func(m *Absence) *codec.Optional[string] { return &m.ApprovedBy }),
	codec.OptionalField("created_at", codec.DateTime(), func(m *Absence) *codec.Optional[time.Time] { return &m.CreatedAt }),
	codec.OptionalField("updated_at", codec.DateTime(), func(m *Absence) *codec.Optional[time.Time] { return &m.UpdatedAt }),
	codec.Extras(func(m *Absence) *map[string]any { return &m.Extra }),
)

var absencePageCodec = pageCodec(absenceCodec)

func (a Absence) MarshalJSON() ([]byte, error) { return codec.Marshal(absenceCodec, a) }

func (a *Absence) UnmarshalJSON(data []byte) error { return codec.Unmarshal(absenceCodec, data, a) }

func (a *Absence) decodeMode(data []byte, mode codec.Mode) error {
	return codec.UnmarshalMode(absenceCodec, data, a, mode)
}

// AbsenceCreateParams requests an absence for a user.
type AbsenceCreateParams struct {
	UserID    string      `validate:"required,notblank"`
	Type      AbsenceType `validate:"required,oneof=paid_leave sick_leave unpaid_leave remote training other"`
	StartDate time.Time   `validate:"required"`
	EndDate   time.Time   `validate:"required"`
	HalfDay   codec.Optional[bool]
	Comment   codec.Optional[string]
}

// NewAbsenceCreateParams returns params with the required fields set.
func NewAbsenceCreateParams(userID string, kind AbsenceType, start, end time.Time) (AbsenceCreateParams, error) {
	p := AbsenceCreateParams{UserID: userID, Type: kind, StartDate: start, EndDate: end}
	return p, p.Validate()
}

func (p AbsenceCreateParams) WithHalfDay(v bool) AbsenceCreateParams {
	p.HalfDay = codec.Some(v)
	return p
}

func (p AbsenceCreateParams) WithComment(v string) AbsenceCreateParams {
	p.Comment = codec.Some(v)
	return p
}

func (p AbsenceCreateParams) Validate() error {
	fields, err := collectFieldErrors(p, "", checkOptional("Comment", p.Comment, "max=1000"))
	if err != nil {
		return err
	}
	if !p.StartDate.IsZero() && p.EndDate.Before(p.StartDate) {
		fields = append(fields, FieldError{Field: "EndDate", Message: "must not be before StartDate"})
	}
	if len(fields) > 0 {
		return &ValidationError{Params: "AbsenceCreateParams", Fields: fields}
	}
	return nil
}

var absenceCreateCodec codec.Converter[AbsenceCreateParams] = codec.Object("AbsenceCreateParams",
	codec.RequiredField("user_id", codec.String(), func(m *AbsenceCreateParams) *string { return &m.UserID }),
	codec.RequiredField("type", plainEnum[AbsenceType](), func(m *AbsenceCreateParams) *AbsenceType { return &m.Type }),
	codec.RequiredField("start_date", codec.Date(), func(m *AbsenceCreateParams) *time.Time { return &m.StartDate }),
	codec.RequiredField("end_date", codec.Date(), func(m *AbsenceCreateParams) *time.Time { return &m.EndDate }),
	codec.OptionalField("half_day", codec.Bool(), func(m *AbsenceCreateParams) *codec.Optional[bool] { return &m.HalfDay }),
	codec.OptionalField("comment", codec.String(), func(m *AbsenceCreateParams) *codec.Optional[string] { return &m.Comment }),
)

func (p AbsenceCreateParams) MarshalJSON() ([]byte, error) { return marshalParams(absenceCreateCodec, p) }

// AbsenceUpdateParams patches an absence. Only set fields are sent.
type AbsenceUpdateParams struct {
	Type      codec.Optional[codec.Enum[AbsenceType]]
	Status    codec.Optional[codec.Enum[AbsenceStatus]]
	StartDate codec.Optional[time.Time]
	EndDate   codec.Optional[time.Time]
	HalfDay   codec.Optional[bool]
	Comment   codec.Optional[string]
}

func (p AbsenceUpdateParams) WithType(v AbsenceType) AbsenceUpdateParams {
	p.Type = codec.Some(codec.Known(v))
	return p
}

func (p AbsenceUpdateParams) WithStatus(v AbsenceStatus) AbsenceUpdateParams {
	p.Status = codec.Some(codec.Known(v))
	return p
}

// WithPeriod moves the absence to [start, end].
func (p AbsenceUpdateParams) WithPeriod(start, end time.Time) AbsenceUpdateParams {
	p.StartDate = codec.Some(start)
	p.EndDate = codec.Some(end)
	return p
}

func (p AbsenceUpdateParams) WithHalfDay(v bool) AbsenceUpdateParams {
	p.HalfDay = codec.Some(v)
	return p
}

func (p AbsenceUpdateParams) WithComment(v string) AbsenceUpdateParams {
	p.Comment = codec.Some(v)
	return p
}

func (p AbsenceUpdateParams) ClearComment() AbsenceUpdateParams {
	p.Comment = codec.Null[string]()
	return p
}

func (p AbsenceUpdateParams) Validate() error {
	fields, err := collectFieldErrors(p, "",
		checkOptional("Comment", p.Comment, "max=1000"),
		checkEnum("Type", p.Type, absenceTypeCodec),
		checkEnum("Status", p.Status, absenceStatusCodec),
	)
	if err != nil {
		return err
	}
	start, okStart := p.StartDate.Get()
	end, okEnd := p.EndDate.Get()
	if okStart && okEnd && end.Before(start) {
		fields = append(fields, FieldError{Field: "EndDate", Message: "must not be before StartDate"})
	}
	if len(fields) > 0 {
		return &ValidationError{Params: "AbsenceUpdateParams", Fields: fields}
	}
	return nil
}

var absenceUpdateCodec codec.Converter[AbsenceUpdateParams] = codec.Object("AbsenceUpdateParams",
	codec.OptionalField("type", absenceTypeCodec, func(m *AbsenceUpdateParams) *codec.Optional[codec.Enum[AbsenceType]] { return &m.Type }),
	codec.OptionalField("status", absenceStatusCodec, func(m *AbsenceUpdateParams) *codec.Optional[codec.Enum[AbsenceStatus]] { return &m.Status }),
	codec.OptionalField("start_date", codec.Date(), func(m *AbsenceUpdateParams) *codec.Optional[time.Time] { return &m.StartDate }),
	codec.OptionalField("end_date", codec.Date(), func(m *AbsenceUpdateParams) *codec.Optional[time.Time] { return &m.EndDate }),
	codec.OptionalField("half_day", codec.Bool(), func(m *AbsenceUpdateParams) *codec.Optional[bool] { return &m.HalfDay }),
	codec.OptionalField("comment", codec.String(), func(m *AbsenceUpdateParams) *codec.Optional[string] { return &m.Comment }),
)

func (p AbsenceUpdateParams) MarshalJSON() ([]byte, error) { return marshalParams(absenceUpdateCodec, p) }

// AbsenceSearchParams filters absences. PositionTo takes either a single
// value (typically PositionAll) or a list of position identifiers, and is
// sent in the same shape.
type AbsenceSearchParams struct {
	PositionTo codec.Optional[codec.ScalarOrList[string]]
	UserIDs    codec.Optional[[]string]
	Types      codec.Optional[[]codec.Enum[AbsenceType]]
	Status     codec.Optional[[]codec.Enum[AbsenceStatus]]
	From       codec.Optional[time.Time]
	To         codec.Optional[time.Time]
}

// WithPosition filters on a single position value.
func (p AbsenceSearchParams) WithPosition(v string) AbsenceSearchParams {
	p.PositionTo = codec.Some(codec.Scalar(v))
	return p
}

// WithPositions filters on several position identifiers.
func (p AbsenceSearchParams) WithPositions(ids ...string) AbsenceSearchParams {
	p.PositionTo = codec.Some(codec.List(ids...))
	return p
}

func (p AbsenceSearchParams) WithUserIDs(ids ...string) AbsenceSearchParams {
	p.UserIDs = codec.Some(append([]string(nil), ids...))
	return p
}

func (p AbsenceSearchParams) WithTypes(types ...AbsenceType) AbsenceSearchParams {
	out := make([]codec.Enum[AbsenceType], len(types))
	for i, t := range types {
		out[i] = codec.Known(t)
	}
	p.Types = codec.Some(out)
	return p
}

func (p AbsenceSearchParams) WithStatus(statuses ...AbsenceStatus) AbsenceSearchParams {
	out := make([]codec.Enum[AbsenceStatus], len(statuses))
	for i, s := range statuses {
		out[i] = codec.Known(s)
	}
	p.Status = codec.Some(out)
	return p
}

// WithPeriod keeps absences overlapping [from, to].
func (p AbsenceSearchParams) WithPeriod(from, to time.Time) AbsenceSearchParams {
	p.From = codec.Some(from)
	p.To = codec.Some(to)
	return p
}

func (p AbsenceSearchParams) Validate() error {
	checks := append(checkEnums("Types", p.Types, absenceTypeCodec), checkEnums("Status", p.Status, absenceStatusCodec)...)
	fields, err := collectFieldErrors(p, "", checks...)
	if err != nil {
		return err
	}
	if pos, ok := p.PositionTo.Get(); ok {
		if ids, isList := pos.List(); isList {
			if len(ids) == 0 {
				fields = append(fields, FieldError{Field: "PositionTo", Message: "must be at least 1 items"})
			}
			for i, id := range ids {
				if strings.TrimSpace(id) == "" {
					fields = append(fields, FieldError{Field: "PositionTo[" + strconv.Itoa(i) + "]", Message: "must not be blank"})
				}
			}
		} else if v, _ := pos.Scalar(); strings.TrimSpace(v) == "" {
			fields = append(fields, FieldError{Field: "PositionTo", Message: "must not be blank"})
		}
	}
	from, okFrom := p.From.Get()
	to, okTo := p.To.Get()
	if okFrom && okTo && to.Before(from) {
		fields = append(fields, FieldError{Field: "To", Message: "must not be before From"})
	}
	if len(fields) > 0 {
		return &ValidationError{Params: "AbsenceSearchParams", Fields: fields}
	}
	return nil
}

var absenceSearchCodec codec.Converter[AbsenceSearchParams] = codec.Object("AbsenceSearchParams",
	codec.OptionalField("position_to", codec.ScalarOrListOf(codec.String()), func(m *AbsenceSearchParams) *codec.Optional[codec.ScalarOrList[string]] { return &m.PositionTo }),
	codec.OptionalField("user_ids", codec.ListOf(codec.String()), func(m *AbsenceSearchParams) *codec.Optional[[]string] { return &m.UserIDs }),
	codec.OptionalField("types", codec.ListOf(absenceTypeCodec), func(m *AbsenceSearchParams) *codec.Optional[[]codec.Enum[AbsenceType]] { return &m.Types }),
	codec.OptionalField("status", codec.ListOf(absenceStatusCodec), func(m *AbsenceSearchParams) *codec.Optional[[]codec.Enum[AbsenceStatus]] { return &m.Status }),
	codec.OptionalField("from", codec.Date(), func(m *AbsenceSearchParams) *codec.Optional[time.Time] { return &m.From }),
	codec.OptionalField("to", codec.Date(), func(m *AbsenceSearchParams) *codec.Optional[time.Time] { return &m.To }),
)

func (p AbsenceSearchParams) MarshalJSON() ([]byte, error) { return marshalParams(absenceSearchCodec, p) }

// AbsencesClient manages user absences.
type AbsencesClient struct {
	client *Client
}

func (c *AbsencesClient) List(ctx context.Context, params ListParams, opts ...RequestOption) (Page[Absence], error) {
	if c == nil || c.client == nil {
		return Page[Absence]{}, notInitialized("absences")
	}
	query, err := params.values()
	if err != nil {
		return Page[Absence]{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, routes.Absences, query, nil, absencePageCodec, opts)
}

// Search filters absences; page controls pagination of the results.
func (c *AbsencesClient) Search(ctx context.Context, params AbsenceSearchParams, page ListParams, opts ...RequestOption) (Page[Absence], error) {
	if c == nil || c.client == nil {
		return Page[Absence]{}, notInitialized("absences")
	}
	body, err := encodeParams(absenceSearchCodec, params)
	if err != nil {
		return Page[Absence]{}, err
	}
	query, err := page.values()
	if err != nil {
		return Page[Absence]{}, err
	}
	return fetch(ctx, c.client, http.MethodPost, routes.AbsenceSearch, query, body, absencePageCodec, opts)
}

func (c *AbsencesClient) Get(ctx context.Context, absenceID string, opts ...RequestOption) (Absence, error) {
	if c == nil || c.client == nil {
		return Absence{}, notInitialized("absences")
	}
	p, err := byID(routes.AbsenceByID, absenceID)
	if err != nil {
		return Absence{}, err
	}
	return fetch(ctx, c.client, http.MethodGet, p, nil, nil, absenceCodec, opts)
}

func (c *AbsencesClient) Create(ctx context.Context, params AbsenceCreateParams, opts ...RequestOption) (Absence, error) {
	if c == nil || c.client == nil {
		return Absence{}, notInitialized("absences")
	}
	body, err := encodeParams(absenceCreateCodec, params)
	if err != nil {
		return Absence{}, err
	}
	return fetch(ctx, c.client, http.MethodPost, routes.Absences, nil, body, absenceCodec, opts)
}

func (c *AbsencesClient) Update(ctx context.Context, absenceID string, params AbsenceUpdateParams, opts ...RequestOption) (Absence, error) {
	if c == nil || c.client == nil {
		return Absence{}, notInitialized("absences")
	}
	p, err := byID(routes.AbsenceByID, absenceID)
	if err != nil {
		return Absence{}, err
	}
	body, err := encodeParams(absenceUpdateCodec, params)
	if err != nil {
		return Absence{}, err
	}
	return fetch(ctx, c.client, http.MethodPatch, p, nil, body, absenceCodec, opts)
}

func (c *AbsencesClient) Delete(ctx context.Context, absenceID string, opts ...RequestOption) error {
	if c == nil || c.client == nil {
		return notInitialized("absences")
	}
	p, err := byID(routes.AbsenceByID, absenceID)
	if err != nil {
		return err
	}
	return remove(ctx, c.client, p, opts)
}
