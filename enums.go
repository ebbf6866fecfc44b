package sdk

import "github.com/ledgerdesk/ledgerdesk-go/codec"

// Enum values the API documents. Unknown values still decode; inspect them
// with codec.Enum String and IsKnown.

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusLate      InvoiceStatus = "late"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// QuoteStatus is the lifecycle state of a quote.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRefused  QuoteStatus = "refused"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// PurchaseStatus is the lifecycle state of a supplier purchase.
type PurchaseStatus string

const (
	PurchaseStatusDraft     PurchaseStatus = "draft"
	PurchaseStatusReceived  PurchaseStatus = "received"
	PurchaseStatusPaid      PurchaseStatus = "paid"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// AbsenceType classifies an absence.
type AbsenceType string

const (
	AbsenceTypePaidLeave   AbsenceType = "paid_leave"
	AbsenceTypeSickLeave   AbsenceType = "sick_leave"
	AbsenceTypeUnpaidLeave AbsenceType = "unpaid_leave"
	AbsenceTypeRemote      AbsenceType = "remote"
	AbsenceTypeTraining    AbsenceType = "training"
	AbsenceTypeOther       AbsenceType = "other"
)

// AbsenceStatus is the approval state of an absence.
type AbsenceStatus string

const (
	AbsenceStatusPending   AbsenceStatus = "pending"
	AbsenceStatusApproved  AbsenceStatus = "approved"
	AbsenceStatusRejected  AbsenceStatus = "rejected"
	AbsenceStatusCancelled AbsenceStatus = "cancelled"
)

// DiscountType says how a line discount is expressed.
type DiscountType string

const (
	DiscountTypeAmount  DiscountType = "amount"
	DiscountTypePercent DiscountType = "percent"
)

// ProductType distinguishes goods from services.
type ProductType string

const (
	ProductTypeProduct ProductType = "product"
	ProductTypeService ProductType = "service"
)

// CompanyType is the relationship with a company.
type CompanyType string

const (
	CompanyTypeCustomer CompanyType = "customer"
	CompanyTypeSupplier CompanyType = "supplier"
	CompanyTypeProspect CompanyType = "prospect"
)

// UserRole is a user's permission level.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleManager  UserRole = "manager"
	UserRoleEmployee UserRole = "employee"
)

var (
	invoiceStatusCodec  = codec.EnumOf(InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusLate, InvoiceStatusCancelled)
	quoteStatusCodec    = codec.EnumOf(QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRefused, QuoteStatusExpired)
	purchaseStatusCodec = codec.EnumOf(PurchaseStatusDraft, PurchaseStatusReceived, PurchaseStatusPaid, PurchaseStatusCancelled)
	absenceTypeCodec    = codec.EnumOf(AbsenceTypePaidLeave, AbsenceTypeSickLeave, AbsenceTypeUnpaidLeave, AbsenceTypeRemote, AbsenceTypeTraining, AbsenceTypeOther)
	absenceStatusCodec  = codec.EnumOf(AbsenceStatusPending, AbsenceStatusApproved, AbsenceStatusRejected, AbsenceStatusCancelled)
	discountTypeCodec   = codec.EnumOf(DiscountTypeAmount, DiscountTypePercent)
	productTypeCodec    = codec.EnumOf(ProductTypeProduct, ProductTypeService)
	companyTypeCodec    = codec.EnumOf(CompanyTypeCustomer, CompanyTypeSupplier, CompanyTypeProspect)
	userRoleCodec       = codec.EnumOf(UserRoleAdmin, UserRoleManager, UserRoleEmployee)
)

// plainEnum carries a caller-chosen enum value verbatim. Param structs use it
// where validator checks the value before sending.
func plainEnum[E ~string]() codec.Converter[E] {
	return codec.Func("enum string",
		func(raw any, st codec.State) (E, error) {
			s, err := codec.String().Coerce(raw, st)
			return E(s), err
		},
		func(v E, _ codec.State) (any, error) { return string(v), nil },
	)
}
