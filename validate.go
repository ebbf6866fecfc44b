package sdk

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/ledgerdesk/ledgerdesk-go/codec"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// optionalCheck validates the value of an Optional parameter when it is set.
// validator cannot see through codec.Optional, so params list these by hand.
type optionalCheck struct {
	field   string
	value   any
	tag     string
	set     bool
	failure string
}

func checkOptional[T any](field string, o codec.Optional[T], tag string) optionalCheck {
	v, ok := o.Get()
	return optionalCheck{field: field, value: v, tag: tag, set: ok}
}

// checkEnum rejects a set enum value that conv does not declare. Unknown
// values decode from responses but are never sent.
func checkEnum[E ~string](field string, o codec.Optional[codec.Enum[E]], conv codec.Converter[codec.Enum[E]]) optionalCheck {
	v, ok := o.Get()
	chk := optionalCheck{field: field, set: ok}
	if ok {
		chk.failure = unknownEnum(v, conv)
	}
	return chk
}

// checkEnums is checkEnum for each element of a list filter.
func checkEnums[E ~string](field string, o codec.Optional[[]codec.Enum[E]], conv codec.Converter[codec.Enum[E]]) []optionalCheck {
	vs, ok := o.Get()
	if !ok {
		return nil
	}
	checks := make([]optionalCheck, 0, len(vs))
	for i, v := range vs {
		checks = append(checks, optionalCheck{field: field + "[" + strconv.Itoa(i) + "]", set: true, failure: unknownEnum(v, conv)})
	}
	return checks
}

func unknownEnum[E ~string](v codec.Enum[E], conv codec.Converter[codec.Enum[E]]) string {
	known, err := codec.Decode(conv, v.String())
	if err == nil && known.IsKnown() {
		return ""
	}
	return fmt.Sprintf("unknown value %q", v.String())
}

// validateParams runs struct tags on p and the optional checks, and returns a
// *ValidationError naming every failing field.
func validateParams(name string, p any, checks ...optionalCheck) error {
	fields, err := collectFieldErrors(p, "", checks...)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Params: name, Fields: fields}
}

// collectFieldErrors is validateParams without the wrapping, so nested params
// can be checked under a path prefix such as "Lines[2].".
func collectFieldErrors(p any, prefix string, checks ...optionalCheck) ([]FieldError, error) {
	var fields []FieldError
	if err := validate.Struct(p); err != nil {
		var valErrs validator.ValidationErrors
		if !errors.As(err, &valErrs) {
			return nil, fmt.Errorf("sdk: validate %T: %w", p, err)
		}
		for _, ve := range valErrs {
			fields = append(fields, FieldError{Field: prefix + fieldPath(ve), Message: formatValidationError(ve)})
		}
	}
	for _, chk := range checks {
		if !chk.set {
			continue
		}
		if chk.failure != "" {
			fields = append(fields, FieldError{Field: prefix + chk.field, Message: chk.failure})
			continue
		}
		if chk.tag == "" {
			continue
		}
		if err := validate.Var(chk.value, chk.tag); err != nil {
			var valErrs validator.ValidationErrors
			if !errors.As(err, &valErrs) {
				return nil, fmt.Errorf("sdk: validate %s: %w", chk.field, err)
			}
			for _, ve := range valErrs {
				fields = append(fields, FieldError{Field: prefix + chk.field, Message: formatValidationError(ve)})
			}
		}
	}
	return fields, nil
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(ve validator.FieldError) string {
	ns := ve.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ve.Field()
}

func formatValidationError(ve validator.FieldError) string {
	unit := ""
	switch ve.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = " items"
	}
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s%s", ve.Param(), unit)
	case "max":
		return fmt.Sprintf("must be at most %s%s", ve.Param(), unit)
	case "len":
		return fmt.Sprintf("must be exactly %s%s", ve.Param(), unit)
	case "gt":
		return fmt.Sprintf("must be greater than %s", ve.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", ve.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", ve.Param())
	case "email":
		return "must be a valid email address"
	case "iso4217":
		return "must be an ISO 4217 currency code"
	case "notblank":
		return "must not be blank"
	default:
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
