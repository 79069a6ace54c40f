package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

const DescriptionMaxLength = 2000

// Registration is the merchant sign-up payload.
type Registration struct {
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	BusinessName string   `json:"business_name"`
	TaxID        string   `json:"tax_id,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Description  string   `json:"description,omitempty"`
	Website      string   `json:"website,omitempty"`
	Address      *Address `json:"address,omitempty"`
}

// Address structural limits are expressed as struct tags.
type Address struct {
	Street     string   `json:"street" validate:"required,max=200"`
	City       string   `json:"city" validate:"required,max=100"`
	PostalCode string   `json:"postal_code" validate:"required,max=20,alphanum"`
	Country    string   `json:"country" validate:"required,iso3166_1_alpha2"`
	Latitude   *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude  *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

var structValidator = newStructValidator()

func newStructValidator() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RegistrationSchema validates every field and reports all failures at once.
// Optional fields are only checked when present.
var RegistrationSchema Schema[Registration] = func(in Registration) Result[Registration] {
	var issues ValidationErrors
	out := Registration{
		Email:        Collect(&issues, "email", Email(in.Email)),
		Password:     Collect(&issues, "password", Password(in.Password)),
		BusinessName: Collect(&issues, "business_name", BusinessName(in.BusinessName)),
		TaxID:        Collect(&issues, "tax_id", optionalString(TaxIdentifier)(in.TaxID)),
		Phone:        Collect(&issues, "phone", optionalString(Phone)(in.Phone)),
		Description:  Collect(&issues, "description", description(in.Description)),
		Website:      Collect(&issues, "website", optionalString(URL)(in.Website)),
	}
	if in.Address != nil {
		out.Address = Collect(&issues, "address", AddressSchema(in.Address))
	}
	return Invalid(out, issues)
}

// optionalString treats blank input as absent.
func optionalString(schema Schema[string]) Schema[string] {
	return func(in string) Result[string] {
		if strings.TrimSpace(in) == "" {
			return Ok("")
		}
		return schema(in)
	}
}

func description(in string) Result[string] {
	v := strings.TrimSpace(in)
	return check(v, MaxLenString("", v, DescriptionMaxLength))
}

// AddressSchema trims the address and applies its struct tag rules.
var AddressSchema Schema[*Address] = func(in *Address) Result[*Address] {
	if in == nil {
		return Invalid(in, ValidationErrors{{
			Message:           "field is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": ""},
		}})
	}

	out := &Address{
		Street:     strings.TrimSpace(in.Street),
		City:       strings.TrimSpace(in.City),
		PostalCode: stripSpaces(in.PostalCode),
		Country:    strings.ToUpper(strings.TrimSpace(in.Country)),
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
	}
	return Invalid(out, structIssues(structValidator.Struct(out)))
}

// structIssues converts go-playground field errors into ValidationErrors.
// Field paths drop the struct name so they can be nested with Collect.
func structIssues(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Message: err.Error(), TranslationKey: "validation.invalid"}}
	}

	issues := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		issues = append(issues, ValidationError{
			Field:          field,
			Message:        tagMessage(fe),
			TranslationKey: "validation." + fe.Tag(),
			TranslationValues: map[string]any{
				"field": field,
				"param": fe.Param(),
			},
		})
	}
	return issues
}

func tagMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "alphanum":
		return "may contain only letters and digits"
	case "iso3166_1_alpha2":
		return "must be a two-letter country code"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}
