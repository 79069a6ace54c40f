package validator

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
)

const (
	EmailMinLength        = 6
	EmailMaxLength        = 254
	PasswordMinLength     = 12
	PasswordMaxLength     = 128
	BusinessNameMinLength = 2
	BusinessNameMaxLength = 100
	URLMaxLength          = 2048
	GenericIDMaxLength    = 128
)

// PasswordSymbols is the punctuation set that satisfies the symbol class.
const PasswordSymbols = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?~`"

var (
	emailRegex        = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9](?:[a-z0-9\-]*[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9\-]*[a-z0-9])?)*\.[a-z]{2,}$`)
	businessNameRegex = regexp.MustCompile(`^[\p{Latin}0-9 '’\-.&]+$`)
	genericIDRegex    = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	phoneCharsRegex   = regexp.MustCompile(`^\s*\+?[0-9 .()\-]+\s*$`)
)

// Email trims and lowercases the address, then checks length and shape.
var Email Schema[string] = func(in string) Result[string] {
	v := strings.ToLower(strings.TrimSpace(in))
	if v == "" {
		return check(v, RequiredString("", v))
	}
	return check(v,
		MinLenString("", v, EmailMinLength),
		MaxLenString("", v, EmailMaxLength),
		Rule{
			Check: func() bool {
				if !emailRegex.MatchString(v) || strings.Contains(v, "..") {
					return false
				}
				addr, err := mail.ParseAddress(v)
				return err == nil && addr.Address == v
			},
			Error: ValidationError{
				Message:           "invalid email address",
				TranslationKey:    "validation.email",
				TranslationValues: map[string]any{"field": ""},
			},
		},
	)
}

// Password is not trimmed: surrounding spaces are part of the secret.
// Each missing character class is reported separately.
var Password Schema[string] = func(in string) Result[string] {
	if in == "" {
		return check(in, RequiredString("", in))
	}

	var upper, lower, digit, symbol bool
	for _, r := range in {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}

	return check(in,
		MinLenString("", in, PasswordMinLength),
		MaxLenString("", in, PasswordMaxLength),
		passwordClass(upper, "must contain at least one uppercase letter", "validation.password_uppercase"),
		passwordClass(lower, "must contain at least one lowercase letter", "validation.password_lowercase"),
		passwordClass(digit, "must contain at least one digit", "validation.password_digit"),
		passwordClass(symbol, "must contain at least one special character", "validation.password_symbol"),
	)
}

func passwordClass(present bool, message, key string) Rule {
	return Rule{
		Check: func() bool { return present },
		Error: ValidationError{
			Message:           message,
			TranslationKey:    key,
			TranslationValues: map[string]any{"field": ""},
		},
	}
}

// BusinessName accepts Latin letters (accented forms included), digits,
// spaces and ' ’ - . &. The input is NFC-normalized first so decomposed
// accents count as one character.
var BusinessName Schema[string] = func(in string) Result[string] {
	v := strings.TrimSpace(norm.NFC.String(in))
	if v == "" {
		return check(v, RequiredString("", v))
	}
	return check(v,
		MinLenString("", v, BusinessNameMinLength),
		MaxLenString("", v, BusinessNameMaxLength),
		NoMarkup("", v),
		When(!strings.ContainsAny(v, "<>"),
			MatchesRegex("", v, businessNameRegex, "contains characters that are not allowed")),
	)
}

// URL accepts absolute http and https URLs only.
var URL Schema[string] = func(in string) Result[string] {
	v := strings.TrimSpace(in)
	if v == "" {
		return check(v, RequiredString("", v))
	}
	return check(v,
		MaxLenString("", v, URLMaxLength),
		Rule{
			Check: func() bool {
				u, err := url.ParseRequestURI(v)
				if err != nil || u.Host == "" {
					return false
				}
				scheme := strings.ToLower(u.Scheme)
				return scheme == "http" || scheme == "https"
			},
			Error: ValidationError{
				Message:           "must be a valid http or https URL",
				TranslationKey:    "validation.url",
				TranslationValues: map[string]any{"field": ""},
			},
		},
	)
}

var GenericID Schema[string] = func(in string) Result[string] {
	v := strings.TrimSpace(in)
	if v == "" {
		return check(v, RequiredString("", v))
	}
	return check(v,
		MaxLenString("", v, GenericIDMaxLength),
		MatchesRegex("", v, genericIDRegex, "may contain only letters, digits, hyphens and underscores"),
	)
}

// PhoneProfile describes the accepted shape of a phone number for one locale.
// Raw input may only hold digits, spaces, dots, dashes, parentheses and a
// leading plus; it is then normalized with sanitizer.SanitizePhone before
// matching.
type PhoneProfile struct {
	Name    string
	Pattern *regexp.Regexp
}

// PhoneFR accepts national 0XXXXXXXXX and +33XXXXXXXXX numbers.
var PhoneFR = PhoneProfile{
	Name:    "FR",
	Pattern: regexp.MustCompile(`^(0[1-9]\d{8}|\+33[1-9]\d{8})$`),
}

// Schema builds a phone schema for the profile. A profile without a pattern
// is a programmer error.
func (p PhoneProfile) Schema() Schema[string] {
	if p.Pattern == nil {
		panic(ErrNilSchema)
	}
	return func(in string) Result[string] {
		v := sanitizer.SanitizePhone(in)
		if v == "" {
			return check(v, RequiredString("", v))
		}
		return check(v, Rule{
			Check: func() bool { return phoneCharsRegex.MatchString(in) && p.Pattern.MatchString(v) },
			Error: ValidationError{
				Message:        "invalid phone number",
				TranslationKey: "validation.phone",
				TranslationValues: map[string]any{
					"field":   "",
					"profile": p.Name,
				},
			},
		})
	}
}

// Phone validates French numbers. Other locales build their own PhoneProfile.
var Phone = PhoneFR.Schema()
