package validator

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

const (
	TaxIdentifierLength  = 14
	BankAccountMinLength = 15
	BankAccountMaxLength = 34
	PriceMax             = 999999.99
	QuantityMax          = 9999
)

var (
	ibanShapeRegex = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)
	bicRegex       = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	priceRegex     = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

	// ibanCountryLengths holds exact lengths for countries that are checked.
	ibanCountryLengths = map[string]int{
		"FR": 27,
	}
)

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// LuhnValid doubles every digit at an even 0-based index, subtracts 9 from
// doubled values above 9 and accepts when the total is divisible by 10.
// Non-digit input is rejected.
func LuhnValid(digits string) bool {
	if digits == "" {
		return false
	}
	sum := 0
	for i, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
		d := int(r - '0')
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}

// TaxIdentifier validates a 14-digit business registration number with a
// Luhn checksum. Spaces are removed before checking.
var TaxIdentifier Schema[string] = func(in string) Result[string] {
	v := stripSpaces(in)
	if v == "" {
		return check(v, RequiredString("", v))
	}

	digits := strings.Trim(v, "0123456789") == ""
	return check(v,
		LenString("", v, TaxIdentifierLength),
		Digits("", v),
		When(digits && len(v) == TaxIdentifierLength, Rule{
			Check: func() bool { return LuhnValid(v) },
			Error: ValidationError{
				Message:           "invalid checksum",
				TranslationKey:    "validation.tax_identifier_checksum",
				TranslationValues: map[string]any{"field": ""},
			},
		}),
	)
}

// BankAccount validates the IBAN shape: country code, check digits and up to
// 30 alphanumerics, 15 to 34 characters in total, with exact lengths for the
// countries in ibanCountryLengths. The mod-97 checksum is not verified; use
// BankAccountStrict for that.
var BankAccount Schema[string] = bankAccount

// BankAccountStrict is BankAccount plus the ISO 13616 mod-97 checksum.
var BankAccountStrict Schema[string] = func(in string) Result[string] {
	res := bankAccount(in)
	if !res.OK() {
		return res
	}
	return check(res.Value(), IBANChecksum("", res.Value()))
}

func bankAccount(in string) Result[string] {
	v := strings.ToUpper(stripSpaces(in))
	if v == "" {
		return check(v, RequiredString("", v))
	}

	rules := []Rule{
		MinLenString("", v, BankAccountMinLength),
		MaxLenString("", v, BankAccountMaxLength),
		MatchesRegex("", v, ibanShapeRegex, "invalid bank account number format"),
	}
	if len(v) >= 2 {
		if want, ok := ibanCountryLengths[v[:2]]; ok {
			rules = append(rules, Rule{
				Check: func() bool { return len(v) == want },
				Error: ValidationError{
					Message:        fmt.Sprintf("must be exactly %d characters long for %s", want, v[:2]),
					TranslationKey: "validation.iban_country_length",
					TranslationValues: map[string]any{
						"field":   "",
						"country": v[:2],
						"length":  want,
					},
				},
			})
		}
	}
	return check(v, rules...)
}

// IBANChecksum verifies the mod-97 checksum of an uppercase IBAN.
func IBANChecksum(field, iban string) Rule {
	return Rule{
		Check: func() bool {
			return ibanMod97(iban) == 1
		},
		Error: ValidationError{
			Field:          field,
			Message:        "invalid bank account checksum",
			TranslationKey: "validation.iban_checksum",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func ibanMod97(iban string) int {
	if len(iban) < 5 {
		return -1
	}
	rearranged := iban[4:] + iban[:4]

	var b strings.Builder
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteString(strconv.Itoa(int(r-'A') + 10))
		default:
			return -1
		}
	}

	n, ok := new(big.Int).SetString(b.String(), 10)
	if !ok {
		return -1
	}
	return int(new(big.Int).Mod(n, big.NewInt(97)).Int64())
}

// BankRouting validates a BIC/SWIFT code: 8 or 11 characters, uppercased.
var BankRouting Schema[string] = func(in string) Result[string] {
	v := strings.ToUpper(stripSpaces(in))
	if v == "" {
		return check(v, RequiredString("", v))
	}
	return check(v, MatchesRegex("", v, bicRegex, "invalid bank identifier code"))
}

// Price validates a positive decimal string with at most two fractional
// digits, capped at PriceMax.
var Price Schema[string] = func(in string) Result[string] {
	v := strings.TrimSpace(in)
	if v == "" {
		return check(v, RequiredString("", v))
	}

	wellFormed := priceRegex.MatchString(v)
	amount, _ := strconv.ParseFloat(v, 64)
	return check(v,
		MatchesRegex("", v, priceRegex, "must be a decimal number with at most 2 decimal places"),
		When(wellFormed, Rule{
			Check: func() bool { return amount > 0 },
			Error: ValidationError{
				Message:           "amount must be positive",
				TranslationKey:    "validation.positive_amount",
				TranslationValues: map[string]any{"field": ""},
			},
		}),
		When(wellFormed, Rule{
			Check: func() bool { return amount <= PriceMax },
			Error: ValidationError{
				Message:        fmt.Sprintf("must not exceed %.2f", PriceMax),
				TranslationKey: "validation.max_amount",
				TranslationValues: map[string]any{
					"field": "",
					"max":   PriceMax,
				},
			},
		}),
	)
}

// PriceAmount applies the Price rules to a float.
var PriceAmount Schema[float64] = func(in float64) Result[float64] {
	if math.IsNaN(in) || math.IsInf(in, 0) {
		return Invalid(in, ValidationErrors{{
			Message:           "must be a finite number",
			TranslationKey:    "validation.finite",
			TranslationValues: map[string]any{"field": ""},
		}})
	}
	res := Price(strconv.FormatFloat(in, 'f', -1, 64))
	return Invalid(in, res.Issues())
}

var Quantity Schema[int] = func(in int) Result[int] {
	return check(in, Rule{
		Check: func() bool { return in >= 1 && in <= QuantityMax },
		Error: ValidationError{
			Message:        fmt.Sprintf("must be between 1 and %d", QuantityMax),
			TranslationKey: "validation.range",
			TranslationValues: map[string]any{
				"field": "",
				"min":   1,
				"max":   QuantityMax,
			},
		},
	})
}
