package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// MinLenString counts runes, not bytes.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at least %d characters long", min),
			TranslationKey: "validation.min_length",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: "validation.max_length",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

func LenString(field, value string, exact int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) == exact
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be exactly %d characters long", exact),
			TranslationKey: "validation.exact_length",
			TranslationValues: map[string]any{
				"field":  field,
				"length": exact,
			},
		},
	}
}

// MatchesRegex reports message when value does not match re.
func MatchesRegex(field, value string, re *regexp.Regexp, message string) Rule {
	return Rule{
		Check: func() bool {
			return re.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        message,
			TranslationKey: "validation.pattern",
			TranslationValues: map[string]any{
				"field":   field,
				"pattern": re.String(),
			},
		},
	}
}

func Digits(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value != "" && strings.Trim(value, "0123456789") == ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must contain only digits",
			TranslationKey: "validation.digits",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func NoMarkup(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return !strings.ContainsAny(value, "<>")
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must not contain markup",
			TranslationKey: "validation.no_markup",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// When returns rule if cond holds and a rule that always passes otherwise.
// Useful for checks that only make sense once earlier structural rules pass.
func When(cond bool, rule Rule) Rule {
	if cond {
		return rule
	}
	return Rule{Check: func() bool { return true }}
}
