package validator_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/validator"
)

func validRegistration() validator.Registration {
	return validator.Registration{
		Email:        " Owner@Acme.FR ",
		Password:     "Str0ng!Passw0rd",
		BusinessName: " Acme & Fils ",
		TaxID:        "732 829 320 00074",
		Phone:        "06 12 34 56 78",
		Website:      "https://acme.fr",
	}
}

func ptr(f float64) *float64 { return &f }

func TestRegistrationSchema(t *testing.T) {
	t.Parallel()

	t.Run("valid payload is normalized", func(t *testing.T) {
		res := validator.Validate(validator.RegistrationSchema, validRegistration())
		require.True(t, res.OK(), res.Issues())

		out := res.Value()
		assert.Equal(t, "owner@acme.fr", out.Email)
		assert.Equal(t, "Acme & Fils", out.BusinessName)
		assert.Equal(t, "73282932000074", out.TaxID)
		assert.Equal(t, "0612345678", out.Phone)
		assert.Nil(t, out.Address)
	})

	t.Run("fails only on the tax identifier checksum", func(t *testing.T) {
		in := validRegistration()
		in.TaxID = "73282932000075"

		res := validator.Validate(validator.RegistrationSchema, in)
		require.False(t, res.OK())
		assert.Equal(t, []string{"tax_id"}, res.Issues().Fields())
		assert.Equal(t, "validation.tax_identifier_checksum", res.Issues()[0].TranslationKey)

		for _, field := range []string{"email", "password", "business_name", "phone", "website"} {
			assert.False(t, res.Issues().Has(field), field)
		}
	})

	t.Run("optional fields may be blank", func(t *testing.T) {
		res := validator.RegistrationSchema(validator.Registration{
			Email:        "owner@acme.fr",
			Password:     "Str0ng!Passw0rd",
			BusinessName: "Acme",
			TaxID:        "  ",
		})
		assert.True(t, res.OK(), res.Issues())
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		res := validator.RegistrationSchema(validator.Registration{
			Email:        "not-an-email",
			Password:     "Str0ng!Passw0rd",
			BusinessName: "<script>",
			Website:      "ftp://acme.fr",
		})
		assert.Equal(t, []string{"email", "business_name", "website"}, res.Issues().Fields())
	})

	t.Run("address issues are nested", func(t *testing.T) {
		in := validRegistration()
		in.Address = &validator.Address{
			Street:     "1 rue de la Paix",
			City:       " ",
			PostalCode: "75 002",
			Country:    "zz",
			Latitude:   ptr(120),
		}

		res := validator.RegistrationSchema(in)
		assert.Equal(t, []string{"address.city", "address.country", "address.latitude"}, res.Issues().Fields())
		assert.Equal(t, "75002", res.Value().Address.PostalCode)
		assert.Equal(t, "ZZ", res.Value().Address.Country)
	})

	t.Run("valid address", func(t *testing.T) {
		in := validRegistration()
		in.Address = &validator.Address{
			Street:     "1 rue de la Paix",
			City:       "Paris",
			PostalCode: "75002",
			Country:    "fr",
			Latitude:   ptr(48.8686),
			Longitude:  ptr(2.3309),
		}

		res := validator.RegistrationSchema(in)
		require.True(t, res.OK(), res.Issues())
		assert.Equal(t, "FR", res.Value().Address.Country)
	})

	t.Run("decodes from json", func(t *testing.T) {
		payload := `{
			"email": "owner@acme.fr",
			"password": "Str0ng!Passw0rd",
			"business_name": "Acme",
			"tax_id": "73282932000075",
			"address": {"street": "x", "city": "Lyon", "postal_code": "69001", "country": "FR"}
		}`
		var in validator.Registration
		require.NoError(t, json.Unmarshal([]byte(payload), &in))

		res := validator.RegistrationSchema(in)
		assert.Equal(t, []string{"tax_id"}, res.Issues().Fields())
	})
}

func TestAddressSchema(t *testing.T) {
	t.Parallel()

	res := validator.AddressSchema(nil)
	require.Len(t, res.Issues(), 1)
	assert.Equal(t, "validation.required", res.Issues()[0].TranslationKey)

	res = validator.AddressSchema(&validator.Address{})
	assert.Equal(t, []string{"street", "city", "postal_code", "country"}, res.Issues().Fields())
}
