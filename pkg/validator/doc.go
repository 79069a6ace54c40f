// Package validator provides structural and business-rule validation that
// returns results instead of stopping at the first failure.
//
// Two layers are available. The rule engine builds checks from Rule values and
// runs them with Apply, which returns ValidationErrors when any rule fails:
//
//	err := validator.Apply(
//		validator.RequiredString("name", req.Name),
//		validator.MaxLenString("name", req.Name, 100),
//	)
//
// On top of it sits the schema catalogue. A Schema[T] normalizes its input
// (trimming, case folding, removing separators) and validates it in one pass,
// returning a Result[T]:
//
//	res := validator.Validate(validator.Email, "  John@Example.COM ")
//	res.OK()    // true
//	res.Value() // "john@example.com"
//
// Failed results carry every violated rule, in order, as ValidationErrors.
// Composite schemas such as RegistrationSchema use Collect to nest the issues
// of each field under its name ("address.city"), so a form can highlight
// every invalid field after a single round trip.
//
// Catalogue: Email, Password, BusinessName, URL, GenericID, Phone (and
// PhoneProfile for other locales), TaxIdentifier, BankAccount,
// BankAccountStrict, BankRouting, Price, PriceAmount, Quantity,
// AddressSchema and RegistrationSchema.
//
// BankAccount checks the IBAN shape and the exact length for the countries it
// knows about. It does not verify the mod-97 checksum; BankAccountStrict does.
//
// Business-rule failures never panic. Passing a nil schema to Validate is a
// programmer error and panics with ErrNilSchema.
package validator
