package payment

import (
	"math/rand"
	"strings"

	"github.com/andeslabs/culqi-gateway/culqi"
)

// Placeholder values submitted when neither the customer nor an address
// can supply a field. The gateway rejects empty antifraud fields.
const (
	placeholderFirstName = "Nombre"
	placeholderLastName  = "Apellido"
	placeholderText      = "Placeholder"
	defaultCountryCode   = "PE"

	fallbackPhoneDigits = 9
)

// AntifraudInput selects the sources for antifraud field derivation.
// CustomerTakesPriority picks the customer's fields over the address's;
// either way the other source backs the first, then placeholders.
type AntifraudInput struct {
	Address               *Address
	Customer              *Customer
	CustomerTakesPriority bool
}

// ChargeAntifraudDetails derives the antifraud block for a charge from
// whatever identity data is available. Phone falls back to a random
// numeric string; the gateway requires one but the platform does not.
func ChargeAntifraudDetails(in AntifraudInput) culqi.AntifraudDetails {
	details := culqi.AntifraudDetails{
		Address:     placeholderText,
		AddressCity: placeholderText,
		CountryCode: defaultCountryCode,
	}

	if in.Address != nil {
		if in.Address.Address1 != "" {
			details.Address = in.Address.Address1
		}
		if in.Address.City != "" {
			details.AddressCity = in.Address.City
		}
		if in.Address.CountryCode != "" {
			details.CountryCode = strings.ToUpper(in.Address.CountryCode)
		}
	}

	var first, second identitySource
	if in.CustomerTakesPriority {
		first, second = customerSource{in.Customer}, addressSource{in.Address}
	} else {
		first, second = addressSource{in.Address}, customerSource{in.Customer}
	}

	details.FirstName = firstNonEmpty(first.firstName(), second.firstName(), placeholderFirstName)
	details.LastName = firstNonEmpty(first.lastName(), second.lastName(), placeholderLastName)
	details.PhoneNumber = firstNonEmpty(first.phone(), second.phone())
	if details.PhoneNumber == "" {
		details.PhoneNumber = randomDigits(fallbackPhoneDigits)
	}

	return details
}

type identitySource interface {
	firstName() string
	lastName() string
	phone() string
}

type customerSource struct{ c *Customer }

func (s customerSource) firstName() string {
	if s.c == nil {
		return ""
	}
	return s.c.FirstName
}

func (s customerSource) lastName() string {
	if s.c == nil {
		return ""
	}
	return s.c.LastName
}

func (s customerSource) phone() string {
	if s.c == nil {
		return ""
	}
	return s.c.Phone
}

type addressSource struct{ a *Address }

func (s addressSource) firstName() string {
	if s.a == nil {
		return ""
	}
	return s.a.FirstName
}

func (s addressSource) lastName() string {
	if s.a == nil {
		return ""
	}
	return s.a.LastName
}

func (s addressSource) phone() string {
	if s.a == nil {
		return ""
	}
	return s.a.Phone
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// CleanName trims a platform name and strips dots, which the gateway
// rejects in name fields.
func CleanName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), ".", "")
}

// randomDigits returns a random numeric string of the given length.
func randomDigits(length int) string {
	const digits = "0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = digits[rand.Intn(len(digits))]
	}
	return string(b)
}
