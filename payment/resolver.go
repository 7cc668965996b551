package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/andeslabs/culqi-gateway/culqi"
)

// companyEmailDomain hosts the synthetic billing addresses used for
// company accounts identified by tax id (RUC).
const companyEmailDomain = "costosperu.net"

// ResolveCustomerOptions carries the platform data available when a
// gateway customer must be found or created.
type ResolveCustomerOptions struct {
	Customer *Customer
	Email    string
	Address  *Address
}

// GetOrCreateCustomer resolves get-or-create semantics atop the gateway's
// create-only customer primitive. A gateway id already stored on the
// platform customer is reused as-is. Otherwise a create request is derived
// from customer and address data with placeholder fallbacks, and the
// duplicate-email lookup inside CreateCustomer resolves races with
// previously registered emails. The created flag is true only when a new
// gateway customer actually came into existence.
func GetOrCreateCustomer(ctx context.Context, client *culqi.Client, opts ResolveCustomerOptions) (string, bool, *culqi.APIError) {
	if id := opts.Customer.GatewayCustomerID(); id != "" {
		return id, false, nil
	}

	customer := opts.Customer
	isCompany := customer.metaBool(metaIsCompany)

	metadata := &culqi.CustomerMetadata{}
	if externalID, ok := metadataValue(customer, metaExternalUserID); ok {
		metadata.WebUserID = externalID
	}
	if isCompany && customer != nil {
		metadata.Name = customer.FirstName
	}

	email := opts.Email
	firstName := placeholderFirstName
	lastName := placeholderLastName
	if isCompany {
		email = fmt.Sprintf("costos.%s@%s", customer.metaString(metaRUC), companyEmailDomain)
	} else {
		if customer != nil && customer.Email != "" {
			email = customer.Email
		}
		firstName = firstNonEmpty(
			CleanName(firstNonEmpty(customerSource{customer}.firstName(), addressSource{opts.Address}.firstName())),
			placeholderFirstName,
		)
		lastName = firstNonEmpty(
			CleanName(firstNonEmpty(customerSource{customer}.lastName(), addressSource{opts.Address}.lastName())),
			placeholderLastName,
		)
	}

	phone := firstNonEmpty(customerSource{customer}.phone(), addressSource{opts.Address}.phone())
	if phone == "" {
		phone = randomDigits(fallbackPhoneDigits)
	}

	payload := culqi.CustomerCreatePayload{
		Email:       strings.TrimSpace(email),
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phone,
		Address:     placeholderText,
		AddressCity: placeholderText,
		CountryCode: defaultCountryCode,
		Metadata:    metadata,
	}
	if opts.Address != nil {
		if opts.Address.Address1 != "" {
			payload.Address = opts.Address.Address1
		}
		if opts.Address.City != "" {
			payload.AddressCity = opts.Address.City
		}
		if opts.Address.CountryCode != "" {
			payload.CountryCode = strings.ToUpper(opts.Address.CountryCode)
		}
	}

	created, alreadyExists, apiErr := client.CreateCustomer(ctx, payload)
	if apiErr != nil {
		return "", false, apiErr
	}

	return created.ID, !alreadyExists, nil
}

func metadataValue(c *Customer, key string) (any, bool) {
	if c == nil || c.Metadata == nil {
		return nil, false
	}
	v, ok := c.Metadata[key]
	return v, ok && v != nil
}
