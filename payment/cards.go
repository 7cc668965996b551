package payment

import (
	"context"

	"github.com/andeslabs/culqi-gateway/culqi"
)

// CreateCard vaults a card token for a customer, recording the billing
// address in the card metadata. Gateway errors surface as an
// unexpected-state fault carrying the decline code.
func CreateCard(ctx context.Context, client *culqi.Client, customerID, cardToken string, billing Address) (string, error) {
	payload := culqi.CardCreatePayload{
		CustomerID: customerID,
		TokenID:    cardToken,
		Metadata: &culqi.CardMetadata{
			CardHolderName:    billing.FirstName + " " + billing.LastName,
			BillingAddress1:   billing.Address1,
			BillingAddress2:   billing.Address2,
			BillingCity:       billing.City,
			BillingState:      billing.Province,
			BillingCountry:    billing.CountryCode,
			BillingPostalCode: billing.PostalCode,
		},
	}

	card, apiErr := client.CreateCard(ctx, payload)
	if apiErr != nil {
		return "", &Fault{
			Kind:    FaultUnexpectedState,
			Message: apiErr.MerchantMessage,
			Code:    apiErr.DeclineCode,
		}
	}

	return card.ID, nil
}
