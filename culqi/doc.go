// Package culqi is the single point of outbound communication with the
// Culqi REST API. It exposes typed operations for tokens, charges,
// refunds, customers, cards and orders, normalizes every response into
// either a decoded value or an *APIError, and writes one audit record
// per call regardless of outcome.
//
// A Client is configured once per credential set. Secret keys starting
// with "sk_test_" select sandbox behavior: customer emails are tagged
// with the configured environment and charge emails can be rewritten to
// a developer inbox so test traffic never reaches real customers.
//
// Basic usage:
//
//	client, err := culqi.NewClient(culqi.Options{
//		SecretKey:   os.Getenv("CULQI_SECRET_KEY"),
//		LogRequests: true,
//	}, store)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	charge, apiErr := client.CreateCharge(ctx, culqi.ChargeCreatePayload{
//		Amount:       10000,
//		CurrencyCode: "PEN",
//		Email:        "buyer@example.com",
//		SourceID:     tokenID,
//	})
package culqi
