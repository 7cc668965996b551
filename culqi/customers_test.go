package culqi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerClient(t *testing.T, handler http.Handler, appEnv string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{
		SecretKey: "sk_test_abc123",
		BaseURL:   server.URL,
		AppEnv:    appEnv,
	}, nil)
	require.NoError(t, err)
	return client
}

func TestCreateCustomer_NormalizesFields(t *testing.T) {
	var got CustomerCreatePayload
	client := newCustomerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"object":"customer","id":"cus_1"}`))
	}), "")

	longName := strings.Repeat("a", 60)
	customer, alreadyExists, apiErr := client.CreateCustomer(context.Background(), CustomerCreatePayload{
		Email:       "buyer@example.com",
		FirstName:   longName,
		LastName:    longName,
		PhoneNumber: "+51 (999) 888-777",
		Address:     strings.Repeat("b", 120),
		AddressCity: strings.Repeat("c", 40),
		CountryCode: "PE",
	})

	require.Nil(t, apiErr)
	assert.False(t, alreadyExists)
	assert.Equal(t, "cus_1", customer.ID)

	assert.Len(t, got.FirstName, 50)
	assert.Len(t, got.LastName, 50)
	assert.Equal(t, "51999888777", got.PhoneNumber)
	assert.Len(t, got.Address, 100)
	assert.Len(t, got.AddressCity, 30)
}

func TestListCustomers_DecodesNumericRemainingItems(t *testing.T) {
	client := newCustomerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"object":"customer","id":"cus_1"}],"paging":{"remaining_items":42,"cursors":{"before":"cus_a","after":"cus_b"}}}`))
	}), "")

	list, apiErr := client.ListCustomers(context.Background(), CustomersListRequest{})

	require.Nil(t, apiErr)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "cus_1", list.Data[0].ID)
	assert.Equal(t, int64(42), list.Paging.RemainingItems)
	assert.Equal(t, "cus_b", list.Paging.Cursors.After)
}

func TestCreateCustomer_SandboxEmailTagging(t *testing.T) {
	var got CustomerCreatePayload
	client := newCustomerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"object":"customer","id":"cus_1"}`))
	}), "staging")

	_, _, apiErr := client.CreateCustomer(context.Background(), CustomerCreatePayload{
		Email: "buyer@example.com",
	})

	require.Nil(t, apiErr)
	assert.Equal(t, "buyer_staging@example.com", got.Email)
}

func TestCreateCustomer_NoTaggingInLiveMode(t *testing.T) {
	var got CustomerCreatePayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"object":"customer","id":"cus_1"}`))
	}))
	defer server.Close()

	client, err := NewClient(Options{
		SecretKey: "sk_live_abc123",
		BaseURL:   server.URL,
		AppEnv:    "staging",
	}, nil)
	require.NoError(t, err)

	_, _, apiErr := client.CreateCustomer(context.Background(), CustomerCreatePayload{
		Email: "buyer@example.com",
	})

	require.Nil(t, apiErr)
	assert.Equal(t, "buyer@example.com", got.Email)
}

func TestCreateCustomer_DuplicateEmailResolvesExisting(t *testing.T) {
	var listQuery string
	client := newCustomerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"object":"error","type":"invalid_request_error","merchant_message":"Un cliente esta registrado actualmente con este email."}`))
		case http.MethodGet:
			listQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(`{"data":[{"object":"customer","id":"cus_existing"}],"paging":{"remaining_items":0}}`))
		}
	}), "staging")

	customer, alreadyExists, apiErr := client.CreateCustomer(context.Background(), CustomerCreatePayload{
		Email: "buyer@example.com",
	})

	require.Nil(t, apiErr)
	assert.True(t, alreadyExists)
	assert.Equal(t, "cus_existing", customer.ID)
	// The lookup uses the tagged email that was actually submitted.
	assert.Contains(t, listQuery, "buyer_staging%40example.com")
}

func TestCreateCustomer_DuplicateEmailWithEmptyListKeepsOriginalError(t *testing.T) {
	client := newCustomerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"object":"error","type":"invalid_request_error","merchant_message":"Un cliente esta registrado actualmente con este email."}`))
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"data":[],"paging":{"remaining_items":0}}`))
		}
	}), "")

	customer, alreadyExists, apiErr := client.CreateCustomer(context.Background(), CustomerCreatePayload{
		Email: "buyer@example.com",
	})

	assert.Nil(t, customer)
	assert.False(t, alreadyExists)
	require.NotNil(t, apiErr)
	assert.Equal(t, duplicateEmailMessage, apiErr.MerchantMessage)
}

func TestCreateCustomer_OtherErrorsPropagate(t *testing.T) {
	client := newCustomerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"object":"error","type":"parameter_error","param":"email","merchant_message":"email invalido"}`))
	}), "")

	customer, _, apiErr := client.CreateCustomer(context.Background(), CustomerCreatePayload{
		Email: "nope",
	})

	assert.Nil(t, customer)
	require.NotNil(t, apiErr)
	assert.True(t, apiErr.IsParameterError())
}

func TestDeleteCustomer_UsesGetVerb(t *testing.T) {
	var gotMethod, gotPath string
	client := newCustomerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"object":"customer","id":"cus_1"}`))
	}), "")

	ok, apiErr := client.DeleteCustomer(context.Background(), "cus_1")

	require.Nil(t, apiErr)
	assert.True(t, ok)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/customers/cus_1", gotPath)
}

func TestUpdateCustomer_UsesPatch(t *testing.T) {
	var gotMethod string
	client := newCustomerClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{"object":"customer","id":"cus_1"}`))
	}), "")

	_, apiErr := client.UpdateCustomer(context.Background(), "cus_1", CustomerUpdatePayload{
		FirstName: "Ana",
	})

	require.Nil(t, apiErr)
	assert.Equal(t, http.MethodPatch, gotMethod)
}
