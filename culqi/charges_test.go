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

func newChargeClient(t *testing.T, handler http.Handler, devEmail, appEnv string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{
		SecretKey: "sk_test_abc123",
		BaseURL:   server.URL,
		DevEmail:  devEmail,
		AppEnv:    appEnv,
	}, nil)
	require.NoError(t, err)
	return client
}

func TestCreateCharge_SanitizesAntifraudDetails(t *testing.T) {
	var got ChargeCreatePayload
	client := newChargeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"object":"charge","id":"chr_1"}`))
	}), "", "")

	_, apiErr := client.CreateCharge(context.Background(), ChargeCreatePayload{
		Amount:       1000,
		CurrencyCode: "PEN",
		Email:        "buyer@example.com",
		SourceID:     "tkn_1",
		AntifraudDetails: AntifraudDetails{
			FirstName:   strings.Repeat("x", 70),
			LastName:    "Lopez",
			PhoneNumber: "+51-999-888-777",
			Address:     strings.Repeat("y", 150),
			AddressCity: strings.Repeat("z", 40),
		},
	})

	require.Nil(t, apiErr)
	assert.Len(t, got.AntifraudDetails.FirstName, 50)
	assert.Equal(t, "51999888777", got.AntifraudDetails.PhoneNumber)
	assert.Len(t, got.AntifraudDetails.Address, 100)
	assert.Len(t, got.AntifraudDetails.AddressCity, 30)
}

func TestCreateCharge_DevEmailRewrite(t *testing.T) {
	var got ChargeCreatePayload
	client := newChargeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"object":"charge","id":"chr_1"}`))
	}), "dev@internal.test", "staging")

	_, apiErr := client.CreateCharge(context.Background(), ChargeCreatePayload{
		Amount:       1000,
		CurrencyCode: "PEN",
		Email:        "buyer@example.com",
		SourceID:     "tkn_1",
		Metadata:     map[string]any{"cartId": "cart_1"},
	})

	require.Nil(t, apiErr)
	assert.Equal(t, "dev@internal.test", got.Email)
	assert.Equal(t, "buyer@example.com", got.Metadata["originalEmail"])
	assert.Equal(t, "staging", got.Metadata["env"])
	assert.Equal(t, "cart_1", got.Metadata["cartId"])
}

func TestCreateCharge_NoRewriteWithoutDevEmail(t *testing.T) {
	var got ChargeCreatePayload
	client := newChargeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"object":"charge","id":"chr_1"}`))
	}), "", "staging")

	_, apiErr := client.CreateCharge(context.Background(), ChargeCreatePayload{
		Amount:       1000,
		CurrencyCode: "PEN",
		Email:        "buyer@example.com",
		SourceID:     "tkn_1",
	})

	require.Nil(t, apiErr)
	assert.Equal(t, "buyer@example.com", got.Email)
	assert.NotContains(t, got.Metadata, "originalEmail")
}

func TestCaptureCharge_Path(t *testing.T) {
	var gotMethod, gotPath string
	client := newChargeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"object":"charge","id":"chr_1","outcome":{"type":"venta_exitosa"}}`))
	}), "", "")

	charge, apiErr := client.CaptureCharge(context.Background(), "chr_1")

	require.Nil(t, apiErr)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/charges/chr_1/capture", gotPath)
	assert.Equal(t, OutcomeTypeSale, charge.Outcome.Type)
}

func TestGetCharge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/charges/chr_9", r.URL.Path)
		_, _ = w.Write([]byte(`{"object":"charge","id":"chr_9","amount":2500}`))
	}))
	defer server.Close()

	client, err := NewClient(Options{SecretKey: "sk_test_x", BaseURL: server.URL}, nil)
	require.NoError(t, err)

	charge, apiErr := client.GetCharge(context.Background(), "chr_9")

	require.Nil(t, apiErr)
	assert.Equal(t, int64(2500), charge.Amount)
}
