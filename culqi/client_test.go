package culqi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore records audit entries in memory for assertions.
type memStore struct {
	entries []*Log
	err     error
}

func (m *memStore) Create(_ context.Context, entry *Log) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *memStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := &memStore{}
	client, err := NewClient(Options{
		SecretKey:   "sk_test_abc123",
		BaseURL:     server.URL,
		LogRequests: true,
	}, store)
	require.NoError(t, err)
	return client, store
}

func TestNewClient_RequiresSecretKey(t *testing.T) {
	_, err := NewClient(Options{}, nil)
	assert.Error(t, err)
}

func TestNewClient_TestModeFromKeyPrefix(t *testing.T) {
	sandbox, err := NewClient(Options{SecretKey: "sk_test_x"}, nil)
	require.NoError(t, err)
	assert.True(t, sandbox.IsTestEnv())

	live, err := NewClient(Options{SecretKey: "sk_live_x"}, nil)
	require.NoError(t, err)
	assert.False(t, live.IsTestEnv())
}

func TestDispatch_SuccessDecodesValue(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test_abc123", r.Header.Get("Authorization"))
		assert.Equal(t, "identity", r.Header.Get("Accept-Encoding"))

		w.Header().Set("X-Culqi-Tracking-Id", "trk_1")
		w.Header().Set("X-Culqi-Version", "v2.1")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"object":"token","id":"tkn_1"}`))
	}))

	token, apiErr := client.GetToken(context.Background(), "tkn_1")

	require.Nil(t, apiErr)
	assert.Equal(t, "tkn_1", token.ID)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, OpGetToken, entry.Operation)
	assert.Equal(t, "tokens/tkn_1", entry.URL)
	assert.Equal(t, http.StatusOK, entry.HTTPCode)
	assert.Equal(t, "trk_1", entry.TrackingID)
	assert.Equal(t, "v2.1", entry.APIVersion)
	assert.False(t, entry.StartedAt.IsZero())
	assert.False(t, entry.EndedAt.IsZero())
	assert.JSONEq(t, `{"object":"token","id":"tkn_1"}`, string(entry.Response))
}

func TestDispatch_APIErrorEnvelope(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"object":"error","type":"authentication_error","merchant_message":"bad key"}`))
	}))

	token, apiErr := client.GetToken(context.Background(), "tkn_1")

	assert.Nil(t, token)
	require.NotNil(t, apiErr)
	assert.True(t, apiErr.IsAuthenticationError())
	assert.Equal(t, "bad key", apiErr.MerchantMessage)

	require.Len(t, store.entries, 1)
	assert.Equal(t, http.StatusUnauthorized, store.entries[0].HTTPCode)
}

func TestDispatch_NonJSONBodyBecomesServerError(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream exploded`))
	}))

	token, apiErr := client.GetToken(context.Background(), "tkn_1")

	assert.Nil(t, token)
	require.NotNil(t, apiErr)
	assert.Equal(t, "Culqi Server Error", apiErr.UserMessage)
	assert.Contains(t, apiErr.MerchantMessage, "upstream exploded")

	// The audit record carries the wrapped error instead of the raw body.
	require.Len(t, store.entries, 1)
	assert.Contains(t, string(store.entries[0].Response), "Culqi Server Error")
}

func TestDispatch_TransportFailure(t *testing.T) {
	store := &memStore{}
	client, err := NewClient(Options{
		SecretKey:   "sk_test_abc123",
		BaseURL:     "http://127.0.0.1:1",
		LogRequests: true,
	}, store)
	require.NoError(t, err)

	token, apiErr := client.GetToken(context.Background(), "tkn_1")

	assert.Nil(t, token)
	require.NotNil(t, apiErr)
	assert.NotEmpty(t, apiErr.MerchantMessage)

	// The audit record is persisted with no HTTP code and an empty
	// response object.
	require.Len(t, store.entries, 1)
	assert.Equal(t, 0, store.entries[0].HTTPCode)
	assert.Equal(t, "{}", string(store.entries[0].Response))
}

func TestDispatch_PersistsAuditOnUnsendableRequest(t *testing.T) {
	store := &memStore{}
	client, err := NewClient(Options{
		SecretKey:   "sk_test_abc123",
		BaseURL:     "http://127.0.0.1:1",
		LogRequests: true,
	}, store)
	require.NoError(t, err)

	// A channel in the body makes marshalling fail before the transport
	// is ever reached; the audit record must still be written.
	_, apiErr := dispatch[Charge](context.Background(), client, apiCall{
		op:     OpCreateCharge,
		method: http.MethodPost,
		path:   "/charges",
		body:   map[string]any{"bad": make(chan int)},
	})

	require.NotNil(t, apiErr)
	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, OpCreateCharge, entry.Operation)
	assert.Equal(t, 0, entry.HTTPCode)
	assert.Equal(t, "{}", string(entry.Response))
	assert.False(t, entry.StartedAt.IsZero())
	assert.False(t, entry.EndedAt.IsZero())
}

func TestDispatch_AuditDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"object":"token","id":"tkn_1"}`))
	}))
	defer server.Close()

	store := &memStore{}
	client, err := NewClient(Options{
		SecretKey:   "sk_test_abc123",
		BaseURL:     server.URL,
		LogRequests: false,
	}, store)
	require.NoError(t, err)

	_, apiErr := client.GetToken(context.Background(), "tkn_1")

	require.Nil(t, apiErr)
	assert.Empty(t, store.entries)
}

func TestDispatch_AuditFailureDoesNotPropagate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"object":"token","id":"tkn_1"}`))
	}))
	defer server.Close()

	store := &memStore{err: assert.AnError}
	client, err := NewClient(Options{
		SecretKey:   "sk_test_abc123",
		BaseURL:     server.URL,
		LogRequests: true,
	}, store)
	require.NoError(t, err)

	token, apiErr := client.GetToken(context.Background(), "tkn_1")

	require.Nil(t, apiErr)
	assert.Equal(t, "tkn_1", token.ID)
}

func TestDispatch_QueryGoesToURLAndAuditRecord(t *testing.T) {
	var gotQuery string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":[],"paging":{"remaining_items":0}}`))
	}))

	_, apiErr := client.ListCharges(context.Background(), ChargesListRequest{
		Email:  "a@b.com",
		Amount: 500,
	})

	require.Nil(t, apiErr)
	assert.Contains(t, gotQuery, "amount=500")
	assert.Contains(t, gotQuery, "email=a%40b.com")

	require.Len(t, store.entries, 1)
	assert.NotEmpty(t, store.entries[0].Request)
}
