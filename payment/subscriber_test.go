package payment

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCustomerCreated_LinksGatewayCustomer(t *testing.T) {
	client := newGatewayClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"object":"customer","id":"cus_1"}`))
	}))
	sub := NewCustomerSubscriber(client)

	metadata, err := sub.HandleCustomerCreated(context.Background(), &Customer{
		ID:    "plat_1",
		Email: "ana@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "cus_1", metadata[MetaGatewayCustomerID])
}

func TestHandleCustomerCreated_SkipsWithoutEmail(t *testing.T) {
	client := newGatewayClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no gateway call expected")
	}))
	sub := NewCustomerSubscriber(client)

	metadata, err := sub.HandleCustomerCreated(context.Background(), &Customer{ID: "plat_1"})

	require.NoError(t, err)
	assert.Nil(t, metadata)
}

func TestHandleCustomerCreated_SkipsAlreadyLinked(t *testing.T) {
	client := newGatewayClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no gateway call expected")
	}))
	sub := NewCustomerSubscriber(client)

	metadata, err := sub.HandleCustomerCreated(context.Background(), &Customer{
		ID:       "plat_1",
		Email:    "ana@example.com",
		Metadata: map[string]any{MetaGatewayCustomerID: "cus_1"},
	})

	require.NoError(t, err)
	assert.Nil(t, metadata)
}

func TestHandleCustomerUpdated_PushesIdentityFields(t *testing.T) {
	var gotMethod, gotPath string
	client := newGatewayClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"object":"customer","id":"cus_1"}`))
	}))
	sub := NewCustomerSubscriber(client)

	err := sub.HandleCustomerUpdated(context.Background(), &Customer{
		ID:        "plat_1",
		FirstName: "Ana",
		Metadata:  map[string]any{MetaGatewayCustomerID: "cus_1"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/customers/cus_1", gotPath)
}

func TestHandleCustomerUpdated_IgnoresUnlinked(t *testing.T) {
	client := newGatewayClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no gateway call expected")
	}))
	sub := NewCustomerSubscriber(client)

	err := sub.HandleCustomerUpdated(context.Background(), &Customer{ID: "plat_1", FirstName: "Ana"})

	require.NoError(t, err)
}

func TestHandleCustomerDeleted_RemovesGatewayCustomer(t *testing.T) {
	var gotPath string
	client := newGatewayClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"object":"customer","id":"cus_1"}`))
	}))
	sub := NewCustomerSubscriber(client)

	err := sub.HandleCustomerDeleted(context.Background(), &Customer{
		ID:       "plat_1",
		Metadata: map[string]any{MetaGatewayCustomerID: "cus_1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "/customers/cus_1", gotPath)
}

func TestHandleCustomerDeleted_MissingGatewayRecordIsNotAnError(t *testing.T) {
	client := newGatewayClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"object":"error","type":"parameter_error","param":"id"}`))
	}))
	sub := NewCustomerSubscriber(client)

	err := sub.HandleCustomerDeleted(context.Background(), &Customer{
		ID:       "plat_1",
		Metadata: map[string]any{MetaGatewayCustomerID: "cus_gone"},
	})

	require.NoError(t, err)
}
