package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProductByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"title":"Backpack","price":109.95,"description":"Fits laptops","category":"men's clothing","image":"img.jpg","rating":{"rate":3.9,"count":120}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second)

	product, err := client.GetProductByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, uint(7), product.ID)
	assert.Equal(t, "Backpack", product.Title)
	assert.Equal(t, 109.95, product.Price)
	assert.Equal(t, 3.9, product.Rating.Rate)
	assert.Equal(t, 120, product.Rating.Count)
}

func TestGetProductByID_EmptyBodyIsNotFound(t *testing.T) {
	// Fake Store answers 200 with an empty body for unknown ids
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second)

	_, err := client.GetProductByID(context.Background(), 9999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in catalog")
}

func TestGetProductByID_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second)

	_, err := client.GetProductByID(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestGetProductByID_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 50*time.Millisecond)

	_, err := client.GetProductByID(context.Background(), 7)
	assert.Error(t, err)
}

func TestGetAllProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"Backpack","price":109.95},{"id":2,"title":"T-Shirt","price":22.3}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second)

	products, err := client.GetAllProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "Backpack", products[0].Title)
	assert.Equal(t, uint(2), products[1].ID)
}

func TestGetAllProducts_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second)

	_, err := client.GetAllProducts(context.Background())
	assert.Error(t, err)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	client := NewClient("http://example.com", 0)
	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
}
