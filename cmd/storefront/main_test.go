package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

type fakeAPI struct {
	mu     sync.Mutex
	status domain.StoreState
}

func (f *fakeAPI) setStatus(s domain.StoreState) {
	f.mu.Lock()
	f.status = s
	f.mu.Unlock()
}

func (f *fakeAPI) handler() http.Handler {
	products := []domain.Product{
		{ID: "p1", Name: "Gold Ring", Price: 15000, Category: "rings", Tags: []string{"gold", "bridal"}, Description: "22k band", InStock: true},
		{ID: "p2", Name: "Silver Anklet", Price: 2500, Category: "anklets", Tags: []string{"silver"}, Description: "Light chain", InStock: true},
		{ID: "p3", Name: "Ruby Necklace", Price: 85000, Category: "necklaces", Tags: []string{"gold"}, Description: "Statement piece", InStock: false},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(products)
	})
	mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/products/")
		for _, p := range products {
			if p.ID == id {
				_ = json.NewEncoder(w).Encode(p)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"product not found"}`))
	})
	mux.HandleFunc("/api/store/status", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(domain.StoreStatus{Status: f.status})
	})
	return mux
}

type harness struct {
	t        *testing.T
	api      *fakeAPI
	url      string
	stateDir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("STATE_BACKEND", "file")
	t.Setenv("SHOPPER_ID", "tester")

	api := &fakeAPI{status: domain.StoreOnline}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return &harness{t: t, api: api, url: srv.URL, stateDir: t.TempDir()}
}

func (h *harness) run(args ...string) (string, error) {
	var out bytes.Buffer
	full := append([]string{"storefront", "--api-url", h.url, "--state-dir", h.stateDir}, args...)
	err := newApp(&out).Run(full)
	return out.String(), err
}

func TestProducts_FiltersLocally(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("products", "--category", "rings", "--min", "10000", "--max", "20000")
	require.NoError(t, err)
	assert.Contains(t, out, "Gold Ring")
	assert.NotContains(t, out, "Silver Anklet")
	assert.Contains(t, out, "1 of 3 products match")

	out, err = h.run("products", "--tag", "gold")
	require.NoError(t, err)
	assert.Contains(t, out, "Gold Ring")
	assert.Contains(t, out, "Ruby Necklace")
	assert.NotContains(t, out, "Silver Anklet")
}

func TestCart_AddRejectsOutOfStock(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("cart", "add", "p3")
	assert.ErrorIs(t, err, errOutOfStock)
}

func TestCheckout_GoldRingFlow(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("cart", "add", "p1")
	require.NoError(t, err)
	out, err := h.run("cart", "add", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "2 items, total ₹30,000")

	out, err = h.run("checkout",
		"--name", "Priya", "--phone", "9876543210", "--email", "priya@example.com",
		"--address", "12 MG Road", "--pincode", "560001")
	require.NoError(t, err)

	var link string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "https://wa.me/") {
			link = line
		}
	}
	require.NotEmpty(t, link, out)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("text"), "Gold Ring (Qty: 2) - ₹30,000")

	out, err = h.run("cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "cart is empty")
}

func TestCheckout_BlockedWhileOffline(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("cart", "add", "--qty", "1", "p2")
	require.NoError(t, err)

	h.api.setStatus(domain.StoreOffline)
	_, err = h.run("checkout",
		"--name", "Priya", "--phone", "9876543210", "--email", "priya@example.com",
		"--address", "12 MG Road", "--pincode", "560001")
	require.Error(t, err)

	out, err := h.run("cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Silver Anklet")

	h.api.setStatus(domain.StoreOnline)
	_, err = h.run("checkout",
		"--name", "Priya", "--phone", "9876543210", "--email", "priya@example.com",
		"--address", "12 MG Road", "--pincode", "560001")
	require.NoError(t, err)
}

func TestWishlist_AddShowRemove(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("wishlist", "add", "p3")
	require.NoError(t, err)
	out, err := h.run("wishlist", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Ruby Necklace")
	assert.Contains(t, out, "out of stock")

	out, err = h.run("wishlist", "remove", "p3")
	require.NoError(t, err)
	assert.Contains(t, out, "wishlist is empty")
}

func TestStatus_Once(t *testing.T) {
	h := newHarness(t)
	h.api.setStatus(domain.StoreOffline)

	out, err := h.run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "store is offline")
}
