package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/core/service"
	"github.com/elegance/jewelry-catalog/internal/infrastructure/upload"
	"github.com/elegance/jewelry-catalog/internal/storefront/cart"
	"github.com/elegance/jewelry-catalog/internal/storefront/checkout"
	"github.com/elegance/jewelry-catalog/internal/storefront/client"
	"github.com/elegance/jewelry-catalog/internal/storefront/session"
)

// --- in-memory stores ---

type memAdmins struct {
	mu   sync.Mutex
	seq  int
	byID map[string]domain.Admin
}

func (m *memAdmins) Create(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == a.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	m.seq++
	stored := *a
	stored.ID = fmt.Sprintf("a%d", m.seq)
	stored.CreatedAt = stored.CreatedAt.Add(time.Duration(m.seq))
	m.byID[stored.ID] = stored
	return &stored, nil
}

func (m *memAdmins) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (m *memAdmins) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return &a, nil
}

func (m *memAdmins) List(_ context.Context, role *domain.Role) ([]*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Admin{}
	for _, a := range m.byID {
		if role == nil || a.Role == *role {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memAdmins) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	a.Role = role
	m.byID[id] = a
	return &a, nil
}

func (m *memAdmins) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrAdminNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memAdmins) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byID)), nil
}

type memProducts struct {
	mu   sync.Mutex
	seq  int
	byID map[string]domain.Product
}

func (m *memProducts) List(_ context.Context, f domain.ProductFilter) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Product{}
	for _, p := range m.byID {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if len(f.Tags) > 0 && !p.HasAnyTag(f.Tags) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if s := strings.ToLower(f.Search); s != "" &&
			!strings.Contains(strings.ToLower(p.Name), s) &&
			!strings.Contains(strings.ToLower(p.Description), s) {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memProducts) FindByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (m *memProducts) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	stored := *p
	stored.ID = fmt.Sprintf("p%d", m.seq)
	m.byID[stored.ID] = stored
	return &stored, nil
}

func (m *memProducts) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[p.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	m.byID[p.ID] = *p
	return p, nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memProducts) Facets(context.Context) (*domain.Facets, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cats, tags := map[string]bool{}, map[string]bool{}
	for _, p := range m.byID {
		cats[p.Category] = true
		for _, t := range p.Tags {
			tags[t] = true
		}
	}
	return &domain.Facets{Categories: sortedKeys(cats), Tags: sortedKeys(tags)}, nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type memStoreStatus struct {
	mu      sync.Mutex
	current *domain.StoreStatus
}

func (m *memStoreStatus) GetOrInit(_ context.Context, initial domain.StoreStatus) (*domain.StoreStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		m.current = &initial
	}
	s := *m.current
	return &s, nil
}

func (m *memStoreStatus) Set(_ context.Context, status domain.StoreStatus) (*domain.StoreStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &status
	s := status
	return &s, nil
}

type memRevocations struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (m *memRevocations) Revoke(_ context.Context, id string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[id] = true
	return nil
}

func (m *memRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[id], nil
}

type recordingDispatcher struct{ links []string }

func (d *recordingDispatcher) Dispatch(_ context.Context, link string) error {
	d.links = append(d.links, link)
	return nil
}

// --- harness ---

type e2e struct {
	t   *testing.T
	srv *httptest.Server
}

func newE2E(t *testing.T) (*e2e, *service.AuthService) {
	t.Helper()
	admins := &memAdmins{byID: map[string]domain.Admin{}}
	revocations := &memRevocations{revoked: map[string]bool{}}
	tokens := service.NewTokenManager("e2e-secret", time.Hour)
	auth := service.NewAuthService(admins, tokens, zerolog.Nop())

	dir := t.TempDir()
	images, err := upload.NewDiskStore(dir, 1<<20)
	require.NoError(t, err)

	router := NewRouter(Services{
		Auth:        auth,
		Tokens:      tokens,
		Revocations: revocations,
		Admins:      service.NewAdminService(admins, revocations, tokens.TTL(), zerolog.Nop()),
		Products:    service.NewProductService(&memProducts{byID: map[string]domain.Product{}}, zerolog.Nop()),
		Store:       service.NewStoreService(&memStoreStatus{}, zerolog.Nop()),
		Images:      images,
	}, Options{UploadDir: dir, MaxUploadBytes: 1 << 20}, zerolog.Nop())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &e2e{t: t, srv: srv}, auth
}

func (e *e2e) do(method, path, token string, body any) (int, map[string]any) {
	e.t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		rdr = bytes.NewReader(raw)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, rdr)
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (e *e2e) login(email, password string) string {
	e.t.Helper()
	code, body := e.do(http.MethodPost, "/api/admin/login", "", map[string]string{"email": email, "password": password})
	require.Equal(e.t, http.StatusOK, code, body)
	return body["token"].(string)
}

func (e *e2e) list(path, token string) []map[string]any {
	e.t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.srv.URL+path, nil)
	require.NoError(e.t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.srv.Client().Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()
	require.Equal(e.t, http.StatusOK, resp.StatusCode)

	var out []map[string]any
	require.NoError(e.t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestE2E_AdminApprovalLifecycle(t *testing.T) {
	e, auth := newE2E(t)
	_, err := auth.SeedMainAdmin(context.Background(), "admin@elegance.com", "rootpass", "Main Admin")
	require.NoError(t, err)
	mainToken := e.login("admin@elegance.com", "rootpass")

	code, _ := e.do(http.MethodPost, "/api/admin/register", "", map[string]string{"email": "neha@example.com", "password": "secret1", "name": "Neha"})
	require.Equal(t, http.StatusCreated, code)

	code, _ = e.do(http.MethodPost, "/api/admin/register", "", map[string]string{"email": "neha@example.com", "password": "secret1", "name": "Neha"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := e.do(http.MethodPost, "/api/admin/login", "", map[string]string{"email": "neha@example.com", "password": "secret1"})
	require.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, domain.ErrPendingApproval.Error(), body["message"])

	pending := e.list("/api/admin/pending", mainToken)
	require.Len(t, pending, 1)
	nehaID := pending[0]["id"].(string)
	_, leaked := pending[0]["password"]
	assert.False(t, leaked)

	code, _ = e.do(http.MethodPut, "/api/admin/approve/"+nehaID, mainToken, nil)
	require.Equal(t, http.StatusOK, code)

	nehaToken := e.login("neha@example.com", "secret1")

	code, _ = e.do(http.MethodGet, "/api/admin/all", nehaToken, nil)
	assert.Equal(t, http.StatusForbidden, code, "approved admins cannot manage admins")

	code, _ = e.do(http.MethodDelete, "/api/admin/"+nehaID, mainToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = e.do(http.MethodPost, "/api/products", nehaToken, map[string]any{
		"name": "x", "price": 1, "image": "/uploads/x.png", "category": "c", "description": "d",
	})
	assert.Equal(t, http.StatusForbidden, code, "token of a deleted admin must be revoked")
}

func TestE2E_MainAdminProtections(t *testing.T) {
	e, auth := newE2E(t)
	_, err := auth.SeedMainAdmin(context.Background(), "admin@elegance.com", "rootpass", "Main Admin")
	require.NoError(t, err)
	mainToken := e.login("admin@elegance.com", "rootpass")

	all := e.list("/api/admin/all", mainToken)
	require.Len(t, all, 1)
	mainID := all[0]["id"].(string)

	code, body := e.do(http.MethodDelete, "/api/admin/"+mainID, mainToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, domain.ErrSelfDeletion.Error(), body["message"])

	code, _ = e.do(http.MethodGet, "/api/admin/all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = e.do(http.MethodGet, "/api/admin/all", "not-a-token", nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestE2E_GoldRingCheckout(t *testing.T) {
	e, auth := newE2E(t)
	_, err := auth.SeedMainAdmin(context.Background(), "admin@elegance.com", "rootpass", "Main Admin")
	require.NoError(t, err)
	token := e.login("admin@elegance.com", "rootpass")

	code, created := e.do(http.MethodPost, "/api/products", token, map[string]any{
		"name":        "Gold Ring",
		"price":       15000,
		"image":       "/uploads/image-ring.png",
		"category":    "rings",
		"tags":        []string{"gold", "bridal"},
		"description": "22k gold band",
	})
	require.Equal(t, http.StatusCreated, code, created)
	assert.Equal(t, true, created["inStock"])

	code, _ = e.do(http.MethodPost, "/api/products", token, map[string]any{
		"name": "Silver Anklet", "price": 2500, "image": "/uploads/a.png", "category": "anklets", "tags": "silver", "description": "chain",
	})
	require.Equal(t, http.StatusCreated, code)

	ctx := context.Background()
	api := client.New(e.srv.URL, zerolog.Nop())

	lo, hi := 10000.0, 20000.0
	products, err := api.Products(ctx, domain.ProductFilter{Category: "rings", MinPrice: &lo, MaxPrice: &hi})
	require.NoError(t, err)
	require.Len(t, products, 1)
	ring := products[0]
	assert.Equal(t, "Gold Ring", ring.Name)

	facets, err := api.Filters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"anklets", "rings"}, facets.Categories)
	assert.Equal(t, []string{"bridal", "gold", "silver"}, facets.Tags)

	store, err := session.NewFileStore(t.TempDir())
	require.NoError(t, err)
	sess, err := session.Open(ctx, store, "shopper")
	require.NoError(t, err)
	require.NoError(t, sess.Update(ctx, func(c *cart.Cart, _ *cart.Wishlist) error {
		if err := c.Add(cart.SnapshotOf(ring), 1); err != nil {
			return err
		}
		return c.Add(cart.SnapshotOf(ring), 1)
	}))
	require.Len(t, sess.Cart().Lines(), 1)
	assert.True(t, decimal.NewFromInt(30000).Equal(sess.Cart().Total()))

	dispatcher := &recordingDispatcher{}
	svc := checkout.NewService(checkout.NewComposer("", ""), api, dispatcher, zerolog.Nop())
	customer := checkout.Customer{Name: "Priya", Phone: "9876543210", Email: "priya@example.com", Address: "12 MG Road", Pincode: "560001"}

	// Offline blocks checkout until toggled back.
	code, _ = e.do(http.MethodPut, "/api/store/status", token, map[string]string{"status": "offline"})
	require.Equal(t, http.StatusOK, code)
	_, err = svc.Checkout(ctx, sess, customer)
	require.ErrorIs(t, err, checkout.ErrStoreOffline)
	assert.False(t, sess.Cart().IsEmpty())

	code, _ = e.do(http.MethodPut, "/api/store/status", token, map[string]string{"status": "online"})
	require.Equal(t, http.StatusOK, code)

	order, err := svc.Checkout(ctx, sess, customer)
	require.NoError(t, err)
	require.Len(t, dispatcher.links, 1)

	u, err := url.Parse(order.Link)
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Contains(t, text, "Gold Ring (Qty: 2) - ₹30,000")
	assert.Contains(t, text, "*Total Amount: ₹30,000*")
	assert.True(t, sess.Cart().IsEmpty())

	reopened, err := session.Open(ctx, store, "shopper")
	require.NoError(t, err)
	assert.True(t, reopened.Cart().IsEmpty())
}

func TestE2E_StoreStatusValidation(t *testing.T) {
	e, auth := newE2E(t)
	_, err := auth.SeedMainAdmin(context.Background(), "admin@elegance.com", "rootpass", "Main Admin")
	require.NoError(t, err)
	token := e.login("admin@elegance.com", "rootpass")

	code, body := e.do(http.MethodGet, "/api/store/status", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "online", body["status"])

	code, _ = e.do(http.MethodPut, "/api/store/status", token, map[string]string{"status": "paused"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = e.do(http.MethodPut, "/api/store/status", "", map[string]string{"status": "offline"})
	assert.Equal(t, http.StatusUnauthorized, code)
}
