package checkout

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/storefront/cart"
	"github.com/elegance/jewelry-catalog/internal/storefront/session"
)

type fixedStatus struct {
	state domain.StoreState
	err   error
}

func (f *fixedStatus) StoreStatus(context.Context) (*domain.StoreStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.StoreStatus{Status: f.state, UpdatedAt: time.Now()}, nil
}

type recordingDispatcher struct {
	links []string
	err   error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, link string) error {
	if d.err != nil {
		return d.err
	}
	d.links = append(d.links, link)
	return nil
}

var (
	goldRing = cart.Snapshot{ID: "p1", Name: "Gold Ring", Price: 15000, Category: "rings", InStock: true}
	priya    = Customer{Name: "Priya", Phone: "9876543210", Email: "priya@example.com", Address: "12 MG Road", Pincode: "560001"}
)

func openSession(t *testing.T) *session.Session {
	t.Helper()
	store, err := session.NewFileStore(t.TempDir())
	require.NoError(t, err)
	sess, err := session.Open(context.Background(), store, "shopper")
	require.NoError(t, err)
	return sess
}

func TestComposer_Message(t *testing.T) {
	c := NewComposer("", "")
	msg, err := c.Message([]cart.Line{{Snapshot: goldRing, Quantity: 2}}, priya)
	require.NoError(t, err)

	want := "*NEW JEWELRY ORDER*\n\n" +
		"*Order Details:*\n" +
		"Gold Ring (Qty: 2) - ₹30,000\n\n" +
		"*Total Amount: ₹30,000*\n\n" +
		"*Customer Information:*\n" +
		"Name: Priya\n" +
		"Phone: 9876543210\n" +
		"Email: priya@example.com\n" +
		"Address: 12 MG Road\n" +
		"Pin Code: 560001\n\n" +
		"Thank you for choosing Elegance Jewelry!"
	assert.Equal(t, want, msg)
}

func TestComposer_MessageWithNotes(t *testing.T) {
	c := NewComposer("", "Shop")
	customer := priya
	customer.Notes = "Gift wrap please"

	msg, err := c.Message([]cart.Line{{Snapshot: goldRing, Quantity: 1}}, customer)
	require.NoError(t, err)
	assert.Contains(t, msg, "Pin Code: 560001\nNotes: Gift wrap please\n\nThank you for choosing Shop!")
}

func TestComposer_FormatAmount(t *testing.T) {
	c := NewComposer("", "")
	assert.Equal(t, "30,000", c.FormatAmount(decimal.NewFromInt(30000)))
	assert.Equal(t, "999", c.FormatAmount(decimal.NewFromInt(999)))
	assert.Equal(t, "14,998.50", c.FormatAmount(decimal.RequireFromString("14998.5")))
	assert.Equal(t, "1,50,000", c.FormatAmount(decimal.NewFromInt(150000)))
	assert.Equal(t, "10,00,000", c.FormatAmount(decimal.NewFromInt(1000000)))
}

func TestComposer_Link(t *testing.T) {
	c := NewComposer("911234567890", "")
	link := c.Link("Gold Ring (Qty: 2) - ₹30,000\nTotal")

	require.True(t, strings.HasPrefix(link, "https://wa.me/911234567890?text="))
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "%20")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Gold Ring (Qty: 2) - ₹30,000\nTotal", u.Query().Get("text"))
}

func TestCheckout_GoldRing(t *testing.T) {
	sess := openSession(t)
	require.NoError(t, sess.Update(context.Background(), func(c *cart.Cart, _ *cart.Wishlist) error {
		return c.Add(goldRing, 2)
	}))

	dispatcher := &recordingDispatcher{}
	svc := NewService(NewComposer("", ""), &fixedStatus{state: domain.StoreOnline}, dispatcher, zerolog.Nop())

	order, err := svc.Checkout(context.Background(), sess, priya)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30000).Equal(order.Total))
	assert.Equal(t, 2, order.Units)
	require.Len(t, dispatcher.links, 1)

	u, err := url.Parse(dispatcher.links[0])
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Contains(t, text, "Gold Ring (Qty: 2) - ₹30,000")
	assert.Contains(t, text, "*Total Amount: ₹30,000*")

	assert.True(t, sess.Cart().IsEmpty())
}

func TestCheckout_StoreOffline(t *testing.T) {
	sess := openSession(t)
	require.NoError(t, sess.Update(context.Background(), func(c *cart.Cart, _ *cart.Wishlist) error {
		return c.Add(goldRing, 1)
	}))
	dispatcher := &recordingDispatcher{}
	svc := NewService(NewComposer("", ""), &fixedStatus{state: domain.StoreOffline}, dispatcher, zerolog.Nop())

	_, err := svc.Checkout(context.Background(), sess, priya)
	require.ErrorIs(t, err, ErrStoreOffline)
	assert.Empty(t, dispatcher.links)
	assert.Equal(t, 1, sess.Cart().Count())
}

func TestCheckout_StatusUnavailableBlocks(t *testing.T) {
	sess := openSession(t)
	svc := NewService(NewComposer("", ""), &fixedStatus{err: errors.New("connection refused")}, &recordingDispatcher{}, zerolog.Nop())

	_, err := svc.Checkout(context.Background(), sess, priya)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc := NewService(NewComposer("", ""), &fixedStatus{state: domain.StoreOnline}, &recordingDispatcher{}, zerolog.Nop())

	_, err := svc.Checkout(context.Background(), openSession(t), priya)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_InvalidCustomer(t *testing.T) {
	sess := openSession(t)
	require.NoError(t, sess.Update(context.Background(), func(c *cart.Cart, _ *cart.Wishlist) error {
		return c.Add(goldRing, 1)
	}))
	svc := NewService(NewComposer("", ""), &fixedStatus{state: domain.StoreOnline}, &recordingDispatcher{}, zerolog.Nop())

	_, err := svc.Checkout(context.Background(), sess, Customer{Name: "  ", Phone: "1", Email: "nope", Address: "a", Pincode: "1"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.False(t, sess.Cart().IsEmpty())
}

func TestCheckout_DispatchFailureKeepsCart(t *testing.T) {
	sess := openSession(t)
	require.NoError(t, sess.Update(context.Background(), func(c *cart.Cart, _ *cart.Wishlist) error {
		return c.Add(goldRing, 1)
	}))
	svc := NewService(NewComposer("", ""), &fixedStatus{state: domain.StoreOnline}, &recordingDispatcher{err: errors.New("closed")}, zerolog.Nop())

	_, err := svc.Checkout(context.Background(), sess, priya)
	require.Error(t, err)
	assert.Equal(t, 1, sess.Cart().Count())
}

func TestWriterDispatcher(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriterDispatcher{W: &buf}.Dispatch(context.Background(), "https://wa.me/1?text=hi"))
	assert.Equal(t, "https://wa.me/1?text=hi\n", buf.String())
}
