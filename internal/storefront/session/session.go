// Package session hydrates and persists a shopper's cart and wishlist.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/elegance/jewelry-catalog/internal/storefront/cart"
)

// Store persists serialized session state keyed by shopper id. Load returns
// nil data when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context, shopperID string) ([]byte, error)
	Save(ctx context.Context, shopperID string, data []byte) error
}

var shopperIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidShopperID reports whether id can be used as a storage key.
func ValidShopperID(id string) bool {
	return shopperIDPattern.MatchString(id)
}

type state struct {
	Cart     []cart.Line     `json:"cart"`
	Wishlist []cart.Snapshot `json:"wishlist"`
}

// Session owns one shopper's cart and wishlist.
type Session struct {
	store     Store
	shopperID string
	cart      *cart.Cart
	wishlist  *cart.Wishlist
}

// Open hydrates the session for shopperID. A missing record yields an empty
// cart and wishlist.
func Open(ctx context.Context, store Store, shopperID string) (*Session, error) {
	if !ValidShopperID(shopperID) {
		return nil, fmt.Errorf("session: invalid shopper id %q", shopperID)
	}

	data, err := store.Load(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	s := &Session{store: store, shopperID: shopperID}
	if len(data) == 0 {
		s.cart = cart.New()
		s.wishlist = cart.NewWishlist()
		return s, nil
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", shopperID, err)
	}
	s.cart = cart.FromLines(st.Cart)
	s.wishlist = cart.WishlistFrom(st.Wishlist)
	return s, nil
}

func (s *Session) ShopperID() string { return s.shopperID }

// Cart returns the live cart. Mutations made outside Update are not persisted
// until the next Save.
func (s *Session) Cart() *cart.Cart { return s.cart }

func (s *Session) Wishlist() *cart.Wishlist { return s.wishlist }

// Update applies fn and persists the result. Nothing is saved when fn fails.
func (s *Session) Update(ctx context.Context, fn func(c *cart.Cart, w *cart.Wishlist) error) error {
	if err := fn(s.cart, s.wishlist); err != nil {
		return err
	}
	return s.Save(ctx)
}

func (s *Session) Save(ctx context.Context) error {
	data, err := json.Marshal(state{Cart: s.cart.Lines(), Wishlist: s.wishlist.Items()})
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	return s.store.Save(ctx, s.shopperID, data)
}
