package cart

// Wishlist is an ordered set of product snapshots.
type Wishlist struct {
	items []Snapshot
}

func NewWishlist() *Wishlist {
	return &Wishlist{items: []Snapshot{}}
}

// WishlistFrom rebuilds a wishlist from persisted items, skipping repeats.
func WishlistFrom(items []Snapshot) *Wishlist {
	w := NewWishlist()
	for _, s := range items {
		if s.ID != "" {
			w.Add(s)
		}
	}
	return w
}

// Add reports whether s was added; a product already present is left as is.
func (w *Wishlist) Add(s Snapshot) bool {
	if w.Contains(s.ID) {
		return false
	}
	w.items = append(w.items, s)
	return true
}

// Remove reports whether id was present.
func (w *Wishlist) Remove(id string) bool {
	for i, s := range w.items {
		if s.ID == id {
			w.items = append(w.items[:i], w.items[i+1:]...)
			return true
		}
	}
	return false
}

func (w *Wishlist) Contains(id string) bool {
	for _, s := range w.items {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (w *Wishlist) Items() []Snapshot {
	out := make([]Snapshot, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Wishlist) Len() int {
	return len(w.items)
}
