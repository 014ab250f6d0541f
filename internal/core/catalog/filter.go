// Package catalog filters an in-memory product collection the way the storefront
// browses it: free text, category, any-of tags and an inclusive price range.
package catalog

import (
	"strings"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

const (
	// DefaultMinPrice and DefaultMaxPrice bound the unfiltered price range.
	DefaultMinPrice = 0
	DefaultMaxPrice = 1000000
)

// PriceRange is inclusive on both ends.
type PriceRange struct {
	Min float64
	Max float64
}

// Contains reports whether price lies within the range.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// IsDefault reports whether the range admits every catalog price.
func (r PriceRange) IsDefault() bool {
	return r.Min <= DefaultMinPrice && r.Max >= DefaultMaxPrice
}

// PricePreset is a labelled range offered by the filter panel.
type PricePreset struct {
	Label string
	Range PriceRange
}

// PricePresets lists the price buckets shown to shoppers, "All Prices" first.
var PricePresets = []PricePreset{
	{Label: "All Prices", Range: PriceRange{Min: 0, Max: 1000000}},
	{Label: "Under ₹10,000", Range: PriceRange{Min: 0, Max: 10000}},
	{Label: "₹10,000 - ₹25,000", Range: PriceRange{Min: 10000, Max: 25000}},
	{Label: "₹25,000 - ₹50,000", Range: PriceRange{Min: 25000, Max: 50000}},
	{Label: "₹50,000 - ₹1,00,000", Range: PriceRange{Min: 50000, Max: 100000}},
	{Label: "Above ₹1,00,000", Range: PriceRange{Min: 100000, Max: 1000000}},
}

// State is the shopper's current filter selection.
type State struct {
	Search   string
	Category string
	Tags     []string
	Price    PriceRange
}

// NewState returns the unfiltered selection.
func NewState() State {
	return State{
		Category: domain.AllCategories,
		Tags:     []string{},
		Price:    PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
	}
}

// Matches reports whether p satisfies every dimension of s.
func (s State) Matches(p domain.Product) bool {
	if q := strings.ToLower(s.Search); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if s.Category != "" && s.Category != domain.AllCategories && p.Category != s.Category {
		return false
	}
	if len(s.Tags) > 0 && !p.HasAnyTag(s.Tags) {
		return false
	}
	return s.Price.Contains(p.Price)
}

// Apply returns the products matching s, preserving their order.
func (s State) Apply(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if s.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// ToggleTag selects tag if absent and deselects it otherwise.
func (s *State) ToggleTag(tag string) {
	for i, t := range s.Tags {
		if t == tag {
			s.Tags = append(s.Tags[:i:i], s.Tags[i+1:]...)
			return
		}
	}
	s.Tags = append(s.Tags, tag)
}

// Clear resets every dimension, search included.
func (s *State) Clear() {
	*s = NewState()
}

// HasActive reports whether a category, tag or narrowed price range is selected.
// Search text is not counted.
func (s State) HasActive() bool {
	category := s.Category != "" && s.Category != domain.AllCategories
	return category || len(s.Tags) > 0 || !s.Price.IsDefault()
}

// Facets collects the distinct categories and tags of products in first-seen order.
func Facets(products []domain.Product) domain.Facets {
	f := domain.Facets{Categories: []string{}, Tags: []string{}}
	seenCat := make(map[string]struct{})
	seenTag := make(map[string]struct{})

	for _, p := range products {
		if _, ok := seenCat[p.Category]; !ok {
			seenCat[p.Category] = struct{}{}
			f.Categories = append(f.Categories, p.Category)
		}
		for _, t := range p.Tags {
			if _, ok := seenTag[t]; !ok {
				seenTag[t] = struct{}{}
				f.Tags = append(f.Tags, t)
			}
		}
	}
	return f
}
