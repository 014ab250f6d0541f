package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Product is a catalog item.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasAnyTag reports whether the product carries at least one of tags.
func (p Product) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range p.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// AllCategories is the category sentinel meaning "no category filter".
const AllCategories = "all"

// ProductFilter is the server-side listing filter. Zero values disable a dimension.
type ProductFilter struct {
	Category string
	Tags     []string
	MinPrice *float64
	MaxPrice *float64
	Search   string
}

// TagList accepts either a JSON array of strings or a single comma-delimited string.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = NormalizeTags(strings.Split(s, ","))
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = NormalizeTags(list)
	return nil
}

// NormalizeTags trims every entry and drops the empty ones, preserving order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// SplitTags parses a comma-delimited tag query parameter.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeTags(strings.Split(raw, ","))
}

// Facets lists the distinct categories and tags present in the catalog.
type Facets struct {
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}
