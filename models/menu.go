package models

import (
	"sort"
	"strings"
	"time"
)

type MenuItem struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Rating    float64   `json:"rating"`
	Discount  string    `json:"discount,omitempty"`
	Image     string    `json:"image,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryAll matches every item when used as a category filter.
const CategoryAll = "all"

// FilterMenuItems narrows items by a case-insensitive substring match on name
// and an exact (case-normalized) category match. An empty or "all" category
// matches everything.
func FilterMenuItems(items []MenuItem, search, category string) []MenuItem {
	search = strings.ToLower(strings.TrimSpace(search))
	category = strings.ToLower(strings.TrimSpace(category))

	filtered := []MenuItem{}
	for _, item := range items {
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if category != "" && category != CategoryAll &&
			strings.ToLower(item.Category) != category {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// CategoryOptions derives the selectable categories from the catalog itself:
// deduplicated, lowercased, sorted, with "all" first.
func CategoryOptions(items []MenuItem) []string {
	seen := map[string]bool{}
	for _, item := range items {
		name := strings.ToLower(strings.TrimSpace(item.Category))
		if name != "" {
			seen[name] = true
		}
	}

	options := make([]string, 0, len(seen))
	for name := range seen {
		options = append(options, name)
	}
	sort.Strings(options)

	return append([]string{CategoryAll}, options...)
}
