package catalog

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"stockdesk/model"
)

// Filter narrows the working set. An empty Category selects nothing, the
// page asks for a category before it lists products.
type Filter struct {
	Category string
	Search   string
	Imported *bool
}

const (
	SortByName        = "name"
	SortByCategory    = "category"
	SortByStock       = "stock"
	SortByLastUpdated = "lastUpdated"

	Asc  = "asc"
	Desc = "desc"
)

type Sort struct {
	Key   string
	Order string
}

// DefaultSort is the ordering the product page starts with.
var DefaultSort = Sort{Key: SortByName, Order: Asc}

// fold case-folds s. A Caser is stateful, so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Matches reports whether p passes f.
func (f Filter) Matches(p model.Product) bool {
	if f.Category == "" || p.Category != f.Category {
		return false
	}
	if f.Imported != nil && p.Imported != *f.Imported {
		return false
	}
	term := fold(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(fold(p.Name), term) || strings.Contains(fold(p.Category), term)
}

// Apply returns the products matching f, in input order.
func (f Filter) Apply(products []model.Product) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Apply sorts products in place. The sort is stable; an unknown key leaves the order unchanged.
func (s Sort) Apply(products []model.Product) {
	cmp := compareBy(s.Key)
	if cmp == nil {
		return
	}
	desc := s.Order == Desc
	sort.SliceStable(products, func(i, j int) bool {
		c := cmp(products[i], products[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareBy(key string) func(a, b model.Product) int {
	switch key {
	case SortByName:
		return func(a, b model.Product) int { return strings.Compare(fold(a.Name), fold(b.Name)) }
	case SortByCategory:
		return func(a, b model.Product) int { return strings.Compare(fold(a.Category), fold(b.Category)) }
	case SortByStock:
		return func(a, b model.Product) int { return compareFloat(a.Stock, b.Stock) }
	case SortByLastUpdated:
		return func(a, b model.Product) int {
			return compareFloat(float64(epoch(a.LastUpdated.Time)), float64(epoch(b.LastUpdated.Time)))
		}
	default:
		return nil
	}
}

// epoch treats a missing timestamp as the Unix epoch.
func epoch(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Select filters and then sorts a copy of products.
func Select(products []model.Product, f Filter, s Sort) []model.Product {
	out := f.Apply(products)
	s.Apply(out)
	return out
}

// ParseFilter reads the filter from query-style values.
func ParseFilter(get func(string) string) Filter {
	f := Filter{
		Category: strings.TrimSpace(get("category")),
		Search:   get("search"),
	}
	if raw := strings.TrimSpace(get("imported")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.Imported = &v
		}
	}
	return f
}

// ParseSort reads the sort from query-style values, falling back to DefaultSort.
func ParseSort(get func(string) string) Sort {
	s := DefaultSort
	if key := strings.TrimSpace(get("sortBy")); key != "" {
		s.Key = key
	}
	if order := strings.ToLower(strings.TrimSpace(get("sortOrder"))); order == Asc || order == Desc {
		s.Order = order
	}
	return s
}
