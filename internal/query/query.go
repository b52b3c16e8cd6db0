// Package query implements the search, filter, sort and paginate pipeline
// shared by every list endpoint.
package query

import (
	"net/url"
	"sort"
	"strings"

	"talentflow/pkg/utils"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ParseOrder maps "asc" to Asc and anything else to Desc. An empty string
// yields def.
func ParseOrder(s string, def Order) Order {
	switch s {
	case "":
		return def
	case string(Asc):
		return Asc
	default:
		return Desc
	}
}

// Key is a sortable field value. Text keys compare case-insensitively,
// numeric keys numerically.
type Key struct {
	text    string
	num     float64
	numeric bool
}

func Text(s string) Key    { return Key{text: strings.ToLower(s)} }
func Number(f float64) Key { return Key{num: f, numeric: true} }
func Int(n int) Key        { return Number(float64(n)) }

// compare returns -1, 0 or 1. Keys of different kinds compare equal.
func (k Key) compare(o Key) int {
	switch {
	case k.numeric && o.numeric:
		switch {
		case k.num < o.num:
			return -1
		case k.num > o.num:
			return 1
		}
	case !k.numeric && !o.numeric:
		return strings.Compare(k.text, o.text)
	}
	return 0
}

// Schema describes how one entity kind is searched, filtered and sorted.
type Schema[T any] struct {
	// Search lists the fields matched by the free-text term.
	Search []func(T) string
	// Filters maps a query parameter to the field it must equal exactly.
	Filters map[string]func(T) string
	// Sorts maps a sort name to its key. ok=false means the record lacks the field.
	Sorts map[string]func(T) (Key, bool)

	DefaultSort  string
	DefaultOrder Order
}

// Params is a parsed list request.
type Params struct {
	Search    string
	Filters   map[string]string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// Result is one page of a list request. Total counts every match before pagination.
type Result[T any] struct {
	Items     []T
	Total     int
	Page      int
	PageSize  int
	PageCount int
}

// ParamsFromValues reads search, sortBy, sortOrder, page and limit, plus the
// filters the schema registers. Other parameters are ignored.
func ParamsFromValues[T any](values url.Values, schema Schema[T]) Params {
	p := Params{
		Search:    values.Get("search"),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
		Page:      utils.PositiveIntOrDefault(values.Get("page"), DefaultPage),
		PageSize:  utils.PositiveIntOrDefault(values.Get("limit"), DefaultPageSize),
	}
	for name := range schema.Filters {
		if v := values.Get(name); v != "" {
			if p.Filters == nil {
				p.Filters = make(map[string]string)
			}
			p.Filters[name] = v
		}
	}
	return p
}

// Run applies search, filters, a stable sort and pagination to items, in
// that order. items is not modified.
func Run[T any](items []T, schema Schema[T], p Params) Result[T] {
	matched := make([]T, 0, len(items))
	term := strings.ToLower(p.Search)

	for _, item := range items {
		if term != "" && !matchesSearch(item, schema.Search, term) {
			continue
		}
		if !matchesFilters(item, schema.Filters, p.Filters) {
			continue
		}
		matched = append(matched, item)
	}

	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = schema.DefaultSort
	}
	defaultOrder := schema.DefaultOrder
	if defaultOrder == "" {
		defaultOrder = Desc
	}
	if key, ok := schema.Sorts[sortBy]; ok {
		sortStable(matched, key, ParseOrder(p.SortOrder, defaultOrder))
	}

	page := p.Page
	if page <= 0 {
		page = DefaultPage
	}
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(matched)
	pages := total / size
	if total%size != 0 {
		pages++
	}
	result := Result[T]{
		Items:     []T{},
		Total:     total,
		Page:      page,
		PageSize:  size,
		PageCount: pages,
	}

	// page and size come from the query string; compare before multiplying
	if page <= pages {
		start := (page - 1) * size
		end := total
		if size < total-start {
			end = start + size
		}
		result.Items = matched[start:end]
	}
	return result
}

func matchesSearch[T any](item T, fields []func(T) string, term string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(item)), term) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](item T, fields map[string]func(T) string, want map[string]string) bool {
	for name, value := range want {
		field, ok := fields[name]
		if !ok {
			continue
		}
		if field(item) != value {
			return false
		}
	}
	return true
}

// sortStable orders items by key. Pairs where either side has no key compare
// equal and keep their relative order.
func sortStable[T any](items []T, key func(T) (Key, bool), order Order) {
	sort.SliceStable(items, func(i, j int) bool {
		a, okA := key(items[i])
		b, okB := key(items[j])
		if !okA || !okB {
			return false
		}
		c := a.compare(b)
		if order == Asc {
			return c < 0
		}
		return c > 0
	})
}
