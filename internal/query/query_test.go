package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	ID     string
	Name   string
	Email  string
	Status string
	Dept   string
	Score  float64
	Joined string // empty means unknown
}

var personSchema = Schema[person]{
	Search: []func(person) string{
		func(p person) string { return p.Name },
		func(p person) string { return p.Email },
	},
	Filters: map[string]func(person) string{
		"status":     func(p person) string { return p.Status },
		"department": func(p person) string { return p.Dept },
	},
	Sorts: map[string]func(person) (Key, bool){
		"name":  func(p person) (Key, bool) { return Text(p.Name), true },
		"score": func(p person) (Key, bool) { return Number(p.Score), true },
		"joined": func(p person) (Key, bool) {
			return Text(p.Joined), p.Joined != ""
		},
	},
	DefaultSort:  "joined",
	DefaultOrder: Desc,
}

func people() []person {
	return []person{
		{ID: "1", Name: "alice", Email: "alice@x.com", Status: "interview", Dept: "Eng", Score: 80, Joined: "2024-01-10"},
		{ID: "2", Name: "Bob", Email: "bob@y.com", Status: "new", Dept: "Eng", Score: 80, Joined: "2024-01-12"},
		{ID: "3", Name: "carol", Email: "carol@x.com", Status: "interview", Dept: "Sales", Score: 95, Joined: "2024-01-11"},
		{ID: "4", Name: "Dave", Email: "dave@z.com", Status: "interview", Dept: "Eng", Score: 60, Joined: "2024-01-09"},
	}
}

func ids(items []person) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestRunDefaultSortAndPagination(t *testing.T) {
	res := Run(people(), personSchema, Params{})

	assert.Equal(t, []string{"2", "3", "1", "4"}, ids(res.Items))
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.PageSize)
	assert.Equal(t, 1, res.PageCount)
}

func TestRunSearchIsCaseInsensitive(t *testing.T) {
	res := Run(people(), personSchema, Params{Search: "X.COM", SortBy: "name", SortOrder: "asc"})
	assert.Equal(t, []string{"1", "3"}, ids(res.Items))

	res = Run(people(), personSchema, Params{Search: "bo"})
	assert.Equal(t, []string{"2"}, ids(res.Items))
}

func TestRunFiltersAreExactAndCombined(t *testing.T) {
	res := Run(people(), personSchema, Params{
		Filters: map[string]string{"status": "interview", "department": "Eng"},
		SortBy:  "name", SortOrder: "asc",
	})
	assert.Equal(t, []string{"1", "4"}, ids(res.Items))
	assert.Equal(t, 2, res.Total)

	res = Run(people(), personSchema, Params{Filters: map[string]string{"status": "Interview"}})
	assert.Empty(t, res.Items, "filters are case-sensitive")
}

func TestRunSortIsStable(t *testing.T) {
	// alice and Bob tie on score 80 and keep input order in both directions
	asc := Run(people(), personSchema, Params{SortBy: "score", SortOrder: "asc"})
	assert.Equal(t, []string{"4", "1", "2", "3"}, ids(asc.Items))

	desc := Run(people(), personSchema, Params{SortBy: "score", SortOrder: "desc"})
	assert.Equal(t, []string{"3", "1", "2", "4"}, ids(desc.Items))
}

func TestRunSortOrderOtherThanAscIsDescending(t *testing.T) {
	res := Run(people(), personSchema, Params{SortBy: "name", SortOrder: "sideways"})
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(res.Items))
}

func TestRunMissingSortKeysKeepOrder(t *testing.T) {
	items := people()
	for i := range items {
		items[i].Joined = ""
	}
	res := Run(items, personSchema, Params{})
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(res.Items))

	res = Run(people(), personSchema, Params{SortBy: "unknown"})
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(res.Items))
}

func TestRunPagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		size      int
		wantIDs   []string
		wantPages int
	}{
		{"first page", 1, 3, []string{"1", "2", "3"}, 2},
		{"last partial page", 2, 3, []string{"4"}, 2},
		{"beyond range", 5, 3, []string{}, 2},
		{"defaults for non-positive", 0, -1, []string{"1", "2", "3", "4"}, 1},
		{"huge page", 1 << 62, 10, []string{}, 1},
		{"huge page size", 1, 1 << 62, []string{"1", "2", "3", "4"}, 1},
		{"huge page and size", 1 << 62, 1 << 62, []string{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Run(people(), personSchema, Params{SortBy: "name", SortOrder: "asc", Page: tt.page, PageSize: tt.size})
			assert.Equal(t, tt.wantIDs, ids(res.Items))
			assert.Equal(t, 4, res.Total)
			assert.Equal(t, tt.wantPages, res.PageCount)
			assert.NotNil(t, res.Items)
		})
	}
}

func TestRunOutOfRangeQueryString(t *testing.T) {
	for _, raw := range []string{
		"page=1000000000000000000&limit=10",
		"page=9223372036854775807&limit=9223372036854775807",
		"page=2&limit=9223372036854775807",
	} {
		values, err := url.ParseQuery(raw)
		require.NoError(t, err)
		p := ParamsFromValues(values, personSchema)
		assert.NotPanics(t, func() {
			res := Run(people()[:3], personSchema, p)
			assert.Empty(t, res.Items)
			assert.Equal(t, 3, res.Total)
		}, raw)
	}
}

func TestRunDoesNotMutateInput(t *testing.T) {
	items := people()
	_ = Run(items, personSchema, Params{SortBy: "name", SortOrder: "desc"})
	assert.Equal(t, people(), items)
}

func TestRunIsIdempotent(t *testing.T) {
	p := Params{Search: "x", SortBy: "score", Page: 1, PageSize: 1}
	assert.Equal(t, Run(people(), personSchema, p), Run(people(), personSchema, p))
}

func TestParamsFromValues(t *testing.T) {
	values, err := url.ParseQuery("search=al&status=interview&department=&bogus=1&sortBy=name&sortOrder=asc&page=2&limit=abc")
	require.NoError(t, err)

	p := ParamsFromValues(values, personSchema)
	assert.Equal(t, "al", p.Search)
	assert.Equal(t, map[string]string{"status": "interview"}, p.Filters)
	assert.Equal(t, "name", p.SortBy)
	assert.Equal(t, "asc", p.SortOrder)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
}
