package pagination_test

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/assessor/pkg/pagination"
)

var bounds = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestConfig(t *testing.T) {
	t.Setenv("EVAL_PAGE_MAX", "200")

	var cfg pagination.Config
	if err := cfg.Finalize(&pagination.ConfigEnv{MaxPageSize: "EVAL_PAGE_MAX"}); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg != (pagination.Config{DefaultPageSize: 20, MaxPageSize: 200}) {
		t.Errorf("got %+v", cfg)
	}

	cfg.Merge(&pagination.Config{DefaultPageSize: 50})
	if cfg != (pagination.Config{DefaultPageSize: 50, MaxPageSize: 200}) {
		t.Errorf("merge: %+v", cfg)
	}

	for _, bad := range []pagination.Config{
		{DefaultPageSize: 200, MaxPageSize: 100},
		{DefaultPageSize: -1},
	} {
		if err := bad.Finalize(nil); err == nil {
			t.Errorf("%+v should fail validation", bad)
		}
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	search := "landing zone"

	tests := []struct {
		name       string
		query      string
		want       pagination.PageRequest
		wantOffset int
	}{
		{
			name: "empty",
			want: pagination.PageRequest{Page: 1, PageSize: 20},
		},
		{
			name:       "explicit",
			query:      "page=3&page_size=25&search=landing+zone&sort=grade,-evaluated_at",
			wantOffset: 50,
			want: pagination.PageRequest{
				Page: 3, PageSize: 25, Search: &search,
				Sort: pagination.SortFields{{Field: "grade"}, {Field: "evaluated_at", Descending: true}},
			},
		},
		{
			name:  "clamped",
			query: "page=-2&page_size=500&search=+",
			want:  pagination.PageRequest{Page: 1, PageSize: 100},
		},
		{
			name:  "garbage numbers",
			query: "page=two&page_size=ten",
			want:  pagination.PageRequest{Page: 1, PageSize: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}

			got := pagination.PageRequestFromQuery(values, bounds)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("request (-want +got):\n%s", diff)
			}
			if got.Offset() != tt.wantOffset {
				t.Errorf("offset: got %d, want %d", got.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		total, size, wantPages int
	}{
		{100, 20, 5},
		{101, 20, 6},
		{5, 20, 1},
		{0, 20, 1},
		{3, 0, 1},
	}

	for _, tt := range tests {
		got := pagination.NewPageResult([]string{"a"}, tt.total, 2, tt.size)
		if got.TotalPages != tt.wantPages || got.Total != tt.total || got.Page != 2 {
			t.Errorf("total %d size %d: got %+v", tt.total, tt.size, got)
		}
	}

	empty, err := json.Marshal(pagination.NewPageResult[string](nil, 0, 1, 20))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(empty), `"data":[]`) {
		t.Errorf("nil data should encode as []: %s", empty)
	}
}

func TestSortFields(t *testing.T) {
	want := pagination.SortFields{{Field: "filename"}, {Field: "evaluated_at", Descending: true}}

	for _, input := range []string{
		`"filename, -evaluated_at"`,
		`[{"field":"filename"},{"field":"evaluated_at","descending":true}]`,
	} {
		var got pagination.SortFields
		if err := json.Unmarshal([]byte(input), &got); err != nil {
			t.Fatalf("%s: %v", input, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", input, diff)
		}
	}

	var bad pagination.SortFields
	if err := json.Unmarshal([]byte(`42`), &bad); err == nil {
		t.Error("a number is not a sort spec")
	}

	if got := pagination.ParseSortFields(",,grade,"); len(got) != 1 || got[0].Field != "grade" {
		t.Errorf("blank terms should be skipped: %v", got)
	}
	if want[0].Direction() != "ASC" || want[1].Direction() != "DESC" {
		t.Error("direction")
	}
}
