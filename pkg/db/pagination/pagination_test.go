package pagination

import "testing"

func TestNormalizeClampsOutOfRangeValues(t *testing.T) {
	cases := []struct {
		name     string
		in, want Pagination
	}{
		{"defaults", Pagination{}, Pagination{Page: 1, PageSize: DefaultPageSize}},
		{"negative page", Pagination{Page: -3, PageSize: 10}, Pagination{Page: 1, PageSize: 10}},
		{"zero size", Pagination{Page: 2, PageSize: 0}, Pagination{Page: 2, PageSize: DefaultPageSize}},
		{"oversized", Pagination{Page: 1, PageSize: 5000}, Pagination{Page: 1, PageSize: MaxPageSize}},
		{"in range", Pagination{Page: 4, PageSize: 25}, Pagination{Page: 4, PageSize: 25}},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(); got != tc.want {
			t.Fatalf("%s: Normalize(%+v) = %+v, want %+v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestClampToUsesCallerBounds(t *testing.T) {
	cases := []struct {
		name             string
		in               Pagination
		defaultSize, max int
		want             Pagination
	}{
		{"default applied", Pagination{}, 50, 200, Pagination{Page: 1, PageSize: 50}},
		{"max applied", Pagination{Page: 2, PageSize: 500}, 50, 200, Pagination{Page: 2, PageSize: 200}},
		{"in range untouched", Pagination{Page: 2, PageSize: 75}, 50, 200, Pagination{Page: 2, PageSize: 75}},
		{"zero bounds fall back", Pagination{PageSize: 5000}, 0, 0, Pagination{Page: 1, PageSize: MaxPageSize}},
	}
	for _, tc := range cases {
		if got := tc.in.ClampTo(tc.defaultSize, tc.max); got != tc.want {
			t.Fatalf("%s: ClampTo(%+v, %d, %d) = %+v, want %+v", tc.name, tc.in, tc.defaultSize, tc.max, got, tc.want)
		}
	}
}

func TestOffset(t *testing.T) {
	if got := (Pagination{Page: 1, PageSize: 20}).Offset(); got != 0 {
		t.Fatalf("offset = %d", got)
	}
	if got := (Pagination{Page: 3, PageSize: 10}).Offset(); got != 20 {
		t.Fatalf("offset = %d", got)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{25, 10, 3},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}
