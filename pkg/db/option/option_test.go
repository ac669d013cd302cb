package option

import (
	"testing"
	"time"

	"github.com/smallbiznis/paymirror/pkg/db"
	"github.com/smallbiznis/paymirror/pkg/db/pagination"
	"gorm.io/gorm"
)

type widget struct {
	ID        int64 `gorm:"primaryKey"`
	Name      string
	Email     string
	Status    string
	CreatedAt time.Time
}

func setupOptionDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&widget{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	rows := []widget{
		{ID: 1, Name: "Alpha Corp", Email: "ops@alpha.test", Status: "active", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Beta LLC", Email: "billing@beta.test", Status: "inactive", CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Name: "alphabet soup", Email: "soup@kitchen.test", Status: "active", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 4, Name: "100% Discount", Email: "deals@percent.test", Status: "active", CreatedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
	if err := conn.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return conn
}

func fetch(t *testing.T, conn *gorm.DB, opts ...QueryOption) []widget {
	t.Helper()
	stmt := conn.Model(&widget{})
	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}
	var out []widget
	if err := stmt.Find(&out).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	return out
}

func TestWithSearchMatchesCaseInsensitive(t *testing.T) {
	conn := setupOptionDB(t)
	got := fetch(t, conn, WithSearch("ALPHA", []string{"name", "email"}))
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
}

func TestWithSearchEscapesWildcards(t *testing.T) {
	conn := setupOptionDB(t)
	// A literal % must not match everything.
	got := fetch(t, conn, WithSearch("100%", []string{"name"}))
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("expected only the literal match, got %v", got)
	}
}

func TestWithSearchEmptyQueryIsNoop(t *testing.T) {
	conn := setupOptionDB(t)
	if got := fetch(t, conn, WithSearch("   ", []string{"name"})); len(got) != 4 {
		t.Fatalf("expected all rows, got %d", len(got))
	}
}

func TestWithFiltersDropsUnknownKeys(t *testing.T) {
	conn := setupOptionDB(t)
	allowed := map[string]string{"status": "status"}
	got := fetch(t, conn, WithFilters(map[string]string{
		"status":  "active",
		"drop-me": "whatever",
		"email":   "ops@alpha.test",
	}, allowed))
	if len(got) != 3 {
		t.Fatalf("expected 3 active rows, got %d", len(got))
	}
}

func TestWithDateRange(t *testing.T) {
	conn := setupOptionDB(t)
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	got := fetch(t, conn, WithDateRange("created_at", &from, &to))
	if len(got) != 2 {
		t.Fatalf("expected 2 rows in range, got %d", len(got))
	}
}

func TestApplyOperator(t *testing.T) {
	conn := setupOptionDB(t)
	got := fetch(t, conn, ApplyOperator(Condition{Column: "id", Op: GTE, Value: 3}))
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	// Unknown operators leave the statement untouched.
	got = fetch(t, conn, ApplyOperator(Condition{Column: "id", Op: Operator("!="), Value: 1}))
	if len(got) != 4 {
		t.Fatalf("expected operator to be ignored, got %d rows", len(got))
	}
}

func TestApplyPaginationWindows(t *testing.T) {
	conn := setupOptionDB(t)
	got := fetch(t, conn,
		WithSortBy("id asc"),
		ApplyPagination(pagination.Pagination{Page: 2, PageSize: 3}),
	)
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("expected last row on page 2, got %v", got)
	}
}

func TestWithQuerySortBy(t *testing.T) {
	allowed := map[string]bool{"name": true, "created_at": true}
	cases := []struct {
		in   string
		want string
	}{
		{"", "created_at desc"},
		{"name", "name asc"},
		{"name:desc", "name desc"},
		{"name:DESC", "name asc"},
		{"name:sideways", "name asc"},
		{"secret_column:desc", "created_at desc"},
	}
	for _, tc := range cases {
		if got := WithQuerySortBy(tc.in, allowed, "created_at desc"); got != tc.want {
			t.Fatalf("WithQuerySortBy(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
