package config

import "testing"

func TestAnalyticsHolderUpdate(t *testing.T) {
	holder := NewStaticAnalyticsConfigHolder(DefaultAnalyticsConfig())

	next := DefaultAnalyticsConfig()
	next.DefaultPageSize = 40
	next.MaxPageSize = 60
	holder.Update(next)

	got := holder.Get()
	if got.DefaultPageSize != 40 || got.MaxPageSize != 60 {
		t.Fatalf("Get() = %+v after Update", got)
	}
}

func TestValidateAnalyticsConfig(t *testing.T) {
	if err := validateAnalyticsConfig(DefaultAnalyticsConfig()); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}

	bad := DefaultAnalyticsConfig()
	bad.DashboardCacheTTLSeconds = 0
	if err := validateAnalyticsConfig(bad); err == nil {
		t.Fatal("zero cache TTL accepted")
	}

	bad = DefaultAnalyticsConfig()
	bad.RecentTransactionLimit = -1
	if err := validateAnalyticsConfig(bad); err == nil {
		t.Fatal("negative transaction limit accepted")
	}

	bad = DefaultAnalyticsConfig()
	bad.MaxPageSize = bad.DefaultPageSize - 1
	if err := validateAnalyticsConfig(bad); err == nil {
		t.Fatal("max below default accepted")
	}
}
