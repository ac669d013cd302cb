package tenantctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// TenantContextKey is the request context key for the active tenant ID.
type TenantContextKey struct{}

// AccountContextKey is the request context key for the optional sub-account
// scope, set only after ownership has been confirmed upstream.
type AccountContextKey struct{}

// WithTenantID stores the tenant ID in the context.
func WithTenantID(ctx context.Context, tenantID snowflake.ID) context.Context {
	return context.WithValue(ctx, TenantContextKey{}, tenantID)
}

// WithAccountID stores the sub-account scope in the context.
func WithAccountID(ctx context.Context, accountID snowflake.ID) context.Context {
	return context.WithValue(ctx, AccountContextKey{}, accountID)
}

// TenantID returns the tenant ID from context, if set.
func TenantID(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}
	return parseID(ctx.Value(TenantContextKey{}))
}

// AccountID returns the sub-account scope from context, if set.
func AccountID(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}
	return parseID(ctx.Value(AccountContextKey{}))
}

func parseID(value any) (snowflake.ID, bool) {
	switch typed := value.(type) {
	case int64:
		return snowflake.ID(typed), true
	case snowflake.ID:
		return typed, true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}
