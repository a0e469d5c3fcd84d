package tenantctx

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type companyKey struct{}
type userKey struct{}

// WithCompanyID stores the active company (tenant) ID in the context.
func WithCompanyID(ctx context.Context, companyID uuid.UUID) context.Context {
	return context.WithValue(ctx, companyKey{}, companyID)
}

// CompanyID returns the company ID from context, if set.
func CompanyID(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	switch typed := ctx.Value(companyKey{}).(type) {
	case uuid.UUID:
		return typed, typed != uuid.Nil
	case string:
		parsed, err := uuid.Parse(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return uuid.Nil, false
}

// WithUserID stores the acting user ID in the context.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserID returns the acting user ID from context, if set.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	id, ok := ctx.Value(userKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
