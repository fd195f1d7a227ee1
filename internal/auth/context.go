package auth

import (
	"context"

	"github.com/danhyun/motiday/internal/model"
)

type contextKey struct{}

// AuthContext identifies the account behind an authenticated request.
type AuthContext struct {
	AccountID string
	Nickname  string
	Role      string
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

func AccountID(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.AccountID
}

// IsClubOwner reports whether the request's account can run maker features.
func IsClubOwner(ctx context.Context) bool {
	ac, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return ac.Role == model.RoleClubOwner || ac.Role == model.RoleStaff
}
