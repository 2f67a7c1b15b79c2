package user

import (
	"context"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/middleware"

	"github.com/google/uuid"
)

type identityResolver struct {
	repo Repository
}

// NewIdentityResolver adapts the user store to the auth middleware. Soft
// deleted rows never come back from the repository, so a removed account
// resolves to an error and the request is rejected.
func NewIdentityResolver(repo Repository) middleware.IdentityResolver {
	return &identityResolver{repo: repo}
}

func (r *identityResolver) ResolveIdentity(ctx context.Context, userID string) (middleware.Identity, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return middleware.Identity{}, err
	}

	u, err := r.repo.GetByID(ctx, uid)
	if err != nil {
		return middleware.Identity{}, err
	}

	return middleware.Identity{
		UserID:    u.ID.String(),
		CompanyID: u.CompanyID.String(),
		Email:     u.Email,
		Role:      string(u.Role),
		Active:    u.Status == StatusActive,
	}, nil
}
