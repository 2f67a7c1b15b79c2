package resettoken

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=resettoken_repo.go -destination=mock/resettoken_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, token *PasswordResetToken) error
	// ListUnused returns every not-yet-redeemed token. The presented value
	// can only be matched by bcrypt comparison, so redemption scans.
	ListUnused(ctx context.Context) ([]PasswordResetToken, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, token *PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *repository) ListUnused(ctx context.Context) ([]PasswordResetToken, error) {
	var tokens []PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("used = ?", false).
		Find(&tokens).Error
	return tokens, err
}

func (r *repository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&PasswordResetToken{}).
		Where("id = ?", id).
		Update("used", true).Error
}
