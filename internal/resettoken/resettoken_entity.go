package resettoken

import (
	"time"

	"github.com/google/uuid"
)

// TTL is how long an issued reset credential stays redeemable.
const TTL = 24 * time.Hour

// PasswordResetToken stores only the bcrypt hash of the raw credential;
// the plaintext value exists once, inside the provisioning notification.
type PasswordResetToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(255);not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	Used      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
