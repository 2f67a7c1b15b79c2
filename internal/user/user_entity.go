package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleGuest    Role = "GUEST"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEmployee, RoleGuest:
		return true
	}
	return false
}

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusOnLeave Status = "ONLEAVE"
	StatusRetired Status = "RETIRED"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusOnLeave, StatusRetired:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name         string         `gorm:"column:user_name;type:varchar(50);not null"`
	Email        string         `gorm:"type:varchar(50);not null;uniqueIndex:uq_users_email"`
	Password     string         `gorm:"type:varchar(255);not null"`
	ProfileURI   string         `gorm:"type:varchar(255)"`
	Bio          string         `gorm:"type:varchar(255)"`
	RefreshToken *string        `gorm:"type:text"`
	Role         Role           `gorm:"type:varchar(20);not null"`
	Status       Status         `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
