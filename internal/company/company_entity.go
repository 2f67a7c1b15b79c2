package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusRejected Status = "REJECTED"
)

type Company struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"column:company_name;type:varchar(255);not null;uniqueIndex:uq_companies_name"`
	Subdomain string         `gorm:"type:varchar(50);not null;uniqueIndex:uq_companies_subdomain"`
	Logo      string         `gorm:"type:varchar(255)"`
	Banner    string         `gorm:"type:varchar(255)"`
	Bio       string         `gorm:"type:varchar(255)"`
	Status    Status         `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
