package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_departments_company_name"`
	Name        string         `gorm:"column:department_name;type:varchar(150);not null;uniqueIndex:uq_departments_company_name"`
	Description string         `gorm:"type:text"`
	ProfileURI  string         `gorm:"column:department_profile_uri;type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Department) TableName() string {
	return "departments"
}
