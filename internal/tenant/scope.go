package tenant

import "gorm.io/gorm"

// Scope restricts every query it is applied to to a single company.
// All tenant-owned repositories must use it for reads and deletes.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
