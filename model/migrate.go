package model

import "gorm.io/gorm"

// allModels lists every locally persisted model to be auto-migrated.
// User is absent on purpose: remote accounts are never stored locally.
var allModels = []interface{}{
	&Item{},
	&Category{},
	&ChangeLog{},
}

// AutoMigrate creates or updates all tables in the given database.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(allModels...)
}
