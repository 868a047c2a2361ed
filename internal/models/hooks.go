package models

import (
	"gorm.io/gorm"

	"spendwise/internal/uuid"
)

// BeforeCreate assigns a UUIDv7 to new overrides.
func (o *FixedExpenseOverride) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New()
	}
	return nil
}

// BeforeCreate assigns a UUIDv7 to new overrides.
func (o *IncomeOverride) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New()
	}
	return nil
}
