package models

import (
	"time"

	"gorm.io/gorm"
)

// Category names are unique per store; see database.AutoMigrate.
type Category struct {
	ID            string         `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name          string         `gorm:"column:name;type:varchar(100);not null;uniqueIndex:idx_categories_store_name" json:"name"`
	StoreID       string         `gorm:"column:storeId;type:varchar(64);not null;uniqueIndex:idx_categories_store_name" json:"storeId"`
	Status        bool           `gorm:"column:status;not null" json:"status"`
	CategoryIndex int            `gorm:"column:categoryIndex;not null;default:0" json:"categoryIndex"`
	CreatedAt     time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deletedAt;index" json:"deletedAt"`
}

func (Category) TableName() string {
	return "categories"
}

// StatusLabel is the human form of Status used in status messages.
func (c Category) StatusLabel() string {
	return StatusLabel(c.Status)
}

func StatusLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
