package models

import (
	"strings"
	"time"
)

// Role capability flags are stored as 0/1 integers in SQLite.
type Role struct {
	ID                  string    `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name                string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	StoreID             string    `gorm:"column:storeId;type:varchar(64);index" json:"storeId"`
	UserManagement      bool      `gorm:"column:userManagement;not null;default:false" json:"userManagement"`
	OrderManagement     bool      `gorm:"column:orderManagement;not null;default:false" json:"orderManagement"`
	InventoryManagement bool      `gorm:"column:inventoryManagement;not null;default:false" json:"inventoryManagement"`
	MenuManagement      bool      `gorm:"column:menuManagement;not null;default:false" json:"menuManagement"`
	TableManagement     bool      `gorm:"column:tableManagement;not null;default:false" json:"tableManagement"`
	ReportManagement    bool      `gorm:"column:reportManagement;not null;default:false" json:"reportManagement"`
	CreatedAt           time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Role) TableName() string {
	return "roles"
}

// IsAdmin reports whether the role name designates a store administrator.
func (r *Role) IsAdmin() bool {
	return r != nil && strings.EqualFold(strings.TrimSpace(r.Name), "admin")
}
