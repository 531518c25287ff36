package models

import (
	"time"

	"gorm.io/gorm"
)

// Table is a dining table. MergedIntoID points at the table this one was
// merged into; merges form a forest.
type Table struct {
	ID              string         `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	StoreID         string         `gorm:"column:storeId;type:varchar(64);not null;index" json:"storeId"`
	Name            string         `gorm:"column:name;type:varchar(50);not null" json:"name"`
	Chairs          int            `gorm:"column:chairs;not null;default:0" json:"chairs"`
	Status          string         `gorm:"column:status;type:varchar(30);not null;default:'available'" json:"status"`
	CustomerName    *string        `gorm:"column:customerName;type:varchar(255)" json:"customerName"`
	ReservationName *string        `gorm:"column:reservationName;type:varchar(255)" json:"reservationName"`
	ReservationTime *time.Time     `gorm:"column:reservationTime" json:"reservationTime"`
	MergedIntoID    *string        `gorm:"column:mergedIntoId;type:varchar(64);index" json:"mergedIntoId"`
	CreatedAt       time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deletedAt;index" json:"deletedAt"`
}

func (Table) TableName() string {
	return "tables"
}
