package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID        string         `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	StoreID   string         `gorm:"column:storeId;type:varchar(64);not null;index" json:"storeId"`
	Name      string         `gorm:"column:name;type:varchar(255)" json:"name"`
	Phone     *string        `gorm:"column:phone;type:varchar(50)" json:"phone"`
	Email     *string        `gorm:"column:email;type:varchar(255)" json:"email"`
	Address   *string        `gorm:"column:address;type:text" json:"address"`
	Orders    []Order        `gorm:"foreignKey:CustomerID" json:"orders"`
	CreatedAt time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"column:deletedAt;index" json:"deletedAt"`
}

func (Customer) TableName() string {
	return "customers"
}
