package models

import (
	"time"

	"gorm.io/gorm"
)

type Store struct {
	ID             string         `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name           string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Logo           *string        `gorm:"column:logo;type:varchar(512)" json:"logo"`
	TaxRate        float64        `gorm:"column:taxRate;type:decimal(5,2);not null;default:0" json:"taxRate"`
	OrganizationID string         `gorm:"column:organizationId;type:varchar(64);index" json:"organizationId"`
	CreatedAt      time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deletedAt;index" json:"deletedAt"`
}

func (Store) TableName() string {
	return "stores"
}
