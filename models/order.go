package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID             string         `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	StoreID        string         `gorm:"column:storeId;type:varchar(64);not null;index" json:"storeId"`
	CustomerID     *string        `gorm:"column:customerId;type:varchar(64);index" json:"customerId"`
	OrderType      string         `gorm:"column:orderType;type:varchar(30)" json:"orderType"`
	Status         string         `gorm:"column:status;type:varchar(30);not null;default:'pending'" json:"status"`
	DeliveryStatus *string        `gorm:"column:deliveryStatus;type:varchar(30)" json:"deliveryStatus"`
	PaymentStatus  *string        `gorm:"column:paymentStatus;type:varchar(30)" json:"paymentStatus"`
	Amount         float64        `gorm:"column:amount;type:decimal(12,2);not null;default:0" json:"amount"`
	AssignedStaff  *string        `gorm:"column:assignedStaff;type:varchar(64)" json:"assignedStaff"`
	CreatedBy      *string        `gorm:"column:createdBy;type:varchar(64)" json:"createdBy"`
	Items          []OrderItem    `gorm:"foreignKey:OrderID" json:"orderItems"`
	CreatedAt      time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deletedAt;index" json:"deletedAt"`
}

func (Order) TableName() string {
	return "orders"
}
