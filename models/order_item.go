package models

import (
	"time"
)

type OrderItem struct {
	ID        string           `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	OrderID   string           `gorm:"column:orderId;type:varchar(64);not null;index" json:"orderId"`
	DishID    string           `gorm:"column:dishId;type:varchar(64);not null" json:"dishId"`
	Quantity  int              `gorm:"column:quantity;not null;default:1" json:"quantity"`
	Price     float64          `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Addons    []OrderItemAddon `gorm:"foreignKey:OrderItemID" json:"addons"`
	CreatedAt time.Time        `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time        `gorm:"column:updatedAt" json:"updatedAt"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderItemAddon keeps the addon name and price as charged when the order was
// taken. It is never joined back to addons.
type OrderItemAddon struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	OrderItemID string    `gorm:"column:orderItemId;type:varchar(64);not null;index" json:"orderItemId"`
	AddonID     string    `gorm:"column:addonId;type:varchar(64)" json:"addonId"`
	AddonName   string    `gorm:"column:addonName;type:varchar(255);not null" json:"addonName"`
	AddonPrice  float64   `gorm:"column:addonPrice;type:decimal(10,2);not null;default:0" json:"addonPrice"`
	CreatedAt   time.Time `gorm:"column:createdAt" json:"createdAt"`
}

func (OrderItemAddon) TableName() string {
	return "order_item_addons"
}
