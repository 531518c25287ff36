package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type InventoryItem struct {
	ID          string         `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	StoreID     string         `gorm:"column:storeId;type:varchar(64);not null;index" json:"storeId"`
	Name        string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Quantity    float64        `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Threshold   *float64       `gorm:"column:threshold" json:"threshold"`
	Supplier    *string        `gorm:"column:supplier;type:varchar(255)" json:"supplier"`
	CreatedByID *string        `gorm:"column:createdById;type:varchar(64)" json:"createdById"`
	CreatedBy   *Employee      `gorm:"foreignKey:CreatedByID" json:"-"`
	CreatedAt   time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deletedAt;index" json:"deletedAt"`
}

func (InventoryItem) TableName() string {
	return "inventory"
}

// DishInventory links a dish to the stock it consumes.
type DishInventory struct {
	ID              string         `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	DishID          string         `gorm:"column:dishId;type:varchar(64);not null;index" json:"dishId"`
	InventoryItemID string         `gorm:"column:inventoryItemId;type:varchar(64);not null;index" json:"inventoryItemId"`
	InventoryItem   *InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventoryItem,omitempty"`
	Quantity        float64        `gorm:"column:quantity;not null;default:1" json:"quantity"`
	DefaultSelected bool           `gorm:"column:defaultSelected;not null;default:false" json:"defaultSelected"`
	CreatedAt       time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
}

func (DishInventory) TableName() string {
	return "DishInventory"
}

// NormalizeQuantity returns q, or 1 when q is absent, negative or not a number.
func NormalizeQuantity(q float64) float64 {
	if math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
		return 1
	}
	return q
}

// UnmarshalJSON accepts quantity as a number or a numeric string. Anything
// else, including null or a missing field, decodes as 1.
func (di *DishInventory) UnmarshalJSON(data []byte) error {
	type plain DishInventory
	aux := struct {
		*plain
		Quantity json.RawMessage `json:"quantity"`
	}{plain: (*plain)(di)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	di.Quantity = parseQuantity(aux.Quantity)
	return nil
}

func parseQuantity(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	var q float64
	if err := json.Unmarshal(raw, &q); err == nil {
		return NormalizeQuantity(q)
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return NormalizeQuantity(v)
		}
	}
	return 1
}

func (di *DishInventory) BeforeCreate(tx *gorm.DB) error {
	di.Quantity = NormalizeQuantity(di.Quantity)
	return nil
}
