package models

import (
	"time"

	"gorm.io/gorm"
)

type Dish struct {
	ID          string          `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name        string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Price       float64         `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Rating      *float64        `gorm:"column:rating" json:"rating"`
	Bowls       int             `gorm:"column:bowls;not null;default:1" json:"bowls"`
	Persons     int             `gorm:"column:persons;not null;default:1" json:"persons"`
	ImageURL    *string         `gorm:"column:imageUrl;type:varchar(512)" json:"imageUrl"`
	ItemDetails *string         `gorm:"column:itemDetails;type:text" json:"itemDetails"`
	CategoryID  *string         `gorm:"column:categoryId;type:varchar(64);index" json:"categoryId"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"-"`
	EmployeeID  *string         `gorm:"column:employeeId;type:varchar(64)" json:"employeeId"`
	Employee    *Employee       `gorm:"foreignKey:EmployeeID" json:"-"`
	StoreID     string          `gorm:"column:storeId;type:varchar(64);not null;index" json:"storeId"`
	Addons      []Addon         `gorm:"foreignKey:DishID" json:"addons,omitempty"`
	Inventory   []DishInventory `gorm:"foreignKey:DishID" json:"inventory,omitempty"`
	CreatedAt   time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"column:deletedAt;index" json:"deletedAt"`
}

// TableName keeps the capitalised name of caches created by earlier clients.
func (Dish) TableName() string {
	return "Dish"
}

// BeforeCreate fills the serving defaults the remote omits for older dishes.
func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.Bowls <= 0 {
		d.Bowls = 1
	}
	if d.Persons <= 0 {
		d.Persons = 1
	}
	return nil
}

// Addon rows are always read with deletedAt IS NULL.
type Addon struct {
	ID        string         `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name      string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Price     float64        `gorm:"column:price;type:decimal(10,2);not null;default:0" json:"price"`
	DishID    string         `gorm:"column:dishId;type:varchar(64);index" json:"dishId"`
	StoreID   string         `gorm:"column:storeId;type:varchar(64);index" json:"storeId"`
	CreatedAt time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"column:deletedAt;index" json:"deletedAt"`
}

func (Addon) TableName() string {
	return "addons"
}
