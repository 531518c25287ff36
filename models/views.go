package models

import "time"

// EmployeeView is the list form shown on the staff screens.
type EmployeeView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Image     *string    `json:"image"`
	IsAdmin   bool       `json:"isAdmin"`
	StoreID   string     `json:"storeId"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone"`
	Address   *string    `json:"address"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// EmployeeRecord is the full employee row with the joined role name.
type EmployeeRecord struct {
	Employee
	RoleName *string `json:"roleName"`
}

type ProfileView struct {
	Employee
	Name      string  `json:"name"`
	RoleName  *string `json:"roleName"`
	StoreName *string `json:"storeName"`
}

type InventoryView struct {
	InventoryItem
	CreatedByName *string `json:"createdBy"`
}

type DishInventoryView struct {
	DishInventory
	ItemName *string `json:"itemName"`
}

type DishView struct {
	Dish
	CategoryName *string             `json:"categoryName"`
	CreatedBy    *string             `json:"createdBy"`
	Addons       []Addon             `json:"addons"`
	Inventory    []DishInventoryView `json:"inventory"`
}

type TableView struct {
	Table
	RootID       string   `json:"rootId"`
	MergedTables []string `json:"mergedTables"`
}
