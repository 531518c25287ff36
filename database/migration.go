package database

import (
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

// AllModels lists every Local Store table in creation order.
func AllModels() []interface{} {
	return []interface{}{
		&models.Store{},
		&models.Role{},
		&models.Employee{},
		&models.Category{},
		&models.InventoryItem{},
		&models.Dish{},
		&models.Addon{},
		&models.DishInventory{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemAddon{},
		&models.Table{},
		&models.SyncOutbox{},
	}
}

// AutoMigrate creates or updates the Local Store schema.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return err
	}

	var count int64
	for _, m := range AllModels() {
		if !db.Migrator().HasTable(m) {
			utils.ErrorLogger.Printf("Table for %T missing after migration", m)
			continue
		}
		count++
	}
	utils.InfoLogger.Printf("AutoMigrate completed (%d tables).", count)
	return nil
}
