package database

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAutoMigrateCreatesEveryTable(t *testing.T) {
	utils.SetOutput(io.Discard)
	db, err := gorm.Open(sqlite.Open(":memory:"), config.GormConfig("silent"))
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	// running twice is harmless
	require.NoError(t, AutoMigrate(db))

	for _, m := range AllModels() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}
	assert.True(t, db.Migrator().HasTable("DishInventory"))
	assert.True(t, db.Migrator().HasIndex(&models.Category{}, "idx_categories_store_name"))
}
