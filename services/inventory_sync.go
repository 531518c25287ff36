package services

import (
	"context"
	"strings"

	"github.com/yeremiapane/restaurant-pos/models"
)

func toInventoryViews(items []models.InventoryItem) []models.InventoryView {
	views := make([]models.InventoryView, 0, len(items))
	for _, item := range items {
		view := models.InventoryView{InventoryItem: item}
		if item.CreatedBy != nil {
			name := item.CreatedBy.FullName()
			view.CreatedByName = &name
		}
		views = append(views, view)
	}
	return views
}

func (s *SyncService) inventoryReader() ReadThrough[models.InventoryItem, models.InventoryView] {
	return ReadThrough[models.InventoryItem, models.InventoryView]{
		Entity:  "inventory",
		Present: anyRow[models.InventoryItem](s.db, "storeId"),
		Query: func(ctx context.Context, storeID string) ([]models.InventoryItem, error) {
			var items []models.InventoryItem
			err := s.db.WithContext(ctx).
				Preload("CreatedBy").
				Where(byStore(storeID)).
				Order("name").
				Find(&items).Error
			return items, err
		},
		Fetch: s.remote.FetchInventory,
		Persist: func(ctx context.Context, storeID string, items []models.InventoryItem) error {
			for i := range items {
				if items[i].StoreID == "" {
					items[i].StoreID = storeID
				}
			}
			return insertIgnore(ctx, s.db, "inventory", items)
		},
		Enrich: toInventoryViews,
		Filled: s.filled("inventory"),
	}
}

// GetInventory returns stock items with the name of the employee who added them.
func (s *SyncService) GetInventory(ctx context.Context, storeID string) ([]models.InventoryView, error) {
	if strings.TrimSpace(storeID) == "" {
		return []models.InventoryView{}, newSyncError(KindValidation, "getInventory", storeIDRequiredMsg, nil)
	}
	return s.inventoryReader().Load(ctx, storeID)
}
