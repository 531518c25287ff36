package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/yeremiapane/restaurant-pos/models"
	"gorm.io/gorm"
)

func (s *SyncService) addonsReader() ReadThrough[models.Addon, models.Addon] {
	return ReadThrough[models.Addon, models.Addon]{
		Entity:  "addon",
		Present: anyRow[models.Addon](s.db, "storeId"),
		Query: func(ctx context.Context, storeID string) ([]models.Addon, error) {
			var addons []models.Addon
			err := s.db.WithContext(ctx).Where(byStore(storeID)).Order("name").Find(&addons).Error
			return addons, err
		},
		Fetch: s.remote.FetchStoreAddons,
		Persist: func(ctx context.Context, storeID string, addons []models.Addon) error {
			for i := range addons {
				if addons[i].StoreID == "" {
					addons[i].StoreID = storeID
				}
			}
			return insertIgnore(ctx, s.db, "addon", addons)
		},
		Enrich: same[models.Addon],
		Filled: s.filled("addon"),
	}
}

func (s *SyncService) GetAddonsByStoreID(ctx context.Context, storeID string) ([]models.Addon, error) {
	if strings.TrimSpace(storeID) == "" {
		return []models.Addon{}, newSyncError(KindValidation, "getAddonsByStoreId", storeIDRequiredMsg, nil)
	}
	return s.addonsReader().Load(ctx, storeID)
}

func (s *SyncService) DeleteAddons(ctx context.Context, id string) Result {
	id = strings.TrimSpace(id)
	if id == "" {
		return failure(newSyncError(KindValidation, "deleteAddons", "Addon ID is required", nil))
	}
	return s.mutate(ctx, mutation{
		op:     "deleteAddons",
		entity: "addon",
		label:  "Addon",
		id:     id,
		apply: func(tx *gorm.DB) *gorm.DB {
			return tx.Where(map[string]interface{}{"id": id}).Delete(&models.Addon{})
		},
		method:  http.MethodPatch,
		path:    addonDeletePath(id),
		message: "Addon deleted successfully",
		event:   EventRecordDeleted,
	})
}
