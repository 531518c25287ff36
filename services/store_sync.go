package services

import (
	"context"
	"strings"

	"github.com/yeremiapane/restaurant-pos/models"
)

func same[M any](rows []M) []M {
	return rows
}

func byStore(storeID string) map[string]interface{} {
	return map[string]interface{}{"storeId": storeID}
}

func (s *SyncService) storesReader() ReadThrough[models.Store, models.Store] {
	return ReadThrough[models.Store, models.Store]{
		Entity:  "store",
		Present: anyRow[models.Store](s.db, "organizationId"),
		Query: func(ctx context.Context, organizationID string) ([]models.Store, error) {
			var stores []models.Store
			err := s.db.WithContext(ctx).
				Where(map[string]interface{}{"organizationId": organizationID}).
				Order("name").
				Find(&stores).Error
			return stores, err
		},
		Fetch: s.remote.FetchStores,
		Persist: func(ctx context.Context, organizationID string, stores []models.Store) error {
			// the remote scopes stores by header and may omit the field
			for i := range stores {
				if stores[i].OrganizationID == "" {
					stores[i].OrganizationID = organizationID
				}
			}
			return insertIgnore(ctx, s.db, "store", stores)
		},
		Enrich: same[models.Store],
		Filled: s.filled("store"),
	}
}

// GetStores returns the stores of an organization.
func (s *SyncService) GetStores(ctx context.Context, organizationID string) ([]models.Store, error) {
	if strings.TrimSpace(organizationID) == "" {
		return []models.Store{}, newSyncError(KindValidation, "getStores", "Organization ID is required", nil)
	}
	return s.storesReader().Load(ctx, organizationID)
}
