package services

import (
	"context"
	"strings"

	"github.com/yeremiapane/restaurant-pos/models"
)

func (s *SyncService) customersReader() ReadThrough[models.Customer, models.Customer] {
	return ReadThrough[models.Customer, models.Customer]{
		Entity:  "customer",
		Present: anyRow[models.Customer](s.db, "storeId"),
		Query: func(ctx context.Context, storeID string) ([]models.Customer, error) {
			var customers []models.Customer
			err := s.db.WithContext(ctx).
				Preload("Orders").
				Where(byStore(storeID)).
				Order("name").
				Find(&customers).Error
			return customers, err
		},
		Fetch: s.remote.FetchCustomers,
		Persist: func(ctx context.Context, storeID string, customers []models.Customer) error {
			for i := range customers {
				if customers[i].StoreID == "" {
					customers[i].StoreID = storeID
				}
			}
			return insertIgnore(ctx, s.db, "customer", customers)
		},
		Enrich: func(customers []models.Customer) []models.Customer {
			for i := range customers {
				if customers[i].Orders == nil {
					customers[i].Orders = []models.Order{}
				}
			}
			return customers
		},
		Filled: s.filled("customer"),
	}
}

// GetCustomers returns a store's customers with their cached orders.
func (s *SyncService) GetCustomers(ctx context.Context, storeID string) ([]models.Customer, error) {
	if strings.TrimSpace(storeID) == "" {
		return []models.Customer{}, newSyncError(KindValidation, "getCustomers", storeIDRequiredMsg, nil)
	}
	return s.customersReader().Load(ctx, storeID)
}
