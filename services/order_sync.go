package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm/clause"
)

func (s *SyncService) ordersReader() ReadThrough[models.Order, models.Order] {
	return ReadThrough[models.Order, models.Order]{
		Entity:  "order",
		Present: anyRow[models.Order](s.db, "storeId"),
		Query: func(ctx context.Context, storeID string) ([]models.Order, error) {
			var orders []models.Order
			err := s.db.WithContext(ctx).
				Preload("Items.Addons").
				Where(byStore(storeID)).
				Order(clause.OrderByColumn{Column: clause.Column{Name: "createdAt"}, Desc: true}).
				Find(&orders).Error
			return orders, err
		},
		Fetch:   s.remote.FetchOrders,
		Persist: s.persistOrders,
		Enrich:  same[models.Order],
		Filled:  s.filled("order"),
	}
}

// persistOrders stores orders in one batch and then their items and item
// addons record by record. Order item addons keep the name and price sent
// with the order.
func (s *SyncService) persistOrders(ctx context.Context, storeID string, orders []models.Order) error {
	for i := range orders {
		if orders[i].StoreID == "" {
			orders[i].StoreID = storeID
		}
	}

	var errs []error
	if err := insertIgnore(ctx, s.db, "order", orders); err != nil {
		if KindOf(err) != KindPartialInsert {
			return err
		}
		errs = append(errs, err)
	}

	for _, order := range orders {
		log := utils.ErrorLogger.WithFields(logrus.Fields{"entity": "order", "id": order.ID})
		for i := range order.Items {
			item := &order.Items[i]
			if item.OrderID == "" {
				item.OrderID = order.ID
			}
			if err := insertOne(ctx, s.db, item); err != nil {
				log.Errorf("Failed to insert order item %s: %v", item.ID, err)
				errs = append(errs, fmt.Errorf("order item %s: %w", item.ID, err))
				continue
			}
			for j := range item.Addons {
				addon := &item.Addons[j]
				if addon.OrderItemID == "" {
					addon.OrderItemID = item.ID
				}
				if err := insertOne(ctx, s.db, addon); err != nil {
					log.Errorf("Failed to insert order item addon %s: %v", addon.ID, err)
					errs = append(errs, fmt.Errorf("order item addon %s: %w", addon.ID, err))
				}
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return newSyncError(KindPartialInsert, "order",
		fmt.Sprintf("%d order record(s) failed to insert", len(errs)), errors.Join(errs...))
}

// GetOrders returns a store's orders, newest first, with items and addons.
func (s *SyncService) GetOrders(ctx context.Context, storeID string) ([]models.Order, error) {
	if strings.TrimSpace(storeID) == "" {
		return []models.Order{}, newSyncError(KindValidation, "getOrders", storeIDRequiredMsg, nil)
	}
	return s.ordersReader().Load(ctx, storeID)
}
