package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func toDishViews(dishes []models.Dish) []models.DishView {
	views := make([]models.DishView, 0, len(dishes))
	for _, d := range dishes {
		view := models.DishView{
			Dish:      d,
			Addons:    d.Addons,
			Inventory: make([]models.DishInventoryView, 0, len(d.Inventory)),
		}
		if view.Addons == nil {
			view.Addons = []models.Addon{}
		}
		if d.Category != nil {
			name := d.Category.Name
			view.CategoryName = &name
		}
		if d.Employee != nil {
			name := d.Employee.FullName()
			view.CreatedBy = &name
		}
		for _, link := range d.Inventory {
			iv := models.DishInventoryView{DishInventory: link}
			if link.InventoryItem != nil {
				name := link.InventoryItem.Name
				iv.ItemName = &name
			}
			view.Inventory = append(view.Inventory, iv)
		}
		views = append(views, view)
	}
	return views
}

func (s *SyncService) dishesReader() ReadThrough[models.Dish, models.DishView] {
	return ReadThrough[models.Dish, models.DishView]{
		Entity:  "dish",
		Present: anyRow[models.Dish](s.db, "storeId"),
		Query: func(ctx context.Context, storeID string) ([]models.Dish, error) {
			var dishes []models.Dish
			err := s.db.WithContext(ctx).
				Preload("Category").
				Preload("Employee").
				Preload("Addons").
				Preload("Inventory.InventoryItem").
				Where(byStore(storeID)).
				Order("name").
				Find(&dishes).Error
			return dishes, err
		},
		Fetch:   s.remote.FetchDishes,
		Persist: s.persistDishes,
		Enrich:  toDishViews,
		Filled:  s.filled("dish"),
	}
}

// persistDishes stores the dishes in one batch, then fetches and stores each
// dish's inventory links and addons with at most FanOutLimit dishes in flight.
// A failing child never stops the others; all failures are reported together.
func (s *SyncService) persistDishes(ctx context.Context, storeID string, dishes []models.Dish) error {
	for i := range dishes {
		if dishes[i].StoreID == "" {
			dishes[i].StoreID = storeID
		}
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	if err := insertIgnore(ctx, s.db, "dish", dishes); err != nil {
		if KindOf(err) != KindPartialInsert {
			return err
		}
		record(err)
	}

	limit := s.FanOutLimit
	if limit < 1 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)

	for i := range dishes {
		dish := dishes[i]
		g.Go(func() error {
			for _, err := range s.fillDishChildren(ctx, dish) {
				record(err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) == 0 {
		return nil
	}
	return newSyncError(KindPartialInsert, "dish",
		fmt.Sprintf("%d dish child operation(s) failed", len(errs)), errors.Join(errs...))
}

func (s *SyncService) fillDishChildren(ctx context.Context, dish models.Dish) []error {
	var errs []error
	log := utils.ErrorLogger.WithFields(logrus.Fields{"entity": "dish", "id": dish.ID})

	links, err := s.remote.FetchDishInventory(ctx, dish.ID)
	if err != nil {
		log.Errorf("Failed to fetch dish inventory: %v", err)
		errs = append(errs, fmt.Errorf("dish %s inventory: %w", dish.ID, err))
	}
	for i := range links {
		if links[i].DishID == "" {
			links[i].DishID = dish.ID
		}
		if err := insertOne(ctx, s.db, &links[i]); err != nil {
			log.Errorf("Failed to insert dish inventory %s: %v", links[i].ID, err)
			errs = append(errs, fmt.Errorf("dish inventory %s: %w", links[i].ID, err))
		}
	}

	addons, err := s.remote.FetchDishAddons(ctx, dish.ID)
	if err != nil {
		log.Errorf("Failed to fetch dish addons: %v", err)
		errs = append(errs, fmt.Errorf("dish %s addons: %w", dish.ID, err))
	}
	for i := range addons {
		if addons[i].DishID == "" {
			addons[i].DishID = dish.ID
		}
		if addons[i].StoreID == "" {
			addons[i].StoreID = dish.StoreID
		}
		if err := insertOne(ctx, s.db, &addons[i]); err != nil {
			log.Errorf("Failed to insert addon %s: %v", addons[i].ID, err)
			errs = append(errs, fmt.Errorf("addon %s: %w", addons[i].ID, err))
		}
	}
	return errs
}

// GetDishes returns the menu with category, creator, addons and stock links.
func (s *SyncService) GetDishes(ctx context.Context, storeID string) ([]models.DishView, error) {
	if strings.TrimSpace(storeID) == "" {
		return []models.DishView{}, newSyncError(KindValidation, "getDishes", storeIDRequiredMsg, nil)
	}
	return s.dishesReader().Load(ctx, storeID)
}

func (s *SyncService) DeleteDish(ctx context.Context, id string) Result {
	id = strings.TrimSpace(id)
	if id == "" {
		return failure(newSyncError(KindValidation, "deleteDish", "Dish ID is required", nil))
	}
	return s.mutate(ctx, mutation{
		op:     "deleteDish",
		entity: "dish",
		label:  "Dish",
		id:     id,
		apply: func(tx *gorm.DB) *gorm.DB {
			return tx.Where(map[string]interface{}{"id": id}).Delete(&models.Dish{})
		},
		method:  http.MethodPatch,
		path:    dishDeletePath(id),
		message: "Dish deleted successfully",
		event:   EventRecordDeleted,
	})
}
