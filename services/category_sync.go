package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-pos/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *SyncService) categoriesReader() ReadThrough[models.Category, models.Category] {
	return ReadThrough[models.Category, models.Category]{
		Entity:  "category",
		Present: anyRow[models.Category](s.db, "storeId"),
		Query: func(ctx context.Context, storeID string) ([]models.Category, error) {
			var categories []models.Category
			err := s.db.WithContext(ctx).
				Where(byStore(storeID)).
				Order(clause.OrderByColumn{Column: clause.Column{Name: "categoryIndex"}}).
				Order("name").
				Find(&categories).Error
			return categories, err
		},
		Fetch: s.remote.FetchCategories,
		Persist: func(ctx context.Context, storeID string, categories []models.Category) error {
			for i := range categories {
				if categories[i].StoreID == "" {
					categories[i].StoreID = storeID
				}
			}
			return insertIgnore(ctx, s.db, "category", categories)
		},
		Enrich: same[models.Category],
		Filled: s.filled("category"),
	}
}

func (s *SyncService) GetCategories(ctx context.Context, storeID string) ([]models.Category, error) {
	if strings.TrimSpace(storeID) == "" {
		return []models.Category{}, newSyncError(KindValidation, "getCategories", storeIDRequiredMsg, nil)
	}
	return s.categoriesReader().Load(ctx, storeID)
}

// DeleteCategory soft deletes a category locally, then on the remote.
func (s *SyncService) DeleteCategory(ctx context.Context, id string) Result {
	id = strings.TrimSpace(id)
	if id == "" {
		return failure(newSyncError(KindValidation, "deleteCategory", "Category ID is required", nil))
	}
	return s.mutate(ctx, mutation{
		op:     "deleteCategory",
		entity: "category",
		label:  "Category",
		id:     id,
		apply: func(tx *gorm.DB) *gorm.DB {
			return tx.Where(map[string]interface{}{"id": id}).Delete(&models.Category{})
		},
		method:  http.MethodPatch,
		path:    categoryDeletePath(id),
		message: "Category deleted successfully",
		event:   EventRecordDeleted,
	})
}

// UpdateCategoryStatus toggles a category in place. newStatus must be set.
func (s *SyncService) UpdateCategoryStatus(ctx context.Context, categoryID string, newStatus *bool) Result {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return failure(newSyncError(KindValidation, "updateCategoryStatus", "Category ID is required", nil))
	}
	if newStatus == nil {
		return failure(newSyncError(KindValidation, "updateCategoryStatus", "Status must be a boolean", nil))
	}
	status := *newStatus

	return s.mutate(ctx, mutation{
		op:     "updateCategoryStatus",
		entity: "category",
		label:  "Category",
		id:     categoryID,
		apply: func(tx *gorm.DB) *gorm.DB {
			return tx.Model(&models.Category{}).
				Where(map[string]interface{}{"id": categoryID}).
				Updates(map[string]interface{}{
					"status":    status,
					"updatedAt": time.Now(),
				})
		},
		method:  http.MethodPatch,
		path:    categoryStatusPath(categoryID),
		body:    map[string]bool{"status": status},
		message: "Category status updated to " + models.StatusLabel(status),
		event:   EventCategoryStatusUpdated,
	})
}
