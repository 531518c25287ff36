package services

import (
	"context"
	"strings"

	"github.com/yeremiapane/restaurant-pos/models"
)

// toTableViews resolves each table's merge root and lists the tables merged
// directly into it. Dangling or cyclic links stop at the last table seen.
func toTableViews(tables []models.Table) []models.TableView {
	byID := make(map[string]*models.Table, len(tables))
	children := make(map[string][]string, len(tables))
	for i := range tables {
		t := &tables[i]
		byID[t.ID] = t
		if t.MergedIntoID != nil && *t.MergedIntoID != "" {
			children[*t.MergedIntoID] = append(children[*t.MergedIntoID], t.ID)
		}
	}

	rootOf := func(t *models.Table) string {
		seen := map[string]bool{t.ID: true}
		cur := t
		for cur.MergedIntoID != nil && *cur.MergedIntoID != "" {
			parent, ok := byID[*cur.MergedIntoID]
			if !ok || seen[parent.ID] {
				break
			}
			seen[parent.ID] = true
			cur = parent
		}
		return cur.ID
	}

	views := make([]models.TableView, 0, len(tables))
	for i := range tables {
		merged := children[tables[i].ID]
		if merged == nil {
			merged = []string{}
		}
		views = append(views, models.TableView{
			Table:        tables[i],
			RootID:       rootOf(&tables[i]),
			MergedTables: merged,
		})
	}
	return views
}

func (s *SyncService) tablesReader() ReadThrough[models.Table, models.TableView] {
	return ReadThrough[models.Table, models.TableView]{
		Entity:  "table",
		Present: anyRow[models.Table](s.db, "storeId"),
		Query: func(ctx context.Context, storeID string) ([]models.Table, error) {
			var tables []models.Table
			err := s.db.WithContext(ctx).Where(byStore(storeID)).Order("name").Find(&tables).Error
			return tables, err
		},
		Fetch: s.remote.FetchTables,
		Persist: func(ctx context.Context, storeID string, tables []models.Table) error {
			for i := range tables {
				if tables[i].StoreID == "" {
					tables[i].StoreID = storeID
				}
			}
			return insertIgnore(ctx, s.db, "table", tables)
		},
		Enrich: toTableViews,
		Filled: s.filled("table"),
	}
}

func (s *SyncService) GetTables(ctx context.Context, storeID string) ([]models.TableView, error) {
	if strings.TrimSpace(storeID) == "" {
		return []models.TableView{}, newSyncError(KindValidation, "getTables", storeIDRequiredMsg, nil)
	}
	return s.tablesReader().Load(ctx, storeID)
}
