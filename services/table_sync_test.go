package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/models"
)

func strPtr(s string) *string { return &s }

func viewsByID(views []models.TableView) map[string]models.TableView {
	out := make(map[string]models.TableView, len(views))
	for _, v := range views {
		out[v.ID] = v
	}
	return out
}

func TestToTableViewsResolvesMergeForest(t *testing.T) {
	views := viewsByID(toTableViews([]models.Table{
		{ID: "t1", Name: "T1"},
		{ID: "t2", Name: "T2", MergedIntoID: strPtr("t1")},
		{ID: "t3", Name: "T3", MergedIntoID: strPtr("t2")},
		{ID: "t4", Name: "T4", MergedIntoID: strPtr("t1")},
		{ID: "t5", Name: "T5"},
	}))

	assert.Equal(t, "t1", views["t1"].RootID)
	assert.Equal(t, "t1", views["t3"].RootID)
	assert.Equal(t, "t5", views["t5"].RootID)
	assert.ElementsMatch(t, []string{"t2", "t4"}, views["t1"].MergedTables)
	assert.Equal(t, []string{"t3"}, views["t2"].MergedTables)
	assert.NotNil(t, views["t5"].MergedTables)
	assert.Empty(t, views["t5"].MergedTables)
}

func TestToTableViewsStopsOnBadLinks(t *testing.T) {
	views := viewsByID(toTableViews([]models.Table{
		{ID: "a", MergedIntoID: strPtr("b")},
		{ID: "b", MergedIntoID: strPtr("a")},
		{ID: "c", MergedIntoID: strPtr("missing")},
		{ID: "d", MergedIntoID: strPtr("")},
	}))

	assert.Equal(t, "b", views["a"].RootID)
	assert.Equal(t, "a", views["b"].RootID)
	assert.Equal(t, "c", views["c"].RootID)
	assert.Equal(t, "d", views["d"].RootID)
}

func TestGetTablesFillsAndStampsStore(t *testing.T) {
	env := newTestEnv(t, true)
	env.remote.data(http.MethodGet, "/table/get/S1", []map[string]interface{}{
		{"id": "t1", "name": "A1", "chairs": 4, "status": "occupied"},
		{"id": "t2", "name": "A2", "chairs": 2, "mergedIntoId": "t1"},
	})

	tables, err := env.svc.GetTables(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "A1", tables[0].Name)
	assert.Equal(t, "S1", tables[0].StoreID)
	assert.Equal(t, []string{"t2"}, tables[0].MergedTables)
	assert.Equal(t, "t1", tables[1].RootID)
	assert.Equal(t, "available", tables[1].Status)
}
