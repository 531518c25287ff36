package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/models"
)

func seedCategory(t *testing.T, env *testEnv, id string, status bool) models.Category {
	t.Helper()
	past := time.Now().Add(-time.Hour)
	c := models.Category{ID: id, Name: "Cat " + id, StoreID: "S1", Status: status, CreatedAt: past, UpdatedAt: past}
	require.NoError(t, env.db.Create(&c).Error)
	return c
}

func TestUpdateCategoryStatusSucceedsWhenRemoteFails(t *testing.T) {
	env := newTestEnv(t, true)
	before := seedCategory(t, env, "c1", true)
	env.remote.on(http.MethodPatch, "/category/status/c1", http.StatusInternalServerError, map[string]string{"message": "down"})

	status := false
	res := env.svc.UpdateCategoryStatus(context.Background(), "c1", &status)

	assert.True(t, res.Success)
	assert.Equal(t, "c1", res.ID)
	assert.Equal(t, "Category status updated to inactive", res.Message)
	assert.Equal(t, 1, env.remote.hitCount(http.MethodPatch, "/category/status/c1"))

	var sent map[string]bool
	require.NoError(t, json.Unmarshal(env.remote.lastBody(http.MethodPatch, "/category/status/c1"), &sent))
	assert.Equal(t, map[string]bool{"status": false}, sent)

	var after models.Category
	require.NoError(t, env.db.First(&after, "id = ?", "c1").Error)
	assert.False(t, after.Status)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

	counts, err := env.svc.Outbox.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Pending)
}

func TestUpdateCategoryStatusActivates(t *testing.T) {
	env := newTestEnv(t, true)
	seedCategory(t, env, "c1", false)
	env.remote.data(http.MethodPatch, "/category/status/c1", map[string]interface{}{"id": "c1"})

	status := true
	res := env.svc.UpdateCategoryStatus(context.Background(), "c1", &status)

	assert.True(t, res.Success)
	assert.Equal(t, "Category status updated to active", res.Message)
	assert.Contains(t, env.events.names(), EventCategoryStatusUpdated)

	counts, err := env.svc.Outbox.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Pending)
}

func TestUpdateCategoryStatusValidation(t *testing.T) {
	env := newTestEnv(t, true)
	seedCategory(t, env, "c1", true)

	res := env.svc.UpdateCategoryStatus(context.Background(), "c1", nil)
	assert.False(t, res.Success)
	assert.Equal(t, "Status must be a boolean", res.Message)
	assert.Equal(t, KindValidation, res.Err.Kind)

	status := true
	res = env.svc.UpdateCategoryStatus(context.Background(), "", &status)
	assert.False(t, res.Success)
	assert.Equal(t, "Category ID is required", res.Message)

	var c models.Category
	require.NoError(t, env.db.First(&c, "id = ?", "c1").Error)
	assert.True(t, c.Status)
	assert.Equal(t, 0, env.remote.total())
}

func TestDeleteCategoryNotFoundLocally(t *testing.T) {
	env := newTestEnv(t, true)

	res := env.svc.DeleteCategory(context.Background(), "missing")

	assert.False(t, res.Success)
	assert.Equal(t, "Category not found locally", res.Message)
	assert.Equal(t, KindNotFoundLocally, res.Err.Kind)
	assert.Equal(t, 0, env.remote.total())
}

func TestDeleteCategoryOfflineSkipsRemote(t *testing.T) {
	env := newTestEnv(t, false)
	seedCategory(t, env, "c1", true)

	res := env.svc.DeleteCategory(context.Background(), "c1")

	assert.True(t, res.Success)
	assert.Equal(t, "Category deleted successfully", res.Message)
	assert.Equal(t, 0, env.remote.total())

	var c models.Category
	require.NoError(t, env.db.Unscoped().First(&c, "id = ?", "c1").Error)
	assert.True(t, c.DeletedAt.Valid)

	categories, err := env.svc.GetCategories(context.Background(), "S1")
	require.NoError(t, err)
	assert.Empty(t, categories)
	assert.Equal(t, 0, env.remote.total())

	counts, err := env.svc.Outbox.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Pending)
}

func TestDeleteCategoryOnlineCallsRemote(t *testing.T) {
	env := newTestEnv(t, true)
	seedCategory(t, env, "c1", true)
	env.remote.data(http.MethodPatch, "/category/delete/c1", map[string]interface{}{"id": "c1"})

	res := env.svc.DeleteCategory(context.Background(), "c1")

	assert.True(t, res.Success)
	assert.Equal(t, 1, env.remote.hitCount(http.MethodPatch, "/category/delete/c1"))
	assert.Contains(t, env.events.names(), EventRecordDeleted)
}

func TestDeleteCategoryTwiceIsNotFound(t *testing.T) {
	env := newTestEnv(t, false)
	seedCategory(t, env, "c1", true)

	require.True(t, env.svc.DeleteCategory(context.Background(), "c1").Success)
	res := env.svc.DeleteCategory(context.Background(), "c1")
	assert.False(t, res.Success)
	assert.Equal(t, KindNotFoundLocally, res.Err.Kind)
}

func TestMutationsWithoutOutboxAreDropped(t *testing.T) {
	env := newTestEnv(t, false)
	env.svc.Outbox = nil
	seedCategory(t, env, "c1", true)

	res := env.svc.DeleteCategory(context.Background(), "c1")
	assert.True(t, res.Success)

	var count int64
	env.db.Model(&models.SyncOutbox{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
