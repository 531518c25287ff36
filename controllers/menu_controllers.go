package controllers

import (
	"github.com/gin-gonic/gin"
)

func (sc *SyncController) GetCategories(c *gin.Context) {
	categories, err := sc.Service.GetCategories(c.Request.Context(), c.Param("storeId"))
	respondRead(c, categories, err)
}

func (sc *SyncController) GetInventory(c *gin.Context) {
	items, err := sc.Service.GetInventory(c.Request.Context(), c.Param("storeId"))
	respondRead(c, items, err)
}

func (sc *SyncController) GetDishes(c *gin.Context) {
	dishes, err := sc.Service.GetDishes(c.Request.Context(), c.Param("storeId"))
	respondRead(c, dishes, err)
}

func (sc *SyncController) GetAddonsByStoreID(c *gin.Context) {
	addons, err := sc.Service.GetAddonsByStoreID(c.Request.Context(), c.Param("storeId"))
	respondRead(c, addons, err)
}

func (sc *SyncController) DeleteCategory(c *gin.Context) {
	respondResult(c, sc.Service.DeleteCategory(c.Request.Context(), c.Param("id")))
}

// UpdateCategoryStatus takes {categoryId, newStatus}. A non-boolean
// newStatus is rejected by the service.
func (sc *SyncController) UpdateCategoryStatus(c *gin.Context) {
	var req struct {
		CategoryID string      `json:"categoryId"`
		NewStatus  interface{} `json:"newStatus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondResult(c, invalidBody("updateCategoryStatus"))
		return
	}

	var status *bool
	if v, ok := req.NewStatus.(bool); ok {
		status = &v
	}
	respondResult(c, sc.Service.UpdateCategoryStatus(c.Request.Context(), req.CategoryID, status))
}

func (sc *SyncController) DeleteDish(c *gin.Context) {
	respondResult(c, sc.Service.DeleteDish(c.Request.Context(), c.Param("id")))
}

func (sc *SyncController) DeleteAddons(c *gin.Context) {
	respondResult(c, sc.Service.DeleteAddons(c.Request.Context(), c.Param("id")))
}
