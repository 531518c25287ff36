package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func (sc *SyncController) GetStores(c *gin.Context) {
	stores, err := sc.Service.GetStores(c.Request.Context(), c.Param("organizationId"))
	respondRead(c, stores, err)
}

func (sc *SyncController) GetCustomers(c *gin.Context) {
	customers, err := sc.Service.GetCustomers(c.Request.Context(), c.Param("storeId"))
	respondRead(c, customers, err)
}

func (sc *SyncController) GetOrders(c *gin.Context) {
	orders, err := sc.Service.GetOrders(c.Request.Context(), c.Param("storeId"))
	respondRead(c, orders, err)
}

func (sc *SyncController) GetTables(c *gin.Context) {
	tables, err := sc.Service.GetTables(c.Request.Context(), c.Param("storeId"))
	respondRead(c, tables, err)
}

// SyncStatus reports connectivity and the outbox backlog.
func (sc *SyncController) SyncStatus(c *gin.Context) {
	status, err := sc.Service.SyncStatus(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sync status", status)
}

// FlushOutbox replays queued mutations immediately.
func (sc *SyncController) FlushOutbox(c *gin.Context) {
	report, err := sc.Service.FlushOutbox(c.Request.Context())
	if err != nil {
		code := http.StatusInternalServerError
		if services.KindOf(err) == services.KindValidation {
			code = http.StatusConflict
		}
		utils.RespondError(c, code, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Outbox flushed", report)
}
