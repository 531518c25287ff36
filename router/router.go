package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/hub"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/services"
)

func SetupRouter(cfg *config.AppConfig, svc *services.SyncService, session services.SessionStore, h *hub.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.LoggerMiddleware())

	syncCtrl := controllers.NewSyncController(svc)
	wsCtrl := controllers.NewWSController(h, cfg.CORSOrigins)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      RENDERER OPERATIONS
	// ----------------------------------------------------------------
	ipc := r.Group("/ipc")
	{
		ipc.GET("/getStores/:organizationId", syncCtrl.GetStores)
		ipc.GET("/getEmployeesByStore/:storeId", syncCtrl.GetEmployeesByStore)
		ipc.GET("/getEmployees/:storeId", syncCtrl.GetEmployees)
		ipc.GET("/getRoles/:storeId", syncCtrl.GetRoles)
		ipc.GET("/getCategories/:storeId", syncCtrl.GetCategories)
		ipc.GET("/getInventory/:storeId", syncCtrl.GetInventory)
		ipc.GET("/getDishes/:storeId", syncCtrl.GetDishes)
		ipc.GET("/getAddonsByStoreId/:storeId", syncCtrl.GetAddonsByStoreID)
		ipc.GET("/getCustomers/:storeId", syncCtrl.GetCustomers)
		ipc.GET("/getOrders/:storeId", syncCtrl.GetOrders)
		ipc.GET("/getTables/:storeId", syncCtrl.GetTables)
		ipc.GET("/getProfile/:employeeId", syncCtrl.GetProfile)
		ipc.GET("/getEmployeeData", syncCtrl.GetEmployeeData)

		limiter := middlewares.NewRateLimiter(cfg.LoginRatePerMinute)
		ipc.POST("/employeeLogin", limiter.RateLimit(), syncCtrl.EmployeeLogin)
		ipc.POST("/logoutEmployee", syncCtrl.LogoutEmployee)

		ipc.PATCH("/deleteCategory/:id", syncCtrl.DeleteCategory)
		ipc.PATCH("/updateCategoryStatus", syncCtrl.UpdateCategoryStatus)
		ipc.PATCH("/deleteDish/:id", syncCtrl.DeleteDish)
		ipc.PATCH("/deleteAddons/:id", syncCtrl.DeleteAddons)
		ipc.POST("/syncEmployees/:storeId", syncCtrl.SyncEmployees)
	}

	syncGroup := r.Group("/sync")
	{
		syncGroup.GET("/status", syncCtrl.SyncStatus)
		syncGroup.POST("/flush", syncCtrl.FlushOutbox)
	}

	r.GET("/ws", middlewares.RequireSession(session), wsCtrl.Handle)

	return r
}
