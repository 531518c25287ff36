package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
)

func (sc *SyncController) GetEmployeesByStore(c *gin.Context) {
	views, err := sc.Service.GetEmployeesByStore(c.Request.Context(), c.Param("storeId"))
	respondRead(c, views, err)
}

func (sc *SyncController) GetEmployees(c *gin.Context) {
	records, err := sc.Service.GetEmployees(c.Request.Context(), c.Param("storeId"))
	respondRead(c, records, err)
}

func (sc *SyncController) GetRoles(c *gin.Context) {
	roles, err := sc.Service.GetRoles(c.Request.Context(), c.Param("storeId"))
	respondRead(c, roles, err)
}

func (sc *SyncController) GetProfile(c *gin.Context) {
	respondResult(c, sc.Service.GetProfile(c.Request.Context(), c.Param("employeeId")))
}

func (sc *SyncController) GetEmployeeData(c *gin.Context) {
	respondResult(c, sc.Service.GetEmployeeData())
}

// EmployeeLogin accepts the PIN as a string or a JSON number.
func (sc *SyncController) EmployeeLogin(c *gin.Context) {
	var req struct {
		Email string      `json:"email"`
		Pin   interface{} `json:"pin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondResult(c, invalidBody("employeeLogin"))
		return
	}

	var pin string
	switch v := req.Pin.(type) {
	case string:
		pin = v
	case float64:
		pin = strconv.FormatFloat(v, 'f', -1, 64)
	}
	respondResult(c, sc.Service.EmployeeLogin(c.Request.Context(), req.Email, pin))
}

func (sc *SyncController) LogoutEmployee(c *gin.Context) {
	respondResult(c, sc.Service.LogoutEmployee())
}

func (sc *SyncController) SyncEmployees(c *gin.Context) {
	respondResult(c, sc.Service.SyncEmployees(c.Request.Context(), c.Param("storeId")))
}

func invalidBody(op string) services.Result {
	err := &services.SyncError{Kind: services.KindValidation, Op: op, Message: "Invalid request body"}
	return services.Result{Success: false, Message: err.Message, Err: err}
}
