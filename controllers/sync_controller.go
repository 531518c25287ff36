package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// SyncErrorHeader carries the failure kind of a read that fell back to an
// empty or partial list.
const SyncErrorHeader = "X-Sync-Error"

// SyncController exposes the sync handlers to the renderer.
type SyncController struct {
	Service *services.SyncService
}

func NewSyncController(svc *services.SyncService) *SyncController {
	return &SyncController{Service: svc}
}

// respondRead always answers 200 with an array.
func respondRead[T any](c *gin.Context, items []T, err error) {
	if err != nil {
		c.Header(SyncErrorHeader, string(services.KindOf(err)))
	}
	utils.RespondList(c, http.StatusOK, items)
}

func statusFor(res services.Result) int {
	if res.Success {
		return http.StatusOK
	}
	if res.Err == nil {
		return http.StatusInternalServerError
	}
	switch res.Err.Kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFoundLocally:
		return http.StatusNotFound
	case services.KindSession:
		return http.StatusUnauthorized
	case services.KindOffline:
		return http.StatusServiceUnavailable
	case services.KindRemote, services.KindMalformedResponse:
		var re *services.RemoteError
		if errors.As(res.Err, &re) && re.StatusCode >= 400 && re.StatusCode < 500 {
			return re.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondResult(c *gin.Context, res services.Result) {
	c.JSON(statusFor(res), res)
}
