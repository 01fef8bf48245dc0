package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/gatherly/internal/helpers"
	"github.com/gatherly/gatherly/internal/policies"
	"github.com/gatherly/gatherly/internal/services"
)

func GetEventAnalytics(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	user, ok := currentUser(c, gormDB)
	if !ok {
		return
	}

	event, ok := loadEvent(c, gormDB)
	if !ok {
		return
	}

	if !policies.CanViewAnalytics(user, event) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view analytics.")
		return
	}

	analytics, err := services.ComputeEventAnalytics(gormDB, event)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event_id":  event.ID,
		"analytics": analytics,
	})
}
