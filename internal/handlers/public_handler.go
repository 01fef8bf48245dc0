package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/gatherly/internal/helpers"
	"github.com/gatherly/gatherly/internal/models"
	"github.com/gatherly/gatherly/internal/services"
)

// Anonymous browse endpoints. Same filter surface as the
// authenticated listing minus the privileged attendee_id filter.

func PublicListEvents(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	filters, fieldErrors := buildEventFilters(c)
	if fieldErrors != nil {
		helpers.RespondWithValidationError(c, "Invalid filter parameters.", fieldErrors)
		return
	}

	listEvents(c, gormDB, filters)
}

func PublicGetEvent(c *gin.Context) {
	GetEvent(c)
}

// FeaturedEvents returns the most popular upcoming events by
// registration count.
func FeaturedEvents(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var events []models.Event
	query := services.WithAttendeeCount(gormDB.Model(&models.Event{})).
		Where("events.start_time > ?", time.Now()).
		Preload("Category").Preload("Organizer").
		Order("attendee_count DESC, events.start_time ASC").
		Limit(6)
	if err := query.Find(&events).Error; err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
