package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/gatherly/internal/helpers"
	"github.com/gatherly/gatherly/internal/models"
	"github.com/gatherly/gatherly/internal/policies"
)

type CommunicationRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// CreateCommunication records a message from the organizer to the
// event's attendees. Messages are rows; there is no delivery pipeline.
func CreateCommunication(c *gin.Context) {
	var req CommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithValidationError(c, "Invalid input. Please check your fields.", nil)
		return
	}

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

	if !policies.CanSendCommunications(user, event) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to message attendees.")
		return
	}

	communication := models.EventCommunication{
		EventID:  event.ID,
		SenderID: user.ID,
		Subject:  req.Subject,
		Body:     req.Body,
	}

	if err := gormDB.Create(&communication).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create communication.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Communication recorded.",
		"communication": communication,
	})
}

// ListCommunications is visible to the organizer, admins and the
// event's registered attendees.
func ListCommunications(c *gin.Context) {
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

	if !policies.CanSendCommunications(user, event) {
		var registration models.Attendee
		err := gormDB.Where("event_id = ? AND user_id = ?", event.ID, user.ID).First(&registration).Error
		if err != nil {
			helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view communications.")
			return
		}
	}

	var communications []models.EventCommunication
	err := gormDB.Where("event_id = ?", event.ID).Preload("Sender").
		Order("created_at DESC").Find(&communications).Error
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"communications": communications})
}
