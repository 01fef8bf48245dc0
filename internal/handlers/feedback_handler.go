package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly/internal/helpers"
	"github.com/gatherly/gatherly/internal/models"
)

type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateFeedback accepts one rating per registered attendee per event.
func CreateFeedback(c *gin.Context) {
	var req FeedbackRequest
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

	var registration models.Attendee
	if err := gormDB.Where("event_id = ? AND user_id = ?", event.ID, user.ID).First(&registration).Error; err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "Only registered attendees can leave feedback.")
		return
	}

	feedback := models.EventFeedback{
		EventID: event.ID,
		UserID:  user.ID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := gormDB.Create(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusConflict, "You have already left feedback for this event.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create feedback.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Feedback recorded.",
		"feedback": feedback,
	})
}

func ListFeedback(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	event, ok := loadEvent(c, gormDB)
	if !ok {
		return
	}

	var feedback []models.EventFeedback
	err := gormDB.Where("event_id = ?", event.ID).Preload("User").
		Order("created_at DESC").Find(&feedback).Error
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}
