package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly/internal/helpers"
	"github.com/gatherly/gatherly/internal/models"
	"github.com/gatherly/gatherly/internal/policies"
	"github.com/gatherly/gatherly/internal/services"
)

func loadEvent(c *gin.Context, gormDB *gorm.DB) (*models.Event, bool) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil, false
	}

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return nil, false
		}
		helpers.RespondWithServiceError(c, err)
		return nil, false
	}
	return &event, true
}

func loadAttendee(c *gin.Context, gormDB *gorm.DB, event *models.Event) (*models.Attendee, bool) {
	attendeeID, ok := parseUUIDParam(c, "attendeeId")
	if !ok {
		return nil, false
	}

	var attendee models.Attendee
	if err := gormDB.Where("id = ? AND event_id = ?", attendeeID, event.ID).First(&attendee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Attendee not found.")
			return nil, false
		}
		helpers.RespondWithServiceError(c, err)
		return nil, false
	}
	return &attendee, true
}

// RegisterForEvent registers the authenticated user. All business
// rules live in services.Register; this handler only evaluates the
// policy and maps errors.
func RegisterForEvent(c *gin.Context) {
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

	if !policies.CanRegister(user, event) {
		helpers.RespondWithError(c, http.StatusForbidden, "You cannot register for this event.")
		return
	}

	attendee, err := services.Register(gormDB, event.ID, user.ID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Registered successfully.",
		"attendee": attendee,
	})
}

func ListAttendees(c *gin.Context) {
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

	if !policies.CanListAttendees(user, event) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view attendees.")
		return
	}

	pagination, err := helpers.ParsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := gormDB.Model(&models.Attendee{}).Where("event_id = ?", event.ID)

	var totalCount int64
	query.Count(&totalCount)

	var attendees []models.Attendee
	err = query.Preload("User").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Order("created_at ASC").Find(&attendees).Error
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendees":   attendees,
		"total":       totalCount,
		"page":        pagination.Page,
		"limit":       pagination.Limit,
		"total_pages": helpers.TotalPages(totalCount, pagination.Limit),
	})
}

// CancelRegistration deletes the attendee row. Only the registrant may
// cancel; a checked-in attendee may still cancel.
func CancelRegistration(c *gin.Context) {
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

	attendee, ok := loadAttendee(c, gormDB, event)
	if !ok {
		return
	}

	if !policies.CanCancelRegistration(user, attendee) {
		helpers.RespondWithError(c, http.StatusForbidden, "You can only cancel your own registration.")
		return
	}

	if err := services.Cancel(gormDB, attendee); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration cancelled."})
}

// CheckInAttendee marks an attendee present. Organizer or admin.
func CheckInAttendee(c *gin.Context) {
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

	attendee, ok := loadAttendee(c, gormDB, event)
	if !ok {
		return
	}

	if !policies.CanCheckInAttendee(user, attendee, event) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to check in this attendee.")
		return
	}

	if err := services.CheckIn(gormDB, attendee); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Checked in successfully.",
		"attendee": attendee,
	})
}

type selfCheckInRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

// SelfCheckIn lets a registrant of a virtual event check themselves in
// with their signed QR payload.
func SelfCheckIn(c *gin.Context) {
	var req selfCheckInRequest
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

	attendeeID, err := helpers.ParseCheckInPayload(req.QRData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR payload.")
		return
	}

	var attendee models.Attendee
	if err := gormDB.Where("id = ? AND event_id = ?", attendeeID, event.ID).First(&attendee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Attendee not found.")
			return
		}
		helpers.RespondWithServiceError(c, err)
		return
	}

	if !helpers.ValidateCheckInPayload(attendee.ID, attendee.EventID, attendee.UserID, req.QRData) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR payload.")
		return
	}

	if !policies.CanCheckInAttendee(user, &attendee, event) {
		helpers.RespondWithError(c, http.StatusForbidden, "Self check-in is only available for virtual events.")
		return
	}

	if err := services.CheckIn(gormDB, &attendee); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Checked in successfully.",
		"attendee": attendee,
	})
}

// GetCheckInQR renders the attendee's signed check-in code as a PNG.
// Visible to the attendee, the organizer and admins.
func GetCheckInQR(c *gin.Context) {
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

	attendee, ok := loadAttendee(c, gormDB, event)
	if !ok {
		return
	}

	if !policies.CanViewAttendee(user, attendee, event) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view this attendee.")
		return
	}

	payload := helpers.BuildCheckInPayload(attendee.ID, attendee.EventID, attendee.UserID)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
