package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly/internal/helpers"
	"github.com/gatherly/gatherly/internal/models"
	"github.com/gatherly/gatherly/internal/policies"
	"github.com/gatherly/gatherly/internal/services"
)

type eventForm struct {
	Name                 string
	Slogan               string
	Description          string
	Location             string
	StartTime            time.Time
	EndTime              time.Time
	MaxAttendees         *int
	TicketPrice          int
	IsFree               bool
	RegistrationDeadline *time.Time
	AllowWaitlist        bool
	MeetingLink          string
	EventType            string
	Audience             string
	CategoryID           *uuid.UUID
}

func parseEventForm(c *gin.Context) (*eventForm, map[string]string) {
	fieldErrors := map[string]string{}
	form := &eventForm{
		Name:        c.PostForm("name"),
		Slogan:      c.PostForm("slogan"),
		Description: c.PostForm("description"),
		Location:    c.PostForm("location"),
		MeetingLink: c.PostForm("meeting_link"),
		Audience:    c.PostForm("audience"),
	}

	if form.Name == "" {
		fieldErrors["name"] = "name is required"
	}
	if form.Description == "" {
		fieldErrors["description"] = "description is required"
	}
	if form.Location == "" {
		fieldErrors["location"] = "location is required"
	}

	startTime, err := time.Parse(time.RFC3339, c.PostForm("start_time"))
	if err != nil {
		fieldErrors["start_time"] = "invalid start time format"
	}
	endTime, err := time.Parse(time.RFC3339, c.PostForm("end_time"))
	if err != nil {
		fieldErrors["end_time"] = "invalid end time format"
	}
	form.StartTime = startTime
	form.EndTime = endTime
	if len(fieldErrors) == 0 && !form.EndTime.After(form.StartTime) {
		fieldErrors["end_time"] = "end time must be after start time"
	}

	if deadlineStr := c.PostForm("registration_deadline"); deadlineStr != "" {
		deadline, err := time.Parse(time.RFC3339, deadlineStr)
		if err != nil {
			fieldErrors["registration_deadline"] = "invalid registration deadline format"
		} else if !deadline.Before(form.StartTime) {
			fieldErrors["registration_deadline"] = "registration deadline must be before start time"
		} else {
			form.RegistrationDeadline = &deadline
		}
	}

	if maxStr := c.PostForm("max_attendees"); maxStr != "" {
		max, err := helpers.StringToInt(maxStr)
		if err != nil || max < 1 {
			fieldErrors["max_attendees"] = "invalid max attendees"
		} else {
			form.MaxAttendees = &max
		}
	}

	if priceStr := c.PostForm("ticket_price"); priceStr != "" {
		price, err := helpers.StringToInt(priceStr)
		if err != nil || price < 0 {
			fieldErrors["ticket_price"] = "invalid ticket price"
		} else {
			form.TicketPrice = price
		}
	}
	form.IsFree = form.TicketPrice == 0

	form.AllowWaitlist = c.PostForm("allow_waitlist") == "true"

	form.EventType = c.DefaultPostForm("event_type", models.EventTypeInPerson)
	switch form.EventType {
	case models.EventTypeInPerson, models.EventTypeVirtual, models.EventTypeHybrid:
	default:
		fieldErrors["event_type"] = "invalid event type"
	}

	if categoryStr := c.PostForm("category_id"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			fieldErrors["category_id"] = "invalid category id"
		} else {
			form.CategoryID = &categoryID
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}
	return form, nil
}

func (form *eventForm) apply(event *models.Event) {
	event.Name = form.Name
	event.Slogan = form.Slogan
	event.Description = form.Description
	event.Location = form.Location
	event.StartTime = form.StartTime
	event.EndTime = form.EndTime
	event.MaxAttendees = form.MaxAttendees
	event.TicketPrice = form.TicketPrice
	event.IsFree = form.IsFree
	event.RegistrationDeadline = form.RegistrationDeadline
	event.AllowWaitlist = form.AllowWaitlist
	event.MeetingLink = form.MeetingLink
	event.EventType = form.EventType
	event.Audience = form.Audience
	event.CategoryID = form.CategoryID
}

func CreateEvent(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	user, ok := currentUser(c, gormDB)
	if !ok {
		return
	}

	if !policies.CanCreateEvent(user) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to create events.")
		return
	}

	form, fieldErrors := parseEventForm(c)
	if fieldErrors != nil {
		helpers.RespondWithValidationError(c, "Invalid input. Please check your fields.", fieldErrors)
		return
	}

	if form.CategoryID != nil {
		var category models.Category
		if err := gormDB.Where("id = ?", *form.CategoryID).First(&category).Error; err != nil {
			helpers.RespondWithValidationError(c, "Invalid input. Please check your fields.",
				map[string]string{"category_id": "unknown category"})
			return
		}
	}

	event := models.Event{ID: uuid.New(), OrganizerID: user.ID}
	form.apply(&event)

	imageFile, err := c.FormFile("image")
	if err == nil {
		imagePath, err := helpers.SaveImage(c, imageFile, "event_images")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		event.ImagePath = imagePath
	}

	// The first event turns a member into an organizer. Promotion and
	// insert commit together so a failed insert never leaves a
	// promoted member with no owned event.
	err = gormDB.Transaction(func(tx *gorm.DB) error {
		if err := services.PromoteToOrganizer(tx, user); err != nil {
			return err
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func GetEvent(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var event models.Event
	query := services.WithAttendeeCount(gormDB.Model(&models.Event{}))
	if err := query.Preload("Category").Preload("Organizer").
		Where("events.id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func buildEventFilters(c *gin.Context) (services.EventFilters, map[string]string) {
	fieldErrors := map[string]string{}
	filters := services.EventFilters{
		Category:  c.Query("category"),
		Place:     c.Query("place"),
		Search:    c.Query("search"),
		EventType: c.Query("event_type"),
		Audience:  c.Query("audience"),
	}

	if organizerStr := c.Query("organizer_id"); organizerStr != "" {
		organizerID, err := uuid.Parse(organizerStr)
		if err != nil {
			fieldErrors["organizer_id"] = "invalid organizer id"
		} else {
			filters.Organizer = &organizerID
		}
	}

	if startStr := c.Query("start_date"); startStr != "" {
		start, err := helpers.ParseDate(startStr)
		if err != nil {
			fieldErrors["start_date"] = "invalid start date"
		} else {
			filters.StartDate = &start
		}
	}

	if endStr := c.Query("end_date"); endStr != "" {
		end, err := helpers.ParseDate(endStr)
		if err != nil {
			fieldErrors["end_date"] = "invalid end date"
		} else {
			filters.EndDate = &end
		}
	}

	if len(fieldErrors) > 0 {
		return filters, fieldErrors
	}
	return filters, nil
}

func listEvents(c *gin.Context, gormDB *gorm.DB, filters services.EventFilters) {
	pagination, err := helpers.ParsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := services.ApplyFilters(gormDB.Model(&models.Event{}), filters)

	var totalCount int64
	query.Count(&totalCount)

	var events []models.Event
	err = services.WithAttendeeCount(query).
		Preload("Category").Preload("Organizer").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Order("events.created_at DESC").Find(&events).Error
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"total":       totalCount,
		"page":        pagination.Page,
		"limit":       pagination.Limit,
		"total_pages": helpers.TotalPages(totalCount, pagination.Limit),
	})
}

func ListEvents(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	filters, fieldErrors := buildEventFilters(c)
	if fieldErrors != nil {
		helpers.RespondWithValidationError(c, "Invalid filter parameters.", fieldErrors)
		return
	}

	// attendee_id is privileged: admins and organizers only.
	if attendeeStr := c.Query("attendee_id"); attendeeStr != "" {
		user, ok := currentUser(c, gormDB)
		if !ok {
			return
		}
		if !services.CanViewAttendeeFilters(gormDB, user) {
			helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to filter by attendee.")
			return
		}
		attendeeID, err := uuid.Parse(attendeeStr)
		if err != nil {
			helpers.RespondWithValidationError(c, "Invalid filter parameters.",
				map[string]string{"attendee_id": "invalid attendee id"})
			return
		}
		filters.AttendeeID = &attendeeID
	}

	listEvents(c, gormDB, filters)
}

func UpdateEvent(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
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

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithServiceError(c, err)
		return
	}

	if !policies.CanUpdateEvent(user, &event) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to update this event.")
		return
	}

	form, fieldErrors := parseEventForm(c)
	if fieldErrors != nil {
		helpers.RespondWithValidationError(c, "Invalid input. Please check your fields.", fieldErrors)
		return
	}

	form.apply(&event)

	imageFile, err := c.FormFile("image")
	if err == nil {
		imagePath, err := helpers.SaveImage(c, imageFile, "event_images")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if event.ImagePath != "" {
			if err := helpers.DeleteFile(event.ImagePath); err != nil {
				log.Warn().Err(err).Str("path", event.ImagePath).Msg("failed to delete old event image")
			}
		}
		event.ImagePath = imagePath
	}

	if err := gormDB.Save(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func DeleteEvent(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
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

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithServiceError(c, err)
		return
	}

	if !policies.CanDeleteEvent(user, &event) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to delete this event.")
		return
	}

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.Attendee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully.",
	})
}
