package handlers

import (
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gatherly/gatherly/internal/middleware"
	"github.com/gatherly/gatherly/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Event{},
		&models.Attendee{},
		&models.EventCommunication{},
		&models.EventFeedback{},
		&models.RevokedToken{},
	))

	for _, table := range []string{"attendees", "event_communications", "event_feedbacks", "events", "categories", "revoked_tokens", "users"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	return db
}

func setupTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "handler-test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))

	public := r.Group("/v1")
	{
		public.POST("/register", Register)
		public.POST("/login", Login)
		public.GET("/public/events", PublicListEvents)
		public.GET("/public/events/:id", PublicGetEvent)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.POST("/logout", Logout)
		protected.GET("/me", GetProfile)
		protected.PUT("/events/:id", UpdateEvent)
		protected.DELETE("/events/:id", DeleteEvent)
		protected.GET("/events/:id/analytics", GetEventAnalytics)
		protected.POST("/events/:id/attendees", RegisterForEvent)
		protected.GET("/events/:id/attendees", ListAttendees)
		protected.DELETE("/events/:id/attendees/:attendeeId", CancelRegistration)
		protected.POST("/events/:id/attendees/:attendeeId/checkin", CheckInAttendee)
	}

	return r
}

func makeTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Handler Test",
		Email:    fmt.Sprintf("%s@example.com", uuid.New().String()),
		Password: "$2a$10$invalidhashfortestingonly000000000000000000000000000",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func makeTestEvent(t *testing.T, db *gorm.DB, organizer *models.User, maxAttendees *int) *models.Event {
	t.Helper()
	event := &models.Event{
		Name:         "Handler Test Event",
		Description:  "An event for handler tests",
		Location:     "NYC",
		StartTime:    time.Now().Add(48 * time.Hour),
		EndTime:      time.Now().Add(50 * time.Hour),
		OrganizerID:  organizer.ID,
		MaxAttendees: maxAttendees,
		EventType:    models.EventTypeInPerson,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func makeToken(t *testing.T, user *models.User) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"jti":     uuid.New().String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte("handler-test-secret"))
	require.NoError(t, err)
	return tokenString
}

func doRequest(r *gin.Engine, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
