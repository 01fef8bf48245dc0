package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	// TranslateError turns unique-constraint violations into
	// gorm.ErrDuplicatedKey, which the registration service maps to
	// a conflict.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Event{},
		&models.Attendee{},
		&models.EventCommunication{},
		&models.EventFeedback{},
		&models.RevokedToken{},
	)
	if err != nil {
		return nil, err
	}

	seedCategories(db)

	return db, nil
}

func seedCategories(db *gorm.DB) {
	categories := []models.Category{
		{Name: "Tech", Description: "Technology meetups, talks and hackathons"},
		{Name: "Music", Description: "Concerts, festivals and open mics"},
		{Name: "Sports", Description: "Games, tournaments and fitness"},
		{Name: "Business", Description: "Networking, conferences and workshops"},
		{Name: "Arts", Description: "Exhibitions, theatre and film"},
		{Name: "Community", Description: "Local gatherings and volunteering"},
	}

	for _, category := range categories {
		var existingCategory models.Category
		result := db.Where("name = ?", category.Name).First(&existingCategory)
		if result.Error != nil {
			db.Create(&category)
		}
	}
}
