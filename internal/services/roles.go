package services

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly/internal/models"
)

// PromoteToOrganizer upgrades a member to organizer. Role transitions
// happen only here so they stay auditable; registration never touches
// roles, and admins are never downgraded.
func PromoteToOrganizer(db *gorm.DB, user *models.User) error {
	if user.Role != models.RoleMember {
		return nil
	}

	if err := db.Model(user).Update("role", models.RoleOrganizer).Error; err != nil {
		return err
	}
	user.Role = models.RoleOrganizer

	log.Info().
		Str("user_id", user.ID.String()).
		Str("role", models.RoleOrganizer).
		Msg("user promoted")
	return nil
}
