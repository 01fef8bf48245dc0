package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly/internal/helpers"
	"github.com/gatherly/gatherly/internal/models"
	"github.com/gatherly/gatherly/internal/services"
)

func GetProfile(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var user models.User
	if err := gormDB.Preload("Events").Preload("Registrations.Event").
		Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	attended, err := services.CountEventsAttended(gormDB, user.ID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	user.EventsAttended = attended

	c.JSON(http.StatusOK, user)
}

func UpdateProfile(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	user, ok := currentUser(c, gormDB)
	if !ok {
		return
	}

	if name := c.PostForm("name"); name != "" {
		user.Name = name
	}
	if bio, present := c.GetPostForm("bio"); present {
		user.Bio = bio
	}
	if interests, present := c.GetPostFormArray("interests"); present {
		user.Interests = datatypes.JSONSlice[string](interests)
	}
	if links, present := c.GetPostFormMap("social_links"); present {
		socialLinks := map[string]interface{}{}
		for k, v := range links {
			socialLinks[k] = v
		}
		user.SocialLinks = datatypes.JSONMap(socialLinks)
	}

	pictureFile, err := c.FormFile("profile_picture")
	if err == nil {
		picturePath, err := helpers.SaveImage(c, pictureFile, "profile_pictures")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		user.ProfilePicture = picturePath
	}

	if err := gormDB.Save(user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully.",
		"user":    user,
	})
}

// DeleteAccount removes the user and cascades to owned events and
// registrations, in one transaction.
func DeleteAccount(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	user, ok := currentUser(c, gormDB)
	if !ok {
		return
	}

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		var ownedEventIDs []string
		if err := tx.Model(&models.Event{}).Where("organizer_id = ?", user.ID).
			Pluck("id", &ownedEventIDs).Error; err != nil {
			return err
		}

		if len(ownedEventIDs) > 0 {
			if err := tx.Where("event_id IN ?", ownedEventIDs).Delete(&models.Attendee{}).Error; err != nil {
				return err
			}
			if err := tx.Where("event_id IN ?", ownedEventIDs).Delete(&models.EventCommunication{}).Error; err != nil {
				return err
			}
			if err := tx.Where("event_id IN ?", ownedEventIDs).Delete(&models.EventFeedback{}).Error; err != nil {
				return err
			}
			if err := tx.Where("organizer_id = ?", user.ID).Delete(&models.Event{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Attendee{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(user).Error
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted."})
}
