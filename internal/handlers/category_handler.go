package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gatherly/gatherly/internal/helpers"
	"github.com/gatherly/gatherly/internal/models"
)

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description"`
}

func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithValidationError(c, "Invalid input. Please check your fields.", nil)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := gormDB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusConflict, "Category already exists.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create category.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Category created successfully.",
		"category_id": category.ID,
	})
}

func ListCategories(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	pagination, err := helpers.ParsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := gormDB.Model(&models.Category{})
	var totalCount int64
	query.Count(&totalCount)

	var categories []models.Category
	err = query.Offset(pagination.Offset).Limit(pagination.Limit).
		Order("name ASC").Find(&categories).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving categories.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":  categories,
		"total":       totalCount,
		"page":        pagination.Page,
		"limit":       pagination.Limit,
		"total_pages": helpers.TotalPages(totalCount, pagination.Limit),
	})
}

func GetCategory(c *gin.Context) {
	categoryID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var category models.Category
	if err := gormDB.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Category not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving category.")
		return
	}

	c.JSON(http.StatusOK, category)
}

func UpdateCategory(c *gin.Context) {
	categoryID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithValidationError(c, "Invalid input. Please check your fields.", nil)
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var category models.Category
	if err := gormDB.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Category not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding category.")
		return
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Slug = models.Slugify(req.Name)

	if err := gormDB.Save(&category).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update category.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully.",
		"category": category,
	})
}

func DeleteCategory(c *gin.Context) {
	categoryID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	result := gormDB.Where("id = ?", categoryID).Delete(&models.Category{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete category.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Category not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully.",
	})
}
