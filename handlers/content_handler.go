package handlers

import (
	"errors"
	"strconv"

	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AdminListContent(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 {
		limit = 50
	}

	query := database.DB.Model(&models.Content{})

	if contentType := c.Query("type"); contentType != "" && contentType != "all" {
		query = query.Where("type = ?", contentType)
	}
	switch c.Query("published") {
	case "true":
		query = query.Where("published = ?", true)
	case "false":
		query = query.Where("published = ?", false)
	}

	var content []models.Content
	if err := query.Order("updated_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&content).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(content)
}

func AdminGetContent(c *fiber.Ctx) error {
	var content models.Content
	if err := database.DB.First(&content, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Content not found"})
	}
	return c.JSON(content)
}

type ContentRequest struct {
	Type      string `json:"type" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Slug      string `json:"slug" validate:"required"`
	Content   string `json:"content"`
	Published *bool  `json:"published"`
	Metadata  any    `json:"metadata"`
}

func AdminCreateContent(c *fiber.Ctx) error {
	var req ContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	content := models.Content{
		Type:     req.Type,
		Title:    req.Title,
		Slug:     req.Slug,
		Body:     req.Content,
		Metadata: toJSON(req.Metadata),
	}
	if req.Published != nil {
		content.Published = *req.Published
	}

	if err := database.DB.Create(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Content with this slug already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create content"})
	}

	return c.Status(fiber.StatusCreated).JSON(content)
}

type UpdateContentRequest struct {
	Type      *string `json:"type,omitempty"`
	Title     *string `json:"title,omitempty"`
	Slug      *string `json:"slug,omitempty"`
	Content   *string `json:"content,omitempty"`
	Published *bool   `json:"published,omitempty"`
	Metadata  any     `json:"metadata,omitempty"`
}

func AdminUpdateContent(c *fiber.Ctx) error {
	var req UpdateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var content models.Content
	if err := database.DB.First(&content, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Content not found"})
	}

	if req.Type != nil {
		content.Type = *req.Type
	}
	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Slug != nil {
		content.Slug = *req.Slug
	}
	if req.Content != nil {
		content.Body = *req.Content
	}
	if req.Published != nil {
		content.Published = *req.Published
	}
	if req.Metadata != nil {
		content.Metadata = toJSON(req.Metadata)
	}

	if err := database.DB.Save(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Content with this slug already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update content"})
	}

	return c.JSON(content)
}

func AdminDeleteContent(c *fiber.Ctx) error {
	var content models.Content
	if err := database.DB.First(&content, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Content not found"})
	}

	if err := database.DB.Delete(&content).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete content"})
	}

	return c.JSON(fiber.Map{"message": "Content deleted successfully"})
}
