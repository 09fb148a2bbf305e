package handlers

import (
	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/models"
	"github.com/gofiber/fiber/v2"
)

func ListServices(c *fiber.Ctx) error {
	query := database.DB.Where("active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var services []models.Service
	if err := query.Order("name asc").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(services)
}

type serviceWithBookings struct {
	models.Service
	BookingCount int64 `json:"booking_count"`
}

func AdminListServices(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Service{})

	switch c.Query("active") {
	case "true":
		query = query.Where("active = ?", true)
	case "false":
		query = query.Where("active = ?", false)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var services []models.Service
	if err := query.Order("name asc").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	out := make([]serviceWithBookings, 0, len(services))
	for _, service := range services {
		var count int64
		database.DB.Model(&models.Booking{}).
			Where("service_id = ? AND status <> ?", service.ID, "CANCELLED").
			Count(&count)
		out = append(out, serviceWithBookings{Service: service, BookingCount: count})
	}

	return c.JSON(out)
}

type ServiceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    *string `json:"category"`
	Active      *bool   `json:"active"`
}

func AdminCreateService(c *fiber.Ctx) error {
	var req ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		Category:    req.Category,
		Active:      true,
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := database.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create service"})
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

func AdminUpdateService(c *fiber.Ctx) error {
	var req UpdateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var service models.Service
	if err := database.DB.First(&service, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = req.Description
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Duration must be positive"})
		}
		service.Duration = *req.Duration
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price must be positive"})
		}
		service.Price = *req.Price
	}
	if req.Category != nil {
		service.Category = req.Category
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := database.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update service"})
	}

	return c.JSON(service)
}

func AdminDeleteService(c *fiber.Ctx) error {
	var service models.Service
	if err := database.DB.First(&service, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	// Services referenced by historical bookings are deactivated, not removed.
	var booked int64
	if err := database.DB.Model(&models.Booking{}).
		Where("service_id = ?", service.ID).Count(&booked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if booked > 0 {
		service.Active = false
		if err := database.DB.Save(&service).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate service"})
		}
		return c.JSON(fiber.Map{"message": "Service has bookings and was deactivated instead of deleted"})
	}

	if err := database.DB.Delete(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete service"})
	}

	return c.JSON(fiber.Map{"message": "Service deleted successfully"})
}
