package handlers

import (
	"encoding/json"
	"time"

	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/models"
	"github.com/badboujee/storefront/services"
	"github.com/gofiber/fiber/v2"
)

// parseBookingDate normalizes a YYYY-MM-DD label to midnight UTC so equality
// against stored booking dates (and the slot unique index) behaves.
func parseBookingDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func GetAvailability(c *fiber.Ctx) error {
	dateStr := c.Query("date")
	if dateStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date is required"})
	}

	date, err := parseBookingDate(dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	settings := services.LoadBookingSettings(database.DB)

	var bookings []models.Booking
	if err := database.DB.
		Preload("Service").
		Where("date = ? AND status <> ?", date, "CANCELLED").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load bookings"})
	}

	blackout := services.IsBlackoutDate(settings.BlackoutDates, date)
	availability := services.BuildAvailability(settings.BusinessHours.TimeSlots, bookings, blackout)

	var service *models.Service
	if serviceID := c.Query("serviceId"); serviceID != "" {
		var s models.Service
		if err := database.DB.First(&s, "id = ?", serviceID).Error; err == nil {
			service = &s
		}
	}

	return c.JSON(fiber.Map{
		"date":          dateStr,
		"availability":  availability,
		"service":       service,
		"businessHours": settings.BusinessHours,
	})
}

type AvailabilitySettingsRequest struct {
	BusinessHours *struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"businessHours"`
	TimeSlots     []string          `json:"timeSlots"`
	BlackoutDates []string          `json:"blackoutDates"`
	SpecialHours  map[string]string `json:"specialHours"`
}

func UpdateAvailabilitySettings(c *fiber.Ctx) error {
	var req AvailabilitySettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	start, end := "09:00", "17:00"
	if req.BusinessHours != nil {
		if req.BusinessHours.Start != "" {
			start = req.BusinessHours.Start
		}
		if req.BusinessHours.End != "" {
			end = req.BusinessHours.End
		}
	}

	slots := req.TimeSlots
	if len(slots) == 0 {
		slots = services.LoadBookingSettings(database.DB).BusinessHours.TimeSlots
	}
	slotsJSON, _ := json.Marshal(slots)

	blackout := req.BlackoutDates
	if blackout == nil {
		blackout = []string{}
	}
	blackoutJSON, _ := json.Marshal(blackout)

	special := req.SpecialHours
	if special == nil {
		special = map[string]string{}
	}
	specialJSON, _ := json.Marshal(special)

	updates := []struct {
		key, value, valueType string
	}{
		{"business_hours_start", start, "string"},
		{"business_hours_end", end, "string"},
		{"booking_time_slots", string(slotsJSON), "json"},
		{"blackout_dates", string(blackoutJSON), "json"},
		{"special_hours", string(specialJSON), "json"},
	}

	for _, u := range updates {
		if err := services.UpsertSetting(database.DB, u.key, u.value, u.valueType); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save settings"})
		}
	}

	return c.JSON(fiber.Map{"message": "Availability settings updated successfully"})
}
