package handlers

import (
	"errors"
	"sort"

	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/metrics"
	"github.com/badboujee/storefront/models"
	"github.com/badboujee/storefront/notifications"
	"github.com/badboujee/storefront/services"
	"github.com/badboujee/storefront/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errSlotConflict = errors.New("time slot is already booked")

type CreateBookingRequest struct {
	ServiceID     string  `json:"serviceId" validate:"required,uuid"`
	CustomerName  string  `json:"customerName" validate:"required"`
	CustomerEmail string  `json:"customerEmail" validate:"required,email"`
	CustomerPhone string  `json:"customerPhone" validate:"required"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot      string  `json:"timeSlot" validate:"required"`
	Notes         *string `json:"notes,omitempty"`
	UserID        *string `json:"userId,omitempty"`
}

func CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	serviceID, _ := uuid.Parse(req.ServiceID)
	date, _ := parseBookingDate(req.Date)

	var service models.Service
	if err := database.DB.First(&service, "id = ? AND active = ?", serviceID, true).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Service not found or inactive"})
	}

	settings := services.LoadBookingSettings(database.DB)
	if services.IsBlackoutDate(settings.BlackoutDates, date) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bookings are closed on the selected date"})
	}

	var userID *uuid.UUID
	if req.UserID != nil {
		if parsed, err := uuid.Parse(*req.UserID); err == nil {
			userID = &parsed
		}
	}

	booking := models.Booking{
		ServiceID:     serviceID,
		UserID:        userID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Date:          date,
		TimeSlot:      req.TimeSlot,
		Status:        "CONFIRMED",
		Notes:         req.Notes,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Pre-check gives the friendly error; the partial unique index on
		// (date, time_slot) is what actually holds under concurrent requests.
		var conflicting int64
		if err := tx.Model(&models.Booking{}).
			Where("date = ? AND time_slot = ? AND status <> ?", date, req.TimeSlot, "CANCELLED").
			Count(&conflicting).Error; err != nil {
			return err
		}
		if conflicting > 0 {
			return errSlotConflict
		}

		return tx.Create(&booking).Error
	})

	if err != nil {
		if errors.Is(err, errSlotConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
			metrics.BookingConflicts.Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Time slot is already booked"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	booking.Service = service
	metrics.BookingsCreated.Inc()
	websocket.Publish("booking.created", booking)

	go func() {
		notifications.SendEmail(booking.CustomerName, booking.CustomerEmail,
			"Your Booking is Confirmed!", notifications.BookingConfirmationHTML(booking))
		notifications.SendAdminEmail("You Have a New Booking!", notifications.BookingAdminHTML(booking))
	}()

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func AdminListBookings(c *fiber.Ctx) error {
	query := database.DB.Preload("Service").Preload("User")

	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := parseBookingDate(dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
		}
		query = query.Where("date = ?", date)
	}
	if serviceID := c.Query("serviceId"); serviceID != "" {
		query = query.Where("service_id = ?", serviceID)
	}

	var bookings []models.Booking
	if err := query.Order("date asc").Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	// Slot labels don't sort lexically ("1:00 PM" lands before "10:00 AM"),
	// so same-day bookings follow the configured slot order instead.
	settings := services.LoadBookingSettings(database.DB)
	slotIndex := make(map[string]int, len(settings.BusinessHours.TimeSlots))
	for i, slot := range settings.BusinessHours.TimeSlots {
		slotIndex[slot] = i
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].Date.Equal(bookings[j].Date) {
			return bookings[i].Date.Before(bookings[j].Date)
		}
		ii, iKnown := slotIndex[bookings[i].TimeSlot]
		jj, jKnown := slotIndex[bookings[j].TimeSlot]
		if iKnown && jKnown {
			return ii < jj
		}
		if iKnown != jKnown {
			return iKnown
		}
		return bookings[i].TimeSlot < bookings[j].TimeSlot
	})

	return c.JSON(bookings)
}

func AdminGetBooking(c *fiber.Ctx) error {
	var booking models.Booking
	if err := database.DB.Preload("Service").Preload("User").
		First(&booking, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	return c.JSON(booking)
}

type UpdateBookingRequest struct {
	ServiceID     *string `json:"serviceId,omitempty"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Date          *string `json:"date,omitempty"`
	TimeSlot      *string `json:"timeSlot,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Status        *string `json:"status,omitempty"`
}

func UpdateBooking(c *fiber.Ctx) error {
	bookingID := c.Params("id")

	var req UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if req.ServiceID != nil {
		serviceID, err := uuid.Parse(*req.ServiceID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service id"})
		}
		var service models.Service
		if err := database.DB.First(&service, "id = ? AND active = ?", serviceID, true).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Service not found or inactive"})
		}
		booking.ServiceID = serviceID
	}

	if req.CustomerName != nil {
		booking.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		booking.CustomerEmail = *req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		booking.CustomerPhone = *req.CustomerPhone
	}
	if req.Notes != nil {
		booking.Notes = req.Notes
	}
	if req.Status != nil {
		switch *req.Status {
		case "CONFIRMED", "CANCELLED", "COMPLETED", "NO_SHOW":
			booking.Status = *req.Status
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking status"})
		}
	}

	// The conflict re-check only runs when the slot actually moves, and it
	// excludes the booking's own row so a no-op reschedule succeeds.
	if req.Date != nil || req.TimeSlot != nil {
		newDate := booking.Date
		if req.Date != nil {
			parsed, err := parseBookingDate(*req.Date)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
			}
			newDate = parsed

			settings := services.LoadBookingSettings(database.DB)
			if services.IsBlackoutDate(settings.BlackoutDates, newDate) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bookings are closed on the selected date"})
			}
		}
		newTimeSlot := booking.TimeSlot
		if req.TimeSlot != nil {
			newTimeSlot = *req.TimeSlot
		}

		var conflicting int64
		if err := database.DB.Model(&models.Booking{}).
			Where("id <> ? AND date = ? AND time_slot = ? AND status <> ?",
				booking.ID, newDate, newTimeSlot, "CANCELLED").
			Count(&conflicting).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
		}
		if conflicting > 0 {
			metrics.BookingConflicts.Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Time slot is already booked"})
		}

		booking.Date = newDate
		booking.TimeSlot = newTimeSlot
	}

	if err := database.DB.Save(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			metrics.BookingConflicts.Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Time slot is already booked"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
	}

	database.DB.Preload("Service").First(&booking, "id = ?", booking.ID)
	return c.JSON(booking)
}

func DeleteBooking(c *fiber.Ctx) error {
	bookingID := c.Params("id")

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if err := database.DB.Delete(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete booking"})
	}

	return c.JSON(fiber.Map{"message": "Booking deleted successfully"})
}
