package services

import (
	"time"

	"github.com/badboujee/storefront/models"
)

type SlotAvailability struct {
	TimeSlot  string           `json:"timeSlot"`
	Available bool             `json:"available"`
	Bookings  []models.Booking `json:"bookings"`
}

// BuildAvailability maps the canonical slot list against the day's
// non-cancelled bookings. Slots are atomic labels: a booking blocks exactly
// the slot whose label it carries, regardless of the service's duration.
func BuildAvailability(slots []string, bookings []models.Booking, blackout bool) []SlotAvailability {
	availability := make([]SlotAvailability, 0, len(slots))

	for _, slot := range slots {
		occupying := make([]models.Booking, 0)
		for _, booking := range bookings {
			if booking.TimeSlot == slot {
				occupying = append(occupying, booking)
			}
		}

		availability = append(availability, SlotAvailability{
			TimeSlot:  slot,
			Available: !blackout && len(occupying) == 0,
			Bookings:  occupying,
		})
	}

	return availability
}

// IsBlackoutDate reports whether the date appears in the configured blackout
// list (YYYY-MM-DD labels).
func IsBlackoutDate(blackoutDates []string, date time.Time) bool {
	label := date.Format("2006-01-02")
	for _, d := range blackoutDates {
		if d == label {
			return true
		}
	}
	return false
}
