package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/models"
	"github.com/badboujee/storefront/notifications"
)

// SendBookingReminders mails every customer with a confirmed appointment
// tomorrow. Runs daily.
func SendBookingReminders() {
	log.Println("Running job: SendBookingReminders...")

	tomorrow := time.Now().AddDate(0, 0, 1)
	date := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)

	var upcomingBookings []models.Booking
	err := database.DB.
		Preload("Service").
		Where("date = ? AND status = ?", date, "CONFIRMED").
		Find(&upcomingBookings).Error
	if err != nil {
		log.Printf("Error checking for upcoming bookings: %v", err)
		return
	}

	if len(upcomingBookings) == 0 {
		return
	}

	for _, booking := range upcomingBookings {
		log.Printf("Sending reminder for booking ID: %s", booking.ID)

		emailSubject := "Reminder: Your Appointment is Tomorrow!"
		emailBody := fmt.Sprintf(
			"<h1>Appointment Reminder</h1><p>Hi %s,</p><p>This is a friendly reminder that your <b>%s</b> appointment is tomorrow at %s.</p>",
			booking.CustomerName,
			booking.Service.Name,
			booking.TimeSlot,
		)

		go notifications.SendEmail(booking.CustomerName, booking.CustomerEmail, emailSubject, emailBody)
	}
}
