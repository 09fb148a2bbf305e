package services

import (
	"encoding/json"
	"log"

	"github.com/badboujee/storefront/models"
	"gorm.io/gorm"
)

var defaultTimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

type BusinessHours struct {
	Start     string   `json:"start"`
	End       string   `json:"end"`
	TimeSlots []string `json:"timeSlots"`
}

type BookingSettings struct {
	BusinessHours BusinessHours     `json:"businessHours"`
	BlackoutDates []string          `json:"blackoutDates"`
	SpecialHours  map[string]string `json:"specialHours"`
}

// LoadBookingSettings reads the schedule configuration from the settings table
// on every call. Missing or malformed keys fall back to the defaults rather
// than failing the request.
func LoadBookingSettings(db *gorm.DB) BookingSettings {
	settings := BookingSettings{
		BusinessHours: BusinessHours{
			Start:     "09:00",
			End:       "17:00",
			TimeSlots: defaultTimeSlots,
		},
		BlackoutDates: []string{},
		SpecialHours:  map[string]string{},
	}

	var rows []models.Setting
	if err := db.Where("key IN ?", []string{
		"business_hours_start", "business_hours_end",
		"booking_time_slots", "blackout_dates", "special_hours",
	}).Find(&rows).Error; err != nil {
		log.Printf("🔥 Failed to load booking settings, using defaults: %v", err)
		return settings
	}

	for _, row := range rows {
		switch row.Key {
		case "business_hours_start":
			settings.BusinessHours.Start = row.Value
		case "business_hours_end":
			settings.BusinessHours.End = row.Value
		case "booking_time_slots":
			var slots []string
			if err := json.Unmarshal([]byte(row.Value), &slots); err == nil && len(slots) > 0 {
				settings.BusinessHours.TimeSlots = slots
			}
		case "blackout_dates":
			var dates []string
			if err := json.Unmarshal([]byte(row.Value), &dates); err == nil {
				settings.BlackoutDates = dates
			}
		case "special_hours":
			var hours map[string]string
			if err := json.Unmarshal([]byte(row.Value), &hours); err == nil {
				settings.SpecialHours = hours
			}
		}
	}

	return settings
}

// UpsertSetting writes one key/value settings row, creating it when absent.
func UpsertSetting(db *gorm.DB, key, value, valueType string) error {
	var existing models.Setting
	err := db.Where("key = ?", key).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(&models.Setting{Key: key, Value: value, Type: valueType}).Error
	}
	if err != nil {
		return err
	}

	existing.Value = value
	existing.Type = valueType
	return db.Save(&existing).Error
}
