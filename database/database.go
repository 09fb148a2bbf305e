package database

import (
	"fmt"
	"log"

	config "github.com/badboujee/storefront/configs"
	"github.com/badboujee/storefront/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	if err := AutoMigrate(DB); err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// AutoMigrate creates the schema plus the partial unique index that keeps two
// non-CANCELLED bookings out of the same (date, time_slot) pair. The index is
// the real enforcement point for slot exclusivity; the application-level
// conflict check only exists for friendlier error messages.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Service{},
		&models.Booking{},
		&models.Order{},
		&models.OrderItem{},
		&models.Setting{},
		&models.Content{},
	)
	if err != nil {
		return err
	}

	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_slot
		 ON bookings (date, time_slot) WHERE status <> 'CANCELLED'`,
	).Error
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		Name:     config.ConfigOr("ADMIN_NAME", "Admin User"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "ADMIN",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedSettings writes the default booking schedule the first time the service
// boots against an empty database.
func SeedSettings() {
	defaults := []models.Setting{
		{Key: "business_hours_start", Value: "09:00", Type: "string"},
		{Key: "business_hours_end", Value: "17:00", Type: "string"},
		{Key: "booking_time_slots", Value: `["9:00 AM","10:00 AM","11:00 AM","12:00 PM","1:00 PM","2:00 PM","3:00 PM","4:00 PM","5:00 PM"]`, Type: "json"},
		{Key: "blackout_dates", Value: `[]`, Type: "json"},
		{Key: "special_hours", Value: `{}`, Type: "json"},
	}

	for _, setting := range defaults {
		var count int64
		if err := DB.Model(&models.Setting{}).Where("key = ?", setting.Key).Count(&count).Error; err != nil {
			log.Fatalf("🔥 Failed to check setting %s: %v", setting.Key, err)
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&setting).Error; err != nil {
			log.Fatalf("🔥 Failed to seed setting %s: %v", setting.Key, err)
		}
	}

	log.Println("✅ Default settings seeded")
}
