package routes

import (
	"github.com/badboujee/storefront/handlers"
	"github.com/badboujee/storefront/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/bookings", handlers.CreateBooking)

	admin := api.Group("/admin/bookings", middleware.Protected(), middleware.AdminRequired())
	admin.Get("", handlers.AdminListBookings)
	admin.Post("", handlers.CreateBooking)
	admin.Get("/:id", handlers.AdminGetBooking)
	admin.Patch("/:id", handlers.UpdateBooking)
	admin.Delete("/:id", handlers.DeleteBooking)
}
