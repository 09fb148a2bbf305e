package routes

import (
	"github.com/badboujee/storefront/handlers"
	"github.com/badboujee/storefront/middleware"
	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/create-payment-intent", handlers.CreatePaymentIntent)
	api.Post("/confirm-payment", handlers.ConfirmPayment)
	api.Get("/orders/:id", handlers.GetOrder)

	admin := api.Group("/admin/orders", middleware.Protected(), middleware.AdminRequired())
	admin.Get("", handlers.AdminListOrders)
	admin.Get("/:id", handlers.GetOrder)
	admin.Patch("/:id", handlers.AdminUpdateOrderStatus)
}
