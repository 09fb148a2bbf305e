package handlers

import (
	"time"

	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/models"
	"github.com/gofiber/fiber/v2"
)

func GetDashboard(c *fiber.Ctx) error {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfMonth.AddDate(0, -1, 0)

	var currentMonthOrders, lastMonthOrders []models.Order
	database.DB.Where("created_at >= ?", startOfMonth).Find(&currentMonthOrders)
	database.DB.Where("created_at >= ? AND created_at < ?", startOfLastMonth, startOfMonth).Find(&lastMonthOrders)

	var totalCustomers, totalBookings, pendingOrders, lowStockProducts int64
	database.DB.Model(&models.User{}).Where("role = ?", "CUSTOMER").Count(&totalCustomers)
	database.DB.Model(&models.Booking{}).Count(&totalBookings)
	database.DB.Model(&models.Order{}).Where("status = ?", "PENDING").Count(&pendingOrders)
	database.DB.Model(&models.Product{}).Where("stock < ? AND active = ?", 10, true).Count(&lowStockProducts)

	var recentOrders []models.Order
	database.DB.Order("created_at desc").Limit(5).Find(&recentOrders)

	var recentBookings []models.Booking
	database.DB.Preload("Service").Order("created_at desc").Limit(5).Find(&recentBookings)

	var currentMonthRevenue, lastMonthRevenue float64
	for _, order := range currentMonthOrders {
		currentMonthRevenue += order.Total
	}
	for _, order := range lastMonthOrders {
		lastMonthRevenue += order.Total
	}

	revenueChange := 0.0
	if lastMonthRevenue > 0 {
		revenueChange = (currentMonthRevenue - lastMonthRevenue) / lastMonthRevenue * 100
	}

	return c.JSON(fiber.Map{
		"revenue": fiber.Map{
			"currentMonth": currentMonthRevenue,
			"lastMonth":    lastMonthRevenue,
			"change":       revenueChange,
		},
		"orders": fiber.Map{
			"currentMonth": len(currentMonthOrders),
			"lastMonth":    len(lastMonthOrders),
			"pending":      pendingOrders,
		},
		"totalCustomers":   totalCustomers,
		"totalBookings":    totalBookings,
		"lowStockProducts": lowStockProducts,
		"recentOrders":     recentOrders,
		"recentBookings":   recentBookings,
	})
}
