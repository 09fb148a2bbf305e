package handlers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/metrics"
	"github.com/badboujee/storefront/models"
	"github.com/badboujee/storefront/notifications"
	"github.com/badboujee/storefront/payments"
	"github.com/badboujee/storefront/services"
	"github.com/badboujee/storefront/utils"
	"github.com/badboujee/storefront/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentIntentItem struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

type CreatePaymentIntentRequest struct {
	Items        []PaymentIntentItem `json:"items" validate:"required,min=1,dive"`
	CustomerInfo struct {
		Name  string  `json:"name" validate:"required"`
		Email string  `json:"email" validate:"required,email"`
		Phone *string `json:"phone,omitempty"`
	} `json:"customerInfo" validate:"required"`
	ShippingAddress map[string]any `json:"shippingAddress"`
	BillingAddress  map[string]any `json:"billingAddress"`
}

func CreatePaymentIntent(c *fiber.Ctx) error {
	var req CreatePaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Stock is checked but not reserved here; the conditional decrement at
	// confirmation is the enforcement point.
	var subtotal float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", item.ProductID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Product not found: %s", item.ProductID),
			})
		}
		if !product.Active {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Product is not available: %s", product.Name),
			})
		}
		if product.Stock < item.Quantity {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Insufficient stock for: %s", product.Name),
			})
		}

		price := product.UnitPrice()
		subtotal += price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     price,
		})
	}

	breakdown := services.ComputeBreakdown(subtotal)

	intent, err := payments.CreatePaymentIntent(breakdown.Total, req.CustomerInfo.Email, req.CustomerInfo.Name)
	if err != nil {
		log.Printf("🔥 Payment intent creation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment intent"})
	}

	order := models.Order{
		OrderNumber:     utils.GenerateOrderNumber(),
		CustomerEmail:   req.CustomerInfo.Email,
		CustomerName:    req.CustomerInfo.Name,
		CustomerPhone:   req.CustomerInfo.Phone,
		Status:          "PENDING",
		PaymentStatus:   "PENDING",
		PaymentID:       &intent.ID,
		Subtotal:        breakdown.Subtotal,
		Tax:             breakdown.Tax,
		Shipping:        breakdown.Shipping,
		Total:           breakdown.Total,
		ShippingAddress: toJSON(req.ShippingAddress),
		BillingAddress:  toJSON(req.BillingAddress),
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		return tx.Create(&orderItems).Error
	})
	if err != nil {
		log.Printf("🔥 Failed to store order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}

	metrics.OrdersCreated.Inc()

	return c.JSON(fiber.Map{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
		"orderId":         order.ID,
		"orderNumber":     order.OrderNumber,
		"total":           breakdown.Total,
		"demoMode":        payments.DemoMode(),
		"breakdown":       breakdown,
	})
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
	OrderID         string `json:"orderId" validate:"required,uuid"`
}

func ConfirmPayment(c *fiber.Ctx) error {
	var req ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment intent ID and order ID are required"})
	}

	orderID, _ := uuid.Parse(req.OrderID)

	var order models.Order
	if err := database.DB.Preload("Items.Product").First(&order, "id = ?", orderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	// Re-confirming a settled order is a no-op; inventory must only ever be
	// decremented once per order.
	if order.PaymentStatus == "PAID" {
		return c.JSON(orderConfirmationResponse(order))
	}

	intent, err := payments.RetrievePaymentIntent(req.PaymentIntentID)
	if err != nil {
		log.Printf("🔥 Payment intent lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify payment"})
	}
	if intent.Status != "succeeded" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment not successful"})
	}

	var shortProduct string
	var alreadySettled bool
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// The payment_status guard inside the transaction is what makes
		// settlement exactly-once: two simultaneous confirms both pass the
		// read above, but only one flips PENDING to PAID here.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND payment_status <> ?", order.ID, "PAID").
			Updates(map[string]interface{}{"status": "CONFIRMED", "payment_status": "PAID"})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			alreadySettled = true
			return nil
		}
		order.Status = "CONFIRMED"
		order.PaymentStatus = "PAID"

		// Conditional decrement guarded by stock >= quantity: zero affected
		// rows means a concurrent order drained the stock since intent
		// creation, and the whole settlement rolls back.
		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				shortProduct = item.Product.Name
				return fmt.Errorf("insufficient stock for: %s", shortProduct)
			}
		}
		return nil
	})
	if err != nil {
		if shortProduct != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Insufficient stock for: %s", shortProduct),
			})
		}
		log.Printf("🔥 Failed to settle order %s: %v", order.OrderNumber, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to confirm payment"})
	}

	if alreadySettled {
		order.Status = "CONFIRMED"
		order.PaymentStatus = "PAID"
		return c.JSON(orderConfirmationResponse(order))
	}

	metrics.OrdersConfirmed.Inc()
	websocket.Publish("order.confirmed", fiber.Map{
		"id":          order.ID,
		"orderNumber": order.OrderNumber,
		"total":       order.Total,
	})

	go func(settled models.Order) {
		notifications.SendEmail(settled.CustomerName, settled.CustomerEmail,
			"Your Order is Confirmed!", notifications.OrderConfirmationHTML(settled))
		notifications.SendAdminEmail("New Order Received", notifications.OrderAdminHTML(settled))
		services.GenerateOrderInvoice(settled)
	}(order)

	return c.JSON(orderConfirmationResponse(order))
}

func orderConfirmationResponse(order models.Order) fiber.Map {
	return fiber.Map{
		"success": true,
		"order": fiber.Map{
			"id":            order.ID,
			"orderNumber":   order.OrderNumber,
			"status":        order.Status,
			"paymentStatus": order.PaymentStatus,
			"total":         order.Total,
		},
	}
}

func GetOrder(c *fiber.Ctx) error {
	var order models.Order
	if err := database.DB.Preload("Items.Product").
		First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.JSON(order)
}

func AdminListOrders(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 {
		limit = 50
	}

	query := database.DB.Preload("Items.Product").Preload("User")

	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("paymentStatus"); paymentStatus != "" && paymentStatus != "all" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("user_id = ?", customerID)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(orders)
}

type UpdateOrderStatusRequest struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}

func AdminUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var order models.Order
	if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	if req.Status != nil {
		switch *req.Status {
		case "PENDING", "CONFIRMED", "PROCESSING", "SHIPPED", "DELIVERED", "CANCELLED":
			order.Status = *req.Status
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order status"})
		}
	}
	if req.PaymentStatus != nil {
		switch *req.PaymentStatus {
		case "PENDING", "PAID", "FAILED", "REFUNDED":
			order.PaymentStatus = *req.PaymentStatus
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment status"})
		}
	}

	if err := database.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update order"})
	}

	return c.JSON(order)
}
