package notifications

import (
	"fmt"
	"strings"

	"github.com/badboujee/storefront/models"
)

func BookingConfirmationHTML(booking models.Booking) string {
	return fmt.Sprintf(
		"<h1>Booking Confirmed</h1><p>Hi %s,</p><p>Your <b>%s</b> appointment is confirmed for %s at %s.</p><p>Duration: %d minutes. Price: $%.2f.</p>",
		booking.CustomerName,
		booking.Service.Name,
		booking.Date.Format("Monday, 2 January 2006"),
		booking.TimeSlot,
		booking.Service.Duration,
		booking.Service.Price,
	)
}

func BookingAdminHTML(booking models.Booking) string {
	return fmt.Sprintf(
		"<h1>New Booking</h1><p>%s (%s, %s) booked <b>%s</b> on %s at %s.</p>",
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.Service.Name,
		booking.Date.Format("2006-01-02"),
		booking.TimeSlot,
	)
}

func OrderConfirmationHTML(order models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%d</td><td>$%.2f</td></tr>",
			item.Product.Name, item.Quantity, item.Price,
		))
	}

	return fmt.Sprintf(
		"<h1>Order Confirmed</h1><p>Hi %s,</p><p>Thank you for your order <b>%s</b>.</p>"+
			"<table><tr><th>Item</th><th>Qty</th><th>Price</th></tr>%s</table>"+
			"<p>Subtotal: $%.2f<br>Tax: $%.2f<br>Shipping: $%.2f<br><b>Total: $%.2f</b></p>",
		order.CustomerName, order.OrderNumber, rows.String(),
		order.Subtotal, order.Tax, order.Shipping, order.Total,
	)
}

func OrderAdminHTML(order models.Order) string {
	return fmt.Sprintf(
		"<h1>New Order</h1><p>Order <b>%s</b> from %s (%s) for $%.2f has been paid.</p>",
		order.OrderNumber, order.CustomerName, order.CustomerEmail, order.Total,
	)
}
