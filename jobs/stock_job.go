package jobs

import (
	"fmt"
	"log"
	"strings"

	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/models"
	"github.com/badboujee/storefront/notifications"
)

const lowStockThreshold = 10

// SendLowStockDigest mails the admin a daily summary of active products
// running low, so restocking happens before checkouts start failing.
func SendLowStockDigest() {
	log.Println("Running job: SendLowStockDigest...")

	var lowStock []models.Product
	err := database.DB.
		Where("stock < ? AND active = ?", lowStockThreshold, true).
		Order("stock asc").
		Find(&lowStock).Error
	if err != nil {
		log.Printf("Error checking for low-stock products: %v", err)
		return
	}

	if len(lowStock) == 0 {
		return
	}

	var rows strings.Builder
	for _, product := range lowStock {
		rows.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%d</td></tr>", product.Name, product.SKU, product.Stock))
	}

	body := fmt.Sprintf(
		"<h1>Low Stock Alert</h1><p>%d product(s) are below %d units:</p><table><tr><th>Product</th><th>SKU</th><th>Stock</th></tr>%s</table>",
		len(lowStock), lowStockThreshold, rows.String(),
	)

	go notifications.SendAdminEmail("Low Stock Alert", body)
}
