package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentIntentPayload(items []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"items": items,
		"customerInfo": map[string]interface{}{
			"name":  "Jess Taylor",
			"email": "jess@example.com",
		},
		"shippingAddress": map[string]interface{}{
			"line1":    "1 Collins St",
			"city":     "Melbourne",
			"postcode": "3000",
		},
	}
}

func createDemoOrder(t *testing.T, app *fiber.App, items []map[string]interface{}) (orderID, intentID string) {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/v1/create-payment-intent", "", paymentIntentPayload(items))
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", body)
	return body["orderId"].(string), body["paymentIntentId"].(string)
}

func TestCreatePaymentIntent_Breakdown(t *testing.T) {
	app := setupTestApp(t)
	product := seedProduct(t, "20 Inch Clip-In Set", 40, nil, 10, true)

	resp, body := doJSON(t, app, "POST", "/api/v1/create-payment-intent", "", paymentIntentPayload([]map[string]interface{}{
		{"productId": product.ID.String(), "quantity": 2},
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// $80 subtotal: 10% tax, under the free-shipping threshold.
	breakdown := body["breakdown"].(map[string]interface{})
	assert.Equal(t, 80.0, breakdown["subtotal"])
	assert.Equal(t, 8.0, breakdown["tax"])
	assert.Equal(t, 10.0, breakdown["shipping"])
	assert.Equal(t, 98.0, breakdown["total"])
	assert.Equal(t, 98.0, body["total"])

	assert.Equal(t, true, body["demoMode"])
	assert.NotEmpty(t, body["clientSecret"])
	assert.NotEmpty(t, body["orderNumber"])

	var order models.Order
	require.NoError(t, database.DB.Preload("Items").First(&order, "id = ?", body["orderId"]).Error)
	assert.Equal(t, "PENDING", order.Status)
	assert.Equal(t, "PENDING", order.PaymentStatus)
	assert.Equal(t, 98.0, order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 40.0, order.Items[0].Price)
}

func TestCreatePaymentIntent_FreeShippingAndSalePrice(t *testing.T) {
	app := setupTestApp(t)
	sale := 55.0
	product := seedProduct(t, "24 Inch Tape-In Set", 70, &sale, 10, true)

	_, body := doJSON(t, app, "POST", "/api/v1/create-payment-intent", "", paymentIntentPayload([]map[string]interface{}{
		{"productId": product.ID.String(), "quantity": 2},
	}))

	// Sale price wins: 2 x $55 = $110, over the threshold so shipping is free.
	breakdown := body["breakdown"].(map[string]interface{})
	assert.Equal(t, 110.0, breakdown["subtotal"])
	assert.Equal(t, 11.0, breakdown["tax"])
	assert.Equal(t, 0.0, breakdown["shipping"])
	assert.Equal(t, 121.0, breakdown["total"])
}

func TestCreatePaymentIntent_ExactThresholdPaysShipping(t *testing.T) {
	app := setupTestApp(t)
	product := seedProduct(t, "Boujee Bond Glue", 100, nil, 5, true)

	_, body := doJSON(t, app, "POST", "/api/v1/create-payment-intent", "", paymentIntentPayload([]map[string]interface{}{
		{"productId": product.ID.String(), "quantity": 1},
	}))

	breakdown := body["breakdown"].(map[string]interface{})
	assert.Equal(t, 100.0, breakdown["subtotal"])
	assert.Equal(t, 10.0, breakdown["shipping"])
	assert.Equal(t, 120.0, breakdown["total"])
}

func TestCreatePaymentIntent_RejectsBadItems(t *testing.T) {
	app := setupTestApp(t)
	inactive := seedProduct(t, "Retired Halo Set", 60, nil, 10, false)
	low := seedProduct(t, "Last Ponytail", 60, nil, 1, true)

	resp, body := doJSON(t, app, "POST", "/api/v1/create-payment-intent", "", paymentIntentPayload([]map[string]interface{}{
		{"productId": "6f9619ff-8b86-4d01-b42d-00cf4fc964ff", "quantity": 1},
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Product not found: 6f9619ff-8b86-4d01-b42d-00cf4fc964ff", body["error"])

	resp, body = doJSON(t, app, "POST", "/api/v1/create-payment-intent", "", paymentIntentPayload([]map[string]interface{}{
		{"productId": inactive.ID.String(), "quantity": 1},
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Product is not available: Retired Halo Set", body["error"])

	resp, body = doJSON(t, app, "POST", "/api/v1/create-payment-intent", "", paymentIntentPayload([]map[string]interface{}{
		{"productId": low.ID.String(), "quantity": 3},
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Insufficient stock for: Last Ponytail", body["error"])

	resp, _ = doJSON(t, app, "POST", "/api/v1/create-payment-intent", "", paymentIntentPayload([]map[string]interface{}{
		{"productId": low.ID.String(), "quantity": 0},
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// No rejected cart leaves an order behind.
	var count int64
	database.DB.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestConfirmPayment_DecrementsStockOnce(t *testing.T) {
	app := setupTestApp(t)
	product := seedProduct(t, "18 Inch Weft", 45, nil, 5, true)

	orderID, intentID := createDemoOrder(t, app, []map[string]interface{}{
		{"productId": product.ID.String(), "quantity": 3},
	})

	resp, body := doJSON(t, app, "POST", "/api/v1/confirm-payment", "", map[string]interface{}{
		"paymentIntentId": intentID,
		"orderId":         orderID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %v", body)
	assert.Equal(t, true, body["success"])

	confirmed := body["order"].(map[string]interface{})
	assert.Equal(t, "CONFIRMED", confirmed["status"])
	assert.Equal(t, "PAID", confirmed["paymentStatus"])

	var fresh models.Product
	require.NoError(t, database.DB.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 2, fresh.Stock)

	// Re-confirming is a no-op; stock stays where it is.
	resp, body = doJSON(t, app, "POST", "/api/v1/confirm-payment", "", map[string]interface{}{
		"paymentIntentId": intentID,
		"orderId":         orderID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	require.NoError(t, database.DB.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 2, fresh.Stock)
}

func TestConfirmPayment_ConcurrentConfirmsSettleOnce(t *testing.T) {
	app := setupTestApp(t)
	product := seedProduct(t, "14 Inch Weft", 45, nil, 10, true)

	orderID, intentID := createDemoOrder(t, app, []map[string]interface{}{
		{"productId": product.ID.String(), "quantity": 3},
	})

	payload, err := json.Marshal(map[string]interface{}{
		"paymentIntentId": intentID,
		"orderId":         orderID,
	})
	require.NoError(t, err)

	// Simultaneous retries of the same confirmation must decrement stock
	// exactly once.
	const confirms = 4
	var wg sync.WaitGroup
	errs := make(chan error, confirms)
	for i := 0; i < confirms; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest("POST", "/api/v1/confirm-payment", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			if err != nil {
				errs <- err
				return
			}
			resp.Body.Close()
			errs <- nil
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var fresh models.Product
	require.NoError(t, database.DB.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 7, fresh.Stock)

	var order models.Order
	require.NoError(t, database.DB.First(&order, "id = ?", orderID).Error)
	assert.Equal(t, "CONFIRMED", order.Status)
	assert.Equal(t, "PAID", order.PaymentStatus)
}

func TestConfirmPayment_StockDrainedBetweenIntentAndConfirm(t *testing.T) {
	app := setupTestApp(t)
	product := seedProduct(t, "16 Inch Weft", 45, nil, 3, true)

	orderID, intentID := createDemoOrder(t, app, []map[string]interface{}{
		{"productId": product.ID.String(), "quantity": 3},
	})

	// Another sale drains the shelf before this order settles.
	require.NoError(t, database.DB.Model(&models.Product{}).
		Where("id = ?", product.ID).Update("stock", 1).Error)

	resp, body := doJSON(t, app, "POST", "/api/v1/confirm-payment", "", map[string]interface{}{
		"paymentIntentId": intentID,
		"orderId":         orderID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Insufficient stock for: 16 Inch Weft", body["error"])

	// The settlement rolled back: order still pending, stock untouched.
	var order models.Order
	require.NoError(t, database.DB.First(&order, "id = ?", orderID).Error)
	assert.Equal(t, "PENDING", order.Status)
	assert.Equal(t, "PENDING", order.PaymentStatus)

	var fresh models.Product
	require.NoError(t, database.DB.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 1, fresh.Stock)
}

func TestConfirmPayment_Validation(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/v1/confirm-payment", "", map[string]interface{}{
		"paymentIntentId": "pi_demo_123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Payment intent ID and order ID are required", body["error"])

	resp, body = doJSON(t, app, "POST", "/api/v1/confirm-payment", "", map[string]interface{}{
		"paymentIntentId": "pi_demo_123",
		"orderId":         "6f9619ff-8b86-4d01-b42d-00cf4fc964ff",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Order not found", body["error"])
}

func TestGetOrder(t *testing.T) {
	app := setupTestApp(t)
	product := seedProduct(t, "22 Inch Clip-In Set", 90, nil, 4, true)

	orderID, _ := createDemoOrder(t, app, []map[string]interface{}{
		{"productId": product.ID.String(), "quantity": 1},
	})

	resp, body := doJSON(t, app, "GET", "/api/v1/orders/"+orderID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, orderID, body["id"])
	assert.Equal(t, "PENDING", body["status"])

	resp, _ = doJSON(t, app, "GET", "/api/v1/orders/6f9619ff-8b86-4d01-b42d-00cf4fc964ff", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	app := setupTestApp(t)
	product := seedProduct(t, "Boujee Brush", 25, nil, 10, true)
	token := adminToken(t)

	orderID, _ := createDemoOrder(t, app, []map[string]interface{}{
		{"productId": product.ID.String(), "quantity": 1},
	})

	resp, body := doJSON(t, app, "PATCH", "/api/v1/admin/orders/"+orderID, token, map[string]interface{}{
		"status": "SHIPPED",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SHIPPED", body["status"])

	resp, body = doJSON(t, app, "PATCH", "/api/v1/admin/orders/"+orderID, token, map[string]interface{}{
		"status": "LOST_IN_MAIL",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid order status", body["error"])

	resp, body = doJSON(t, app, "PATCH", "/api/v1/admin/orders/"+orderID, token, map[string]interface{}{
		"paymentStatus": "REFUNDED",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "REFUNDED", body["payment_status"])
}
