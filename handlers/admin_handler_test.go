package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	app := setupTestApp(t)
	service := seedService(t, true)
	product := seedProduct(t, "Last Ponytail", 60, nil, 2, true)
	seedUser(t, "customer@example.com", "hunter2", "CUSTOMER")
	token := adminToken(t)

	resp, _ := doJSON(t, app, "POST", "/api/v1/bookings", "", bookingPayload(service.ID.String(), "2026-10-01", "10:00 AM"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	createDemoOrder(t, app, []map[string]interface{}{
		{"productId": product.ID.String(), "quantity": 1},
	})

	resp, body := doJSON(t, app, "GET", "/api/v1/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 1.0, body["totalCustomers"])
	assert.Equal(t, 1.0, body["totalBookings"])
	assert.Equal(t, 1.0, body["lowStockProducts"])

	orders := body["orders"].(map[string]interface{})
	assert.Equal(t, 1.0, orders["currentMonth"])
	assert.Equal(t, 1.0, orders["pending"])

	revenue := body["revenue"].(map[string]interface{})
	assert.Greater(t, revenue["currentMonth"].(float64), 0.0)

	assert.Len(t, body["recentOrders"].([]interface{}), 1)
	assert.Len(t, body["recentBookings"].([]interface{}), 1)

	// Dashboard is admin-only.
	resp, _ = doJSON(t, app, "GET", "/api/v1/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
