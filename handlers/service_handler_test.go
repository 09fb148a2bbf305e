package handlers_test

import (
	"net/http"
	"testing"

	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListServices_PublicOnlySeesActive(t *testing.T) {
	app := setupTestApp(t)
	active := seedService(t, true)
	seedService(t, false)

	resp, services := doJSONList(t, app, "GET", "/api/v1/services", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, services, 1)
	assert.Equal(t, active.ID.String(), services[0]["id"])
}

func TestAdminCreateService(t *testing.T) {
	app := setupTestApp(t)
	token := adminToken(t)

	resp, body := doJSON(t, app, "POST", "/api/v1/admin/services", token, map[string]interface{}{
		"name":     "Full Head Install",
		"duration": 120,
		"price":    250.0,
		"category": "installs",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Full Head Install", body["name"])
	assert.Equal(t, true, body["active"])

	resp, _ = doJSON(t, app, "POST", "/api/v1/admin/services", token, map[string]interface{}{
		"name":     "Zero Minute Wonder",
		"duration": 0,
		"price":    50.0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminListServices_IncludesBookingCount(t *testing.T) {
	app := setupTestApp(t)
	service := seedService(t, true)
	token := adminToken(t)

	resp, _ := doJSON(t, app, "POST", "/api/v1/bookings", "", bookingPayload(service.ID.String(), "2026-10-01", "10:00 AM"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, app, "POST", "/api/v1/bookings", "", bookingPayload(service.ID.String(), "2026-10-01", "11:00 AM"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, services := doJSONList(t, app, "GET", "/api/v1/admin/services", token)
	require.Len(t, services, 1)
	assert.Equal(t, 2.0, services[0]["booking_count"])
}

func TestAdminDeleteService(t *testing.T) {
	app := setupTestApp(t)
	booked := seedService(t, true)
	unbooked := seedService(t, true)
	token := adminToken(t)

	resp, _ := doJSON(t, app, "POST", "/api/v1/bookings", "", bookingPayload(booked.ID.String(), "2026-10-01", "10:00 AM"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// A booked service survives deletion as inactive.
	resp, body := doJSON(t, app, "DELETE", "/api/v1/admin/services/"+booked.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Service has bookings and was deactivated instead of deleted", body["message"])

	var fresh models.Service
	require.NoError(t, database.DB.First(&fresh, "id = ?", booked.ID).Error)
	assert.False(t, fresh.Active)

	resp, _ = doJSON(t, app, "DELETE", "/api/v1/admin/services/"+unbooked.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Service{}).Where("id = ?", unbooked.ID).Count(&count)
	assert.Zero(t, count)
}
