package handlers_test

import (
	"net/http"
	"testing"

	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, email, password, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func TestLoginUser(t *testing.T) {
	app := setupTestApp(t)
	seedUser(t, "admin@badboujeehair.com", "swordfish", "ADMIN")

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "admin@badboujeehair.com",
		"password": "swordfish",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "ADMIN", user["role"])
	assert.Equal(t, "admin@badboujeehair.com", user["email"])

	resp, body = doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "admin@badboujeehair.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", body["error"])

	resp, body = doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "nobody@badboujeehair.com",
		"password": "swordfish",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", body["error"])

	resp, _ = doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerifyAdmin(t *testing.T) {
	app := setupTestApp(t)
	seedUser(t, "admin@badboujeehair.com", "swordfish", "ADMIN")
	seedUser(t, "customer@example.com", "hunter2", "CUSTOMER")

	_, body := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "admin@badboujeehair.com",
		"password": "swordfish",
	})
	adminJWT := body["token"].(string)

	resp, body := doJSON(t, app, "GET", "/api/v1/admin/auth/verify", adminJWT, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["valid"])

	_, body = doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "customer@example.com",
		"password": "hunter2",
	})
	customerJWT := body["token"].(string)

	resp, body = doJSON(t, app, "GET", "/api/v1/admin/auth/verify", customerJWT, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Forbidden: Admin access required", body["error"])
}
