package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/models"
	"github.com/badboujee/storefront/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)
	t.Setenv("STRIPE_SECRET_KEY", "")

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	database.DB = db

	app := fiber.New()
	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.BookingRoutes(app)
	routes.OrderRoutes(app)
	routes.AdminRoutes(app)

	return app
}

func adminToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": uuid.NewString(),
		"role":    "ADMIN",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", string(raw))
	}
	return resp, parsed
}

func seedService(t *testing.T, active bool) models.Service {
	t.Helper()
	service := models.Service{
		Name:     "Hair Extension Consultation",
		Duration: 30,
		Price:    50,
		Active:   active,
	}
	require.NoError(t, database.DB.Create(&service).Error)
	return service
}

func seedProduct(t *testing.T, name string, price float64, salePrice *float64, stock int, active bool) models.Product {
	t.Helper()
	product := models.Product{
		Name:      name,
		Price:     price,
		SalePrice: salePrice,
		SKU:       uuid.NewString()[:8],
		Stock:     stock,
		Active:    active,
	}
	require.NoError(t, database.DB.Create(&product).Error)
	return product
}
