package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func ListProducts(c *fiber.Ctx) error {
	query := database.DB.Preload("Category").Where("active = ?", true)

	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}

	var products []models.Product
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(products)
}

func GetProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := database.DB.Preload("Category").
		First(&product, "id = ? AND active = ?", c.Params("id"), true).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(product)
}

func AdminListProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 {
		limit = 50
	}

	query := database.DB.Preload("Category")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR sku LIKE ?", like, like, like)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	switch c.Query("status", "all") {
	case "active":
		query = query.Where("active = ?", true)
	case "inactive":
		query = query.Where("active = ?", false)
	case "featured":
		query = query.Where("featured = ?", true)
	case "low-stock":
		query = query.Where("stock < ?", 10)
	}

	var products []models.Product
	if err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(products)
}

type ProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	SalePrice   *float64 `json:"salePrice"`
	SKU         string   `json:"sku" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Active      *bool    `json:"active"`
	Featured    *bool    `json:"featured"`
	CategoryID  *string  `json:"categoryId"`
	Images      []string `json:"images"`
	Metadata    any      `json:"metadata"`
}

func AdminCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		SKU:         req.SKU,
		Stock:       req.Stock,
		Active:      true,
		Images:      toJSON(req.Images),
		Metadata:    toJSON(req.Metadata),
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.CategoryID != nil {
		if categoryID, err := uuid.Parse(*req.CategoryID); err == nil {
			product.CategoryID = &categoryID
		}
	}

	if err := database.DB.Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A product with this SKU already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	SalePrice   *float64 `json:"salePrice,omitempty"`
	SKU         *string  `json:"sku,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Active      *bool    `json:"active,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
	CategoryID  *string  `json:"categoryId,omitempty"`
	Images      []string `json:"images,omitempty"`
	Metadata    any      `json:"metadata,omitempty"`
}

func AdminUpdateProduct(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var product models.Product
	if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price must be positive"})
		}
		product.Price = *req.Price
	}
	if req.SalePrice != nil {
		product.SalePrice = req.SalePrice
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Stock cannot be negative"})
		}
		product.Stock = *req.Stock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.CategoryID != nil {
		if categoryID, err := uuid.Parse(*req.CategoryID); err == nil {
			product.CategoryID = &categoryID
		}
	}
	if req.Images != nil {
		product.Images = toJSON(req.Images)
	}
	if req.Metadata != nil {
		product.Metadata = toJSON(req.Metadata)
	}

	if err := database.DB.Save(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A product with this SKU already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update product"})
	}

	return c.JSON(product)
}

func AdminDeleteProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var ordered int64
	if err := database.DB.Model(&models.OrderItem{}).
		Where("product_id = ?", product.ID).Count(&ordered).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if ordered > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot delete product that has been ordered. Consider marking it as inactive instead.",
		})
	}

	if err := database.DB.Delete(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete product"})
	}

	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

func toJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
