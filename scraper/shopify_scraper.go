package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/badboujee/storefront/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Client pulls catalog data from a Shopify storefront's public JSON
// endpoints. One-shot seeding tool: no retries, no backpressure.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type ShopifyVariant struct {
	Title             string  `json:"title"`
	Price             string  `json:"price"`
	CompareAtPrice    *string `json:"compare_at_price"`
	SKU               string  `json:"sku"`
	InventoryQuantity int     `json:"inventory_quantity"`
	Available         bool    `json:"available"`
}

type ShopifyImage struct {
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
}

type ShopifyProduct struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Handle      string           `json:"handle"`
	BodyHTML    string           `json:"body_html"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type"`
	Tags        json.RawMessage  `json:"tags"`
	Variants    []ShopifyVariant `json:"variants"`
	Images      []ShopifyImage   `json:"images"`
}

type productsResponse struct {
	Products []ShopifyProduct `json:"products"`
}

// FetchProducts walks the known Shopify product endpoints and returns the
// first non-empty result.
func (c *Client) FetchProducts(ctx context.Context) ([]ShopifyProduct, error) {
	endpoints := []string{
		"/products.json?limit=250",
		"/collections/all/products.json?limit=250",
	}

	for _, endpoint := range endpoints {
		log.Printf("Trying %s...", endpoint)
		products, err := c.fetch(ctx, endpoint)
		if err != nil {
			log.Printf("  └─ Not found: %v", err)
			continue
		}
		if len(products) > 0 {
			log.Printf("✅ Found %d products at %s", len(products), endpoint)
			return products, nil
		}
	}

	return nil, fmt.Errorf("no products found at %s", c.BaseURL)
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]ShopifyProduct, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var payload productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Products, nil
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// StripHTML flattens Shopify's body_html into plain description text.
func StripHTML(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}

// MapVariant converts one Shopify variant into a catalog product. When a
// compare-at price exists, it is the regular price and the listed price is
// the sale price.
func MapVariant(sp ShopifyProduct, v ShopifyVariant) models.Product {
	name := sp.Title
	if v.Title != "" && v.Title != "Default Title" {
		name = fmt.Sprintf("%s - %s", sp.Title, v.Title)
	}

	price, _ := strconv.ParseFloat(v.Price, 64)
	var salePrice *float64
	if v.CompareAtPrice != nil && *v.CompareAtPrice != "" {
		if compareAt, err := strconv.ParseFloat(*v.CompareAtPrice, 64); err == nil && compareAt > price {
			sale := price
			price = compareAt
			salePrice = &sale
		}
	}

	images := make([]string, 0, len(sp.Images))
	for _, img := range sp.Images {
		images = append(images, img.Src)
	}
	imagesJSON, _ := json.Marshal(images)

	metadata := map[string]interface{}{
		"handle":      sp.Handle,
		"vendor":      sp.Vendor,
		"productType": sp.ProductType,
		"tags":        tagList(sp.Tags),
	}
	metadataJSON, _ := json.Marshal(metadata)

	description := StripHTML(sp.BodyHTML)

	return models.Product{
		Name:        name,
		Description: &description,
		Price:       price,
		SalePrice:   salePrice,
		SKU:         v.SKU,
		Stock:       v.InventoryQuantity,
		Active:      v.Available,
		Images:      datatypes.JSON(imagesJSON),
		Metadata:    datatypes.JSON(metadataJSON),
	}
}

// tagList tolerates both representations Shopify uses: a comma-joined string
// and a JSON array.
func tagList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil {
		return asList
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil && asString != "" {
		parts := strings.Split(asString, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}

	return nil
}

// ImportProducts upserts scraped variants by SKU. Existing products keep
// their id; price, stock and images are refreshed. Variants without a SKU
// are skipped.
func ImportProducts(db *gorm.DB, scraped []ShopifyProduct) (created, updated int, err error) {
	for _, sp := range scraped {
		category, catErr := ensureCategory(db, sp.ProductType)
		if catErr != nil {
			return created, updated, catErr
		}

		for _, variant := range sp.Variants {
			if variant.SKU == "" {
				continue
			}

			mapped := MapVariant(sp, variant)
			if category != nil {
				mapped.CategoryID = &category.ID
			}

			var existing models.Product
			findErr := db.Where("sku = ?", variant.SKU).First(&existing).Error
			if findErr == gorm.ErrRecordNotFound {
				if err := db.Create(&mapped).Error; err != nil {
					return created, updated, err
				}
				created++
				continue
			}
			if findErr != nil {
				return created, updated, findErr
			}

			existing.Name = mapped.Name
			existing.Description = mapped.Description
			existing.Price = mapped.Price
			existing.SalePrice = mapped.SalePrice
			existing.Stock = mapped.Stock
			existing.Images = mapped.Images
			existing.Metadata = mapped.Metadata
			if mapped.CategoryID != nil {
				existing.CategoryID = mapped.CategoryID
			}
			if err := db.Save(&existing).Error; err != nil {
				return created, updated, err
			}
			updated++
		}
	}

	return created, updated, nil
}

func ensureCategory(db *gorm.DB, productType string) (*models.Category, error) {
	if productType == "" {
		return nil, nil
	}

	slug := Slugify(productType)
	var category models.Category
	err := db.Where("slug = ?", slug).First(&category).Error
	if err == gorm.ErrRecordNotFound {
		category = models.Category{Name: productType, Slug: slug}
		if err := db.Create(&category).Error; err != nil {
			return nil, err
		}
		return &category, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

func Slugify(s string) string {
	slug := nonAlnumRe.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
