package main

import (
	"context"
	"log"
	"time"

	config "github.com/badboujee/storefront/configs"
	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/scraper"
)

// One-shot catalog seeding from an existing Shopify storefront.
func main() {
	database.ConnectDB()
	database.Migrate()

	baseURL := config.ConfigOr("SHOPIFY_BASE_URL", "https://www.badboujeehair.com")
	log.Printf("🔍 Scraping catalog from %s...", baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := scraper.NewClient(baseURL)
	products, err := client.FetchProducts(ctx)
	if err != nil {
		log.Fatalf("🔥 Scrape failed: %v", err)
	}

	created, updated, err := scraper.ImportProducts(database.DB, products)
	if err != nil {
		log.Fatalf("🔥 Import failed: %v", err)
	}

	log.Printf("✅ Import complete: %d products created, %d updated.", created, updated)
}
