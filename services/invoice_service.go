package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/badboujee/storefront/configs"
	"github.com/badboujee/storefront/database"
	"github.com/badboujee/storefront/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// GenerateOrderInvoice renders a PDF invoice for a settled order and stores
// its URL on the order row. Best-effort: every failure is logged and dropped,
// the confirmation itself already happened.
func GenerateOrderInvoice(order models.Order) {
	htmlData, err := generateInvoiceHTML(order)
	if err != nil {
		log.Printf("🔥 Failed to generate invoice HTML for order %s: %v", order.OrderNumber, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate invoice PDF for order %s: %v", order.OrderNumber, err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, order.OrderNumber)
	if err != nil {
		log.Printf("🔥 Failed to upload invoice for order %s: %v", order.OrderNumber, err)
		return
	}

	if err := database.DB.Model(&models.Order{}).Where("id = ?", order.ID).Update("invoice_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to store invoice URL for order %s: %v", order.OrderNumber, err)
		return
	}

	log.Printf("✅ Generated invoice for order %s.", order.OrderNumber)
}

func generateInvoiceHTML(order models.Order) (string, error) {
	tmpl, err := template.ParseFiles("templates/invoice.html")
	if err != nil {
		return "", err
	}

	data := struct {
		Order models.Order
		Date  string
	}{
		Order: order,
		Date:  time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, orderNumber string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("invoices/%s_%s", orderNumber, uuid.New().String()),
		Folder:       "badboujee_invoices",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
