package payments

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	config "github.com/badboujee/storefront/configs"
)

const stripeAPIBase = "https://api.stripe.com/v1"

type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// DemoMode reports whether the service runs without a real Stripe key. In demo
// mode intents are fabricated locally and every confirmation check passes, so
// the payment gate degrades to "always true". Not a production configuration.
func DemoMode() bool {
	key := config.Config("STRIPE_SECRET_KEY")
	return key == "" || strings.Contains(key, "demo")
}

// CreatePaymentIntent opens a Stripe payment intent for the given total. The
// amount is converted to cents; currency is AUD.
func CreatePaymentIntent(total float64, customerEmail, customerName string) (*PaymentIntent, error) {
	amountCents := int64(total*100 + 0.5)

	if DemoMode() {
		suffix := demoSuffix()
		return &PaymentIntent{
			ID:           fmt.Sprintf("pi_demo_%d_%s", time.Now().UnixMilli(), suffix),
			ClientSecret: fmt.Sprintf("pi_demo_%d_secret_demo_%s", time.Now().UnixMilli(), suffix),
			Amount:       amountCents,
			Currency:     "aud",
			Status:       "requires_payment_method",
		}, nil
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", "aud")
	form.Set("metadata[customerEmail]", customerEmail)
	form.Set("metadata[customerName]", customerName)

	req, err := http.NewRequest("POST", stripeAPIBase+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(config.Config("STRIPE_SECRET_KEY"), "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return doStripeRequest(req)
}

// RetrievePaymentIntent fetches the current state of an intent. Demo intents
// are reported as succeeded without calling out.
func RetrievePaymentIntent(paymentIntentID string) (*PaymentIntent, error) {
	if strings.HasPrefix(paymentIntentID, "pi_demo_") {
		return &PaymentIntent{ID: paymentIntentID, Status: "succeeded", Currency: "aud"}, nil
	}

	req, err := http.NewRequest("GET", fmt.Sprintf("%s/payment_intents/%s", stripeAPIBase, paymentIntentID), nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(config.Config("STRIPE_SECRET_KEY"), "")

	return doStripeRequest(req)
}

func doStripeRequest(req *http.Request) (*PaymentIntent, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stripe request failed, status: %s", resp.Status)
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func demoSuffix() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, 9)
	for i := range b {
		b[i] = chars[seededRand.Intn(len(chars))]
	}
	return string(b)
}
