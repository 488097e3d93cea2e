// internal/infra/config/config.go
package config

import (
	"os"
	"strings"
)

// Config holds the environment-resolved settings for the storefront service.
// It intentionally contains only values (no external clients); normalization
// happens once here, hard validation stays with the consumers.
type Config struct {
	Port string

	// Cart persistence backend: "file" | "memory" | "firestore" | "postgres".
	CartBackend string
	// Directory for the file backend (one JSON blob per cart key).
	CartDir string
	// Identity-key strategy: "id" (default) | "name-price".
	CartKeyStrategy string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	CartsCollection          string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	// Stripe secret key: env first, Secret Manager fallback.
	StripeSecretKey     string
	StripeSecretName    string
	StripeWebhookSecret string
	GCPProjectID        string

	CheckoutSuccessURL string
	CheckoutCancelURL  string

	// Wallet (alternative checkout) provider.
	WalletBaseURL  string
	WalletClientID string
	WalletSecret   string

	// Receipt mail (best effort; empty key disables).
	SendGridAPIKey string
	MailFrom       string

	AllowedOrigin string
}

// Load reads the environment into a Config, applying defaults that keep the
// service bootable with nothing set (memory cart, inline catalog, no mail).
func Load() *Config {
	siteBase := getenvDefault("SITE_BASE_URL", "http://localhost:8080")
	siteBase = strings.TrimRight(siteBase, "/")

	cfg := &Config{
		Port: getenvDefault("PORT", "8080"),

		CartBackend:     getenvDefault("CART_BACKEND", "file"),
		CartDir:         getenvDefault("CART_DIR", "./data/carts"),
		CartKeyStrategy: getenvDefault("CART_KEY_STRATEGY", "id"),

		FirestoreProjectID:       os.Getenv("FIRESTORE_PROJECT_ID"),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		CartsCollection:          getenvDefault("CARTS_COLLECTION", "carts"),

		PostgresHost:     getenvDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:     getenvDefault("POSTGRES_PORT", "5432"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       getenvDefault("POSTGRES_DB", "storefront"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeSecretName:    getenvDefault("STRIPE_SECRET_NAME", "stripe-secret-key"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		GCPProjectID:        os.Getenv("GCP_PROJECT_ID"),

		CheckoutSuccessURL: getenvDefault("CHECKOUT_SUCCESS_URL", siteBase+"/success.html"),
		CheckoutCancelURL:  getenvDefault("CHECKOUT_CANCEL_URL", siteBase+"/cart.html"),

		WalletBaseURL:  os.Getenv("WALLET_BASE_URL"),
		WalletClientID: os.Getenv("WALLET_CLIENT_ID"),
		WalletSecret:   os.Getenv("WALLET_SECRET"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenvDefault("MAIL_FROM", "orders@alittletouchofheaven.example"),

		AllowedOrigin: getenvDefault("ALLOWED_ORIGIN", "*"),
	}

	return cfg
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
