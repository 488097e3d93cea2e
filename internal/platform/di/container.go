// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	inhttp "heavendesigns/internal/adapters/in/http"
	"heavendesigns/internal/adapters/in/http/handler"
	inwebhook "heavendesigns/internal/adapters/in/http/webhook"
	fsadapter "heavendesigns/internal/adapters/out/firestore"
	"heavendesigns/internal/adapters/out/mail"
	"heavendesigns/internal/adapters/out/notify"
	pgadapter "heavendesigns/internal/adapters/out/postgres"
	"heavendesigns/internal/adapters/out/storage"
	"heavendesigns/internal/adapters/out/stripecheckout"
	walletadapter "heavendesigns/internal/adapters/out/wallet"
	"heavendesigns/internal/application/query"
	"heavendesigns/internal/application/usecase"
	cartdom "heavendesigns/internal/domain/cart"
	productdom "heavendesigns/internal/domain/product"
	"heavendesigns/internal/infra/config"
	firestoreinfra "heavendesigns/internal/infra/firestore"
)

// Container wires the storefront service: config, cart storage backend,
// usecases, and the HTTP handler set.
//
// Payment integrations degrade gracefully: a missing Stripe key or wallet
// credential leaves that route unregistered (NotFound) instead of failing
// boot, so the cart and catalog still work.
type Container struct {
	Config *config.Config
	Deps   inhttp.Deps

	closers []func() error
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}

	c := &Container{Config: cfg}

	strategy := cartdom.ParseKeyStrategy(cfg.CartKeyStrategy)

	store, err := c.buildBlobStore(ctx, cfg)
	if err != nil {
		c.closeAll()
		return nil, err
	}

	catalog := productdom.NewInlineCatalog()
	notifier := notify.NewLogNotifier()

	cartUC := usecase.NewCartUsecase(store, catalog, notifier, strategy)
	cartView := query.NewCartViewQuery(cartUC)

	var mailClient usecase.EmailClient
	if strings.TrimSpace(cfg.SendGridAPIKey) != "" {
		mailClient = mail.NewSendGridClient(cfg.SendGridAPIKey)
	}

	c.Deps.Catalog = handler.NewCatalogHandler(catalog)
	c.Deps.Cart = handler.NewCartHandler(cartUC, cartView)

	// hosted (card) checkout
	if stripeKey, err := resolveStripeKey(ctx, cfg); err != nil {
		log.Printf("[di] WARN: card checkout disabled: %v", err)
	} else {
		provider, err := stripecheckout.NewProvider(stripeKey, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
		if err != nil {
			c.closeAll()
			return nil, fmt.Errorf("di: %w", err)
		}

		checkoutUC := usecase.NewCheckoutUsecase(cartUC, provider, notifier)
		if mailClient != nil {
			checkoutUC = checkoutUC.WithReceiptMail(mailClient, cfg.MailFrom)
		}
		c.Deps.Checkout = handler.NewCheckoutHandler(checkoutUC)

		if secret := strings.TrimSpace(cfg.StripeWebhookSecret); secret == "" {
			log.Printf("[di] WARN: stripe webhook disabled: STRIPE_WEBHOOK_SECRET is empty")
		} else {
			verifier, err := stripecheckout.NewEventVerifier(secret)
			if err != nil {
				c.closeAll()
				return nil, fmt.Errorf("di: %w", err)
			}
			c.Deps.StripeWebhook = inwebhook.NewStripeHandler(verifier, checkoutUC)
		}
	}

	// wallet (alternative) checkout
	if cfg.WalletBaseURL == "" || cfg.WalletClientID == "" || cfg.WalletSecret == "" {
		log.Printf("[di] WARN: wallet checkout disabled: credentials not configured")
	} else {
		provider, err := walletadapter.NewRESTProvider(cfg.WalletBaseURL, cfg.WalletClientID, cfg.WalletSecret)
		if err != nil {
			c.closeAll()
			return nil, fmt.Errorf("di: %w", err)
		}

		walletUC := usecase.NewWalletCheckoutUsecase(cartUC, provider, notifier)
		if mailClient != nil {
			walletUC = walletUC.WithReceiptMail(mailClient, cfg.MailFrom)
		}
		c.Deps.Wallet = handler.NewWalletHandler(walletUC)
	}

	return c, nil
}

// buildBlobStore selects the cart persistence backend from config.
func (c *Container) buildBlobStore(ctx context.Context, cfg *config.Config) (cartdom.BlobStore, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.CartBackend))

	switch backend {
	case "", "file":
		fs, err := storage.NewFileBlobStore(cfg.CartDir)
		if err != nil {
			return nil, fmt.Errorf("di: file cart store: %w", err)
		}
		log.Printf("[di] cart backend = file dir=%s", cfg.CartDir)
		return fs, nil

	case "memory":
		log.Printf("[di] cart backend = memory (non-persistent)")
		return storage.NewMemoryBlobStore(), nil

	case "firestore":
		if cfg.FirestoreProjectID == "" {
			return nil, errors.New("di: firestore cart backend needs FIRESTORE_PROJECT_ID")
		}
		cw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("di: firestore cart store: %w", err)
		}
		c.closers = append(c.closers, cw.Close)
		log.Printf("[di] cart backend = firestore collection=%s", cfg.CartsCollection)
		return fsadapter.NewCartBlobStoreFS(cw.Client, cfg.CartsCollection), nil

	case "postgres":
		db, err := pgadapter.NewConnection(cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB)
		if err != nil {
			return nil, fmt.Errorf("di: postgres cart store: %w", err)
		}
		c.closers = append(c.closers, db.Close)

		pg := pgadapter.NewCartBlobStorePG(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("di: postgres cart schema: %w", err)
		}
		log.Printf("[di] cart backend = postgres db=%s", cfg.PostgresDB)
		return pg, nil

	default:
		return nil, fmt.Errorf("di: unknown cart backend %q", backend)
	}
}

// Register registers the container's handler set onto mux.
func (c *Container) Register(mux *http.ServeMux) {
	inhttp.Register(mux, c.Deps)
}

// Close releases backend resources (db/firestore clients).
func (c *Container) Close() error {
	var first error
	for _, fn := range c.closers {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

func (c *Container) closeAll() {
	_ = c.Close()
}
