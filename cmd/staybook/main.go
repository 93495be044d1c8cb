package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	availabilityapp "staybook/internal/app/handlers/availability"
	orderapp "staybook/internal/app/handlers/order"
	searchapp "staybook/internal/app/handlers/search"
	"staybook/internal/app/policies"
	"staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/order"
	"staybook/internal/infra/broker/kafka"
	"staybook/internal/infra/config"
	storemongo "staybook/internal/infra/db/mongo"
	ginserver "staybook/internal/infra/http/gin"
	localidentity "staybook/internal/infra/identity"
	"staybook/internal/infra/obs"
	"staybook/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, cleanup, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	fixturesPath := getenv("LISTINGS_FIXTURES", "")
	if fixturesPath != "" {
		if err := app.loadListingFixtures(ctx, fixturesPath); err != nil {
			logger.Warn("listing fixtures load failed", "error", err, "path", fixturesPath)
		}
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ready    func() error
	seed     func(ctx context.Context, ref listings.Ref, city, image string) error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func(), error) {
	cleanup := func() {}

	var (
		calendar  availability.Store
		ledger    order.Ledger
		directory listings.Directory
		ready     func() error
		seed      func(ctx context.Context, ref listings.Ref, city, image string) error
	)

	switch cfg.StorageMode {
	case config.StorageMongo:
		client, err := storemongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, cleanup, err
		}
		availStore := storemongo.NewAvailabilityStore(client.DB)
		orderLedger := storemongo.NewOrderLedger(client.DB)
		listingDir := storemongo.NewListingDirectory(client.DB)
		if err := availStore.EnsureIndexes(ctx); err != nil {
			logger.Warn("availability index creation failed", "error", err)
		}
		if err := orderLedger.EnsureIndexes(ctx); err != nil {
			logger.Warn("order index creation failed", "error", err)
		}
		calendar = availStore
		ledger = orderLedger
		directory = listingDir
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		seed = listingDir.Upsert
		cleanup = func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		}
	default:
		memDir := memory.NewListingDirectory()
		calendar = memory.NewAvailabilityStore()
		ledger = memory.NewOrderLedger()
		directory = memDir
		ready = func() error { return nil }
		seed = func(_ context.Context, ref listings.Ref, city, image string) error {
			memDir.Add(ref, city, image)
			return nil
		}
	}

	var events policies.OrderEvents
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, cleanup, err
		}
		events = kafka.NewOrderNotifier(producer, cfg.KafkaTopic, logger)
		prevCleanup := cleanup
		cleanup = func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka producer close failed", "error", err)
			}
			prevCleanup()
		}
	}

	gate := localidentity.NewGate()

	handlers := ginserver.Handlers{
		Orders: ginserver.OrderHandler{
			CreateOrder:   &orderapp.CreateHandler{Calendar: calendar, Ledger: ledger, Listings: directory, Events: events, Logger: logger},
			UpdateOrder:   &orderapp.UpdateHandler{Calendar: calendar, Ledger: ledger, Events: events, Logger: logger},
			CancelOrder:   &orderapp.CancelHandler{Calendar: calendar, Ledger: ledger, Events: events, Logger: logger},
			GetOrder:      &orderapp.GetHandler{Ledger: ledger},
			ListByUser:    &orderapp.ListByUserHandler{Ledger: ledger},
			ListByListing: &orderapp.ListByListingHandler{Ledger: ledger, Listings: directory},
		},
		Search: ginserver.SearchHandler{
			Handler: &searchapp.Handler{Calendar: calendar, Listings: directory, Logger: logger},
		},
		Availability: ginserver.AvailabilityHandler{
			SetDay:      &availabilityapp.SetDayHandler{Calendar: calendar, Listings: directory, Logger: logger},
			GetCalendar: &availabilityapp.GetCalendarHandler{Calendar: calendar},
		},
		Auth:           ginserver.AuthHandler{Gate: gate},
		AuthMiddleware: ginserver.AuthMiddleware{Gate: gate, Logger: logger}.Handle,
	}

	return application{handlers: handlers, ready: ready, seed: seed}, cleanup, nil
}

type listingFixture struct {
	ID     string `json:"id"`
	HostID string `json:"host_id"`
	Type   string `json:"type"`
	City   string `json:"city"`
	Image  string `json:"image"`
}

func (a application) loadListingFixtures(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fixtures []listingFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return err
	}
	for _, f := range fixtures {
		typ, err := listings.ParseType(f.Type)
		if err != nil {
			return err
		}
		ref := listings.Ref{
			ID:   listings.ListingID(f.ID),
			Host: listings.HostID(f.HostID),
			Type: typ,
		}
		if err := a.seed(ctx, ref, f.City, f.Image); err != nil {
			return err
		}
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
