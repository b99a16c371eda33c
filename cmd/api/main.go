package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pearlify/internal/config"
	"pearlify/internal/handler"
	"pearlify/internal/infra/db"
	"pearlify/internal/infra/kv"
	infraRepo "pearlify/internal/infra/repository"
	"pearlify/internal/logging"
	"pearlify/internal/refresh"
	repo "pearlify/internal/repository"
	"pearlify/internal/server"
	"pearlify/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New("api", cfg.LogLevel)

	// collections and the audit trail
	var store repo.KeyValueStore
	var auditRepo repo.AuditLogRepository
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return err
		}
		store = kv.NewGormStore(gormDB)
		auditRepo = infraRepo.NewAuditLogGormRepository(gormDB)
	default:
		store = kv.NewMemoryStore()
		auditRepo = infraRepo.NewAuditLogKVRepository(store)
	}
	// session hand-off never outlives the visit
	sessionStore := kv.NewMemoryStore(kv.WithTTL(cfg.SessionTTL))

	storeLogger := logging.New("store", cfg.LogLevel)
	orderRepo := infraRepo.NewOrderCollectionStore(store, cfg.OrderCollections, storeLogger)
	cartRepo := infraRepo.NewCartKVRepository(store, storeLogger)
	sessionRepo := infraRepo.NewSessionKVRepository(sessionStore, storeLogger)
	productRepo := infraRepo.NewStaticProductRepository()

	idGen := &uuidGenerator{}
	clock := &realClock{}

	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productUC, clock)
	checkoutUC := usecase.NewCheckoutUsecase(orderRepo, cartRepo, sessionRepo, idGen, clock, logging.New("checkout", cfg.LogLevel))
	trackerUC := usecase.NewStatusTrackerUsecase(orderRepo, sessionRepo, cfg.Location)
	lifecycleUC := usecase.NewLifecycleUsecase(orderRepo, auditRepo, idGen, clock, logging.New("lifecycle", cfg.LogLevel))
	boardUC := usecase.NewAdminOrderUsecase(orderRepo, auditRepo, clock, cfg.Location)
	analyticsUC := usecase.NewAnalyticsUsecase(orderRepo, clock, cfg.Location, logging.New("analytics", cfg.LogLevel))

	refreshLogger := logging.New("refresh", cfg.LogLevel)
	dashboard := refresh.NewDashboardCache(analyticsUC.Compute, refreshLogger)
	poller := refresh.NewPoller(cfg.RefreshInterval, dashboard.RefreshAll, refreshLogger)

	e := server.New(server.Options{
		Handlers: server.Handlers{
			Product:    handler.NewProductHandler(productUC),
			Cart:       handler.NewCartHandler(cartUC),
			Order:      handler.NewOrderHandler(checkoutUC, trackerUC),
			AdminOrder: handler.NewAdminOrderHandler(boardUC, lifecycleUC),
			Dashboard:  handler.NewDashboardHandler(dashboard),
		},
		NewSessionID: idGen.NewID,
		SessionTTL:   cfg.SessionTTL,
		Logger:       logging.New("http", cfg.LogLevel),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return poller.Run(gctx)
	})
	g.Go(func() error {
		addr := ":" + strings.TrimPrefix(cfg.Port, ":")
		logger.Infof("listening on %s (store=%s, collections=%v)", addr, cfg.StoreDriver, cfg.OrderCollections)
		return server.Start(gctx, e, addr)
	})
	return g.Wait()
}
