package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	"storefront/internal/infra/memory"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logging"
	"storefront/internal/middleware"
	repo "storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
)

type repos struct {
	products repo.ProductRepository
	slots    repo.SlotRepository
	events   repo.CartEventRepository
}

func main() {
	//.envは無くてもよい
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("load .env", "err", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	log := logging.New(logging.Options{
		Service: "storefront",
		Env:     cfg.GoEnv,
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	r, err := buildRepos(ctx, cfg, log)
	if err != nil {
		return err
	}

	//Usecase生成
	links := checkout.NewLinkBuilder(cfg.CheckoutBaseURL, cfg.CheckoutGreeting)
	productUC := usecase.NewProductUsecase(r.products)
	cartUC := usecase.NewCartUsecase(r.slots, r.products, r.events, links, usecase.CartUsecaseOptions{
		Destination: cfg.CheckoutPhone,
		MaxStores:   cfg.CartCacheSize,
	}, log)

	//Handler生成
	productH := handler.NewProductHandler(productUC)
	cartH := handler.NewCartHandler(cartUC)
	session := middleware.Session(middleware.SessionConfig{
		Secret: cfg.SessionSecret,
		Secure: cfg.IsProd(),
	})

	//Server起動
	e := server.New(log)
	server.RegisterRoutes(e, session, productH, cartH)
	return server.Start(ctx, e, cfg.Addr(), log)
}

// STORAGE_DRIVERに応じてRepositoryを組み立て、カタログを投入する。
func buildRepos(ctx context.Context, cfg config.Config, log *slog.Logger) (repos, error) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Info("using in-memory storage")
		return repos{
			products: memory.NewProductRepository(catalog.Seed()),
			slots:    memory.NewSlotRepository(),
			events:   memory.NewCartEventRepository(),
		}, nil
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		return repos{}, err
	}
	if err := db.Migrate(gormDB, log); err != nil {
		return repos{}, err
	}

	products := infraRepo.NewProductGormRepository(gormDB)
	if err := products.Upsert(ctx, catalog.Seed()); err != nil {
		return repos{}, err
	}

	return repos{
		products: products,
		slots:    infraRepo.NewSlotGormRepository(gormDB),
		events:   infraRepo.NewCartEventGormRepository(gormDB),
	}, nil
}
