package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/woodharbor/slabstore/internal/config"
	"github.com/woodharbor/slabstore/internal/events"
	"github.com/woodharbor/slabstore/internal/httpserver"
	"github.com/woodharbor/slabstore/internal/models"
	"github.com/woodharbor/slabstore/internal/payment"
	"github.com/woodharbor/slabstore/internal/repo"
	"github.com/woodharbor/slabstore/internal/search"
	"github.com/woodharbor/slabstore/internal/service"
	pkgdb "github.com/woodharbor/slabstore/pkg/db"
	"github.com/woodharbor/slabstore/pkg/logging"
	authmw "github.com/woodharbor/slabstore/pkg/middleware/auth"
	loggingmw "github.com/woodharbor/slabstore/pkg/middleware/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmpty(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.RefreshSecret, "JWT_REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	gateway, err := payment.NewOmiseGateway(cfg.OmisePublicKey, cfg.OmiseSecretKey)
	if err != nil {
		log.Fatalf("payment gateway: %v", err)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
	} else {
		logger.Warn("kafka disabled, no brokers configured")
	}

	var index *search.Index
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		index = &search.Index{ES: es, Index: cfg.ESIndex}
	} else {
		logger.Warn("search disabled, ES_URL not configured")
	}

	store := &repo.GormRepo{DB: db}
	discounts := &service.DiscountService{Repo: store}

	deps := &httpserver.Deps{
		Auth: &service.AuthService{
			Repo:          store,
			JWTSecret:     []byte(cfg.JWTSecret),
			RefreshSecret: []byte(cfg.RefreshSecret),
		},
		Catalog:  &service.CatalogService{Repo: store},
		Cart:     &service.CartService{Repo: store},
		Favorite: &service.FavoriteService{Repo: store},
		Discount: discounts,
		Reserve: &service.ReservationService{
			Repo:      store,
			Gateway:   gateway,
			Discounts: discounts,
			Producer:  producer,
			Search:    index,
			BaseURL:   cfg.BaseURL,
		},
		Search: index,
		AuthMW: authmw.New([]byte(cfg.JWTSecret)),
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("slabstore listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("slabstore stopped")
}
