package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"tablebook/internal/config"
	"tablebook/internal/database"
	"tablebook/internal/handler"
	"tablebook/internal/middleware"
	"tablebook/internal/queue"
	"tablebook/internal/repository"
	"tablebook/internal/router"
	"tablebook/internal/trie"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	storeRepo := repository.NewStoreRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	// Rebuild the autocomplete index from the catalog.  The index lives only
	// in this process; a restart recovers it from the store names.
	names := trie.New()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		all, err := storeRepo.AllNames(ctx)
		cancel()
		if err != nil {
			log.Fatalf("autocomplete warm-up: %v", err)
		}
		for _, n := range all {
			names.Insert(n)
		}
		log.Printf("autocomplete index ready (%d names)", names.Len())
	}

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	customerRes := handler.NewCustomerReservationHandler(reservationRepo, storeRepo)
	partnerRes := handler.NewPartnerReservationHandler(reservationRepo, storeRepo)
	partnerStore := handler.NewPartnerStoreHandler(storeRepo, names)
	reviewHandler := handler.NewReviewHandler(reviewRepo, reservationRepo, storeRepo)
	publicStore := handler.NewPublicStoreHandler(storeRepo, names)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterCustomer(e, customerRes, reviewHandler, cfg.JWTSecret)
	router.RegisterPartner(e, partnerStore, partnerRes, cfg.JWTSecret)
	router.RegisterPublic(e, publicStore, reviewHandler,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)

	// Background consumer for check-in events; reconnects on its own.
	go func() {
		if err := queue.StartVisitConsumer(); err != nil {
			log.Printf("visit consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
