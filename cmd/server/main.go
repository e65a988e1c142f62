package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/roamio/tour-booking/internal/config"
	"github.com/roamio/tour-booking/internal/database"
	"github.com/roamio/tour-booking/internal/handler"
	"github.com/roamio/tour-booking/internal/middleware"
	"github.com/roamio/tour-booking/internal/queue"
	"github.com/roamio/tour-booking/internal/repository"
	"github.com/roamio/tour-booking/internal/router"
	"github.com/roamio/tour-booking/internal/session"
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db, cfg.DBName, cfg.HomeCountry); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	// Redis backs sessions, the response cache and the rate limiter.  The
	// app stays usable without it: sessions fall back to process memory
	// and the cache/limiter middlewares become pass-throughs.
	rdb := config.NewRedisClient()
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb)
	} else {
		log.Println("redis unavailable; using in-memory session store")
		sessions = session.NewMemoryStore()
	}

	users := repository.NewUserRepo(db)
	packages := repository.NewPackageRepo(db)
	destinations := repository.NewDestinationRepo(db)
	bookings := repository.NewBookingRepo(db)
	payments := repository.NewPaymentRepo(db)
	reviews := repository.NewReviewRepo(db)

	auth := handler.NewAuthHandler(cfg, users, sessions)
	catalog := handler.NewCatalogHandler(packages, destinations, reviews)
	booking := handler.NewBookingHandler(packages, bookings, payments)
	payment := handler.NewPaymentHandler(bookings)
	review := handler.NewReviewHandler(reviews, packages)
	admin := handler.NewAdminHandler(bookings, packages)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth)
	router.RegisterPublic(e, review, payment)
	router.RegisterUser(e, cfg.SessionSecret, sessions, cacheMW, catalog, booking, payment, review)
	router.RegisterAdmin(e, cfg.SessionSecret, sessions, admin)

	// Confirmation events are consumed in-process and appended to
	// logs/booking.log.  The consumer reconnects on its own.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
