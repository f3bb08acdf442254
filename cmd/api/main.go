package main

import (
	"database/sql"
	"net/http"

	"github.com/chesterOps/ecommerce-backend/internal/config"
	"github.com/chesterOps/ecommerce-backend/internal/modules/auth"
	"github.com/chesterOps/ecommerce-backend/internal/modules/catalog"
	"github.com/chesterOps/ecommerce-backend/internal/modules/coupon"
	"github.com/chesterOps/ecommerce-backend/internal/modules/flashsale"
	"github.com/chesterOps/ecommerce-backend/internal/modules/order"
	"github.com/chesterOps/ecommerce-backend/internal/modules/payment"
	"github.com/chesterOps/ecommerce-backend/internal/modules/review"
	"github.com/chesterOps/ecommerce-backend/internal/modules/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("could not open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.WithError(err).Fatal("could not reach database")
	}
	logger.Info("connected to database")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	tokens := auth.New(cfg.JWTSecret)

	// Identity
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo, tokens)
	user.NewHandler(userService, tokens, logger).RegisterRoutes(router)

	// Catalog
	productRepo := catalog.NewPostgresRepository(db)
	categoryRepo := catalog.NewCategoryPostgresRepository(db)
	catalogService := catalog.NewService(productRepo, categoryRepo, logger)
	catalog.NewHandler(catalogService, tokens, logger).RegisterRoutes(router)

	// Reviews feed rating aggregates back into the catalog.
	reviewRepo := review.NewPostgresRepository(db)
	reviewService := review.NewService(reviewRepo, catalogService, logger)
	review.NewHandler(reviewService, tokens, logger).RegisterRoutes(router)

	// Promotions
	couponRepo := coupon.NewPostgresRepository(db)
	couponService := coupon.NewService(couponRepo)
	coupon.NewHandler(couponService, tokens, logger).RegisterRoutes(router)

	saleRepo := flashsale.NewPostgresRepository(db)
	saleService := flashsale.NewService(saleRepo, catalogService)
	flashsale.NewHandler(saleService, tokens, logger).RegisterRoutes(router)

	// Orders
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, catalogService, logger)
	order.NewHandler(orderService, tokens, logger).RegisterRoutes(router)

	// Payments
	gateways := payment.Registry{
		payment.ProviderFlutterwave: payment.NewFlutterwaveGateway(
			cfg.FlutterwaveSecretKey,
			cfg.FlutterwaveWebhookHash,
		),
		payment.ProviderPaystack: payment.NewPaystackGateway(cfg.PaystackSecretKey),
	}
	paymentRepo := payment.NewPostgresRepository(db)
	paymentService := payment.NewService(gateways, cfg.PaymentProvider, paymentRepo, orderService, userService, logger)
	payment.NewHandler(paymentService, tokens, logger).RegisterRoutes(router)

	logger.WithField("port", cfg.Port).Info("api server starting")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
