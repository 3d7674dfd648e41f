package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/nuts-storefront/docs"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/cache"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/config"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/health"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/metrics"
	repository "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/nuts-storefront/internal/services"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/nuts-storefront/pkg/stripe"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Nuts Storefront API
//	@version					1.0
//	@description				Catalogue, cart, checkout and customer accounts of the nuts storefront.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracer(ctx, &cfg.Otel)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	if err := repos.Migrate(ctx); err != nil {
		slog.Error("❌ Error applying the schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)
	stripeClient := stripe.NewStripeClient(cfg.Stripe.WebhookSecret)

	locationService := service.NewLocationService(repos.Locations, redisCache, cfg.Cache.DefaultTTL)
	productService := service.NewProductService(repos.Products, redisCache, cfg.Cache.DefaultTTL)
	cartService := service.NewCartService(repos.Carts, repos.Products, repos.Transactor)
	orderService := service.NewOrderService(repos.Orders, repos.Carts, repos.Profiles, locationService, repos.Transactor)
	paymentService := service.NewPaymentService(repos.Payments, repos.Orders, repos.Transactor, stripeClient)
	userService := service.NewUserService(repos.Users, repos.Profiles, repos.Locations, locationService, rateLimitRepo, repos.Transactor, cfg.Security)

	userHandler := handlers.NewUserHandler(userService, cartService)
	profileHandler := handlers.NewProfileHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	locationHandler := handlers.NewLocationHandler(locationService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))
	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Session)

	// guests and customers share the cart endpoints
	shopper := func(next http.Handler) http.HandlerFunc {
		return sessionMiddleware.Handle(authMiddleware.Optional(next))
	}

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/auth/register/individual", sessionMiddleware.Handle(userHandler.RegisterIndividual()))
	routerMux.HandleFunc("POST /api/v1/auth/register/business", sessionMiddleware.Handle(userHandler.RegisterBusiness()))
	routerMux.HandleFunc("POST /api/v1/auth/login", sessionMiddleware.Handle(userHandler.Login()))
	routerMux.HandleFunc("POST /api/v1/auth/password/forgot", userHandler.ForgotPassword())
	routerMux.HandleFunc("POST /api/v1/auth/password/reset", userHandler.ResetPassword())
	routerMux.HandleFunc("GET /api/v1/profile", authMiddleware.Authenticate(profileHandler.GetProfile()))
	routerMux.HandleFunc("PUT /api/v1/profile/contact", authMiddleware.Authenticate(profileHandler.UpdateContact()))
	routerMux.HandleFunc("PUT /api/v1/profile/address", authMiddleware.Authenticate(profileHandler.UpdateAddress()))
	routerMux.HandleFunc("PUT /api/v1/profile/password", authMiddleware.Authenticate(profileHandler.ChangePassword()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/countries", locationHandler.ListCountries())
	routerMux.HandleFunc("GET /api/v1/countries/{id}/regions", locationHandler.ListRegions())
	routerMux.HandleFunc("GET /api/v1/cart", shopper(cartHandler.GetCart()))
	routerMux.HandleFunc("GET /api/v1/cart/counter", shopper(cartHandler.Counter()))
	routerMux.HandleFunc("POST /api/v1/cart/items/{productId}", shopper(cartHandler.AddItem()))
	routerMux.HandleFunc("POST /api/v1/cart/items/{itemId}/{action}", shopper(cartHandler.UpdateItem()))
	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Authenticate(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/transactions", authMiddleware.Authenticate(paymentHandler.ListTransactions()))
	routerMux.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.HandleStripeWebhook())

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
