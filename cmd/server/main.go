package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/online-catalog/backend/internal/cart"
	"github.com/online-catalog/backend/internal/config"
	"github.com/online-catalog/backend/internal/handlers"
	"github.com/online-catalog/backend/internal/middleware"
	"github.com/online-catalog/backend/internal/repository"
	"github.com/online-catalog/backend/internal/service"
	"github.com/online-catalog/backend/internal/storage"
	"github.com/online-catalog/backend/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting catalog backend",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Initialize repositories: MongoDB when configured, otherwise the
	// seeded in-memory store for local development.
	var (
		productRepo  repository.ProductRepository
		optionRepo   repository.OptionRepository
		orderRepo    repository.OrderRepository
		settingsRepo repository.SettingsRepository
	)

	if cfg.Mongo.URI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := repository.Connect(ctx, cfg.Mongo.URI)
		cancel()
		if err != nil {
			log.Error("failed to connect to mongodb", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Error("failed to disconnect from mongodb", "error", err)
			}
		}()

		db := client.Database(cfg.Mongo.Database)
		productRepo = repository.NewMongoProductRepository(db)
		optionRepo = repository.NewMongoOptionRepository(db)
		orderRepo = repository.NewMongoOrderRepository(db)
		settingsRepo = repository.NewMongoSettingsRepository(db)
		log.Info("using mongodb storage", "database", cfg.Mongo.Database)
	} else {
		productRepo = repository.NewInMemoryProductRepository(repository.SeedProducts()...)
		optionRepo = repository.NewInMemoryOptionRepository(repository.SeedOptions()...)
		orderRepo = repository.NewInMemoryOrderRepository()
		settingsRepo = repository.NewInMemorySettingsRepository()
		log.Info("using in-memory storage with seed catalog")
	}

	// Image object store
	imageStore, err := storage.NewDiskImageStore(cfg.Storage.ImageDir, cfg.Storage.ImageBaseURL, log)
	if err != nil {
		log.Error("failed to initialize image store", "error", err)
		os.Exit(1)
	}

	// Session carts
	cartStore := cart.NewStore()

	// Initialize services
	productService := service.NewProductService(productRepo, optionRepo, imageStore, log)
	optionService := service.NewOptionService(optionRepo, log)
	orderService := service.NewOrderService(orderRepo, settingsRepo, log)
	settingsService := service.NewSettingsService(settingsRepo, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	productHandler := handlers.NewProductHandler(productService, log)
	optionHandler := handlers.NewOptionHandler(optionService, log)
	cartHandler := handlers.NewCartHandler(productService, cartStore, log)
	orderHandler := handlers.NewOrderHandler(orderService, cartStore, log)
	settingsHandler := handlers.NewSettingsHandler(settingsService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "api_key"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// Uploaded image objects
	r.Get("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.Storage.ImageDir))).ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Storefront
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{productId}", productHandler.GetProduct)
		r.Get("/options", optionHandler.ListOptions)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{lineKey}", cartHandler.UpdateItem)
			r.Delete("/items/{lineKey}", cartHandler.RemoveItem)
		})

		r.Post("/orders", orderHandler.CreateOrder)

		// Admin console
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Admin))

			r.Post("/products", productHandler.CreateProduct)
			r.Put("/products/{productId}", productHandler.UpdateProduct)
			r.Delete("/products/{productId}", productHandler.DeleteProduct)

			r.Post("/options", optionHandler.CreateOption)
			r.Put("/options/{optionId}", optionHandler.UpdateOption)
			r.Delete("/options/{optionId}", optionHandler.DeleteOption)

			r.Get("/orders", orderHandler.ListOrders)
			r.Get("/orders/export", orderHandler.ExportOrders)
			r.Put("/orders/{orderId}/status", orderHandler.UpdateStatus)
			r.Delete("/orders/{orderId}", orderHandler.DeleteOrder)

			r.Get("/settings", settingsHandler.GetSettings)
			r.Put("/settings", settingsHandler.SaveSettings)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
