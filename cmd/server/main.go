package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"souq/internal/config"
	"souq/internal/database"
	"souq/internal/handlers"
	"souq/internal/middleware"
	"souq/internal/repositories"
	"souq/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established")

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Repositories
	cartRepo := repositories.NewCartRepository(db.DB)
	productRepo := repositories.NewProductRepository(db.DB)
	orderRepo := repositories.NewOrderRepository(db.DB)
	userRepo := repositories.NewUserRepository(db.DB)
	reviewRepo := repositories.NewReviewRepository(db.DB)
	wishlistRepo := repositories.NewWishlistRepository(db.DB)

	// Payment processor client
	paymentService := services.NewPaymentService(services.PaymentConfig{
		SecretKey:   cfg.Payment.SecretKey,
		PublicKey:   cfg.Payment.PublicKey,
		Environment: cfg.Payment.Environment,
		BaseURL:     cfg.Payment.BaseURL,
		CallbackURL: cfg.Payment.CallbackURL,
	})

	// Services
	cartService := services.NewCartService(cartRepo, productRepo)
	checkoutService := services.NewCheckoutService(cartRepo, userRepo, paymentService, cfg.Payment.CallbackURL)
	fulfillmentService := services.NewFulfillmentService(cartRepo, orderRepo, productRepo, userRepo)
	orderService := services.NewOrderService(orderRepo)
	reviewService := services.NewReviewService(reviewRepo, productRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo)

	// Handlers
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	webhookHandler := handlers.NewWebhookHandler(paymentService, fulfillmentService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RecoverMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Post("/", cartHandler.AddItem)
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Delete("/items/{itemID}", cartHandler.RemoveItem)
		})

		r.Post("/checkout-session/{cartID}", checkoutHandler.InitiateSession)
		r.Post("/webhook", webhookHandler.HandleWebhook)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.ListOrders)
			r.Get("/{orderID}", orderHandler.GetOrder)
		})

		r.Route("/products/{productID}/reviews", func(r chi.Router) {
			r.Post("/", reviewHandler.CreateReview)
			r.Get("/", reviewHandler.ListReviews)
		})
		r.Delete("/reviews/{reviewID}", reviewHandler.DeleteReview)

		r.Route("/wishlist", func(r chi.Router) {
			r.Post("/", wishlistHandler.Add)
			r.Get("/", wishlistHandler.List)
			r.Delete("/{productID}", wishlistHandler.Remove)
		})
	})

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on %s (%s)", addr, cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
