// @title           UpaHeart Storefront API
// @version         1.0.0
// @description     Backend for the UpaHeart gifting storefront: product catalog, session carts, the multi-step checkout flow with personalization uploads, coupon validation, Razorpay order creation and the AI gift concierge.

// @contact.name   API Support
// @contact.email  support@example.com

// @host      localhost:8080
// @BasePath  /

package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"upaheart-backend/internal/cart"
	"upaheart-backend/internal/catalog"
	"upaheart-backend/internal/checkout"
	"upaheart-backend/internal/concierge"
	"upaheart-backend/internal/config"
	"upaheart-backend/internal/coupon"
	"upaheart-backend/internal/database"
	"upaheart-backend/internal/handlers"
	"upaheart-backend/internal/middleware"
	"upaheart-backend/internal/payment"
	"upaheart-backend/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Static product catalog
	cat := catalog.New()

	// Coupon validation
	if cfg.CouponCode == "" {
		log.Println("Warning: COUPON_CODE not set. Every coupon code will be rejected.")
	}
	coupons := coupon.NewValidator(cfg.CouponCode, cfg.CouponDiscountPerUnit)

	// Cart snapshots: Redis when configured, in-process otherwise
	var snapshots cart.Snapshotter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse REDIS_URL: %v", err)
		}
		ttl := time.Duration(cfg.CartTTLMinutes) * time.Minute
		snapshots = cart.NewRedisSnapshots(redis.NewClient(opts), ttl)
	} else {
		log.Println("Warning: REDIS_URL not set. Cart snapshots will be kept in process memory only.")
		snapshots = cart.NewMemorySnapshots()
	}
	carts := cart.NewStore(snapshots)

	// Supabase storage for customization images
	storageClient, err := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	// Order bookkeeping database (optional)
	var dbClient *database.Client
	if cfg.DatabaseURL != "" {
		migrator, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize migrator: %v", err)
		} else {
			if err := migrator.Run(); err != nil {
				log.Printf("Warning: Migration failed: %v", err)
			}
			migrator.Close()
		}

		dbClient, err = database.NewClient(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize database client: %v", err)
			log.Println("Order records will not be written.")
			dbClient = nil
		} else {
			defer dbClient.Close()
		}
	} else {
		log.Println("Warning: DATABASE_URL not set. Order records will not be written.")
	}

	// Razorpay orders
	payments := payment.NewService(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, coupons, dbClient)

	// Checkout step machine
	checkouts := checkout.NewService(carts, coupons, storageClient, payments)

	// Gemini concierge (optional)
	var conciergeService *concierge.Service
	if cfg.GeminiAPIKey != "" {
		conciergeService, err = concierge.NewService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cat.All())
		if err != nil {
			log.Printf("Warning: Failed to initialize concierge: %v", err)
		} else {
			defer conciergeService.Close()
		}
	} else {
		log.Println("Warning: GEMINI_API_KEY not set. Concierge endpoint disabled.")
	}

	// Handlers
	productsHandler := handlers.NewProductsHandler(cat)
	cartHandler := handlers.NewCartHandler(carts, cat)
	checkoutHandler := handlers.NewCheckoutHandler(checkouts)
	couponHandler := handlers.NewCouponHandler(coupons)
	ordersHandler := handlers.NewOrdersHandler(payments)
	uploadHandler := handlers.NewUploadHandler(storageClient)

	// Setup router
	router := gin.Default()

	// Health check
	router.GET("/health", handlers.HealthHandler)

	// Collaborator endpoints
	router.POST("/create-order", ordersHandler.CreateOrder)
	router.POST("/verify-payment", ordersHandler.VerifyPayment)
	router.POST("/upload-url", uploadHandler.UploadURL)
	router.POST("/validate-coupon", couponHandler.ValidateCoupon)

	// Storefront API
	api := router.Group("/api/v1")
	api.Use(middleware.CartSession())

	api.GET("/products", productsHandler.ListProducts)
	api.GET("/products/:product_id", productsHandler.GetProduct)

	api.GET("/cart", cartHandler.GetCart)
	api.DELETE("/cart", cartHandler.ClearCart)
	api.POST("/cart/items", cartHandler.AddItem)
	api.DELETE("/cart/items/:item_id", cartHandler.RemoveItem)
	api.PATCH("/cart/items/:item_id", cartHandler.UpdateItem)
	api.POST("/cart/items/:item_id/file", cartHandler.AttachFile)

	api.GET("/checkout", checkoutHandler.GetCheckout)
	api.POST("/checkout/shipping", checkoutHandler.SubmitShipping)
	api.POST("/checkout/uploads", checkoutHandler.SubmitUploads)
	api.POST("/checkout/coupon", checkoutHandler.ApplyCoupon)
	api.DELETE("/checkout/coupon", checkoutHandler.RemoveCoupon)
	api.POST("/checkout/order", checkoutHandler.CreateOrder)
	api.POST("/checkout/confirm", checkoutHandler.ConfirmPayment)

	if conciergeService != nil {
		conciergeHandler := handlers.NewConciergeHandler(conciergeService)
		api.POST("/concierge", conciergeHandler.Chat)
	}

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
