package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/furqanahmad03/e-store-api/catalog"
	"github.com/furqanahmad03/e-store-api/metrics"
	"github.com/furqanahmad03/e-store-api/middleware"
	"github.com/furqanahmad03/e-store-api/mirror"
	"github.com/furqanahmad03/e-store-api/models"
	"github.com/furqanahmad03/e-store-api/notify"
	"github.com/furqanahmad03/e-store-api/routes"
	"github.com/furqanahmad03/e-store-api/store"
)

func main() {
	log.Println("Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Session{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.WishlistItem{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Metrics
	appMetrics, meterProvider, err := metrics.Init(ctx)
	if err != nil {
		log.Printf("metrics disabled: %v", err)
	} else {
		defer func() {
			if err := meterProvider.Shutdown(context.Background()); err != nil {
				log.Printf("metrics shutdown: %v", err)
			}
		}()
	}

	// Catalog, with a redis product cache when REDIS_ADDR is set
	var cat catalog.Catalog = catalog.NewGormCatalog(db)
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		cat = catalog.NewCachedCatalog(cat, catalog.NewRedisCache(client), appMetrics)
		log.Printf("product cache enabled at %s", addr)
	}

	// Upstream cart mirror, best-effort unless adding to the cart
	var mir mirror.Mirror = mirror.Noop{}
	if base := os.Getenv("MIRROR_URL"); base != "" {
		mir = mirror.NewHTTPMirror(base)
		log.Printf("cart mirror enabled at %s", base)
	}

	// Websocket notice hub and the session store
	hub := notify.NewHub()
	mgr := store.NewManager(store.NewGormRepository(db), cat, mir, hub, appMetrics)

	// Sweep expired sessions in the background
	go mgr.StartSweeper(ctx, store.SweepInterval)

	// Gin setup
	r := gin.Default()
	r.Use(middleware.RequestMetrics(appMetrics))

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, mgr, cat, hub)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}
	return db
}
