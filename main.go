package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/minhnhutZzz/alotra-storefront/catalog"
	listControllers "github.com/minhnhutZzz/alotra-storefront/controllers/list"
	"github.com/minhnhutZzz/alotra-storefront/middleware"
	"github.com/minhnhutZzz/alotra-storefront/models"
	"github.com/minhnhutZzz/alotra-storefront/routes"
	"github.com/minhnhutZzz/alotra-storefront/store"
	"github.com/minhnhutZzz/alotra-storefront/tabsync"
)

func main() {
	log.Println("✅ Starting storefront gateway...")

	// Load environment variables
	_ = godotenv.Load()

	// Catalog backend client
	base := os.Getenv("CATALOG_BASE_URL")
	if base == "" {
		base = "http://localhost:8081"
	}
	client := catalog.NewClient(base, os.Getenv("CATALOG_API_KEY"))
	log.Printf("✅ Catalog backend: %s", base)

	// Session-scoped stores: Postgres when configured, in-memory otherwise
	stores := initStores()

	// Per-session list view controllers
	views, err := listControllers.NewViews(client)
	if err != nil {
		log.Fatalf("❌ View setup failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// Allow large image uploads (10 MB each, a handful per request)
	r.MaxMultipartMemory = 64 << 20

	r.Use(middleware.RequestID)

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", "X-Session-Id"},
		ExposeHeaders:    []string{"Content-Length", "X-Session-Id", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, &routes.Deps{
		Catalog: client,
		Stores:  stores,
		Views:   views,
		Hub:     tabsync.NewHub(),
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Gateway running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initStores connects GORM to Postgres when DB settings are present and
// falls back to the in-memory stores for local development.
func initStores() *store.Stores {
	dsn := databaseDSN()
	if dsn == "" {
		log.Println("⚠️ No database configured, using in-memory stores")
		return store.NewMemory()
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Session{},
		&models.Cart{},
		&models.CartLine{},
		&models.WishlistLine{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	log.Println("✅ Connected to Postgres")
	return store.NewDB(db)
}

func databaseDSN() string {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
	)
}
