package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/minhnhutZzz/alotra-storefront/catalog"
	listControllers "github.com/minhnhutZzz/alotra-storefront/controllers/list"
	"github.com/minhnhutZzz/alotra-storefront/store"
	"github.com/minhnhutZzz/alotra-storefront/tabsync"
)

// Deps is everything the route groups need wired in.
type Deps struct {
	Catalog *catalog.Client
	Stores  *store.Stores
	Views   *listControllers.Views
	Hub     *tabsync.Hub
}

// SetupRoutes is the single entry‐point that wires up the storefront and
// admin route groups.
func SetupRoutes(r *gin.Engine, deps *Deps) {
	// 1️⃣ Public storefront routes (session middleware only)
	SetupShopRoutes(r, deps)

	// 2️⃣ Admin routes (API‐Key‐protected)
	SetupAdminRoutes(r, deps)
}
