package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/minhnhutZzz/alotra-storefront/controllers/cart"
	exportControllers "github.com/minhnhutZzz/alotra-storefront/controllers/export"
	imageControllers "github.com/minhnhutZzz/alotra-storefront/controllers/images"
	listControllers "github.com/minhnhutZzz/alotra-storefront/controllers/list"
	"github.com/minhnhutZzz/alotra-storefront/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key
// middleware; the session middleware still runs so admin list views get
// their own controller instances per browser.
func SetupAdminRoutes(r *gin.Engine, deps *Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey, middleware.EnsureSession(deps.Stores.Sessions))
	{
		// ─────────── List Views (products, categories, users, promotions) ───────────
		viewAdmin := adminGroup.Group("/views")
		{
			viewAdmin.GET("/:view", listControllers.Show(deps.Views, true))
			viewAdmin.POST("/:view/page/:n", listControllers.GoToPage(deps.Views, true))
			viewAdmin.POST("/:view/search", listControllers.Search(deps.Views, true))
			viewAdmin.POST("/:view/retry", listControllers.Retry(deps.Views, true))
			viewAdmin.DELETE("/:view/items/:id", listControllers.DeleteItem(deps.Views, true))
		}

		// ─────────── Exports ───────────
		adminGroup.GET("/export/products.xlsx", exportControllers.ExportProductsToExcel(deps.Catalog))

		// ─────────── Support: inspect a shopper's cart ───────────
		adminGroup.GET("/cart/:id", cartControllers.GetCartByID(deps.Stores.Carts))
	}

	// Image uploads keep their backend-contract paths but stay behind the
	// API key: the storefront never writes images.
	imageGroup := r.Group("/api")
	imageGroup.Use(middleware.ValidateAPIKey)
	{
		imageGroup.POST("/cloudinary", imageControllers.UploadToCloudinary())
		imageGroup.GET("/product-images/check-limit/:productId", imageControllers.CheckImageLimit(deps.Catalog))
		imageGroup.POST("/product-images/upload/:productId", imageControllers.UploadProductImages(deps.Catalog))
	}
}
