package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/minhnhutZzz/alotra-storefront/auth"
	cartControllers "github.com/minhnhutZzz/alotra-storefront/controllers/cart"
	listControllers "github.com/minhnhutZzz/alotra-storefront/controllers/list"
	wishlistControllers "github.com/minhnhutZzz/alotra-storefront/controllers/wishlist"
	"github.com/minhnhutZzz/alotra-storefront/middleware"
)

// SetupShopRoutes registers everything a storefront browser talks to. Every
// route runs behind the session middleware so the cart and wishlist always
// have an owner.
func SetupShopRoutes(r *gin.Engine, deps *Deps) {
	shop := r.Group("/")
	shop.Use(middleware.EnsureSession(deps.Stores.Sessions), middleware.ParseToken)
	{
		// ──────────────── Session ────────────────
		shop.POST("/api/session", auth.IssueSession())

		// ──────────────── Shopping Cart ────────────────
		cartGroup := shop.Group("/api/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(deps.Stores.Carts))
			cartGroup.POST("/add", cartControllers.AddToCart(deps.Stores.Carts, deps.Hub))
			cartGroup.PUT("/update", cartControllers.UpdateCartItem(deps.Stores.Carts, deps.Hub))
			cartGroup.DELETE("/remove", cartControllers.RemoveFromCart(deps.Stores.Carts, deps.Hub))
			cartGroup.DELETE("/clear", cartControllers.ClearCart(deps.Stores.Carts, deps.Hub))
		}

		// ──────────────── Wishlist ────────────────
		wishlistGroup := shop.Group("/api/wishlist")
		{
			wishlistGroup.GET("", wishlistControllers.GetWishlist(deps.Stores.Wishlists))
			wishlistGroup.POST("/add", wishlistControllers.AddToWishlist(deps.Stores.Wishlists, deps.Hub))
			wishlistGroup.DELETE("/remove/:productId", wishlistControllers.RemoveFromWishlist(deps.Stores.Wishlists, deps.Hub))
			wishlistGroup.GET("/contains/:productId", wishlistControllers.ContainsInWishlist(deps.Stores.Wishlists))
		}

		// ──────────────── Product List Views ────────────────
		viewGroup := shop.Group("/views")
		{
			viewGroup.GET("/:view", listControllers.Show(deps.Views, false))
			viewGroup.POST("/:view/page/:n", listControllers.GoToPage(deps.Views, false))
			viewGroup.POST("/:view/search", listControllers.Search(deps.Views, false))
			viewGroup.POST("/:view/retry", listControllers.Retry(deps.Views, false))
		}

		// ──────────────── Cross-tab sync ────────────────
		shop.GET("/ws/sync", func(c *gin.Context) {
			deps.Hub.Subscribe(c.Writer, c.Request, middleware.SessionID(c))
		})
	}
}
