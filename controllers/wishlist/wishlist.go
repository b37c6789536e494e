package wishlistControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minhnhutZzz/alotra-storefront/middleware"
	"github.com/minhnhutZzz/alotra-storefront/models"
	"github.com/minhnhutZzz/alotra-storefront/store"
	"github.com/minhnhutZzz/alotra-storefront/tabsync"
)

// GET /api/wishlist
func GetWishlist(wishlists store.Wishlists) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := middleware.OwnerID(c)

		lines, err := wishlists.Get(c.Request.Context(), owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch wishlist"))
			return
		}
		c.JSON(http.StatusOK, models.Ok(gin.H{"items": lines, "count": len(lines)}))
	}
}

// POST /api/wishlist/add (form: productId, name, price)
func AddToWishlist(wishlists store.Wishlists, hub *tabsync.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := middleware.OwnerID(c)

		productID := c.PostForm("productId")
		name := c.PostForm("name")
		if productID == "" || name == "" {
			c.JSON(http.StatusBadRequest, models.Fail("productId and name are required"))
			return
		}
		price, err := strconv.ParseFloat(c.PostForm("price"), 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, models.Fail("Invalid price"))
			return
		}

		added, err := wishlists.Add(c.Request.Context(), owner, models.WishlistLine{
			ProductID: productID,
			Name:      name,
			Price:     price,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to save to wishlist"))
			return
		}

		if added {
			hub.Broadcast(middleware.SessionID(c), "wishlist")
		}
		c.JSON(http.StatusOK, models.Ok(gin.H{"added": added}))
	}
}

// DELETE /api/wishlist/remove/:productId
func RemoveFromWishlist(wishlists store.Wishlists, hub *tabsync.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := middleware.OwnerID(c)
		productID := c.Param("productId")

		removed, err := wishlists.Remove(c.Request.Context(), owner, productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to remove from wishlist"))
			return
		}
		if !removed {
			c.JSON(http.StatusNotFound, models.Fail("Wishlist item not found"))
			return
		}

		hub.Broadcast(middleware.SessionID(c), "wishlist")
		c.JSON(http.StatusOK, models.Ok(gin.H{"removed": true}))
	}
}

// GET /api/wishlist/contains/:productId
func ContainsInWishlist(wishlists store.Wishlists) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := middleware.OwnerID(c)

		in, err := wishlists.Contains(c.Request.Context(), owner, c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to check wishlist"))
			return
		}
		c.JSON(http.StatusOK, models.Ok(gin.H{"inWishlist": in}))
	}
}
