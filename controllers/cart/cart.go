package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minhnhutZzz/alotra-storefront/middleware"
	"github.com/minhnhutZzz/alotra-storefront/models"
	"github.com/minhnhutZzz/alotra-storefront/store"
	"github.com/minhnhutZzz/alotra-storefront/tabsync"
)

// cartPayload is what every cart endpoint answers with: the full cart plus
// derived totals, so clients never read counts back out of the DOM.
func cartPayload(lines []models.CartLine) gin.H {
	return gin.H{
		"items": lines,
		"total": models.CartTotal(lines),
		"count": models.CartCount(lines),
	}
}

// POST /api/cart/add (form: productId, name, price, quantity)
func AddToCart(carts store.Carts, hub *tabsync.Hub) gin.HandlerFunc {
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

		quantity := 1
		if q := c.PostForm("quantity"); q != "" {
			quantity, err = strconv.Atoi(q)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.Fail("Invalid quantity"))
				return
			}
		}

		lines, err := carts.Add(c.Request.Context(), owner, models.CartLine{
			ProductID: productID,
			Name:      name,
			Price:     price,
			Quantity:  quantity,
		})
		if errors.Is(err, store.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, models.Fail("Quantity must be at least 1"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to add item to cart"))
			return
		}

		hub.Broadcast(middleware.SessionID(c), "cart")
		c.JSON(http.StatusOK, models.OkMessage(cartPayload(lines), "Added to cart"))
	}
}

// PUT /api/cart/update (form: productId, quantity)
func UpdateCartItem(carts store.Carts, hub *tabsync.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := middleware.OwnerID(c)

		productID := c.PostForm("productId")
		quantity, err := strconv.Atoi(c.PostForm("quantity"))
		if productID == "" || err != nil {
			c.JSON(http.StatusBadRequest, models.Fail("productId and quantity are required"))
			return
		}

		lines, err := carts.UpdateQuantity(c.Request.Context(), owner, productID, quantity)
		switch {
		case errors.Is(err, store.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, models.Fail("Quantity must be at least 1"))
			return
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, models.Fail("Cart item not found"))
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to update cart item"))
			return
		}

		hub.Broadcast(middleware.SessionID(c), "cart")
		c.JSON(http.StatusOK, models.Ok(cartPayload(lines)))
	}
}

// DELETE /api/cart/remove?productId=...
func RemoveFromCart(carts store.Carts, hub *tabsync.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := middleware.OwnerID(c)

		productID := c.Query("productId")
		if productID == "" {
			productID = c.PostForm("productId")
		}
		if productID == "" {
			c.JSON(http.StatusBadRequest, models.Fail("productId is required"))
			return
		}

		lines, err := carts.Remove(c.Request.Context(), owner, productID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.Fail("Cart item not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to remove item"))
			return
		}

		hub.Broadcast(middleware.SessionID(c), "cart")
		c.JSON(http.StatusOK, models.Ok(cartPayload(lines)))
	}
}

// DELETE /api/cart/clear
func ClearCart(carts store.Carts, hub *tabsync.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := middleware.OwnerID(c)

		if err := carts.Clear(c.Request.Context(), owner); err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to clear cart"))
			return
		}

		hub.Broadcast(middleware.SessionID(c), "cart")
		c.JSON(http.StatusOK, models.OkMessage(cartPayload([]models.CartLine{}), "Cart cleared"))
	}
}

// GET /api/cart — the caller's own cart
func GetCart(carts store.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := middleware.OwnerID(c)

		lines, err := carts.Get(c.Request.Context(), owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch cart"))
			return
		}
		c.JSON(http.StatusOK, models.Ok(cartPayload(lines)))
	}
}

// GET /api/cart/:id — any cart by session-or-user id (admin)
func GetCartByID(carts store.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.Param("id")
		if owner == "" {
			c.JSON(http.StatusBadRequest, models.Fail("id is required"))
			return
		}

		lines, err := carts.Get(c.Request.Context(), owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch cart"))
			return
		}
		c.JSON(http.StatusOK, models.Ok(cartPayload(lines)))
	}
}
