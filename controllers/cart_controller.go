package controllers

import (
	"errors"
	"io"
	"strconv"

	"canteen/models"
	"canteen/store"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Carts *store.Store
}

// GetCart godoc
// @Summary Get cart
// @Description Get the current cart snapshot
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")
	c.JSON(200, gin.H{
		"success": true,
		"message": "Cart retrieved",
		"data":    ctrl.Carts.Snapshot(userID),
	})
}

// AddItem godoc
// @Summary Add item to cart
// @Description Add a menu item to the cart, merging quantities for an item already present
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Item and quantity (quantity defaults to 1)"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := ctrl.Carts.AddItem(userID, req.Item, quantity); err != nil {
		if errors.Is(err, store.ErrMissingID) || errors.Is(err, store.ErrInvalidQuantity) {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to add item"})
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Item added to cart",
		"data":    ctrl.Carts.Snapshot(userID),
	})
}

// UpdateItem godoc
// @Summary Update cart line quantity
// @Description Set a line's quantity; zero or less removes the line
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Menu item ID"
// @Param request body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items/{id} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	itemID, _ := strconv.Atoi(c.Param("id"))
	if itemID <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid item ID"})
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctrl.Carts.UpdateQuantity(userID, itemID, *req.Quantity)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Cart updated",
		"data":    ctrl.Carts.Snapshot(userID),
	})
}

// RemoveItem godoc
// @Summary Remove cart line
// @Description Remove one line from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	itemID, _ := strconv.Atoi(c.Param("id"))
	if itemID <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid item ID"})
		return
	}

	ctrl.Carts.RemoveItem(userID, itemID)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Item removed",
		"data":    ctrl.Carts.Snapshot(userID),
	})
}

// ClearCart godoc
// @Summary Clear cart
// @Description Empty the cart completely
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID := c.GetInt("user_id")
	ctrl.Carts.Clear(userID)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Cart cleared",
		"data":    ctrl.Carts.Snapshot(userID),
	})
}

// Reorder godoc
// @Summary Reorder a past order
// @Description Replay every line of one of the caller's past orders into the cart at its stored quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ReorderRequest true "Order to replay"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/reorder [post]
func (ctrl *CartController) Reorder(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctx := c.Request.Context()

	var ownerID int
	err := models.DB.QueryRow(ctx, "SELECT user_id FROM orders WHERE id=$1", req.OrderID).Scan(&ownerID)
	if err != nil || ownerID != userID {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	rows, err := models.DB.Query(ctx,
		`SELECT menu_item_id, name, COALESCE(category, ''), price, quantity, COALESCE(image_url, '')
		FROM order_items WHERE order_id=$1 ORDER BY id`, req.OrderID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load order items"})
		return
	}
	defer rows.Close()

	added := 0
	for rows.Next() {
		var line models.CartLine
		var quantity int
		if err := rows.Scan(&line.ID, &line.Name, &line.Category, &line.Price, &quantity, &line.Image); err != nil {
			continue
		}
		if err := ctrl.Carts.AddItem(userID, line, quantity); err == nil {
			added++
		}
	}

	if added == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Order has no items to reorder"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Items added to your cart",
		"data":    ctrl.Carts.Snapshot(userID),
	})
}

// Events godoc
// @Summary Cart event stream
// @Description Server-sent events: one cart snapshot on connect, then one per mutation
// @Tags Cart
// @Security BearerAuth
// @Produce text/event-stream
// @Router /cart/events [get]
func (ctrl *CartController) Events(c *gin.Context) {
	userID := c.GetInt("user_id")

	events, cancel := ctrl.Carts.Subscribe(userID)
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("cart", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
