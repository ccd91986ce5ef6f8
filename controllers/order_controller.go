package controllers

import (
	"log"
	"strconv"
	"time"

	"canteen/models"
	"canteen/store"
	"canteen/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Carts *store.Store
}

// PlaceOrder godoc
// @Summary Place order
// @Description Turn the caller's cart into an order. The server-side cart is authoritative; the total is recomputed, never taken from the request.
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.PlaceOrderRequest true "Order data (legacy wire shape)"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Please login first!"})
		return
	}

	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}
	if req.UserID != 0 && req.UserID != userID {
		c.JSON(403, gin.H{"success": false, "message": "You can only place orders for your own account"})
		return
	}

	// Both rejections happen before any database work.
	snapshot := ctrl.Carts.Snapshot(userID)
	if len(snapshot.Items) == 0 {
		c.JSON(400, gin.H{"success": false, "message": "Your cart is empty!"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now()

	tx, err := models.DB.Begin(ctx)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to start transaction"})
		return
	}
	defer tx.Rollback(ctx)

	var orderID int
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (user_id, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		userID, snapshot.TotalAmount, models.StatusPlaced, now, now).Scan(&orderID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to place order. Try again!"})
		return
	}

	for _, line := range snapshot.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (order_id, menu_item_id, name, category, price, quantity, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			orderID, line.ID, line.Name, line.Category, line.Price, line.Quantity, line.Image)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to place order. Try again!"})
			return
		}
	}

	if err = tx.Commit(ctx); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to place order. Try again!"})
		return
	}

	// Exactly one clear, only after the order is durable. A failed placement
	// leaves the cart untouched so the user can retry.
	ctrl.Carts.Clear(userID)

	if email := c.GetString("user_email"); email != "" {
		go sendOrderConfirmation(email, orderID, snapshot.TotalAmount)
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Order placed successfully!",
		"data": gin.H{
			"orderId":     orderID,
			"totalAmount": snapshot.TotalAmount,
			"status":      models.StatusPlaced,
		},
	})
}

// GetOrdersByUser godoc
// @Summary Get order history
// @Description Get the user's past orders as a flat array, newest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param userId path int true "User ID (must match the token)"
// @Success 200 {array} models.Order
// @Failure 403 {object} models.ErrorResponse
// @Router /orders/{userId} [get]
func (ctrl *OrderController) GetOrdersByUser(c *gin.Context) {
	userID := c.GetInt("user_id")

	pathUserID, _ := strconv.Atoi(c.Param("userId"))
	if pathUserID != userID {
		c.JSON(403, gin.H{"success": false, "message": "You can only view your own orders"})
		return
	}

	ctx := c.Request.Context()

	rows, err := models.DB.Query(ctx,
		`SELECT id, user_id, total_amount, status, created_at
		FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.TotalAmount, &order.Status, &order.CreatedAt); err != nil {
			continue
		}
		order.StatusBadge = models.StatusBadge(order.Status)
		order.Items = []models.OrderItem{}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}

	for i := range orders {
		itemRows, err := models.DB.Query(ctx,
			`SELECT id, menu_item_id, name, COALESCE(category, ''), price, quantity, COALESCE(image_url, '')
			FROM order_items WHERE order_id=$1 ORDER BY id`, orders[i].ID)
		if err != nil {
			continue
		}
		for itemRows.Next() {
			var item models.OrderItem
			if err := itemRows.Scan(&item.ID, &item.MenuItemID, &item.Name, &item.Category,
				&item.Price, &item.Quantity, &item.Image); err != nil {
				continue
			}
			item.Image = utils.ResolveImageURL(item.Image)
			orders[i].Items = append(orders[i].Items, item)
		}
		itemRows.Close()
	}

	// The storefront consumes a bare array here, not the wrapped shape.
	c.JSON(200, orders)
}

// UpdateOrderStatus godoc
// @Summary Update order status
// @Description Set an order's status; the set of statuses is open (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Status is required"})
		return
	}

	tag, err := models.DB.Exec(c.Request.Context(),
		"UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3", req.Status, time.Now(), id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update order status"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Order status updated",
		"data": gin.H{
			"id":          id,
			"status":      req.Status,
			"statusBadge": models.StatusBadge(req.Status),
		},
	})
}

func sendOrderConfirmation(email string, orderID int, total float64) {
	emailSvc, err := models.NewEmailService()
	if err != nil {
		return
	}
	if err := emailSvc.SendOrderConfirmationEmail(email, orderID, total); err != nil {
		log.Println("Failed to send order confirmation:", err)
	}
}
