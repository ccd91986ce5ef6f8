package controllers

import (
	"net/http"
	"strings"
	"testing"

	"canteen/models"
	"canteen/store"

	"github.com/gin-gonic/gin"
)

func newOrderTestRouter(carts *store.Store, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if userID != 0 {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", userID)
			c.Next()
		})
	}

	ctrl := &OrderController{Carts: carts}
	router.POST("/api/orders", ctrl.PlaceOrder)
	router.GET("/api/orders/:userId", ctrl.GetOrdersByUser)
	return router
}

func TestPlaceOrderRequiresLogin(t *testing.T) {
	router := newOrderTestRouter(store.New(), 0)

	w := doJSON(t, router, http.MethodPost, "/api/orders", `{"items":[]}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a user, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Please login first!") {
		t.Errorf("expected login prompt, got %s", w.Body.String())
	}
}

func TestPlaceOrderRejectsMalformedBody(t *testing.T) {
	router := newOrderTestRouter(store.New(), 1)

	w := doJSON(t, router, http.MethodPost, "/api/orders", `{"items":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestPlaceOrderRejectsForeignUserID(t *testing.T) {
	carts := store.New()
	carts.AddItem(1, models.CartLine{ID: 1, Name: "Nasi Goreng", Price: 100}, 1)
	router := newOrderTestRouter(carts, 1)

	w := doJSON(t, router, http.MethodPost, "/api/orders", `{"userId":2}`)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for a mismatched user id, got %d", w.Code)
	}

	// A rejected placement must leave the cart untouched.
	if snap := carts.Snapshot(1); len(snap.Items) != 1 {
		t.Errorf("cart was modified by a rejected order: %+v", snap.Items)
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	router := newOrderTestRouter(store.New(), 1)

	w := doJSON(t, router, http.MethodPost, "/api/orders", `{"userId":1}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an empty cart, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Your cart is empty!") {
		t.Errorf("expected empty-cart message, got %s", w.Body.String())
	}
}

func TestGetOrdersByUserRejectsOtherUsers(t *testing.T) {
	router := newOrderTestRouter(store.New(), 1)

	w := doJSON(t, router, http.MethodGet, "/api/orders/2", "")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 when requesting another user's orders, got %d", w.Code)
	}
}

func TestGetOrdersByUserRejectsBadPathParam(t *testing.T) {
	router := newOrderTestRouter(store.New(), 1)

	w := doJSON(t, router, http.MethodGet, "/api/orders/abc", "")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for a non-numeric path id, got %d", w.Code)
	}
}
