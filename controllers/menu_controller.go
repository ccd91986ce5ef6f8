package controllers

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"time"

	"canteen/config"
	"canteen/libs"
	"canteen/models"
	"canteen/utils"

	"github.com/gin-gonic/gin"
)

const menuCacheKey = "menu_items_active"

type MenuController struct{}

// fetchActiveItems loads the active catalog, from Redis when possible. The
// cache holds the raw rows; filtering and image resolution happen per
// request.
func (ctrl *MenuController) fetchActiveItems(ctx context.Context) ([]models.MenuItem, error) {
	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, menuCacheKey).Result()
		if err == nil {
			var items []models.MenuItem
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		}
	}

	rows, err := models.DB.Query(ctx,
		`SELECT id, name, category, price, rating, COALESCE(discount, ''), COALESCE(image_url, ''), is_active, created_at, updated_at
		FROM menu_items WHERE is_active = true ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Price, &item.Rating,
			&item.Discount, &item.Image, &item.IsActive, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if models.RedisClient != nil {
		if jsonData, err := json.Marshal(items); err == nil {
			models.RedisClient.Set(ctx, menuCacheKey, string(jsonData), 5*time.Minute)
		}
	}
	return items, nil
}

func invalidateMenuCache() {
	if models.RedisClient == nil {
		return
	}
	models.RedisClient.Del(context.Background(), menuCacheKey)
}

// GetMenu godoc
// @Summary Get menu
// @Description Get the menu as a flat array, optionally filtered
// @Tags Menu
// @Produce json
// @Param search query string false "Case-insensitive substring match on name"
// @Param category query string false "Exact category match ('all' matches everything)"
// @Success 200 {array} models.MenuItem
// @Failure 500 {object} models.ErrorResponse
// @Router /menu [get]
func (ctrl *MenuController) GetMenu(c *gin.Context) {
	items, err := ctrl.fetchActiveItems(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load menu"})
		return
	}

	items = models.FilterMenuItems(items, c.Query("search"), c.Query("category"))
	for i := range items {
		items[i].Image = utils.ResolveImageURL(items[i].Image)
	}

	// The storefront consumes a bare array here, not the wrapped shape.
	c.JSON(200, items)
}

// GetCategories godoc
// @Summary Get menu categories
// @Description Get category options derived from the active menu
// @Tags Menu
// @Produce json
// @Success 200 {object} models.Response
// @Router /menu/categories [get]
func (ctrl *MenuController) GetCategories(c *gin.Context) {
	items, err := ctrl.fetchActiveItems(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load menu"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Categories retrieved",
		"data":    models.CategoryOptions(items),
	})
}

// CreateMenuItem godoc
// @Summary Create menu item
// @Description Add a menu item with an optional image (Admin)
// @Tags Admin - Menu
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param category formData string true "Category"
// @Param price formData number true "Price"
// @Param rating formData number false "Rating"
// @Param discount formData string false "Discount label"
// @Param image formData file false "Image file"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/menu [post]
func (ctrl *MenuController) CreateMenuItem(c *gin.Context) {
	var req models.CreateMenuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}
	if req.Price < 0 {
		c.JSON(400, gin.H{"success": false, "message": "Price must not be negative"})
		return
	}

	imageURL, err := ctrl.saveImage(c)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	now := time.Now()
	var id int
	err = models.DB.QueryRow(c.Request.Context(),
		`INSERT INTO menu_items (name, category, price, rating, discount, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, $7, $8) RETURNING id`,
		req.Name, req.Category, req.Price, req.Rating, req.Discount, imageURL, now, now).Scan(&id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create menu item"})
		return
	}

	invalidateMenuCache()

	c.JSON(201, gin.H{
		"success": true,
		"message": "Menu item created",
		"data":    gin.H{"id": id, "image_url": imageURL},
	})
}

// UpdateMenuItem godoc
// @Summary Update menu item
// @Description Update menu item fields and optionally replace its image (Admin)
// @Tags Admin - Menu
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/menu/{id} [patch]
func (ctrl *MenuController) UpdateMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid menu item ID"})
		return
	}

	var req models.UpdateMenuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctx := c.Request.Context()

	var item models.MenuItem
	err := models.DB.QueryRow(ctx,
		`SELECT id, name, category, price, rating, COALESCE(discount, ''), COALESCE(image_url, ''), is_active
		FROM menu_items WHERE id = $1`, id).Scan(
		&item.ID, &item.Name, &item.Category, &item.Price, &item.Rating,
		&item.Discount, &item.Image, &item.IsActive)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Menu item not found"})
		return
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Price > 0 {
		item.Price = req.Price
	}
	if req.Rating > 0 {
		item.Rating = req.Rating
	}
	if req.Discount != "" {
		item.Discount = req.Discount
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if newImage, err := ctrl.saveImage(c); err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	} else if newImage != "" {
		utils.DeleteFile(item.Image)
		item.Image = newImage
	}

	_, err = models.DB.Exec(ctx,
		`UPDATE menu_items SET name=$1, category=$2, price=$3, rating=$4, discount=$5, image_url=$6, is_active=$7, updated_at=$8
		WHERE id=$9`,
		item.Name, item.Category, item.Price, item.Rating, item.Discount, item.Image, item.IsActive, time.Now(), id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update menu item"})
		return
	}

	invalidateMenuCache()

	c.JSON(200, gin.H{"success": true, "message": "Menu item updated", "data": item})
}

// DeleteMenuItem godoc
// @Summary Delete menu item
// @Description Soft-delete a menu item (Admin)
// @Tags Admin - Menu
// @Security BearerAuth
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/menu/{id} [delete]
func (ctrl *MenuController) DeleteMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid menu item ID"})
		return
	}

	tag, err := models.DB.Exec(c.Request.Context(),
		"UPDATE menu_items SET is_active=false, updated_at=$1 WHERE id=$2", time.Now(), id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete menu item"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Menu item not found"})
		return
	}

	invalidateMenuCache()

	c.JSON(200, gin.H{"success": true, "message": "Menu item deleted", "data": gin.H{"id": id}})
}

// saveImage stores the uploaded "image" form file, offloading to Cloudinary
// when configured. Returns "" when no file was sent.
func (ctrl *MenuController) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	localPath, err := utils.UploadFile(c, file, "menu")
	if err != nil {
		return "", err
	}

	if libs.Enabled() {
		fullPath := filepath.Join(config.AppConfig.UploadDir, localPath)
		secureURL, err := libs.UploadToCloudinary(fullPath)
		if err == nil {
			return secureURL, nil
		}
		// Cloudinary failure falls back to the local copy.
	}
	return localPath, nil
}
