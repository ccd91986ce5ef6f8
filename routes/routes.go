package routes

import (
	"canteen/controllers"
	"canteen/middleware"
	"canteen/store"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine, carts *store.Store) {
	authCtrl := controllers.NewAuthController()
	menuCtrl := &controllers.MenuController{}
	cartCtrl := &controllers.CartController{Carts: carts}
	orderCtrl := &controllers.OrderController{Carts: carts}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := router.Group("/api")

	api.GET("/menu", menuCtrl.GetMenu)
	api.GET("/menu/categories", menuCtrl.GetCategories)

	api.POST("/users/register", authCtrl.Register)
	api.POST("/users/login", authCtrl.Login)
	api.POST("/users/forgot-password", authCtrl.ForgotPassword)
	api.POST("/users/reset-password", authCtrl.ResetPassword)

	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/cart", cartCtrl.GetCart)
		auth.GET("/cart/events", cartCtrl.Events)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items/:id", cartCtrl.UpdateItem)
		auth.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
		auth.DELETE("/cart", cartCtrl.ClearCart)
		auth.POST("/cart/reorder", cartCtrl.Reorder)

		auth.POST("/orders", orderCtrl.PlaceOrder)
		auth.GET("/orders/:userId", orderCtrl.GetOrdersByUser)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PATCH("/menu/:id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:id", menuCtrl.DeleteMenuItem)

		admin.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus)
	}

	router.Static("/uploads", "./uploads")
}
