// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bookstore/internal/delivery/http/middleware"
	"bookstore/internal/delivery/http/router/handler"
	"bookstore/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middleware injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	AddressHandler  *handler.AddressHandler
	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	DiscountHandler *handler.DiscountHandler
	OrderHandler    *handler.OrderHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	addressHandler  *handler.AddressHandler
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	discountHandler *handler.DiscountHandler
	orderHandler    *handler.OrderHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		addressHandler:  params.AddressHandler,
		catalogHandler:  params.CatalogHandler,
		cartHandler:     params.CartHandler,
		discountHandler: params.DiscountHandler,
		orderHandler:    params.OrderHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.RegisterUser)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// Public catalog browsing
	catalogGroup := e.Group("/catalog")
	{
		catalogGroup.GET("/products", r.catalogHandler.ListProducts)
		catalogGroup.GET("/products/:id", r.catalogHandler.GetProduct)
		catalogGroup.GET("/products/slug/:slug", r.catalogHandler.GetProductBySlug)
		catalogGroup.GET("/categories", r.catalogHandler.ListCategories)
		catalogGroup.GET("/publishers", r.catalogHandler.ListPublishers)
	}

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.PATCH("/profile", r.userHandler.UpdateProfile)
		userGroup.POST("/password", r.userHandler.ChangePassword)
		userGroup.POST("/avatar", r.userHandler.UploadAvatar)

		userGroup.POST("/addresses", r.addressHandler.CreateAddress)
		userGroup.GET("/addresses", r.addressHandler.ListAddresses)
		userGroup.GET("/addresses/:id", r.addressHandler.GetAddress)
		userGroup.PATCH("/addresses/:id", r.addressHandler.UpdateAddress)
		userGroup.DELETE("/addresses/:id", r.addressHandler.DeleteAddress)
		userGroup.POST("/addresses/:id/default", r.addressHandler.SetDefaultAddress)
	}

	// Cart and checkout routes
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:productID", r.cartHandler.UpdateItemQuantity)
		cartGroup.DELETE("/items/:productID", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
		cartGroup.POST("/discount", r.discountHandler.ApplyDiscount)
		cartGroup.DELETE("/discount", r.discountHandler.RemoveDiscount)
	}

	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.Checkout)
		orderGroup.GET("", r.orderHandler.ListMyOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.POST("/:id/cancel", r.orderHandler.CancelOrder)
	}

	// Staff routes for catalog management
	staffGroup := e.Group("/staff")
	staffGroup.Use(r.authMiddleware.Authenticate)
	staffGroup.Use(r.authMiddleware.RequireRole(string(entity.RoleStaff)))
	{
		staffGroup.POST("/products", r.catalogHandler.CreateProduct)
		staffGroup.PATCH("/products/:id", r.catalogHandler.UpdateProduct)
		staffGroup.DELETE("/products/:id", r.catalogHandler.DeleteProduct)

		staffGroup.POST("/categories", r.catalogHandler.CreateCategory)
		staffGroup.PATCH("/categories/:id", r.catalogHandler.UpdateCategory)
		staffGroup.DELETE("/categories/:id", r.catalogHandler.DeleteCategory)

		staffGroup.POST("/publishers", r.catalogHandler.CreatePublisher)
		staffGroup.PATCH("/publishers/:id", r.catalogHandler.UpdatePublisher)
		staffGroup.DELETE("/publishers/:id", r.catalogHandler.DeletePublisher)
		staffGroup.POST("/publishers/:id/logo", r.catalogHandler.UploadPublisherLogo)
	}

	// Admin routes for discounts and order fulfillment
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(string(entity.RoleAdmin)))
	{
		adminGroup.POST("/discounts", r.discountHandler.CreateDiscount)
		adminGroup.GET("/discounts", r.discountHandler.ListDiscounts)
		adminGroup.GET("/discounts/:id", r.discountHandler.GetDiscount)
		adminGroup.PATCH("/discounts/:id", r.discountHandler.UpdateDiscount)
		adminGroup.DELETE("/discounts/:id", r.discountHandler.DeleteDiscount)

		adminGroup.GET("/orders", r.orderHandler.ListOrders)
		adminGroup.POST("/orders/:id/status", r.orderHandler.UpdateOrderStatus)
		adminGroup.POST("/orders/:id/ship", r.orderHandler.ShipOrder)
	}

	// Superuser routes for user management
	superuserGroup := e.Group("/superuser")
	superuserGroup.Use(r.authMiddleware.Authenticate)
	superuserGroup.Use(r.authMiddleware.RequireRole(string(entity.RoleSuperuser)))
	{
		superuserGroup.GET("/users", r.userHandler.ListUsers)
		superuserGroup.PATCH("/users/:id/flags", r.userHandler.SetUserFlags)
	}
}
