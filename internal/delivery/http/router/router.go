// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"dacsan/internal/delivery/http/middleware"
	"dacsan/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CheckoutHandler *handler.CheckoutHandler
	VoucherHandler  *handler.VoucherHandler
	OrderHandler    *handler.OrderHandler
	DeviceHandler   *handler.DeviceHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	checkoutHandler *handler.CheckoutHandler
	voucherHandler  *handler.VoucherHandler
	orderHandler    *handler.OrderHandler
	deviceHandler   *handler.DeviceHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		checkoutHandler: params.CheckoutHandler,
		voucherHandler:  params.VoucherHandler,
		orderHandler:    params.OrderHandler,
		deviceHandler:   params.DeviceHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public shipping catalogue; province comes from the query string
	e.GET("/shipping/methods", r.checkoutHandler.ListDeliveryMethods)

	// QR claim links are shared outside the app, so rendering stays public
	e.GET("/vouchers/:code/qr", r.voucherHandler.ClaimQR)

	// Checkout routes that require authentication
	checkoutGroup := e.Group("/checkout")
	checkoutGroup.Use(r.authMiddleware.Authenticate)
	{
		checkoutGroup.POST("/preview", r.checkoutHandler.PreviewOrder)
		checkoutGroup.POST("/orders", r.checkoutHandler.PlaceOrder)
	}

	// Voucher routes that require authentication
	voucherGroup := e.Group("/vouchers")
	voucherGroup.Use(r.authMiddleware.Authenticate)
	{
		// Evaluating vouchers needs the cart contents, hence POST
		voucherGroup.POST("/applicable", r.voucherHandler.ListForCart)
		voucherGroup.POST("/:code/claim", r.voucherHandler.Claim)
	}

	// Order lifecycle routes for the customer
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.GET("", r.orderHandler.ListOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.POST("/:id/cancellation", r.orderHandler.RequestCancellation)
		orderGroup.POST("/:id/address", r.orderHandler.RequestAddressChange)
	}

	// Device registration for push notifications
	deviceGroup := e.Group("/devices")
	deviceGroup.Use(r.authMiddleware.Authenticate)
	{
		deviceGroup.POST("", r.deviceHandler.RegisterDevice)
	}

	// Merchant routes that require authentication and "merchant" role
	merchantGroup := e.Group("/merchant")
	merchantGroup.Use(r.authMiddleware.Authenticate)            // First, check if logged in
	merchantGroup.Use(r.authMiddleware.RequireRole("merchant")) // Then, check for the role
	{
		merchantGroup.POST("/orders/:id/progress", r.orderHandler.Advance)
	}
}
