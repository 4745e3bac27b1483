package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"laundromat/internal/server/http/handlers"
	"laundromat/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.LaundryFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	accountHandler := handlers.NewAccountHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")
	api.GET("/about", accountHandler.About)
	api.GET("/admins", accountHandler.ListAdmins)

	authed := api.Group("")
	authed.Use(middleware.IdentityRequired(facade))
	authed.POST("/admins", accountHandler.RegisterAdmin)
	authed.POST("/customers", accountHandler.RegisterCustomer)
	authed.PUT("/customers", accountHandler.UpdateCustomer)
	authed.GET("/customers", accountHandler.ListCustomers)
	authed.GET("/customers/:id", accountHandler.GetCustomer)
	authed.GET("/customers/:id/orders", orderHandler.ListForCustomer)
	authed.POST("/orders", orderHandler.Place)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	authed.POST("/orders/:id/feedback", orderHandler.Feedback)

	return engine
}
