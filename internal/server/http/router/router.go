package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/nlenjibi/storefront/internal/server/http/handlers"
	"github.com/nlenjibi/storefront/internal/server/http/middleware"
	"github.com/nlenjibi/storefront/internal/usecase"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade, facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	api.GET("/products", catalogHandler.Products)
	api.GET("/products/:id", catalogHandler.Product)
	api.GET("/products/:id/reviews", catalogHandler.Reviews)
	api.GET("/categories", catalogHandler.Categories)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/checkout", checkoutHandler.Create)

	orders := authed.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.DELETE("/:id", orderHandler.Delete)
	orders.POST("/:id/items", orderHandler.AddItem)
	orders.PUT("/:id/items/:productID", orderHandler.UpdateItem)
	orders.DELETE("/:id/items/:productID", orderHandler.RemoveItem)

	transitions := []struct {
		path   string
		action usecase.TransitionAction
	}{
		{"confirm", usecase.ActionConfirm},
		{"process", usecase.ActionProcess},
		{"ship", usecase.ActionShip},
		{"out-for-delivery", usecase.ActionOutForDelivery},
		{"deliver", usecase.ActionDeliver},
		{"cancel", usecase.ActionCancel},
		{"refund", usecase.ActionRefund},
		{"pay", usecase.ActionMarkPaid},
		{"payment-failed", usecase.ActionPaymentFailed},
	}
	for _, t := range transitions {
		orders.POST("/:id/"+t.path, orderHandler.Transition(t.action))
	}

	admin := authed.Group("/admin")
	admin.Use(middleware.AdminRequired())
	admin.GET("/orders", adminHandler.Orders)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.Users)

	return engine
}
