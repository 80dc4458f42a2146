package httpapi

import (
	"github.com/zwelix28/canna-bomb-sub001/config"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"
	"github.com/zwelix28/canna-bomb-sub001/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Services struct {
	Auth    service.AuthService
	Catalog service.CatalogService
	Cart    service.CartService
	Orders  service.OrderService
	Stats   service.StatsService
	Tokens  service.TokenProvider
	Subs    repository.PushSubscriptionRepo
	Push    config.Push
}

func Router(s Services, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authHandler := NewAuthHandler(s.Auth, log)
	productHandler := NewProductHandler(s.Catalog, log)
	cartHandler := NewCartHandler(s.Cart, log)
	orderHandler := NewOrderHandler(s.Orders, log)
	notifHandler := NewNotificationHandler(s.Subs, s.Push, log)
	statsHandler := NewStatsHandler(s.Stats, log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// public
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.GET("/products", productHandler.List)
	r.GET("/products/:id", productHandler.Get)
	r.GET("/notifications/public-key", notifHandler.PublicKey)

	// authenticated
	authed := r.Group("/", AuthRequired(s.Tokens, log))
	{
		authed.GET("/me", authHandler.Profile)
		authed.PUT("/me", authHandler.UpdateProfile)

		authed.GET("/cart", cartHandler.Get)
		authed.POST("/cart/items", cartHandler.AddItem)
		authed.PUT("/cart/items/:productId", cartHandler.UpdateItem)
		authed.DELETE("/cart/items/:productId", cartHandler.RemoveItem)
		authed.DELETE("/cart", cartHandler.Clear)

		authed.POST("/orders", orderHandler.Create)
		authed.GET("/orders", orderHandler.List)
		authed.GET("/orders/:id", orderHandler.Get)
		authed.PUT("/orders/:id/cancel", orderHandler.Cancel)

		authed.POST("/notifications/subscribe", notifHandler.Subscribe)
		authed.POST("/notifications/unsubscribe", notifHandler.Unsubscribe)
	}

	// admin
	admin := r.Group("/", AuthRequired(s.Tokens, log), RequireAdmin())
	{
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Deactivate)

		admin.GET("/orders/admin", orderHandler.ListAll)
		admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)

		admin.GET("/stats/dashboard", statsHandler.Dashboard)
	}

	return r
}
