package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staybook/internal/infra/config"
	"staybook/internal/infra/obs"
)

type OrderHTTP interface {
	Create(c *gin.Context)
	Update(c *gin.Context)
	Cancel(c *gin.Context)
	Get(c *gin.Context)
	ListMine(c *gin.Context)
	ListForListing(c *gin.Context)
}

type SearchHTTP interface {
	Search(c *gin.Context)
}

type AvailabilityHTTP interface {
	Set(c *gin.Context)
	Calendar(c *gin.Context)
}

type AuthHTTP interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
}

type Handlers struct {
	Orders         OrderHTTP
	Search         SearchHTTP
	Availability   AvailabilityHTTP
	Auth           AuthHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
	}
	if h.Orders != nil {
		api.POST("/orders", h.Orders.Create)
		api.GET("/orders/:id", h.Orders.Get)
		api.PUT("/orders/:id", h.Orders.Update)
		api.DELETE("/orders/:id", h.Orders.Cancel)
		api.GET("/me/orders", h.Orders.ListMine)
		api.GET("/listings/:id/orders", h.Orders.ListForListing)
	}
	if h.Search != nil {
		api.GET("/listings/search", h.Search.Search)
	}
	if h.Availability != nil {
		api.GET("/listings/:id/calendar", h.Availability.Calendar)
		api.PUT("/listings/:id/availability", h.Availability.Set)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
