package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"moodmeal/internal/logging"
	"moodmeal/internal/metrics"
)

// RouterConfig holds the transport settings of the router.
type RouterConfig struct {
	CORSOrigins []string
	Metrics     bool
}

// NewRouter builds the gin engine serving every route of h.
func NewRouter(h *Handler, cfg RouterConfig) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), Session(), logging.GinLogger())
	if cfg.Metrics {
		r.Use(metrics.Middleware())
	}

	// Configure CORS middleware
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", SessionHeader},
		ExposeHeaders:    []string{"Content-Length", SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/options", h.GetOptions)
	r.GET("/meals", h.GetMeals)
	r.POST("/recommend", h.Recommend)

	cartGroup := r.Group("/cart")
	{
		cartGroup.GET("", h.GetCart)
		cartGroup.DELETE("", h.ClearCart)
		cartGroup.POST("/items", h.AddCartItem)
		cartGroup.DELETE("/items/:id", h.RemoveCartItem)
	}

	if cfg.Metrics {
		r.GET("/metrics", metrics.Handler())
	}
	return r, nil
}
