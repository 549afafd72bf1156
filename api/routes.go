package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NethermindEth/jarvis-gateway/api/handlers"
	"github.com/NethermindEth/jarvis-gateway/metrics"
)

// NewRouter builds the gin engine with middleware and every endpoint.
func NewRouter(h *handlers.Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestID())
	router.Use(handlers.AccessLog(logger))
	router.Use(handlers.CORS())

	SetupRoutes(router, h)
	return router
}

// SetupRoutes initializes all API endpoints
func SetupRoutes(router *gin.Engine, h *handlers.Handler) {
	router.GET("/", h.Root)
	router.GET("/docs", routeListing(router))
	router.GET("/ws", h.HandleWebSocket)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/chat", h.Chat)
		api.GET("/status", h.Status)
		api.GET("/ai/status", h.AIStatus)
		api.GET("/ai/test", h.AITest)
	}
}

type routeInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

func routeListing(router *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes := router.Routes()
		out := make([]routeInfo, 0, len(routes))
		for _, r := range routes {
			out = append(out, routeInfo{Method: r.Method, Path: r.Path})
		}
		c.JSON(http.StatusOK, gin.H{"routes": out})
	}
}
