package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"travel-booking/internal/handler/api"
	"travel-booking/internal/handler/middleware"
	"travel-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// NewRouter registers every route. limiter may be nil, in which case the API is not rate limited.
func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, limiter middleware.RateLimiter, bookingHandler *api.BookingHandler) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, limiter, bookingHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, limiter middleware.RateLimiter, bookingHandler *api.BookingHandler) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.GET("/health", healthCheck)
	if limiter != nil {
		apiGroup.Use(middleware.RateLimit(limiter))
	}
	{
		limitBody := []gin.HandlerFunc{middleware.MaxBodyBytes(middleware.DefaultMaxBodyBytes)}

		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create, Mw: limitBody},
			{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
			{Method: http.MethodGet, Path: "/stats", Handler: bookingHandler.Stats},
			{Method: http.MethodPost, Path: "/validate", Handler: bookingHandler.Validate, Mw: limitBody},
			{Method: http.MethodGet, Path: "/reference/:reference", Handler: bookingHandler.GetByReference},
			{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
			{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.Cancel},
			{Method: http.MethodPut, Path: "/:id/status", Handler: bookingHandler.UpdateStatus, Mw: limitBody},
			{Method: http.MethodPost, Path: "/:id/payment", Handler: bookingHandler.Pay, Mw: limitBody},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/destinations", Handler: bookingHandler.Destinations},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
