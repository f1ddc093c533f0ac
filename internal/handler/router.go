package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tablebook/internal/handler/api"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	availabilityHandler *api.AvailabilityHandler,
	reservationHandler *api.ReservationHandler,
	lockHandler *api.LockHandler,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, availabilityHandler, reservationHandler, lockHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	availabilityHandler *api.AvailabilityHandler,
	reservationHandler *api.ReservationHandler,
	lockHandler *api.LockHandler,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		restaurants := apiGroup.Group("/restaurants/:id/availability")
		{
			addRoutes(restaurants, []route{
				{Method: http.MethodGet, Path: "/dates", Handler: availabilityHandler.AvailableDates},
				{Method: http.MethodGet, Path: "/times", Handler: availabilityHandler.AvailableTimes},
				{Method: http.MethodGet, Path: "/check", Handler: availabilityHandler.Check},
			})
		}

		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodDelete, Path: "/:id", Handler: reservationHandler.CancelReservation},
			})
		}

		locks := apiGroup.Group("/locks")
		{
			addRoutes(locks, []route{
				{Method: http.MethodGet, Path: "", Handler: lockHandler.ListLocks},
				{Method: http.MethodGet, Path: "/:key", Handler: lockHandler.GetLock},
				{Method: http.MethodDelete, Path: "/:key", Handler: lockHandler.ForceUnlock},
			})
		}
	}
}

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
