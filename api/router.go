package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/prasetyowira/qrgen/api/middleware"
	"github.com/prasetyowira/qrgen/constant"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Router represents the application router
type Router struct {
	handler *Handler
	limiter *middleware.RateLimiter
	router  *chi.Mux
}

// NewRouter creates a new router. A nil limiter disables rate limiting.
func NewRouter(handler *Handler, limiter *middleware.RateLimiter) *Router {
	r := chi.NewRouter()

	// Middleware setup
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestLogger())

	return &Router{
		handler: handler,
		limiter: limiter,
		router:  r,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	r.router.Get(constant.RouteIndex, r.handler.Index)
	r.router.With(
		r.limiter.Limit(r.handler.TooManyRequests),
	).Post(constant.RouteGenerate, r.handler.Generate)
	r.router.Get(constant.RouteDownload, r.handler.Download)
	r.router.Get(constant.RouteGallery, r.handler.Gallery)
	r.router.Get(constant.RouteThumbnail, r.handler.Thumbnail)

	// Healthcheck
	r.router.Get(constant.RouteHealthcheck, r.handler.Healthcheck)
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
