package handlers

import (
	"time"

	"tempmon_dashboard/internal/logger"
	"tempmon_dashboard/internal/observability"
	"tempmon_dashboard/internal/render"
	"tempmon_dashboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config holds the presentation settings of the HTTP layer.
type Config struct {
	RefreshInterval time.Duration // 0 disables the live stream on the page
	Thresholds      render.Thresholds
	SessionTTL      time.Duration
	CookieSecure    bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	renderer *render.Renderer
	metrics  *observability.Metrics
	cfg      Config
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. A nil
// renderer gets the built-in templates.
func NewHandler(services *service.Service, renderer *render.Renderer, metrics *observability.Metrics, cfg Config, log *logger.Logger) *Handler {
	if renderer == nil {
		renderer = render.MustNew()
	}
	return &Handler{
		services: services,
		renderer: renderer,
		metrics:  metrics,
		cfg:      cfg,
		log:      log,
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	h.registerSystemRoutes(router)

	viewer := router.Group("", h.sessionMiddleware)
	{
		h.registerDashboardRoutes(viewer)
		h.registerPageRoutes(viewer)
		h.registerAdminRoutes(viewer)
		viewer.GET("/ws", h.wsConnect)
	}

	return router
}

func (h *Handler) registerSystemRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/ping", h.ping)
	r.GET("/api/health", h.apiHealth)
}

func (h *Handler) registerDashboardRoutes(r *gin.RouterGroup) {
	r.GET("/", h.dashboardPage)
	r.GET("/dashboard", h.dashboardPage)

	dash := r.Group("/dashboard")
	{
		dash.GET("/fragments/refresh", h.refreshFragments)
		dash.GET("/units/:id", h.unitDetail)
		dash.POST("/ingestion", h.triggerIngestion)
		dash.POST("/banners/:id/dismiss", h.dismissBanner)
	}
}

func (h *Handler) registerAdminRoutes(r *gin.RouterGroup) {
	r.GET("/admin", h.adminPage)

	admin := r.Group("/admin")
	{
		admin.POST("/actions/:name", h.dispatchAction)
		admin.GET("/actions/log", h.getActionLog)
		admin.GET("/charts/customer-stats", h.customerStatsChart)
		admin.GET("/charts/ingestion-summary", h.ingestionSummaryChart)
	}
}
