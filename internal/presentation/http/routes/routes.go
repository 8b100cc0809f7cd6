package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/rfp-api/internal/config"
	"github.com/sangkips/rfp-api/internal/domain/actor"
	domainRepo "github.com/sangkips/rfp-api/internal/domain/repository"
	"github.com/sangkips/rfp-api/internal/presentation/http/handler"
	"github.com/sangkips/rfp-api/internal/presentation/http/middleware"
	"github.com/sangkips/rfp-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Rfp             *handler.RfpHandler
	PricingDecision *handler.PricingDecisionHandler
	Document        *handler.DocumentHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Actors          middleware.ActorResolver
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.UserRateLimiter
	// MetricsHandler serves the Prometheus registry; nil disables /metrics
	MetricsHandler http.Handler
	Log            *zap.Logger
}

// NewRateLimiter builds the per-user limiter from the rate limit settings
func NewRateLimiter(cfg config.RateLimitConfig) *middleware.UserRateLimiter {
	duration := cfg.Duration
	if duration <= 0 {
		duration = 60
	}
	return middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.Requests) / float64(duration),
		BurstSize:         cfg.Requests,
		EntryTTL:          10 * time.Minute,
	})
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	if deps.MetricsHandler != nil {
		path := deps.Cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(deps.MetricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.Actors))

		rateLimiter := deps.RateLimiter
		if rateLimiter == nil {
			rateLimiter = NewRateLimiter(deps.Cfg.RateLimit)
		}
		protected.Use(rateLimiter.Middleware())

		registerRfpRoutes(protected, h, deps)
		registerPricingDecisionRoutes(protected, h)
		registerDocumentRoutes(protected, h)
	}

	return router
}

func registerRfpRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.RFP.IdempotencyTTL,
		Log:  deps.Log,
	})
	can := middleware.RequireCapability

	rfps := protected.Group("/rfps")
	{
		rfps.GET("", h.Rfp.List)
		rfps.POST("", can(actor.CanCreateRfp), h.Rfp.Create)
		rfps.GET("/:id", h.Rfp.Get)
		rfps.POST("/:id/approve", can(actor.CanApproveRfp), h.Rfp.Approve)
		rfps.POST("/:id/reject", can(actor.CanApproveRfp), h.Rfp.Reject)
		rfps.PUT("/:id/products/price", can(actor.CanApproveRfp), h.Rfp.SetProductPrice)
		rfps.DELETE("/:id/products/price", can(actor.CanApproveRfp), h.Rfp.ClearProductPrice)
		rfps.POST("/:id/prices", can(actor.CanPriceRfp), h.Rfp.AddPrice)
		rfps.GET("/:id/price-revisions", h.Rfp.ListPriceRevisions)
		rfps.GET("/:id/audit-log", h.Rfp.AuditLog)
		rfps.POST("/:id/quotation", can(actor.CanQuoteRfp), idempotency, h.Rfp.GenerateQuotation)
		rfps.POST("/:id/submit-accounts", can(actor.CanSubmitToAccounts), h.Rfp.SubmitToAccounts)
		rfps.POST("/:id/accounts-decision", can(actor.CanDecideAccounts), idempotency, h.Rfp.AccountsDecision)
		rfps.POST("/:id/senior-decision", can(actor.CanDecideSenior), idempotency, h.Rfp.SeniorDecision)
	}
}

func registerPricingDecisionRoutes(protected *gin.RouterGroup, h *Handlers) {
	decisions := protected.Group("/pricing-decisions")
	{
		decisions.POST("", middleware.RequireCapability(actor.CanManagePricingDecision), h.PricingDecision.Create)
		decisions.GET("/lead/:lead_id", h.PricingDecision.GetLatestByLead)
		decisions.GET("/:rfp_id", h.PricingDecision.Get)
		decisions.PUT("/:rfp_id", middleware.RequireCapability(actor.CanManagePricingDecision), h.PricingDecision.Update)
	}
}

func registerDocumentRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/quotations/:id", h.Document.GetQuotation)
	protected.GET("/rfps/:id/quotation", h.Document.GetRfpQuotation)
	protected.GET("/work-orders/:id", h.Document.GetWorkOrder)
}
