package handlers

import (
	"time"

	_ "campaign_forum/docs"
	"campaign_forum/internal/logger"
	"campaign_forum/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultSessionCookie = "forum_session"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	sessionCookie string
	secureCookies bool
	feedInterval  time.Duration
}

// Option tunes a Handler.
type Option func(*Handler)

// WithSessionCookie sets the session cookie name and whether cookies are marked Secure.
func WithSessionCookie(name string, secure bool) Option {
	return func(h *Handler) {
		if name != "" {
			h.sessionCookie = name
		}
		h.secureCookies = secure
	}
}

// WithFeedInterval sets the default push interval of the live campaign board.
func WithFeedInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 && d <= maxInterval {
			h.feedInterval = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services:      services,
		log:           log,
		sessionCookie: defaultSessionCookie,
		feedInterval:  defaultInterval,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	router.SetHTMLTemplate(pageTemplates)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// JSON token endpoint
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live campaign board, same visibility as the list page
	router.GET("/ws/campaigns", h.wsCampaigns)

	// Server-rendered pages resolve the session cookie
	pages := router.Group("/", h.currentUser)
	h.registerAccountRoutes(pages)
	h.registerCampaignRoutes(pages)

	router.NoRoute(h.currentUser, h.notFound)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/campaigns", h.apiListCampaigns)
		api.GET("/activity", h.getActivity)
	}
}

func (h *Handler) registerAccountRoutes(r *gin.RouterGroup) {
	r.GET("/", h.home)
	r.GET("/register", h.registerForm)
	r.POST("/register", h.register)
	r.GET("/login", h.loginForm)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)

	me := r.Group("/", h.requireLogin)
	{
		me.GET("/myprofile", h.myProfile)
		me.GET("/myprofile/edit", h.profileForm)
		me.POST("/myprofile/edit", h.updateProfile)
		me.GET("/password/change", h.passwordForm)
		me.POST("/password/change", h.changePassword)
	}
}

func (h *Handler) registerCampaignRoutes(r *gin.RouterGroup) {
	r.GET("/campaign/list", h.listCampaigns)

	campaigns := r.Group("/campaign", h.requireLogin)
	{
		campaigns.GET("/new", h.newCampaignForm)
		campaigns.POST("/new", h.createCampaign)
		campaigns.GET("/edit/:id", h.editCampaignForm)
		campaigns.POST("/edit/:id", h.updateCampaign)
		campaigns.GET("/delete/:id", h.deleteCampaign)
		campaigns.GET("/:id", h.showCampaign)
	}
}
