package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"unimate/internal/guard"
	"unimate/internal/middleware"
	"unimate/internal/observability"
	"unimate/internal/ratelimit"
	"unimate/internal/repositories"
	"unimate/internal/session"
	"unimate/internal/telemetry"
	"unimate/internal/ws"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	ServiceName    string
	Logger         *zap.Logger
	Authenticator  session.Authenticator
	Profiles       repositories.ProfileRepository
	Contracts      repositories.ContractRepository
	Messages       repositories.MessageRepository
	Conversations  ConversationLister
	Locations      LocationSearcher
	Universities   UniversitySearcher
	Hub            *ws.Hub
	// AllowedOrigins may open the websocket feed from another origin.
	AllowedOrigins []string
	Limiter        ratelimit.Limiter
	Audit          *telemetry.AuditEmitter
	Diagnostics    func() map[string]string
	Paths          guard.Paths
	Debug          bool
}

// NewRouter wires middleware, guards and handlers.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Paths == (guard.Paths{}) {
		d.Paths = guard.DefaultPaths
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(d.ServiceName))
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(middleware.RequestID())

	router.GET("/healthz", Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/diagnostics/env", EnvDiagnostics(d.Diagnostics))

	// The limiter runs before session resolution so unauthenticated traffic
	// never reaches the auth provider once it is throttled.
	limited := router.Group("/", middleware.RateLimit(d.Limiter, d.Logger))

	lookups := NewLookupHandler(d.Locations, d.Universities)
	limited.GET("/lookup/locations", lookups.Locations)
	limited.GET("/lookup/universities", lookups.Universities)

	app := limited.Group("/")
	app.Use(middleware.SessionMiddleware(d.Authenticator, d.Profiles, d.Logger))

	pages := NewPageHandler(d.Profiles, d.Conversations, d.Audit, d.Paths, d.Logger)
	app.GET("/login", pages.Login)
	app.POST("/logout", pages.Logout)

	authOnly := app.Group("/", guard.Middleware(guard.Requirements{}, d.Paths))
	authOnly.GET("/onboarding/profile", pages.ProfileForm)
	authOnly.POST("/onboarding/profile", pages.CompleteProfile)

	welcome := app.Group("/", guard.Middleware(guard.Requirements{RedirectIfComplete: true}, d.Paths))
	welcome.GET("/welcome", pages.Welcome)

	admin := app.Group("/", guard.Middleware(guard.Requirements{RequireAdmin: true}, d.Paths))
	admin.GET("/admin", pages.Admin)

	onboarded := app.Group("/", guard.Middleware(guard.Requirements{RequireProfile: true}, d.Paths))
	onboarded.GET("/home", pages.Home)

	var notifier MessageNotifier
	if d.Hub != nil {
		notifier = d.Hub
	}
	messages := NewMessageHandler(d.Messages, d.Conversations, notifier, d.Logger)
	onboarded.GET("/conversations", messages.ListConversations)
	onboarded.POST("/messages", messages.SendMessage)
	onboarded.POST("/messages/:peer_id/read", messages.MarkRead)

	contracts := NewContractHandler(d.Contracts, d.Audit, d.Logger)
	onboarded.POST("/contracts", contracts.CreateContract)
	onboarded.GET("/contracts/:id", contracts.GetContract)
	onboarded.POST("/contracts/:id/sign", contracts.SignContract)

	if d.Hub != nil {
		onboarded.GET("/ws/messages", ws.NewMessagesHandler(d.Hub, d.AllowedOrigins, d.Logger).Handle)
	}

	RegisterDebugRoutes(app, d.Audit, d.Debug)
	return router
}
