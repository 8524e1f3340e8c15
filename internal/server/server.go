package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/sigboard/internal/apiclient"
	"github.com/nfrund/sigboard/internal/auth"
	"github.com/nfrund/sigboard/internal/config"
	"github.com/nfrund/sigboard/internal/handlers"
	appmiddleware "github.com/nfrund/sigboard/internal/middleware"
	"github.com/nfrund/sigboard/internal/pubsub"
	"github.com/nfrund/sigboard/internal/rendering"
	"github.com/nfrund/sigboard/web"
)

// Dependencies holds everything the HTTP server needs. Config, API and Auth
// are required.
type Dependencies struct {
	Config    config.Provider
	Logger    *slog.Logger
	API       *apiclient.Client
	Auth      *auth.Service
	Publisher pubsub.Publisher
	Renderer  *rendering.UniversalRenderer
	Version   string

	// Echo lets tests supply their own instance.
	Echo *echo.Echo
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E      *echo.Echo
	Cfg    config.Provider
	logger *slog.Logger

	homeHandler      *handlers.HomeHandler
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
	signatureHandler *handlers.SignatureHandler
	linkHandler      *handlers.LinkHandler
}

// New creates a new Server instance with its middleware installed. Routes
// are added by RegisterRoutes.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.API == nil || deps.Auth == nil {
		return nil, errors.New("server: api client and auth service are required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Renderer == nil {
		deps.Renderer = rendering.NewUniversalRenderer()
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger(deps.Logger))
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   deps.Config.GetSessionMaxAge(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	return &Server{
		E:                e,
		Cfg:              deps.Config,
		logger:           deps.Logger,
		homeHandler:      handlers.NewHomeHandler(deps.Version),
		authHandler:      handlers.NewAuthHandler(deps.Auth),
		dashboardHandler: handlers.NewDashboardHandler(deps.API, deps.Auth),
		signatureHandler: handlers.NewSignatureHandler(deps.API, deps.Auth, deps.Publisher),
		linkHandler:      handlers.NewLinkHandler(deps.API, deps.Auth, deps.Publisher),
	}, nil
}
