package server

import (
	"github.com/nfrund/sigboard/internal/middleware"
)

const loginPath = "/"

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter()

	s.E.GET("/", s.authHandler.LoginGet)
	s.E.POST("/login", s.authHandler.LoginPost, rateLimiter)

	s.E.GET("/register", s.authHandler.RegisterGet)
	s.E.POST("/register", s.authHandler.RegisterPost, rateLimiter)

	s.E.GET("/logout", s.authHandler.Logout)
	s.E.POST("/logout", s.authHandler.Logout)

	s.E.GET("/health", s.homeHandler.Health)

	// Guarded per route: a group with an empty prefix would also guard
	// echo's catch-all not-found route.
	requireSession := middleware.RequireSession(loginPath)

	s.E.GET("/dashboard", s.dashboardHandler.DashboardGet, requireSession)
	s.E.GET("/dashboard/counts", s.dashboardHandler.CountsGet, requireSession)
	s.E.GET("/dashboard/signatures", s.dashboardHandler.SignaturesGet, requireSession)

	s.E.GET("/signatures/new", s.signatureHandler.NewGet, requireSession)
	s.E.POST("/signature", s.signatureHandler.CreatePost, requireSession)
	s.E.GET("/signature/:id/preview", s.signatureHandler.PreviewGet, requireSession)
	s.E.GET("/signature/:id/export", s.signatureHandler.ExportGet, requireSession)
	s.E.DELETE("/signature/:id", s.signatureHandler.DeleteSignature, requireSession)
	s.E.GET("/signature/:id/delete", s.signatureHandler.DeleteGet, requireSession)
	s.E.POST("/signature/:id/delete", s.signatureHandler.DeletePost, requireSession)

	s.E.GET("/signature/:id/links/new", s.linkHandler.NewGet, requireSession)
	s.E.POST("/links", s.linkHandler.CreatePost, requireSession)
}
