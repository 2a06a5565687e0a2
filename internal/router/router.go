// Package router wires handlers and middleware onto route groups: an
// open group for browsing and credentials, an authenticated group for
// renting and messaging, and a staff group for catalog management and
// the admin inbox.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/reelhub/media-rental/internal/handler"
	"github.com/reelhub/media-rental/internal/middleware"
	"github.com/reelhub/media-rental/internal/model"
)

// Deps carries everything route registration needs. Cache and RateLimit
// may be nil when Redis is unavailable.
type Deps struct {
	JWTSecret string
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Videos    *handler.VideoHandler
	Rentals   *handler.RentalHandler
	Messages  *handler.MessageHandler
	Upload    *handler.UploadHandler
	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
	UploadDir string
}

// RegisterRoutes registers every route of the service on e.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	// Open endpoints: credentials and catalog browsing. The listing gets
	// the Redis response cache and rate limiter when available.
	v1 := e.Group("/v1")
	if d.RateLimit != nil {
		v1.Use(d.RateLimit)
	}
	v1.POST("/register", d.Auth.Register)
	v1.POST("/login", d.Auth.Login)

	list := v1.Group("/videos")
	if d.Cache != nil {
		list.Use(d.Cache)
	}
	list.GET("", d.Videos.List)
	list.GET("/:id", d.Videos.Get)

	// Stored media referenced by catalog items.
	e.Static("/uploads", d.UploadDir)

	// Authenticated endpoints. Both roles pass; ownership and transition
	// policy are enforced downstream by handlers and the lifecycle
	// controller.
	auth := v1.Group("")
	auth.Use(middleware.JWTAuth(d.JWTSecret))
	auth.Use(middleware.RequireRole(model.RolePublic, model.RoleStaff))
	auth.GET("/protected", d.Auth.Protected)
	auth.POST("/rentals", d.Rentals.Create)
	auth.GET("/rentals/:id", d.Rentals.Get)
	auth.GET("/user/rentals", d.Rentals.ListMine)
	auth.PUT("/rentals/:id/status", d.Rentals.ChangeStatus)
	auth.POST("/messages", d.Messages.Create)
	auth.GET("/messages", d.Messages.ListMine)
	auth.GET("/messages/:id", d.Messages.Get)
	auth.POST("/upload", d.Upload.Upload)
	auth.GET("/users/:id", d.Users.Get)
	auth.PUT("/users/:id", d.Users.Update)

	// Staff-only endpoints.
	staff := v1.Group("")
	staff.Use(middleware.JWTAuth(d.JWTSecret))
	staff.Use(middleware.RequireRole(model.RoleStaff))
	staff.POST("/videos", d.Videos.Create)
	staff.PUT("/videos/:id", d.Videos.Update)
	staff.DELETE("/videos/:id", d.Videos.Delete)
	staff.PUT("/videos/:id/status", d.Videos.ChangeStatus)
	staff.GET("/rentals", d.Rentals.ListAll)
	staff.PUT("/messages/:id/reply", d.Messages.Reply)
	staff.DELETE("/messages/:id", d.Messages.Delete)
	staff.GET("/admin/messages", d.Messages.ListAll)
	staff.GET("/users", d.Users.List)
	staff.DELETE("/users/:id", d.Users.Delete)
}
