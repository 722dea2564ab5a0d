// Package router assembles the HTTP surface of the campus API: public
// content routes, the authentication endpoints, the guarded admin API,
// and the cookie-gated admin pages.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/edukit/campus/internal/pkg/httputils"
	"github.com/edukit/campus/internal/site/biz"
	"github.com/edukit/campus/internal/site/handler"
	"github.com/edukit/campus/internal/site/middleware"
	"github.com/edukit/campus/internal/site/store"
	"github.com/edukit/campus/pkg/component/storage"
	sessionopts "github.com/edukit/campus/pkg/options/session"
	"github.com/edukit/campus/pkg/security/auth/token"
	"github.com/edukit/campus/pkg/security/authz"
)

// Config carries the collaborators the router needs.
type Config struct {
	Store      store.Factory
	Sessions   token.Store
	Authorizer *authz.Authorizer
	Session    *sessionopts.Options
	Storage    *storage.Manager
	Version    string
}

// Register builds the middleware chain and mounts every route group on the
// engine.
func Register(engine *gin.Engine, cfg Config) {
	authSvc := biz.NewAuthService(cfg.Store, cfg.Sessions, cfg.Session.TTL)

	authHandler := handler.NewAuthHandler(authSvc, cfg.Session)
	userHandler := handler.NewUserHandler(biz.NewUserService(cfg.Store))
	postHandler := handler.NewPostHandler(biz.NewPostService(cfg.Store))
	categoryHandler := handler.NewCategoryHandler(biz.NewCategoryService(cfg.Store))
	announcementHandler := handler.NewAnnouncementHandler(biz.NewAnnouncementService(cfg.Store))
	facilityHandler := handler.NewFacilityHandler(biz.NewFacilityService(cfg.Store))
	activityHandler := handler.NewActivityHandler(biz.NewActivityService(cfg.Store))
	galleryHandler := handler.NewGalleryHandler(biz.NewGalleryService(cfg.Store))
	achievementHandler := handler.NewAchievementHandler(biz.NewAchievementService(cfg.Store))
	healthHandler := handler.NewHealthHandler(cfg.Storage, cfg.Version)

	engine.Use(middleware.RequestID(), middleware.AccessLog(), middleware.Recovery())
	engine.NoRoute(httputils.NotFound)

	engine.GET("/health", healthHandler.Live)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/version", healthHandler.Version)

	registerPublic(engine, postHandler, categoryHandler, announcementHandler,
		facilityHandler, activityHandler, galleryHandler, achievementHandler)
	registerAuth(engine, authSvc, authHandler)
	registerAdminAPI(engine, authSvc, cfg.Authorizer, userHandler, postHandler,
		categoryHandler, announcementHandler, facilityHandler, activityHandler,
		galleryHandler, achievementHandler)
	registerAdminPages(engine, cfg.Session)

	logger.Global().Infow("Routes registered")
}

// registerPublic mounts the read-only site content endpoints.
func registerPublic(engine *gin.Engine,
	posts *handler.PostHandler,
	categories *handler.CategoryHandler,
	announcements *handler.AnnouncementHandler,
	facilities *handler.FacilityHandler,
	activities *handler.ActivityHandler,
	galleries *handler.GalleryHandler,
	achievements *handler.AchievementHandler,
) {
	api := engine.Group("/api")

	api.GET("/posts", posts.ListPublished)
	api.GET("/posts/:slug", posts.GetBySlug)
	api.GET("/categories", categories.List)
	api.GET("/announcements", announcements.ListCurrent)
	api.GET("/facilities", facilities.List)
	api.GET("/facilities/:slug", facilities.GetBySlug)
	api.GET("/activities", activities.List)
	api.GET("/activities/:slug", activities.GetBySlug)
	api.GET("/galleries", galleries.List)
	api.GET("/galleries/:slug", galleries.GetBySlug)
	api.GET("/achievements", achievements.List)
}

// registerAuth mounts the session endpoints. Login is open; the rest need a
// live token.
func registerAuth(engine *gin.Engine, authSvc *biz.AuthService, h *handler.AuthHandler) {
	auth := engine.Group("/api/auth")

	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.POST("/refresh", middleware.Bearer(authSvc), h.Refresh)
	auth.GET("/whoami", middleware.Bearer(authSvc), h.WhoAmI)
}

// registerAdminAPI mounts the writable endpoints behind bearer
// authentication and role authorization.
func registerAdminAPI(engine *gin.Engine, authSvc *biz.AuthService, authorizer *authz.Authorizer,
	users *handler.UserHandler,
	posts *handler.PostHandler,
	categories *handler.CategoryHandler,
	announcements *handler.AnnouncementHandler,
	facilities *handler.FacilityHandler,
	activities *handler.ActivityHandler,
	galleries *handler.GalleryHandler,
	achievements *handler.AchievementHandler,
) {
	admin := engine.Group("/api/admin", middleware.Bearer(authSvc), middleware.Authorize(authorizer))

	admin.GET("/users", users.List)
	admin.POST("/users", users.Create)
	admin.PUT("/users/password", users.ChangePassword)

	resource := func(group *gin.RouterGroup, path string, create, update, remove, get, list gin.HandlerFunc) {
		group.GET(path, list)
		group.POST(path, create)
		group.GET(path+"/:id", get)
		group.PUT(path+"/:id", update)
		group.DELETE(path+"/:id", remove)
	}

	resource(admin, "/posts", posts.Create, posts.Update, posts.Delete, posts.Get, posts.List)
	resource(admin, "/categories", categories.Create, categories.Update, categories.Delete, categories.Get, categories.List)
	resource(admin, "/announcements", announcements.Create, announcements.Update, announcements.Delete, announcements.Get, announcements.List)
	resource(admin, "/facilities", facilities.Create, facilities.Update, facilities.Delete, facilities.Get, facilities.List)
	resource(admin, "/activities", activities.Create, activities.Update, activities.Delete, activities.Get, activities.List)
	resource(admin, "/galleries", galleries.Create, galleries.Update, galleries.Delete, galleries.Get, galleries.List)
	resource(admin, "/achievements", achievements.Create, achievements.Update, achievements.Delete, achievements.Get, achievements.List)
}

// registerAdminPages mounts the browser-facing admin shell behind the cookie
// gate. The pages only render a shell; all data flows through the guarded
// API, so the gate stays advisory.
func registerAdminPages(engine *gin.Engine, opts *sessionopts.Options) {
	pages := engine.Group("/admin", middleware.SessionGate(opts, "/admin"))

	pages.GET("", adminShell("Dashboard"))
	pages.GET("/login", adminShell("Sign in"))
	pages.GET("/posts", adminShell("Posts"))
	pages.GET("/announcements", adminShell("Announcements"))
	pages.GET("/facilities", adminShell("Facilities"))
	pages.GET("/activities", adminShell("Activities"))
	pages.GET("/galleries", adminShell("Galleries"))
	pages.GET("/achievements", adminShell("Achievements"))
}

func adminShell(title string) gin.HandlerFunc {
	const page = `<!DOCTYPE html><html><head><title>%s | Campus Admin</title></head>` +
		`<body><div id="app" data-page="%s"></div><script src="/assets/admin.js"></script></body></html>`
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, page, title, title)
	}
}
