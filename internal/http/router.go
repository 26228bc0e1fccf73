package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"metadologie.com/portal/internal/api"
	"metadologie.com/portal/internal/cache"
	"metadologie.com/portal/internal/config"
	"metadologie.com/portal/internal/http/flash"
	"metadologie.com/portal/internal/http/handlers"
	adminhandlers "metadologie.com/portal/internal/http/handlers/admin"
	"metadologie.com/portal/internal/http/middleware"
	"metadologie.com/portal/internal/http/render"
	"metadologie.com/portal/internal/session"
	"metadologie.com/portal/web"
)

const sessionCookie = "portal_session"

// NewRouter wires middleware, services and routes into a gin engine.
// The session store is injected so tests can run against the in-memory one.
func NewRouter(l *slog.Logger, cfg config.Config, store session.Store) *gin.Engine {
	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, l)
	authSvc := api.NewAuthService(client)
	adminSvc := api.NewAdminService(client)
	qc := cache.New(cache.DefaultTTL)

	flashCodec := flash.NewCodec(cfg.CookieSecret, "portal_flash", cfg.SecureCookie)
	sessCfg := middleware.SessionCfg{
		Store:      store,
		CookieName: sessionCookie,
		Secure:     cfg.SecureCookie,
		TTL:        cfg.SessionTTL,
	}

	r := gin.New()
	r.SetHTMLTemplate(web.Templates())
	r.GET("/static/app.css", func(c *gin.Context) {
		c.Data(200, "text/css; charset=utf-8", web.AppCSS)
	})

	// ErrorHandler wraps Recovery so a recovered panic still renders the
	// error page.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(l))
	r.Use(middleware.ErrorHandler(l))
	r.Use(middleware.Recovery(l))
	r.Use(middleware.FlashMiddleware(flashCodec))
	r.Use(middleware.SessionMiddleware(sessCfg))
	r.Use(middleware.CSRF(cfg.SecureCookie))

	auth := handlers.NewAuthHandlers(authSvc, qc, flashCodec, sessCfg)
	dashboard := handlers.NewDashboardHandler(authSvc, qc)
	transactions := handlers.NewTransactionsHandler(authSvc, qc)
	customers := handlers.NewCustomersHandler(authSvc, qc)
	conversations := handlers.NewConversationsHandler(authSvc, qc)
	profile := handlers.NewProfileHandler(authSvc, qc, flashCodec, sessCfg)

	adminAuth := adminhandlers.NewAuthHandlers(adminSvc, qc, flashCodec, sessCfg)
	adminDashboard := adminhandlers.NewDashboardHandler(adminSvc, qc)
	adminStores := adminhandlers.NewStoresHandler(adminSvc, qc, flashCodec)
	adminData := adminhandlers.NewMerchantDataHandler(adminSvc, qc)
	adminProfile := adminhandlers.NewProfileHandler(adminSvc, qc, flashCodec, sessCfg)
	verifyEmail := adminhandlers.NewVerifyEmailHandler(adminSvc)

	// Public routes.
	r.GET("/login", auth.LoginGet)
	r.POST("/login", auth.LoginPost)
	r.GET("/signup", auth.SignupGet)
	r.POST("/signup", auth.SignupPost)
	r.GET("/forgot-password", auth.ForgotPasswordGet)
	r.POST("/forgot-password", auth.ForgotPasswordPost)
	r.GET("/reset-password", auth.ResetPasswordGet)
	r.POST("/reset-password", auth.ResetPasswordPost)
	r.POST("/logout", auth.LogoutPost)
	r.GET("/verify-email-change", verifyEmail.Get)

	// Merchant area.
	merchant := r.Group("/", middleware.RequireMerchant(flashCodec))
	{
		merchant.GET("/", dashboard.Get)
		merchant.GET("/dashboard", dashboard.Get)
		merchant.GET("/transactions", transactions.List)
		merchant.GET("/customers", customers.List)
		merchant.GET("/conversations", conversations.List)
		merchant.GET("/profile", profile.Get)
		merchant.POST("/profile", profile.Post)
		merchant.GET("/profile/password", profile.PasswordGet)
		merchant.POST("/profile/password", profile.PasswordPost)
	}

	// Admin area. Login and forgot-password stay outside the guard.
	r.GET("/admin/login", adminAuth.LoginGet)
	r.POST("/admin/login", adminAuth.LoginPost)
	r.GET("/admin/forgot-password", adminAuth.ForgotPasswordGet)
	r.POST("/admin/forgot-password", adminAuth.ForgotPasswordPost)

	admin := r.Group("/admin", middleware.RequireAdmin(flashCodec))
	{
		admin.GET("/dashboard", adminDashboard.Show)
		admin.GET("/stores", adminStores.List)
		admin.POST("/stores/invite", adminStores.InvitePost)
		admin.POST("/stores/:id", adminStores.UpdatePost)
		admin.GET("/transactions", adminData.Transactions)
		admin.GET("/customers", adminData.Customers)
		admin.GET("/conversations", adminData.Conversations)
		admin.GET("/profile", adminProfile.Get)
		admin.POST("/profile", adminProfile.Post)
		admin.GET("/profile/password", adminProfile.PasswordGet)
		admin.POST("/profile/password", adminProfile.PasswordPost)
	}

	r.NoRoute(func(c *gin.Context) {
		render.ErrorPage(c, http.StatusNotFound, "The page you requested does not exist.")
	})

	return r
}
