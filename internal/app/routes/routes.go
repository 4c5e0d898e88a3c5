package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/javamaster/internal/app/controllers"
	"github.com/yigit/javamaster/internal/app/models"
	"github.com/yigit/javamaster/internal/middleware"
	"github.com/yigit/javamaster/internal/pkg/websocket"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth     *controllers.AuthController
	Pages    *controllers.PageController
	Courses  *controllers.CourseController
	Checkout *controllers.CheckoutController
	Orders   *controllers.OrderController
	Payments *controllers.PaymentController
	LiveFeed *websocket.Handler
}

// staticPages are the informational pages served from the page catalog
var staticPages = []string{"about", "contact", "privacy", "terms", "refund-policy"}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctl Controllers, authMiddleware *middleware.AuthMiddleware) {
	// Payment widget endpoint; non-POST methods get a 405 from the handler
	router.Any("/api/create-order", ctl.Payments.CreateOrder)

	setupPageRoutes(router, ctl, authMiddleware)
	setupAPIRoutes(router, ctl, authMiddleware)
}

// setupPageRoutes mounts the browser-facing pages. Every page reads the
// session cookies; gated groups redirect anonymous visitors to /login.
func setupPageRoutes(router *gin.Engine, ctl Controllers, authMiddleware *middleware.AuthMiddleware) {
	pages := router.Group("/")
	pages.Use(authMiddleware.Session())

	// --- Public pages ---
	pages.GET("/", ctl.Pages.Home)
	pages.GET("/courses", ctl.Courses.List)
	for _, slug := range staticPages {
		pages.GET("/"+slug, ctl.Pages.Static(slug))
	}

	pages.GET("/signup", ctl.Auth.SignUpForm)
	pages.POST("/signup", ctl.Auth.SignUp)
	pages.GET("/login", ctl.Auth.LoginForm)
	pages.POST("/login", ctl.Auth.Login)
	pages.POST("/logout", ctl.Auth.Logout)
	pages.POST("/admin/login", ctl.Auth.AdminLogin)
	pages.POST("/admin/logout", ctl.Auth.AdminLogout)

	// --- Student pages ---
	student := pages.Group("")
	student.Use(middleware.RequireStudent())
	{
		student.GET("/dashboard", ctl.Pages.StudentDashboard)
		student.GET("/orders", ctl.Orders.List)
		student.GET("/order-confirmation/:transactionId", ctl.Orders.Confirmation)
		student.POST("/checkout/confirm", ctl.Checkout.Confirm)
		student.GET("/checkout/:courseId", ctl.Checkout.Form)
		student.POST("/checkout/:courseId", ctl.Checkout.Start)
	}

	// --- Admin pages ---
	admin := pages.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/dashboard", ctl.Pages.AdminDashboard)
		admin.GET("/live", ctl.LiveFeed.HandleConnection)
	}
}

// setupAPIRoutes mounts the bearer-token JSON API
func setupAPIRoutes(router *gin.Engine, ctl Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctl.Auth.Register)
		auth.POST("/login", ctl.Auth.APILogin)
		auth.POST("/admin/login", ctl.Auth.APIAdminLogin)
		auth.POST("/refresh", ctl.Auth.RefreshToken)
		auth.POST("/logout", ctl.Auth.APILogout)
	}

	// --- Public catalog ---
	courses := v1.Group("/courses")
	{
		courses.GET("", ctl.Courses.List)
		courses.GET("/:id", ctl.Courses.Get)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	studentAPI := authenticated.Group("")
	studentAPI.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		studentAPI.GET("/me/orders", ctl.Orders.APIList)
		studentAPI.GET("/orders/:transactionId", ctl.Orders.APIGet)
	}

	adminAPI := authenticated.Group("/admin")
	adminAPI.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		adminAPI.GET("/dashboard", ctl.Pages.AdminDashboard)
	}
}
