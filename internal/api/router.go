package api

import (
	"github.com/gin-gonic/gin"

	"github.com/example/ec-shop-api/internal/api/middleware"
	"github.com/example/ec-shop-api/internal/auth"
	"github.com/example/ec-shop-api/internal/models"
)

// RouterConfig bundles the router dependencies.
type RouterConfig struct {
	Products   *ProductHandlers
	Users      *UserHandlers
	Orders     *OrderHandlers
	Admin      *AdminHandlers
	Tokens     *auth.TokenService
	CookieName string

	// WebDir optionally serves a built SPA.
	WebDir string
	// StaticDir optionally serves uploaded images under StaticURL.
	StaticDir string
	StaticURL string
}

// NewRouter wires the gin engine, middleware chain and route groups.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	if cfg.WebDir != "" {
		r.Static("/app", cfg.WebDir)
	}
	if cfg.StaticDir != "" && cfg.StaticURL != "" {
		r.Static(cfg.StaticURL, cfg.StaticDir)
	}

	requireAuth := middleware.RequireAuth(cfg.Tokens, cfg.CookieName)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	api := r.Group("/api")

	products := api.Group("/products")
	{
		products.GET("", cfg.Products.List)
		products.POST("/check-stock", cfg.Products.CheckStock)
		products.GET("/:id", cfg.Products.Get)
		products.GET("/:id/reviews", cfg.Products.ListReviews)
		products.POST("/:id/reviews", requireAuth, middleware.RequireRole(models.RoleUser), cfg.Products.AddReview)
	}

	users := api.Group("/users")
	{
		users.POST("/register", cfg.Users.Register)
		users.POST("/login", cfg.Users.Login)
		users.GET("/logout", requireAuth, cfg.Users.Logout)
		users.GET("/profile", requireAuth, cfg.Users.GetProfile)
		users.PUT("/profile", requireAuth, cfg.Users.UpdateProfile)
		users.PUT("/password", requireAuth, cfg.Users.UpdatePassword)
		users.GET("/cart", requireAuth, cfg.Users.GetCart)
		users.PUT("/cart", requireAuth, cfg.Users.UpdateCart)
		users.GET("/addresses", requireAuth, cfg.Users.GetAddresses)
	}

	orders := api.Group("/orders", requireAuth)
	{
		orders.POST("", cfg.Orders.Create)
		orders.GET("/mine", cfg.Orders.ListMine)
		orders.GET("/:id", cfg.Orders.Get)
	}

	admin := api.Group("/admin", requireAuth, adminOnly)
	{
		admin.GET("/users", cfg.Admin.ListUsers)
		admin.DELETE("/users/:id", cfg.Admin.DeleteUser)
		admin.GET("/orders", cfg.Orders.ListAll)
		admin.PUT("/orders/:id/status", cfg.Orders.UpdateStatus)
		admin.GET("/stats", cfg.Admin.Stats)
		admin.GET("/logout", cfg.Users.Logout)
		admin.POST("/products", cfg.Products.Create)
		admin.PUT("/products/:id", cfg.Products.Update)
		admin.DELETE("/products/:id", cfg.Products.Delete)
	}

	return r
}
