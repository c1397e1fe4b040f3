package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/lumiere-api/cart"
	"github.com/yeremiapane/lumiere-api/config"
	"github.com/yeremiapane/lumiere-api/controllers"
	"github.com/yeremiapane/lumiere-api/kds"
	"github.com/yeremiapane/lumiere-api/middlewares"
	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/services"
	"github.com/yeremiapane/lumiere-api/utils"
	"gorm.io/gorm"
)

// Dependencies is everything the HTTP layer needs. Tests build one by hand
// to swap in clocks and cheaper bcrypt costs.
type Dependencies struct {
	Config       *config.Config
	Tokens       *utils.TokenIssuer
	Auth         *services.AuthService
	Menu         *services.MenuService
	Reservations *services.ReservationService
	Orders       *services.OrderService
	Carts        *cart.Store
	Hub          *kds.Hub
}

// NewDependencies wires the production services on top of db.
func NewDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	hub := kds.NewHub()
	menu := services.NewMenuService(db)
	return &Dependencies{
		Config:       cfg,
		Tokens:       utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpire),
		Auth:         services.NewAuthService(db, cfg.BcryptCost),
		Menu:         menu,
		Reservations: services.NewReservationService(db, hub),
		Orders:       services.NewOrderService(db, menu, hub),
		Carts:        cart.NewStore(cfg.CartIdleTTL),
		Hub:          hub,
	}
}

func SetupRouter(deps *Dependencies) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"panic": recovered,
			"path":  c.Request.URL.Path,
		}).Error("recovered from panic")
		utils.RespondJSON(c, http.StatusInternalServerError, "Server Error", nil)
		c.Abort()
	}))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders(!cfg.IsDevelopment()))
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigins))

	r.NoRoute(func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusNotFound, "Route not found: "+c.Request.URL.RequestURI(), nil)
	})

	// Controllers
	authCtrl := controllers.NewAuthController(deps.Auth, deps.Tokens)
	menuCtrl := controllers.NewMenuController(deps.Menu)
	reservationCtrl := controllers.NewReservationController(deps.Reservations)
	cartCtrl := controllers.NewCartController(deps.Carts, deps.Menu, deps.Orders)
	orderCtrl := controllers.NewOrderController(deps.Orders)
	adminCtrl := controllers.NewAdminController(deps.Orders)
	kitchenCtrl := controllers.NewKitchenController(deps.Hub, cfg.CORSOrigins)
	healthCtrl := controllers.NewHealthController(cfg.Env)

	requireAuth := middlewares.AuthMiddleware(deps.Tokens, deps.Auth)
	authLimiter := middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)

	api := r.Group(cfg.APIPrefix)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	api.GET("/health", healthCtrl.Health)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authLimiter.RateLimit(), authCtrl.Register)
		auth.POST("/login", authLimiter.RateLimit(), authCtrl.Login)
		auth.GET("/me", requireAuth, authCtrl.Me)
		auth.PUT("/password", requireAuth, authCtrl.ChangePassword)
	}

	api.GET("/menu", menuCtrl.GetAllMenus)
	api.GET("/menu/:id", menuCtrl.GetMenuByID)

	// Cart is anonymous; only checkout needs a signed-in user.
	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", cartCtrl.GetCart)
		cartGroup.DELETE("", cartCtrl.ClearCart)
		cartGroup.POST("/items", cartCtrl.AddItem)
		cartGroup.PATCH("/items/:id", cartCtrl.UpdateItem)
		cartGroup.DELETE("/items/:id", cartCtrl.RemoveItem)
		cartGroup.POST("/checkout", requireAuth, cartCtrl.Checkout)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	reservations := api.Group("/reservations", requireAuth)
	{
		reservations.POST("", reservationCtrl.CreateReservation)
		reservations.GET("/my", reservationCtrl.GetMyReservations)
	}

	orders := api.Group("/orders", requireAuth)
	{
		orders.GET("/my", orderCtrl.GetMyOrders)
		orders.GET("/:id", orderCtrl.GetOrderByID)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := api.Group("/admin", requireAuth, middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/orders", adminCtrl.GetOrderFlow)
		admin.PATCH("/orders/:id/status", adminCtrl.UpdateOrderStatus)
	}

	// Kitchen display, admin only. Token comes in the query string.
	api.GET("/ws/kitchen",
		middlewares.WebSocketAuthMiddleware(deps.Tokens, deps.Auth),
		middlewares.RequireRole(models.RoleAdmin),
		kitchenCtrl.KDSHandler,
	)

	return r
}
