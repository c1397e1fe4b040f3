package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/lumiere-api/cart"
	"github.com/yeremiapane/lumiere-api/controllers"
	"github.com/yeremiapane/lumiere-api/database"
	"github.com/yeremiapane/lumiere-api/middlewares"
	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/services"
	"github.com/yeremiapane/lumiere-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	auth   *services.AuthService
	tokens *utils.TokenIssuer
	carts  *cart.Store
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models...))
	return db
}

// setupEnv mounts the handlers on a bare engine, without the rate limiter
// and the global middleware stack.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	env := &testEnv{
		db:     db,
		auth:   services.NewAuthService(db, bcrypt.MinCost),
		tokens: utils.NewTokenIssuer("test-secret", time.Hour),
		carts:  cart.NewStore(time.Hour),
	}
	menu := services.NewMenuService(db)
	orders := services.NewOrderService(db, menu, nil)
	reservations := services.NewReservationService(db, nil)

	authCtrl := controllers.NewAuthController(env.auth, env.tokens)
	menuCtrl := controllers.NewMenuController(menu)
	cartCtrl := controllers.NewCartController(env.carts, menu, orders)
	orderCtrl := controllers.NewOrderController(orders)
	reservationCtrl := controllers.NewReservationController(reservations)
	adminCtrl := controllers.NewAdminController(orders)
	requireAuth := middlewares.AuthMiddleware(env.tokens, env.auth)

	r := gin.New()
	r.POST("/auth/register", authCtrl.Register)
	r.POST("/auth/login", authCtrl.Login)
	r.GET("/auth/me", requireAuth, authCtrl.Me)
	r.PUT("/auth/password", requireAuth, authCtrl.ChangePassword)
	r.GET("/menu", menuCtrl.GetAllMenus)
	r.GET("/menu/:id", menuCtrl.GetMenuByID)
	r.GET("/cart", cartCtrl.GetCart)
	r.DELETE("/cart", cartCtrl.ClearCart)
	r.POST("/cart/items", cartCtrl.AddItem)
	r.PATCH("/cart/items/:id", cartCtrl.UpdateItem)
	r.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
	r.POST("/cart/checkout", requireAuth, cartCtrl.Checkout)
	r.GET("/orders/my", requireAuth, orderCtrl.GetMyOrders)
	r.GET("/orders/:id", requireAuth, orderCtrl.GetOrderByID)
	r.POST("/reservations", requireAuth, reservationCtrl.CreateReservation)
	r.GET("/reservations/my", requireAuth, reservationCtrl.GetMyReservations)
	r.GET("/admin/orders", requireAuth, middlewares.RequireRole(models.RoleAdmin), adminCtrl.GetOrderFlow)
	r.PATCH("/admin/orders/:id/status", requireAuth, middlewares.RequireRole(models.RoleAdmin), adminCtrl.UpdateOrderStatus)
	r.GET("/health", controllers.NewHealthController("test").Health)
	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

// signUp registers a user directly and returns a bearer header for them.
func (e *testEnv) signUp(t *testing.T, email string) (models.User, map[string]string) {
	t.Helper()
	u, err := e.auth.Register(context.Background(), services.RegisterInput{
		Name: "Guest", Email: email, Password: "secret1",
	})
	require.NoError(t, err)
	token, err := e.tokens.Issue(u.ID)
	require.NoError(t, err)
	return *u, map[string]string{"Authorization": "Bearer " + token}
}

func (e *testEnv) seedItem(t *testing.T, item models.MenuItem) models.MenuItem {
	t.Helper()
	if item.Description == "" {
		item.Description = item.Name
	}
	if item.Category == "" {
		item.Category = models.CategoryStarters
	}
	require.NoError(t, e.db.Create(&item).Error)
	return item
}

func withHeaders(sets ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}
