package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/lumiere-api/database"
	"github.com/yeremiapane/lumiere-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory SQLite database with the full schema.
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

func seedItem(t *testing.T, db *gorm.DB, item models.MenuItem) models.MenuItem {
	t.Helper()
	if item.Description == "" {
		item.Description = item.Name
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Name: "Guest", Email: email, Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&u).Error)
	return u
}

type recordingPublisher struct {
	orders       []models.Order
	reservations []models.Reservation
	statuses     []string
}

func (p *recordingPublisher) BroadcastOrderStatusChanged(o models.Order) {
	p.statuses = append(p.statuses, o.Status)
}

func (p *recordingPublisher) BroadcastOrderPlaced(o models.Order) {
	p.orders = append(p.orders, o)
}

func (p *recordingPublisher) BroadcastReservationCreated(r models.Reservation) {
	p.reservations = append(p.reservations, r)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
