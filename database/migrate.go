package database

import (
	"fmt"

	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/utils"
	"gorm.io/gorm"
)

// Models lists every persisted type in dependency order.
var Models = []interface{}{
	&models.User{},
	&models.MenuItem{},
	&models.Reservation{},
	&models.Order{},
	&models.OrderItem{},
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Info("AutoMigrate completed")
	return nil
}
