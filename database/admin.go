package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/utils"
	"gorm.io/gorm"
)

// PromoteAdmin gives an existing, registered user the admin role. Accounts
// are never created here; the user signs up through the API first.
func PromoteAdmin(db *gorm.DB, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no user with email %s", utils.ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.Role != models.RoleAdmin {
		if err := db.Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
			return nil, fmt.Errorf("promote user: %w", err)
		}
		user.Role = models.RoleAdmin
	}
	utils.InfoLogger.WithField("user_id", user.ID).Info("User promoted to admin")
	return &user, nil
}
