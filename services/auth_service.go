package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxNameLen        = 50
	minPasswordLen    = 6
	maxPasswordBytes  = 72 // bcrypt ignores anything past this
	DefaultBcryptCost = 12
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthService is the credential store. Passwords are hashed only in
// Register and ChangePassword; no other write path touches the column.
type AuthService struct {
	db   *gorm.DB
	cost int
}

func NewAuthService(db *gorm.DB, cost int) *AuthService {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &AuthService{db: db, cost: cost}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)

	// Duplicates are reported ahead of field validation.
	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing > 0 {
		return nil, utils.ErrDuplicateEmail
	}

	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", utils.ErrValidation)
	case utf8.RuneCountInString(name) > maxNameLen:
		return nil, fmt.Errorf("%w: name cannot exceed %d characters", utils.ErrValidation, maxNameLen)
	case !emailPattern.MatchString(email):
		return nil, fmt.Errorf("%w: please provide a valid email", utils.ErrValidation)
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Phone:    strings.TrimSpace(in.Phone),
		Role:     models.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	utils.InfoLogger.WithField("user_id", user.ID).Info("New user registered")
	return &user, nil
}

// Verify checks a login. Unknown email and wrong password are the same
// error.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	return &user, nil
}

func (s *AuthService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", utils.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// ChangePassword re-hashes after verifying the current password. Only the
// password column is written.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return utils.ErrInvalidCredentials
	}
	if err := checkPassword(next); err != nil {
		return err
	}

	hash, err := s.hashPassword(next)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("password", hash).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	utils.InfoLogger.WithField("user_id", userID).Info("Password changed")
	return nil
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func checkPassword(password string) error {
	switch {
	case password == "":
		return fmt.Errorf("%w: password is required", utils.ErrValidation)
	case utf8.RuneCountInString(password) < minPasswordLen:
		return fmt.Errorf("%w: password must be at least %d characters", utils.ErrValidation, minPasswordLen)
	case len(password) > maxPasswordBytes:
		return fmt.Errorf("%w: password is too long", utils.ErrValidation)
	}
	return nil
}
