package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/utils"
	"gorm.io/gorm"
)

const defaultMenuSort = "-createdAt"

// sortColumns whitelists the sort keys a client may ask for.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"name":      "name",
}

type MenuFilter struct {
	Category string
	Search   string
	Sort     string
	Limit    int
}

type MenuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// List returns available items only. Category is an exact, case-sensitive
// match, Search a case-insensitive substring of the name. Limit <= 0 means
// no limit.
func (s *MenuService) List(ctx context.Context, f MenuFilter) ([]models.MenuItem, error) {
	// Checked here rather than in SQL: MySQL's default collation would let
	// "desserts" match "Desserts".
	if f.Category != "" && !models.IsMenuCategory(f.Category) {
		return make([]models.MenuItem, 0), nil
	}

	q := s.db.WithContext(ctx).Model(&models.MenuItem{}).Where("is_available = ?", true)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(search))+"%")
	}

	q = q.Order(OrderClause(f.Sort)).Order("id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	items := make([]models.MenuItem, 0)
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

// GetByID does not look at IsAvailable, unlike List.
func (s *MenuService) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: menu item not found", utils.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &item, nil
}

// OrderClause turns "price" / "-createdAt" style keys into an ORDER BY
// term. Unknown keys fall back to newest first.
func OrderClause(sort string) string {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		sort = defaultMenuSort
	}
	dir := "ASC"
	if strings.HasPrefix(sort, "-") {
		dir = "DESC"
		sort = sort[1:]
	}
	col, ok := sortColumns[sort]
	if !ok {
		return "created_at DESC"
	}
	return col + " " + dir
}

func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}
