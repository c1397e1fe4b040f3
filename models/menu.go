package models

import "time"

const (
	CategoryStarters   = "Starters"
	CategoryMainCourse = "Main Course"
	CategoryDesserts   = "Desserts"
	CategoryBeverages  = "Beverages"
)

var MenuCategories = []string{
	CategoryStarters,
	CategoryMainCourse,
	CategoryDesserts,
	CategoryBeverages,
}

func IsMenuCategory(s string) bool {
	for _, c := range MenuCategories {
		if c == s {
			return true
		}
	}
	return false
}

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `gorm:"type:varchar(32);not null;index" json:"category"`
	Image       string    `gorm:"type:varchar(512);not null;default:''" json:"image"`
	IsVeg       bool      `gorm:"not null;default:false" json:"isVeg"`
	// No column default: gorm would write it in place of an explicit false.
	IsAvailable bool      `gorm:"not null;index" json:"isAvailable"`
	CreatedAt   time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}
