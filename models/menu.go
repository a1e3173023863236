package models

import "time"

// MenuCategory is the closed set of menu item categories.
type MenuCategory string

const (
	CategoryEntree   MenuCategory = "entrée"
	CategoryPlat     MenuCategory = "plat"
	CategoryDessert  MenuCategory = "dessert"
	CategoryBoisson  MenuCategory = "boisson"
	CategoryAperitif MenuCategory = "apéritif"
)

// ValidCategory reports whether c is one of the declared categories.
func ValidCategory(c MenuCategory) bool {
	switch c {
	case CategoryEntree, CategoryPlat, CategoryDessert, CategoryBoisson, CategoryAperitif:
		return true
	}
	return false
}

// Menu is a single menu item. The restaurant reference is checked against a
// live Restaurant when written; deleting a restaurant does not cascade.
type Menu struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	RestaurantID uint         `json:"restaurant_id" gorm:"index;not null"`
	Restaurant   *Restaurant  `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Name         string       `json:"name" gorm:"size:255;not null;index"`
	Description  string       `json:"description" gorm:"size:1000;not null"`
	Price        float64      `json:"price" gorm:"not null;index"`
	Category     MenuCategory `json:"category" gorm:"size:32;not null;index"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
