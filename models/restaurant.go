package models

import "time"

// Restaurant uniqueness is composite: two restaurants may share a name or an
// address, but never both at once.
type Restaurant struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null;uniqueIndex:idx_restaurants_name_address"`
	Address      string    `json:"address" gorm:"size:500;not null;uniqueIndex:idx_restaurants_name_address"`
	Phone        string    `json:"phone" gorm:"size:20;not null"`
	OpeningHours string    `json:"opening_hours" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
