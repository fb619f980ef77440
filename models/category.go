package models

import (
	"time"
)

// Category represents categories table. Categories mirror the auction-house
// tabs (weapons, resources, equipment, ...) and carry the game's own id.
type Category struct {
	CategoryID uint      `gorm:"primaryKey;column:category_id" json:"category_id"`
	GameID     int       `gorm:"column:game_id;not null;uniqueIndex:idx_categories_game_id" json:"game_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
