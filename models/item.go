package models

import (
	"fmt"
	"time"
)

// Item represents items table. An item's identity is its in-game id (GID):
// price observations can arrive for a GID before the item name is known, so
// Name stays NULL until discovered. The display name is never used to
// deduplicate items.
type Item struct {
	ItemID     uint      `gorm:"primaryKey;column:item_id" json:"item_id"`
	GameID     int       `gorm:"column:game_id;not null;uniqueIndex:idx_items_game_id" json:"game_id"`
	Name       *string   `gorm:"type:varchar(200)" json:"name"`
	CategoryID *uint     `json:"category_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
}

// TableName specifies the table name for Item
func (Item) TableName() string {
	return "items"
}

// DisplayName returns the item name, or a GID placeholder while the name is
// still undiscovered.
func (i *Item) DisplayName() string {
	if i.Name != nil && *i.Name != "" {
		return *i.Name
	}
	return fmt.Sprintf("Item #%d", i.GameID)
}
