package models

import (
	"time"
)

// Lot sizes the auction house sells in.
const (
	LotSingle  = 1
	LotTen     = 10
	LotHundred = 100
)

// PriceEntry represents price_entries table. One row per observed listing:
// the asking price in Kamas for a lot of Quantity units. Entries are
// append-only; rows are never updated after insertion.
type PriceEntry struct {
	EntryID    uint       `gorm:"primaryKey;column:entry_id" json:"entry_id"`
	ItemID     uint       `gorm:"not null;index:idx_price_entries_item_created" json:"item_id"`
	Price      int64      `gorm:"not null;check:price >= 0" json:"price"`
	Quantity   int        `gorm:"not null;default:1;check:quantity IN (1,10,100)" json:"quantity"`
	ObservedAt *time.Time `json:"observed_at,omitempty"`
	CreatedAt  time.Time  `gorm:"index:idx_price_entries_item_created" json:"created_at"`

	// Relationships
	Item *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"item,omitempty"`
}

// TableName specifies the table name for PriceEntry
func (PriceEntry) TableName() string {
	return "price_entries"
}

// UnitPrice returns the price of a single unit in Kamas, for comparing
// listings across lot sizes.
func (p *PriceEntry) UnitPrice() float64 {
	if p.Quantity == 0 {
		return float64(p.Price)
	}
	return float64(p.Price) / float64(p.Quantity)
}
