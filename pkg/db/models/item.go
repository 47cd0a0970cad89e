package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/csu-mims/inventory-backend/pkg/enums"
)

// Item is a trackable inventory good with a unit of measure and the current
// on-hand quantity. Quantity is only ever decremented through the stock-out
// coordinator; direct updates are administrative corrections.
type Item struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string                `gorm:"column:name;not null"`
	Description    *string               `gorm:"column:description"`
	Quantity       int                   `gorm:"column:quantity;not null;default:0"`
	Unit           string                `gorm:"column:unit;not null"`
	AllocationType enums.AllocationType  `gorm:"column:allocation_type;not null"`
	StockOuts      []StockOutTransaction `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an ID when the backing database has no uuid default
// (the sqlite dev/test mode).
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
