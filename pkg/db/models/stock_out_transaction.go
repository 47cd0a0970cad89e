package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockOutTransaction records one immutable deduction event against an Item.
// Rows are never updated; they disappear only when the parent item is deleted.
type StockOutTransaction struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID           uuid.UUID  `gorm:"column:item_id;type:uuid;not null"`
	Item             *Item      `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	QuantityDeducted int        `gorm:"column:quantity_deducted;not null"`
	ReleaseDate      time.Time  `gorm:"column:release_date;autoCreateTime"`
	Remarks          *string    `gorm:"column:remarks"`
	ReleasedBy       *uuid.UUID `gorm:"column:released_by;type:uuid"`
	ReleasedByUser   *User      `gorm:"foreignKey:ReleasedBy;constraint:OnDelete:SET NULL"`
}

func (s *StockOutTransaction) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
