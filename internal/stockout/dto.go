package stockout

import (
	"time"

	"github.com/google/uuid"

	"github.com/csu-mims/inventory-backend/pkg/db/models"
)

// TransactionDTO is the stock-out payload returned to clients. Item and user
// fields are denormalized so history rows render without extra lookups.
type TransactionDTO struct {
	ID               uuid.UUID  `json:"id"`
	ItemID           uuid.UUID  `json:"item_id"`
	ItemName         string     `json:"item_name,omitempty"`
	ItemUnit         string     `json:"item_unit,omitempty"`
	QuantityDeducted int        `json:"quantity_deducted"`
	ReleaseDate      time.Time  `json:"release_date"`
	Remarks          *string    `json:"remarks,omitempty"`
	ReleasedBy       *uuid.UUID `json:"released_by,omitempty"`
	ReleasedByName   string     `json:"released_by_name,omitempty"`
}

// InsufficientStockDetails is attached to insufficient-stock errors so callers
// can render the shortfall without parsing the message.
type InsufficientStockDetails struct {
	ItemID    uuid.UUID `json:"item_id"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

// NewTransactionDTO builds a DTO from the persisted model.
func NewTransactionDTO(row *models.StockOutTransaction) *TransactionDTO {
	dto := &TransactionDTO{
		ID:               row.ID,
		ItemID:           row.ItemID,
		QuantityDeducted: row.QuantityDeducted,
		ReleaseDate:      row.ReleaseDate,
		Remarks:          row.Remarks,
		ReleasedBy:       row.ReleasedBy,
	}
	if row.Item != nil {
		dto.ItemName = row.Item.Name
		dto.ItemUnit = row.Item.Unit
	}
	if row.ReleasedByUser != nil {
		dto.ReleasedByName = row.ReleasedByUser.FullName()
	}
	return dto
}

// NewTransactionDTOs maps a slice of models preserving order.
func NewTransactionDTOs(rows []models.StockOutTransaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewTransactionDTO(&rows[i]))
	}
	return out
}
