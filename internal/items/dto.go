package items

import (
	"time"

	"github.com/google/uuid"

	"github.com/csu-mims/inventory-backend/pkg/db/models"
)

// ItemDTO is the item payload returned to clients.
type ItemDTO struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Description           *string   `json:"description,omitempty"`
	Quantity              int       `json:"quantity"`
	Unit                  string    `json:"unit"`
	AllocationType        string    `json:"allocation_type"`
	AllocationTypeDisplay string    `json:"allocation_type_display"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// NewItemDTO builds a DTO from the persisted model.
func NewItemDTO(item *models.Item) *ItemDTO {
	return &ItemDTO{
		ID:                    item.ID,
		Name:                  item.Name,
		Description:           item.Description,
		Quantity:              item.Quantity,
		Unit:                  item.Unit,
		AllocationType:        item.AllocationType.String(),
		AllocationTypeDisplay: item.AllocationType.Display(),
		CreatedAt:             item.CreatedAt,
		UpdatedAt:             item.UpdatedAt,
	}
}

// NewItemDTOs maps a slice of models preserving order.
func NewItemDTOs(rows []models.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewItemDTO(&rows[i]))
	}
	return out
}
