package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/csu-mims/inventory-backend/pkg/db"
	"github.com/csu-mims/inventory-backend/pkg/db/models"
	"github.com/csu-mims/inventory-backend/pkg/enums"
	pkgerrors "github.com/csu-mims/inventory-backend/pkg/errors"
)

// Service exposes inventory item management operations.
type Service interface {
	CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	GetItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	ListItems(ctx context.Context, input ListItemsInput) ([]ItemDTO, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// CreateItemInput holds the validated payload to create an item.
type CreateItemInput struct {
	Name           string
	Description    *string
	Quantity       int
	Unit           string
	AllocationType enums.AllocationType
}

// UpdateItemInput holds optional mutation values for an item. A set Quantity
// is an administrative correction and bypasses the stock-out ledger.
type UpdateItemInput struct {
	Name           *string
	Description    *string
	Quantity       *int
	Unit           *string
	AllocationType *enums.AllocationType
}

// ListItemsInput carries optional list filters.
type ListItemsInput struct {
	AllocationType *enums.AllocationType
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs an item service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateItem validates and inserts a new item.
func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	if err := validateItemFields(input.Name, input.Unit, input.AllocationType); err != nil {
		return nil, err
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	item := &models.Item{
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		Quantity:       input.Quantity,
		Unit:           strings.TrimSpace(input.Unit),
		AllocationType: input.AllocationType,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert item")
	}
	return NewItemDTO(created), nil
}

// GetItem loads a single item by ID.
func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return NewItemDTO(item), nil
}

// ListItems returns items newest-first with an optional allocation filter.
func (s *service) ListItems(ctx context.Context, input ListItemsInput) ([]ItemDTO, error) {
	if input.AllocationType != nil && !input.AllocationType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid allocation_type filter")
	}
	rows, err := s.repo.List(ctx, input.AllocationType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	return NewItemDTOs(rows), nil
}

// UpdateItem applies a partial update to an existing item.
func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		item.Quantity = *input.Quantity
	}
	if input.Unit != nil {
		if strings.TrimSpace(*input.Unit) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cannot be empty")
		}
		item.Unit = strings.TrimSpace(*input.Unit)
	}
	if input.AllocationType != nil {
		if !input.AllocationType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid allocation_type")
		}
		item.AllocationType = *input.AllocationType
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update item")
	}
	return NewItemDTO(updated), nil
}

// DeleteItem removes the item along with its stock-out history.
func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete item")
	}
	return nil
}

func validateItemFields(name, unit string, allocationType enums.AllocationType) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(unit) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit is required")
	}
	if !allocationType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid allocation_type")
	}
	return nil
}
