package stockout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/csu-mims/inventory-backend/pkg/db/models"
)

// Repository wraps persistence operations for stock-out transactions.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a transaction row.
func (r *Repository) Create(ctx context.Context, row *models.StockOutTransaction) (*models.StockOutTransaction, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByID loads a transaction with its item and releasing user.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.StockOutTransaction, error) {
	var row models.StockOutTransaction
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("ReleasedByUser").
		First(&row, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns transactions newest-first, optionally scoped to one item.
func (r *Repository) List(ctx context.Context, itemID *uuid.UUID) ([]models.StockOutTransaction, error) {
	qb := r.db.WithContext(ctx).
		Preload("Item").
		Preload("ReleasedByUser").
		Order("release_date DESC")
	if itemID != nil {
		qb = qb.Where("item_id = ?", *itemID)
	}
	var rows []models.StockOutTransaction
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
