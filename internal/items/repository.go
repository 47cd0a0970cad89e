package items

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/csu-mims/inventory-backend/pkg/db/models"
	"github.com/csu-mims/inventory-backend/pkg/enums"
)

// Repository wraps persistence operations for inventory items.
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

// FindByID loads the item without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new item row.
func (r *Repository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Update saves all fields of an existing item row.
func (r *Repository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// List returns items newest-first, optionally filtered by allocation type.
func (r *Repository) List(ctx context.Context, allocationType *enums.AllocationType) ([]models.Item, error) {
	qb := r.db.WithContext(ctx).Order("created_at DESC")
	if allocationType != nil {
		qb = qb.Where("allocation_type = ?", *allocationType)
	}
	var rows []models.Item
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes the item and its stock-out history in one transaction. The
// explicit child delete keeps cascade semantics identical across postgres and
// the sqlite dev mode, where GORM does not emit the FK clause.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&models.StockOutTransaction{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Item{}).Error
	})
}

// DecrementQuantity runs the guarded deduction:
//
//	UPDATE items SET quantity = quantity - ? WHERE id = ? AND quantity >= ?
//
// It reports whether a row was updated. A false return with a nil error means
// the guard rejected the deduction or the item does not exist; callers
// re-read inside the same transaction to tell those apart.
func (r *Repository) DecrementQuantity(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
