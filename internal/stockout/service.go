package stockout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/csu-mims/inventory-backend/internal/items"
	"github.com/csu-mims/inventory-backend/pkg/db"
	"github.com/csu-mims/inventory-backend/pkg/db/models"
	pkgerrors "github.com/csu-mims/inventory-backend/pkg/errors"
	"github.com/csu-mims/inventory-backend/pkg/metrics"
)

// Service coordinates stock-out recording against the item store.
type Service interface {
	RecordStockOut(ctx context.Context, callerID *uuid.UUID, input RecordStockOutInput) (*TransactionDTO, error)
	ListTransactions(ctx context.Context, input ListTransactionsInput) ([]TransactionDTO, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*TransactionDTO, error)
}

// RecordStockOutInput holds the validated payload for one deduction.
type RecordStockOutInput struct {
	ItemID   uuid.UUID
	Quantity int
	Remarks  *string
}

// ListTransactionsInput carries optional list filters.
type ListTransactionsInput struct {
	ItemID *uuid.UUID
}

type service struct {
	repo      *Repository
	itemsRepo *items.Repository
	dbClient  *db.Client
	metrics   *metrics.StockOutMetrics
}

// NewService constructs a stock-out service instance. Metrics may be nil.
func NewService(repo *Repository, itemsRepo *items.Repository, dbClient *db.Client, m *metrics.StockOutMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock-out repository required")
	}
	if itemsRepo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:      repo,
		itemsRepo: itemsRepo,
		dbClient:  dbClient,
		metrics:   m,
	}, nil
}

// RecordStockOut validates the request, then atomically deducts the item
// quantity and writes the transaction row. The quantity guard runs inside the
// insert transaction, so concurrent deductions against the same item can
// never drive it negative: one of them loses the guarded UPDATE and gets an
// insufficient-stock error instead.
func (s *service) RecordStockOut(ctx context.Context, callerID *uuid.UUID, input RecordStockOutInput) (*TransactionDTO, error) {
	if input.Quantity < 1 {
		s.metrics.ObserveAttempt(metrics.OutcomeError)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_deducted must be at least 1")
	}

	// Advisory pre-check. The authoritative guard is the conditional UPDATE
	// below; this only fails fast with a precise message.
	item, err := s.itemsRepo.FindByID(ctx, input.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.ObserveAttempt(metrics.OutcomeNotFound)
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		s.metrics.ObserveAttempt(metrics.OutcomeError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if item.Quantity < input.Quantity {
		s.metrics.ObserveAttempt(metrics.OutcomeInsufficientStock)
		return nil, insufficientStockError(input.ItemID, input.Quantity, item.Quantity)
	}

	var created *models.StockOutTransaction
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txItems := s.itemsRepo.WithTx(tx)

		ok, err := txItems.DecrementQuantity(ctx, input.ItemID, input.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deduct quantity")
		}
		if !ok {
			// The guard rejected the deduction. Re-read inside the
			// transaction to distinguish a vanished item from a race loser.
			current, err := txItems.FindByID(ctx, input.ItemID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload item")
			}
			return insufficientStockError(input.ItemID, input.Quantity, current.Quantity)
		}

		row := &models.StockOutTransaction{
			ItemID:           input.ItemID,
			QuantityDeducted: input.Quantity,
			Remarks:          input.Remarks,
			ReleasedBy:       callerID,
		}
		created, err = s.repo.WithTx(tx).Create(ctx, row)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert stock-out transaction")
		}
		return nil
	})
	if err != nil {
		switch typed := pkgerrors.As(err); {
		case typed == nil:
			s.metrics.ObserveAttempt(metrics.OutcomeError)
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record stock-out")
		case typed.Code() == pkgerrors.CodeInsufficientStock:
			s.metrics.ObserveAttempt(metrics.OutcomeInsufficientStock)
			return nil, err
		case typed.Code() == pkgerrors.CodeNotFound:
			s.metrics.ObserveAttempt(metrics.OutcomeNotFound)
			return nil, err
		default:
			s.metrics.ObserveAttempt(metrics.OutcomeError)
			return nil, err
		}
	}

	s.metrics.ObserveAttempt(metrics.OutcomeRecorded)

	full, err := s.repo.FindByID(ctx, created.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock-out transaction")
	}
	return NewTransactionDTO(full), nil
}

// ListTransactions returns the deduction history newest-first.
func (s *service) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]TransactionDTO, error) {
	rows, err := s.repo.List(ctx, input.ItemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock-out transactions")
	}
	return NewTransactionDTOs(rows), nil
}

// GetTransaction loads a single transaction by ID.
func (s *service) GetTransaction(ctx context.Context, id uuid.UUID) (*TransactionDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock-out transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock-out transaction")
	}
	return NewTransactionDTO(row), nil
}

func insufficientStockError(itemID uuid.UUID, requested, available int) *pkgerrors.Error {
	msg := fmt.Sprintf("Cannot deduct %d. Only %d available in stock.", requested, available)
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, msg).
		WithDetails(InsufficientStockDetails{
			ItemID:    itemID,
			Requested: requested,
			Available: available,
		})
}
