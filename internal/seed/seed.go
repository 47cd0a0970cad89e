package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/csu-mims/inventory-backend/internal/stockout"
	"github.com/csu-mims/inventory-backend/internal/users"
	"github.com/csu-mims/inventory-backend/pkg/config"
	"github.com/csu-mims/inventory-backend/pkg/db/models"
	"github.com/csu-mims/inventory-backend/pkg/enums"
	"github.com/csu-mims/inventory-backend/pkg/logger"
	"github.com/csu-mims/inventory-backend/pkg/security"
)

type itemSeed struct {
	Name           string
	Description    string
	Quantity       int
	Unit           string
	AllocationType enums.AllocationType
}

var itemSeeds = []itemSeed{
	{"Virgin Coconut Oil", "1 Gallon container for basic massage training", 15, "gallons", enums.AllocationTypeTraining},
	{"White Bath Towels", "Standard large towels for draping", 50, "pieces", enums.AllocationTypeTraining},
	{"Massage Beds", "Portable folding massage tables", 10, "units", enums.AllocationTypeTraining},
	{"Eucalyptus Essential Oil", "100ml bottles for aromatherapy", 20, "bottles", enums.AllocationTypeTraining},
	{"Premium Assessment Lotion", "Hypoallergenic lotion specifically for NC II exams", 30, "bottles", enums.AllocationTypeNC2},
	{"Assessment Linens Set", "Complete bed setup (fitted sheet, flat sheet, face cradle cover)", 15, "sets", enums.AllocationTypeNC2},
	{"70% Isopropyl Alcohol", "500ml bottles for sanitizing stations during assessment", 40, "bottles", enums.AllocationTypeNC2},
	{"Massage Timers", "Digital clocks for monitoring assessment duration", 12, "pieces", enums.AllocationTypeNC2},
}

var sampleRemarks = []string{
	"Issued to Batch 4 Trainees",
	"Used for mock assessment",
	"Requested by Instructor Jane",
	"Station setup for NC2 Examinees",
}

// Seeder loads the starter dataset: operator accounts, the supply catalog,
// and a handful of stock-out history rows.
type Seeder struct {
	db       *gorm.DB
	users    *users.Repository
	stockout stockout.Service
	logg     *logger.Logger
	pwCfg    config.PasswordConfig
}

// NewSeeder wires a seeder from its dependencies.
func NewSeeder(db *gorm.DB, userRepo *users.Repository, stockoutSvc stockout.Service, logg *logger.Logger, pwCfg config.PasswordConfig) (*Seeder, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if stockoutSvc == nil {
		return nil, fmt.Errorf("stockout service is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Seeder{
		db:       db,
		users:    userRepo,
		stockout: stockoutSvc,
		logg:     logg,
		pwCfg:    pwCfg,
	}, nil
}

// Run seeds users, items, and sample transactions. It is safe to run
// repeatedly: existing rows are reused and history is only generated once.
func (s *Seeder) Run(ctx context.Context) error {
	s.logg.Info(ctx, "starting database seeding")

	if _, err := s.ensureUser(ctx, "admin@csu-mims.local", "admin123", "Admin", "User", enums.SystemRoleAdmin); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	staff, err := s.ensureUser(ctx, "staff@csu-mims.local", "staff123", "Inventory", "Staff", enums.SystemRoleStaff)
	if err != nil {
		return fmt.Errorf("seed staff user: %w", err)
	}

	items, err := s.ensureItems(ctx)
	if err != nil {
		return fmt.Errorf("seed items: %w", err)
	}

	if err := s.maybeSeedTransactions(ctx, staff, items); err != nil {
		return fmt.Errorf("seed transactions: %w", err)
	}

	s.logg.Info(ctx, "database seeding completed")
	return nil
}

func (s *Seeder) ensureUser(ctx context.Context, email, password, first, last string, role enums.SystemRole) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := security.HashPassword(password, s.pwCfg)
	if err != nil {
		return nil, err
	}
	created, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		SystemRole:   role,
	})
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "email", email), "created seed user")
	return created, nil
}

func (s *Seeder) ensureItems(ctx context.Context) ([]models.Item, error) {
	var (
		out     []models.Item
		allErrs error
	)
	for _, seed := range itemSeeds {
		var item models.Item
		err := s.db.WithContext(ctx).
			Where("name = ? AND allocation_type = ?", seed.Name, seed.AllocationType).
			First(&item).Error
		if err == nil {
			out = append(out, item)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			allErrs = multierr.Append(allErrs, fmt.Errorf("lookup %q: %w", seed.Name, err))
			continue
		}

		desc := seed.Description
		item = models.Item{
			Name:           seed.Name,
			Description:    &desc,
			Quantity:       seed.Quantity,
			Unit:           seed.Unit,
			AllocationType: seed.AllocationType,
		}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			allErrs = multierr.Append(allErrs, fmt.Errorf("insert %q: %w", seed.Name, err))
			continue
		}
		s.logg.Info(s.logg.WithField(ctx, "item", item.Name), "added seed item")
		out = append(out, item)
	}
	return out, allErrs
}

// maybeSeedTransactions generates sample history only when none exists, so
// repeated seeding never deducts the same stock twice. Deductions go through
// the stock-out coordinator like live traffic does.
func (s *Seeder) maybeSeedTransactions(ctx context.Context, staff *models.User, items []models.Item) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.StockOutTransaction{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	candidates := make([]models.Item, 0, len(items))
	for _, item := range items {
		if item.Quantity > 5 {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	s.logg.Info(ctx, "generating sample stock-out history")
	for i := 0; i < 5; i++ {
		item := candidates[rand.Intn(len(candidates))]
		remarks := sampleRemarks[rand.Intn(len(sampleRemarks))]
		_, err := s.stockout.RecordStockOut(ctx, &staff.ID, stockout.RecordStockOutInput{
			ItemID:   item.ID,
			Quantity: 1 + rand.Intn(3),
			Remarks:  &remarks,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
