package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/csu-mims/inventory-backend/pkg/db/models"
	"github.com/csu-mims/inventory-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:users_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Item{}, &models.StockOutTransaction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestCreateAndFind(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        "admin@example.com",
		PasswordHash: "hash",
		FirstName:    "Admin",
		LastName:     "User",
		SystemRole:   enums.SystemRoleAdmin,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("id not assigned")
	}
	if !created.IsActive {
		t.Fatalf("is_active defaulted to false")
	}

	byEmail, err := repo.FindByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("find by email returned %s", byEmail.ID)
	}

	byID, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byID.SystemRole != enums.SystemRoleAdmin {
		t.Fatalf("system_role = %q", byID.SystemRole)
	}
}

func TestCreateDefaultsRoleToStaff(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	created, err := repo.Create(context.Background(), CreateUserDTO{
		Email:        "staff@example.com",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.SystemRole != enums.SystemRoleStaff {
		t.Fatalf("system_role = %q", created.SystemRole)
	}
}

func TestUpdateLastLogin(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{Email: "login@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	at := time.Now().UTC().Truncate(time.Second)
	if err := repo.UpdateLastLogin(ctx, created.ID, at); err != nil {
		t.Fatalf("update last login: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.LastLoginAt == nil || !reloaded.LastLoginAt.Equal(at) {
		t.Fatalf("last_login_at = %v, want %v", reloaded.LastLoginAt, at)
	}
}

func TestDeletePreservesStockOutHistory(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	user, err := repo.Create(ctx, CreateUserDTO{Email: "gone@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	item := &models.Item{Name: "Gloves", Unit: "boxes", Quantity: 10, AllocationType: enums.AllocationTypeNC2}
	if err := conn.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	txRow := &models.StockOutTransaction{
		ItemID:           item.ID,
		QuantityDeducted: 2,
		ReleasedBy:       &user.ID,
	}
	if err := conn.Create(txRow).Error; err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	var reloaded models.StockOutTransaction
	if err := conn.First(&reloaded, "id = ?", txRow.ID).Error; err != nil {
		t.Fatalf("transaction row lost: %v", err)
	}
	if reloaded.ReleasedBy != nil {
		t.Fatalf("released_by = %v, want nil", reloaded.ReleasedBy)
	}
}

func TestUserDTOOmitsCredentials(t *testing.T) {
	user := &models.User{
		ID:         uuid.New(),
		Email:      "dto@example.com",
		FirstName:  "D",
		LastName:   "TO",
		SystemRole: enums.SystemRoleStaff,
		IsActive:   true,
	}
	dto := FromModel(user)
	if dto.Email != user.Email || dto.SystemRole != "staff" {
		t.Fatalf("dto = %+v", dto)
	}
	if FromModel(nil) != nil {
		t.Fatalf("nil model should map to nil dto")
	}
}
