package items

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/csu-mims/inventory-backend/pkg/db"
	"github.com/csu-mims/inventory-backend/pkg/db/models"
	"github.com/csu-mims/inventory-backend/pkg/enums"
	pkgerrors "github.com/csu-mims/inventory-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:items_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Item{}, &models.StockOutTransaction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn), db.FromConn(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, conn
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCreateItemAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, CreateItemInput{
		Name:           "Eucalyptus Essential Oil",
		Description:    strPtr("For massage therapy training"),
		Quantity:       20,
		Unit:           "bottles",
		AllocationType: enums.AllocationTypeTraining,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if created.Quantity != 20 {
		t.Fatalf("quantity = %d, want 20", created.Quantity)
	}
	if created.AllocationTypeDisplay != "Training Center" {
		t.Fatalf("display = %q", created.AllocationTypeDisplay)
	}

	got, err := svc.GetItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.Name != "Eucalyptus Essential Oil" {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateItemInput
	}{
		{"missing name", CreateItemInput{Unit: "pcs", AllocationType: enums.AllocationTypeTraining}},
		{"missing unit", CreateItemInput{Name: "Gloves", AllocationType: enums.AllocationTypeTraining}},
		{"bad allocation", CreateItemInput{Name: "Gloves", Unit: "pcs", AllocationType: enums.AllocationType("OTHER")}},
		{"negative quantity", CreateItemInput{Name: "Gloves", Unit: "pcs", AllocationType: enums.AllocationTypeNC2, Quantity: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateItem(ctx, tc.input)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestGetItemNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetItem(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListItemsFilterAndOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, in := range []CreateItemInput{
		{Name: "Massage Oil", Unit: "bottles", Quantity: 10, AllocationType: enums.AllocationTypeTraining},
		{Name: "Assessment Forms", Unit: "packs", Quantity: 4, AllocationType: enums.AllocationTypeNC2},
		{Name: "Towels", Unit: "pcs", Quantity: 30, AllocationType: enums.AllocationTypeTraining},
	} {
		if _, err := svc.CreateItem(ctx, in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}

	all, err := svc.ListItems(ctx, ListItemsInput{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}

	alloc := enums.AllocationTypeTraining
	training, err := svc.ListItems(ctx, ListItemsInput{AllocationType: &alloc})
	if err != nil {
		t.Fatalf("list training: %v", err)
	}
	if len(training) != 2 {
		t.Fatalf("len(training) = %d, want 2", len(training))
	}
	for _, item := range training {
		if item.AllocationType != enums.AllocationTypeTraining.String() {
			t.Fatalf("unexpected allocation %q", item.AllocationType)
		}
	}

	bad := enums.AllocationType("OTHER")
	if _, err := svc.ListItems(ctx, ListItemsInput{AllocationType: &bad}); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateItemPartial(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, CreateItemInput{
		Name:           "Cotton Balls",
		Unit:           "packs",
		Quantity:       12,
		AllocationType: enums.AllocationTypeNC2,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	updated, err := svc.UpdateItem(ctx, created.ID, UpdateItemInput{
		Quantity: intPtr(50),
		Unit:     strPtr("boxes"),
	})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Quantity != 50 || updated.Unit != "boxes" {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.Name != "Cotton Balls" {
		t.Fatalf("name changed unexpectedly: %q", updated.Name)
	}

	if _, err := svc.UpdateItem(ctx, created.ID, UpdateItemInput{Quantity: intPtr(-5)}); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := svc.UpdateItem(ctx, uuid.New(), UpdateItemInput{Unit: strPtr("pcs")}); pkgerrors.As(err) == nil {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteItemCascadesTransactions(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, CreateItemInput{
		Name:           "Alcohol",
		Unit:           "bottles",
		Quantity:       6,
		AllocationType: enums.AllocationTypeTraining,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	txRow := &models.StockOutTransaction{
		ItemID:           created.ID,
		QuantityDeducted: 2,
	}
	if err := conn.Create(txRow).Error; err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	if err := svc.DeleteItem(ctx, created.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	var count int64
	if err := conn.Model(&models.StockOutTransaction{}).Where("item_id = ?", created.ID).Count(&count).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if count != 0 {
		t.Fatalf("transactions remaining = %d, want 0", count)
	}

	if err := svc.DeleteItem(ctx, created.ID); pkgerrors.As(err) == nil {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDecrementQuantityGuard(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	item := &models.Item{Name: "Thermometer", Unit: "pcs", Quantity: 5, AllocationType: enums.AllocationTypeNC2}
	if err := conn.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}

	ok, err := repo.DecrementQuantity(ctx, item.ID, 5)
	if err != nil || !ok {
		t.Fatalf("decrement to zero: ok=%v err=%v", ok, err)
	}

	ok, err = repo.DecrementQuantity(ctx, item.ID, 1)
	if err != nil {
		t.Fatalf("decrement below zero: %v", err)
	}
	if ok {
		t.Fatalf("guard allowed deduction below zero")
	}

	var reloaded models.Item
	if err := conn.First(&reloaded, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if reloaded.Quantity != 0 {
		t.Fatalf("quantity = %d, want 0", reloaded.Quantity)
	}
}
