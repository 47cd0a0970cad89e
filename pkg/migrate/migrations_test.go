package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/csu-mims/inventory-backend/pkg/migrate"
)

func TestValidateMigrationsDir(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestItemsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_items.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS items",
		"CHECK (quantity >= 0)",
		"CHECK (allocation_type IN ('TRAINING', 'NC2'))",
		"DROP TABLE IF EXISTS items",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestStockOutMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_stock_out_transactions.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS stock_out_transactions",
		"CHECK (quantity_deducted >= 1)",
		"FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE CASCADE",
		"FOREIGN KEY (released_by) REFERENCES users(id) ON DELETE SET NULL",
		"DROP TABLE IF EXISTS stock_out_transactions",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
