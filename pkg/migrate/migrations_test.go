package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/transportly/transportly-backend/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

func TestRentsMigrationEnforcesSingleActiveRent(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_rents.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no rents migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS rents",
		"REFERENCES transports(id) ON DELETE CASCADE",
		"REFERENCES users(id) ON DELETE CASCADE",
		"WHERE stopped_at IS NULL",
		"DROP TABLE IF EXISTS rents",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestTransportsMigrationConstrainsEnums(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_transports.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no transports migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CHECK (status IN ('FREE', 'IN_RENT'))",
		"CHECK (type IN ('CAR', 'BUS', 'TRUCK', 'BIKE', 'BICYCLE'))",
		"CHECK (licence_type IN ('A', 'B', 'C', 'D'))",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
