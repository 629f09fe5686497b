package database

import (
	"strings"
	"testing"
)

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := Migrations().FindMigrations()
	if err != nil {
		t.Fatalf("FindMigrations failed: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("no migrations embedded")
	}

	first := migrations[0]
	if first.Id != "0001_create_dashboard_records.sql" {
		t.Fatalf("first migration = %s", first.Id)
	}
	if len(first.Up) == 0 || !strings.Contains(first.Up[0], "CREATE TABLE IF NOT EXISTS dashboard_records") {
		t.Fatalf("unexpected up statements %v", first.Up)
	}
	if len(first.Down) != 1 {
		t.Fatalf("expected one down statement, got %d", len(first.Down))
	}
}
