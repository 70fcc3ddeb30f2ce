package database

import (
	"strings"
	"testing"
)

func TestMigrations_Ordered(t *testing.T) {
	names, err := Migrations()
	if err != nil {
		t.Fatalf("Migrations: %v", err)
	}
	want := []string{"migrations/001_menu.sql", "migrations/002_restaurant.sql"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestMigrations_Idempotent(t *testing.T) {
	names, err := Migrations()
	if err != nil {
		t.Fatalf("Migrations: %v", err)
	}
	for _, name := range names {
		b, err := migrationsFS.ReadFile(name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		for _, stmt := range strings.Split(string(b), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if !strings.Contains(stmt, "IF NOT EXISTS") {
				t.Errorf("%s: statement is not idempotent: %.60s", name, stmt)
			}
		}
	}
}
