package server

import (
	"testing"

	"portfolio/internal/config"
	"portfolio/internal/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		JWTSecret: "test-secret-0123456789abcdef0123",
		Env:       "test",
	}
	s, err := NewServerWithDeps(cfg, db, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s, db
}
