package repo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/services-ads/go-ads-backend/internal/domain"
)

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	if _, err := OpenSQLite(filepath.Join(t.TempDir(), "nope", "app.db")); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}

func TestOpenSQLite_CreatesAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	// The migrated schema must be usable end to end.
	ad, err := CreateAd(context.Background(), db, AdFields{Title: "smoke"})
	if err != nil {
		t.Fatalf("CreateAd after migrate: %v", err)
	}
	got, err := GetAd(context.Background(), db, ad.ID)
	if err != nil || got.Title != "smoke" {
		t.Fatalf("round-trip after migrate: got=%+v err=%v", got, err)
	}

	var ads []domain.Ad
	if err := db.Find(&ads).Error; err != nil || len(ads) != 1 {
		t.Fatalf("expected one row, got %d err=%v", len(ads), err)
	}
}

func TestOpenSQLite_RelativePathInCwd(t *testing.T) {
	// "." parent is not stat-checked; opening a plain filename must work.
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "plain.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
