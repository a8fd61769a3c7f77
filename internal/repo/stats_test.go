package repo

import (
	"context"
	"testing"
	"time"

	"github.com/services-ads/go-ads-backend/internal/domain"
)

func TestAdsStats_EmptyTable(t *testing.T) {
	db := newAdRepoDB(t, &domain.Ad{})
	count, maxTS, err := AdsStats(context.Background(), db)
	if err != nil {
		t.Fatalf("AdsStats: %v", err)
	}
	if count != 0 || maxTS != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, maxTS)
	}
}

func TestAdsStats_CountAndLatest(t *testing.T) {
	db := newAdRepoDB(t, &domain.Ad{})

	t1 := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	for _, ad := range []domain.Ad{
		{ID: "a1", Title: "A", CreatedAt: t1, UpdatedAt: t1},
		{ID: "a2", Title: "B", CreatedAt: t2, UpdatedAt: t2},
	} {
		if err := db.Create(&ad).Error; err != nil {
			t.Fatalf("seed %s: %v", ad.ID, err)
		}
	}

	count, maxTS, err := AdsStats(context.Background(), db)
	if err != nil {
		t.Fatalf("AdsStats: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if maxTS == nil || !maxTS.Equal(t2) {
		t.Fatalf("maxUpdatedAt = %v, want %v", maxTS, t2)
	}
}

func TestAdsStats_Error_NoTable(t *testing.T) {
	db := newAdRepoDB(t /* no migrations */)
	if _, _, err := AdsStats(context.Background(), db); err == nil {
		t.Fatalf("expected error when table missing")
	}
}
