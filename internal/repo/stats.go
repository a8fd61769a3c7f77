// Package repo implements the data persistence layer for the Ad model,
// backed by GORM. This file provides a small aggregate query used for
// conditional responses (ETag generation) on the listing endpoint.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/services-ads/go-ads-backend/internal/domain"
)

// AdsStats returns aggregate metadata for the ads table: the total number of
// rows and the maximum UpdatedAt timestamp among them.
//
// When the table is empty, the returned count is 0 and maxUpdatedAt is nil.
//
// Return values:
//   - count:        total ads
//   - maxUpdatedAt: pointer to the greatest UpdatedAt, or nil if no rows
//   - err:          database error, if any
func AdsStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Ad{})

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
