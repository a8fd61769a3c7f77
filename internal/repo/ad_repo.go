// Package repo implements the data persistence layer for the Ad model,
// backed by GORM. This file provides the repository functions for ads.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. The ownership rule on mutation lives in
// the service layer, not here.
//
// Error semantics:
//   - When an ad is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/services-ads/go-ads-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// AdFields carries the author-supplied values for a new ad. The repository
// assigns ID and CreatedAt itself; callers never control either.
type AdFields struct {
	Title       string
	Description string
	Price       *float64
	ImageURL    string
	Contacts    string
	AuthorID    string
}

// AdPatch is a partial update of an ad. A nil pointer means "leave the stored
// value untouched"; a non-nil pointer overwrites the column. In particular
// ImageURL is only replaced when the caller actually supplied a new image.
type AdPatch struct {
	Title       *string
	Description *string
	Price       *float64
	ImageURL    *string
	Contacts    *string
}

// changes converts the patch into a GORM update map containing only the
// supplied columns. An empty map means there is nothing to write.
func (p AdPatch) changes() map[string]any {
	m := map[string]any{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.Price != nil {
		m["price"] = *p.Price
	}
	if p.ImageURL != nil {
		m["image_url"] = *p.ImageURL
	}
	if p.Contacts != nil {
		m["contacts"] = *p.Contacts
	}
	return m
}

// CreateAd inserts a new ad row with a generated UUID and a UTC CreatedAt.
// None of the author-supplied fields are validated here; leniency toward
// empty values is intentional.
//
// On success it returns the persisted Ad. On failure it returns a DB error.
func CreateAd(ctx context.Context, db *gorm.DB, fields AdFields) (*domain.Ad, error) {
	ad := &domain.Ad{
		ID:          uuid.NewString(),
		Title:       fields.Title,
		Description: fields.Description,
		Price:       fields.Price,
		ImageURL:    fields.ImageURL,
		Contacts:    fields.Contacts,
		AuthorID:    fields.AuthorID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(ad).Error; err != nil {
		return nil, err
	}
	return ad, nil
}

// ListAds returns every ad ordered by creation time descending (most recent
// first). It returns an empty slice when the table is empty. On DB error, it
// returns the error.
func ListAds(ctx context.Context, db *gorm.DB) ([]domain.Ad, error) {
	var out []domain.Ad
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetAd fetches a single ad by ID. If the record does not exist, it returns
// ErrNotFound. On other DB errors, the raw error is returned.
func GetAd(ctx context.Context, db *gorm.DB, id string) (*domain.Ad, error) {
	var ad domain.Ad
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&ad).Error
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

// UpdateAd applies the supplied patch fields to the ad identified by id and
// returns the reloaded row. Columns the patch omits keep their stored values.
// If the ad does not exist, it returns ErrNotFound.
func UpdateAd(ctx context.Context, db *gorm.DB, id string, patch AdPatch) (*domain.Ad, error) {
	changes := patch.changes()
	if len(changes) > 0 {
		res := db.WithContext(ctx).
			Model(&domain.Ad{}).
			Where("id = ?", id).
			Updates(changes)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return GetAd(ctx, db, id)
}

// DeleteAd removes the ad identified by id permanently. There is no
// soft delete and no recovery path. If no row is affected, it returns
// ErrNotFound.
func DeleteAd(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Ad{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
