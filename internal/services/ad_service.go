// Package services – AdService
//
// This file implements the AdService, which manages the lifecycle of
// classified ads. It coordinates repository operations for creating, listing,
// fetching, updating, and deleting ads, and enforces the single ownership
// rule on mutation: an ad may only be updated or deleted when the requester's
// presented author token string-equals the ad's stored authorId.
//
// The ownership check is advisory, not a security boundary: the token is
// self-issued by the client and any caller can fabricate one. The service
// preserves the observable behavior (403 on mismatch, mutation untouched)
// without pretending it authenticates anyone.
//
// Service-level errors (ErrAdNotFound, ErrNotOwner) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/services-ads/go-ads-backend/internal/domain"
	"github.com/services-ads/go-ads-backend/internal/repo"
)

// AdRepo defines the repository contract required by AdService.
// Implementations are responsible for persistence of ad records.
type AdRepo interface {
	// CreateAd inserts a new ad row, assigning ID and CreatedAt.
	CreateAd(ctx context.Context, db *gorm.DB, fields repo.AdFields) (*domain.Ad, error)

	// ListAds returns all ads ordered by creation time descending.
	ListAds(ctx context.Context, db *gorm.DB) ([]domain.Ad, error)

	// GetAd fetches an ad by ID.
	GetAd(ctx context.Context, db *gorm.DB, id string) (*domain.Ad, error)

	// UpdateAd applies only the supplied patch fields and returns the row.
	UpdateAd(ctx context.Context, db *gorm.DB, id string, patch repo.AdPatch) (*domain.Ad, error)

	// DeleteAd removes an ad permanently.
	DeleteAd(ctx context.Context, db *gorm.DB, id string) error
}

// AdService provides the application-level operations behind both the JSON
// API and the server-rendered pages. It is safe for concurrent use: all state
// lives in the database, requests share nothing in-process.
type AdService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the ad repository used by this service.
	Repo AdRepo
}

// NewAdService constructs an AdService bound to the given DB and repository.
func NewAdService(db *gorm.DB, r AdRepo) *AdService {
	return &AdService{DB: db, Repo: r}
}

// tracer instruments service operations; spans nest under the HTTP span
// installed by otelgin.
var tracer = otel.Tracer("services/ads")

// Create stores a new ad with the supplied fields. No field is validated for
// type or required-ness here: the anonymous-friendly leniency of the original
// surface is intentional, not a gap. Every operation is attempted exactly
// once; failures propagate to the caller without retry.
func (s *AdService) Create(ctx context.Context, fields repo.AdFields) (*domain.Ad, error) {
	ctx, span := tracer.Start(ctx, "AdService.Create", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	return s.Repo.CreateAd(ctx, s.DB, fields)
}

// List returns all ads, newest first.
func (s *AdService) List(ctx context.Context) ([]domain.Ad, error) {
	ctx, span := tracer.Start(ctx, "AdService.List")
	defer span.End()
	return s.Repo.ListAds(ctx, s.DB)
}

// Get fetches a single ad by ID, returning ErrAdNotFound when absent.
func (s *AdService) Get(ctx context.Context, id string) (*domain.Ad, error) {
	ctx, span := tracer.Start(ctx, "AdService.Get")
	defer span.End()

	ad, err := s.Repo.GetAd(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	return ad, nil
}

// Update applies a partial patch to the ad identified by id on behalf of
// authorToken. The existence check runs before the ownership comparison, so a
// missing ad yields ErrAdNotFound even for a caller that owns nothing. On
// ownership mismatch it returns ErrNotOwner and performs no mutation.
func (s *AdService) Update(ctx context.Context, id, authorToken string, patch repo.AdPatch) (*domain.Ad, error) {
	ctx, span := tracer.Start(ctx, "AdService.Update")
	defer span.End()

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.AuthorID != authorToken {
		return nil, ErrNotOwner
	}
	updated, err := s.Repo.UpdateAd(ctx, s.DB, id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete permanently removes the ad identified by id on behalf of
// authorToken, with the same 404-before-403 ordering as Update.
func (s *AdService) Delete(ctx context.Context, id, authorToken string) error {
	ctx, span := tracer.Start(ctx, "AdService.Delete")
	defer span.End()

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.AuthorID != authorToken {
		return ErrNotOwner
	}
	if err := s.Repo.DeleteAd(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAdNotFound
		}
		return err
	}
	return nil
}
