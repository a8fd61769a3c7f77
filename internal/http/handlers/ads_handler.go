// Ads HTTP handlers.
//
// This file exposes the REST endpoints for ad resources:
//   - GET    /ads        (list, newest first, weak ETag support)
//   - POST   /ads        (create)
//   - GET    /ads/{id}   (fetch one, used by the edit flow to prefill)
//   - PUT    /ads/{id}   (partial update, requires author-id header)
//   - DELETE /ads/{id}   (permanent delete, requires author-id header)
//
// Handlers are transport-thin: they decode input, call the application
// service, and translate results into HTTP responses. All repository failures
// surface as 500 with the failure's message; nothing is retried.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/services-ads/go-ads-backend/internal/domain"
	"github.com/services-ads/go-ads-backend/internal/repo"
	"github.com/services-ads/go-ads-backend/internal/services"
)

// HeaderAuthorID carries the client's self-issued identity token on mutating
// requests. It is compared by exact string equality against the ad's stored
// authorId; it is not an authentication credential.
const HeaderAuthorID = "author-id"

//
// Service contract (context-aware)
//

// AdService defines the ad lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AdService interface {
	// Create stores a new ad from client-supplied fields.
	Create(ctx context.Context, fields repo.AdFields) (*domain.Ad, error)
	// List returns all ads ordered by creation time descending.
	List(ctx context.Context) ([]domain.Ad, error)
	// Get fetches a single ad by ID.
	Get(ctx context.Context, id string) (*domain.Ad, error)
	// Update applies a partial patch after the ownership check.
	Update(ctx context.Context, id, authorToken string, patch repo.AdPatch) (*domain.Ad, error)
	// Delete removes an ad permanently after the ownership check.
	Delete(ctx context.Context, id, authorToken string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for ads. It depends on the abstract
// service interface to keep transport concerns separate from business logic.
type Handlers struct {
	adSvc AdService
}

// New constructs a Handlers instance bound to the given service.
func New(adSvc AdService) *Handlers {
	return &Handlers{adSvc: adSvc}
}

//
// DTOs
//

// CreateAdRequest is the JSON payload for publishing an ad. Every field is
// optional: the API deliberately accepts sparse, anonymous-friendly payloads.
type CreateAdRequest struct {
	Title       string   `json:"title" example:"Bike"`
	Description string   `json:"description" example:"Barely used city bike"`
	Price       *float64 `json:"price" example:"100"`
	ImageURL    *string  `json:"imageUrl"`
	Contacts    string   `json:"contacts" example:"+7 900 000-00-00"`
	AuthorID    string   `json:"authorId" example:"user_k3j29dla1_1735689600000"`
}

// UpdateAdRequest is the JSON payload for a partial update. A field that is
// absent (or null) keeps its stored value; in particular imageUrl is only
// overwritten when the client actually supplies a replacement.
type UpdateAdRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Contacts    *string  `json:"contacts"`
}

// patch converts the request body into a repository patch.
func (r UpdateAdRequest) patch() repo.AdPatch {
	return repo.AdPatch{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Contacts:    r.Contacts,
	}
}

//
// Helpers
//

// failFromService maps service errors onto the HTTP taxonomy: missing ad →
// 404, ownership mismatch → 403, anything else → 500 with the failure's
// message passed through verbatim.
func failFromService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAdNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ad not found")
	case errors.Is(err, services.ErrNotOwner):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "you can only modify your own ads")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

//
// Handlers
//

// ListAds godoc
// @ID          listAds
// @Summary     List ads
// @Description Returns every ad ordered by creation time descending. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Ads
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}  domain.Ad
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /ads [get]
func (h *Handlers) ListAds(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.adSvc.(*services.AdService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.AdsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"ads:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	ads, err := h.adSvc.List(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if ads == nil {
		ads = []domain.Ad{}
	}
	ok(c, http.StatusOK, ads)
}

// CreateAd godoc
// @ID          createAd
// @Summary     Publish an ad
// @Description Stores a new ad. No field is validated for type or required-ness: the anonymous-friendly leniency is intentional.
// @Tags        Ads
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateAdRequest  true  "Ad payload"
//
// @Success     201  {object} domain.Ad
// @Failure     400  {object} handlers.ErrorResponse "Malformed JSON"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /ads [post]
func (h *Handlers) CreateAd(c *gin.Context) {
	var req CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	fields := repo.AdFields{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Contacts:    req.Contacts,
		AuthorID:    req.AuthorID,
	}
	if req.ImageURL != nil {
		fields.ImageURL = *req.ImageURL
	}

	ad, err := h.adSvc.Create(c.Request.Context(), fields)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, ad)
}

// GetAd godoc
// @ID          getAd
// @Summary     Fetch a single ad
// @Description Returns one ad by ID. The edit flow uses this to prefill its form.
// @Tags        Ads
// @Produce     json
//
// @Param       id  path  string  true  "Ad ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Ad
// @Failure     404  {object} handlers.ErrorResponse "Ad not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /ads/{id} [get]
func (h *Handlers) GetAd(c *gin.Context) {
	ad, err := h.adSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, ad)
}

// UpdateAd godoc
// @ID          updateAd
// @Summary     Update an ad
// @Description Applies the supplied fields to an ad owned by the presented author token. Omitted fields keep their stored values; imageUrl is only replaced when supplied. Existence is checked before ownership.
// @Tags        Ads
// @Accept      json
// @Produce     json
//
// @Param       author-id  header  string  true  "Client identity token"
// @Param       id         path    string  true  "Ad ID (UUID)" format(uuid)
// @Param       body       body    handlers.UpdateAdRequest  true  "Partial ad payload"
//
// @Success     200  {object} domain.Ad
// @Failure     400  {object} handlers.ErrorResponse "Malformed JSON"
// @Failure     403  {object} handlers.ErrorResponse "Ownership mismatch"
// @Failure     404  {object} handlers.ErrorResponse "Ad not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /ads/{id} [put]
func (h *Handlers) UpdateAd(c *gin.Context) {
	var req UpdateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	ad, err := h.adSvc.Update(c.Request.Context(), c.Param("id"), c.GetHeader(HeaderAuthorID), req.patch())
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, ad)
}

// DeleteAd godoc
// @ID          deleteAd
// @Summary     Delete an ad
// @Description Permanently removes an ad owned by the presented author token. There is no soft delete or recovery.
// @Tags        Ads
// @Produce     json
//
// @Param       author-id  header  string  true  "Client identity token"
// @Param       id         path    string  true  "Ad ID (UUID)" format(uuid)
//
// @Success     200  {object} handlers.MessageResponse
// @Failure     403  {object} handlers.ErrorResponse "Ownership mismatch"
// @Failure     404  {object} handlers.ErrorResponse "Ad not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /ads/{id} [delete]
func (h *Handlers) DeleteAd(c *gin.Context) {
	if err := h.adSvc.Delete(c.Request.Context(), c.Param("id"), c.GetHeader(HeaderAuthorID)); err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "ad deleted"})
}
