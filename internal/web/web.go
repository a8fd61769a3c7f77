// Page handlers for the server-rendered frontend.
//
// These handlers are the form controllers of the application: they collect
// user input, encode an optionally uploaded image into an inline data URI,
// attach the viewer's identity token, and call the same ad service the JSON
// API uses. Outcomes surface as localized flash messages after a redirect,
// or as inline errors on the re-rendered form; there is no blank error page.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/services-ads/go-ads-backend/internal/domain"
	"github.com/services-ads/go-ads-backend/internal/identity"
	"github.com/services-ads/go-ads-backend/internal/repo"
	"github.com/services-ads/go-ads-backend/internal/services"
	"github.com/services-ads/go-ads-backend/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// flashCookie carries a one-shot status message across the post-submit
// redirect; it is read and cleared on the next page render.
const flashCookie = "flash"

// AdBackend is the slice of the ad service the pages consume.
type AdBackend interface {
	Create(ctx context.Context, fields repo.AdFields) (*domain.Ad, error)
	List(ctx context.Context) ([]domain.Ad, error)
	Get(ctx context.Context, id string) (*domain.Ad, error)
	Update(ctx context.Context, id, authorToken string, patch repo.AdPatch) (*domain.Ad, error)
	Delete(ctx context.Context, id, authorToken string) error
}

// PageHandlers groups the frontend endpoints. Identity is injected so tests
// can pin a deterministic viewer token.
type PageHandlers struct {
	Ads      AdBackend
	Identity identity.Provider

	// Default overrides the negotiation fallback for clients that send no
	// Accept-Language header. Nil keeps the catalog default.
	Default *Locale
}

// NewPages constructs the frontend handlers.
func NewPages(ads AdBackend, id identity.Provider) *PageHandlers {
	return &PageHandlers{Ads: ads, Identity: id}
}

// Templates parses the embedded page templates for use with
// gin.Engine.SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// RegisterPages mounts the frontend routes and static assets on the engine.
func RegisterPages(r *gin.Engine, h *PageHandlers) {
	r.SetHTMLTemplate(Templates())
	r.StaticFS("/static", http.FS(StaticAssets()))

	r.GET("/", h.Listing)
	r.GET("/ads/new", h.NewForm)
	r.POST("/ads/new", h.CreateSubmit)
	r.GET("/ads/:id/edit", h.EditForm)
	r.POST("/ads/:id/edit", h.EditSubmit)
	r.POST("/ads/:id/delete", h.DeleteSubmit)
}

// StaticAssets exposes the embedded stylesheet and client script rooted at
// the static directory.
func StaticAssets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

//
// View data
//

type listingPage struct {
	Loc   *Locale
	Cards []AdCard
	Flash string
	Error string
}

type formPage struct {
	Loc   *Locale
	Error string
	// ID is set for the edit flow only.
	ID          string
	Title       string
	Description string
	Price       string
	Contacts    string
}

//
// Helpers
//

func (h *PageHandlers) locale(c *gin.Context) *Locale {
	al := c.GetHeader("Accept-Language")
	if al == "" && h.Default != nil {
		return h.Default
	}
	return Negotiate(al)
}

func setFlash(c *gin.Context, msg string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name: flashCookie, Value: url.QueryEscape(msg), Path: "/", MaxAge: 60,
	})
}

// takeFlash returns the pending flash message, if any, and clears it.
func takeFlash(c *gin.Context) string {
	ck, err := c.Request.Cookie(flashCookie)
	if err != nil || ck.Value == "" {
		return ""
	}
	http.SetCookie(c.Writer, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	msg, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return msg
}

// serviceMessage localizes a service error for display.
func serviceMessage(loc *Locale, err error) string {
	switch {
	case errors.Is(err, services.ErrAdNotFound):
		return loc.T("Ad not found")
	case errors.Is(err, services.ErrNotOwner):
		return loc.T("You can only modify your own ads")
	default:
		return loc.T("Error: %s", err.Error())
	}
}

//
// Handlers
//

// Listing renders the ad list, newest first. A load failure renders the same
// page with an inline error block instead of cards; the page itself never
// fails.
func (h *PageHandlers) Listing(c *gin.Context) {
	loc := h.locale(c)
	viewer := h.Identity.Token(c.Writer, c.Request)
	page := listingPage{Loc: loc, Flash: takeFlash(c)}

	ads, err := h.Ads.List(c.Request.Context())
	if err != nil {
		page.Error = loc.T("Failed to load ads: %s", err.Error())
		c.HTML(http.StatusOK, "index.html", page)
		return
	}
	page.Cards = ProjectAds(ads, viewer, loc)
	c.HTML(http.StatusOK, "index.html", page)
}

// NewForm renders an empty create form.
func (h *PageHandlers) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "new.html", formPage{Loc: h.locale(c)})
}

// CreateSubmit publishes a new ad from the submitted form. On success the
// client is redirected to the listing with a confirmation flash; on failure
// the form re-renders with the submitted values and an inline error.
func (h *PageHandlers) CreateSubmit(c *gin.Context) {
	loc := h.locale(c)
	viewer := h.Identity.Token(c.Writer, c.Request)

	in, err := collectAdForm(c.Request)
	if err != nil {
		h.rerenderForm(c, "new.html", in, loc.T("Image upload failed: %s", err.Error()), "")
		return
	}
	price, err := utils.ParsePrice(in.PriceRaw)
	if err != nil {
		h.rerenderForm(c, "new.html", in, loc.T("Invalid price value"), "")
		return
	}

	_, err = h.Ads.Create(c.Request.Context(), repo.AdFields{
		Title:       in.Title,
		Description: in.Description,
		Price:       price,
		ImageURL:    in.ImageDataURL,
		Contacts:    in.Contacts,
		AuthorID:    viewer,
	})
	if err != nil {
		h.rerenderForm(c, "new.html", in, serviceMessage(loc, err), "")
		return
	}

	setFlash(c, loc.T("Ad published!"))
	c.Redirect(http.StatusSeeOther, "/")
}

// EditForm prefills the edit form from the stored ad. When the ad cannot be
// loaded, the client is sent back to the listing with the failure flashed,
// matching the original alert-and-redirect behavior.
func (h *PageHandlers) EditForm(c *gin.Context) {
	loc := h.locale(c)

	ad, err := h.Ads.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		setFlash(c, loc.T("Failed to load ad: %s", serviceMessage(loc, err)))
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	page := formPage{
		Loc:         loc,
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Contacts:    ad.Contacts,
	}
	if ad.Price != nil {
		page.Price = trimFloat(*ad.Price)
	}
	c.HTML(http.StatusOK, "edit.html", page)
}

// EditSubmit applies the edit form as a partial update. The image is encoded
// and included only when a new file was chosen; otherwise the stored image
// stays untouched.
func (h *PageHandlers) EditSubmit(c *gin.Context) {
	loc := h.locale(c)
	viewer := h.Identity.Token(c.Writer, c.Request)
	id := c.Param("id")

	in, err := collectAdForm(c.Request)
	if err != nil {
		h.rerenderForm(c, "edit.html", in, loc.T("Image upload failed: %s", err.Error()), id)
		return
	}
	price, err := utils.ParsePrice(in.PriceRaw)
	if err != nil {
		h.rerenderForm(c, "edit.html", in, loc.T("Invalid price value"), id)
		return
	}

	patch := repo.AdPatch{
		Title:       &in.Title,
		Description: &in.Description,
		Contacts:    &in.Contacts,
		Price:       price,
	}
	if in.HasImage {
		patch.ImageURL = &in.ImageDataURL
	}

	if _, err := h.Ads.Update(c.Request.Context(), id, viewer, patch); err != nil {
		if errors.Is(err, services.ErrAdNotFound) {
			setFlash(c, serviceMessage(loc, err))
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		h.rerenderForm(c, "edit.html", in, serviceMessage(loc, err), id)
		return
	}

	setFlash(c, loc.T("Ad updated!"))
	c.Redirect(http.StatusSeeOther, "/")
}

// DeleteSubmit removes an ad and returns to the listing; failures are
// reported via flash rather than an error page.
func (h *PageHandlers) DeleteSubmit(c *gin.Context) {
	loc := h.locale(c)
	viewer := h.Identity.Token(c.Writer, c.Request)

	if err := h.Ads.Delete(c.Request.Context(), c.Param("id"), viewer); err != nil {
		setFlash(c, serviceMessage(loc, err))
	} else {
		setFlash(c, loc.T("Ad deleted"))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// trimFloat renders a price for a form value without trailing zeros.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// rerenderForm redraws a form with the user's submitted values preserved and
// an inline error message.
func (h *PageHandlers) rerenderForm(c *gin.Context, tmpl string, in adFormInput, errMsg, id string) {
	c.HTML(http.StatusOK, tmpl, formPage{
		Loc:         h.locale(c),
		Error:       errMsg,
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.PriceRaw,
		Contacts:    in.Contacts,
	})
}
