// Projection of ads into display cards.
//
// Projection is deliberately pure: it takes the ad list, the viewer's
// identity token, and a locale, and returns plain view-model values with no
// template or I/O dependencies, so the rendering rules (escaping, fallbacks,
// ownership) are unit-testable without a browser.
package web

import (
	"html/template"

	"github.com/services-ads/go-ads-backend/internal/domain"
)

// placeholderImage is the inline SVG shown when an ad has no image, matching
// the original client's placeholder.
const placeholderImage = template.URL(`data:image/svg+xml;utf8,<svg xmlns="http://www.w3.org/2000/svg" width="400" height="200"><rect width="100%" height="100%" fill="%23EEE"/><text x="50%" y="50%" dominant-baseline="middle" text-anchor="middle" fill="%23999">No image</text></svg>`)

// AdCard is the display model for one listing card.
//
// Title, Description, Contacts, Price, and CreatedAt are plain strings; the
// template layer HTML-escapes them on insertion, which is how user-supplied
// markup like <script> ends up inert on the page. ImageSrc is template.URL
// on purpose: image sources (external URLs and inline data: payloads) are
// consumed as src attributes, not markup, and must pass through unescaped.
type AdCard struct {
	ID          string
	Title       string
	Description string
	Price       string // formatted; empty means "not specified", hidden by the template
	Contacts    string // localized fallback applied when the author left none
	CreatedAt   string // localized timestamp
	ImageSrc    template.URL
	ImageAlt    string
	IsOwner     bool
}

// ProjectAd builds the display card for a single ad as seen by viewerToken.
func ProjectAd(ad domain.Ad, viewerToken string, loc *Locale) AdCard {
	card := AdCard{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Contacts:    ad.Contacts,
		CreatedAt:   loc.FormatTime(ad.CreatedAt),
		ImageSrc:    placeholderImage,
		ImageAlt:    ad.Title,
		IsOwner:     viewerToken != "" && viewerToken == ad.AuthorID,
	}
	if ad.Price != nil {
		card.Price = loc.FormatPrice(*ad.Price)
	}
	if ad.Contacts == "" {
		card.Contacts = loc.T("No contacts provided")
	}
	if ad.ImageURL != "" {
		card.ImageSrc = template.URL(ad.ImageURL)
	}
	if ad.Title == "" {
		card.ImageAlt = loc.T("Photo")
	}
	return card
}

// ProjectAds maps the ad list, preserving the order it was given: the
// repository already sorted by creation time descending and the projection
// must not reorder.
func ProjectAds(ads []domain.Ad, viewerToken string, loc *Locale) []AdCard {
	cards := make([]AdCard, 0, len(ads))
	for _, ad := range ads {
		cards = append(cards, ProjectAd(ad, viewerToken, loc))
	}
	return cards
}
