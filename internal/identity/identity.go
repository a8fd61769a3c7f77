// Package identity implements the client-local author token used to
// attribute and "authorize" ad mutations.
//
// The token has the shape user_<random base36>_<unix millis> and is issued
// once per browser origin, then persisted indefinitely in a cookie. The
// server never verifies it beyond string equality against an ad's stored
// authorId.
//
// Known weakness, preserved on purpose: the token is self-issued and
// attacker-controllable: any client can fabricate any value and thereby
// "own" any ad whose token it can guess or copy. It is a display-level
// ownership hint, not a security boundary; replacing it with real credentials
// is out of scope for this application.
package identity

import (
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CookieName is the origin-scoped key holding the identity token, the same
// key the original browser client used in its local storage.
const CookieName = "authorId"

// cookieMaxAge approximates "persisted indefinitely, never rotated".
const cookieMaxAge = 10 * 365 * 24 * time.Hour

// Provider yields the persistent identity token for the current client,
// issuing one on first use. Implementations must be idempotent per client
// scope: two calls without clearing storage return the same value.
type Provider interface {
	Token(w http.ResponseWriter, r *http.Request) string
}

// Source produces a fresh token value. It exists as a seam so tests can
// supply deterministic tokens instead of the random default.
type Source func() string

// NewToken generates a token of the shape user_<9 base36 chars>_<millis>.
func NewToken() string {
	return "user_" + randBase36(9) + "_" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// randBase36 returns n random characters from the base36 alphabet.
func randBase36(n int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}

// CookieProvider persists the token in a long-lived, origin-scoped cookie.
// The zero value is not usable; construct it with NewCookieProvider.
type CookieProvider struct {
	// Name of the cookie; defaults to CookieName.
	Name string
	// Source generates new tokens; defaults to NewToken.
	Source Source
	// Secure marks the issued cookie as HTTPS-only.
	Secure bool
}

// NewCookieProvider constructs a CookieProvider with the default cookie name
// and random token source.
func NewCookieProvider() *CookieProvider {
	return &CookieProvider{Name: CookieName, Source: NewToken}
}

// Token returns the client's persisted identity token. When the request
// carries no token cookie, a fresh token is generated, set as a persistent
// cookie on the response, and returned. There are no error conditions: the
// only side effect is the Set-Cookie header on first use.
func (p *CookieProvider) Token(w http.ResponseWriter, r *http.Request) string {
	name := p.Name
	if name == "" {
		name = CookieName
	}
	if c, err := r.Cookie(name); err == nil && c.Value != "" {
		return c.Value
	}

	src := p.Source
	if src == nil {
		src = NewToken
	}
	tok := src()
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	// Make the token visible to later reads within the same request.
	r.AddCookie(&http.Cookie{Name: name, Value: tok})
	return tok
}

// Static is a Provider that always returns the same token. Tests use it to
// exercise ownership paths deterministically.
type Static string

// Token implements Provider.
func (s Static) Token(http.ResponseWriter, *http.Request) string { return string(s) }
