package identity

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

var tokenShapeRE = regexp.MustCompile(`^user_[0-9a-z]{9}_\d{13,}$`)

func TestNewToken_Shape(t *testing.T) {
	tok := NewToken()
	if !tokenShapeRE.MatchString(tok) {
		t.Fatalf("token %q does not match user_<base36>_<millis>", tok)
	}

	// The trailing segment must be a plausible wall-clock millis value.
	parts := strings.Split(tok, "_")
	ms, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		t.Fatalf("timestamp segment: %v", err)
	}
	now := time.Now().UnixMilli()
	if ms < now-time.Minute.Milliseconds() || ms > now+time.Minute.Milliseconds() {
		t.Fatalf("timestamp %d too far from now %d", ms, now)
	}
}

func TestCookieProvider_IssuesOnceAndPersists(t *testing.T) {
	p := NewCookieProvider()

	// First call: no cookie on the request → token generated + Set-Cookie.
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	tok := p.Token(w, r)
	if !tokenShapeRE.MatchString(tok) {
		t.Fatalf("generated token %q has wrong shape", tok)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != tok {
		t.Fatalf("expected one %s cookie carrying the token, got %+v", CookieName, cookies)
	}
	if cookies[0].MaxAge <= 0 {
		t.Fatalf("identity cookie must be persistent, MaxAge=%d", cookies[0].MaxAge)
	}

	// Second call within the same request scope returns the same value
	// without issuing another cookie.
	w2 := httptest.NewRecorder()
	if again := p.Token(w2, r); again != tok {
		t.Fatalf("second call returned %q, want %q", again, tok)
	}
	if len(w2.Result().Cookies()) != 0 {
		t.Fatalf("token must not be re-issued when already present")
	}
}

func TestCookieProvider_IdempotentAcrossRequests(t *testing.T) {
	p := NewCookieProvider()

	w := httptest.NewRecorder()
	first := p.Token(w, httptest.NewRequest(http.MethodGet, "/", nil))

	// Simulate the browser sending the stored cookie back.
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(&http.Cookie{Name: CookieName, Value: first})
	second := p.Token(httptest.NewRecorder(), r2)
	if second != first {
		t.Fatalf("token rotated across requests: %q vs %q", first, second)
	}
}

func TestCookieProvider_InjectableSource(t *testing.T) {
	p := &CookieProvider{Name: CookieName, Source: func() string { return "user_fixed0000_1" }}

	w := httptest.NewRecorder()
	tok := p.Token(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if tok != "user_fixed0000_1" {
		t.Fatalf("injected source ignored, got %q", tok)
	}
}

func TestStatic_Provider(t *testing.T) {
	var p Provider = Static("user_aaaaaaaaa_1")
	if got := p.Token(nil, nil); got != "user_aaaaaaaaa_1" {
		t.Fatalf("Static token = %q", got)
	}
}
