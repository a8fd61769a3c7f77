package web

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
)

// pngMagic is enough of a PNG header for content-type sniffing.
var pngMagic = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// buildForm assembles a multipart ad form. fileData == nil omits the file
// part entirely; an empty non-nil slice submits an empty part, which is what
// browsers send when the picker was left untouched.
func buildForm(t *testing.T, fields map[string]string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileData != nil {
		fw, err := w.CreateFormFile("image", "photo.png")
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := fw.Write(fileData); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestCollectAdForm_TrimsTextFields(t *testing.T) {
	body, ct := buildForm(t, map[string]string{
		"title":       "  Bike  ",
		"description": "\tBarely used\n",
		"contacts":    " @seller ",
		"price":       "150",
	}, nil)
	req := httptest.NewRequest("POST", "/ads/new", body)
	req.Header.Set("Content-Type", ct)

	in, err := collectAdForm(req)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if in.Title != "Bike" || in.Description != "Barely used" || in.Contacts != "@seller" {
		t.Fatalf("fields not trimmed: %+v", in)
	}
	if in.PriceRaw != "150" {
		t.Fatalf("price raw = %q", in.PriceRaw)
	}
	if in.HasImage || in.ImageDataURL != "" {
		t.Fatalf("no file part must yield HasImage=false, got %+v", in)
	}
}

func TestCollectAdForm_EncodesImage(t *testing.T) {
	body, ct := buildForm(t, map[string]string{"title": "With photo"}, pngMagic)
	req := httptest.NewRequest("POST", "/ads/new", body)
	req.Header.Set("Content-Type", ct)

	in, err := collectAdForm(req)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if !in.HasImage {
		t.Fatal("file part present, HasImage must be true")
	}
	if !strings.HasPrefix(in.ImageDataURL, "data:image/png;base64,") {
		t.Fatalf("data URL = %q, want sniffed image/png prefix", in.ImageDataURL)
	}
}

func TestCollectAdForm_EmptyFilePartIsNoImage(t *testing.T) {
	body, ct := buildForm(t, map[string]string{"title": "No photo"}, []byte{})
	req := httptest.NewRequest("POST", "/ads/new", body)
	req.Header.Set("Content-Type", ct)

	in, err := collectAdForm(req)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if in.HasImage || in.ImageDataURL != "" {
		t.Fatalf("empty part must count as no image, got %+v", in)
	}
}

func TestCollectAdForm_SniffsRealType(t *testing.T) {
	// A text payload uploaded as "photo.png" must be labeled by content, not
	// by filename.
	body, ct := buildForm(t, nil, []byte("just some text, not an image"))
	req := httptest.NewRequest("POST", "/ads/new", body)
	req.Header.Set("Content-Type", ct)

	in, err := collectAdForm(req)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if strings.HasPrefix(in.ImageDataURL, "data:image/") {
		t.Fatalf("text payload sniffed as image: %q", in.ImageDataURL)
	}
	if !strings.HasPrefix(in.ImageDataURL, "data:text/plain") {
		t.Fatalf("data URL = %q, want text/plain prefix", in.ImageDataURL)
	}
}
