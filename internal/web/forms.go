// Form input handling: field collection and image-file-to-data-URI encoding
// for the create and edit flows.
package web

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// adFormInput is the collected, trimmed state of the ad form. ImageDataURL is
// empty when no file was chosen; HasImage distinguishes "no new image" from
// "explicitly empty" for the edit flow.
type adFormInput struct {
	Title        string
	Description  string
	Contacts     string
	PriceRaw     string
	ImageDataURL string
	HasImage     bool
}

// collectAdForm reads the multipart ad form. The file is encoded eagerly: the
// conversion either produces one complete data URI or fails as a whole, it
// never partially completes.
func collectAdForm(r *http.Request) (adFormInput, error) {
	in := adFormInput{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Contacts:    strings.TrimSpace(r.FormValue("contacts")),
		PriceRaw:    r.FormValue("price"),
	}

	file, header, err := r.FormFile("image")
	switch err {
	case nil:
		defer file.Close()
		dataURL, encErr := fileToDataURL(file, header)
		switch encErr {
		case nil:
			in.ImageDataURL = dataURL
			in.HasImage = true
		case http.ErrMissingFile:
			// Empty file part, same as no file chosen.
		default:
			return in, encErr
		}
	case http.ErrMissingFile:
		// No file chosen: a valid state for both flows.
	default:
		return in, err
	}
	return in, nil
}

// fileToDataURL converts an uploaded image into a self-contained
// data:<mime>;base64,<payload> string. The content type is sniffed from the
// payload itself rather than trusted from the client-declared header.
func fileToDataURL(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header != nil && header.Size == 0 {
		// Browsers submit an empty part when the picker was opened but no
		// file selected; treat it as "no image".
		return "", http.ErrMissingFile
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", http.ErrMissingFile
	}

	mime := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), nil
}
