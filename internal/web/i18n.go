// Package web serves the browser-facing pages: the ad listing, the create
// form, and the edit form. It is the server-side rendition of the original
// client scripts: a pure projection step turns ads into display cards, and
// thin Gin handlers attach the result to HTML templates.
//
// This file holds localization. The original UI is Russian; every
// user-facing string goes through a golang.org/x/text message catalog so the
// pages degrade to English for clients that ask for it via Accept-Language.
package web

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// supported lists the locales with catalog entries; the first entry is the
// fallback when negotiation fails.
var supported = []language.Tag{
	language.Russian,
	language.English,
}

var matcher = language.NewMatcher(supported)

func init() {
	for key, ru := range map[string]string{
		"Ads":                      "Объявления",
		"New ad":                   "Новое объявление",
		"Edit ad":                  "Редактировать объявление",
		"No ads yet":               "Пока нет объявлений",
		"No contacts provided":     "Контакты не указаны",
		"Failed to load ads: %s":   "Ошибка загрузки объявлений: %s",
		"Failed to load ad: %s":    "Ошибка загрузки: %s",
		"Error: %s":                "Ошибка: %s",
		"Ad published!":            "Объявление опубликовано!",
		"Ad updated!":              "Объявление обновлено!",
		"Ad deleted":               "Объявление удалено",
		"Title":                    "Заголовок",
		"Description":              "Описание",
		"Price":                    "Цена",
		"Contacts":                 "Контакты",
		"Photo":                    "Фото",
		"Publish":                  "Опубликовать",
		"Save":                     "Сохранить",
		"Edit":                     "Редактировать",
		"Delete":                   "Удалить",
		"Delete this ad?":          "Удалить это объявление?",
		"Back to listing":          "К списку объявлений",
		"Invalid price value":      "Некорректная цена",
		"Image upload failed: %s":  "Не удалось загрузить изображение: %s",
		"You can only modify your own ads": "Можно изменять только свои объявления",
		"Ad not found":             "Объявление не найдено",
	} {
		if err := message.SetString(language.Russian, key, ru); err != nil {
			panic(err)
		}
		// English catalog entries equal their keys; registering them keeps
		// the printer from falling back with a "translation missing" marker.
		if err := message.SetString(language.English, key, key); err != nil {
			panic(err)
		}
	}
}

// Locale bundles everything the templates and the projection need to render
// text for one negotiated language.
type Locale struct {
	Tag     language.Tag
	printer *message.Printer

	// timeLayout renders CreatedAt the way the locale expects.
	timeLayout string
}

// NewLocale builds a Locale for the given tag. Unknown tags fall back to the
// first supported locale.
func NewLocale(tag language.Tag) *Locale {
	tag, _, _ = matcher.Match(tag)
	layout := "02.01.2006 15:04"
	if base, _ := tag.Base(); base.String() == "en" {
		layout = "Jan 2, 2006 15:04"
	}
	return &Locale{
		Tag:        tag,
		printer:    message.NewPrinter(tag),
		timeLayout: layout,
	}
}

// LocaleFor builds a Locale from a configured language code such as "ru" or
// "en". Unknown codes fall back like NewLocale does.
func LocaleFor(code string) *Locale {
	return NewLocale(language.Make(code))
}

// Negotiate picks the best supported locale for an Accept-Language header.
// An empty header yields the default (Russian, as in the original UI).
func Negotiate(acceptLanguage string) *Locale {
	if acceptLanguage == "" {
		return NewLocale(supported[0])
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return NewLocale(supported[0])
	}
	tag, _, _ := matcher.Match(tags...)
	return NewLocale(tag)
}

// T renders a catalog message. It is exported so templates can call it
// directly: {{.Loc.T "Publish"}}.
func (l *Locale) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// FormatPrice renders a price with locale-aware digit grouping and the
// marketplace currency. The currency is a property of the marketplace, not
// of the viewer's locale, so it stays ₽ everywhere.
func (l *Locale) FormatPrice(v float64) string {
	return l.printer.Sprint(number.Decimal(v)) + " ₽"
}

// FormatTime renders a creation timestamp in the locale's preferred layout.
func (l *Locale) FormatTime(t time.Time) string {
	return t.Local().Format(l.timeLayout)
}
