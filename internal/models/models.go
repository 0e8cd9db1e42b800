package models

import "time"

// Document is a locally stored media record, typically materialized from a
// third-party embed's thumbnail.
type Document struct {
	ID            string
	Filename      string
	MimeType      string
	AssetURL      string
	Size          int64
	EmbedID       string
	EmbedPlatform string
	Translations  []DocumentTranslation
	CreatedAt     time.Time
}

// DocumentTranslation holds the locale-specific texts of a document.
type DocumentTranslation struct {
	Locale      string
	Name        string
	Description string
	Copyright   string
}

// SetEmbed records which external media the document mirrors.
func (d *Document) SetEmbed(embedID, platform string) {
	d.EmbedID = embedID
	d.EmbedPlatform = platform
}

// SetTranslation creates or replaces the texts for locale.
func (d *Document) SetTranslation(locale, name, description, copyright string) {
	tr := DocumentTranslation{Locale: locale, Name: name, Description: description, Copyright: copyright}
	for i := range d.Translations {
		if d.Translations[i].Locale == locale {
			d.Translations[i] = tr
			return
		}
	}
	d.Translations = append(d.Translations, tr)
}

// Translation returns the texts for locale, if any.
func (d *Document) Translation(locale string) (DocumentTranslation, bool) {
	for _, tr := range d.Translations {
		if tr.Locale == locale {
			return tr, true
		}
	}
	return DocumentTranslation{}, false
}
