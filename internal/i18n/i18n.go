// Package i18n holds the user-facing strings shown in notifications and
// translation fallbacks.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"hovertrans/backend/internal/translator"
)

// Message IDs.
const (
	MsgNotificationSavedTitle   = "NotificationSavedTitle"
	MsgNotificationSavedMessage = "NotificationSavedMessage"
	MsgTranslationNotFound      = "TranslationNotFound"
	MsgTranslationFailed        = "TranslationFailed"
)

//go:embed locales/*.toml
var locales embed.FS

// Catalog resolves message IDs against the embedded bundles.
type Catalog struct {
	bundle *i18n.Bundle
	locale string
}

// New loads every embedded bundle. locale is the language used when callers
// do not ask for one; English is the final fallback.
func New(locale string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(locales, f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return &Catalog{bundle: bundle, locale: locale}, nil
}

// Locale returns the catalog's default locale.
func (c *Catalog) Locale() string {
	return c.locale
}

// T localizes messageID. Unknown IDs come back verbatim.
func (c *Catalog) T(messageID string, data map[string]any, langs ...string) string {
	tags := append(append(make([]string, 0, len(langs)+1), langs...), c.locale)
	localizer := i18n.NewLocalizer(c.bundle, tags...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}

// DisplayText turns a translation outcome into text for the tooltip. It is
// never empty: failures become a localized fallback.
func (c *Catalog) DisplayText(text string, err error, langs ...string) string {
	switch {
	case err == nil && text != "":
		return text
	case err == nil, errors.Is(err, translator.ErrNoTranslation):
		return c.T(MsgTranslationNotFound, nil, langs...)
	default:
		return c.T(MsgTranslationFailed, map[string]any{"Reason": err.Error()}, langs...)
	}
}
