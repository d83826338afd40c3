package model

import "time"

// TimestampLayout is the ISO-8601 layout used for translation timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Position is a page coordinate in CSS pixels.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SelectionInfo is captured when the user releases the pointer over a text selection.
type SelectionInfo struct {
	Text     string   `json:"text"`
	Position Position `json:"position"`
	URL      string   `json:"url"`
}

// TranslationResult is delivered back to the tab that asked for a translation.
// Failed is set when TranslatedText holds fallback text instead of a translation.
type TranslationResult struct {
	OriginalText   string   `json:"originalText"`
	TranslatedText string   `json:"translatedText"`
	Position       Position `json:"position"`
	URL            string   `json:"url"`
	Timestamp      string   `json:"timestamp"`
	Failed         bool     `json:"failed,omitempty"`
}

// SavedTranslation is a persisted history record.
type SavedTranslation struct {
	OriginalText   string `json:"originalText"`
	TranslatedText string `json:"translatedText"`
	Timestamp      string `json:"timestamp"`
	URL            string `json:"url"`
	TargetLanguage string `json:"targetLanguage"`
}
