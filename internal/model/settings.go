package model

import "time"

// Setting represents a key-value setting stored in the database.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Default translation settings applied when nothing has been stored yet.
const (
	DefaultTargetLanguage = "ko"
	DefaultAutoTranslate  = true
)

// TranslationSettings is the user-configurable translation behaviour.
type TranslationSettings struct {
	TargetLanguage string `json:"targetLanguage"`
	AutoTranslate  bool   `json:"autoTranslate"`
}

// DefaultTranslationSettings returns {ko, true}.
func DefaultTranslationSettings() TranslationSettings {
	return TranslationSettings{
		TargetLanguage: DefaultTargetLanguage,
		AutoTranslate:  DefaultAutoTranslate,
	}
}

// SettingsPatch is a partial update; nil fields keep their current value.
type SettingsPatch struct {
	TargetLanguage *string `json:"targetLanguage,omitempty"`
	AutoTranslate  *bool   `json:"autoTranslate,omitempty"`
}

// Apply merges the patch over s and returns the result.
func (p SettingsPatch) Apply(s TranslationSettings) TranslationSettings {
	if p.TargetLanguage != nil {
		s.TargetLanguage = *p.TargetLanguage
	}
	if p.AutoTranslate != nil {
		s.AutoTranslate = *p.AutoTranslate
	}
	return s
}
