package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/model"
	"hovertrans/backend/internal/repository"
)

// KeyTranslationSettings holds the JSON encoded TranslationSettings.
const KeyTranslationSettings = "translationSettings"

// SettingsService provides translation settings management.
type SettingsService interface {
	// GetSettings returns the stored settings merged over the defaults.
	// Read failures are logged and the defaults are returned.
	GetSettings(ctx context.Context) model.TranslationSettings
	// SaveSettings merges patch over the current settings and persists the result.
	SaveSettings(ctx context.Context, patch model.SettingsPatch) (model.TranslationSettings, error)
}

type settingsService struct {
	repo  repository.SettingsRepository
	locks *keyLock
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo, locks: newKeyLock()}
}

func (s *settingsService) GetSettings(ctx context.Context) model.TranslationSettings {
	settings, err := s.load(ctx)
	if err != nil {
		logger.Warn("settings load failed", "module", "service", "action", "fetch", "resource", "settings", "result", "failed", "error", err)
		return model.DefaultTranslationSettings()
	}
	return settings
}

func (s *settingsService) SaveSettings(ctx context.Context, patch model.SettingsPatch) (model.TranslationSettings, error) {
	if patch.TargetLanguage != nil {
		lang, err := normalizeLanguage(*patch.TargetLanguage)
		if err != nil {
			return model.TranslationSettings{}, err
		}
		patch.TargetLanguage = &lang
	}

	unlock := s.locks.Lock(KeyTranslationSettings)
	defer unlock()

	current, err := s.load(ctx)
	if err != nil {
		logger.Warn("settings load failed, merging over defaults", "module", "service", "action", "save", "resource", "settings", "result", "failed", "error", err)
		current = model.DefaultTranslationSettings()
	}

	merged := patch.Apply(current)
	data, err := json.Marshal(merged)
	if err != nil {
		return model.TranslationSettings{}, fmt.Errorf("encode settings: %w", err)
	}
	if err := s.repo.Set(ctx, KeyTranslationSettings, string(data)); err != nil {
		logger.Warn("settings save failed", "module", "service", "action", "save", "resource", "settings", "result", "failed", "error", err)
		return model.TranslationSettings{}, fmt.Errorf("set settings: %w", err)
	}

	logger.Info("settings saved", "module", "service", "action", "save", "resource", "settings", "result", "ok", "target_language", merged.TargetLanguage, "auto_translate", merged.AutoTranslate)
	return merged, nil
}

func (s *settingsService) load(ctx context.Context) (model.TranslationSettings, error) {
	settings := model.DefaultTranslationSettings()

	setting, err := s.repo.Get(ctx, KeyTranslationSettings)
	if err != nil {
		return settings, err
	}
	if setting == nil || setting.Value == "" {
		return settings, nil
	}

	// Decoding over the defaults keeps them for fields missing from older records.
	if err := json.Unmarshal([]byte(setting.Value), &settings); err != nil {
		return model.DefaultTranslationSettings(), fmt.Errorf("decode %s: %w", KeyTranslationSettings, err)
	}
	if settings.TargetLanguage == "" {
		settings.TargetLanguage = model.DefaultTargetLanguage
	}
	return settings, nil
}

// normalizeLanguage validates an IETF language tag. The caller's spelling is
// kept (the translation endpoint expects codes such as "zh-CN").
func normalizeLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("%w: target language is required", ErrInvalid)
	}
	if _, err := language.Parse(code); err != nil {
		return "", fmt.Errorf("%w: target language %q: %v", ErrInvalid, code, err)
	}
	return code, nil
}
