package service

import (
	"context"
	"encoding/json"
	"fmt"

	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/model"
	"hovertrans/backend/internal/repository"
)

const (
	// KeySavedTranslations holds the JSON encoded saved translation list.
	KeySavedTranslations = "savedTranslations"
	// MaxSavedTranslations caps the saved list; older entries are dropped on insert.
	MaxSavedTranslations = 100
)

// HistoryService manages the capped, newest-first list of saved translations.
type HistoryService interface {
	// Append inserts record at the front and truncates the list to MaxSavedTranslations.
	Append(ctx context.Context, record model.SavedTranslation) error
	// ListAll returns the saved list, or an empty list when it is absent or unreadable.
	ListAll(ctx context.Context) []model.SavedTranslation
	// RemoveByTimestamp drops every record whose timestamp equals ts and
	// returns how many were removed.
	RemoveByTimestamp(ctx context.Context, ts string) (int, error)
	// Clear removes the whole list.
	Clear(ctx context.Context) error
}

type historyService struct {
	repo  repository.SettingsRepository
	locks *keyLock
}

// NewHistoryService creates a history service on top of the key/value repository.
func NewHistoryService(repo repository.SettingsRepository) HistoryService {
	return &historyService{repo: repo, locks: newKeyLock()}
}

func (s *historyService) Append(ctx context.Context, record model.SavedTranslation) error {
	unlock := s.locks.Lock(KeySavedTranslations)
	defer unlock()

	list, err := s.load(ctx)
	if err != nil {
		logger.Warn("history load failed", "module", "service", "action", "save", "resource", "history", "result", "failed", "error", err)
		return fmt.Errorf("load history: %w", err)
	}

	list = append([]model.SavedTranslation{record}, list...)
	if len(list) > MaxSavedTranslations {
		list = list[:MaxSavedTranslations]
	}

	if err := s.store(ctx, list); err != nil {
		logger.Warn("history save failed", "module", "service", "action", "save", "resource", "history", "result", "failed", "error", err)
		return fmt.Errorf("store history: %w", err)
	}
	logger.Info("translation saved", "module", "service", "action", "save", "resource", "history", "result", "ok", "count", len(list))
	return nil
}

func (s *historyService) ListAll(ctx context.Context) []model.SavedTranslation {
	list, err := s.load(ctx)
	if err != nil {
		logger.Warn("history list failed", "module", "service", "action", "fetch", "resource", "history", "result", "failed", "error", err)
		return []model.SavedTranslation{}
	}
	return list
}

func (s *historyService) RemoveByTimestamp(ctx context.Context, ts string) (int, error) {
	unlock := s.locks.Lock(KeySavedTranslations)
	defer unlock()

	list, err := s.load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load history: %w", err)
	}

	kept := make([]model.SavedTranslation, 0, len(list))
	for _, item := range list {
		if item.Timestamp != ts {
			kept = append(kept, item)
		}
	}
	removed := len(list) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.store(ctx, kept); err != nil {
		return 0, fmt.Errorf("store history: %w", err)
	}
	logger.Info("translation deleted", "module", "service", "action", "delete", "resource", "history", "result", "ok", "timestamp", ts, "removed", removed)
	return removed, nil
}

func (s *historyService) Clear(ctx context.Context) error {
	unlock := s.locks.Lock(KeySavedTranslations)
	defer unlock()

	if err := s.repo.Delete(ctx, KeySavedTranslations); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	logger.Info("history cleared", "module", "service", "action", "delete", "resource", "history", "result", "ok")
	return nil
}

func (s *historyService) load(ctx context.Context) ([]model.SavedTranslation, error) {
	setting, err := s.repo.Get(ctx, KeySavedTranslations)
	if err != nil {
		return nil, err
	}
	if setting == nil || setting.Value == "" {
		return []model.SavedTranslation{}, nil
	}

	var list []model.SavedTranslation
	if err := json.Unmarshal([]byte(setting.Value), &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeySavedTranslations, err)
	}
	if list == nil {
		list = []model.SavedTranslation{}
	}
	return list, nil
}

func (s *historyService) store(ctx context.Context, list []model.SavedTranslation) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, KeySavedTranslations, string(data))
}
