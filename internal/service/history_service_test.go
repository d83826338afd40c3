package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hovertrans/backend/internal/model"
	"hovertrans/backend/internal/repository"
	"hovertrans/backend/internal/repository/mock"
	"hovertrans/backend/internal/repository/testutil"
	"hovertrans/backend/internal/service"
)

func newHistoryService(t *testing.T) service.HistoryService {
	t.Helper()
	return service.NewHistoryService(repository.NewSettingsRepository(testutil.NewTestDB(t)))
}

func record(i int) model.SavedTranslation {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Second)
	return model.SavedTranslation{
		OriginalText:   fmt.Sprintf("text %d", i),
		TranslatedText: fmt.Sprintf("translated %d", i),
		Timestamp:      model.FormatTimestamp(ts),
		URL:            "https://example.com",
		TargetLanguage: "ko",
	}
}

func TestHistoryService_ListAll_Empty(t *testing.T) {
	svc := newHistoryService(t)

	list := svc.ListAll(context.Background())
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestHistoryService_Append_NewestFirst(t *testing.T) {
	svc := newHistoryService(t)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, record(1)))
	require.NoError(t, svc.Append(ctx, record(2)))

	list := svc.ListAll(ctx)
	require.Len(t, list, 2)
	require.Equal(t, "text 2", list[0].OriginalText)
	require.Equal(t, "text 1", list[1].OriginalText)
}

func TestHistoryService_Append_CapsAtMax(t *testing.T) {
	svc := newHistoryService(t)
	ctx := context.Background()

	for i := 0; i < 105; i++ {
		require.NoError(t, svc.Append(ctx, record(i)))
		require.LessOrEqual(t, len(svc.ListAll(ctx)), service.MaxSavedTranslations)
	}

	list := svc.ListAll(ctx)
	require.Len(t, list, service.MaxSavedTranslations)
	require.Equal(t, "text 104", list[0].OriginalText)
	require.Equal(t, "text 5", list[len(list)-1].OriginalText)
}

func TestHistoryService_RemoveByTimestamp(t *testing.T) {
	svc := newHistoryService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Append(ctx, record(i)))
	}

	removed, err := svc.RemoveByTimestamp(ctx, record(1).Timestamp)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	list := svc.ListAll(ctx)
	require.Len(t, list, 2)
	require.Equal(t, []string{"text 2", "text 0"}, []string{list[0].OriginalText, list[1].OriginalText})
}

func TestHistoryService_RemoveByTimestamp_Absent(t *testing.T) {
	svc := newHistoryService(t)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, record(0)))
	before := svc.ListAll(ctx)

	removed, err := svc.RemoveByTimestamp(ctx, "1999-01-01T00:00:00.000Z")
	require.NoError(t, err)
	require.Zero(t, removed)
	require.Equal(t, before, svc.ListAll(ctx))
}

func TestHistoryService_Clear(t *testing.T) {
	svc := newHistoryService(t)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, record(0)))
	require.NoError(t, svc.Clear(ctx))
	require.Empty(t, svc.ListAll(ctx))
}

// Concurrent appends must not lose updates.
func TestHistoryService_Append_Concurrent(t *testing.T) {
	svc := newHistoryService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- svc.Append(ctx, record(i))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.Len(t, svc.ListAll(ctx), 20)
}

func TestHistoryService_ListAll_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSettingsRepository(ctrl)
	svc := service.NewHistoryService(repo)
	ctx := context.Background()

	repo.EXPECT().Get(ctx, service.KeySavedTranslations).Return(nil, errors.New("disk on fire"))

	list := svc.ListAll(ctx)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestHistoryService_ListAll_CorruptValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSettingsRepository(ctrl)
	svc := service.NewHistoryService(repo)
	ctx := context.Background()

	repo.EXPECT().Get(ctx, service.KeySavedTranslations).Return(&model.Setting{Key: service.KeySavedTranslations, Value: "{not json"}, nil)

	require.Empty(t, svc.ListAll(ctx))
}

func TestHistoryService_Append_WriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSettingsRepository(ctrl)
	svc := service.NewHistoryService(repo)
	ctx := context.Background()

	repo.EXPECT().Get(ctx, service.KeySavedTranslations).Return(nil, nil)
	repo.EXPECT().Set(ctx, service.KeySavedTranslations, gomock.Any()).Return(errors.New("read only"))

	err := svc.Append(ctx, record(0))
	require.Error(t, err)
	require.Contains(t, err.Error(), "store history")
}

func TestHistoryService_Append_DoesNotOverwriteCorruptList(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSettingsRepository(ctrl)
	svc := service.NewHistoryService(repo)
	ctx := context.Background()

	repo.EXPECT().Get(ctx, service.KeySavedTranslations).Return(&model.Setting{Value: "[{"}, nil)

	require.Error(t, svc.Append(ctx, record(0)))
}

func TestHistoryService_RemoveByTimestamp_NoMatchSkipsWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSettingsRepository(ctrl)
	svc := service.NewHistoryService(repo)
	ctx := context.Background()

	repo.EXPECT().Get(ctx, service.KeySavedTranslations).Return(&model.Setting{Value: `[{"timestamp":"a"}]`}, nil)

	removed, err := svc.RemoveByTimestamp(ctx, "b")
	require.NoError(t, err)
	require.Zero(t, removed)
}
