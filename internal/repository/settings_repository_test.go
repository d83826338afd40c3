package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"hovertrans/backend/internal/repository"
	"hovertrans/backend/internal/repository/testutil"
)

func TestSettingsRepository_GetMissing(t *testing.T) {
	repo := repository.NewSettingsRepository(testutil.NewTestDB(t))

	s, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestSettingsRepository_SetAndGet(t *testing.T) {
	repo := repository.NewSettingsRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "translationSettings", `{"targetLanguage":"en"}`))
	require.NoError(t, repo.Set(ctx, "translationSettings", `{"targetLanguage":"ja"}`))

	s, err := repo.Get(ctx, "translationSettings")
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, `{"targetLanguage":"ja"}`, s.Value)
	require.False(t, s.UpdatedAt.IsZero())
}

func TestSettingsRepository_Delete(t *testing.T) {
	repo := repository.NewSettingsRepository(testutil.NewTestDB(t))
	runDelete(t, repo)
}

func TestRedisSettingsRepository(t *testing.T) {
	addr := os.Getenv("HOVERTRANS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("HOVERTRANS_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	require.NoError(t, client.FlushDB(ctx).Err())

	repo := repository.NewRedisSettingsRepository(client)

	s, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, s)

	runDelete(t, repo)
}

func runDelete(t *testing.T, repo repository.SettingsRepository) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "savedTranslations", "[]"))
	require.NoError(t, repo.Set(ctx, "translationSettings", "{}"))

	require.NoError(t, repo.Delete(ctx, "savedTranslations"))
	s, err := repo.Get(ctx, "savedTranslations")
	require.NoError(t, err)
	require.Nil(t, s)

	kept, err := repo.Get(ctx, "translationSettings")
	require.NoError(t, err)
	require.NotNil(t, kept)

	require.NoError(t, repo.Delete(ctx, "never-set"))
}
