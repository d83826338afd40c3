package i18n_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"hovertrans/backend/internal/i18n"
	"hovertrans/backend/internal/translator"
)

func TestCatalog_T(t *testing.T) {
	c, err := i18n.New("ko")
	require.NoError(t, err)

	require.Equal(t, "번역 저장 완료", c.T(i18n.MsgNotificationSavedTitle, nil))
	require.Equal(t, "Translation saved", c.T(i18n.MsgNotificationSavedTitle, nil, "en"))
	require.Equal(t, `"bonjour" saved`, c.T(i18n.MsgNotificationSavedMessage, map[string]any{"Preview": "bonjour"}, "en"))
	require.Equal(t, "Missing", c.T("Missing", nil))
}

func TestCatalog_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	c, err := i18n.New("fr")
	require.NoError(t, err)

	require.Equal(t, "Translation saved", c.T(i18n.MsgNotificationSavedTitle, nil))
}

func TestCatalog_DisplayText(t *testing.T) {
	c, err := i18n.New("en")
	require.NoError(t, err)

	require.Equal(t, "hola", c.DisplayText("hola", nil))
	require.Equal(t, "No translation found.", c.DisplayText("", nil))
	require.Equal(t, "No translation found.", c.DisplayText("", translator.ErrNoTranslation))

	got := c.DisplayText("", &translator.StatusError{StatusCode: 503})
	require.Equal(t, "Translation failed: translation request failed: status 503", got)

	require.NotEmpty(t, c.DisplayText("", errors.New("boom"), "ko"))
	require.Contains(t, c.DisplayText("", errors.New("boom"), "ko"), "boom")
}
