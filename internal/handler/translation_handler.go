package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"hovertrans/backend/internal/i18n"
	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/service"
	"hovertrans/backend/internal/translator"
)

type TranslationHandler struct {
	translator translator.Translator
	settings   service.SettingsService
	history    service.HistoryService
	catalog    *i18n.Catalog
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Failed         bool   `json:"failed"`
}

func NewTranslationHandler(tr translator.Translator, settings service.SettingsService, history service.HistoryService, catalog *i18n.Catalog) *TranslationHandler {
	return &TranslationHandler{translator: tr, settings: settings, history: history, catalog: catalog}
}

func (h *TranslationHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/translate", h.Translate)
	g.GET("/translations", h.List)
	g.DELETE("/translations", h.Delete)
	g.DELETE("/translations/all", h.Clear)
}

// Translate translates text synchronously. Failures are reported as
// fallback text with failed set, never as an HTTP error.
// @Summary Translate text
// @Description Translate text into targetLanguage, or the configured target language when omitted
// @Tags translations
// @Accept json
// @Produce json
// @Param request body translateRequest true "Text to translate"
// @Success 200 {object} translateResponse
// @Failure 400 {object} errorResponse
// @Router /translate [post]
func (h *TranslationHandler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "text is required"})
	}

	ctx := c.Request().Context()
	target := strings.TrimSpace(req.TargetLanguage)
	if target == "" {
		target = h.settings.GetSettings(ctx).TargetLanguage
	}

	translated, err := h.translator.Translate(ctx, text, target)
	if err != nil {
		logger.Warn("translation failed", "module", "handler", "action", "translate", "resource", "translation", "result", "failed", "target", target, "error", err)
	}

	return c.JSON(http.StatusOK, translateResponse{
		TranslatedText: h.catalog.DisplayText(translated, err),
		Failed:         err != nil,
	})
}

// List returns saved translations, newest first.
// @Summary List saved translations
// @Tags translations
// @Produce json
// @Success 200 {array} model.SavedTranslation
// @Router /translations [get]
func (h *TranslationHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.history.ListAll(c.Request().Context()))
}

// Delete removes the saved translations with the given timestamp.
// @Summary Delete a saved translation
// @Tags translations
// @Produce json
// @Param timestamp query string true "Timestamp of the entry"
// @Success 200 {object} deletedCountResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /translations [delete]
func (h *TranslationHandler) Delete(c echo.Context) error {
	ts := c.QueryParam("timestamp")
	if ts == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "timestamp is required"})
	}

	removed, err := h.history.RemoveByTimestamp(c.Request().Context(), ts)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, deletedCountResponse{Deleted: removed})
}

// Clear removes every saved translation.
// @Summary Clear saved translations
// @Tags translations
// @Success 204
// @Failure 500 {object} errorResponse
// @Router /translations/all [delete]
func (h *TranslationHandler) Clear(c echo.Context) error {
	if err := h.history.Clear(c.Request().Context()); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
