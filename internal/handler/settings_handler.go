package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hovertrans/backend/internal/model"
	"hovertrans/backend/internal/service"
)

type SettingsHandler struct {
	service service.SettingsService
}

type settingsResponse struct {
	TargetLanguage string `json:"targetLanguage"`
	AutoTranslate  bool   `json:"autoTranslate"`
}

type settingsPatchRequest struct {
	TargetLanguage *string `json:"targetLanguage"`
	AutoTranslate  *bool   `json:"autoTranslate"`
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/settings", h.Get)
	g.PATCH("/settings", h.Update)
}

// Get returns the translation settings.
// @Summary Get settings
// @Tags settings
// @Produce json
// @Success 200 {object} settingsResponse
// @Router /settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, toSettingsResponse(h.service.GetSettings(c.Request().Context())))
}

// Update merges a partial update into the translation settings.
// @Summary Update settings
// @Description Only the fields present in the body are changed
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body settingsPatchRequest true "Partial settings"
// @Success 200 {object} settingsResponse
// @Failure 400 {object} errorResponse
// @Router /settings [patch]
func (h *SettingsHandler) Update(c echo.Context) error {
	var req settingsPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	settings, err := h.service.SaveSettings(c.Request().Context(), model.SettingsPatch{
		TargetLanguage: req.TargetLanguage,
		AutoTranslate:  req.AutoTranslate,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toSettingsResponse(settings))
}

func toSettingsResponse(s model.TranslationSettings) settingsResponse {
	return settingsResponse{TargetLanguage: s.TargetLanguage, AutoTranslate: s.AutoTranslate}
}
