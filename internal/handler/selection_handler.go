package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hovertrans/backend/internal/bus"
	"hovertrans/backend/internal/selection"
	"hovertrans/backend/internal/tab"
)

// TabToucher records activity for registered tabs.
type TabToucher interface {
	Touch(id string) bool
}

// SenderFactory returns the sender that posts messages on behalf of a tab.
type SenderFactory func(tabID string) selection.Sender

// SelectionHandler receives pointer releases from content scripts and runs
// the selection detector for them.
type SelectionHandler struct {
	tabs    TabToucher
	senders SenderFactory
	bus     *bus.Bus
}

type pointerUpRequest struct {
	TargetTag       string  `json:"targetTag"`
	ContentEditable string  `json:"contentEditable"`
	PageX           float64 `json:"pageX"`
	PageY           float64 `json:"pageY"`
	Selection       string  `json:"selection"`
	URL             string  `json:"url"`
}

type pointerUpResponse struct {
	Sent bool `json:"sent"`
}

func NewSelectionHandler(tabs TabToucher, senders SenderFactory, b *bus.Bus) *SelectionHandler {
	return &SelectionHandler{tabs: tabs, senders: senders, bus: b}
}

func (h *SelectionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/tabs/:id/pointerup", h.PointerUp)
}

// PointerUp requests a translation when the release ends a selection outside
// form controls. The result arrives on the tab's event stream.
// @Summary Report a pointer release
// @Description Sends TRANSLATE_TEXT for a non-empty selection outside input, textarea, select, option and contenteditable elements
// @Tags tabs
// @Accept json
// @Produce json
// @Param id path string true "Tab ID"
// @Param event body pointerUpRequest true "Pointer release"
// @Success 202 {object} pointerUpResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /tabs/{id}/pointerup [post]
func (h *SelectionHandler) PointerUp(c echo.Context) error {
	id := c.Param("id")
	var req pointerUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if !h.tabs.Touch(id) {
		return writeServiceError(c, tab.ErrUnknownTab)
	}

	page := selection.NewContentScript(req.URL, h.senders(id), h.bus)
	sent, err := page.OnPointerUp(c.Request().Context(), selection.PointerEvent{
		TargetTag:       req.TargetTag,
		ContentEditable: req.ContentEditable,
		PageX:           req.PageX,
		PageY:           req.PageY,
	}, req.Selection)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusAccepted, pointerUpResponse{Sent: sent})
}
