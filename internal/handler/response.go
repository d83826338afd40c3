package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"hovertrans/backend/internal/dispatch"
	"hovertrans/backend/internal/message"
	"hovertrans/backend/internal/service"
	"hovertrans/backend/internal/tab"
)

type errorResponse struct {
	Error string `json:"error"`
}

type deletedCountResponse struct {
	Deleted int `json:"deleted"`
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid), errors.Is(err, message.ErrMalformed):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, tab.ErrUnknownTab):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.Is(err, tab.ErrAlreadyAttached):
		return c.JSON(http.StatusConflict, errorResponse{Error: "tab already has an event stream"})
	case errors.Is(err, dispatch.ErrClosed), errors.Is(err, dispatch.ErrQueueFull):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "busy"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
