package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DefaultKeepAlive is the interval between SSE comment pings.
const DefaultKeepAlive = 30 * time.Second

func startEventStream(c echo.Context) {
	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()
}

func writeEvent(c echo.Context, event string, data []byte) error {
	if _, err := fmt.Fprintf(c.Response(), "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	c.Response().Flush()
	return nil
}

func writeKeepAlive(c echo.Context) error {
	if _, err := fmt.Fprint(c.Response(), ": ping\n\n"); err != nil {
		return err
	}
	c.Response().Flush()
	return nil
}
