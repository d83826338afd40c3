package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// HeaderTabID carries the sending tab's ID on message posts.
const HeaderTabID = "X-Tab-ID"

func tabIDFromRequest(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(HeaderTabID))
}
