package http

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"hovertrans/backend/internal/handler"
	"hovertrans/backend/internal/logger"
)

// RequestLoggerMiddleware logs HTTP requests using logger. 5xx responses log
// at error, 4xx at warn and everything else at debug.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status

			result := "ok"
			log := logger.Debug
			switch {
			case status >= 500:
				result = "failed"
				log = logger.Error
			case status >= 400:
				result = "failed"
				log = logger.Warn
			}

			log("http request",
				"module", "http",
				"action", "request",
				"resource", resourceFromPath(req.URL.Path),
				"result", result,
				"method", req.Method,
				"path", req.URL.Path,
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
				"user_agent", req.UserAgent(),
				"tab_id", req.Header.Get(handler.HeaderTabID),
			)
			return nil
		}
	}
}

// resourceFromPath maps /api/<resource>/... to <resource>.
func resourceFromPath(p string) string {
	rest, ok := strings.CutPrefix(p, "/api/")
	if !ok {
		return "http"
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "http"
	}
	return rest
}
