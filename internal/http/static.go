package http

import (
	nethttp "net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"hovertrans/backend/internal/logger"
)

// reviewPage is served at "/" when present in the asset directory.
const reviewPage = "review.html"

// registerStatic serves the extension's assets (notification icon, review
// page) from dir. Unknown paths are 404s.
func registerStatic(e *echo.Echo, dir string) {
	if dir == "" {
		return
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn("static dir missing", "module", "http", "action", "request", "resource", "static", "result", "failed", "dir", dir)
		return
	}

	logger.Info("static assets enabled", "module", "http", "action", "request", "resource", "static", "result", "ok", "dir", dir)

	fileServer := nethttp.FileServer(nethttp.Dir(dir))

	e.GET("/*", func(c echo.Context) error {
		requestPath := c.Request().URL.Path
		if requestPath == "/api" || strings.HasPrefix(requestPath, "/api/") {
			return echo.ErrNotFound
		}

		cleanPath := strings.TrimPrefix(path.Clean(requestPath), "/")
		if cleanPath == "." || cleanPath == "" {
			cleanPath = reviewPage
		}
		for _, part := range strings.Split(cleanPath, "/") {
			if strings.HasPrefix(part, ".") {
				return echo.ErrNotFound
			}
		}

		candidate := filepath.Join(dir, filepath.FromSlash(cleanPath))
		fileInfo, err := os.Stat(candidate)
		if err != nil || fileInfo.IsDir() {
			return echo.ErrNotFound
		}

		logger.Debug("static file served", "module", "http", "action", "fetch", "resource", "static", "result", "ok", "path", requestPath)
		if cleanPath == reviewPage {
			return c.File(candidate)
		}
		fileServer.ServeHTTP(c.Response(), c.Request())
		return nil
	})
}
