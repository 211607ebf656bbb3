package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths bypass authentication.
var publicPaths = map[string]bool{
	"/api/v1/health": true,
	"/health/db":     true,
	"/health/cache":  true,
	"/metrics":       true,
}

// AuthSkipper matches on the route template, so it is only meaningful for
// middleware registered after routing (group or route level).
func AuthSkipper(c echo.Context) bool {
	return publicPaths[c.Path()] || publicPaths[c.Request().URL.Path]
}

func IsPublicPath(path string) bool {
	return publicPaths[path]
}
