package router

import (
	"github.com/labstack/echo/v4"
)

// tokenFromQuery copies ?token= into the Authorization header when the
// header is absent.
func tokenFromQuery(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if req.Header.Get("Authorization") == "" {
			if token := c.QueryParam("token"); token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}
		return next(c)
	}
}
