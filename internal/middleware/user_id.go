package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// HeaderUserID carries the id of the already authenticated acting user.
const HeaderUserID = "X-Sharer-User-Id"

const userIDKey = "userID"

// ActingUser rejects requests without a valid acting user header.
func ActingUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderUserID)
			if raw == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "missing "+HeaderUserID+" header")
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid "+HeaderUserID+" header")
			}
			c.Set(userIDKey, uint(id))
			return next(c)
		}
	}
}

// UserID returns the acting user set by ActingUser, or 0.
func UserID(c echo.Context) uint {
	id, _ := c.Get(userIDKey).(uint)
	return id
}
