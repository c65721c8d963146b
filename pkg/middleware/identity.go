package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	UIDCookie  = "AGRIEYE_UID"
	UIDHeader  = "X-User-Id"
	DevUserID  = "U_DEV_DEFAULT"
	contextUID = "uid"
)

// userFrom reads the caller id from the header first, then the cookie.
func userFrom(c echo.Context) string {
	if uid := strings.TrimSpace(c.Request().Header.Get(UIDHeader)); uid != "" {
		return uid
	}
	if ck, err := c.Cookie(UIDCookie); err == nil {
		return ck.Value
	}
	return ""
}

// DevLogin never rejects: anonymous callers get ?uid= or the dev default,
// remembered in a cookie.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := userFrom(c)
			if uid == "" {
				uid = c.QueryParam("uid")
				if uid == "" {
					uid = DevUserID
				}
				c.SetCookie(&http.Cookie{Name: UIDCookie, Value: uid, Path: "/"})
			}
			c.Set(contextUID, uid)
			return next(c)
		}
	}
}

// RequireUser answers 401 when the request carries no identity. The
// session layer in front of the service is expected to set the header.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := userFrom(c)
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
			}
			c.Set(contextUID, uid)
			return next(c)
		}
	}
}

// Identity picks RequireUser or DevLogin.
func Identity(required bool) echo.MiddlewareFunc {
	if required {
		return RequireUser()
	}
	return DevLogin()
}
