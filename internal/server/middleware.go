package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"blog_cms/internal/domain"
)

// SessionCookie is the cookie the login endpoint sets alongside the JSON
// token so browser clients authenticate without holding the token in JS.
const SessionCookie = "blog_session"

const authContextKey = "authContext"

// RequireAuth verifies the bearer token (or the session cookie) and stores
// the resulting auth context on the request. Missing or invalid tokens get
// a generic 401.
func RequireAuth(auth AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := extractToken(c)
			if tok == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			authCtx, err := auth.Verify(c.Request().Context(), tok)
			if err != nil {
				return mapDomainError(err)
			}

			c.Set(authContextKey, authCtx)
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// AuthContextFrom returns the verified caller set by RequireAuth.
func AuthContextFrom(c echo.Context) *domain.AuthContext {
	authCtx, _ := c.Get(authContextKey).(*domain.AuthContext)
	return authCtx
}
