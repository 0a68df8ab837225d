package middleware

import "github.com/labstack/echo/v4"

// subject returns the authenticated admin's name, or "anon" for public
// requests.
func subject(c echo.Context) string {
    if s, ok := c.Get(ctxSubject).(string); ok && s != "" {
        return s
    }
    return "anon"
}
