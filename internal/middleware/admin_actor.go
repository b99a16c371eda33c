package middleware

import (
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
)

const (
	ActorHeader  = "X-Actor"
	DefaultActor = "admin"

	maxActorLength = 100
)

// AdminActor records who is operating the admin pages for the audit trail.
// Staff pages send their name in X-Actor; without it the actor is "admin".
func AdminActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := strings.TrimSpace(c.Request().Header.Get(ActorHeader))
			if actor == "" || !utf8.ValidString(actor) {
				actor = DefaultActor
			}
			if utf8.RuneCountInString(actor) > maxActorLength {
				actor = string([]rune(actor)[:maxActorLength])
			}
			c.Set(CtxActorKey, actor)
			return next(c)
		}
	}
}
