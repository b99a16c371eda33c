package handler

import (
	"pearlify/internal/middleware"

	"github.com/labstack/echo/v4"
)

// set by middleware.Session
func getSessionID(c echo.Context) string {
	sid, _ := c.Get(middleware.CtxSessionIDKey).(string)
	return sid
}

// set by middleware.AdminActor
func getActor(c echo.Context) string {
	actor, ok := c.Get(middleware.CtxActorKey).(string)
	if !ok || actor == "" {
		return middleware.DefaultActor
	}
	return actor
}
