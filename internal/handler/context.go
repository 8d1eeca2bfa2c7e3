package handler

import (
	"github.com/labstack/echo/v4"

	"weighttrack/internal/model"
)

// currentUserKey is the echo context key the guard middleware stores the
// authenticated user under.
const currentUserKey = "currentUser"

// SetCurrentUser stores the authenticated user on the request context.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the authenticated user loaded by the guard middleware,
// or nil on an unguarded route.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(currentUserKey).(*model.User)
	return user
}
