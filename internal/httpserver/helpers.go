package httpserver

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	authmw "github.com/woodharbor/slabstore/pkg/middleware/auth"
)

func userID(c echo.Context) (uuid.UUID, error) {
	v := c.Get(authmw.UserIDKey)
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("unauthorized")
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("unauthorized")
	}
	return id, nil
}

func userEmail(c echo.Context) string {
	if s, ok := c.Get(authmw.EmailKey).(string); ok {
		return s
	}
	return ""
}

// optionalUserID returns nil for anonymous requests.
func optionalUserID(c echo.Context) *uuid.UUID {
	id, err := userID(c)
	if err != nil {
		return nil
	}
	return &id
}
