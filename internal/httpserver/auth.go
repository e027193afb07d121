package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/woodharbor/slabstore/internal/service"
	"github.com/woodharbor/slabstore/internal/transport"
	"github.com/woodharbor/slabstore/pkg/logging"
	"github.com/woodharbor/slabstore/pkg/tokens"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Email, req.Password, req.DisplayName, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "email and password required")
		case errors.Is(err, service.ErrConflict):
			l.Warn("register_failed", "status", 409, "error", err)
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		default:
			l.Error("register_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot register")
		}
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "email and password required")
		case errors.Is(err, service.ErrInvalidLogin):
			l.Warn("login_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		default:
			l.Error("login_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot login")
		}
	}

	setAuthCookies(c, result)
	return c.JSON(http.StatusOK, result.User)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	cookie, err := c.Cookie(tokens.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		clearAuthCookies(c)
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}

	result, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		clearAuthCookies(c)
		if errors.Is(err, service.ErrInvalidLogin) {
			l.Warn("refresh_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
		}
		l.Error("refresh_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot refresh")
	}

	setAuthCookies(c, result)
	return c.JSON(http.StatusOK, result.User)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if uid, err := userID(c); err == nil {
		if err := h.Svc.Logout(ctx, uid); err != nil {
			l.Error("logout_failed", "error", err)
		}
	}

	clearAuthCookies(c)
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.profile")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := h.Svc.Profile(ctx, uid)
	if err != nil {
		l.Error("profile_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load profile")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.update_profile")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateProfile(ctx, uid, req.DisplayName, req.Phone)
	if err != nil {
		l.Error("update_profile_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update profile")
	}

	return c.JSON(http.StatusOK, user)
}

func setAuthCookies(c echo.Context, result *service.LoginResult) {
	c.SetCookie(tokens.CreateCookie(tokens.AccessCookieName, result.AccessToken, "/", result.AccessExp))
	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookieName, result.RefreshToken, "/", result.RefreshExp))
}

func clearAuthCookies(c echo.Context) {
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookieName, "/"))
	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookieName, "/"))
}
