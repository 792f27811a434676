package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minishop/store-api/internal/api/metrics"
	"github.com/minishop/store-api/internal/core/domain"
	"github.com/minishop/store-api/internal/core/ports"
)

// sessionCookie is the cookie carrying the session token between signin and
// logout.
const sessionCookie = "token"

// UserHandler handles HTTP requests for account operations.
type UserHandler struct {
	service  ports.UserService
	tokenTTL time.Duration
}

func NewUserHandler(service ports.UserService, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{service: service, tokenTTL: tokenTTL}
}

// Signup registers a new account and opens a session.
//
// @Summary      Register a new account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /user/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, token, err := h.service.Signup(c.Request().Context(), ports.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "email already registered"})
		}
		return err
	}

	metrics.SignupsTotal.Inc()

	// the submitted plaintext is echoed back in the payload; it is never
	// stored anywhere
	user.Password = req.Password
	return c.JSON(http.StatusOK, sessionResponse{User: user, Token: token})
}

// Signin verifies credentials and opens a new session, setting the session
// cookie alongside the token in the body.
//
// @Summary      Sign in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /user/signin [post]
func (h *UserHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, token, err := h.service.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.SigninsTotal.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		case errors.Is(err, domain.ErrBadCredential):
			metrics.SigninsTotal.WithLabelValues("bad_credential").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid credentials"})
		}
		return err
	}

	metrics.SigninsTotal.WithLabelValues("ok").Inc()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
	})

	user.Password = req.Password
	return c.JSON(http.StatusOK, sessionResponse{User: user, Token: token})
}

// Logout closes the session identified by the session cookie and clears it.
//
// @Summary      Log out
// @Tags         users
// @Produce      json
// @Success      200   {object}  logoutResponse
// @Failure      400   {object}  errorResponse
// @Router       /user/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	var token string
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		token = cookie.Value
	}

	user, err := h.service.Logout(c.Request().Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingToken):
			metrics.LogoutsTotal.WithLabelValues("missing_token").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing token"})
		case errors.Is(err, domain.ErrInvalidToken):
			metrics.LogoutsTotal.WithLabelValues("invalid_token").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid token"})
		}
		return err
	}

	metrics.LogoutsTotal.WithLabelValues("ok").Inc()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.JSON(http.StatusOK, logoutResponse{User: user, Message: "logged out"})
}

// Update modifies the caller's own account. Ownership of :id has already
// been enforced by the middleware chain.
//
// @Summary      Update an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  updateUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidID):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "user not found"})
		case errors.Is(err, domain.ErrEmailTaken):
			return c.JSON(http.StatusForbidden, errorResponse{Error: "email already registered"})
		}
		return err
	}

	return c.JSON(http.StatusOK, updateUserResponse{Message: "user updated", User: user})
}

// Delete removes the caller's own account.
//
// @Summary      Delete an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200 {object}  messageResponse
// @Failure      400 {object}  errorResponse
// @Failure      403 {object}  errorResponse
// @Router       /user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "user not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}
