package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-storefront/internal/middleware"
	"github.com/iliyamo/cinema-storefront/internal/model"
	"github.com/iliyamo/cinema-storefront/internal/utils"
)

// AuthHandler exchanges backend credentials for storefront session tokens.
type AuthHandler struct {
	API       Backend
	JWTSecret string
	TokenTTL  time.Duration
	Log       *zap.Logger
}

type authResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      model.User `json:"user"`
}

func (h *AuthHandler) login(c echo.Context, in model.LoginRequest) error {
	res, err := h.API.Login(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	at, err := utils.NewSessionToken(h.JWTSecret, res.User, res.Token, h.TokenTTL)
	if err != nil {
		h.Log.Error("issue session token", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, authResponse{Token: at.Token, ExpiresAt: at.Exp, User: res.User})
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var in model.LoginRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	return h.login(c, in)
}

// Register handles POST /v1/auth/register: the account is created and the
// new user is logged in straight away.
func (h *AuthHandler) Register(c echo.Context) error {
	var in model.RegisterRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	if err := h.API.Register(c.Request().Context(), in); err != nil {
		return fail(c, err)
	}
	return h.login(c, model.LoginRequest{Email: in.Email, Password: in.Password})
}

// Me returns the caller's identity after checking that the backend still
// accepts their token.
func (h *AuthHandler) Me(c echo.Context) error {
	cl := middleware.Claims(c)
	if err := h.API.VerifyToken(middleware.BackendContext(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":         cl.Subject,
		"email":      cl.Email,
		"name":       cl.Name,
		"role":       cl.Role,
		"expires_at": cl.ExpiresAt.Time,
	})
}
