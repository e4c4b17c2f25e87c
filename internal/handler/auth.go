package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/middleware"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/utils"
)

// AuthHandler serves the auth stub: a fixed identity for anonymous callers
// and a single demo credential that can be exchanged for an access token.
type AuthHandler struct {
	Cfg      config.Config
	demoHash string
}

// NewAuthHandler hashes the configured demo password once so that Login
// compares against a bcrypt hash like a real user store would.
func NewAuthHandler(cfg config.Config) (*AuthHandler, error) {
	hash, err := utils.HashPassword(cfg.DemoPassword, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{Cfg: cfg, demoHash: hash}, nil
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Me returns the caller's identity.  Without a bearer token the demo
// identity is returned; a bearer token must be valid.
func (h *AuthHandler) Me(c echo.Context) error {
	raw, ok := middleware.BearerToken(c)
	if !ok {
		return c.JSON(http.StatusOK, model.Identity{UserID: h.Cfg.DemoUser, Role: h.Cfg.DemoRole})
	}
	claims, err := utils.ParseAccessToken(h.Cfg.JWTSecret, raw)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	return c.JSON(http.StatusOK, model.Identity{UserID: claims.Subject, Role: claims.Role})
}

// Login checks the demo credential and issues an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}
	if req.Username != h.Cfg.DemoUser || !utils.VerifyPassword(h.demoHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, h.Cfg.DemoUser, h.Cfg.DemoRole, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token issue failed"})
	}
	return c.JSON(http.StatusOK, loginResp{AccessToken: tok.Token, TokenType: "Bearer", ExpiresAt: tok.Exp})
}
