package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/dacha-booking/internal/logger"
    "github.com/iliyamo/dacha-booking/internal/utils"
)

// AuthHandler issues admin access tokens for the single back-office account.
type AuthHandler struct {
    Username     string
    PasswordHash string // bcrypt
    JWTSecret    string
    TTL          time.Duration
}

func NewAuthHandler(username, passwordHash, secret string, ttl time.Duration) *AuthHandler {
    return &AuthHandler{Username: username, PasswordHash: passwordHash, JWTSecret: secret, TTL: ttl}
}

type loginReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return detail(c, http.StatusBadRequest, "invalid body")
    }
    req.Username = strings.TrimSpace(req.Username)
    if req.Username == "" || req.Password == "" {
        return detail(c, http.StatusBadRequest, "username/password required")
    }
    log := logger.FromContext(c.Request().Context())
    if !utils.CheckAdmin(h.Username, h.PasswordHash, req.Username, req.Password) {
        log.Warn("admin login rejected", "username", req.Username)
        return detail(c, http.StatusUnauthorized, "invalid credentials")
    }

    access, err := utils.NewAccessToken(h.JWTSecret, req.Username, utils.RoleAdmin, h.TTL)
    if err != nil {
        log.Error("issue access token", "error", err)
        return detail(c, http.StatusInternalServerError, "issue access failed")
    }
    log.Info("admin logged in", "username", req.Username)
    return c.JSON(http.StatusOK, echo.Map{
        "access_token": access.Token,
        "token_type":   "Bearer",
        "expires_at":   access.Exp.UTC(),
    })
}
