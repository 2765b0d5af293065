package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospital-portal-api/internal/auth"
	"hospital-portal-api/internal/model"
)

const refreshTokenTTL = 7 * 24 * time.Hour

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

// RegisterPatient is self-registration; only patient accounts can be
// created this way. Doctors are created by an admin.
func (h *Handler) RegisterPatient(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "all fields required")
		return
	}
	if len(req.Password) < 8 {
		badRequest(c, "password too short")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.storeError(c, err)
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         model.RolePatient,
		Fullname:     req.Fullname,
		Email:        req.Email,
		Phone:        req.Phone,
	}

	if err := h.store.CreatePatient(c.Request.Context(), u, uuid.New().String()); err != nil {
		// unique violation = taken username, but don't reveal that
		c.JSON(http.StatusConflict, gin.H{"error": "registration failed"})
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": u.ID, "token": tok})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password required")
		return
	}

	// blacklisted accounts come back as not found
	u, err := h.store.UserByUsername(c.Request.Context(), req.Username)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		h.storeError(c, err)
		return
	}

	rawRefresh, tokenHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.storeError(c, err)
		return
	}
	if _, err := h.store.CreateRefreshToken(c.Request.Context(), u.ID, tokenHash, time.Now().Add(refreshTokenTTL)); err != nil {
		h.storeError(c, err)
		return
	}

	c.SetCookie("access_token", tok, int(15*time.Minute/time.Second), "/", "", false, true)
	c.SetCookie("refresh_token", rawRefresh, int(refreshTokenTTL/time.Second), "/api/v1/auth", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"user_id": u.ID,
		"name":    u.Fullname,
		"role":    u.Role,
		"token":   tok,
	})
}

// Refresh rotates the refresh token and issues a fresh access token.
func (h *Handler) Refresh(c *gin.Context) {
	raw, err := c.Cookie("refresh_token")
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no refresh token"})
		return
	}

	rt, err := h.store.RefreshTokenByHash(c.Request.Context(), auth.HashRefreshToken(raw))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	u, err := h.store.UserByID(c.Request.Context(), rt.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.storeError(c, err)
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(c.Request.Context(), rt.ID, newID, u.ID, newHash, time.Now().Add(refreshTokenTTL)); err != nil {
		h.storeError(c, err)
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.SetCookie("access_token", tok, int(15*time.Minute/time.Second), "/", "", false, true)
	c.SetCookie("refresh_token", newRaw, int(refreshTokenTTL/time.Second), "/api/v1/auth", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

// Logout revokes every live refresh token the caller holds.
func (h *Handler) Logout(c *gin.Context) {
	raw, err := c.Cookie("refresh_token")
	if err == nil && raw != "" {
		if rt, err := h.store.RefreshTokenByHash(c.Request.Context(), auth.HashRefreshToken(raw)); err == nil {
			_ = h.store.RevokeAllRefreshTokens(c.Request.Context(), rt.UserID)
		}
	}
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/api/v1/auth", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
