package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dcportal/internal/auth"
	"dcportal/internal/user"
)

// AuthHandler serves login/logout.
type AuthHandler struct {
	users         *user.Repository
	jwtIssuer     string
	jwtSigningKey string
	accessTTL     time.Duration
}

// NewAuthHandler creates the handler.
func NewAuthHandler(users *user.Repository, issuer, signingKey string, accessTTL time.Duration) *AuthHandler {
	return &AuthHandler{users: users, jwtIssuer: issuer, jwtSigningKey: signingKey, accessTTL: accessTTL}
}

// Register mounts the auth routes.
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
	rg.POST("/logout", h.logout)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	u, err := h.users.GetByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, exp, err := auth.Issue(u.ID, u.Role, h.jwtIssuer, h.jwtSigningKey, h.accessTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	_ = h.users.TouchLastLogin(c.Request.Context(), u.ID, time.Now().UTC())

	resp := gin.H{
		"message":    "login successful",
		"token":      token,
		"expires_at": exp.Unix(),
		"user_id":    u.ID,
		"user_name":  u.Name,
		"email":      u.Email,
		"role":       u.Role,
	}
	if u.Role == user.RoleStudent && u.Year != nil {
		resp["year"] = *u.Year
	}
	c.JSON(http.StatusOK, resp)
}

// logout is a no-op for stateless bearer tokens; the client discards its token.
func (h *AuthHandler) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
