package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techplug_back_end/internal/utils"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin checks the single admin account and returns a bearer token.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if !h.checkAdmin(req.Username, req.Password) {
		if h.Auditor != nil {
			utils.LogFailedAction(c, h.Auditor, h.Logger, utils.ActionLoginFailed, utils.ResourceAuth, req.Username, "invalid credentials")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(h.Admin.JWTSecret, h.Admin.Username, h.Admin.JWTTTL)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("username", h.Admin.Username)
	h.audit(c, utils.ActionLoginSuccess, utils.ResourceAuth, h.Admin.Username, nil)

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(h.Admin.JWTTTL.Seconds()),
		"role":      utils.RoleAdmin,
	})
}

func (h *Handler) checkAdmin(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.Admin.Username)) == 1
	if h.Admin.PasswordHash != "" {
		ok, err := utils.VerifyPassword(password, h.Admin.PasswordHash)
		if err != nil {
			h.Logger.Error("admin password hash is unusable", zap.Error(err))
			return false
		}
		return userOK && ok
	}
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.Admin.Password)) == 1
	return userOK && passOK
}
