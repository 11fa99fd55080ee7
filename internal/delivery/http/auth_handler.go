package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lockchat/config"
	"lockchat/internal/user"
	"lockchat/pkg/logger"
)

type AuthHandler struct {
	usecase user.UserUsecase
	cfg     *config.Config
	logger  logger.Logger
}

func NewAuthHandler(usecase user.UserUsecase, cfg *config.Config, logger logger.Logger) *AuthHandler {
	return &AuthHandler{usecase: usecase, cfg: cfg, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	result, err := h.usecase.Register(c.Request.Context(), user.RegisterCommand{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusOK, gin.H{"user": result.User})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	result, err := h.usecase.Login(c.Request.Context(), user.LoginCommand{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	c.JSON(http.StatusOK, gin.H{"user": result.User})
}

func (h *AuthHandler) Me(c *gin.Context) {
	viewer := viewerFrom(c)

	profile, err := h.usecase.GetProfile(c.Request.Context(), viewer.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := h.cfg.JWT.ExpiredIn * 3600
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.cfg.Cookie.Name, token, maxAge, "/", "", h.cfg.Cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.cfg.Cookie.Name, "", -1, "/", "", h.cfg.Cookie.Secure, true)
}
