package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vidshare/internal/app"
	"vidshare/internal/session"
)

type AuthHandler struct {
	authService *app.AuthService
	sessions    *session.Manager
	appName     string
}

type credentialsForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func NewAuthHandler(authService *app.AuthService, sessions *session.Manager, appName string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		appName:     appName,
	}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", h.pageData(c, nil))
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "username and password are required")
		return
	}

	_, err := h.authService.Register(app.RegisterInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			c.String(http.StatusBadRequest, "username and password are required")
		case errors.Is(err, app.ErrUsernameExists):
			c.String(http.StatusConflict, "user already exists")
		default:
			c.String(http.StatusInternalServerError, "register failed")
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.pageData(c, nil))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.authService.Authenticate(app.LoginInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrInvalidCredentials):
			c.String(http.StatusUnauthorized, "invalid username or password")
		default:
			c.String(http.StatusInternalServerError, "login failed")
		}
		return
	}

	if err := h.sessions.Issue(c.Request.Context(), c, user); err != nil {
		c.String(http.StatusInternalServerError, "login failed")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c.Request.Context(), c); err != nil {
		c.String(http.StatusInternalServerError, "logout failed")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) pageData(c *gin.Context, extra gin.H) gin.H {
	return pageData(c, h.appName, extra)
}
