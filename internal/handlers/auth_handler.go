package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Heshmert/P2-31499269/internal/config"
	"github.com/Heshmert/P2-31499269/internal/logger"
	"github.com/Heshmert/P2-31499269/internal/middleware"
	"github.com/Heshmert/P2-31499269/internal/models"
	"github.com/Heshmert/P2-31499269/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookieName = "oauth_state"
	googleUserInfoURL    = "https://www.googleapis.com/oauth2/v3/userinfo"
)

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type RegisterForm struct {
	Username string `form:"username" validate:"required,min=3,max=50"`
	Password string `form:"password" validate:"required,min=6"`
}

type AuthHandler struct {
	*BaseHandler
	auth         services.AuthService
	googleConfig *oauth2.Config
	secureCookie bool
}

func NewAuthHandler(base *BaseHandler, auth services.AuthService, cfg *config.Config) *AuthHandler {
	googleConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.CallbackURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}
	return &AuthHandler{
		BaseHandler:  base,
		auth:         auth,
		googleConfig: googleConfig,
		secureCookie: cfg.Server.Env == "production",
	}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.TemplateData(c, gin.H{
		"Title": "Iniciar Sesión - Ciclexpress",
	}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := h.BindForm(c, &form); err != nil {
		h.Flash(c, flashError, "Usuario y contraseña son obligatorios.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.auth.LoginLocal(form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			logger.FromContext(c.Request.Context()).Error("login failed",
				"username", form.Username, "error", err)
		}
		h.Flash(c, flashError, "Usuario o contraseña incorrectos.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	h.establishSession(c, user)
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", h.TemplateData(c, gin.H{
		"Title": "Registro - Ciclexpress",
	}))
}

// Register creates a local account. The route is admin-gated, so the
// session in play belongs to the admin and is left untouched.
func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := h.BindForm(c, &form); err != nil {
		h.FlashValidation(c, err)
		c.Redirect(http.StatusFound, "/register")
		return
	}

	user, err := h.auth.Register(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			h.Flash(c, flashError, "El nombre de usuario ya está en uso.")
		} else {
			logger.FromContext(c.Request.Context()).Error("registration failed",
				"username", form.Username, "error", err)
			h.Flash(c, flashError, "No se pudo completar el registro. Inténtalo de nuevo.")
		}
		c.Redirect(http.StatusFound, "/register")
		return
	}

	h.Flash(c, flashSuccess, fmt.Sprintf("Usuario %s creado correctamente.", user.Username))
	c.Redirect(http.StatusFound, "/admin")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionUserIDKey)
	session.AddFlash("Has cerrado sesión.", flashSuccess)
	if err := session.Save(); err != nil {
		logger.FromContext(c.Request.Context()).Error("failed to clear session", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// GoogleLogin starts the OAuth flow, parking a random state value in a
// short-lived cookie to pair with the callback.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := generateOAuthState()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, state, 600, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, h.googleConfig.AuthCodeURL(state))
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if !h.verifyOAuthState(c) {
		h.clearStateCookie(c)
		h.Flash(c, flashError, "La autenticación con Google falló. Inténtalo de nuevo.")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	h.clearStateCookie(c)

	code := c.Query("code")
	if code == "" {
		h.Flash(c, flashError, "La autenticación con Google fue cancelada.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	token, err := h.googleConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("google token exchange failed", "error", err)
		h.Flash(c, flashError, "La autenticación con Google falló. Inténtalo de nuevo.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	profile, err := h.fetchGoogleProfile(c, token)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("google userinfo fetch failed", "error", err)
		h.Flash(c, flashError, "No se pudo obtener tu perfil de Google. Inténtalo de nuevo.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.auth.LoginGoogle(*profile)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("google sign-in failed",
			"sub", profile.Sub, "error", err)
		h.Flash(c, flashError, "No se pudo iniciar sesión con Google. Inténtalo de nuevo.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	h.establishSession(c, user)
}

type googleUserInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *AuthHandler) fetchGoogleProfile(c *gin.Context, token *oauth2.Token) (*services.GoogleProfile, error) {
	client := h.googleConfig.Client(c.Request.Context(), token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &services.GoogleProfile{
		Sub:         info.Sub,
		Email:       info.Email,
		DisplayName: info.Name,
	}, nil
}

// establishSession stores the user id and sends admins to their
// dashboard, everyone else home.
func (h *AuthHandler) establishSession(c *gin.Context, user *models.User) {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserIDKey, user.ID)
	if err := session.Save(); err != nil {
		logger.FromContext(c.Request.Context()).Error("failed to save session", "error", err)
		h.Flash(c, flashError, "No se pudo iniciar la sesión. Inténtalo de nuevo.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if user.IsAdmin() {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func generateOAuthState() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func (h *AuthHandler) verifyOAuthState(c *gin.Context) bool {
	cookie, err := c.Cookie(oauthStateCookieName)
	if err != nil || cookie == "" {
		return false
	}
	return cookie == c.Query("state")
}

func (h *AuthHandler) clearStateCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}
