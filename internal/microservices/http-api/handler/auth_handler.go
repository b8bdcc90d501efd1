package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/internal/logging"
	"moviehub/internal/media"
	"moviehub/internal/metrics"
	"moviehub/internal/microservices/http-api/dto"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/service"
	"moviehub/internal/session"
)

// Messages flashed by the account pages.
const (
	MsgRegistered         = "You were successfully registered."
	MsgWelcomeBack        = "Welcome back."
	MsgLoggedOut          = "You have successfully logged out"
	MsgCredentialsChanged = "You successfully changed your credentials"
)

type AuthHandler struct {
	authService service.AuthService
	genres      service.GenreService
	sessions    *session.Manager
	limiter     *middleware.RateLimiter
	pages       *Pages
}

// NewAuthHandler wires the account pages. limiter may be nil to disable
// login throttling.
func NewAuthHandler(
	authService service.AuthService,
	genres service.GenreService,
	sessions *session.Manager,
	limiter *middleware.RateLimiter,
	pages *Pages,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		genres:      genres,
		sessions:    sessions,
		limiter:     limiter,
		pages:       pages,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/register/", h.RegisterPage)
	rg.POST("/register/", h.Register)

	rg.GET("/login/", h.LoginPage)
	if h.limiter != nil {
		rg.POST("/login/", h.limiter.Middleware(h.TooManyAttempts), h.Login)
	} else {
		rg.POST("/login/", h.Login)
	}

	rg.GET("/logout/", h.Logout)
	rg.POST("/logout/", h.Logout)

	account := rg.Group("", middleware.RequireLogin())
	{
		account.GET("/change-user/", h.ChangeUserPage)
		account.POST("/change-user/", h.ChangeUser)
	}

	rg.GET("/become_user/", h.BecomeUser)
	rg.GET("/become-user/", h.BecomeUser)
}

func (h *AuthHandler) renderRegister(c *gin.Context, form dto.RegisterForm, fe *dto.FormErrors) {
	h.pages.Render(c, http.StatusOK, "users/register.html", gin.H{
		"title":  "Register",
		"form":   form,
		"errors": fe,
	})
}

// RegisterPage handles GET /register/
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	h.renderRegister(c, dto.RegisterForm{}, dto.NewFormErrors())
}

// Register handles POST /register/. A new account is logged in right away.
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	fe := dto.NewFormErrors()
	if err := bindForm(c, &form, "password1", "password2"); err != nil {
		fe = dto.FromBinding(err)
	}

	upload, file, err := formUpload(c, "image")
	if err != nil {
		if !media.IsValidationError(err) {
			err = media.ErrNotAnImage
		}
		fe.Add("image", err.Error())
	}
	if file != nil {
		defer file.Close()
	}

	if !fe.Empty() {
		h.renderRegister(c, form, fe)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.authService.Register(ctx, service.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password1,
		Image:    upload,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameInUse):
			fe.Add("username", dto.MsgUsernameTaken)
		case errors.Is(err, service.ErrEmailInUse):
			fe.Add("email", dto.MsgEmailTaken)
		case media.IsValidationError(err):
			fe.Add("image", err.Error())
		default:
			h.pages.ServerError(c, err)
			return
		}
		h.renderRegister(c, form, fe)
		return
	}

	sess, err := session.Current(c)
	if err != nil {
		h.pages.ServerError(c, err)
		return
	}
	sess.AddFlash(session.LevelSuccess, MsgRegistered)
	if err := h.sessions.Login(c, sess, user.ID); err != nil {
		h.pages.ServerError(c, err)
		return
	}
	metrics.RecordAuthEvent("register")
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, form dto.LoginForm, fe *dto.FormErrors) {
	form.Password = ""
	h.pages.Render(c, status, "users/login.html", gin.H{
		"title":  "Log in",
		"form":   form,
		"errors": fe,
	})
}

// LoginPage handles GET /login/
func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.renderLogin(c, http.StatusOK, dto.LoginForm{Next: c.Query("next")}, dto.NewFormErrors())
}

// Login handles POST /login/. The username field carries the email address.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := bindForm(c, &form, "password"); err != nil {
		h.renderLogin(c, http.StatusOK, form, dto.FromBinding(err))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.authService.Authenticate(ctx, service.Credential{
		Email:    form.Username,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.RecordAuthEvent("login_failed")
			fe := dto.NewFormErrors()
			fe.AddNonField(dto.MsgInvalidLogin)
			h.renderLogin(c, http.StatusOK, form, fe)
			return
		}
		h.pages.ServerError(c, err)
		return
	}

	sess, err := session.Current(c)
	if err != nil {
		h.pages.ServerError(c, err)
		return
	}
	sess.AddFlash(session.LevelSuccess, MsgWelcomeBack)
	if err := h.sessions.Login(c, sess, user.ID); err != nil {
		h.pages.ServerError(c, err)
		return
	}
	metrics.RecordAuthEvent("login")
	c.Redirect(http.StatusFound, middleware.SafeNext(form.Next, "/"))
}

// TooManyAttempts answers throttled login posts with the form and a 429.
func (h *AuthHandler) TooManyAttempts(c *gin.Context) {
	var form dto.LoginForm
	_ = bindForm(c, &form, "password")
	fe := dto.NewFormErrors()
	fe.AddNonField(dto.MsgTooManyAttempts)
	h.renderLogin(c, http.StatusTooManyRequests, form, fe)
}

// Logout handles GET and POST /logout/. Anonymous visitors get the same
// message, and session store failures never stop the redirect.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, err := session.Current(c)
	if err != nil {
		h.pages.ServerError(c, err)
		return
	}
	fresh := h.sessions.Logout(c, sess)
	if sess.IsAuthenticated() {
		metrics.RecordAuthEvent("logout")
	}
	fresh.AddFlash(session.LevelInfo, MsgLoggedOut)
	if err := h.sessions.Save(c, fresh); err != nil {
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("could not save session after logout")
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderChangeUser(c *gin.Context, form dto.ChangeUserForm, fe *dto.FormErrors) {
	h.pages.Render(c, http.StatusOK, "users/change_user.html", gin.H{
		"title":  "Change credentials",
		"form":   form,
		"errors": fe,
	})
}

// ChangeUserPage handles GET /change-user/
func (h *AuthHandler) ChangeUserPage(c *gin.Context) {
	user := middleware.CurrentUser(c)
	h.renderChangeUser(c, dto.ChangeUserForm{Username: user.Username, Email: user.Email}, dto.NewFormErrors())
}

// ChangeUser handles POST /change-user/
func (h *AuthHandler) ChangeUser(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var form dto.ChangeUserForm
	fe := dto.NewFormErrors()
	if err := bindForm(c, &form); err != nil {
		fe = dto.FromBinding(err)
	}

	upload, file, err := formUpload(c, "image")
	if err != nil {
		if !media.IsValidationError(err) {
			err = media.ErrNotAnImage
		}
		fe.Add("image", err.Error())
	}
	if file != nil {
		defer file.Close()
	}

	if !fe.Empty() {
		h.renderChangeUser(c, form, fe)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.authService.UpdateProfile(ctx, user.ID, service.ProfileInput{
		Username: form.Username,
		Email:    form.Email,
		Image:    upload,
	}); err != nil {
		switch {
		case errors.Is(err, service.ErrNameInUse):
			fe.Add("username", dto.MsgUsernameTaken)
		case errors.Is(err, service.ErrEmailInUse):
			fe.Add("email", dto.MsgEmailTaken)
		case media.IsValidationError(err):
			fe.Add("image", err.Error())
		default:
			h.pages.ServerError(c, err)
			return
		}
		h.renderChangeUser(c, form, fe)
		return
	}
	h.pages.Redirect(c, "/", session.LevelSuccess, MsgCredentialsChanged)
}

// BecomeUser handles GET /become_user/, where login-only pages send
// anonymous visitors.
func (h *AuthHandler) BecomeUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	genres, err := h.genres.ListUsed(ctx)
	if err != nil {
		h.pages.ServerError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, "users/become_user.html", gin.H{
		"title":  "Become a user",
		"next":   middleware.SafeNext(c.Query("next"), ""),
		"genres": genres,
	})
}
