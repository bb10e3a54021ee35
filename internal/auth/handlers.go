package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/FlightLedger/FL-Backend/internal/logger"
	"github.com/FlightLedger/FL-Backend/internal/web"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Handler serves the register/login/logout pages. Dependencies are
// injected at startup; there is no ambient state.
type Handler struct {
	DB       *gorm.DB
	Sessions *SessionManager
	Pages    *web.Renderer
}

type formPage struct {
	Error string
}

// RegisterInput is the schema-checked shape of a registration form.
// All three fields are required.
type RegisterInput struct {
	Username string
	Password string
	Name     string
}

func parseRegisterInput(r *http.Request) (RegisterInput, bool) {
	in := RegisterInput{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
		Name:     strings.TrimSpace(r.PostFormValue("name")),
	}
	return in, in.Username != "" && in.Password != "" && in.Name != ""
}

func (h *Handler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	h.Pages.Render(w, "register.html", formPage{})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	in, ok := parseRegisterInput(r)
	if !ok {
		h.Pages.Render(w, "register.html", formPage{Error: "All fields required"})
		return
	}

	var existing User
	err := h.DB.First(&existing, "username = ?", in.Username).Error
	if err == nil {
		h.Pages.Render(w, "register.html", formPage{Error: "Username exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.L.Error().Err(err).Msg("register: user lookup failed")
		h.Pages.Render(w, "register.html", formPage{Error: "Something went wrong, try again"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Pages.Render(w, "register.html", formPage{Error: "Something went wrong, try again"})
		return
	}

	user := User{
		UserID:         NewUserID(),
		Username:       in.Username,
		HashedPassword: string(hashed),
		Name:           in.Name,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		logger.L.Error().Err(err).Msg("register: insert failed")
		h.Pages.Render(w, "register.html", formPage{Error: "Something went wrong, try again"})
		return
	}

	// No auto-login: hand the user to the login page.
	h.Pages.Render(w, "login.html", formPage{Error: "Registered! Please login."})
}

func (h *Handler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.Pages.Render(w, "login.html", formPage{})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	// Unknown user and wrong password fall through to the same generic
	// message so the two are indistinguishable to a caller.
	var user User
	err := h.DB.First(&user, "username = ?", username).Error
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		h.Pages.Render(w, "login.html", formPage{Error: "Invalid credentials"})
		return
	}

	session, err := h.Sessions.Create(user.UserID, user.Name)
	if err != nil {
		logger.L.Error().Err(err).Msg("login: session create failed")
		h.Pages.Render(w, "login.html", formPage{Error: "Something went wrong, try again"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    session.SessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/list", http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		_ = h.Sessions.Destroy(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:   "session_id",
		Value:  "",
		MaxAge: -1,
		Path:   "/",
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}
