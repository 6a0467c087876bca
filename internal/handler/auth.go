package handler

import (
	"net/http"
	"strings"

	"github.com/wanderlust/web/internal/model"
	"github.com/wanderlust/web/internal/service"
	"github.com/wanderlust/web/internal/session"
)

// AuthHandler handles signup, login, and logout
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	renderer *Renderer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, sessions *session.Manager, renderer *Renderer) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		renderer: renderer,
	}
}

// SignupForm handles GET /signup
func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	data := newPageData(w, r, h.sessions, "Signup", nil)
	h.renderer.Render(w, http.StatusOK, "users/signup", data)
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Error(w, r, h.sessions, model.NewInternalError())
		return
	}

	req := &model.SignupRequest{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}

	if fields := req.Validate(); len(fields) > 0 {
		h.sessions.Error(w, r, model.NewValidationError(fields).Message)
		http.Redirect(w, r, "/signup", http.StatusFound)
		return
	}

	user, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		// Signup problems come back to the form as a flash, not an error page
		h.sessions.Error(w, r, err.Error())
		http.Redirect(w, r, "/signup", http.StatusFound)
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID); err != nil {
		h.renderer.Error(w, r, h.sessions, model.NewInternalError())
		return
	}

	h.sessions.Success(w, r, "Welcome to WanderLust!")
	http.Redirect(w, r, "/listings", http.StatusFound)
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	data := newPageData(w, r, h.sessions, "Login", nil)
	h.renderer.Render(w, http.StatusOK, "users/login", data)
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Error(w, r, h.sessions, model.NewInternalError())
		return
	}

	req := &model.LoginRequest{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}

	user, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.sessions.Error(w, r, err.Error())
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID); err != nil {
		h.renderer.Error(w, r, h.sessions, model.NewInternalError())
		return
	}

	h.sessions.Success(w, r, "Welcome back to WanderLust!")

	// Send the user back to wherever login interrupted them
	redirect := h.sessions.PopRedirectURL(w, r)
	if redirect == "" {
		redirect = "/listings"
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		h.renderer.Error(w, r, h.sessions, model.NewInternalError())
		return
	}

	h.sessions.Success(w, r, "Logged out successfully")
	http.Redirect(w, r, "/listings", http.StatusFound)
}
