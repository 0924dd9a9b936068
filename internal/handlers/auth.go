package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"voyago/internal/auth"
	"voyago/internal/forms"
	"voyago/internal/models"
)

// LoginViewModel holds data for the login page.
type LoginViewModel struct {
	User  *models.User
	Error string
}

// LoginForm renders the login page. It also serves the admin login
// path that protected admin pages redirect to.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	// If already logged in, go straight to the package listing
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := h.db.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/bookings", http.StatusFound)
			return
		}
	}
	h.render(w, "login.html", LoginViewModel{})
}

// Login handles the login form submission.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "login.html", LoginViewModel{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.render(w, "login.html", LoginViewModel{Error: "Username and password are required"})
		return
	}

	user, err := h.db.GetUserByUsername(username)
	if err != nil || !auth.CheckPassword(password, user.PasswordHash) {
		h.render(w, "login.html", LoginViewModel{Error: "Invalid username or password"})
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		log.Printf("Failed to generate session token: %v", err)
		h.render(w, "login.html", LoginViewModel{Error: "An error occurred. Please try again."})
		return
	}

	expiresAt := time.Now().Add(SessionDuration)
	if err := h.db.CreateSession(token, user.ID, expiresAt); err != nil {
		log.Printf("Failed to create session: %v", err)
		h.render(w, "login.html", LoginViewModel{Error: "An error occurred. Please try again."})
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/bookings", http.StatusFound)
}

// Logout handles user logout.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.db.DeleteSession(cookie.Value); err != nil {
			log.Printf("Failed to delete session: %v", err)
		}
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// RegisterViewModel holds data for the registration page.
type RegisterViewModel struct {
	User     *models.User
	Username string
	Errors   *forms.Result
}

// RegisterForm renders the registration page.
func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register.html", RegisterViewModel{Errors: &forms.Result{}})
}

// Register handles the registration form submission. A successful
// registration creates a regular user and redirects to the login page
// without starting a session.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password1")
	confirmation := r.FormValue("password2")

	result := forms.ValidateRegistration(username, password, confirmation)
	if result.Valid() {
		if _, err := h.db.GetUserByUsername(username); err == nil {
			result.FieldErrors = map[string]string{"username": "Username is already taken"}
		}
	}
	if !result.Valid() {
		h.render(w, "register.html", RegisterViewModel{Username: username, Errors: result})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := h.db.CreateUser(username, hash, false); err != nil {
		log.Printf("Failed to create user: %v", err)
		result.FieldErrors = map[string]string{"username": "Username is already taken"}
		h.render(w, "register.html", RegisterViewModel{Username: username, Errors: result})
		return
	}

	http.Redirect(w, r, LoginPath, http.StatusFound)
}
