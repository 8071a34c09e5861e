package httpapi

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/davancensm/Case36-TercerEntrega/internal/auth"
	"github.com/davancensm/Case36-TercerEntrega/internal/session"
	"github.com/davancensm/Case36-TercerEntrega/internal/upload"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const maxUploadMemory = 32 << 20 // 32MB

type AuthHandler struct {
	auth     *auth.Service
	sessions session.Store
	codec    *session.CookieCodec
	uploads  *upload.Saver
	log      *logrus.Logger
}

func NewAuthHandler(authSvc *auth.Service, sessions session.Store, codec *session.CookieCodec, uploads *upload.Saver, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     authSvc,
		sessions: sessions,
		codec:    codec,
		uploads:  uploads,
		log:      log,
	}
}

// LoginPage renders the login form, or redirects authenticated users
// straight to the catalog.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/api/products", http.StatusFound)
		return
	}
	h.renderPage(w, "login.html")
}

func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	if sessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/api/products", http.StatusFound)
		return
	}
	h.renderPage(w, "signup.html")
}

// Signup registers the user from the multipart form, logs them in and
// redirects to the catalog. Any failure redirects back to /signup
// with no structured message.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.log.Warnf("signup form parse failed: %v", err)
		http.Redirect(w, r, "/signup", http.StatusFound)
		return
	}

	imageURL := ""
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		imageURL, err = h.uploads.Save(file, header)
		if err != nil {
			h.log.Errorf("profile image upload failed: %v", err)
			imageURL = ""
		}
	}

	age, _ := strconv.Atoi(r.FormValue("age"))
	req := auth.RegisterRequest{
		Username:        r.FormValue("username"),
		Password:        r.FormValue("password"),
		Name:            r.FormValue("name"),
		Address:         r.FormValue("address"),
		Age:             age,
		Phone:           r.FormValue("phone"),
		IsAdmin:         r.FormValue("isAdmin") == "true",
		ProfileImageURL: imageURL,
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.log.Warnf("signup rejected for %q: %v", req.Username, err)
		http.Redirect(w, r, "/signup", http.StatusFound)
		return
	}

	h.establishSession(w, r, user.ID, user.Username)
	http.Redirect(w, r, "/api/products", http.StatusFound)
}

// Login authenticates the form credentials. Failure redirects to the
// login page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	user, err := h.auth.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		h.log.Warnf("login rejected for %q: %v", r.FormValue("username"), err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.establishSession(w, r, user.ID, user.Username)
	http.Redirect(w, r, "/api/products", http.StatusFound)
}

// Logout invalidates the session. A request without a session is a
// no-op; either way the client lands on the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFromContext(r.Context()); sess != nil {
		if err := h.sessions.Destroy(r.Context(), sess.ID); err != nil {
			h.log.Errorf("session destroy failed: %v", err)
		}
	}
	h.codec.Clear(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// SessionInfo dumps the session identity as JSON.
func (h *AuthHandler) SessionInfo(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	respondJSON(w, http.StatusOK, sess)
}

func (h *AuthHandler) establishSession(w http.ResponseWriter, r *http.Request, userID, username string) {
	sess, err := h.sessions.Create(r.Context(), userID, username)
	if err != nil {
		h.log.Errorf("session create failed: %v", err)
		return
	}
	h.codec.Write(w, sess.ID)
}

func (h *AuthHandler) renderPage(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, nil); err != nil {
		h.log.Errorf("template %s failed: %v", name, err)
	}
}
