package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/davancensm/Case36-TercerEntrega/internal/session"
)

type RouterConfig struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	Sessions       session.Store
	Codec          *session.CookieCodec
	WebsocketPath  string
	Websocket      http.HandlerFunc
	UploadDir      string
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware(cfg.Sessions, cfg.Codec))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", cfg.AuthHandler.LoginPage)
	r.Get("/signup", cfg.AuthHandler.SignupPage)
	r.Post("/signup", cfg.AuthHandler.Signup)
	r.Post("/login", cfg.AuthHandler.Login)
	r.Get("/logout", cfg.AuthHandler.Logout)
	r.Get("/req", cfg.AuthHandler.SessionInfo)

	r.Route("/api", func(r chi.Router) {
		// The timeout middleware stays off the page routes so the
		// websocket upgrade below is not affected either.
		r.Use(middleware.Timeout(cfg.RequestTimeout))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", cfg.ProductHandler.Get)
			r.Get("/{id}", cfg.ProductHandler.GetByID)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Post("/", cfg.CartHandler.Create)
			r.Get("/{id}", cfg.CartHandler.Get)
			r.Post("/{id}/products", cfg.CartHandler.AddItem)
			r.Delete("/{id}/products/{productID}", cfg.CartHandler.RemoveItem)
		})
	})

	if cfg.Websocket != nil {
		r.Get(cfg.WebsocketPath, cfg.Websocket)
	}

	if cfg.UploadDir != "" {
		fs := http.StripPrefix("/img/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get("/img/*", fs.ServeHTTP)
	}

	return r
}
