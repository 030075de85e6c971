// Package httpapi exposes the login engine over HTTP with JSON bodies.
// The two-stage login flow keeps its session token in an HttpOnly cookie;
// fully authenticated clients additionally receive a short-lived JWT for
// the protected API endpoints.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/banksim/internal/logging"
	"github.com/dmitrijs2005/banksim/internal/server/config"
)

const SessionCookieName = "session_token"

type Server struct {
	engine              LoginEngine
	logger              logging.Logger
	secretKey           []byte
	accessTokenValidity time.Duration
	sessionValidity     time.Duration
	router              *mux.Router
}

func NewServer(engine LoginEngine, logger logging.Logger, cfg *config.Config) *Server {
	s := &Server{
		engine:              engine,
		logger:              logger,
		secretKey:           []byte(cfg.SecretKey),
		accessTokenValidity: cfg.AccessTokenValidityDuration,
		sessionValidity:     cfg.SessionValidityDuration,
		router:              mux.NewRouter(),
	}
	s.mountRoutes()
	return s
}

func (s *Server) mountRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login/password", s.handlePasswordLogin).Methods(http.MethodPost)
	api.HandleFunc("/login/otac", s.handleOtacLogin).Methods(http.MethodPost)
	api.HandleFunc("/session", s.handleSession).Methods(http.MethodGet)
	api.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	api.Handle("/account", s.requireAccessToken(http.HandlerFunc(s.handleAccount))).Methods(http.MethodGet)
}

// Handler returns the router with security headers applied to API paths.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Referrer-Policy", "no-referrer")
		s.router.ServeHTTP(w, r)
	})
}
