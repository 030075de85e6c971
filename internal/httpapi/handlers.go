package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/banksim/internal/common"
	"github.com/dmitrijs2005/banksim/internal/server/auth"
	"github.com/dmitrijs2005/banksim/internal/server/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
}

func serverErr(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_server_error"})
}

// writeEngineError maps engine errors onto status codes. Anything that is
// not an authorization failure is reported as a server error so outages and
// integrity faults never masquerade as bad credentials.
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrorUnauthorized) {
		unauthorized(w)
		return
	}
	s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	serverErr(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /api/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid_json")
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		badRequest(w, "password_required")
		return
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		badRequest(w, "phone_number_required")
		return
	}

	account := &models.Account{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address1:    req.Address1,
		Address2:    req.Address2,
		Postcode:    req.Postcode,
		County:      req.County,
	}
	id, err := s.engine.Register(r.Context(), account, req.Password)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, RegisterResponse{AccountID: id})
}

// POST /api/login/password
func (s *Server) handlePasswordLogin(w http.ResponseWriter, r *http.Request) {
	var req PasswordLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid_json")
		return
	}

	token, err := s.engine.AttemptPasswordLogin(r.Context(), req.AccountID, req.Password)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	s.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, LoginResponse{Level: models.LevelPasswordVerified.String()})
}

// POST /api/login/otac
func (s *Server) handleOtacLogin(w http.ResponseWriter, r *http.Request) {
	var req OtacLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid_json")
		return
	}

	token := sessionToken(r)
	if token == "" {
		unauthorized(w)
		return
	}

	newToken, err := s.engine.AttemptOtacLogin(r.Context(), token, req.Code)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	_, accountID, err := s.engine.SessionState(r.Context(), newToken)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	accessToken, err := auth.GenerateToken(accountID, s.secretKey, s.accessTokenValidity)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	s.setSessionCookie(w, newToken)
	writeJSON(w, http.StatusOK, LoginResponse{
		Level:       models.LevelFullyAuthenticated.String(),
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(s.accessTokenValidity),
	})
}

// GET /api/session
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	level, accountID, err := s.engine.SessionState(r.Context(), sessionToken(r))
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	resp := SessionResponse{Level: level.String()}
	if level != models.LevelUnauthenticated {
		resp.AccountID = accountID
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := s.engine.Logout(r.Context(), token); err != nil {
			s.writeEngineError(w, r, err)
			return
		}
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

// GET /api/account (requires a valid access JWT)
func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	accountID := accountIDFromContext(r.Context())
	if accountID == 0 {
		unauthorized(w)
		return
	}
	writeJSON(w, http.StatusOK, AccountResponse{AccountID: accountID})
}
