package server

import (
	"errors"
	"fmt"
	"net/http"

	"petcare15/internal/admin"
	"petcare15/internal/metrics"
	"petcare15/pkg/types"
)

type loginForm struct {
	Password string `form:"password"`
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form payload", http.StatusBadRequest)
		return
	}

	var login = new(loginForm)
	if err := decoder.Decode(login, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode login form")
		http.Error(w, "Invalid form payload", http.StatusBadRequest)
		return
	}

	token, err := s.guard.Login(login.Password)
	if err != nil {
		var lockErr *admin.LockoutError
		switch {
		case errors.As(err, &lockErr) && lockErr.Started:
			metrics.RecordLogin(metrics.LoginLockout)
			s.logger.WithField("until", lockErr.Until).Warn("admin login locked out")
			http.Error(w, fmt.Sprintf("Too many failed attempts. Locked out for %d minutes.", int(s.guard.LockoutDuration().Minutes())), http.StatusForbidden)
		case errors.As(err, &lockErr):
			metrics.RecordLogin(metrics.LoginLocked)
			http.Error(w, "Too many failed attempts. Try again later.", http.StatusForbidden)
		case errors.Is(err, types.ErrIncorrectPassword):
			metrics.RecordLogin(metrics.LoginFailure)
			http.Error(w, "Incorrect password", http.StatusUnauthorized)
		default:
			metrics.RecordLogin(metrics.LoginErrored)
			s.logger.WithError(err).Error("admin login failed")
			http.Error(w, "Server error", http.StatusInternalServerError)
		}
		return
	}

	metrics.RecordLogin(metrics.LoginSuccess)
	s.logger.Info("admin logged in")

	s.guard.SetSessionCookie(w, token)
	http.Redirect(w, r, s.config.AdminRedirectPath, http.StatusFound)
}

func (s *Service) handleGetCheck(w http.ResponseWriter, r *http.Request) {
	if !s.guard.CheckRequest(r) {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(http.StatusText(http.StatusOK)))
}

func (s *Service) handlePostLogout(w http.ResponseWriter, r *http.Request) {
	s.guard.Logout(w)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(http.StatusText(http.StatusOK)))
}
