package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const sessionCookie = "buggy_session"

type pageData struct {
	User       *User
	LoginError bool

	Popular        Model
	Model          Model
	Voted          bool
	ConfirmDelayMS int64

	Registered bool
	Error      string
}

func (s *Server) currentUser(r *http.Request) *User {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	u, ok := s.store.UserForSession(c.Value)
	if !ok {
		return nil
	}
	return &u
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages[page].Execute(w, data); err != nil {
		s.logger.Error("failed to render page", zap.String("page", page), zap.Error(err))
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home", pageData{
		User:       s.currentUser(r),
		LoginError: r.URL.Query().Get("error") != "",
		Popular:    s.store.Popular(),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	token, ok := s.store.Login(r.PostForm.Get("login"), r.PostForm.Get("password"))
	if !ok {
		s.logger.Debug("login rejected", zap.String("username", r.PostForm.Get("login")))
		http.Redirect(w, r, "/?error=invalid", http.StatusSeeOther)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.store.Logout(c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "register", pageData{User: s.currentUser(r)})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	u := User{
		Username:  r.PostForm.Get("username"),
		FirstName: r.PostForm.Get("firstName"),
		LastName:  r.PostForm.Get("lastName"),
		Password:  r.PostForm.Get("password"),
	}
	data := pageData{User: s.currentUser(r)}
	status := http.StatusOK
	if err := s.store.Register(u, r.PostForm.Get("confirmPassword")); err != nil {
		data.Error = err.Error()
		status = http.StatusBadRequest
	} else {
		data.Registered = true
		s.logger.Info("user registered", zap.String("username", u.Username))
	}
	s.render(w, status, "register", data)
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	m, ok := s.store.Model(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	user := s.currentUser(r)
	s.render(w, http.StatusOK, "model", pageData{
		User:           user,
		Model:          m,
		Voted:          user != nil && s.store.HasVoted(m.ID, user.Username),
		ConfirmDelayMS: s.cfg.ConfirmDelay.Milliseconds(),
	})
}

type voteRequest struct {
	Comment string `json:"comment"`
}

type voteComment struct {
	Date   string `json:"date"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

type voteResponse struct {
	Votes   int          `json:"votes"`
	Comment *voteComment `json:"comment,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: ErrNotAuthorized.Error()})
		return
	}
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid vote"})
		return
	}

	id := chi.URLParam(r, "id")
	m, err := s.store.Vote(id, *user, req.Comment)
	switch {
	case errors.Is(err, ErrUnknownModel):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
		return
	case errors.Is(err, ErrAlreadyVoted):
		writeJSON(w, http.StatusConflict, errorResponse{Message: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
		return
	}

	resp := voteResponse{Votes: m.Votes}
	if strings.TrimSpace(req.Comment) != "" && len(m.Comments) > 0 {
		c := m.Comments[0]
		resp.Comment = &voteComment{
			Date:   c.Date.Format("Jan 2, 2006, 3:04:05 PM"),
			Author: c.Author,
			Text:   c.Text,
		}
	}
	s.logger.Debug("vote recorded", zap.String("model", id), zap.String("username", user.Username))
	writeJSON(w, http.StatusOK, resp)
}

// requestLogger logs every request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}
