package web

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/bluecup/internal/server/models"
	"github.com/dmitrijs2005/bluecup/internal/server/services"
)

// maxFormBytes caps request bodies of form posts.
const maxFormBytes = 1 << 20

type homeResponse struct {
	User       *models.User      `json:"user"`
	TotalHours float64           `json:"total_hours"`
	Activities []models.Activity `json:"activities"`
}

type formResponse struct {
	Form   string   `json:"form"`
	Fields []string `json:"fields"`
	Next   string   `json:"next,omitempty"`
}

func (s *HTTPServer) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *HTTPServer) registerForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, formResponse{Form: "register", Fields: []string{"email", "password", "county", "home_club"}})
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	u, err := s.deps.Auth.Register(r.Context(), services.RegisterInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		County:   r.PostFormValue("county"),
		HomeClub: r.PostFormValue("home_club"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", u.ID)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *HTTPServer) loginForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, formResponse{
		Form:   "login",
		Fields: []string{"email", "password", "next"},
		Next:   safeNext(r.URL.Query().Get("next")),
	})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	session, err := s.deps.Auth.Authenticate(r.Context(), services.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSessionCookie(w, session, s.deps.SecureCookie)
	http.Redirect(w, r, safeNext(r.FormValue("next")), http.StatusSeeOther)
}

func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	token, _ := readSessionCookie(r)
	clearSessionCookie(w, s.deps.SecureCookie)

	if err := s.deps.Auth.EndSession(r.Context(), token); err != nil {
		s.internalError(w, r, err)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *HTTPServer) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := UserIDFromContext(ctx)

	user, err := s.deps.Auth.User(ctx, userID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	total, err := s.deps.Aggregation.TotalHours(ctx, userID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	list, err := s.deps.Ledger.ListForUser(ctx, userID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, homeResponse{User: user, TotalHours: total, Activities: list})
}

func (s *HTTPServer) logActivity(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	userID, _ := UserIDFromContext(r.Context())

	_, err := s.deps.Ledger.Log(r.Context(), userID, services.LogActivityInput{
		ActivityType: r.PostFormValue("activity_type"),
		Hours:        r.PostFormValue("hours"),
		Description:  r.PostFormValue("description"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *HTTPServer) listActivities(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	list, err := s.deps.Ledger.ListForUser(r.Context(), userID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activities": list})
}

func (s *HTTPServer) leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := s.deps.Aggregation.Leaderboard(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": board})
}

func (s *HTTPServer) rewards(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	status, err := s.deps.Aggregation.RewardStatus(r.Context(), userID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *HTTPServer) events(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"events": s.deps.Events.List()})
}

func (s *HTTPServer) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return false
	}
	return true
}

// safeNext keeps post-login redirects on this site: only local paths with a
// single leading slash are honoured.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
