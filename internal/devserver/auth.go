package devserver

import (
	"net/http"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	authdomain "diagnocare/internal/modules/auth/domain"
	authout "diagnocare/internal/modules/auth/port/out"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeBody(r, &req); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.state.emails[strings.ToLower(strings.TrimSpace(req.Email))]
	if !ok {
		s.fail(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	a := s.state.accounts[userID]
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(req.Password)); err != nil {
		s.fail(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.ok(w, r, http.StatusOK, s.issue(a.user))
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req authout.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		s.failErr(w, r, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		s.fail(w, r, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(req.Password) < 6 {
		s.fail(w, r, http.StatusBadRequest, "Password must contain at least 6 characters")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.failErr(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.state.emails[email]; taken {
		s.fail(w, r, http.StatusConflict, "Email already in use")
		return
	}
	if !s.knownRole(req.RoleID) {
		s.fail(w, r, http.StatusBadRequest, "Role not found")
		return
	}
	s.state.nextUser++
	lang := normalizeLang(req.Lang)
	user := authdomain.User{
		ID:          s.state.nextUser,
		Email:       email,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: req.PhoneNumber,
		Lang:        &lang,
	}
	s.state.accounts[user.ID] = &account{user: user, hash: hash, roleID: req.RoleID}
	s.state.emails[email] = user.ID
	s.log.Info("user registered", zap.Int64("user_id", user.ID))
	s.ok(w, r, http.StatusCreated, s.issue(user))
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeBody(r, &req); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.state.refresh[req.RefreshToken]
	if !ok {
		s.fail(w, r, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	delete(s.state.refresh, req.RefreshToken)
	s.ok(w, r, http.StatusOK, s.issue(s.state.accounts[userID].user))
}

func (s *Server) roles(w http.ResponseWriter, r *http.Request) {
	s.ok(w, r, http.StatusOK, s.state.roles)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err == nil {
		err = owns(r, userID)
	}
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	var patch authdomain.UserPatch
	if err := decodeBody(r, &patch); err != nil {
		s.failErr(w, r, err)
		return
	}
	var hash []byte
	if patch.Password != nil {
		if hash, err = bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost); err != nil {
			s.failErr(w, r, err)
			return
		}
	}
	if patch.Lang != nil {
		lang := normalizeLang(*patch.Lang)
		patch.Lang = &lang
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.state.accounts[userID]
	if !ok {
		s.fail(w, r, http.StatusNotFound, "User not found")
		return
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if owner, taken := s.state.emails[email]; taken && owner != userID {
			s.fail(w, r, http.StatusConflict, "Email already in use")
			return
		}
		delete(s.state.emails, strings.ToLower(a.user.Email))
		s.state.emails[email] = userID
		patch.Email = &email
	}
	a.user = a.user.Apply(patch)
	if hash != nil {
		a.hash = hash
	}
	s.ok(w, r, http.StatusOK, a.user)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err == nil {
		err = owns(r, userID)
	}
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.accounts[userID]; !ok {
		s.fail(w, r, http.StatusNotFound, "User not found")
		return
	}
	s.state.dropUser(userID)
	s.log.Info("user deleted", zap.Int64("user_id", userID))
	s.ok(w, r, http.StatusOK, nil)
}

// issue mints a fresh token pair for user. The caller holds s.mu.
func (s *Server) issue(user authdomain.User) authdomain.AuthResult {
	access, refresh := s.ids.New(), s.ids.New()
	s.state.access[access] = user.ID
	s.state.refresh[refresh] = user.ID
	return authdomain.AuthResult{
		Token:                access,
		TokenValidity:        tokenValidity,
		RefreshToken:         refresh,
		RefreshTokenValidity: refreshTokenValidity,
		User:                 user,
	}
}

func (s *Server) knownRole(id int64) bool {
	for _, role := range s.state.roles {
		if role.ID == id {
			return true
		}
	}
	return false
}

func normalizeLang(lang string) string {
	if strings.EqualFold(strings.TrimSpace(lang), "en") {
		return "en"
	}
	return "fr"
}

func (s *Server) userLang(userID int64) string {
	if a, ok := s.state.accounts[userID]; ok && a.user.Lang != nil {
		return normalizeLang(*a.user.Lang)
	}
	return "fr"
}
