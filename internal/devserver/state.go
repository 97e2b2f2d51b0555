package devserver

import (
	"context"
	"net/http"
	"strings"

	authdomain "diagnocare/internal/modules/auth/domain"
	catalogdomain "diagnocare/internal/modules/catalog/domain"
	checkindomain "diagnocare/internal/modules/checkin/domain"
	predictiondomain "diagnocare/internal/modules/prediction/domain"
	profiledomain "diagnocare/internal/modules/profile/domain"
)

type account struct {
	user   authdomain.User
	hash   []byte
	roleID int64
}

// evaluation is one stored prediction with the inputs and ML output it was
// built from.
type evaluation struct {
	prediction  predictiondomain.Prediction
	userID      int64
	description string
	labels      []string
	ml          predictiondomain.MLResponse
	top         *disease
	results     []predictiondomain.PathologyResult
}

type state struct {
	roles    []authdomain.Role
	symptoms []catalogdomain.Symptom

	accounts map[int64]*account
	emails   map[string]int64
	access   map[string]int64
	refresh  map[string]int64

	evaluations []*evaluation
	checkIns    []*checkindomain.CheckIn
	profiles    map[int64]profiledomain.Profile

	nextUser, nextPrediction, nextResult, nextCheckIn, nextProfile int64
}

func newState() *state {
	return &state{
		roles: []authdomain.Role{
			{ID: 1, Name: authdomain.PatientRole},
			{ID: 2, Name: "DOCTOR"},
			{ID: 3, Name: "ADMIN"},
		},
		symptoms: catalog(),
		accounts: map[int64]*account{},
		emails:   map[string]int64{},
		access:   map[string]int64{},
		refresh:  map[string]int64{},
		profiles: map[int64]profiledomain.Profile{},
	}
}

func (st *state) evaluation(id int64) (*evaluation, bool) {
	for _, e := range st.evaluations {
		if e.prediction.ID == id {
			return e, true
		}
	}
	return nil, false
}

func (st *state) evaluationsOf(userID int64) []*evaluation {
	out := []*evaluation{}
	for _, e := range st.evaluations {
		if e.userID == userID {
			out = append(out, e)
		}
	}
	return out
}

// checkInFor finds the check-in scheduled after previousID for userID.
func (st *state) checkInFor(previousID, userID int64) (*checkindomain.CheckIn, bool) {
	for _, c := range st.checkIns {
		if c.PreviousPredictionID == previousID && c.UserID == userID {
			return c, true
		}
	}
	return nil, false
}

func (st *state) checkInsOf(userID int64) []*checkindomain.CheckIn {
	out := []*checkindomain.CheckIn{}
	for _, c := range st.checkIns {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

// latestChild is the most recent follow-up prediction built on previousID.
func (st *state) latestChild(previousID int64) (*evaluation, bool) {
	var found *evaluation
	for _, e := range st.evaluations {
		p := e.prediction.PreviousPredictionID
		if p != nil && *p == previousID {
			found = e
		}
	}
	return found, found != nil
}

// root follows previous prediction links back to the initial evaluation.
func (st *state) root(e *evaluation) *evaluation {
	current := e
	for current.prediction.PreviousPredictionID != nil {
		prev, ok := st.evaluation(*current.prediction.PreviousPredictionID)
		if !ok {
			break
		}
		current = prev
	}
	return current
}

func (st *state) dropUser(userID int64) {
	a, ok := st.accounts[userID]
	if !ok {
		return
	}
	delete(st.emails, strings.ToLower(a.user.Email))
	delete(st.accounts, userID)
	delete(st.profiles, userID)
	for tok, uid := range st.access {
		if uid == userID {
			delete(st.access, tok)
		}
	}
	for tok, uid := range st.refresh {
		if uid == userID {
			delete(st.refresh, tok)
		}
	}
	kept := st.evaluations[:0]
	for _, e := range st.evaluations {
		if e.userID != userID {
			kept = append(kept, e)
		}
	}
	st.evaluations = kept
	keptCheckIns := st.checkIns[:0]
	for _, c := range st.checkIns {
		if c.UserID != userID {
			keptCheckIns = append(keptCheckIns, c)
		}
	}
	st.checkIns = keptCheckIns
}

type callerKey struct{}

func callerID(ctx context.Context) int64 {
	v, _ := ctx.Value(callerKey{}).(int64)
	return v
}

func (s *Server) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			s.fail(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		s.mu.Lock()
		userID, found := s.state.access[token]
		s.mu.Unlock()
		if !found {
			s.fail(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, userID)))
	})
}

// owns rejects access to another user's data.
func owns(r *http.Request, userID int64) error {
	if callerID(r.Context()) != userID {
		return errorf(http.StatusForbidden, "Access denied")
	}
	return nil
}
