package devserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	catalogdomain "diagnocare/internal/modules/catalog/domain"
	checkindomain "diagnocare/internal/modules/checkin/domain"
	predictiondomain "diagnocare/internal/modules/prediction/domain"
	profiledomain "diagnocare/internal/modules/profile/domain"
	"diagnocare/internal/platform/opt"
)

const (
	// worseThreshold is the best score increase, in points, that marks a
	// follow-up as worsening; the same decrease marks it improving.
	worseThreshold = 10.0

	firstReminder  = 24 * time.Hour
	secondReminder = 48 * time.Hour
)

type symptomQuery struct {
	Label string `schema:"label"`
}

type userQuery struct {
	UserID int64 `schema:"userId,required"`
}

func (s *Server) listSymptoms(w http.ResponseWriter, r *http.Request) {
	s.ok(w, r, http.StatusOK, s.state.symptoms)
}

func (s *Server) searchSymptoms(w http.ResponseWriter, r *http.Request) {
	var q symptomQuery
	if err := s.queries.Decode(&q, r.URL.Query()); err != nil {
		s.fail(w, r, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	s.ok(w, r, http.StatusOK, catalogdomain.Filter(s.state.symptoms, q.Label))
}

func (s *Server) createPrediction(w http.ResponseWriter, r *http.Request) {
	var req predictiondomain.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.failErr(w, r, err)
		return
	}
	if err := owns(r, req.UserID); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.evaluate(req.UserID, req.RawDescription, req.SymptomIDs, req.SymptomLabels, nil)
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.scheduleCheckIn(e)
	s.ok(w, r, http.StatusCreated, predictiondomain.PredictionWithResults{Prediction: e.prediction, MLResults: e.ml})
}

func (s *Server) getPrediction(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.ownedEvaluation(r, "id")
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.ok(w, r, http.StatusOK, e.prediction)
}

func (s *Server) listPredictions(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err == nil {
		err = owns(r, userID)
	}
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []predictiondomain.Prediction{}
	for _, e := range s.state.evaluationsOf(userID) {
		out = append(out, e.prediction)
	}
	s.ok(w, r, http.StatusOK, out)
}

func (s *Server) pathologyResults(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.ownedEvaluation(r, "id")
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.ok(w, r, http.StatusOK, e.results)
}

func (s *Server) listCheckIns(w http.ResponseWriter, r *http.Request) {
	var q userQuery
	if err := s.queries.Decode(&q, r.URL.Query()); err != nil {
		s.fail(w, r, http.StatusBadRequest, "userId is required")
		return
	}
	if err := owns(r, q.UserID); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []checkindomain.CheckIn{}
	for _, c := range s.state.checkInsOf(q.UserID) {
		out = append(out, s.checkInView(c))
	}
	s.ok(w, r, http.StatusOK, out)
}

func (s *Server) submitCheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkindomain.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.failErr(w, r, err)
		return
	}
	if err := owns(r, req.UserID); err != nil {
		s.failErr(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.state.evaluation(req.PreviousPredictionID)
	if !ok {
		s.fail(w, r, http.StatusNotFound, "Previous prediction not found")
		return
	}
	if _, ok := s.state.accounts[req.UserID]; !ok {
		s.fail(w, r, http.StatusNotFound, "User not found")
		return
	}
	if previous.userID != req.UserID {
		s.fail(w, r, http.StatusBadRequest, "Prediction does not belong to user")
		return
	}
	c, ok := s.state.checkInFor(previous.prediction.ID, req.UserID)
	if ok && c.Completed() {
		s.fail(w, r, http.StatusBadRequest, "Check-in already completed for this prediction")
		return
	}
	if !ok {
		c = s.newCheckIn(previous)
	}

	prevID := previous.prediction.ID
	next, err := s.evaluate(req.UserID, "", req.SymptomIDs, req.SymptomLabels, &prevID)
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	outcome, reasons := assess(previous, next)
	c.Status = checkindomain.StatusCompleted
	c.Outcome = &outcome
	c.WorseReason = nil
	if reasons != "" {
		c.WorseReason = &reasons
	}
	c.CompletedAt = opt.Ptr(s.now())
	s.log.Info("check-in completed",
		zap.Int64("check_in_id", c.ID),
		zap.Int64("prediction_id", next.prediction.ID),
		zap.String("outcome", outcome))
	s.ok(w, r, http.StatusOK, s.checkInView(c))
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err == nil {
		err = owns(r, userID)
	}
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.profiles[userID]
	if !ok {
		s.fail(w, r, http.StatusNotFound, "Profile not found for user: "+strconv.FormatInt(userID, 10))
		return
	}
	s.ok(w, r, http.StatusOK, p)
}

func (s *Server) saveProfile(w http.ResponseWriter, r *http.Request) {
	var p profiledomain.Profile
	if err := decodeBody(r, &p); err != nil {
		s.failErr(w, r, err)
		return
	}
	if err := owns(r, p.UserID); err != nil {
		s.failErr(w, r, err)
		return
	}
	if p.Gender != nil && !profiledomain.ValidGender(*p.Gender) {
		s.fail(w, r, http.StatusBadRequest, "Invalid gender")
		return
	}
	if p.FamilyAntecedents == nil {
		p.FamilyAntecedents = []string{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.state.profiles[p.UserID]; ok {
		p.ID = existing.ID
	} else {
		s.state.nextProfile++
		p.ID = opt.Ptr(s.state.nextProfile)
	}
	s.state.profiles[p.UserID] = p
	s.ok(w, r, http.StatusOK, p)
}

// evaluate resolves symptoms, runs the predictor and stores a new
// prediction with its pathology results. The caller holds s.mu.
func (s *Server) evaluate(userID int64, description string, ids []int64, labels []string, previous *int64) (*evaluation, error) {
	resolved, err := s.resolveSymptoms(ids, labels)
	if err != nil {
		return nil, err
	}
	lang := s.userLang(userID)
	ranking := predict(resolved)
	top := ranking[0]

	s.state.nextPrediction++
	e := &evaluation{
		userID:      userID,
		description: strings.TrimSpace(description),
		labels:      resolved,
		ml:          mlResponse(ranking, lang),
		top:         &top.disease,
	}
	e.prediction = predictiondomain.Prediction{
		ID:                   s.state.nextPrediction,
		BestScore:            opt.Ptr(score(top.probability)),
		IsRedAlert:           opt.Ptr(top.disease.urgent),
		Comment:              opt.Ptr("AI prediction based on symptoms and patient profile"),
		SessionSymptomID:     opt.Ptr(s.state.nextPrediction),
		PreviousPredictionID: previous,
		CreatedAt:            opt.Ptr(s.now()),
	}
	for _, rk := range ranking {
		s.state.nextResult++
		e.results = append(e.results, predictiondomain.PathologyResult{
			ID:                    s.state.nextResult,
			DiseaseScore:          opt.Ptr(score(rk.probability)),
			Description:           opt.Ptr(rk.disease.description),
			PathologyID:           opt.Ptr(pathologyID(rk.disease)),
			PathologyName:         opt.Ptr(rk.disease.name(lang)),
			DoctorID:              opt.Ptr(pathologyID(rk.disease)),
			DoctorSpecialistLabel: opt.Ptr(rk.disease.specialist(lang)),
		})
	}
	s.state.evaluations = append(s.state.evaluations, e)
	return e, nil
}

func (s *Server) resolveSymptoms(ids []int64, labels []string) ([]string, error) {
	if len(ids) > 0 {
		byID := map[int64]string{}
		for _, sym := range s.state.symptoms {
			byID[sym.ID] = sym.Label
		}
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			label, ok := byID[id]
			if !ok {
				return nil, errorf(http.StatusNotFound, "One or more symptoms not found")
			}
			out = append(out, label)
		}
		return out, nil
	}
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil, errorf(http.StatusBadRequest, "Symptoms are required")
	}
	return out, nil
}

// scheduleCheckIn plans reminders after an initial prediction. Follow-ups
// get none. The caller holds s.mu.
func (s *Server) scheduleCheckIn(e *evaluation) {
	if !e.prediction.IsFollowUp() {
		s.newCheckIn(e)
	}
}

func (s *Server) newCheckIn(e *evaluation) *checkindomain.CheckIn {
	created := s.clock.Now().UTC()
	s.state.nextCheckIn++
	c := &checkindomain.CheckIn{
		ID:                   s.state.nextCheckIn,
		UserID:               e.userID,
		PreviousPredictionID: e.prediction.ID,
		Status:               checkindomain.StatusPending,
		FirstReminderAt:      opt.Ptr(created.Add(firstReminder).Format("2006-01-02T15:04:05")),
		SecondReminderAt:     opt.Ptr(created.Add(secondReminder).Format("2006-01-02T15:04:05")),
	}
	s.state.checkIns = append(s.state.checkIns, c)
	return c
}

// checkInView fills the score fields from the previous prediction and the
// latest follow-up built on it.
func (s *Server) checkInView(c *checkindomain.CheckIn) checkindomain.CheckIn {
	out := *c
	prev, ok := s.state.evaluation(c.PreviousPredictionID)
	if !ok {
		return out
	}
	out.PreviousBestScore = prev.prediction.BestScore
	child, ok := s.state.latestChild(c.PreviousPredictionID)
	if !ok {
		return out
	}
	out.NewBestScore = child.prediction.BestScore
	out.BestScoreDelta = delta(prev, child)
	return out
}

func (s *Server) ownedEvaluation(r *http.Request, key string) (*evaluation, error) {
	predictionID, err := pathID(r, key)
	if err != nil {
		return nil, err
	}
	e, ok := s.state.evaluation(predictionID)
	if !ok {
		return nil, errorf(http.StatusNotFound, "Prediction not found with id: "+strconv.FormatInt(predictionID, 10))
	}
	if err := owns(r, e.userID); err != nil {
		return nil, err
	}
	return e, nil
}

// assess compares a follow-up with the prediction it follows. Worsening
// wins over improving; reasons are joined as "red_alert;urgent_disease;".
func assess(previous, next *evaluation) (string, string) {
	var reasons strings.Builder
	if next.prediction.IsRedAlert != nil && *next.prediction.IsRedAlert {
		reasons.WriteString("red_alert;")
	}
	if next.top != nil && next.top.urgent {
		reasons.WriteString("urgent_disease;")
	}
	d := delta(previous, next)
	if d != nil && *d >= worseThreshold {
		reasons.WriteString("score_increase;")
	}
	switch {
	case reasons.Len() > 0:
		return checkindomain.OutcomeWorsening, reasons.String()
	case d != nil && *d <= -worseThreshold:
		return checkindomain.OutcomeImproving, ""
	default:
		return checkindomain.OutcomeStable, ""
	}
}

func delta(previous, next *evaluation) *float64 {
	a, b := previous.prediction.BestScore, next.prediction.BestScore
	if a == nil || b == nil {
		return nil
	}
	return opt.Ptr(round(*b-*a, 2))
}

func pathologyID(d disease) int64 {
	for i, candidate := range diseases {
		if candidate.en == d.en {
			return int64(i + 1)
		}
	}
	return int64(len(diseases) + 1)
}
