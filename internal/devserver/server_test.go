package devserver_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"diagnocare/internal/devserver"
	authdomain "diagnocare/internal/modules/auth/domain"
	authout "diagnocare/internal/modules/auth/port/out"
	catalogdomain "diagnocare/internal/modules/catalog/domain"
	checkindomain "diagnocare/internal/modules/checkin/domain"
	predictiondomain "diagnocare/internal/modules/prediction/domain"
	profiledomain "diagnocare/internal/modules/profile/domain"
	summarydomain "diagnocare/internal/modules/summary/domain"
	"diagnocare/internal/platform/httpapi"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

type tokenBox struct {
	mu    sync.Mutex
	token string
}

func (b *tokenBox) AccessToken(context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token, nil
}

func (b *tokenBox) set(token string) {
	b.mu.Lock()
	b.token = token
	b.mu.Unlock()
}

type harness struct {
	client *httpapi.Client
	tokens *tokenBox
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clk := &stepClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	srv := httptest.NewServer(devserver.New(devserver.WithClock(clk)))
	t.Cleanup(srv.Close)
	tokens := &tokenBox{}
	return &harness{client: httpapi.New(srv.URL, tokens), tokens: tokens}
}

func (h *harness) register(t *testing.T, email string) authdomain.User {
	t.Helper()
	res, err := httpapi.Call[authdomain.AuthResult](context.Background(), h.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/auth/register",
		Body: authout.RegisterRequest{
			Email: email, FirstName: "Ana", LastName: "Diallo", Lang: "fr", Password: "secret1", RoleID: 1,
		},
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	if !res.HasTokens() {
		t.Fatalf("expected tokens on register, got %+v", res)
	}
	h.tokens.set(res.Token)
	return res.User
}

func (h *harness) predict(t *testing.T, userID int64, labels ...string) predictiondomain.PredictionWithResults {
	t.Helper()
	res, err := httpapi.Call[predictiondomain.PredictionWithResults](context.Background(), h.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/diagnocare/predictions",
		Body:   predictiondomain.CreateRequest{UserID: userID, SymptomLabels: labels},
		Auth:   true,
	})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	return res
}

func (h *harness) submit(userID, previousID int64, labels ...string) (checkindomain.CheckIn, error) {
	return httpapi.Call[checkindomain.CheckIn](context.Background(), h.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/diagnocare/check-ins",
		Body:   checkindomain.CreateRequest{UserID: userID, PreviousPredictionID: previousID, SymptomLabels: labels},
		Auth:   true,
	})
}

func TestAuthLifecycle(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	roles, err := httpapi.Call[[]authdomain.Role](ctx, h.client, httpapi.Request{Path: "/api/v1/auth/roles"})
	if err != nil || len(roles) == 0 || roles[0].Name != authdomain.PatientRole {
		t.Fatalf("unexpected roles %+v %v", roles, err)
	}

	user := h.register(t, "ana@example.test")
	if user.ID == 0 || user.Lang == nil || *user.Lang != "fr" {
		t.Fatalf("unexpected user %+v", user)
	}
	_, err = h.client.Do(ctx, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/auth/register",
		Body:   authout.RegisterRequest{Email: "ANA@example.test", Password: "secret1", RoleID: 1},
	})
	if httpapi.StatusOf(err) != http.StatusConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	_, err = h.client.Do(ctx, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/auth/login",
		Body:   map[string]string{"email": "ana@example.test", "password": "wrong"},
	})
	if httpapi.StatusOf(err) != http.StatusUnauthorized || err.Error() != "Invalid email or password" {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	login, err := httpapi.Call[authdomain.AuthResult](ctx, h.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/auth/login",
		Body:   map[string]string{"email": "ana@example.test", "password": "secret1"},
	})
	if err != nil || login.User.ID != user.ID {
		t.Fatalf("login: %+v %v", login, err)
	}

	refreshed, err := httpapi.Call[authdomain.AuthResult](ctx, h.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/auth/refresh-token",
		Body:   map[string]string{"refreshToken": login.RefreshToken},
	})
	if err != nil || refreshed.Token == "" || refreshed.Token == login.Token {
		t.Fatalf("refresh: %+v %v", refreshed, err)
	}
	_, err = h.client.Do(ctx, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/auth/refresh-token",
		Body:   map[string]string{"refreshToken": login.RefreshToken},
	})
	if httpapi.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected used refresh token to be rejected, got %v", err)
	}

	h.tokens.set(refreshed.Token)
	lang := "en"
	updated, err := httpapi.Call[authdomain.User](ctx, h.client, httpapi.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/api/v1/auth/users/%d", user.ID),
		Body:   authdomain.UserPatch{Lang: &lang},
		Auth:   true,
	})
	if err != nil || updated.Lang == nil || *updated.Lang != "en" {
		t.Fatalf("update: %+v %v", updated, err)
	}

	if _, err := h.client.Do(ctx, httpapi.Request{Method: http.MethodDelete, Path: fmt.Sprintf("/api/v1/auth/users/%d", user.ID), Auth: true}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = h.client.Do(ctx, httpapi.Request{Path: "/api/v1/diagnocare/symptoms", Auth: true})
	if httpapi.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected tokens revoked after delete, got %v", err)
	}
}

func TestProtectedRoutesRequireBearerAndOwnership(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.client.Do(ctx, httpapi.Request{Path: "/api/v1/diagnocare/symptoms", Auth: true})
	if httpapi.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %v", err)
	}

	ana := h.register(t, "ana@example.test")
	first := h.predict(t, ana.ID, "Toux")
	h.register(t, "bob@example.test")

	_, err = h.client.Do(ctx, httpapi.Request{Path: fmt.Sprintf("/api/v1/diagnocare/predictions/%d", first.Prediction.ID), Auth: true})
	if httpapi.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403 on foreign prediction, got %v", err)
	}
	_, err = h.client.Do(ctx, httpapi.Request{Path: "/api/v1/diagnocare/predictions/999", Auth: true})
	if httpapi.StatusOf(err) != http.StatusNotFound || err.Error() != "Prediction not found with id: 999" {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestSymptomCatalogAndSearch(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.register(t, "ana@example.test")
	ctx := context.Background()

	all, err := httpapi.Call[[]catalogdomain.Symptom](ctx, h.client, httpapi.Request{Path: "/api/v1/diagnocare/symptoms", Auth: true})
	if err != nil || len(all) < 10 {
		t.Fatalf("list: %d %v", len(all), err)
	}
	found, err := httpapi.Call[[]catalogdomain.Symptom](ctx, h.client, httpapi.Request{Path: "/api/v1/diagnocare/symptoms/search?label=TOUX", Auth: true})
	if err != nil || len(found) != 1 || found[0].Label != "Toux" {
		t.Fatalf("search: %+v %v", found, err)
	}
}

func TestPredictionRanksUrgentDiseaseAndSchedulesCheckIn(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ana := h.register(t, "ana@example.test")
	ctx := context.Background()

	res := h.predict(t, ana.ID, "Fièvre", "Maux de tête", "Raideur de la nuque", "Vomissements", "Sensibilité à la lumière")
	if len(res.MLResults.Predictions) != 3 {
		t.Fatalf("expected three ranked diseases, got %d", len(res.MLResults.Predictions))
	}
	top := res.MLResults.Predictions[0]
	if *top.Disease != "Méningite" || *top.Specialist != "Neurologue" || *top.Rank != 1 {
		t.Fatalf("unexpected top prediction %+v", top)
	}
	if res.Prediction.IsRedAlert == nil || !*res.Prediction.IsRedAlert {
		t.Fatalf("expected red alert for urgent disease")
	}
	if res.Prediction.IsFollowUp() || *res.Prediction.BestScore <= 50 {
		t.Fatalf("unexpected prediction %+v", res.Prediction)
	}

	results, err := httpapi.Call[[]predictiondomain.PathologyResult](ctx, h.client, httpapi.Request{
		Path: fmt.Sprintf("/api/v1/diagnocare/pathology-results/prediction/%d", res.Prediction.ID),
		Auth: true,
	})
	if err != nil || len(results) != 3 || *results[0].PathologyName != "Méningite" {
		t.Fatalf("pathology results: %+v %v", results, err)
	}

	checkIns, err := httpapi.Call[[]checkindomain.CheckIn](ctx, h.client, httpapi.Request{
		Path: fmt.Sprintf("/api/v1/diagnocare/check-ins?userId=%d", ana.ID),
		Auth: true,
	})
	if err != nil || len(checkIns) != 1 {
		t.Fatalf("check-ins: %+v %v", checkIns, err)
	}
	c := checkIns[0]
	if c.Status != checkindomain.StatusPending || c.PreviousPredictionID != res.Prediction.ID || c.FirstReminderAt == nil || c.SecondReminderAt == nil {
		t.Fatalf("unexpected scheduled check-in %+v", c)
	}

	_, err = h.client.Do(ctx, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/diagnocare/predictions",
		Body:   predictiondomain.CreateRequest{UserID: ana.ID, SymptomLabels: []string{"  "}},
		Auth:   true,
	})
	if httpapi.StatusOf(err) != http.StatusBadRequest || err.Error() != "Symptoms are required" {
		t.Fatalf("expected symptoms required, got %v", err)
	}
}

func TestCheckInSubmitComputesOutcomeOnce(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ana := h.register(t, "ana@example.test")
	ctx := context.Background()

	initial := h.predict(t, ana.ID, "Fièvre", "Toux", "Courbatures", "Fatigue")
	if *initial.MLResults.Predictions[0].Disease != "Grippe" {
		t.Fatalf("expected influenza first, got %s", *initial.MLResults.Predictions[0].Disease)
	}

	c, err := h.submit(ana.ID, initial.Prediction.ID, "Toux", "Fièvre")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.Status != checkindomain.StatusCompleted || c.Outcome == nil || *c.Outcome != checkindomain.OutcomeImproving {
		t.Fatalf("expected improving completed check-in, got %+v", c)
	}
	if c.WorseReason != nil || c.CompletedAt == nil || c.BestScoreDelta == nil || *c.BestScoreDelta > -10 {
		t.Fatalf("unexpected check-in details %+v", c)
	}

	_, err = h.submit(ana.ID, initial.Prediction.ID, "Toux")
	if httpapi.StatusOf(err) != http.StatusBadRequest || err.Error() != "Check-in already completed for this prediction" {
		t.Fatalf("expected already completed, got %v", err)
	}
	_, err = h.submit(ana.ID, 999, "Toux")
	if httpapi.StatusOf(err) != http.StatusNotFound || err.Error() != "Previous prediction not found" {
		t.Fatalf("expected previous not found, got %v", err)
	}

	predictions, err := httpapi.Call[[]predictiondomain.Prediction](ctx, h.client, httpapi.Request{
		Path: fmt.Sprintf("/api/v1/diagnocare/predictions/user/%d", ana.ID),
		Auth: true,
	})
	if err != nil || len(predictions) != 2 || !predictions[1].IsFollowUp() {
		t.Fatalf("expected initial and follow-up predictions, got %+v %v", predictions, err)
	}

	bob := h.register(t, "bob@example.test")
	_, err = h.submit(bob.ID, initial.Prediction.ID, "Toux")
	if httpapi.StatusOf(err) != http.StatusBadRequest || err.Error() != "Prediction does not belong to user" {
		t.Fatalf("expected ownership error, got %v", err)
	}
}

func TestCheckInWorsensOnUrgentFollowUp(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ana := h.register(t, "ana@example.test")

	initial := h.predict(t, ana.ID, "Fièvre", "Toux", "Courbatures", "Fatigue")
	c, err := h.submit(ana.ID, initial.Prediction.ID, "Douleur thoracique", "Essoufflement", "Palpitations")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.Outcome == nil || *c.Outcome != checkindomain.OutcomeWorsening {
		t.Fatalf("expected worsening, got %+v", c)
	}
	if c.WorseReason == nil || *c.WorseReason != "red_alert;urgent_disease;score_increase;" {
		t.Fatalf("unexpected worse reason %v", c.WorseReason)
	}
}

func TestSummaryCarriesFollowUpTimelineAndRendersPDF(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ana := h.register(t, "ana@example.test")
	ctx := context.Background()

	initial := h.predict(t, ana.ID, "Fièvre", "Toux", "Courbatures", "Fatigue")
	if _, err := h.submit(ana.ID, initial.Prediction.ID, "Toux", "Fièvre"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	predictions, err := httpapi.Call[[]predictiondomain.Prediction](ctx, h.client, httpapi.Request{
		Path: fmt.Sprintf("/api/v1/diagnocare/predictions/user/%d", ana.ID),
		Auth: true,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	followUp := predictions[len(predictions)-1]

	s, err := httpapi.Call[summarydomain.Summary](ctx, h.client, httpapi.Request{
		Path: fmt.Sprintf("/api/v1/diagnocare/consultation-summaries/%d", followUp.ID),
		Auth: true,
	})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.CheckIn == nil || !*s.CheckIn || s.CheckInOutcome == nil || *s.CheckInOutcome != "Amélioration" {
		t.Fatalf("unexpected check-in fields %+v", s)
	}
	if *s.PatientName != "Ana Diallo" || *s.RecommendedSpecialty != "Pneumologue" || len(s.QuestionsForDoctor) != 6 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if len(s.Timeline) != 2 || *s.Timeline[0].Type != "Suivi" || *s.Timeline[1].Type != "Initial" {
		t.Fatalf("unexpected timeline %+v", s.Timeline)
	}
	if *s.Timeline[1].Status != "Terminé" {
		t.Fatalf("expected localized status, got %s", *s.Timeline[1].Status)
	}

	raw, err := h.client.Download(ctx, fmt.Sprintf("/api/v1/diagnocare/consultation-summaries/%d/pdf", followUp.ID))
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatalf("expected a pdf document, got %q", raw[:min(len(raw), 16)])
	}
}

func TestProfileUpsert(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ana := h.register(t, "ana@example.test")
	ctx := context.Background()
	path := fmt.Sprintf("/api/v1/diagnocare/patient-profiles/user/%d", ana.ID)

	if _, err := h.client.Do(ctx, httpapi.Request{Path: path, Auth: true}); httpapi.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("expected missing profile, got %v", err)
	}
	age := 34
	saved, err := httpapi.Call[profiledomain.Profile](ctx, h.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/diagnocare/patient-profiles",
		Body:   profiledomain.Profile{UserID: ana.ID, Age: &age},
		Auth:   true,
	})
	if err != nil || saved.ID == nil || saved.FamilyAntecedents == nil {
		t.Fatalf("save: %+v %v", saved, err)
	}
	again, err := httpapi.Call[profiledomain.Profile](ctx, h.client, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/diagnocare/patient-profiles",
		Body:   profiledomain.Profile{UserID: ana.ID, FamilyAntecedents: []string{"diabète"}},
		Auth:   true,
	})
	if err != nil || *again.ID != *saved.ID {
		t.Fatalf("expected upsert to keep id, got %+v %v", again, err)
	}
	got, err := httpapi.Call[profiledomain.Profile](ctx, h.client, httpapi.Request{Path: path, Auth: true})
	if err != nil || len(got.FamilyAntecedents) != 1 || got.Age != nil {
		t.Fatalf("unexpected stored profile %+v %v", got, err)
	}
}
