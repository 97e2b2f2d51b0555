package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	authdto "diagnocare/internal/modules/auth/dto"
	"diagnocare/internal/modules/prediction/domain"
	predictiondto "diagnocare/internal/modules/prediction/dto"
	"diagnocare/internal/modules/prediction/service"
	"diagnocare/internal/modules/prediction/usecase"
	apperrors "diagnocare/internal/platform/errors"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeUsers struct{ id int64 }

func (f fakeUsers) CurrentUser(context.Context) (authdto.UserOutput, error) {
	if f.id == 0 {
		return authdto.UserOutput{}, apperrors.ErrNotAuthenticated
	}
	return authdto.UserOutput{ID: f.id}, nil
}

type fakeGateway struct {
	mu          sync.Mutex
	predictions []domain.Prediction
	results     map[int64][]domain.PathologyResult
	failing     map[int64]bool
	created     []domain.CreateRequest
}

func (f *fakeGateway) Create(_ context.Context, req domain.CreateRequest) (domain.PredictionWithResults, error) {
	f.created = append(f.created, req)
	p := 0.8731
	disease := "Grippe"
	return domain.PredictionWithResults{
		Prediction: domain.Prediction{ID: 99},
		MLResults:  domain.MLResponse{Predictions: []domain.MLPrediction{{Disease: &disease, Probability: &p}, {}}},
	}, nil
}
func (f *fakeGateway) Get(_ context.Context, id int64) (domain.Prediction, error) {
	for _, p := range f.predictions {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Prediction{}, apperrors.ErrNotFound
}
func (f *fakeGateway) ListByUser(context.Context, int64) ([]domain.Prediction, error) {
	return f.predictions, nil
}
func (f *fakeGateway) PathologyResults(_ context.Context, id int64) ([]domain.PathologyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing[id] {
		return nil, errors.New("boom")
	}
	return f.results[id], nil
}

func str(s string) *string { return &s }
func num(v float64) *float64 { return &v }
func yes() *bool {
	v := true
	return &v
}
func id(v int64) *int64 { return &v }

func TestHistoryToleratesFailedPathologyLookups(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{
		predictions: []domain.Prediction{
			{ID: 1, CreatedAt: str("2026-10-02T09:30:00"), BestScore: num(72.6), IsRedAlert: yes()},
			{ID: 2, CreatedAt: str("2026-09-15T10:00:00"), PreviousPredictionID: id(1)},
			{ID: 3},
		},
		results: map[int64][]domain.PathologyResult{
			1: {{ID: 10, PathologyName: str("Migraine"), DoctorSpecialistLabel: str("Neurologue")}, {ID: 11}},
		},
		failing: map[int64]bool{2: true},
	}
	svc := service.NewPredictionService(fixedClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)})
	uc := usecase.NewInteractor(svc, gw, fakeUsers{id: 7}, nil)

	items, err := uc.History(context.Background(), predictiondto.HistoryAll)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(items))
	}
	first := items[0]
	if first.Pathology != "Migraine" || first.Specialist != "Neurologue" || first.Confidence != 73 || !first.RedFlag || first.Type != "Initial" {
		t.Fatalf("unexpected first row %+v", first)
	}
	if items[1].Pathology != "—" || items[1].Type != "Suivi" {
		t.Fatalf("failed lookup must fall back to placeholder, got %+v", items[1])
	}
	if items[2].Date != "—" {
		t.Fatalf("expected placeholder date, got %q", items[2].Date)
	}

	red, err := uc.History(context.Background(), predictiondto.HistoryRedFlags)
	if err != nil || len(red) != 1 || red[0].ID != 1 {
		t.Fatalf("unexpected red flag filter %+v %v", red, err)
	}
	month, err := uc.History(context.Background(), predictiondto.HistoryThisMonth)
	if err != nil || len(month) != 1 || month[0].ID != 1 {
		t.Fatalf("unexpected this-month filter %+v %v", month, err)
	}
	if _, err := uc.History(context.Background(), "weekly"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid filter error, got %v", err)
	}
}

func TestCreateAppliesDefaultsAndRequiresUser(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := usecase.NewInteractor(service.NewPredictionService(nil), gw, fakeUsers{id: 7}, nil)

	out, err := uc.Create(context.Background(), predictiondto.CreateInput{SymptomLabels: []string{" Fièvre ", ""}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(gw.created) != 1 || gw.created[0].UserID != 7 || len(gw.created[0].SymptomLabels) != 1 || gw.created[0].SymptomLabels[0] != "Fièvre" {
		t.Fatalf("unexpected request %+v", gw.created)
	}
	if out.MLResults[0].Disease != "Grippe" || out.MLResults[0].Confidence != 87 {
		t.Fatalf("unexpected top result %+v", out.MLResults[0])
	}
	if out.MLResults[1].Disease != "Pathologie" || out.MLResults[1].Specialist != "Spécialiste" || out.MLResults[1].Rank != 2 {
		t.Fatalf("expected defaults on second result, got %+v", out.MLResults[1])
	}

	anon := usecase.NewInteractor(service.NewPredictionService(nil), gw, fakeUsers{}, nil)
	if _, err := anon.Create(context.Background(), predictiondto.CreateInput{SymptomLabels: []string{"Toux"}}); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
}
