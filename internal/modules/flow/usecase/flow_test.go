package usecase_test

import (
	"context"
	"errors"
	"testing"

	authdto "diagnocare/internal/modules/auth/dto"
	checkindto "diagnocare/internal/modules/checkin/dto"
	flowout "diagnocare/internal/modules/flow/adapter/out"
	flowdto "diagnocare/internal/modules/flow/dto"
	"diagnocare/internal/modules/flow/usecase"
	predictiondto "diagnocare/internal/modules/prediction/dto"
	apperrors "diagnocare/internal/platform/errors"
)

type fakeUsers struct{ id int64 }

func (f fakeUsers) CurrentUser(context.Context) (authdto.UserOutput, error) {
	if f.id == 0 {
		return authdto.UserOutput{}, apperrors.ErrNotAuthenticated
	}
	return authdto.UserOutput{ID: f.id, FirstName: "Ana"}, nil
}

type fakePredictions struct {
	created  []predictiondto.CreateInput
	response predictiondto.PredictionWithResultsOutput
	list     []predictiondto.PredictionOutput
	latest   predictiondto.PredictionOutput
	found    bool
	err      error
	listErr  error
}

func (f *fakePredictions) Create(_ context.Context, in predictiondto.CreateInput) (predictiondto.PredictionWithResultsOutput, error) {
	f.created = append(f.created, in)
	if f.err != nil {
		return predictiondto.PredictionWithResultsOutput{}, f.err
	}
	return f.response, nil
}
func (f *fakePredictions) ListMine(context.Context) ([]predictiondto.PredictionOutput, error) {
	return f.list, f.listErr
}
func (f *fakePredictions) Latest(context.Context) (predictiondto.PredictionOutput, bool, error) {
	return f.latest, f.found, f.listErr
}

type fakeCheckIns struct {
	submitted []checkindto.SubmitInput
	list      []checkindto.CheckInOutput
	err       error
}

func (f *fakeCheckIns) Submit(_ context.Context, in checkindto.SubmitInput) (checkindto.CheckInOutput, error) {
	f.submitted = append(f.submitted, in)
	if f.err != nil {
		return checkindto.CheckInOutput{}, f.err
	}
	return checkindto.CheckInOutput{ID: 1, PreviousPredictionID: in.PreviousPredictionID}, nil
}
func (f *fakeCheckIns) List(context.Context) ([]checkindto.CheckInOutput, error) {
	return f.list, f.err
}

func fullResponse() predictiondto.PredictionWithResultsOutput {
	return predictiondto.PredictionWithResultsOutput{
		Prediction: predictiondto.PredictionOutput{ID: 41, RedAlert: true},
		MLResults: []predictiondto.MLPredictionOutput{
			{Rank: 1, Disease: "Grippe", Confidence: 87, Specialist: "Généraliste", Description: "Repos et hydratation"},
			{Rank: 2, Disease: "Rhume", Confidence: 9, Specialist: "Spécialiste"},
		},
	}
}

func TestEvaluateWithoutPendingCreatesPredictionAndStoresFullResponse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := flowout.NewMemoryFlowStore()
	preds := &fakePredictions{response: fullResponse()}
	checks := &fakeCheckIns{}
	uc := usecase.NewInteractor(store, fakeUsers{id: 7}, preds, checks, nil)

	out, err := uc.Evaluate(ctx, flowdto.EvaluateInput{SymptomLabels: []string{"Fièvre", "Toux"}})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if out.Destination != "results" || out.FollowUp {
		t.Fatalf("unexpected output %+v", out)
	}
	if len(preds.created) != 1 || len(checks.submitted) != 0 {
		t.Fatalf("expected create only, got creates=%d checkins=%d", len(preds.created), len(checks.submitted))
	}
	if got := preds.created[0].SymptomLabels; len(got) != 2 || got[0] != "Fièvre" || preds.created[0].RawDescription != "" {
		t.Fatalf("unexpected create input %+v", preds.created[0])
	}
	last, err := store.LoadLastPrediction(ctx)
	if err != nil {
		t.Fatalf("load last: %v", err)
	}
	if last.Prediction.ID != 41 || len(last.MLResults) != 2 {
		t.Fatalf("full response not stored: %+v", last)
	}

	res, err := uc.Result(ctx)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if !res.Available || res.Top.Name != "Grippe" || res.Top.Confidence != 87 || len(res.Others) != 1 || !res.RedAlert {
		t.Fatalf("unexpected result view %+v", res)
	}
	if len(res.Recommendations) != 1 || res.Recommendations[0] != "Repos et hydratation" {
		t.Fatalf("unexpected recommendations %+v", res.Recommendations)
	}
}

func TestEvaluateWithPendingSubmitsCheckInAndClearsPending(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := flowout.NewMemoryFlowStore()
	preds := &fakePredictions{latest: predictiondto.PredictionOutput{ID: 52, FollowUp: true}, found: true}
	checks := &fakeCheckIns{}
	uc := usecase.NewInteractor(store, fakeUsers{id: 7}, preds, checks, nil)

	dest, err := uc.StartFollowUp(ctx, 41)
	if err != nil || dest != "evaluation" {
		t.Fatalf("start follow-up: %q %v", dest, err)
	}
	if id, ok := uc.PendingCheckIn(ctx); !ok || id != 41 {
		t.Fatalf("expected pending 41, got %d %v", id, ok)
	}

	out, err := uc.Evaluate(ctx, flowdto.EvaluateInput{SymptomLabels: []string{"Toux"}})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if out.Destination != "summary" || !out.FollowUp || !out.HasLast {
		t.Fatalf("unexpected output %+v", out)
	}
	if len(preds.created) != 0 {
		t.Fatalf("create endpoint must not be called")
	}
	if len(checks.submitted) != 1 || checks.submitted[0].PreviousPredictionID != 41 || checks.submitted[0].SymptomLabels[0] != "Toux" {
		t.Fatalf("unexpected check-in %+v", checks.submitted)
	}
	if _, ok := uc.PendingCheckIn(ctx); ok {
		t.Fatalf("pending check-in must be cleared")
	}
	last, err := store.LoadLastPrediction(ctx)
	if err != nil {
		t.Fatalf("load last: %v", err)
	}
	if last.Prediction.ID != 52 || last.MLResults == nil || len(last.MLResults) != 0 {
		t.Fatalf("expected latest prediction with empty ml results, got %+v", last)
	}
	res, _ := uc.Result(ctx)
	if res.Available {
		t.Fatalf("result view must be empty without ml results")
	}
}

func TestFailedEvaluationCommitsNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Follow-up path: check-in fails.
	store := flowout.NewMemoryFlowStore()
	prior := fullResponse()
	_ = store.SaveLastPrediction(ctx, prior)
	checks := &fakeCheckIns{err: errors.New("Prediction not found")}
	uc := usecase.NewInteractor(store, fakeUsers{id: 7}, &fakePredictions{}, checks, nil)
	if _, err := uc.StartFollowUp(ctx, 41); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.Evaluate(ctx, flowdto.EvaluateInput{SymptomLabels: []string{"Toux"}}); err == nil {
		t.Fatalf("expected check-in failure")
	}
	if id, ok := uc.PendingCheckIn(ctx); !ok || id != 41 {
		t.Fatalf("pending must survive failure, got %d %v", id, ok)
	}
	if last, _ := store.LoadLastPrediction(ctx); last.Prediction.ID != 41 {
		t.Fatalf("last prediction must be unchanged, got %+v", last)
	}

	// Follow-up path: re-fetch fails after the check-in went through.
	preds := &fakePredictions{listErr: errors.New("Erreur API")}
	uc = usecase.NewInteractor(store, fakeUsers{id: 7}, preds, &fakeCheckIns{}, nil)
	if _, err := uc.Evaluate(ctx, flowdto.EvaluateInput{SymptomLabels: []string{"Toux"}}); err == nil {
		t.Fatalf("expected list failure")
	}
	if _, ok := uc.PendingCheckIn(ctx); !ok {
		t.Fatalf("pending must survive failure")
	}

	// Initial path.
	fresh := flowout.NewMemoryFlowStore()
	uc = usecase.NewInteractor(fresh, fakeUsers{id: 7}, &fakePredictions{err: errors.New("boom")}, &fakeCheckIns{}, nil)
	if _, err := uc.Evaluate(ctx, flowdto.EvaluateInput{SymptomLabels: []string{"Toux"}}); err == nil {
		t.Fatalf("expected create failure")
	}
	if _, err := uc.LastPrediction(ctx); !errors.Is(err, apperrors.ErrNoLastPrediction) {
		t.Fatalf("expected no last prediction, got %v", err)
	}
}

func TestEvaluateRequiresUserAndSymptoms(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	preds := &fakePredictions{response: fullResponse()}
	anon := usecase.NewInteractor(flowout.NewMemoryFlowStore(), fakeUsers{}, preds, &fakeCheckIns{}, nil)
	if _, err := anon.Evaluate(ctx, flowdto.EvaluateInput{SymptomLabels: []string{"Toux"}}); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
	uc := usecase.NewInteractor(flowout.NewMemoryFlowStore(), fakeUsers{id: 7}, preds, &fakeCheckIns{}, nil)
	if _, err := uc.Evaluate(ctx, flowdto.EvaluateInput{SymptomLabels: []string{"  "}}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(preds.created) != 0 {
		t.Fatalf("no request expected")
	}
}

func TestDashboardSummarizesAndToleratesFailures(t *testing.T) {
	t.Parallel()
	preds := &fakePredictions{list: []predictiondto.PredictionOutput{
		{ID: 1, BestScore: 80, RedAlert: true, Date: "02/10/2026 09:30"},
		{ID: 2, BestScore: 40},
		{ID: 3},
		{ID: 4, RedAlert: true},
	}}
	checks := &fakeCheckIns{list: []checkindto.CheckInOutput{{ID: 1, Completed: true}, {ID: 2}}}
	uc := usecase.NewInteractor(flowout.NewMemoryFlowStore(), fakeUsers{id: 7}, preds, checks, nil)

	out, err := uc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if out.UserName != "Ana" || out.TotalEvaluations != 4 || out.ActiveAlerts != 2 || !out.HasRedFlag {
		t.Fatalf("unexpected stats %+v", out)
	}
	if out.PendingFollowUps != 1 || out.NextFollowUp != "24h" {
		t.Fatalf("unexpected follow-up stats %+v", out)
	}
	if len(out.Recent) != 3 || out.Recent[0].Result != "Attention requise" || out.Recent[1].Result != "Évaluation terminée" || out.Recent[0].Confidence != 80 {
		t.Fatalf("unexpected recent evaluations %+v", out.Recent)
	}

	failing := usecase.NewInteractor(flowout.NewMemoryFlowStore(), fakeUsers{id: 7},
		&fakePredictions{listErr: errors.New("down")}, &fakeCheckIns{err: errors.New("down")}, nil)
	empty, err := failing.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard must swallow list failures: %v", err)
	}
	if empty.TotalEvaluations != 0 || empty.NextFollowUp != "—" || len(empty.Recent) != 0 {
		t.Fatalf("expected empty dashboard, got %+v", empty)
	}
}
