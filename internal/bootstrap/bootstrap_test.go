package bootstrap_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"diagnocare/internal/bootstrap"
	"diagnocare/internal/devserver"
	authdto "diagnocare/internal/modules/auth/dto"
	"diagnocare/internal/platform/config"
)

func newApp(t *testing.T) *bootstrap.App {
	t.Helper()
	srv := httptest.NewServer(devserver.New())
	t.Cleanup(srv.Close)

	cfg, err := config.New(srv.URL, t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	app, err := bootstrap.New(cfg, bootstrap.WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestEvaluationFollowUpAndSummaryEndToEnd(t *testing.T) {
	t.Parallel()
	app := newApp(t)
	ctx := context.Background()

	session, err := app.AuthCLI.Register(ctx, authdto.RegisterInput{
		Email: "ana@example.com", FirstName: "Ana", LastName: "Diallo", Lang: "fr", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !session.Authenticated || !app.AuthCLI.IsAuthenticated(ctx) {
		t.Fatalf("expected an authenticated session, got %+v", session)
	}

	first, err := app.FlowCLI.Evaluate(ctx, []string{"Fièvre", "Toux", "Courbatures", "Fatigue"}, 0)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if first.FollowUp || !first.HasLast {
		t.Fatalf("unexpected first evaluation %+v", first)
	}
	rootID := first.Last.Prediction.ID

	res, err := app.FlowCLI.Result(ctx)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if !res.Available || res.PredictionID != rootID || res.Top.Name == "" {
		t.Fatalf("unexpected result %+v", res)
	}

	pending, err := app.CheckInCLI.FollowUps(ctx)
	if err != nil {
		t.Fatalf("follow-ups: %v", err)
	}
	if len(pending.Pending) != 1 || pending.Pending[0].PreviousPredictionID != rootID {
		t.Fatalf("expected one pending follow-up for %d, got %+v", rootID, pending)
	}

	second, err := app.FlowCLI.Evaluate(ctx, []string{"Toux", "Fièvre"}, rootID)
	if err != nil {
		t.Fatalf("follow-up evaluate: %v", err)
	}
	if !second.FollowUp {
		t.Fatalf("expected a follow-up evaluation, got %+v", second)
	}

	done, err := app.CheckInCLI.FollowUps(ctx)
	if err != nil {
		t.Fatalf("follow-ups after submit: %v", err)
	}
	if len(done.Pending) != 0 || len(done.Completed) != 1 {
		t.Fatalf("expected the follow-up to be completed, got %+v", done)
	}

	history, err := app.PredictionCLI.List(ctx)
	if err != nil {
		t.Fatalf("list predictions: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(history))
	}

	summary, err := app.SummaryCLI.Show(ctx, rootID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.PredictionID != rootID || summary.CheckIn || !summary.HasCheckIn || summary.CheckInCount != 1 || !strings.Contains(summary.Markdown, "## Suivi") {
		t.Fatalf("unexpected summary %+v", summary)
	}

	timeline, err := app.SummaryCLI.Timeline(ctx, rootID)
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	if len(timeline) != 2 {
		t.Fatalf("expected initial and follow-up on the timeline, got %+v", timeline)
	}

	dir := t.TempDir()
	exported, err := app.SummaryCLI.ExportPDF(ctx, rootID, dir)
	if err != nil {
		t.Fatalf("export pdf: %v", err)
	}
	downloaded, err := app.SummaryCLI.DownloadPDF(ctx, rootID, filepath.Join(dir, "server.pdf"))
	if err != nil {
		t.Fatalf("download pdf: %v", err)
	}
	for _, out := range []string{exported.Path, downloaded.Path} {
		if filepath.Dir(out) != dir {
			t.Fatalf("expected %s inside %s", out, dir)
		}
		if _, err := os.Stat(out); err != nil {
			t.Fatalf("stat %s: %v", out, err)
		}
	}
	if exported.Pages < 1 || downloaded.Pages < 1 {
		t.Fatalf("expected rendered pages, got %+v / %+v", exported, downloaded)
	}
}

func TestLogoutForgetsSession(t *testing.T) {
	t.Parallel()
	app := newApp(t)
	ctx := context.Background()

	if _, err := app.AuthCLI.Register(ctx, authdto.RegisterInput{
		Email: "bob@example.com", FirstName: "Bob", LastName: "Martin", Lang: "en", Password: "secret1",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := app.AuthCLI.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if app.AuthCLI.IsAuthenticated(ctx) {
		t.Fatalf("expected logout to clear the session")
	}
	if _, err := app.FlowCLI.Evaluate(ctx, []string{"Toux"}, 0); err == nil {
		t.Fatalf("expected evaluate to fail without a session")
	}
}
