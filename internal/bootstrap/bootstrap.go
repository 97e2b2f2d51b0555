package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	authinadapter "diagnocare/internal/modules/auth/adapter/in"
	authoutadapter "diagnocare/internal/modules/auth/adapter/out"
	authin "diagnocare/internal/modules/auth/port/in"
	authservice "diagnocare/internal/modules/auth/service"
	authusecase "diagnocare/internal/modules/auth/usecase"
	cataloginadapter "diagnocare/internal/modules/catalog/adapter/in"
	catalogoutadapter "diagnocare/internal/modules/catalog/adapter/out"
	catalogservice "diagnocare/internal/modules/catalog/service"
	catalogusecase "diagnocare/internal/modules/catalog/usecase"
	checkininadapter "diagnocare/internal/modules/checkin/adapter/in"
	checkinoutadapter "diagnocare/internal/modules/checkin/adapter/out"
	checkinusecase "diagnocare/internal/modules/checkin/usecase"
	directoryinadapter "diagnocare/internal/modules/directory/adapter/in"
	directoryoutadapter "diagnocare/internal/modules/directory/adapter/out"
	directoryusecase "diagnocare/internal/modules/directory/usecase"
	flowinadapter "diagnocare/internal/modules/flow/adapter/in"
	flowoutadapter "diagnocare/internal/modules/flow/adapter/out"
	flowusecase "diagnocare/internal/modules/flow/usecase"
	predictioninadapter "diagnocare/internal/modules/prediction/adapter/in"
	predictionoutadapter "diagnocare/internal/modules/prediction/adapter/out"
	predictionservice "diagnocare/internal/modules/prediction/service"
	predictionusecase "diagnocare/internal/modules/prediction/usecase"
	profileinadapter "diagnocare/internal/modules/profile/adapter/in"
	profileoutadapter "diagnocare/internal/modules/profile/adapter/out"
	profileusecase "diagnocare/internal/modules/profile/usecase"
	summaryinadapter "diagnocare/internal/modules/summary/adapter/in"
	summaryoutadapter "diagnocare/internal/modules/summary/adapter/out"
	summaryusecase "diagnocare/internal/modules/summary/usecase"
	"diagnocare/internal/platform/clock"
	"diagnocare/internal/platform/config"
	"diagnocare/internal/platform/httpapi"
	"diagnocare/internal/platform/logging"
	uiapp "diagnocare/internal/ui/app"
	"diagnocare/internal/ui/nav"
)

type App struct {
	AuthCLI       authinadapter.CLIHandler
	CatalogCLI    cataloginadapter.CLIHandler
	PredictionCLI predictioninadapter.CLIHandler
	CheckInCLI    checkininadapter.CLIHandler
	SummaryCLI    summaryinadapter.CLIHandler
	ProfileCLI    profileinadapter.CLIHandler
	FlowCLI       flowinadapter.CLIHandler
	DirectoryCLI  directoryinadapter.CLIHandler

	cfg   config.Config
	log   *zap.Logger
	auth  authin.Usecase
	ports uiapp.Ports
	store *authoutadapter.SQLiteSessionStore
}

type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger replaces the file logger built from the configuration.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

func New(cfg config.Config, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log
	if log == nil {
		var err error
		log, err = logging.New(cfg.LogPath, cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("new logger: %w", err)
		}
	}
	clk := clock.SystemClock{}

	sessions, err := authoutadapter.NewSQLiteSessionStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new session store: %w", err)
	}
	client := httpapi.New(cfg.APIBaseURL, sessions,
		httpapi.WithLanguage(cfg.Lang),
		httpapi.WithTimeout(cfg.RequestTimeout),
		httpapi.WithLogger(log.Named("api")),
	)

	authUC := authusecase.NewInteractor(
		authservice.NewAuthService(sessions, log.Named("auth")),
		authoutadapter.NewHTTPGateway(client),
		sessions,
	)
	catalogUC := catalogusecase.NewInteractor(catalogservice.NewCatalogService(catalogoutadapter.NewHTTPGateway(client)))
	predictionUC := predictionusecase.NewInteractor(
		predictionservice.NewPredictionService(clk),
		predictionoutadapter.NewHTTPGateway(client),
		authUC,
		log.Named("prediction"),
	)
	checkinUC := checkinusecase.NewInteractor(checkinoutadapter.NewHTTPGateway(client), authUC, log.Named("checkin"))
	summaryUC := summaryusecase.NewInteractor(
		summaryoutadapter.NewHTTPGateway(client),
		summaryoutadapter.NewGofpdfRenderer(),
		summaryoutadapter.NewPDFInspector(),
		summaryoutadapter.NewFileSink(cfg.DataDir),
		log.Named("summary"),
	)
	profileUC := profileusecase.NewInteractor(profileoutadapter.NewHTTPGateway(client), authUC, log.Named("profile"))
	flowUC := flowusecase.NewInteractor(
		flowoutadapter.NewMemoryFlowStore(),
		authUC,
		predictionUC,
		checkinUC,
		log.Named("flow"),
	)
	directoryUC := directoryusecase.NewInteractor(directoryoutadapter.NewEmbeddedSource())

	log.Debug("app wired", zap.String("api", cfg.APIBaseURL), zap.String("data_dir", cfg.DataDir))
	return &App{
		AuthCLI:       authinadapter.NewCLIHandler(authUC),
		CatalogCLI:    cataloginadapter.NewCLIHandler(catalogUC),
		PredictionCLI: predictioninadapter.NewCLIHandler(predictionUC),
		CheckInCLI:    checkininadapter.NewCLIHandler(checkinUC),
		SummaryCLI:    summaryinadapter.NewCLIHandler(summaryUC),
		ProfileCLI:    profileinadapter.NewCLIHandler(profileUC),
		FlowCLI:       flowinadapter.NewCLIHandler(flowUC),
		DirectoryCLI:  directoryinadapter.NewCLIHandler(directoryUC),

		cfg:  cfg,
		log:  log,
		auth: authUC,
		ports: uiapp.Ports{
			Auth:        authUC,
			Catalog:     catalogUC,
			Flow:        flowUC,
			Predictions: predictionUC,
			CheckIns:    checkinUC,
			Summaries:   summaryUC,
			Profile:     profileUC,
			Directory:   directoryUC,
		},
		store: sessions,
	}, nil
}

// Close releases the session database and flushes the logger.
func (a *App) Close() error {
	err := a.store.Close()
	_ = a.log.Sync()
	return err
}

func RunTUI(app *App) error {
	ctrl := nav.NewController(app.auth.IsAuthenticated(context.Background()))
	ctrl.Subscribe(func(s nav.State) {
		app.log.Debug("page changed",
			zap.String("page", string(s.Page)),
			zap.Bool("authenticated", s.Authenticated))
	})
	model := uiapp.NewModel(ctrl, app.cfg.Lang, app.ports)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
