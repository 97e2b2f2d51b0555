package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"diagnocare/internal/bootstrap"
	"diagnocare/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	apiURL     string
	dataDir    string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "diagnocare",
		Short:         "DiagnoCare terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default <data-dir>/config.yaml)")
	root.PersistentFlags().StringVar(&g.apiURL, "api-url", "", "DiagnoCare API base url")
	root.PersistentFlags().StringVar(&g.dataDir, "data-dir", "", "directory for the session database, logs and reports")

	root.AddCommand(newTUICmd(g))
	root.AddCommand(newAuthCmd(g))
	root.AddCommand(newSymptomsCmd(g))
	root.AddCommand(newEvaluateCmd(g))
	root.AddCommand(newDashboardCmd(g))
	root.AddCommand(newPredictionsCmd(g))
	root.AddCommand(newHistoryCmd(g))
	root.AddCommand(newCheckInsCmd(g))
	root.AddCommand(newSummaryCmd(g))
	root.AddCommand(newProfileCmd(g))
	root.AddCommand(newAccountCmd(g))
	root.AddCommand(newSpecialistsCmd(g))
	root.AddCommand(newDevServerCmd())
	return root
}

func loadApp(g *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.Load(config.Overrides{
		ConfigPath: g.configPath,
		APIBaseURL: g.apiURL,
		DataDir:    g.dataDir,
	})
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// withApp runs fn against a freshly wired app and closes it afterwards.
func withApp(g *globalFlags, fn func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := loadApp(g)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(context.Background(), app)
}

func newTUICmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the DiagnoCare terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(g, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return v, nil
}

// promptLine reads one line from in, used when a secret is not given as a
// flag.
func promptLine(out io.Writer, in io.Reader, label string) (string, error) {
	_, _ = fmt.Fprint(out, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func yesNo(b bool) string {
	if b {
		return "oui"
	}
	return "non"
}
