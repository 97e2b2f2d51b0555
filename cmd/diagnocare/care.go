package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"diagnocare/internal/bootstrap"
	profiledto "diagnocare/internal/modules/profile/dto"
)

func newSymptomsCmd(g *globalFlags) *cobra.Command {
	symptoms := &cobra.Command{Use: "symptoms", Short: "Browse the symptom catalog"}

	symptoms.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every symptom",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.CatalogCLI.List(ctx)
				if err != nil {
					return err
				}
				for _, s := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", s.ID, s.Label)
				}
				return nil
			})
		},
	})
	symptoms.AddCommand(&cobra.Command{
		Use:   "search <label>",
		Short: "Search symptoms by label on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.CatalogCLI.Search(ctx, args[0])
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "aucun symptôme")
					return nil
				}
				for _, s := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", s.ID, s.Label)
				}
				return nil
			})
		},
	})
	return symptoms
}

func newEvaluateCmd(g *globalFlags) *cobra.Command {
	var (
		symptoms []string
		followUp int64
	)
	cmd := &cobra.Command{
		Use:   "evaluate --symptom <label>...",
		Short: "Evaluate symptoms, or record a follow-up with --follow-up",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.FlowCLI.Evaluate(ctx, symptoms, followUp)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if out.FollowUp {
					_, _ = fmt.Fprintf(w, "suivi enregistré pour l'évaluation #%d\n", followUp)
					if out.HasLast {
						_, _ = fmt.Fprintf(w, "nouvelle évaluation #%d (%s)\n", out.Last.Prediction.ID, out.Last.Prediction.Date)
					}
					return nil
				}
				res, err := app.FlowCLI.Result(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "évaluation #%d du %s\n", res.PredictionID, res.Date)
				if res.RedAlert {
					_, _ = fmt.Fprintln(w, "ALERTE: consultation urgente recommandée")
				}
				if !res.Available {
					_, _ = fmt.Fprintln(w, "aucun résultat disponible")
					return nil
				}
				_, _ = fmt.Fprintf(w, "résultat principal: %s (%d%%) - %s\n", res.Top.Name, res.Top.Confidence, res.Top.Specialist)
				for _, o := range res.Others {
					_, _ = fmt.Fprintf(w, "  %s (%d%%) - %s\n", o.Name, o.Confidence, o.Specialist)
				}
				for _, r := range res.Recommendations {
					_, _ = fmt.Fprintf(w, "recommandation: %s\n", r)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&symptoms, "symptom", nil, "symptom label (repeatable)")
	cmd.Flags().Int64Var(&followUp, "follow-up", 0, "previous prediction id to follow up")
	return cmd
}

func newDashboardCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize evaluations, alerts and pending follow-ups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				d, err := app.FlowCLI.Dashboard(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "bonjour %s\n", d.UserName)
				_, _ = fmt.Fprintf(w, "évaluations: %d\nalertes actives: %d\nsuivis en attente: %d\n", d.TotalEvaluations, d.ActiveAlerts, d.PendingFollowUps)
				if d.NextFollowUp != "" {
					_, _ = fmt.Fprintf(w, "prochain suivi: %s\n", d.NextFollowUp)
				}
				for _, r := range d.Recent {
					urgent := ""
					if r.Urgent {
						urgent = "\turgent"
					}
					_, _ = fmt.Fprintf(w, "  #%d\t%s\t%s\t%d%%%s\n", r.ID, r.Date, r.Result, r.Confidence, urgent)
				}
				return nil
			})
		},
	}
}

func newPredictionsCmd(g *globalFlags) *cobra.Command {
	predictions := &cobra.Command{Use: "predictions", Short: "Inspect past evaluations"}

	predictions.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List my evaluations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.PredictionCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "aucune évaluation")
					return nil
				}
				for _, p := range items {
					kind := "Initial"
					if p.FollowUp {
						kind = fmt.Sprintf("Suivi de #%d", p.PreviousPredictionID)
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d%%\talerte=%s\t%s\n", p.ID, p.Date, p.BestScore, yesNo(p.RedAlert), kind)
				}
				return nil
			})
		},
	})
	predictions.AddCommand(&cobra.Command{
		Use:   "show <predictionId>",
		Short: "Show one evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			predictionID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.PredictionCLI.Show(ctx, predictionID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), p)
			})
		},
	})
	predictions.AddCommand(&cobra.Command{
		Use:   "results <predictionId>",
		Short: "List the pathology results of an evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			predictionID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.PredictionCLI.Results(ctx, predictionID)
				if err != nil {
					return err
				}
				for _, r := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d%%\t%s\n", r.Pathology, r.Score, r.Specialist)
				}
				return nil
			})
		},
	})
	return predictions
}

func newHistoryCmd(g *globalFlags) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the evaluation history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.PredictionCLI.History(ctx, filter)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "historique vide")
					return nil
				}
				for _, it := range items {
					flag := ""
					if it.RedFlag {
						flag = "\tALERTE"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%d%%\t%s%s\n", it.ID, it.Date, it.Pathology, it.Specialist, it.Confidence, it.Type, flag)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all|red-flags|this-month")
	return cmd
}

func newCheckInsCmd(g *globalFlags) *cobra.Command {
	checkins := &cobra.Command{Use: "checkins", Short: "Follow-up check-ins"}

	checkins.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all check-ins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.CheckInCLI.List(ctx)
				if err != nil {
					return err
				}
				for _, c := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\tévaluation #%d\t%s\t%s\t%s\tΔ %s\n", c.ID, c.PreviousPredictionID, c.Status, c.Date, c.EvolutionLabel, c.ScoreDelta)
				}
				return nil
			})
		},
	})
	checkins.AddCommand(&cobra.Command{
		Use:   "followups",
		Short: "Split check-ins into pending and completed follow-ups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.CheckInCLI.FollowUps(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "en attente (%d)\n", len(out.Pending))
				for _, c := range out.Pending {
					_, _ = fmt.Fprintf(w, "  évaluation #%d\trappel %s\n", c.PreviousPredictionID, c.Date)
				}
				_, _ = fmt.Fprintf(w, "terminés (%d)\n", len(out.Completed))
				for _, c := range out.Completed {
					_, _ = fmt.Fprintf(w, "  évaluation #%d\t%s\t%s\tΔ %s\n", c.PreviousPredictionID, c.Date, c.EvolutionLabel, c.ScoreDelta)
				}
				return nil
			})
		},
	})
	return checkins
}

func newSummaryCmd(g *globalFlags) *cobra.Command {
	summary := &cobra.Command{Use: "summary", Short: "Consultation summaries"}

	summary.AddCommand(&cobra.Command{
		Use:   "show <predictionId>",
		Short: "Print the consultation summary as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			predictionID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.SummaryCLI.Show(ctx, predictionID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), s.Markdown)
				return nil
			})
		},
	})
	summary.AddCommand(&cobra.Command{
		Use:   "timeline <predictionId>",
		Short: "Print the evaluation timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			predictionID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				events, err := app.SummaryCLI.Timeline(ctx, predictionID)
				if err != nil {
					return err
				}
				for _, e := range events {
					status := e.Status
					if status == "" {
						status = "-"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d%%\t%s\t%s\n", e.PredictionID, e.Date, e.Type, e.Confidence, status, strings.Join(e.Symptoms, ", "))
				}
				return nil
			})
		},
	})

	var pdfOut string
	pdf := &cobra.Command{
		Use:   "pdf <predictionId>",
		Short: "Download the server-rendered PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			predictionID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SummaryCLI.DownloadPDF(ctx, predictionID, pdfOut)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pdf enregistré: %s (%d pages, %d octets)\n", out.Path, out.Pages, out.Bytes)
				return nil
			})
		},
	}
	pdf.Flags().StringVar(&pdfOut, "out", "", "output file or directory (default: data dir)")

	var exportOut string
	export := &cobra.Command{
		Use:   "export <predictionId>",
		Short: "Render the summary PDF locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			predictionID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SummaryCLI.ExportPDF(ctx, predictionID, exportOut)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pdf exporté: %s (%d pages, %d octets)\n", out.Path, out.Pages, out.Bytes)
				return nil
			})
		},
	}
	export.Flags().StringVar(&exportOut, "out", "", "output file or directory (default: data dir)")

	var mdOut string
	note := &cobra.Command{
		Use:   "markdown <predictionId>",
		Short: "Save the summary as a markdown note with frontmatter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			predictionID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SummaryCLI.ExportMarkdown(ctx, predictionID, mdOut)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note enregistrée: %s (%d octets)\n", out.Path, out.Bytes)
				return nil
			})
		},
	}
	note.Flags().StringVar(&mdOut, "out", "", "output file or directory (default: data dir)")

	summary.AddCommand(pdf, export, note)
	return summary
}

func newProfileCmd(g *globalFlags) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Medical profile"}

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the medical profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.ProfileCLI.Show(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), p)
			})
		},
	})

	var (
		age                       int
		gender, antecedents       string
		weight, bp, chol, bmi     float64
		smoking, sedentary, drink bool
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Update the medical profile; only the given flags change",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := profiledto.ProfileInput{}
			flags := cmd.Flags()
			if flags.Changed("age") {
				in.Age = &age
			}
			if flags.Changed("gender") {
				v := strings.ToUpper(strings.TrimSpace(gender))
				in.Gender = &v
			}
			if flags.Changed("weight") {
				in.Weight = &weight
			}
			if flags.Changed("blood-pressure") {
				in.MeanBloodPressure = &bp
			}
			if flags.Changed("cholesterol") {
				in.MeanCholesterol = &chol
			}
			if flags.Changed("bmi") {
				in.BMI = &bmi
			}
			if flags.Changed("smoking") {
				in.IsSmoking = &smoking
			}
			if flags.Changed("sedentary") {
				in.Sedentary = &sedentary
			}
			if flags.Changed("alcohol") {
				in.Alcohol = &drink
			}
			if flags.Changed("antecedents") {
				in.FamilyAntecedents = &antecedents
			}
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.ProfileCLI.Set(ctx, in)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), p)
			})
		},
	}
	set.Flags().IntVar(&age, "age", 0, "age in years")
	set.Flags().StringVar(&gender, "gender", "", "MALE|FEMALE|OTHER")
	set.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
	set.Flags().Float64Var(&bp, "blood-pressure", 0, "mean blood pressure")
	set.Flags().Float64Var(&chol, "cholesterol", 0, "mean cholesterol")
	set.Flags().Float64Var(&bmi, "bmi", 0, "body mass index")
	set.Flags().BoolVar(&smoking, "smoking", false, "smoker")
	set.Flags().BoolVar(&sedentary, "sedentary", false, "sedentary lifestyle")
	set.Flags().BoolVar(&drink, "alcohol", false, "regular alcohol use")
	set.Flags().StringVar(&antecedents, "antecedents", "", "family antecedents, comma separated")

	profile.AddCommand(set)
	return profile
}

func newSpecialistsCmd(g *globalFlags) *cobra.Command {
	var (
		specialty   string
		specialties bool
	)
	cmd := &cobra.Command{
		Use:   "specialists [query]",
		Short: "Search the specialist directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return withApp(g, func(ctx context.Context, app *bootstrap.App) error {
				if specialties {
					names, err := app.DirectoryCLI.Specialties(ctx)
					if err != nil {
						return err
					}
					for _, n := range names {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
					}
					return nil
				}
				items, err := app.DirectoryCLI.Search(ctx, specialty, query)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "aucun spécialiste")
					return nil
				}
				for _, s := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%.1f (%d avis)\t%s\n", s.Name, s.Specialty, s.Distance, s.Address, s.Rating, s.ReviewCount, s.NextAvailability)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&specialty, "specialty", "", "filter by specialty, e.g. Neurologue")
	cmd.Flags().BoolVar(&specialties, "specialties", false, "list the known specialties instead")
	return cmd
}
