package service

import (
	"fmt"
	"strconv"
	"strings"

	"diagnocare/internal/modules/summary/domain"
	summarydto "diagnocare/internal/modules/summary/dto"
	"diagnocare/internal/platform/markdown"
	"diagnocare/internal/platform/opt"
	"diagnocare/internal/platform/slug"
	"diagnocare/internal/platform/timestamp"
)

const (
	StatusImproving = "Amélioration"
	StatusStable    = "Stable"
	StatusWorsening = "Aggravation"

	TypeFollowUp = "Suivi"
	TypeInitial  = "Initial"
)

func ToOutput(predictionID int64, s domain.Summary) summarydto.SummaryOutput {
	out := summarydto.SummaryOutput{
		PredictionID:         predictionID,
		PatientName:          opt.Text(s.PatientName),
		GeneratedAt:          timestamp.Format(s.GeneratedAt),
		Context:              opt.Text(s.SymptomsDescription),
		Symptoms:             nonNil(s.Symptoms),
		HasRedFlags:          opt.Bool(s.HasRedFlags),
		RedFlags:             nonNil(s.RedFlags),
		RecommendedSpecialty: opt.Text(s.RecommendedSpecialty),
		Questions:            nonNil(s.QuestionsForDoctor),
		Language:             opt.String(s.Language, ""),
		CheckIn:              opt.Bool(s.CheckIn),
		CheckInStatus:        opt.String(s.CheckInStatus, ""),
		CheckInOutcome:       opt.String(s.CheckInOutcome, ""),
		ScoreDelta:           opt.Placeholder,
		CheckInCount:         opt.Or(s.CheckInCount, 0),
	}
	out.HasCheckIn = out.CheckIn || out.CheckInStatus != "" || out.CheckInCount > 0
	if s.BestScoreDelta != nil {
		out.ScoreDelta = strconv.FormatFloat(*s.BestScoreDelta, 'f', -1, 64)
	}
	out.Pathologies = make([]summarydto.PathologyDetailOutput, 0, len(s.PathologyDetails))
	for _, d := range s.PathologyDetails {
		out.Pathologies = append(out.Pathologies, summarydto.PathologyDetailOutput{
			Name:        opt.Text(d.PathologyName),
			Score:       opt.Round(d.DiseaseScore),
			Description: opt.String(d.Description, ""),
			Specialist:  opt.Text(d.Specialist),
		})
	}
	out.Markdown = Markdown(out)
	return out
}

// Timeline maps server events. Outcome labels arrive localized; both the
// French and English spellings are recognized.
func Timeline(s domain.Summary) []summarydto.TimelineEventOutput {
	out := make([]summarydto.TimelineEventOutput, 0, len(s.Timeline))
	for _, e := range s.Timeline {
		ev := summarydto.TimelineEventOutput{
			Date:       timestamp.Format(e.Date),
			Type:       TypeInitial,
			Symptoms:   nonNil(e.Symptoms),
			Confidence: opt.Round(e.Score),
			Status:     timelineStatus(e.Outcome),
		}
		if e.PredictionID != nil {
			ev.PredictionID = *e.PredictionID
		}
		if t := opt.String(e.Type, ""); t == TypeFollowUp || strings.EqualFold(t, "Follow-up") {
			ev.Type = TypeFollowUp
		}
		out = append(out, ev)
	}
	return out
}

func timelineStatus(outcome *string) string {
	v := opt.String(outcome, "")
	switch {
	case v == "":
		return ""
	case v == StatusImproving || strings.EqualFold(v, "Improving"):
		return StatusImproving
	case v == StatusWorsening || strings.EqualFold(v, "Worsening"):
		return StatusWorsening
	default:
		return StatusStable
	}
}

// FileName is the default report file name for a prediction.
func FileName(predictionID int64, patientName string) string {
	return baseName(predictionID, patientName) + ".pdf"
}

func MarkdownFileName(predictionID int64, patientName string) string {
	return baseName(predictionID, patientName) + ".md"
}

func baseName(predictionID int64, patientName string) string {
	name := fmt.Sprintf("diagnocare-summary-%d", predictionID)
	if patientName != "" && patientName != opt.Placeholder {
		name += "-" + slug.Make(patientName)
	}
	return name
}

// Document prefixes the markdown report with frontmatter describing the
// prediction, so saved notes can be indexed without parsing the body.
func Document(s summarydto.SummaryOutput) (string, error) {
	meta := map[string]any{
		"prediction_id": s.PredictionID,
		"patient":       s.PatientName,
		"generated_at":  s.GeneratedAt,
		"red_flags":     s.HasRedFlags,
		"specialty":     s.RecommendedSpecialty,
	}
	if s.Language != "" {
		meta["language"] = s.Language
	}
	if s.HasCheckIn {
		meta["check_in_status"] = s.CheckInStatus
		meta["check_in_outcome"] = s.CheckInOutcome
		meta["check_in_count"] = s.CheckInCount
	}
	return markdown.WithFrontmatter(meta, s.Markdown)
}

func Markdown(s summarydto.SummaryOutput) string {
	var b strings.Builder
	b.WriteString("# Rapport Médical DiagnoCare\n\n")
	fmt.Fprintf(&b, "_Généré le %s_\n\n", s.GeneratedAt)
	if s.HasRedFlags {
		b.WriteString("> **Signaux d'alerte détectés.** Consultez rapidement un médecin.\n")
		for _, f := range s.RedFlags {
			fmt.Fprintf(&b, "> - %s\n", f)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "**Patient:** %s\n\n", s.PatientName)
	fmt.Fprintf(&b, "**Contexte:** %s\n\n", s.Context)

	b.WriteString("## 1. Symptômes déclarés\n\n")
	if len(s.Symptoms) == 0 {
		b.WriteString(opt.Placeholder + "\n")
	}
	for _, sym := range s.Symptoms {
		fmt.Fprintf(&b, "- %s\n", sym)
	}

	b.WriteString("\n## 2. Analyse prédictive\n\n")
	if len(s.Pathologies) == 0 {
		b.WriteString(opt.Placeholder + "\n")
	} else {
		b.WriteString("| Pathologie | Score | Spécialiste |\n|---|---|---|\n")
		for _, p := range s.Pathologies {
			fmt.Fprintf(&b, "| %s | %d%% | %s |\n", p.Name, p.Score, p.Specialist)
		}
	}
	fmt.Fprintf(&b, "\n**Spécialité recommandée:** %s\n", s.RecommendedSpecialty)

	if s.HasCheckIn {
		b.WriteString("\n## Suivi\n\n")
		fmt.Fprintf(&b, "- Statut: %s\n", orPlaceholder(s.CheckInStatus))
		fmt.Fprintf(&b, "- Évolution: %s\n", orPlaceholder(s.CheckInOutcome))
		fmt.Fprintf(&b, "- Variation du score: %s\n", s.ScoreDelta)
		fmt.Fprintf(&b, "- Nombre de suivis: %d\n", s.CheckInCount)
	}

	b.WriteString("\n## 3. Questions suggérées pour la consultation\n\n")
	if len(s.Questions) == 0 {
		b.WriteString(opt.Placeholder + "\n")
	}
	for i, q := range s.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	b.WriteString("\n---\n\nCe document est généré par une IA à titre informatif. Il ne constitue pas un diagnostic médical officiel.\n")
	return b.String()
}

func orPlaceholder(v string) string {
	if v == "" {
		return opt.Placeholder
	}
	return v
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
