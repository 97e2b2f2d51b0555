package service

import (
	"time"

	"diagnocare/internal/modules/prediction/domain"
	predictiondto "diagnocare/internal/modules/prediction/dto"
	"diagnocare/internal/platform/clock"
	"diagnocare/internal/platform/opt"
	"diagnocare/internal/platform/timestamp"
)

const (
	DefaultPathology  = "Pathologie"
	DefaultSpecialist = "Spécialiste"

	TypeFollowUp = "Suivi"
	TypeInitial  = "Initial"
)

// PredictionService maps server records to view DTOs. It is the one place
// where defaults for absent fields are substituted.
type PredictionService struct {
	clock clock.Clock
}

func NewPredictionService(clk clock.Clock) *PredictionService {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &PredictionService{clock: clk}
}

func (s *PredictionService) Prediction(p domain.Prediction) predictiondto.PredictionOutput {
	out := predictiondto.PredictionOutput{
		ID:        p.ID,
		CreatedAt: opt.String(p.CreatedAt, ""),
		Date:      timestamp.Format(p.CreatedAt),
		BestScore: opt.Round(p.BestScore),
		RedAlert:  opt.Bool(p.IsRedAlert),
		Comment:   opt.String(p.Comment, ""),
		FollowUp:  p.IsFollowUp(),
	}
	if p.PreviousPredictionID != nil {
		out.PreviousPredictionID = *p.PreviousPredictionID
	}
	return out
}

func (s *PredictionService) Predictions(items []domain.Prediction) []predictiondto.PredictionOutput {
	out := make([]predictiondto.PredictionOutput, 0, len(items))
	for _, p := range items {
		out = append(out, s.Prediction(p))
	}
	return out
}

func (s *PredictionService) WithResults(r domain.PredictionWithResults) predictiondto.PredictionWithResultsOutput {
	ml := make([]predictiondto.MLPredictionOutput, 0, len(r.MLResults.Predictions))
	for i, p := range r.MLResults.Predictions {
		rank := i + 1
		if p.Rank != nil {
			rank = *p.Rank
		}
		ml = append(ml, predictiondto.MLPredictionOutput{
			Rank:        rank,
			Disease:     opt.String(p.Disease, DefaultPathology),
			Confidence:  opt.Percent(p.Probability),
			Specialist:  opt.String(p.Specialist, DefaultSpecialist),
			Description: opt.String(p.Description, ""),
		})
	}
	return predictiondto.PredictionWithResultsOutput{
		Prediction: s.Prediction(r.Prediction),
		MLResults:  ml,
		Language:   opt.String(r.MLResults.Language, ""),
	}
}

func (s *PredictionService) PathologyResults(items []domain.PathologyResult) []predictiondto.PathologyResultOutput {
	out := make([]predictiondto.PathologyResultOutput, 0, len(items))
	for _, r := range items {
		out = append(out, predictiondto.PathologyResultOutput{
			ID:          r.ID,
			Pathology:   opt.Text(r.PathologyName),
			Specialist:  opt.Text(r.DoctorSpecialistLabel),
			Score:       opt.Round(r.DiseaseScore),
			Description: opt.String(r.Description, ""),
		})
	}
	return out
}

// HistoryItem builds one history row. first is the prediction's first
// pathology result, nil when unknown.
func (s *PredictionService) HistoryItem(p domain.Prediction, first *domain.PathologyResult) predictiondto.HistoryItemOutput {
	item := predictiondto.HistoryItemOutput{
		ID:         p.ID,
		Date:       timestamp.Format(p.CreatedAt),
		Pathology:  opt.Placeholder,
		Specialist: opt.Placeholder,
		Confidence: opt.Round(p.BestScore),
		RedFlag:    opt.Bool(p.IsRedAlert),
		Type:       TypeInitial,
	}
	if at, ok := timestamp.ParsePtr(p.CreatedAt); ok {
		item.At = at
	}
	if p.IsFollowUp() {
		item.Type = TypeFollowUp
	}
	if first != nil {
		item.Pathology = opt.Text(first.PathologyName)
		item.Specialist = opt.Text(first.DoctorSpecialistLabel)
	}
	return item
}

func (s *PredictionService) FilterHistory(items []predictiondto.HistoryItemOutput, filter predictiondto.HistoryFilter) []predictiondto.HistoryItemOutput {
	now := s.clock.Now().UTC()
	out := make([]predictiondto.HistoryItemOutput, 0, len(items))
	for _, it := range items {
		switch filter {
		case predictiondto.HistoryRedFlags:
			if !it.RedFlag {
				continue
			}
		case predictiondto.HistoryThisMonth:
			if !sameMonth(it.At, now) {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func sameMonth(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	return a.Year() == b.Year() && a.Month() == b.Month()
}
