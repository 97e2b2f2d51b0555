package service

import (
	checkindto "diagnocare/internal/modules/checkin/dto"
	"diagnocare/internal/modules/flow/domain"
	flowdto "diagnocare/internal/modules/flow/dto"
	predictiondto "diagnocare/internal/modules/prediction/dto"
)

// Result builds the results page from the last prediction. The first model
// prediction is the top pathology.
func Result(last predictiondto.PredictionWithResultsOutput) flowdto.ResultOutput {
	out := flowdto.ResultOutput{
		PredictionID:    last.Prediction.ID,
		Date:            last.Prediction.Date,
		RedAlert:        last.Prediction.RedAlert,
		Others:          []flowdto.PathologyView{},
		Recommendations: []string{},
	}
	if len(last.MLResults) == 0 {
		return out
	}
	top, rest := last.MLResults[0], last.MLResults[1:]
	out.Available = true
	out.Top = flowdto.PathologyView{
		Name:        top.Disease,
		Confidence:  top.Confidence,
		Description: top.Description,
		Specialist:  top.Specialist,
	}
	for _, r := range rest {
		out.Others = append(out.Others, flowdto.PathologyView{Name: r.Disease, Confidence: r.Confidence})
	}
	if top.Description != "" {
		out.Recommendations = append(out.Recommendations, top.Description)
	}
	return out
}

func Dashboard(userName string, predictions []predictiondto.PredictionOutput, checkIns []checkindto.CheckInOutput) flowdto.DashboardOutput {
	out := flowdto.DashboardOutput{
		UserName:         userName,
		TotalEvaluations: len(predictions),
		NextFollowUp:     "—",
		Recent:           []flowdto.RecentEvaluation{},
	}
	for _, p := range predictions {
		if p.RedAlert {
			out.ActiveAlerts++
		}
	}
	out.HasRedFlag = out.ActiveAlerts > 0
	for _, c := range checkIns {
		if !c.Completed {
			out.PendingFollowUps++
		}
	}
	if out.PendingFollowUps > 0 {
		out.NextFollowUp = "24h"
	}
	for i, p := range predictions {
		if i == domain.RecentLimit {
			break
		}
		result := domain.ResultDone
		if p.RedAlert {
			result = domain.ResultAttention
		}
		out.Recent = append(out.Recent, flowdto.RecentEvaluation{
			ID:         p.ID,
			Date:       p.Date,
			Result:     result,
			Confidence: p.BestScore,
			Urgent:     p.RedAlert,
		})
	}
	return out
}
