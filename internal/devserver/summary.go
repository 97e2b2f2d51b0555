package devserver

import (
	"net/http"
	"sort"
	"strconv"

	"go.uber.org/zap"

	checkindomain "diagnocare/internal/modules/checkin/domain"
	"diagnocare/internal/modules/summary/domain"
	"diagnocare/internal/platform/opt"
	"diagnocare/internal/platform/timestamp"
)

var doctorQuestions = map[string][]string{
	"fr": {
		"Quelle est la cause probable de mes symptômes ?",
		"Quels examens complémentaires sont nécessaires ?",
		"Quel est le traitement recommandé ?",
		"Y a-t-il des mesures préventives à prendre ?",
		"Quand dois-je revenir pour un suivi ?",
	},
	"en": {
		"What is the likely cause of my symptoms?",
		"What additional tests are needed?",
		"What treatment do you recommend?",
		"Are there preventive measures to take?",
		"When should I return for follow-up?",
	},
}

var (
	statusLabels = map[string]map[string]string{
		"fr": {
			checkindomain.StatusPending:   "En attente",
			checkindomain.StatusSent24h:   "Envoyé (24h)",
			checkindomain.StatusSent48h:   "Envoyé (48h)",
			checkindomain.StatusCompleted: "Terminé",
		},
		"en": {
			checkindomain.StatusPending:   "Pending",
			checkindomain.StatusSent24h:   "Sent (24h)",
			checkindomain.StatusSent48h:   "Sent (48h)",
			checkindomain.StatusCompleted: "Completed",
		},
	}
	outcomeLabels = map[string]map[string]string{
		"fr": {
			checkindomain.OutcomeImproving: "Amélioration",
			checkindomain.OutcomeStable:    "Stable",
			checkindomain.OutcomeWorsening: "Aggravation",
		},
		"en": {
			checkindomain.OutcomeImproving: "Improving",
			checkindomain.OutcomeStable:    "Stable",
			checkindomain.OutcomeWorsening: "Worsening",
		},
	}
)

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.ownedEvaluation(r, "id")
	if err != nil {
		s.failErr(w, r, err)
		return
	}
	s.ok(w, r, http.StatusOK, s.summarize(e))
}

func (s *Server) summaryPDF(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	e, err := s.ownedEvaluation(r, "id")
	if err != nil {
		s.mu.Unlock()
		s.failErr(w, r, err)
		return
	}
	summary := s.summarize(e)
	predictionID := e.prediction.ID
	url := "/api/v1/diagnocare/consultation-summaries/" + strconv.FormatInt(predictionID, 10) + "/pdf"
	e.prediction.PDFReportURL = &url
	s.mu.Unlock()

	raw, err := s.pdf.Render(predictionID, summary)
	if err != nil {
		s.log.Error("render summary pdf", zap.Int64("prediction_id", predictionID), zap.Error(err))
		s.fail(w, r, http.StatusInternalServerError, "Error generating PDF: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=consultation-summary-"+strconv.FormatInt(predictionID, 10)+".pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// summarize builds the consultation summary of e. The caller holds s.mu.
func (s *Server) summarize(e *evaluation) domain.Summary {
	lang := s.userLang(e.userID)
	a := s.state.accounts[e.userID]
	redAlert := e.prediction.IsRedAlert != nil && *e.prediction.IsRedAlert

	out := domain.Summary{
		PatientName:          opt.Ptr(a.user.FirstName + " " + a.user.LastName),
		Symptoms:             append([]string{}, e.labels...),
		SymptomsCount:        opt.Ptr(len(e.labels)),
		HasRedFlags:          opt.Ptr(redAlert),
		RedFlags:             []string{},
		PotentialPathologies: []string{},
		PDFURL:               e.prediction.PDFReportURL,
		Language:             opt.Ptr(lang),
		GeneratedAt:          opt.Ptr(s.now()),
	}
	if e.description != "" {
		out.SymptomsDescription = opt.Ptr(e.description)
	}
	if redAlert {
		msg := "Alerte rouge détectée - Consultation urgente recommandée"
		if lang == "en" {
			msg = "Red flag detected - urgent consultation recommended"
		}
		out.RedFlags = []string{msg}
	}
	for _, res := range e.results {
		out.PotentialPathologies = append(out.PotentialPathologies, opt.String(res.PathologyName, ""))
		out.PathologyDetails = append(out.PathologyDetails, domain.PathologyDetail{
			PathologyName: res.PathologyName,
			DiseaseScore:  res.DiseaseScore,
			Description:   res.Description,
			Specialist:    res.DoctorSpecialistLabel,
		})
	}
	if len(e.results) > 0 {
		out.RecommendedSpecialty = e.results[0].DoctorSpecialistLabel
	} else if lang == "en" {
		out.RecommendedSpecialty = opt.Ptr("General medicine")
	} else {
		out.RecommendedSpecialty = opt.Ptr("Médecine générale")
	}
	questions := append([]string{}, doctorQuestions[lang]...)
	if len(out.PotentialPathologies) > 0 {
		if lang == "en" {
			questions = append(questions, "Are these potential pathologies concerning?")
		} else {
			questions = append(questions, "Ces pathologies potentielles sont-elles préoccupantes ?")
		}
	}
	out.QuestionsForDoctor = questions

	s.applyCheckIn(&out, e, lang)
	out.Timeline = s.timeline(e, lang)
	return out
}

func (s *Server) applyCheckIn(out *domain.Summary, e *evaluation, lang string) {
	followUp := e.prediction.IsFollowUp()
	out.CheckIn = opt.Ptr(followUp)
	out.CurrentBestScore = e.prediction.BestScore
	lookup := e.prediction.ID
	if followUp {
		prev, ok := s.state.evaluation(*e.prediction.PreviousPredictionID)
		if ok {
			out.PreviousPredictionID = opt.Ptr(prev.prediction.ID)
			out.PreviousBestScore = prev.prediction.BestScore
			out.BestScoreDelta = delta(prev, e)
		}
		lookup = *e.prediction.PreviousPredictionID
	}
	if c, ok := s.state.checkInFor(lookup, e.userID); ok {
		out.CheckInStatus = localized(statusLabels, lang, c.Status)
		if c.Outcome != nil {
			out.CheckInOutcome = localized(outcomeLabels, lang, *c.Outcome)
		}
		out.WorseReason = c.WorseReason
	}
	out.CheckInCount = opt.Ptr(len(s.state.checkInsOf(e.userID)))
}

// timeline lists every prediction sharing e's root, newest first.
func (s *Server) timeline(e *evaluation, lang string) []domain.TimelineEvent {
	root := s.state.root(e)
	var scoped []*evaluation
	for _, candidate := range s.state.evaluationsOf(e.userID) {
		if s.state.root(candidate) == root {
			scoped = append(scoped, candidate)
		}
	}
	sort.SliceStable(scoped, func(i, j int) bool {
		a, _ := timestamp.ParsePtr(scoped[i].prediction.CreatedAt)
		b, _ := timestamp.ParsePtr(scoped[j].prediction.CreatedAt)
		return a.After(b)
	})

	events := make([]domain.TimelineEvent, 0, len(scoped))
	for _, p := range scoped {
		followUp := p.prediction.IsFollowUp()
		kind := "Initial"
		lookup := p.prediction.ID
		if followUp {
			kind = "Suivi"
			if lang == "en" {
				kind = "Follow-up"
			}
			lookup = *p.prediction.PreviousPredictionID
		}
		ev := domain.TimelineEvent{
			PredictionID: opt.Ptr(p.prediction.ID),
			Type:         opt.Ptr(kind),
			Date:         p.prediction.CreatedAt,
			Symptoms:     append([]string{}, p.labels...),
			Score:        p.prediction.BestScore,
		}
		if followUp {
			if prev, ok := s.state.evaluation(lookup); ok {
				ev.Delta = delta(prev, p)
			}
		}
		if c, ok := s.state.checkInFor(lookup, p.userID); ok {
			ev.Status = localized(statusLabels, lang, c.Status)
			if c.Outcome != nil {
				ev.Outcome = localized(outcomeLabels, lang, *c.Outcome)
			}
		}
		events = append(events, ev)
	}
	return events
}

func localized(labels map[string]map[string]string, lang, key string) *string {
	if v, ok := labels[lang][key]; ok {
		return &v
	}
	return &key
}
