package devserver

import (
	"math"
	"sort"
	"strings"

	catalogdomain "diagnocare/internal/modules/catalog/domain"
	predictiondomain "diagnocare/internal/modules/prediction/domain"
	"diagnocare/internal/platform/opt"
)

var symptomLabels = []string{
	"Fièvre",
	"Toux",
	"Maux de tête",
	"Fatigue",
	"Nausées",
	"Vomissements",
	"Douleur thoracique",
	"Essoufflement",
	"Éruption cutanée",
	"Démangeaisons",
	"Mal de gorge",
	"Congestion nasale",
	"Douleur abdominale",
	"Diarrhée",
	"Vertiges",
	"Sensibilité à la lumière",
	"Palpitations",
	"Courbatures",
	"Raideur de la nuque",
	"Perte d'odorat",
}

func catalog() []catalogdomain.Symptom {
	out := make([]catalogdomain.Symptom, 0, len(symptomLabels))
	for i, label := range symptomLabels {
		labelID := int64(100 + i + 1)
		out = append(out, catalogdomain.Symptom{ID: int64(i + 1), Label: label, SymptomLabelID: &labelID})
	}
	return out
}

type disease struct {
	en, fr       string
	specialistEn string
	specialistFr string
	description  string
	urgent       bool
	symptoms     []string
}

func (d disease) name(lang string) string {
	if lang == "en" {
		return d.en
	}
	return d.fr
}

func (d disease) specialist(lang string) string {
	if lang == "en" {
		return d.specialistEn
	}
	return d.specialistFr
}

// Specialist labels match the embedded specialist directory.
var diseases = []disease{
	{
		en: "Influenza", fr: "Grippe",
		specialistEn: "General practitioner", specialistFr: "Médecin généraliste",
		description: "Repos, hydratation et antipyrétiques si besoin.",
		symptoms:    []string{"Fièvre", "Toux", "Courbatures", "Fatigue", "Maux de tête"},
	},
	{
		en: "Migraine", fr: "Migraine",
		specialistEn: "Neurologist", specialistFr: "Neurologue",
		description: "Repos dans une pièce sombre; consulter si les crises se répètent.",
		symptoms:    []string{"Maux de tête", "Nausées", "Sensibilité à la lumière", "Vertiges"},
	},
	{
		en: "Meningitis", fr: "Méningite",
		specialistEn: "Neurologist", specialistFr: "Neurologue",
		description: "Urgence médicale: consulter immédiatement.",
		urgent:      true,
		symptoms:    []string{"Fièvre", "Maux de tête", "Raideur de la nuque", "Vomissements", "Sensibilité à la lumière"},
	},
	{
		en: "Bronchitis", fr: "Bronchite",
		specialistEn: "Pulmonologist", specialistFr: "Pneumologue",
		description: "Hydratation et surveillance de la respiration.",
		symptoms:    []string{"Toux", "Essoufflement", "Fatigue", "Fièvre"},
	},
	{
		en: "Heart attack", fr: "Infarctus du myocarde",
		specialistEn: "Cardiologist", specialistFr: "Cardiologue",
		description: "Urgence vitale: appeler le 15.",
		urgent:      true,
		symptoms:    []string{"Douleur thoracique", "Essoufflement", "Palpitations", "Nausées"},
	},
	{
		en: "Gastroenteritis", fr: "Gastro-entérite",
		specialistEn: "Gastroenterologist", specialistFr: "Gastro-entérologue",
		description: "Réhydratation orale et alimentation légère.",
		symptoms:    []string{"Nausées", "Vomissements", "Diarrhée", "Douleur abdominale", "Fièvre"},
	},
	{
		en: "Eczema", fr: "Eczéma",
		specialistEn: "Dermatologist", specialistFr: "Dermatologue",
		description: "Émollients et éviction des irritants.",
		symptoms:    []string{"Éruption cutanée", "Démangeaisons"},
	},
	{
		en: "Common cold", fr: "Rhinopharyngite",
		specialistEn: "ENT specialist", specialistFr: "ORL",
		description: "Lavages de nez et repos.",
		symptoms:    []string{"Mal de gorge", "Congestion nasale", "Toux", "Perte d'odorat"},
	},
}

var unspecific = disease{
	en: "Unspecified syndrome", fr: "Syndrome non spécifique",
	specialistEn: "General practitioner", specialistFr: "Médecin généraliste",
	description: "Consulter un médecin généraliste si les symptômes persistent.",
}

type ranked struct {
	disease     disease
	probability float64
}

// predict ranks diseases by symptom overlap. Weights are matches squared over
// the size of the disease profile, normalized into probabilities; at most
// three diseases are returned.
func predict(labels []string) []ranked {
	given := map[string]bool{}
	for _, l := range labels {
		given[strings.ToLower(strings.TrimSpace(l))] = true
	}
	var (
		out   []ranked
		total float64
	)
	for _, d := range diseases {
		matched := 0
		for _, s := range d.symptoms {
			if given[strings.ToLower(s)] {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		w := float64(matched*matched) / float64(len(d.symptoms))
		out = append(out, ranked{disease: d, probability: w})
		total += w
	}
	if len(out) == 0 {
		return []ranked{{disease: unspecific, probability: 0.5}}
	}
	for i := range out {
		out[i].probability = round(out[i].probability/total, 4)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].probability != out[j].probability {
			return out[i].probability > out[j].probability
		}
		return out[i].disease.en < out[j].disease.en
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func mlResponse(rs []ranked, lang string) predictiondomain.MLResponse {
	preds := make([]predictiondomain.MLPrediction, 0, len(rs))
	for i, r := range rs {
		d := r.disease
		preds = append(preds, predictiondomain.MLPrediction{
			Rank:                  opt.Ptr(i + 1),
			Disease:               opt.Ptr(d.name(lang)),
			Probability:           opt.Ptr(r.probability),
			Specialist:            opt.Ptr(d.specialist(lang)),
			SpecialistProbability: opt.Ptr(r.probability),
			Description:           opt.Ptr(d.description),
			DiseaseFr:             opt.Ptr(d.fr),
			SpecialistFr:          opt.Ptr(d.specialistFr),
			DiseaseEn:             opt.Ptr(d.en),
			SpecialistEn:          opt.Ptr(d.specialistEn),
		})
	}
	return predictiondomain.MLResponse{Predictions: preds, Language: opt.Ptr(lang)}
}

// score scales a probability to the 0-100 range used for best and disease
// scores.
func score(probability float64) float64 {
	return round(probability*100, 2)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
