package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/jobseed-gateway/internal/domain"
)

// System instructions and temperatures per operation.
const (
	searchSystem = `Tu es un expert en recrutement suisse.
Trouve des offres d'emploi RÉELLES et ACTUELLES.
Réponds UNIQUEMENT en JSON strict : une liste d'objets avec id, title, company, location, salary, type, url, postedAt, description.
Si rien trouvé : [].`

	analyzeSystem = `Coach carrière expert. Analyse cette offre.
Réponds UNIQUEMENT en JSON strict : { "summary": "...", "insights": "...", "pros": [], "cons": [], "matchScore": 85 }`

	suggestionsSystem = `Conseiller orientation. Suggère 5 métiers précis en Suisse selon profil.
Réponds UNIQUEMENT un tableau JSON de strings. Ex: ["Métier A", "Métier B"]`

	searchTemperature      = 0.1
	analyzeTemperature     = 0.2
	suggestionsTemperature = 0.2
)

// Fallback values returned with a Degraded outcome.
const (
	analysisFailureSummary = "Erreur analyse"
	suggestionFailure      = "Erreur suggestion"
)

var searchOp = Operation[domain.SearchRequest, []domain.JobOffer]{
	Name:        "search",
	System:      searchSystem,
	Temperature: searchTemperature,
	User: func(r domain.SearchRequest) string {
		return fmt.Sprintf(`Offres pour "%s" à "%s". Type: %s.`,
			r.Query,
			orDefault(r.Location, domain.DefaultLocation),
			orDefault(r.Type, domain.DefaultContractType))
	},
	Decode: decodeOffers,
}

var analyzeOp = Operation[domain.AnalyzeRequest, domain.AnalysisResult]{
	Name:        "analyze",
	System:      analyzeSystem,
	Temperature: analyzeTemperature,
	User:        func(r domain.AnalyzeRequest) string { return "Analyse : " + r.URL },
	Decode:      decodeAnalysis,
}

var suggestionsOp = Operation[string, []string]{
	Name:        "suggestions",
	System:      suggestionsSystem,
	Temperature: suggestionsTemperature,
	User:        func(code string) string { return "Profil RIASEC: " + code },
	Decode:      decodeSuggestions,
}

// normalizeParam trims, collapses runs of whitespace and applies Unicode NFC
// so that visually identical input yields identical prompts.
func normalizeParam(s string) string {
	s = whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
	return norm.NFC.String(s)
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ---- decoders ----

var (
	errNullAnswer   = errors.New("model answered null")
	errNoSummary    = errors.New("analysis has no summary")
	errScoreOutside = errors.New("matchScore outside [0,100]")
)

// decodeOffers accepts a JSON array of objects; null decodes as no offers.
func decodeOffers(raw string) ([]domain.JobOffer, error) {
	var jobs []domain.JobOffer
	if err := json.Unmarshal([]byte(raw), &jobs); err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []domain.JobOffer{}
	}
	return jobs, nil
}

func decodeAnalysis(raw string) (domain.AnalysisResult, error) {
	var res domain.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return domain.AnalysisResult{}, err
	}
	if strings.TrimSpace(res.Summary) == "" {
		return domain.AnalysisResult{}, errNoSummary
	}
	if res.MatchScore != nil && (*res.MatchScore < 0 || *res.MatchScore > 100) {
		return domain.AnalysisResult{}, errScoreOutside
	}
	if res.Pros == nil {
		res.Pros = []string{}
	}
	if res.Cons == nil {
		res.Cons = []string{}
	}
	return res, nil
}

func decodeSuggestions(raw string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errNullAnswer
	}
	return out, nil
}
