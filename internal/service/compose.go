package service

import (
	"strings"
	"text/template"

	"github.com/pribylovaa/go-matrimony/internal/compatibility"
	"github.com/pribylovaa/go-matrimony/internal/models"
)

var introductionTemplate = template.Must(template.New("introduction").
	Funcs(template.FuncMap{"join": joinPhrases, "article": withArticle}).
	Parse(`Dear {{.First.Name}} and {{.Second.Name}},

We are delighted to introduce you to each other. {{.First.Name}} ({{.First.Age}}) is {{article .First.Occupation}} based in {{.First.Location}}, and {{.Second.Name}} ({{.Second.Age}}) is {{article .Second.Occupation}} based in {{.Second.Location}}.

Our compatibility assessment shows a {{.Score}}% match{{if .Highlights}}, with particular strength in {{join .Highlights}}{{end}}.

We believe you have a lot in common and encourage you to connect.

Warm regards,
Your Matchmaker`))

// IntroductionDraft — черновик текста знакомства.
type IntroductionDraft struct {
	MatchID    string   `json:"match_id"`
	Score      int      `json:"score"`
	Band       string   `json:"band"`
	Highlights []string `json:"highlights"`
	Message    string   `json:"message"`
}

type draftData struct {
	First      models.Profile
	Second     models.Profile
	Score      int
	Highlights []string
}

// compose подставляет данные пары в шаблон знакомства.
// Сильные стороны — измерения с оценкой не ниже порога, не больше MaxHighlights.
func (s *Service) compose(m models.Match, p1, p2 models.Profile) (IntroductionDraft, error) {
	dims := compatibility.Highlights(
		compatibility.FromMap(m.Breakdown),
		s.cfg.Matching.StrongThreshold,
		s.cfg.Matching.MaxHighlights,
	)

	highlights := make([]string, 0, len(dims))
	for _, d := range dims {
		highlights = append(highlights, compatibility.Label(d))
	}

	var b strings.Builder
	err := introductionTemplate.Execute(&b, draftData{
		First:      p1,
		Second:     p2,
		Score:      m.CompatibilityScore,
		Highlights: highlights,
	})
	if err != nil {
		return IntroductionDraft{}, err
	}

	return IntroductionDraft{
		MatchID:    m.ID.String(),
		Score:      m.CompatibilityScore,
		Band:       string(compatibility.BandOf(m.CompatibilityScore)),
		Highlights: highlights,
		Message:    b.String(),
	}, nil
}

// joinPhrases: "a", "a and b", "a, b and c".
func joinPhrases(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// withArticle добавляет неопределённый артикль к профессии.
func withArticle(noun string) string {
	noun = strings.TrimSpace(noun)
	if noun == "" {
		return "a professional"
	}
	if strings.ContainsRune("AEIOUaeiou", rune(noun[0])) {
		return "an " + noun
	}
	return "a " + noun
}
