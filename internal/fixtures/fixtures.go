// fixtures загружает начальные данные сервиса из YAML.
//
// По умолчанию используется встроенный seed.yaml; путь из конфигурации
// (fixtures.path) подменяет его внешним файлом того же формата.
package fixtures

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/pribylovaa/go-matrimony/internal/compatibility"
	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/storage"
)

//go:embed seed.yaml
var embedded []byte

// ErrInvalidFixture — seed не проходит проверку (битый ключ, ссылка, значение).
var ErrInvalidFixture = errors.New("invalid fixture")

// namespace для детерминированных UUID из коротких ключей.
var namespace = uuid.MustParse("6f1c3a52-2d0e-4b8f-9a57-0c4e1e7b9d21")

// ID возвращает UUID для ключа seed. Ключ, уже являющийся UUID, возвращается как есть.
func ID(key string) uuid.UUID {
	if id, err := uuid.Parse(key); err == nil {
		return id
	}
	return uuid.NewSHA1(namespace, []byte(key))
}

// Seed — разобранные начальные данные.
type Seed struct {
	Profiles      []models.Profile
	Verifications []models.Verification
	Matches       []models.Match
	Introductions []models.Introduction
	Conversations []models.Conversation
	Payments      []models.Payment
	Notifications []models.Notification
}

type document struct {
	Profiles []struct {
		ID                 string `yaml:"id"`
		Name               string `yaml:"name"`
		Age                int    `yaml:"age"`
		Gender             string `yaml:"gender"`
		Location           string `yaml:"location"`
		Education          string `yaml:"education"`
		Occupation         string `yaml:"occupation"`
		Religion           string `yaml:"religion"`
		FamilyType         string `yaml:"family_type"`
		Email              string `yaml:"email"`
		Phone              string `yaml:"phone"`
		Status             string `yaml:"status"`
		VerificationStatus string `yaml:"verification_status"`
		Views              int    `yaml:"views"`
		InterestsReceived  int    `yaml:"interests_received"`
		SignupAt           string `yaml:"signup_at"`
	} `yaml:"profiles"`

	Verifications []struct {
		ID           string `yaml:"id"`
		Profile      string `yaml:"profile"`
		DocumentType string `yaml:"document_type"`
		SubmittedAt  string `yaml:"submitted_at"`
	} `yaml:"verifications"`

	Matches []struct {
		ID        string         `yaml:"id"`
		Profile1  string         `yaml:"profile1"`
		Profile2  string         `yaml:"profile2"`
		Score     int            `yaml:"score"`
		Breakdown map[string]int `yaml:"breakdown"`
		Status    string         `yaml:"status"`
		Notes     string         `yaml:"notes"`
		CreatedAt string         `yaml:"created_at"`
	} `yaml:"matches"`

	Introductions []struct {
		ID               string `yaml:"id"`
		Match            string `yaml:"match"`
		Status           string `yaml:"status"`
		Message          string `yaml:"message"`
		Profile1Response string `yaml:"profile1_response"`
		Profile2Response string `yaml:"profile2_response"`
		Outcome          string `yaml:"outcome"`
		CreatedAt        string `yaml:"created_at"`
		SentAt           string `yaml:"sent_at"`
	} `yaml:"introductions"`

	Conversations []struct {
		ID       string `yaml:"id"`
		Profile  string `yaml:"profile"`
		Title    string `yaml:"title"`
		Unread   int    `yaml:"unread"`
		Messages []struct {
			FromMatchmaker bool   `yaml:"from_matchmaker"`
			Content        string `yaml:"content"`
			SentAt         string `yaml:"sent_at"`
		} `yaml:"messages"`
	} `yaml:"conversations"`

	Payments []struct {
		ID        string `yaml:"id"`
		Profile   string `yaml:"profile"`
		Amount    string `yaml:"amount"`
		Currency  string `yaml:"currency"`
		Method    string `yaml:"method"`
		Status    string `yaml:"status"`
		Type      string `yaml:"type"`
		Reference string `yaml:"reference"`
		CreatedAt string `yaml:"created_at"`
	} `yaml:"payments"`

	Notifications []struct {
		Profile     string `yaml:"profile"`
		Type        string `yaml:"type"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Link        string `yaml:"link"`
		Read        bool   `yaml:"read"`
		CreatedAt   string `yaml:"created_at"`
	} `yaml:"notifications"`
}

// Load читает seed из path; пустой path — встроенный seed.yaml.
func Load(path string) (*Seed, error) {
	const op = "fixtures/Load"

	data := embedded
	if path = strings.TrimSpace(path); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		data = b
	}

	seed, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return seed, nil
}

// Parse разбирает и проверяет YAML-документ seed.
func Parse(data []byte) (*Seed, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	p := parser{
		profiles: make(map[uuid.UUID]models.Profile),
		matches:  make(map[uuid.UUID]models.Match),
	}

	seed := &Seed{}

	for _, d := range doc.Profiles {
		prof := models.Profile{
			ID:                 ID(d.ID),
			Name:               d.Name,
			Age:                d.Age,
			Gender:             models.Gender(d.Gender),
			Location:           d.Location,
			Education:          d.Education,
			Occupation:         d.Occupation,
			Religion:           d.Religion,
			FamilyType:         models.FamilyType(d.FamilyType),
			Email:              d.Email,
			Phone:              d.Phone,
			Status:             models.ProfileStatus(d.Status),
			VerificationStatus: models.VerificationState(d.VerificationStatus),
			Counters:           models.ProfileCounters{Views: d.Views, InterestsReceived: d.InterestsReceived},
			SignupAt:           p.time(d.SignupAt),
		}
		prof.UpdatedAt = prof.SignupAt

		if !prof.Gender.Valid() || !prof.Status.Known() || prof.Age < models.MinAge || prof.Age > models.MaxAge {
			p.fail("profile %q: bad gender/status/age", d.ID)
		}

		p.profiles[prof.ID] = prof
		seed.Profiles = append(seed.Profiles, prof)
	}

	for _, d := range doc.Verifications {
		v := models.Verification{
			ID:           ID(d.ID),
			ProfileID:    p.profile(d.Profile).ID,
			DocumentType: models.DocumentType(d.DocumentType),
			Status:       models.VerificationRequestPending,
			SubmittedAt:  p.time(d.SubmittedAt),
		}
		if !v.DocumentType.Valid() {
			p.fail("verification %q: bad document type %q", d.ID, d.DocumentType)
		}
		seed.Verifications = append(seed.Verifications, v)
	}

	for _, d := range doc.Matches {
		m := models.Match{
			ID:                 ID(d.ID),
			Profile1ID:         p.profile(d.Profile1).ID,
			Profile2ID:         p.profile(d.Profile2).ID,
			CompatibilityScore: d.Score,
			Breakdown:          d.Breakdown,
			Status:             models.MatchStatus(d.Status),
			Notes:              d.Notes,
			Version:            1,
			CreatedAt:          p.time(d.CreatedAt),
		}
		m.UpdatedAt = m.CreatedAt

		b := compatibility.FromMap(m.Breakdown)
		if err := compatibility.Validate(b, compatibility.SetFor(b)); err != nil {
			p.fail("match %q: %v", d.ID, err)
		}
		if err := compatibility.ValidateScore(m.CompatibilityScore); err != nil {
			p.fail("match %q: %v", d.ID, err)
		}
		if !m.Status.Known() || m.Profile1ID == m.Profile2ID {
			p.fail("match %q: bad status or pair", d.ID)
		}

		p.matches[m.ID] = m
		seed.Matches = append(seed.Matches, m)
	}

	for _, d := range doc.Introductions {
		m, ok := p.matches[ID(d.Match)]
		if !ok {
			p.fail("introduction %q: unknown match %q", d.ID, d.Match)
		}

		in := models.Introduction{
			ID:               ID(d.ID),
			MatchID:          m.ID,
			Profile1ID:       m.Profile1ID,
			Profile2ID:       m.Profile2ID,
			Status:           models.IntroductionStatus(d.Status),
			Message:          d.Message,
			Profile1Response: models.Response(d.Profile1Response),
			Profile2Response: models.Response(d.Profile2Response),
			Outcome:          d.Outcome,
			Version:          1,
			CreatedAt:        p.time(d.CreatedAt),
			SentAt:           p.optTime(d.SentAt),
		}
		if !in.Status.Known() {
			p.fail("introduction %q: bad status %q", d.ID, d.Status)
		}

		seed.Introductions = append(seed.Introductions, in)
	}

	for _, d := range doc.Conversations {
		prof := p.profile(d.Profile)
		c := models.Conversation{
			ID:          ID(d.ID),
			ProfileID:   prof.ID,
			Title:       d.Title,
			UnreadCount: d.Unread,
		}

		for _, dm := range d.Messages {
			msg := models.Message{
				ID:               uuid.NewSHA1(c.ID, []byte(dm.SentAt+dm.Content)),
				ConversationID:   c.ID,
				Content:          dm.Content,
				IsFromMatchmaker: dm.FromMatchmaker,
				SentAt:           p.time(dm.SentAt),
			}
			if dm.FromMatchmaker {
				msg.SenderName = models.MatchmakerName
			} else {
				msg.SenderID = prof.ID
				msg.SenderName = prof.Name
			}
			c.Append(msg)
		}

		seed.Conversations = append(seed.Conversations, c)
	}

	for _, d := range doc.Payments {
		prof := p.profile(d.Profile)

		amount, err := decimal.NewFromString(d.Amount)
		if err != nil || !amount.IsPositive() {
			p.fail("payment %q: bad amount %q", d.ID, d.Amount)
		}

		pay := models.Payment{
			ID:        ID(d.ID),
			ProfileID: prof.ID,
			PayerName: prof.Name,
			Amount:    amount,
			Currency:  strings.ToUpper(d.Currency),
			Method:    d.Method,
			Status:    models.PaymentStatus(d.Status),
			Type:      models.PaymentType(d.Type),
			Reference: d.Reference,
			CreatedAt: p.time(d.CreatedAt),
		}
		pay.UpdatedAt = pay.CreatedAt

		if !pay.Status.Known() || !pay.Type.Valid() {
			p.fail("payment %q: bad status/type", d.ID)
		}

		seed.Payments = append(seed.Payments, pay)
	}

	for i, d := range doc.Notifications {
		n := models.Notification{
			ID:          uuid.NewSHA1(namespace, []byte(fmt.Sprintf("notification-%d", i))),
			ProfileID:   p.profile(d.Profile).ID,
			Type:        models.NotificationType(d.Type),
			Title:       d.Title,
			Description: d.Description,
			Link:        d.Link,
			IsRead:      d.Read,
			CreatedAt:   p.time(d.CreatedAt),
		}
		seed.Notifications = append(seed.Notifications, n)
	}

	if p.err != nil {
		return nil, p.err
	}

	return seed, nil
}

// CheckCurrencies проверяет, что у каждой валюты платежей есть курс в rates.
func (s *Seed) CheckCurrencies(rates map[string]decimal.Decimal) error {
	for _, pay := range s.Payments {
		if _, ok := rates[pay.Currency]; !ok {
			return fmt.Errorf("%w: payment %s: no conversion rate for currency %q", ErrInvalidFixture, pay.ID, pay.Currency)
		}
	}
	return nil
}

// Apply записывает seed в хранилище одной атомарной операцией.
func (s *Seed) Apply(ctx context.Context, st storage.Storage) error {
	const op = "fixtures/Apply"

	err := st.Update(ctx, func(tx storage.Tx) error {
		for _, v := range s.Profiles {
			if err := tx.InsertProfile(v); err != nil {
				return fmt.Errorf("profile %s: %w", v.ID, err)
			}
		}
		for _, v := range s.Verifications {
			if err := tx.InsertVerification(v); err != nil {
				return fmt.Errorf("verification %s: %w", v.ID, err)
			}
		}
		for _, v := range s.Matches {
			if err := tx.InsertMatch(v); err != nil {
				return fmt.Errorf("match %s: %w", v.ID, err)
			}
		}
		for _, v := range s.Introductions {
			if err := tx.InsertIntroduction(v); err != nil {
				return fmt.Errorf("introduction %s: %w", v.ID, err)
			}
		}
		for _, v := range s.Conversations {
			if err := tx.InsertConversation(v); err != nil {
				return fmt.Errorf("conversation %s: %w", v.ID, err)
			}
		}
		for _, v := range s.Payments {
			if err := tx.InsertPayment(v); err != nil {
				return fmt.Errorf("payment %s: %w", v.ID, err)
			}
		}
		for _, v := range s.Notifications {
			if err := tx.InsertNotification(v); err != nil {
				return fmt.Errorf("notification %s: %w", v.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// parser накапливает первую ошибку разбора, чтобы не проверять её на каждом поле.
type parser struct {
	profiles map[uuid.UUID]models.Profile
	matches  map[uuid.UUID]models.Match
	err      error
}

func (p *parser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s", ErrInvalidFixture, fmt.Sprintf(format, args...))
	}
}

func (p *parser) profile(key string) models.Profile {
	prof, ok := p.profiles[ID(key)]
	if !ok {
		p.fail("unknown profile %q", key)
	}
	return prof
}

func (p *parser) time(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		p.fail("bad timestamp %q", s)
	}
	return t.UTC()
}

func (p *parser) optTime(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t := p.time(s)
	return &t
}
