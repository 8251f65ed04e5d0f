package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/storage"
	"github.com/pribylovaa/go-matrimony/internal/storage/memory"
)

func TestLoad_Embedded(t *testing.T) {
	t.Parallel()

	seed, err := Load("")
	require.NoError(t, err)

	require.Len(t, seed.Profiles, 6)
	require.Len(t, seed.Verifications, 2)
	require.Len(t, seed.Matches, 4)
	require.Len(t, seed.Introductions, 1)
	require.Len(t, seed.Conversations, 2)
	require.Len(t, seed.Payments, 5)

	// Пары и знакомства ссылаются на профили по ключам.
	m := seed.Matches[0]
	require.Equal(t, ID("match-ayesha-rahim"), m.ID)
	require.Equal(t, ID("ayesha"), m.Profile1ID)
	require.Equal(t, ID("rahim"), m.Profile2ID)
	require.Equal(t, 87, m.CompatibilityScore)

	conv := seed.Conversations[0]
	require.Len(t, conv.Messages, 2)
	require.Equal(t, "Thank you, I look forward to it.", conv.LastMessage)
	require.NotNil(t, conv.LastMessageAt)
	require.Equal(t, models.MatchmakerName, conv.Messages[0].SenderName)
	require.Equal(t, ID("ayesha"), conv.Messages[1].SenderID)
}

func TestID_Deterministic(t *testing.T) {
	t.Parallel()

	require.Equal(t, ID("ayesha"), ID("ayesha"))
	require.NotEqual(t, ID("ayesha"), ID("rahim"))

	raw := "8f14e45f-ceea-467a-9af0-1c2d3e4f5a6b"
	require.Equal(t, raw, ID(raw).String())
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
profiles:
  - id: solo
    name: Solo
    age: 30
    gender: male
    status: active
    verification_status: unsubmitted
    signup_at: "2024-01-01T00:00:00Z"
`), 0o600))

	seed, err := Load(path)
	require.NoError(t, err)
	require.Len(t, seed.Profiles, 1)
	require.Empty(t, seed.Matches)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "profiles: [::"},
		{"unknown profile ref", `
verifications:
  - id: v
    profile: ghost
    document_type: passport
    submitted_at: "2024-01-01T00:00:00Z"
`},
		{"bad breakdown", `
profiles:
  - {id: a, name: A, age: 30, gender: male, status: active, signup_at: "2024-01-01T00:00:00Z"}
  - {id: b, name: B, age: 30, gender: female, status: active, signup_at: "2024-01-01T00:00:00Z"}
matches:
  - id: m
    profile1: a
    profile2: b
    score: 80
    breakdown: {values: 120, lifestyle: 80, family: 80, personality: 80}
    status: suggested
    created_at: "2024-01-01T00:00:00Z"
`},
		{"bad timestamp", `
profiles:
  - {id: a, name: A, age: 30, gender: male, status: active, signup_at: "yesterday"}
`},
		{"underage", `
profiles:
  - {id: a, name: A, age: 16, gender: male, status: active, signup_at: "2024-01-01T00:00:00Z"}
`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.ErrorIs(t, err, ErrInvalidFixture)
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	seed, err := Load("")
	require.NoError(t, err)

	st := memory.New()
	require.NoError(t, seed.Apply(context.Background(), st))

	require.NoError(t, st.View(context.Background(), func(tx storage.Tx) error {
		require.Len(t, tx.Profiles(), len(seed.Profiles))
		require.Len(t, tx.Payments(), len(seed.Payments))

		in, err := tx.IntroductionByPair(models.NewPairKey(ID("karim"), ID("tasnim")))
		require.NoError(t, err)
		require.Equal(t, models.IntroductionAcceptedOne, in.Status)

		require.Len(t, tx.NotificationsFor(ID("karim")), 1)
		return nil
	}))

	// Повторная загрузка конфликтует по идентификаторам и ничего не меняет.
	err = seed.Apply(context.Background(), st)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestSeed_CheckCurrencies(t *testing.T) {
	t.Parallel()

	seed, err := Load("")
	require.NoError(t, err)

	full := map[string]decimal.Decimal{
		"BDT": decimal.NewFromInt(1),
		"USD": decimal.NewFromInt(110),
		"GBP": decimal.NewFromInt(140),
	}
	require.NoError(t, seed.CheckCurrencies(full))

	// В seed есть платёж в GBP.
	delete(full, "GBP")
	err = seed.CheckCurrencies(full)
	require.ErrorIs(t, err, ErrInvalidFixture)
	require.ErrorContains(t, err, `"GBP"`)
}
