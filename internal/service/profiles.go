package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/query"
	"github.com/pribylovaa/go-matrimony/internal/storage"
	"github.com/pribylovaa/go-matrimony/pkg/log"
	"github.com/pribylovaa/go-matrimony/pkg/redact"
)

// CreateProfileInput — данные мастера регистрации.
type CreateProfileInput struct {
	Name       string
	Age        int
	Gender     models.Gender
	Location   string
	Education  string
	Occupation string
	Religion   string
	FamilyType models.FamilyType
	Email      string
	Phone      string
}

// UpdateProfileInput — частичное обновление анкеты самим участником.
// Обновляются только поля с ненулевыми указателями.
type UpdateProfileInput struct {
	ID         uuid.UUID
	Name       *string
	Age        *int
	Location   *string
	Education  *string
	Occupation *string
	Religion   *string
	FamilyType *models.FamilyType
	Phone      *string
}

// ProfileFilter — параметры списка профилей.
type ProfileFilter struct {
	PageParams
	Status             string
	VerificationStatus string
	Gender             string
	Religion           string
	FamilyType         string
}

// ProfilePage — страница профилей.
type ProfilePage struct {
	Items []models.Profile `json:"items"`
	Page  query.Page       `json:"page"`
}

// CreateProfile регистрирует участника.
//
// Валидация:
//   - Name, Email обязательны (после TrimSpace); Email — корректный адрес;
//   - Age в [MinAge, MaxAge]; Gender — male/female; FamilyType — пусто/nuclear/joint.
//
// Поведение/ошибки:
//   - профиль создаётся в статусе pending с verification_status=unsubmitted;
//   - ErrAlreadyExists — email уже зарегистрирован (без учёта регистра).
func (s *Service) CreateProfile(ctx context.Context, in CreateProfileInput) (*models.Profile, error) {
	const op = "service/profiles/CreateProfile"

	lg := log.From(ctx).With("op", op)

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if err := validateProfileFields(in.Name, in.Age, in.FamilyType); err != nil {
		return nil, fail(lg, op, err)
	}

	if !in.Gender.Valid() {
		return nil, fail(lg, op, invalid("gender %q", in.Gender))
	}

	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fail(lg, op, invalid("email %q", redact.Email(in.Email)))
	}

	now := s.clock()
	p := models.Profile{
		ID:                 uuid.New(),
		Name:               in.Name,
		Age:                in.Age,
		Gender:             in.Gender,
		Location:           strings.TrimSpace(in.Location),
		Education:          strings.TrimSpace(in.Education),
		Occupation:         strings.TrimSpace(in.Occupation),
		Religion:           strings.TrimSpace(in.Religion),
		FamilyType:         in.FamilyType,
		Email:              in.Email,
		Phone:              strings.TrimSpace(in.Phone),
		Status:             models.ProfilePending,
		VerificationStatus: models.VerificationUnsubmitted,
		SignupAt:           now,
		UpdatedAt:          now,
	}

	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		for _, existing := range tx.Profiles() {
			if strings.EqualFold(existing.Email, p.Email) {
				return fmt.Errorf("%w: email %s", ErrAlreadyExists, redact.Email(p.Email))
			}
		}
		return tx.InsertProfile(p)
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Info("profile created",
		"profile_id", p.ID.String(),
		"email", redact.Email(p.Email),
		"phone", redact.Phone(p.Phone),
	)

	return &p, nil
}

// GetProfile возвращает профиль по идентификатору.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	const op = "service/profiles/GetProfile"

	lg := log.From(ctx).With("op", op, "profile_id", id.String())

	if id == uuid.Nil {
		return nil, fail(lg, op, invalid("empty profile id"))
	}

	var p models.Profile
	err := s.storage.View(ctx, func(tx storage.Tx) error {
		var err error
		p, err = tx.Profile(id)
		return err
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return &p, nil
}

// UpdateProfile применяет частичное обновление анкеты.
// Email и статусы здесь не меняются; пустое обновление — ErrValidation.
func (s *Service) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	const op = "service/profiles/UpdateProfile"

	lg := log.From(ctx).With("op", op, "profile_id", in.ID.String())

	if in.ID == uuid.Nil {
		return nil, fail(lg, op, invalid("empty profile id"))
	}

	if in.Name == nil && in.Age == nil && in.Location == nil && in.Education == nil &&
		in.Occupation == nil && in.Religion == nil && in.FamilyType == nil && in.Phone == nil {
		return nil, fail(lg, op, invalid("nothing to update"))
	}

	var out models.Profile
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		p, err := tx.Profile(in.ID)
		if err != nil {
			return err
		}

		setString := func(dst *string, v *string) {
			if v != nil {
				*dst = strings.TrimSpace(*v)
			}
		}

		setString(&p.Name, in.Name)
		setString(&p.Location, in.Location)
		setString(&p.Education, in.Education)
		setString(&p.Occupation, in.Occupation)
		setString(&p.Religion, in.Religion)
		setString(&p.Phone, in.Phone)
		if in.Age != nil {
			p.Age = *in.Age
		}
		if in.FamilyType != nil {
			p.FamilyType = *in.FamilyType
		}

		if err := validateProfileFields(p.Name, p.Age, p.FamilyType); err != nil {
			return err
		}

		p.UpdatedAt = s.clock()
		if err := tx.SaveProfile(p); err != nil {
			return err
		}

		out = p
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Info("profile updated")

	return &out, nil
}

// ChangeProfileStatus — действие администратора: блокировка, деактивация, восстановление.
// Допустимые переходы описаны в models (ProfileStatus.CanTransitionTo).
// note — причина смены статуса; хранится до следующей смены.
func (s *Service) ChangeProfileStatus(ctx context.Context, id uuid.UUID, to models.ProfileStatus, note string) (*models.Profile, error) {
	const op = "service/profiles/ChangeProfileStatus"

	lg := log.From(ctx).With("op", op, "profile_id", id.String(), "to", string(to))

	if id == uuid.Nil {
		return nil, fail(lg, op, invalid("empty profile id"))
	}

	if !to.Known() {
		return nil, fail(lg, op, invalid("unknown profile status %q", to))
	}

	var (
		out  models.Profile
		from models.ProfileStatus
	)
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		p, err := tx.Profile(id)
		if err != nil {
			return err
		}

		from = p.Status
		if !from.CanTransitionTo(to) {
			return badTransition("profile", from, to)
		}

		p.Status = to
		p.StatusNote = strings.TrimSpace(note)
		p.UpdatedAt = s.clock()
		if err := tx.SaveProfile(p); err != nil {
			return err
		}

		out = p
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	s.metrics.Transition("profile", string(from), string(to))
	lg.Info("profile status changed", "from", string(from))

	return &out, nil
}

// ListProfiles возвращает страницу профилей по фильтру/сортировке.
// Значение фильтра, которого нет в коллекции, даёт пустую страницу с Total=0.
func (s *Service) ListProfiles(ctx context.Context, f ProfileFilter) (*ProfilePage, error) {
	const op = "service/profiles/ListProfiles"

	lg := log.From(ctx).With("op", op)

	params, err := s.params(f.PageParams, map[string]string{
		"status":              f.Status,
		"verification_status": f.VerificationStatus,
		"gender":              f.Gender,
		"religion":            f.Religion,
		"family_type":         f.FamilyType,
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	var items []models.Profile
	if err := s.storage.View(ctx, func(tx storage.Tx) error {
		items = tx.Profiles()
		return nil
	}); err != nil {
		return nil, fail(lg, op, err)
	}

	res, err := s.schemas.profiles.Run(items, params)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return &ProfilePage{Items: res.Items, Page: res.Page}, nil
}

func validateProfileFields(name string, age int, family models.FamilyType) error {
	if name == "" {
		return invalid("empty name")
	}

	if age < models.MinAge || age > models.MaxAge {
		return invalid("age must be within [%d, %d]", models.MinAge, models.MaxAge)
	}

	if family != "" && family != models.FamilyNuclear && family != models.FamilyJoint {
		return invalid("family type %q", family)
	}

	return nil
}
