package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/query"
	"github.com/pribylovaa/go-matrimony/internal/storage"
	"github.com/pribylovaa/go-matrimony/pkg/log"
)

// Decision — решение администратора по заявке или паре.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Valid сообщает, входит ли значение в перечисление.
func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// SubmitVerificationInput — подача документов на проверку.
type SubmitVerificationInput struct {
	ProfileID    uuid.UUID
	DocumentType models.DocumentType
}

// ResolveVerificationInput — решение по заявке.
type ResolveVerificationInput struct {
	ID       uuid.UUID
	Decision Decision
	Note     string
}

// SubmitVerification создаёт заявку на проверку личности.
//
// Поведение/ошибки:
//   - у профиля может быть не больше одной заявки pending -> иначе ErrAlreadyExists;
//   - уже проверенный профиль -> ErrInvalidStateTransition;
//   - профиль получает verification_status=pending.
func (s *Service) SubmitVerification(ctx context.Context, in SubmitVerificationInput) (*models.Verification, error) {
	const op = "service/verifications/SubmitVerification"

	lg := log.From(ctx).With("op", op, "profile_id", in.ProfileID.String())

	if in.ProfileID == uuid.Nil {
		return nil, fail(lg, op, invalid("empty profile id"))
	}

	if !in.DocumentType.Valid() {
		return nil, fail(lg, op, invalid("document type %q", in.DocumentType))
	}

	now := s.clock()
	v := models.Verification{
		ID:           uuid.New(),
		ProfileID:    in.ProfileID,
		DocumentType: in.DocumentType,
		Status:       models.VerificationRequestPending,
		SubmittedAt:  now,
	}

	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		p, err := tx.Profile(in.ProfileID)
		if err != nil {
			return err
		}

		if p.VerificationStatus == models.VerificationVerified {
			return badTransition("profile verification", p.VerificationStatus, models.VerificationPending)
		}

		if err := tx.InsertVerification(v); err != nil {
			return err
		}

		p.VerificationStatus = models.VerificationPending
		p.UpdatedAt = now
		return tx.SaveProfile(p)
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	lg.Info("verification submitted", "verification_id", v.ID.String())

	return &v, nil
}

// VerificationPage — страница очереди верификации.
type VerificationPage struct {
	Items []VerificationView `json:"items"`
	Page  query.Page         `json:"page"`
}

// VerificationQueue возвращает страницу необработанных заявок (pending) с профилями,
// по умолчанию в порядке подачи.
func (s *Service) VerificationQueue(ctx context.Context, p PageParams) (*VerificationPage, error) {
	const op = "service/verifications/VerificationQueue"

	lg := log.From(ctx).With("op", op)

	if p.Sort.Field == "" {
		p.Sort.Field = "submitted_at"
	}

	params, err := s.params(p, nil)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	var queue []VerificationView
	err = s.storage.View(ctx, func(tx storage.Tx) error {
		idx := indexProfiles(tx.Profiles())
		for _, v := range tx.Verifications() {
			if v.Status != models.VerificationRequestPending {
				continue
			}
			queue = append(queue, VerificationView{Verification: v, Profile: idx.summary(v.ProfileID)})
		}
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	res, err := s.schemas.verifications.Run(queue, params)
	if err != nil {
		return nil, fail(lg, op, err)
	}

	return &VerificationPage{Items: res.Items, Page: res.Page}, nil
}

// ResolveVerification выносит решение по заявке и возвращает обновлённый профиль.
//
// Поведение:
//   - заявка pending -> approved|rejected и исчезает из очереди;
//   - approve: verification_status=verified, профиль pending -> active;
//   - reject: verification_status=rejected;
//   - повторное решение по закрытой заявке -> ErrInvalidStateTransition.
func (s *Service) ResolveVerification(ctx context.Context, in ResolveVerificationInput) (*models.Profile, error) {
	const op = "service/verifications/ResolveVerification"

	lg := log.From(ctx).With("op", op, "verification_id", in.ID.String(), "decision", string(in.Decision))

	if in.ID == uuid.Nil {
		return nil, fail(lg, op, invalid("empty verification id"))
	}

	if !in.Decision.Valid() {
		return nil, fail(lg, op, invalid("decision %q", in.Decision))
	}

	to := models.VerificationRequestApproved
	if in.Decision == DecisionReject {
		to = models.VerificationRequestRejected
	}

	var (
		out        models.Profile
		prevStatus models.ProfileStatus
	)
	err := s.storage.Update(ctx, func(tx storage.Tx) error {
		v, err := tx.Verification(in.ID)
		if err != nil {
			return err
		}

		if !v.Status.CanTransitionTo(to) {
			return badTransition("verification", v.Status, to)
		}

		p, err := tx.Profile(v.ProfileID)
		if err != nil {
			return err
		}

		now := s.clock()
		v.Status = to
		v.ReviewerNote = strings.TrimSpace(in.Note)
		v.ReviewedAt = &now
		if err := tx.SaveVerification(v); err != nil {
			return err
		}

		prevStatus = p.Status
		if to == models.VerificationRequestApproved {
			p.VerificationStatus = models.VerificationVerified
			if p.Status == models.ProfilePending {
				p.Status = models.ProfileActive
			}
		} else {
			p.VerificationStatus = models.VerificationRejected
		}
		p.UpdatedAt = now

		if err := tx.SaveProfile(p); err != nil {
			return err
		}

		out = p
		return nil
	})
	if err != nil {
		return nil, fail(lg, op, err)
	}

	s.metrics.Transition("verification", string(models.VerificationRequestPending), string(to))
	if prevStatus != out.Status {
		s.metrics.Transition("profile", string(prevStatus), string(out.Status))
	}

	lg.Info("verification resolved", "profile_id", out.ID.String())

	s.notify(ctx, lg, models.Notification{
		ProfileID:   out.ID,
		Type:        models.NotificationVerification,
		Title:       verificationTitle(to),
		Description: verificationDescription(to),
		Link:        "/profiles/" + out.ID.String(),
	})

	return &out, nil
}

func verificationTitle(s models.VerificationStatus) string {
	if s == models.VerificationRequestApproved {
		return "Profile verified"
	}
	return "Verification rejected"
}

func verificationDescription(s models.VerificationStatus) string {
	if s == models.VerificationRequestApproved {
		return "Your identity documents were approved."
	}
	return "Your identity documents could not be verified. Please submit them again."
}
