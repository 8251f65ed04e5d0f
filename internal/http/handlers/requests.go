package handlers

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pribylovaa/go-matrimony/internal/models"
	"github.com/pribylovaa/go-matrimony/internal/service"
)

// Тела запросов REST API. ID сущностей берутся из пути.

type CreateProfileRequest struct {
	Name       string            `json:"name"`
	Age        int               `json:"age"`
	Gender     models.Gender     `json:"gender"`
	Location   string            `json:"location"`
	Education  string            `json:"education"`
	Occupation string            `json:"occupation"`
	Religion   string            `json:"religion"`
	FamilyType models.FamilyType `json:"family_type"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
}

func (r CreateProfileRequest) toInput() service.CreateProfileInput {
	return service.CreateProfileInput{
		Name:       r.Name,
		Age:        r.Age,
		Gender:     r.Gender,
		Location:   r.Location,
		Education:  r.Education,
		Occupation: r.Occupation,
		Religion:   r.Religion,
		FamilyType: r.FamilyType,
		Email:      r.Email,
		Phone:      r.Phone,
	}
}

// UpdateProfileRequest — частичное обновление: отсутствующие поля не меняются.
type UpdateProfileRequest struct {
	Name       *string            `json:"name,omitempty"`
	Age        *int               `json:"age,omitempty"`
	Location   *string            `json:"location,omitempty"`
	Education  *string            `json:"education,omitempty"`
	Occupation *string            `json:"occupation,omitempty"`
	Religion   *string            `json:"religion,omitempty"`
	FamilyType *models.FamilyType `json:"family_type,omitempty"`
	Phone      *string            `json:"phone,omitempty"`
}

func (r UpdateProfileRequest) toInput(id uuid.UUID) service.UpdateProfileInput {
	return service.UpdateProfileInput{
		ID:         id,
		Name:       r.Name,
		Age:        r.Age,
		Location:   r.Location,
		Education:  r.Education,
		Occupation: r.Occupation,
		Religion:   r.Religion,
		FamilyType: r.FamilyType,
		Phone:      r.Phone,
	}
}

type ProfileStatusRequest struct {
	Status models.ProfileStatus `json:"status"`
	Note   string               `json:"note,omitempty"`
}

type SubmitVerificationRequest struct {
	DocumentType models.DocumentType `json:"document_type"`
}

// DecisionRequest — решение свата по паре.
type DecisionRequest struct {
	Decision        service.Decision `json:"decision"`
	Note            string           `json:"note"`
	ExpectedVersion int64            `json:"expected_version"`
}

// VerificationDecisionRequest — решение по заявке на верификацию.
// Версии у заявки нет, поэтому expected_version в теле — ошибка клиента.
type VerificationDecisionRequest struct {
	Decision service.Decision `json:"decision"`
	Note     string           `json:"note"`
}

type SuggestMatchRequest struct {
	Profile1ID uuid.UUID      `json:"profile1_id"`
	Profile2ID uuid.UUID      `json:"profile2_id"`
	Score      int            `json:"score"`
	Breakdown  map[string]int `json:"breakdown"`
	Notes      string         `json:"notes"`
}

type MatchNotesRequest struct {
	Notes           string `json:"notes"`
	ExpectedVersion int64  `json:"expected_version"`
}

// SendIntroductionRequest — отправка знакомства.
// Queue=true -> знакомство сохраняется черновиком до dispatch.
type SendIntroductionRequest struct {
	Message         string `json:"message"`
	Queue           bool   `json:"queue"`
	ExpectedVersion int64  `json:"expected_version"`
}

type RespondIntroductionRequest struct {
	ProfileID       uuid.UUID       `json:"profile_id"`
	Response        models.Response `json:"response"`
	ExpectedVersion int64           `json:"expected_version"`
}

type CompleteIntroductionRequest struct {
	Outcome         string `json:"outcome"`
	ExpectedVersion int64  `json:"expected_version"`
}

type DispatchIntroductionRequest struct {
	ExpectedVersion int64 `json:"expected_version"`
}

type StartConversationRequest struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Title     string    `json:"title"`
}

// SendMessageRequest — сообщение в переписке.
// from_matchmaker=true -> автор сват, sender_id не нужен.
type SendMessageRequest struct {
	SenderID       uuid.UUID `json:"sender_id"`
	FromMatchmaker bool      `json:"from_matchmaker"`
	Content        string    `json:"content"`
}

type RecordPaymentRequest struct {
	ProfileID uuid.UUID            `json:"profile_id"`
	Amount    decimal.Decimal      `json:"amount"`
	Currency  string               `json:"currency"`
	Method    string               `json:"method"`
	Type      models.PaymentType   `json:"type"`
	Status    models.PaymentStatus `json:"status"`
	Reference string               `json:"reference"`
}

func (r RecordPaymentRequest) toInput() service.RecordPaymentInput {
	return service.RecordPaymentInput{
		ProfileID: r.ProfileID,
		Amount:    r.Amount,
		Currency:  r.Currency,
		Method:    r.Method,
		Type:      r.Type,
		Status:    r.Status,
		Reference: r.Reference,
	}
}

type PaymentStatusRequest struct {
	Status models.PaymentStatus `json:"status"`
	Note   string               `json:"note,omitempty"`
}

// MarkAllReadResponse — число отмеченных уведомлений.
type MarkAllReadResponse struct {
	Marked int `json:"marked"`
}
