// models содержит доменные сущности matchmaking-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Gender — пол участника.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid сообщает, входит ли значение в перечисление.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ProfileStatus — жизненный цикл аккаунта на платформе.
type ProfileStatus string

const (
	ProfileActive    ProfileStatus = "active"
	ProfilePending   ProfileStatus = "pending"
	ProfileInactive  ProfileStatus = "inactive"
	ProfileSuspended ProfileStatus = "suspended"
)

// VerificationState — статус проверки личности на профиле.
type VerificationState string

const (
	VerificationVerified    VerificationState = "verified"
	VerificationPending     VerificationState = "pending"
	VerificationRejected    VerificationState = "rejected"
	VerificationUnsubmitted VerificationState = "unsubmitted"
)

// FamilyType — тип семьи (нуклеарная/расширенная).
type FamilyType string

const (
	FamilyNuclear FamilyType = "nuclear"
	FamilyJoint   FamilyType = "joint"
)

// ProfileCounters — счётчики активности профиля.
type ProfileCounters struct {
	Views             int `json:"views"`
	InterestsReceived int `json:"interests_received"`
}

// Profile — анкета участника.
// Создаётся при регистрации, меняется самим участником (UpdateProfile)
// или администратором (верификация, блокировка). Физически не удаляется.
type Profile struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Age                int               `json:"age"`
	Gender             Gender            `json:"gender"`
	Location           string            `json:"location"`
	Education          string            `json:"education"`
	Occupation         string            `json:"occupation"`
	Religion           string            `json:"religion"`
	FamilyType         FamilyType        `json:"family_type"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	Status             ProfileStatus     `json:"status"`
	VerificationStatus VerificationState `json:"verification_status"`
	StatusNote         string            `json:"status_note,omitempty"`
	Counters           ProfileCounters   `json:"counters"`
	SignupAt           time.Time         `json:"signup_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// MinAge/MaxAge — допустимый возраст участника.
const (
	MinAge = 18
	MaxAge = 99
)
