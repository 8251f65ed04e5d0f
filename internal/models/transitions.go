package models

// Таблицы допустимых переходов статусов. Переходы выполняются только явными
// действиями администратора/участника; фоновых и автоматических переходов нет.

type transitions[S comparable] map[S][]S

func (t transitions[S]) allowed(from, to S) bool {
	for _, s := range t[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (t transitions[S]) known(s S) bool {
	if _, ok := t[s]; ok {
		return true
	}
	for _, targets := range t {
		for _, v := range targets {
			if v == s {
				return true
			}
		}
	}
	return false
}

var verificationTransitions = transitions[VerificationStatus]{
	VerificationRequestPending: {VerificationRequestApproved, VerificationRequestRejected},
}

var matchTransitions = transitions[MatchStatus]{
	MatchSuggested: {MatchApproved, MatchDeclined},
	MatchApproved:  {MatchSent, MatchDeclined},
	MatchSent:      {MatchMutual, MatchDeclined},
}

var introductionTransitions = transitions[IntroductionStatus]{
	IntroductionPending:      {IntroductionSent},
	IntroductionSent:         {IntroductionAcceptedOne, IntroductionDeclined},
	IntroductionAcceptedOne:  {IntroductionAcceptedBoth, IntroductionDeclined},
	IntroductionAcceptedBoth: {IntroductionCompleted},
}

var paymentTransitions = transitions[PaymentStatus]{
	PaymentPending:   {PaymentCompleted, PaymentFailed},
	PaymentCompleted: {PaymentRefunded},
}

var profileTransitions = transitions[ProfileStatus]{
	ProfilePending:   {ProfileActive, ProfileSuspended, ProfileInactive},
	ProfileActive:    {ProfileSuspended, ProfileInactive},
	ProfileInactive:  {ProfileActive},
	ProfileSuspended: {ProfileActive},
}

// CanTransitionTo сообщает, допустим ли переход заявки из s в to.
func (s VerificationStatus) CanTransitionTo(to VerificationStatus) bool {
	return verificationTransitions.allowed(s, to)
}

// CanTransitionTo сообщает, допустим ли переход пары из s в to.
// declined и mutual — терминальные.
func (s MatchStatus) CanTransitionTo(to MatchStatus) bool {
	return matchTransitions.allowed(s, to)
}

// Known сообщает, является ли s значением перечисления.
func (s MatchStatus) Known() bool { return matchTransitions.known(s) }

// CanTransitionTo сообщает, допустим ли переход знакомства из s в to.
func (s IntroductionStatus) CanTransitionTo(to IntroductionStatus) bool {
	return introductionTransitions.allowed(s, to)
}

// Known сообщает, является ли s значением перечисления.
func (s IntroductionStatus) Known() bool { return introductionTransitions.known(s) }

// CanTransitionTo сообщает, допустим ли переход платежа из s в to.
func (s PaymentStatus) CanTransitionTo(to PaymentStatus) bool {
	return paymentTransitions.allowed(s, to)
}

// Known сообщает, является ли s значением перечисления.
func (s PaymentStatus) Known() bool { return paymentTransitions.known(s) }

// CanTransitionTo сообщает, допустим ли перевод профиля из s в to.
func (s ProfileStatus) CanTransitionTo(to ProfileStatus) bool {
	return profileTransitions.allowed(s, to)
}

// Known сообщает, является ли s значением перечисления.
func (s ProfileStatus) Known() bool { return profileTransitions.known(s) }

// IntroducibleMatch сообщает, можно ли создать знакомство по паре в статусе s.
func IntroducibleMatch(s MatchStatus) bool {
	return s == MatchApproved || s == MatchMutual
}
