// redact маскирует контактные данные участников для логов и текстов ошибок:
// e-mail и телефон. Домен e-mail и последние цифры телефона сохраняются,
// этого достаточно, чтобы отличить записи при разборе инцидента.
package redact

import (
	"strings"
	"unicode"
)

// Email маскирует e-mail.
//
// Правила:
//   - ровно один '@', иначе "***";
//   - от локальной части остаются первые две руны + "***";
//     локальная часть из ≤ 2 рун заменяется на "***";
//   - домен не меняется.
//
// Примеры:
//
//	"ayesha@example.com" -> "ay***@example.com"
//	"ab@ex.com"          -> "***@ex.com"
//	"no-at"              -> "***"
func Email(s string) string {
	if strings.Count(s, "@") != 1 {
		return "***"
	}

	i := strings.IndexByte(s, '@')
	local, domain := s[:i], s[i+1:]

	lr := []rune(local)
	if len(lr) > 2 {
		local = string(lr[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Phone оставляет две последние цифры номера: "+880 1711-223344" -> "***44".
// Номер короче пяти цифр маскируется целиком.
func Phone(s string) string {
	digits := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}

	if len(digits) < 5 {
		return "***"
	}

	return "***" + string(digits[len(digits)-2:])
}
