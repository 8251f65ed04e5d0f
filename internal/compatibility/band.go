package compatibility

// Band — диапазон итоговой оценки для отображения.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGreat     Band = "great"
	BandGood      Band = "good"
	BandModerate  Band = "moderate"
)

// Единая таблица порогов: 90 / 80 / 70.
const (
	excellentFrom = 90
	greatFrom     = 80
	goodFrom      = 70
)

// BandOf относит оценку к диапазону.
func BandOf(score int) Band {
	switch {
	case score >= excellentFrom:
		return BandExcellent
	case score >= greatFrom:
		return BandGreat
	case score >= goodFrom:
		return BandGood
	default:
		return BandModerate
	}
}

// Valid сообщает, входит ли значение в перечисление.
func (b Band) Valid() bool {
	switch b {
	case BandExcellent, BandGreat, BandGood, BandModerate:
		return true
	}
	return false
}
