package content

import "strings"

// labelThreshold — длина варианта, начиная с которой варианты
// показываются буквами вместо полного текста
const labelThreshold = 25

// UseLetterLabels решает, показывать ли варианты буквами A, B, …
func UseLetterLabels(options []string) bool {
	for _, opt := range options {
		if len([]rune(opt)) > labelThreshold {
			return true
		}
	}
	return false
}

// Labels возвращает буквенные метки для n вариантов
func Labels(n int) []string {
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = string(rune('A' + i))
	}
	return labels
}

// EvaluateAnswer сверяет ответ пользователя с правильным. Если варианты
// показывались буквами, одиночная буква из допустимого диапазона сначала
// подменяется текстом варианта. Сравнение без учёта регистра и краевых
// пробелов; частичных совпадений нет.
func EvaluateAnswer(submitted, correct string, options []string, usedLabels bool) bool {
	answer := strings.TrimSpace(submitted)

	if usedLabels {
		if runes := []rune(strings.ToUpper(answer)); len(runes) == 1 {
			idx := int(runes[0] - 'A')
			if idx >= 0 && idx < len(options) {
				answer = options[idx]
			}
		}
	}

	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(correct))
}
