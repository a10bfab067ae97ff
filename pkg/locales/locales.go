// Package locales содержит таблицу локализаций бота.
// Таблица загружается один раз при старте и дальше только читается.
package locales

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLang — базовая локаль. Отсутствующие в локали пользователя
// ключи берутся из неё.
const DefaultLang = "en"

// Table — таблица локализаций: код языка → ключ → строка.
// После Load таблица неизменяема, делиться ею между горутинами безопасно.
type Table struct {
	locales map[string]map[string]string
	base    map[string]string
}

// Load читает все locales/*.json и замораживает таблицу
func Load() (*Table, error) {
	entries, err := fs.Glob(localeFS, "locales/*.json")
	if err != nil {
		return nil, err
	}

	t := &Table{locales: make(map[string]map[string]string)}
	for _, path := range entries {
		data, err := localeFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать %s: %w", path, err)
		}
		texts := make(map[string]string)
		if err := json.Unmarshal(data, &texts); err != nil {
			return nil, fmt.Errorf("неверный JSON в %s: %w", path, err)
		}
		code := strings.TrimSuffix(filepath.Base(path), ".json")
		t.locales[code] = texts
	}

	t.base = t.locales[DefaultLang]
	if len(t.base) == 0 {
		return nil, fmt.Errorf("базовая локаль %q не найдена или пуста", DefaultLang)
	}
	return t, nil
}

// Languages возвращает коды загруженных локалей в стабильном порядке
func (t *Table) Languages() []string {
	codes := make([]string, 0, len(t.locales))
	for code := range t.locales {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Resolve строит действующий словарь для языка пользователя:
// базовая локаль, поверх неё — локаль пользователя. Возвращается копия,
// сама таблица не мутируется.
func (t *Table) Resolve(lang string) map[string]string {
	merged := make(map[string]string, len(t.base))
	for k, v := range t.base {
		merged[k] = v
	}
	for k, v := range t.locales[lang] {
		merged[k] = v
	}
	return merged
}

// AllTranslations возвращает значения ключа во всех локалях без повторов.
// Кнопка, нарисованная на любом языке интерфейса, должна матчиться
// именно против этого объединения, а не против локали пользователя.
// Если ключа нет нигде — детерминированная заглушка, чтобы диспетчеризация
// никогда не матчилась с пустой строкой.
func (t *Table) AllTranslations(key string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, code := range t.Languages() {
		if v, ok := t.locales[code][key]; ok {
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	if len(out) == 0 {
		return []string{Placeholder(key)}
	}
	return out
}

// Placeholder — заглушка для ключа, отсутствующего во всех локалях
func Placeholder(key string) string {
	return "_" + key + "_"
}

// T возвращает строку по ключу с подстановкой {имя}-плейсхолдеров.
// args — пары имя/значение.
func T(key string, i18n map[string]string, args ...string) string {
	text, ok := i18n[key]
	if !ok {
		text = Placeholder(key)
	}
	if len(args) == 0 {
		return text
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
