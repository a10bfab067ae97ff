package locales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)
	assert.Contains(t, table.Languages(), "en")
	assert.Contains(t, table.Languages(), "ru")
	assert.Contains(t, table.Languages(), "hy")
	assert.Contains(t, table.Languages(), "es")
}

func TestResolveOverlay(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	en := table.Resolve("en")
	ru := table.Resolve("ru")

	// Локаль пользователя перекрывает базовую
	assert.NotEqual(t, en["welcome"], ru["welcome"])

	// Неизвестная локаль даёт чистую базу
	unknown := table.Resolve("xx")
	assert.Equal(t, en["welcome"], unknown["welcome"])

	// Resolve возвращает копию: мутация не задевает таблицу
	unknown["welcome"] = "mutated"
	assert.NotEqual(t, "mutated", table.Resolve("xx")["welcome"])
}

func TestAllTranslationsUnion(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	union := table.AllTranslations("back_to_main_menu")
	assert.Contains(t, union, table.Resolve("en")["back_to_main_menu"])
	assert.Contains(t, union, table.Resolve("ru")["back_to_main_menu"])
	assert.Contains(t, union, table.Resolve("hy")["back_to_main_menu"])
}

func TestAllTranslationsPlaceholderFallback(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	union := table.AllTranslations("no_such_key")
	assert.Equal(t, []string{"_no_such_key_"}, union)
}

func TestT(t *testing.T) {
	i18n := map[string]string{
		"greeting": "Hello, {name}! Level: {level}.",
	}

	assert.Equal(t, "Hello, Ann! Level: B2.",
		T("greeting", i18n, "name", "Ann", "level", "B2"))
	assert.Equal(t, "Hello, {name}! Level: {level}.", T("greeting", i18n))
	assert.Equal(t, "_missing_", T("missing", i18n))
}
