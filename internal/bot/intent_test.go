package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Karen042009/Arvion-telegram-bot/pkg/locales"
)

func newTestResolver(t *testing.T) (*Resolver, *locales.Table) {
	t.Helper()
	table, err := locales.Load()
	require.NoError(t, err)
	return NewResolver(table), table
}

// Кнопка, нарисованная на любом языке интерфейса, сводится к одному
// и тому же интенту
func TestResolveAnyLocale(t *testing.T) {
	r, table := newTestResolver(t)

	keys := map[string]struct {
		intent Intent
		group  Group
	}{
		"new_word":          {IntentNewWord, GroupLearning},
		"back_to_main_menu": {IntentBackToMain, GroupGlobal},
		"translator_swap":   {IntentSwap, GroupTranslation},
		"settings_button":   {IntentSettings, GroupGlobal},
		"mode_programming":  {IntentModeProg, GroupSettings},
		"roleplay_hotel":    {IntentRoleplayHotel, GroupChat},
	}

	for _, lang := range table.Languages() {
		i18n := table.Resolve(lang)
		for key, want := range keys {
			got := r.Resolve(i18n[key], want.group)
			assert.Equal(t, want.intent, got,
				"locale %s key %s text %q", lang, key, i18n[key])
		}
	}
}

func TestResolveUnknownText(t *testing.T) {
	r, _ := newTestResolver(t)

	assert.Equal(t, IntentNone, r.Resolve("просто болтовня", GroupLearning))
	assert.Equal(t, IntentNone, r.Resolve("", GroupGlobal))
}

// Глобальные интенты доступны из любой группы, но проверяются после
// групповых
func TestResolveGlobalFromAnyGroup(t *testing.T) {
	r, table := newTestResolver(t)
	en := table.Resolve("en")

	for _, group := range []Group{GroupSettings, GroupTranslation, GroupLearning, GroupChat} {
		assert.Equal(t, IntentBackToMain, r.Resolve(en["back_to_main_menu"], group))
	}
}

// Порядок внутри группы фиксирован: при гипотетическом совпадении
// надписей побеждает более ранний интент группы
func TestResolvePriorityOrder(t *testing.T) {
	r := &Resolver{texts: map[Intent]map[string]struct{}{
		IntentBackToLearn: {"🔁": {}},
		IntentNextQuiz:    {"🔁": {}},
	}}

	assert.Equal(t, IntentBackToLearn, r.Resolve("🔁", GroupLearning))
}
