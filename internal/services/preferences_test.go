package services

import (
	"context"
	"testing"

	"gameforum/internal/models"
	"gameforum/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLanguage(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	prefs := NewPreferenceService(kv, zap.NewNop())

	assert.Equal(t, models.LanguageEnglish, prefs.Language(ctx), "defaults to English")

	require.NoError(t, prefs.SetLanguage(ctx, models.LanguageRussian))
	assert.Equal(t, models.LanguageRussian, prefs.Language(ctx))

	raw, err := kv.Get(ctx, storage.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, `"ru"`, string(raw))

	err = prefs.SetLanguage(ctx, "de")
	assert.Equal(t, models.CodeValidation, errCode(err))
	assert.Equal(t, models.LanguageRussian, prefs.Language(ctx))
}

func TestLanguage_UnknownStoredValueFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, storage.KeyLanguage, []byte(`"fr"`)))
	assert.Equal(t, models.LanguageEnglish, NewPreferenceService(kv, zap.NewNop()).Language(ctx))

	require.NoError(t, kv.Set(ctx, storage.KeyLanguage, []byte(`ru`)))
	assert.Equal(t, models.LanguageEnglish, NewPreferenceService(kv, zap.NewNop()).Language(ctx))
}
