package services

import (
	"context"
	"fmt"

	"gameforum/internal/models"
	"gameforum/internal/storage"

	"go.uber.org/zap"
)

// PreferenceService stores UI preferences that are not tied to a user.
type PreferenceService struct {
	language *storage.Document[models.Language]
	log      *zap.Logger
}

func NewPreferenceService(kv storage.KV, log *zap.Logger) *PreferenceService {
	return &PreferenceService{
		language: storage.NewDocument[models.Language](kv, storage.KeyLanguage, log),
		log:      log,
	}
}

// Language returns the stored UI language, falling back to English.
func (s *PreferenceService) Language(ctx context.Context) models.Language {
	lang, ok, err := s.language.Load(ctx)
	if err != nil {
		s.log.Warn("load language", zap.Error(err))
		return models.LanguageEnglish
	}
	if !ok || !lang.Valid() {
		return models.LanguageEnglish
	}
	return lang
}

func (s *PreferenceService) SetLanguage(ctx context.Context, lang models.Language) error {
	if !lang.Valid() {
		return models.NewValidationError(fmt.Sprintf("Unsupported language %q", lang))
	}
	if err := s.language.Save(ctx, lang); err != nil {
		s.log.Error("persist language", zap.Error(err))
		return models.NewInternalError(err)
	}
	return nil
}
