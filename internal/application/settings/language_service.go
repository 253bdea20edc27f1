package settings

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/settings"
	"github.com/marketplace/backend/internal/domain/shared"
)

// LanguageService manages the tenant's storefront languages
type LanguageService struct {
	languages settings.LanguageRepository
	logger    *zap.Logger
}

// NewLanguageService creates a new language service
func NewLanguageService(languages settings.LanguageRepository, logger *zap.Logger) *LanguageService {
	return &LanguageService{languages: languages, logger: logger}
}

// List returns every configured language
func (s *LanguageService) List(ctx context.Context, tenantID uuid.UUID) ([]*settings.Language, error) {
	return s.languages.FindAll(ctx, tenantID)
}

// Add configures a new language. The first language of a tenant becomes
// the default automatically.
func (s *LanguageService) Add(ctx context.Context, tenantID uuid.UUID, tag, name string) (*settings.Language, error) {
	l, err := settings.NewLanguage(tenantID, tag, name)
	if err != nil {
		return nil, err
	}
	if existing, err := s.languages.FindByTag(ctx, tenantID, l.Tag); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Language is already configured")
	}

	all, err := s.languages.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	l.IsDefault = len(all) == 0

	if err := s.languages.Save(ctx, l); err != nil {
		return nil, err
	}
	s.logger.Info("Language added", zap.String("tag", l.Tag), zap.Bool("default", l.IsDefault))
	return l, nil
}

// SetEnabled toggles a language's availability
func (s *LanguageService) SetEnabled(ctx context.Context, tenantID, id uuid.UUID, enabled bool) error {
	l, err := s.languages.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if enabled {
		l.Enable()
	} else if err := l.Disable(); err != nil {
		return err
	}
	return s.languages.Save(ctx, l)
}

// SetDefault makes the language the tenant default, transactionally
func (s *LanguageService) SetDefault(ctx context.Context, tenantID, id uuid.UUID) error {
	l, err := s.languages.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !l.Enabled {
		return shared.NewDomainError("INVALID_STATE", "A disabled language cannot be the default")
	}
	if err := s.languages.SetDefault(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.Info("Default language changed", zap.String("tag", l.Tag))
	return nil
}

// Remove deletes a language. The default cannot be removed.
func (s *LanguageService) Remove(ctx context.Context, tenantID, id uuid.UUID) error {
	l, err := s.languages.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if l.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "The default language cannot be removed")
	}
	return s.languages.Delete(ctx, tenantID, id)
}
