package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/online-catalog/backend/internal/models"
	"github.com/online-catalog/backend/internal/repository"
)

var (
	ErrInvalidContactNumber = errors.New("contact number must contain only digits, spaces, and an optional leading +")
)

// SettingsService handles the single site-settings document.
type SettingsService struct {
	settings repository.SettingsRepository
	log      *slog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settings repository.SettingsRepository, log *slog.Logger) *SettingsService {
	return &SettingsService{settings: settings, log: log}
}

// GetSettings reads the settings; a missing document reads as empty.
func (s *SettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	return s.settings.Get(ctx)
}

// SaveSettings validates and writes the settings. An empty contact number is
// allowed here; checkout is where it becomes blocking.
func (s *SettingsService) SaveSettings(ctx context.Context, in models.Settings) error {
	in.WhatsApp = strings.TrimSpace(in.WhatsApp)
	if !validContactNumber(in.WhatsApp) {
		return ErrInvalidContactNumber
	}
	if err := s.settings.Save(ctx, in); err != nil {
		return err
	}
	s.log.Info("settings saved")
	return nil
}

func validContactNumber(n string) bool {
	for i, r := range n {
		switch {
		case r >= '0' && r <= '9', r == ' ':
		case r == '+' && i == 0:
		default:
			return false
		}
	}
	return true
}
