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
	ErrInvalidOption = errors.New("invalid option")
)

// OptionService handles business logic for reusable option groups.
type OptionService struct {
	options repository.OptionRepository
	log     *slog.Logger
}

// NewOptionService creates a new option service.
func NewOptionService(options repository.OptionRepository, log *slog.Logger) *OptionService {
	return &OptionService{options: options, log: log}
}

// ListOptions returns all option groups.
func (s *OptionService) ListOptions(ctx context.Context) ([]models.Option, error) {
	return s.options.GetAll(ctx)
}

// CreateOption validates and inserts a new option group.
func (s *OptionService) CreateOption(ctx context.Context, in models.OptionInput) (*models.Option, error) {
	in = normalizeOptionInput(in)
	if err := validateOptionInput(in); err != nil {
		return nil, err
	}
	return s.options.Create(ctx, in)
}

// UpdateOption validates and overwrites an option group.
func (s *OptionService) UpdateOption(ctx context.Context, id string, in models.OptionInput) (*models.Option, error) {
	in = normalizeOptionInput(in)
	if err := validateOptionInput(in); err != nil {
		return nil, err
	}
	return s.options.Update(ctx, id, in)
}

// DeleteOption removes an option group. Products referencing it keep the
// dangling id and render with a smaller option set.
func (s *OptionService) DeleteOption(ctx context.Context, id string) error {
	return s.options.Delete(ctx, id)
}

// normalizeOptionInput trims the name and every value and drops values that
// end up empty, preserving the admin's ordering.
func normalizeOptionInput(in models.OptionInput) models.OptionInput {
	in.Name = strings.TrimSpace(in.Name)
	values := make([]string, 0, len(in.Values))
	for _, v := range in.Values {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	in.Values = values
	return in
}

// validateOptionInput requires a name, at least one value, and no duplicate
// values within the group.
func validateOptionInput(in models.OptionInput) error {
	if in.Name == "" || len(in.Values) == 0 {
		return ErrInvalidOption
	}
	seen := make(map[string]bool, len(in.Values))
	for _, v := range in.Values {
		if seen[v] {
			return ErrInvalidOption
		}
		seen[v] = true
	}
	return nil
}
