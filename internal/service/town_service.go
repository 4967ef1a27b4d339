package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kimuray/pcs-gen/internal/models"
)

var ErrInvalidZipCode = errors.New("zip code must be 7 digits")

// TownService looks up loaded towns by postal code
type TownService struct {
	repo TownRepository
}

// TownRepository interface for dependency injection
type TownRepository interface {
	FindTownsByZipCode(ctx context.Context, zipCode string) ([]models.Town, error)
}

// NewTownService creates a new town service
func NewTownService(repo TownRepository) *TownService {
	return &TownService{repo: repo}
}

// FindByZipCode returns the towns stored under zipCode. A hyphenated code
// such as 100-0001 is accepted.
func (s *TownService) FindByZipCode(ctx context.Context, zipCode string) ([]models.Town, error) {
	zipCode = strings.ReplaceAll(strings.TrimSpace(zipCode), "-", "")
	if !isZipCode(zipCode) {
		return nil, fmt.Errorf("service: %w: %q", ErrInvalidZipCode, zipCode)
	}

	towns, err := s.repo.FindTownsByZipCode(ctx, zipCode)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find towns: %w", err)
	}

	return towns, nil
}

func isZipCode(s string) bool {
	if len(s) != 7 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
