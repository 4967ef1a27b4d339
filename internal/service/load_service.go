package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/kimuray/pcs-gen/internal/models"
	"github.com/kimuray/pcs-gen/internal/sqlgen"
)

// TableRepository interface for dependency injection
type TableRepository interface {
	EnsureSchema(ctx context.Context) error
	ReplaceAll(ctx context.Context, script string) error
	CountRows(ctx context.Context) (models.RowCounts, error)
}

// LoadService applies normalized tables to a database
type LoadService struct {
	repo TableRepository
}

// NewLoadService creates a new load service
func NewLoadService(repo TableRepository) *LoadService {
	return &LoadService{repo: repo}
}

// Load replaces the contents of the three tables with tables and verifies
// the resulting row counts.
func (s *LoadService) Load(ctx context.Context, tables models.Tables) error {
	var script bytes.Buffer
	if err := sqlgen.NewEmitter(&script, sqlgen.DialectPostgres).WriteAll(tables); err != nil {
		return fmt.Errorf("service: failed to render sql: %w", err)
	}

	if err := s.repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("service: failed to create schema: %w", err)
	}

	if err := s.repo.ReplaceAll(ctx, script.String()); err != nil {
		return fmt.Errorf("service: failed to apply sql: %w", err)
	}

	counts, err := s.repo.CountRows(ctx)
	if err != nil {
		return fmt.Errorf("service: failed to count rows: %w", err)
	}

	expected := models.RowCounts{
		Prefectures: len(tables.Prefectures),
		Cities:      len(tables.Cities),
		Towns:       len(tables.Towns),
	}
	if counts != expected {
		return fmt.Errorf("service: row count mismatch: expected %+v, got %+v", expected, counts)
	}

	return nil
}
