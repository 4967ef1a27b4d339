package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kimuray/pcs-gen/internal/decoder"
	"github.com/kimuray/pcs-gen/internal/models"
	"github.com/kimuray/pcs-gen/internal/normalize"
	"github.com/kimuray/pcs-gen/internal/sqlgen"

	"github.com/rs/zerolog"
)

// ContextCheckInterval is how often (in records) Convert checks for cancellation.
var ContextCheckInterval = 100

// Result is the outcome of a full pass over the input.
type Result struct {
	Tables    models.Tables
	Read      int
	Skipped   int
	Conflicts []normalize.CityConflict
}

// ConvertService contains the core logic turning a postal code file into
// normalized tables and SQL.
type ConvertService struct {
	opts    decoder.Options
	dialect sqlgen.Dialect
	logger  zerolog.Logger
}

// NewConvertService creates a new convert service
func NewConvertService(opts decoder.Options, dialect sqlgen.Dialect, logger zerolog.Logger) *ConvertService {
	return &ConvertService{opts: opts, dialect: dialect, logger: logger}
}

// Convert reads every record from r and returns the normalized tables.
// Any read or decode failure aborts the whole pass and no result is returned.
func (s *ConvertService) Convert(ctx context.Context, r io.Reader) (*Result, error) {
	reader, err := decoder.NewReader(r, s.opts)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	n := normalize.New()
	res := &Result{}

	for {
		if res.Read%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("service: conversion cancelled: %w", err)
			}
		}

		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var de *decoder.DecodeError
			if errors.As(err, &de) {
				return nil, fmt.Errorf("service: invalid record: %w", err)
			}
			return nil, fmt.Errorf("service: failed to read input: %w", err)
		}
		res.Read++

		if rec.Skip() {
			res.Skipped++
			s.logger.Debug().Str("zip_code", rec.ZipCode).Str("company", rec.CompanyName).Msg("skipping bulk recipient row")
			continue
		}
		n.Add(rec)
	}

	res.Tables = n.Tables()
	res.Conflicts = n.Conflicts()

	for _, c := range res.Conflicts {
		s.logger.Warn().
			Str("code", c.Code).
			Str("first_name", c.First.Name).
			Str("other_name", c.Other.Name).
			Uint8("first_pref_id", c.First.PrefID).
			Uint8("other_pref_id", c.Other.PrefID).
			Msg("city code appears with different attributes; keeping both rows")
	}

	s.logger.Info().
		Int("records", res.Read).
		Int("skipped", res.Skipped).
		Int("prefs", len(res.Tables.Prefectures)).
		Int("cities", len(res.Tables.Cities)).
		Int("towns", len(res.Tables.Towns)).
		Msg("conversion finished")

	return res, nil
}

// ConvertToSQL runs Convert and writes the statements to w. Nothing is
// written unless the whole input was processed.
func (s *ConvertService) ConvertToSQL(ctx context.Context, r io.Reader, w io.Writer) (*Result, error) {
	res, err := s.Convert(ctx, r)
	if err != nil {
		return nil, err
	}

	if err := s.WriteSQL(w, res.Tables); err != nil {
		return nil, fmt.Errorf("service: failed to write sql: %w", err)
	}

	return res, nil
}

// WriteSQL writes the three INSERT statements for tables to w.
func (s *ConvertService) WriteSQL(w io.Writer, tables models.Tables) error {
	return sqlgen.NewEmitter(w, s.dialect).WriteAll(tables)
}
