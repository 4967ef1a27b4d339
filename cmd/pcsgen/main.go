package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kimuray/pcs-gen/internal/config"
	"github.com/kimuray/pcs-gen/internal/decoder"
	"github.com/kimuray/pcs-gen/internal/logging"
	"github.com/kimuray/pcs-gen/internal/repository"
	"github.com/kimuray/pcs-gen/internal/service"
	"github.com/kimuray/pcs-gen/internal/sqlgen"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var errUsage = errors.New("expected 1 argument, but got none")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "pcsgen: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pcsgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: pcsgen [flags] <postal-code.csv>")
		fs.PrintDefaults()
	}
	configDir := fs.String("config", "./configs", "Directory containing app.env")
	encoding := fs.String("encoding", "", "Input encoding: utf-8 or shift_jis (overrides INPUT_ENCODING)")
	header := fs.Bool("header", false, "Treat the first row as a header (overrides INPUT_HEADER)")
	apply := fs.Bool("apply", false, "Load the tables into DB_SOURCE instead of printing SQL")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() < 1 {
		return errUsage
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		return err
	}
	if *encoding != "" {
		cfg.InputEncoding = *encoding
	}
	if *header {
		cfg.InputHeader = true
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	enc, err := decoder.ParseEncoding(cfg.InputEncoding)
	if err != nil {
		return err
	}
	dialect, err := sqlgen.ParseDialect(cfg.SQLDialect)
	if err != nil {
		return err
	}

	path := fs.Arg(0)
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()

	log.Debug().Str("file", path).Str("encoding", string(enc)).Msg("starting conversion")

	svc := service.NewConvertService(decoder.Options{Encoding: enc, Header: cfg.InputHeader}, dialect, log.Logger)

	if *apply {
		return load(ctx, cfg, svc, file)
	}

	out := bufio.NewWriter(stdout)
	if _, err := svc.ConvertToSQL(ctx, file, out); err != nil {
		return err
	}
	return out.Flush()
}

func load(ctx context.Context, cfg config.Config, svc *service.ConvertService, input io.Reader) error {
	if cfg.DBSource == "" {
		return errors.New("DB_SOURCE is required with -apply")
	}

	res, err := svc.Convert(ctx, input)
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("cannot connect to db: %w", err)
	}
	defer pool.Close()

	loader := service.NewLoadService(repository.NewRepository(pool))
	if err := loader.Load(ctx, res.Tables); err != nil {
		return err
	}

	log.Info().
		Int("prefs", len(res.Tables.Prefectures)).
		Int("cities", len(res.Tables.Cities)).
		Int("towns", len(res.Tables.Towns)).
		Msg("tables loaded")
	return nil
}
