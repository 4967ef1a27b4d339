package main

import (
	"context"
	"net/http"

	"github.com/kimuray/pcs-gen/internal/config"
	"github.com/kimuray/pcs-gen/internal/decoder"
	"github.com/kimuray/pcs-gen/internal/handler"
	"github.com/kimuray/pcs-gen/internal/logging"
	"github.com/kimuray/pcs-gen/internal/repository"
	"github.com/kimuray/pcs-gen/internal/service"
	"github.com/kimuray/pcs-gen/internal/sqlgen"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logging.Setup(config.LogLevel, config.LogFormat)

	encoding, err := decoder.ParseEncoding(config.InputEncoding)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid input encoding")
	}
	dialect, err := sqlgen.ParseDialect(config.SQLDialect)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid sql dialect")
	}

	// Initialize layers
	convertService := service.NewConvertService(
		decoder.Options{Encoding: encoding, Header: config.InputHeader},
		dialect,
		log.Logger,
	)
	convertHandler := handler.NewConvertHandler(convertService, config.MaxUploadBytes)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.POST("/sql", convertHandler.Convert)

	// Lookups need a database loaded with pcsgen -apply
	if config.DBSource != "" {
		conn, err := pgxpool.New(context.Background(), config.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		repo := repository.NewRepository(conn)
		townHandler := handler.NewTownHandler(service.NewTownService(repo))
		r.GET("/towns/:zip", townHandler.FindByZipCode)
	} else {
		log.Warn().Msg("DB_SOURCE is not set; /towns lookups are disabled")
	}

	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
