package main

import (
	"io"
	"os"
	"path/filepath"

	v1 "github.com/foerdercheck/backend/internal/controllers/v1"
	"github.com/foerdercheck/backend/internal/extraction"
	"github.com/foerdercheck/backend/internal/models"
	"github.com/foerdercheck/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create data directory
	dataDir := filepath.Join(".", "data")
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database
	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		dsn = "data/backend.db"
	}

	err = models.Connect(dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// The document AI service is optional. Without it, extraction runs
	// are rejected with an error, everything else keeps working.
	documentAIURL, ok := os.LookupEnv("DOCUMENT_AI_URL")
	if ok {
		v1.UseExtractionClient(extraction.NewHTTPClient(documentAIURL, os.Getenv("DOCUMENT_AI_TOKEN")))
	} else {
		log.Warn().Msg("DOCUMENT_AI_URL is not set, extraction runs are disabled")
	}

	r, err := router.Router()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
