package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/rs/zerolog"

	"github.com/belegflow/backend/internal/extraction"
	"github.com/belegflow/backend/internal/logger"
	"github.com/belegflow/backend/internal/ocr"
	"github.com/belegflow/backend/internal/processor"
	"github.com/belegflow/backend/internal/server"
	"github.com/belegflow/backend/internal/session"
)

func main() {
	fs := ff.NewFlagSet("belegflow")
	var (
		port         = fs.IntLong("port", 8080, "HTTP server port")
		openaiKey    = fs.StringLong("openai-key", "", "OpenAI API key for vision OCR (or set BELEGFLOW_OPENAI_KEY)")
		openaiModel  = fs.StringLong("openai-model", "", "OpenAI vision model (default gpt-4o-mini)")
		tesseractBin = fs.StringLong("tesseract", "", "Path to the tesseract binary; empty disables local OCR")
		ocrLanguages = fs.StringLong("ocr-languages", "deu+eng", "Tesseract language selection")
		sessionTTL   = fs.DurationLong("session-ttl", time.Hour, "How long finished sessions stay queryable")
		corsOrigins  = fs.StringLong("cors-origins", "*", "Comma-separated allowed CORS origins")
		debug        = fs.BoolLong("debug", "Enable debug logging")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("BELEGFLOW")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New().Level(zerolog.InfoLevel)
	if *debug {
		log = log.Level(zerolog.DebugLevel)
	}

	var vision processor.VisionOCR
	if *openaiKey != "" {
		vision = ocr.NewVisionClient(*openaiKey, *openaiModel, log)
		log.Info().Msg("vision OCR enabled")
	}
	var textOCR processor.TextOCR
	if *tesseractBin != "" {
		textOCR = ocr.NewTesseract(*tesseractBin, *ocrLanguages, log)
		log.Info().Str("binary", *tesseractBin).Msg("tesseract OCR enabled")
	}
	if vision == nil && textOCR == nil {
		log.Warn().Msg("no OCR backend configured, only PDFs with a text layer will work")
	}

	sessions := session.NewStore(*sessionTTL)
	defer sessions.Stop()

	extractor := extraction.NewService(log)
	proc := processor.New(vision, textOCR, extractor, sessions, log)
	srv := server.New(proc, sessions, log)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           srv.Handler(strings.Split(*corsOrigins, ",")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", *port).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
