package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quizify/internal/chunker"
	"quizify/internal/config"
	"quizify/internal/helper"
	"quizify/internal/llmservice"
	"quizify/internal/models"
	"quizify/internal/parser"
	"quizify/internal/quiz"
	"quizify/internal/server"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to the yaml config file")
	filePath := flag.String("file", "", "Path to the PDF file")
	mode := flag.String("mode", string(models.ModeQNA), "One of QNA, MCQS, Flashcards, Summary")
	difficulty := flag.String("difficulty", string(models.DifficultyEasy), "One of Easy, Medium, Hard (ignored for Summary)")
	count := flag.Int("count", 5, "Number of items to generate, 1-50 (ignored for Summary)")
	dryRun := flag.Bool("dry-run", false, "Parse and chunk only, print the chunks and exit")
	serve := flag.Bool("serve", false, "Start the HTTP upload form instead of running once")
	asJSON := flag.Bool("json", false, "Print the result as JSON")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *dryRun {
		if *filePath == "" {
			log.Fatal().Msg("Please provide a PDF file using the -file flag")
		}
		chunkFile(cfg, *filePath)
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	log.Debug().
		Str("provider", cfg.LLM.Provider).
		Str("model", cfg.LLM.Model).
		Int("chunk_size", cfg.Chunking.ChunkSize).
		Int("chunk_overlap", cfg.Chunking.ChunkOverlap).
		Int("concurrency", cfg.LLM.Concurrency).
		Msg("Loaded config")

	client, err := llmservice.NewClient(&cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing LLM client")
	}
	splitter, err := chunker.New(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing chunker")
	}
	svc := quiz.NewService(client, splitter, cfg.LLM.Concurrency)
	pdfParser := parser.NewPDFParser()

	if *serve {
		runServer(ctx, cfg, pdfParser, svc)
		return
	}

	if *filePath == "" {
		log.Fatal().Msg("Please provide a PDF file using the -file flag, or -serve to start the web form")
	}

	req, err := buildRequest(*mode, *difficulty, *count)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid request")
	}

	pages, err := pdfParser.ParseFile(*filePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error parsing document")
	}

	res, err := svc.Run(ctx, req, pages)
	if err != nil {
		log.Fatal().Err(err).Msg("Error generating")
	}

	if *asJSON {
		helper.PrettyPrint(res)
		return
	}
	fmt.Printf("%s\n", res.Final)
}

func setupLogger(cfg config.LogConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	// stdout carries the generated text, so logs go to stderr.
	if cfg.Pretty != nil && *cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Caller().Logger()
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Caller().Logger()
	}
}

// buildRequest turns flag values into a request. Count and difficulty are
// dropped for Summary.
func buildRequest(mode, difficulty string, count int) (models.GenerationRequest, error) {
	m, err := models.ParseMode(mode)
	if err != nil {
		return models.GenerationRequest{}, err
	}
	req := models.GenerationRequest{Mode: m, Count: count, Difficulty: models.Difficulty(difficulty)}.Normalize()
	return req, req.Validate()
}

func chunkFile(cfg *config.Config, filePath string) {
	pages, err := parser.NewPDFParser().ParseFile(filePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error parsing document")
	}
	splitter, err := chunker.New(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing chunker")
	}
	chunks, err := splitter.Split(pages)
	if err != nil {
		log.Fatal().Err(err).Msg("Error chunking document")
	}
	log.Info().Int("pages", len(pages)).Int("chunks", len(chunks)).Msg("Parsed content")
	helper.PrettyPrint(chunks)
}

func runServer(ctx context.Context, cfg *config.Config, p *parser.PDFParser, svc *quiz.Service) {
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(p, svc, cfg.Server.MaxUploadBytes),
		ReadHeaderTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.Server.Addr).Msg("Starting quizify")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server error")
	}
}
