// Package quiz runs the two-phase generation: one prompt per chunk, then a
// single consolidation prompt over all chunk outputs.
package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"quizify/internal/helper"
	"quizify/internal/llmservice"
	"quizify/internal/models"
	"quizify/internal/prompt"
	"quizify/internal/validate"
)

// Splitter turns page text into chunks.
type Splitter interface {
	Split(pages []models.Page) ([]models.Chunk, error)
}

type Service struct {
	gen         llmservice.Generator
	splitter    Splitter
	concurrency int
}

// NewService returns a Service. concurrency <= 1 keeps the per-chunk phase
// strictly sequential.
func NewService(gen llmservice.Generator, splitter Splitter, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{gen: gen, splitter: splitter, concurrency: concurrency}
}

// Run chunks pages, generates per chunk and consolidates. Any failure aborts
// the run and no partial result is returned.
func (s *Service) Run(ctx context.Context, req models.GenerationRequest, pages []models.Page) (*models.Result, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runID, err := helper.GenerateUUID()
	if err != nil {
		return nil, err
	}
	logger := log.With().Str("run_id", runID).Str("mode", string(req.Mode)).Logger()
	start := time.Now()

	chunks, err := s.splitter.Split(pages)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("pages", len(pages)).Int("chunks", len(chunks)).Msg("Document chunked")

	outputs, err := s.GenerateChunks(ctx, req, chunks)
	if err != nil {
		logger.Error().Err(err).Msg("Per-chunk generation failed")
		return nil, err
	}

	final, err := s.Consolidate(ctx, req, outputs)
	if err != nil {
		logger.Error().Err(err).Msg("Consolidation failed")
		return nil, err
	}

	warnings := validate.Check(req.Mode, req.Count, final)
	for _, w := range warnings {
		logger.Warn().Str("check", w).Msg("Output does not follow the requested format")
	}

	logger.Info().Dur("elapsed", time.Since(start)).Int("calls", len(chunks)+1).Msg("Run complete")
	return &models.Result{
		RunID:      runID,
		Mode:       req.Mode,
		ChunkCount: len(chunks),
		PerChunk:   outputs,
		Final:      final,
		Warnings:   warnings,
	}, nil
}

// GenerateChunks issues exactly one generation call per chunk and returns the
// outputs in chunk order.
func (s *Service) GenerateChunks(ctx context.Context, req models.GenerationRequest, chunks []models.Chunk) ([]string, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks to generate from", models.ErrInvalidInput)
	}

	prompts := make([]string, len(chunks))
	for i, c := range chunks {
		p, err := prompt.Build(req.Mode, c.Content, req.Count, req.Difficulty)
		if err != nil {
			return nil, err
		}
		prompts[i] = p
	}

	outputs := make([]string, len(chunks))
	if s.concurrency == 1 {
		for i, p := range prompts {
			out, err := s.gen.Generate(ctx, p)
			if err != nil {
				return nil, fmt.Errorf("chunk %d: %w", i+1, err)
			}
			outputs[i] = out
		}
		return outputs, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range prompts {
		g.Go(func() error {
			out, err := s.gen.Generate(gctx, p)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i+1, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// Consolidate merges the per-chunk outputs with one more generation call and
// returns the model's text verbatim.
func (s *Service) Consolidate(ctx context.Context, req models.GenerationRequest, outputs []string) (string, error) {
	if len(outputs) == 0 {
		return "", fmt.Errorf("%w: nothing to consolidate", models.ErrInvalidInput)
	}
	p, err := prompt.BuildConsolidation(req.Mode, outputs, req.Count, req.Difficulty)
	if err != nil {
		return "", err
	}
	out, err := s.gen.Generate(ctx, p)
	if err != nil {
		return "", fmt.Errorf("consolidate: %w", err)
	}
	return out, nil
}
