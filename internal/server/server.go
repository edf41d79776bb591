// Package server is a small HTTP front end: an upload form and a generate
// endpoint that runs the whole pipeline for one PDF.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"quizify/internal/models"
)

// Parser extracts page text from an uploaded PDF.
type Parser interface {
	Parse(r io.Reader) ([]models.Page, error)
}

// Runner executes one generation run.
type Runner interface {
	Run(ctx context.Context, req models.GenerationRequest, pages []models.Page) (*models.Result, error)
}

type Server struct {
	router         chi.Router
	parser         Parser
	runner         Runner
	validate       *validator.Validate
	markdown       goldmark.Markdown
	maxUploadBytes int64
}

func New(parser Parser, runner Runner, maxUploadBytes int64) *Server {
	s := &Server{
		parser:         parser,
		runner:         runner,
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Post("/generate", s.handleGenerate)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, newPageData(generateForm{Mode: string(models.ModeQNA), Difficulty: string(models.DifficultyEasy), Count: 5}))
}

// Mode is checked on its own; Difficulty and Count only for itemized modes.
type generateForm struct {
	Mode       string
	Difficulty string `validate:"required,oneof=Easy Medium Hard"`
	Count      int    `validate:"min=1,max=50"`
}

func (s *Server) parseForm(r *http.Request) (generateForm, models.GenerationRequest, error) {
	form := generateForm{
		Mode:       r.FormValue("mode"),
		Difficulty: r.FormValue("difficulty"),
	}
	if err := s.validate.Var(form.Mode, "required,oneof=QNA MCQS Flashcards Summary"); err != nil {
		return form, models.GenerationRequest{}, fmt.Errorf("%w: %q", models.ErrInvalidMode, form.Mode)
	}
	mode := models.Mode(form.Mode)
	if !mode.Itemized() {
		return form, models.GenerationRequest{Mode: mode}, nil
	}

	count, err := strconv.Atoi(strings.TrimSpace(r.FormValue("count")))
	if err != nil {
		return form, models.GenerationRequest{}, fmt.Errorf("%w: count must be a number", models.ErrInvalidInput)
	}
	form.Count = count
	if err := s.validate.Struct(form); err != nil {
		return form, models.GenerationRequest{}, fmt.Errorf("%w: %s", models.ErrInvalidInput, describe(err))
	}
	return form, models.GenerationRequest{
		Mode:       mode,
		Count:      count,
		Difficulty: models.Difficulty(form.Difficulty),
	}, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Count":
			msgs = append(msgs, fmt.Sprintf("count must be between %d and %d", models.MinCount, models.MaxCount))
		case "Difficulty":
			msgs = append(msgs, "difficulty must be one of Easy, Medium, Hard")
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
		}
	}
	return strings.Join(msgs, "; ")
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.fail(w, r, generateForm{}, fmt.Errorf("%w: invalid multipart form: %v", models.ErrInvalidInput, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	form, req, err := s.parseForm(r)
	if err != nil {
		s.fail(w, r, form, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, r, form, fmt.Errorf("%w: a PDF file is required", models.ErrInvalidInput))
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), models.PDFSuffix) {
		s.fail(w, r, form, fmt.Errorf("%w: %q is not a PDF", models.ErrInvalidInput, filepath.Base(header.Filename)))
		return
	}
	if header.Size > s.maxUploadBytes {
		s.fail(w, r, form, fmt.Errorf("%w: file exceeds max size (%d bytes)", models.ErrInvalidInput, s.maxUploadBytes))
		return
	}

	pages, err := s.parser.Parse(file)
	if err != nil {
		s.fail(w, r, form, err)
		return
	}

	res, err := s.runner.Run(r.Context(), req, pages)
	if err != nil {
		s.fail(w, r, form, err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, res)
		return
	}
	data := newPageData(form)
	data.Result = res
	data.Rendered = s.render(res.Final)
	s.renderPage(w, http.StatusOK, data)
}

func (s *Server) render(text string) template.HTML {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(text), &buf); err != nil {
		log.Warn().Err(err).Msg("Failed to render result as markdown")
		return ""
	}
	return template.HTML(buf.String())
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, form generateForm, err error) {
	status := statusFor(err)
	log.Error().Err(err).Int("status", status).Str("request_id", middleware.GetReqID(r.Context())).Msg("Generation failed")

	if wantsJSON(r) {
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	data := newPageData(form)
	data.Error = err.Error()
	s.renderPage(w, status, data)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type pageData struct {
	Modes        []models.Mode
	Difficulties []models.Difficulty
	MinCount     int
	MaxCount     int

	Mode       models.Mode
	Difficulty models.Difficulty
	Count      int

	Error    string
	Result   *models.Result
	Rendered template.HTML
}

func newPageData(form generateForm) pageData {
	return pageData{
		Modes:        models.Modes,
		Difficulties: models.Difficulties,
		MinCount:     models.MinCount,
		MaxCount:     models.MaxCount,
		Mode:         models.Mode(form.Mode),
		Difficulty:   models.Difficulty(form.Difficulty),
		Count:        form.Count,
	}
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Error().Err(err).Msg("Failed to render page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
