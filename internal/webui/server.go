package webui

import (
	"context"
	"html/template"
	"net/http"
	"regexp"
	"strings"
	"time"

	_ "embed"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// Runner is the search entry point the UI calls; the pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, query string) string
}

// samplePrompts seed the form so a first-time visitor has something to click.
var samplePrompts = []string{
	"We are a tech startup based in Mumbai working on AI solutions for healthcare",
	"Our manufacturing company in Delhi is looking for government contracts in renewable energy",
	"We are a fintech company based in Bangalore with 50 employees and a budget of 20 lakh",
}

const searchTimeout = 5 * time.Minute

// Server renders the search form and report. The report stays the pipeline's
// plain text, split into sections so the page can show one card per tender.
type Server struct {
	runner Runner
	logger *zap.Logger
}

func NewServer(runner Runner, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the HTTP routing for the UI.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/search", s.handleSearch)
	r.Get("/healthz", s.handleHealth)

	return r
}

type pageData struct {
	SamplePrompts []string
	Query         string

	// Report sections, filled after a search.
	HasResult bool
	Header    string
	Tenders   []string
	NextSteps string
	// Message holds a report that has no tender blocks (the pipeline's
	// guidance and not-found responses).
	Message string
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, &pageData{SamplePrompts: samplePrompts})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	query := strings.TrimSpace(r.PostFormValue("query"))
	if query == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), searchTimeout)
	defer cancel()

	started := time.Now()
	report := s.runner.Run(ctx, query)

	s.logger.Info("search finished",
		zap.Int("query_length", len(query)),
		zap.Duration("elapsed", time.Since(started)),
	)

	data := &pageData{
		SamplePrompts: samplePrompts,
		Query:         query,
		HasResult:     true,
	}
	splitReport(report, data)

	s.render(w, data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}

func (s *Server) render(w http.ResponseWriter, data *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("render page", zap.Error(err))
	}
}

// splitReport carves the pipeline's plain-text report into the header, one
// section per tender, and the next-steps footer. Reports without tender
// blocks are passed through as a single message.
func splitReport(report string, data *pageData) {
	if !strings.Contains(report, "TENDER SEARCH RESULTS FOR:") {
		data.Message = strings.TrimSpace(report)
		return
	}

	body := report
	if idx := strings.Index(body, "NEXT STEPS:"); idx != -1 {
		data.NextSteps = strings.TrimSpace(body[idx+len("NEXT STEPS:"):])
		body = body[:idx]
		body = strings.TrimSuffix(strings.TrimSpace(body), "📋")
	}

	// The header line also starts with "TENDER ", so blocks are located by
	// their numbered form only.
	locations := tenderBlockPattern.FindAllStringIndex(body, -1)
	if len(locations) == 0 {
		data.Header = strings.TrimSpace(body)
		return
	}

	data.Header = strings.TrimSpace(body[:locations[0][0]])

	for i, loc := range locations {
		end := len(body)
		if i+1 < len(locations) {
			end = locations[i+1][0]
		}
		block := strings.TrimSpace(body[loc[0]:end])
		block = strings.TrimSpace(strings.TrimSuffix(block, "---"))
		if block != "" {
			data.Tenders = append(data.Tenders, block)
		}
	}
}

var tenderBlockPattern = regexp.MustCompile(`(?m)^TENDER \d+:`)
