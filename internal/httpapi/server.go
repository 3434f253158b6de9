package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/cognicore/sift/pkg/sift"
)

// SettingsHeader carries per-request JSON overrides for the classifier.
// Values are JSON strings, e.g. {"spam_threshold": "0.9"}.
const SettingsHeader = "x-sift-settings"

// Server exposes classification over HTTP on top of a shared engine.
type Server struct {
	engine *sift.Engine
}

// NewServer creates a server around the given engine.
func NewServer(engine *sift.Engine) *Server {
	return &Server{engine: engine}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Post("/classify", s.handleClassify)
	r.Get("/healthz", s.handleHealth)
	return r
}

type classifyRequest struct {
	Input string `json:"input"`
}

type classifyResponse struct {
	Text            string  `json:"text"`
	SpamProbability float64 `json:"spam_probability"`
	HamProbability  float64 `json:"ham_probability"`
	IsSpam          bool    `json:"is_spam"`
	Confidence      float64 `json:"confidence"`
}

type healthResponse struct {
	UniqueTokens uint32  `json:"unique_tokens"`
	TotalSpam    uint32  `json:"total_spam"`
	TotalHam     uint32  `json:"total_ham"`
	PriorSpam    float64 `json:"prior_spam"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}

	threshold, alpha, err := s.parseSettings(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	c := s.engine.Classifier()
	c.SetSpamThreshold(threshold)
	c.SetAlpha(alpha)
	result := c.ClassifyDetailed(req.Input)

	writeJSON(w, http.StatusOK, classifyResponse{
		Text:            req.Input,
		SpamProbability: result.SpamProbability,
		HamProbability:  result.HamProbability,
		IsSpam:          result.IsSpam,
		Confidence:      result.Confidence,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.engine.Model().Stats()
	writeJSON(w, http.StatusOK, healthResponse{
		UniqueTokens: stats.UniqueTokens,
		TotalSpam:    stats.TotalSpam,
		TotalHam:     stats.TotalHam,
		PriorSpam:    stats.PriorSpam(),
	})
}

// parseSettings decodes the per-request overrides. A missing header is a
// client error; an individual value that fails to parse silently falls
// back to the configured default.
func (s *Server) parseSettings(r *http.Request) (threshold, alpha float64, err error) {
	cfg := s.engine.Config()
	threshold = cfg.SpamThreshold
	alpha = cfg.LaplaceSmoothingFactor

	raw := r.Header.Get(SettingsHeader)
	if raw == "" {
		return 0, 0, fmt.Errorf("missing %q header", SettingsHeader)
	}

	var settings map[string]string
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return 0, 0, fmt.Errorf("invalid %q header: %v", SettingsHeader, err)
	}

	if v, ok := settings["spam_threshold"]; ok {
		if f, perr := strconv.ParseFloat(v, 64); perr == nil {
			threshold = f
		}
	}
	if v, ok := settings["laplace_smoothing_factor"]; ok {
		if f, perr := strconv.ParseFloat(v, 64); perr == nil {
			alpha = f
		}
	}
	return threshold, alpha, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
