package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/pipeline"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/storage"
)

// formFieldNames maps struct field names to the form inputs users see,
// so validation errors name the actual field to fill in.
var formFieldNames = map[string]string{
	"Topic":              "topic",
	"TargetCommunities":  "target_communities",
	"Industry":           "industry",
	"TargetAudience":     "target_audience",
	"BusinessType":       "business_type",
	"ContentGoal":        "content_goal",
	"UniqueValueProp":    "unique_value_prop",
	"BrandVoice":         "brand_voice",
	"CustomerPainPoints": "customer_pain_points",
	"FrequentQuestions":  "frequent_questions",
}

// handleIndex renders the generation request form
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "index.html", nil)
}

// handleGenerate runs the full pipeline for a submitted form
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Could not parse the submitted form.")
		return
	}

	req := models.RequestContext{
		Topic:             strings.TrimSpace(r.FormValue("topic")),
		TargetCommunities: splitCommunities(r.FormValue("target_communities")),
		Business: models.BusinessContext{
			Industry:        strings.TrimSpace(r.FormValue("industry")),
			TargetAudience:  strings.TrimSpace(r.FormValue("target_audience")),
			BusinessType:    strings.TrimSpace(r.FormValue("business_type")),
			ContentGoal:     strings.TrimSpace(r.FormValue("content_goal")),
			UniqueValueProp: strings.TrimSpace(r.FormValue("unique_value_prop")),
			BrandVoice:      strings.TrimSpace(r.FormValue("brand_voice")),
		},
		Human: models.HumanInputs{
			CustomerPainPoints: strings.TrimSpace(r.FormValue("customer_pain_points")),
			FrequentQuestions:  strings.TrimSpace(r.FormValue("frequent_questions")),
			SuccessStory:       strings.TrimSpace(r.FormValue("success_story")),
		},
	}

	if err := s.validate.Struct(req); err != nil {
		s.renderError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	result, err := s.pipe.Run(r.Context(), req)
	if err != nil {
		// Only context cancellation reaches here; the pipeline absorbs
		// everything else through fallbacks.
		s.log.Warn().Err(err).Msg("Generation run aborted")
		s.renderError(w, http.StatusServiceUnavailable, "The generation run was interrupted. Please try again.")
		return
	}

	s.results.SetDefault(result.RunID, result)

	run := models.NewRun(result)
	if err := s.repo.SaveRun(r.Context(), run); err != nil {
		s.log.Warn().Err(err).Str("run_id", result.RunID).Msg("Failed to persist run")
	}
	if s.tracker != nil {
		if err := s.tracker.TrackRun(r.Context(), run); err != nil {
			s.log.Warn().Err(err).Str("run_id", result.RunID).Msg("Failed to track run in sheet")
		}
	}

	s.renderPage(w, http.StatusOK, "results.html", map[string]interface{}{
		"Result":        result,
		"TopPainPoints": result.Research.TopPainPoints(5),
	})
}

// healthResponse reports startup component wiring plus run counts
type healthResponse struct {
	Status             string                            `json:"status"`
	Components         map[string]pipeline.ComponentMode `json:"components"`
	FallbackComponents int                               `json:"fallback_components"`
	StoredRuns         int64                             `json:"stored_runs"`
}

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	runs, err := s.repo.CountRuns(r.Context())
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to count runs")
	}

	status := "ok"
	if s.registry.FallbackComponentCount() > 0 {
		status = "degraded"
	}

	s.respondJSON(w, http.StatusOK, healthResponse{
		Status:             status,
		Components:         s.registry.ComponentModes(),
		FallbackComponents: s.registry.FallbackComponentCount(),
		StoredRuns:         runs,
	})
}

type chatRequest struct {
	Message      string                 `json:"message"`
	RunID        string                 `json:"run_id"`
	AnalysisData *models.PipelineResult `json:"analysis_data"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// decodeChatRequest reads the chat request from form fields, or from a JSON
// body when the client sends one
func decodeChatRequest(r *http.Request) (chatRequest, error) {
	var req chatRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, errors.New("request body must be valid JSON")
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return req, errors.New("could not parse the submitted form")
	}
	req.Message = r.FormValue("message")
	req.RunID = r.FormValue("run_id")
	if blob := r.FormValue("analysis_data"); blob != "" {
		if err := json.Unmarshal([]byte(blob), &req.AnalysisData); err != nil {
			return req, errors.New("analysis_data must be valid JSON")
		}
	}
	return req, nil
}

// handleChat answers follow-up questions about a completed run. The run is
// resolved from the request, the recent-result cache, or storage, in
// that order.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	req, err := decodeChatRequest(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	result := req.AnalysisData
	if result == nil && req.RunID != "" {
		if cached, ok := s.results.Get(req.RunID); ok {
			result = cached.(*models.PipelineResult)
		} else if run, err := s.repo.GetRunByID(r.Context(), req.RunID); err == nil {
			result = resultFromRun(run)
		}
	}

	s.respondJSON(w, http.StatusOK, chatResponse{
		Response: s.registry.Responder.Respond(req.Message, result),
	})
}

// handleListRuns handles GET /api/runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filter := storage.DefaultRunFilter()
	filter.Topic = r.URL.Query().Get("topic")
	filter.ContentType = r.URL.Query().Get("content_type")
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit <= 200 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	runs, err := s.repo.ListRuns(r.Context(), filter)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list runs")
		s.respondError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// handleGetRun handles GET /api/runs/{id}
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := s.repo.GetRunByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			s.respondError(w, http.StatusNotFound, "run not found")
			return
		}
		s.log.Error().Err(err).Str("run_id", id).Msg("Failed to load run")
		s.respondError(w, http.StatusInternalServerError, "failed to load run")
		return
	}

	s.respondJSON(w, http.StatusOK, run)
}

// resultFromRun rehydrates the stored result snapshot for the chat responder
func resultFromRun(run *models.Run) *models.PipelineResult {
	if run.Result == nil {
		return nil
	}
	data, err := json.Marshal(run.Result)
	if err != nil {
		return nil
	}
	var result models.PipelineResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

func splitCommunities(raw string) []string {
	parts := strings.Split(raw, ",")
	communities := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), "r/"))
		if p != "" {
			communities = append(communities, p)
		}
	}
	return communities
}

// validationMessage renders the first validation failure as a user-facing
// message naming the form field
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		if name, ok := formFieldNames[field]; ok {
			field = name
		}
		return "missing or invalid field: " + field
	}
	return "the submitted form is incomplete"
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError writes a JSON error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
