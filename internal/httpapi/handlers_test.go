package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/config"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/models"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/pipeline"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/storage"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/ratelimit"
)

// memoryRepo is an in-memory Repository for handler tests
type memoryRepo struct {
	runs map[string]*models.Run
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{runs: make(map[string]*models.Run)}
}

func (m *memoryRepo) SaveRun(_ context.Context, run *models.Run) error {
	m.runs[run.ID] = run
	return nil
}

func (m *memoryRepo) GetRunByID(_ context.Context, id string) (*models.Run, error) {
	run, ok := m.runs[id]
	if !ok {
		return nil, storage.ErrRunNotFound
	}
	return run, nil
}

func (m *memoryRepo) ListRuns(_ context.Context, filter storage.RunFilter) ([]*models.Run, error) {
	var out []*models.Run
	for _, run := range m.runs {
		if filter.Topic != "" && !strings.Contains(run.Topic, filter.Topic) {
			continue
		}
		if filter.ContentType != "" && run.ContentType != filter.ContentType {
			continue
		}
		out = append(out, run)
	}
	return out, nil
}

func (m *memoryRepo) CountRuns(_ context.Context) (int64, error) {
	return int64(len(m.runs)), nil
}

func (m *memoryRepo) DeleteRunsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, run := range m.runs {
		if run.CreatedAt.Before(cutoff) {
			delete(m.runs, id)
			n++
		}
	}
	return n, nil
}

func (m *memoryRepo) Close() error   { return nil }
func (m *memoryRepo) Migrate() error { return nil }

// newTestServer assembles a server whose pipeline runs entirely on local
// fallbacks, so no test ever touches the network.
func newTestServer(t *testing.T) (*Server, *memoryRepo) {
	t.Helper()

	log := logger.New(logger.Config{Level: "disabled"})
	cfg := &config.Config{}
	reg := pipeline.NewRegistry(cfg, ratelimit.NewDefaultLimiter(), log)
	pipe := pipeline.New(reg, log)
	repo := newMemoryRepo()

	srv := New(config.ServerConfig{Host: "127.0.0.1", Port: 8080}, pipe, reg, repo, nil, log)
	return srv, repo
}

func validForm() url.Values {
	return url.Values{
		"topic":                {"standing desks"},
		"target_communities":   {"r/homeoffice, ergonomics"},
		"industry":             {"furniture"},
		"target_audience":      {"remote workers"},
		"business_type":        {"retailer"},
		"content_goal":         {"drive purchases"},
		"unique_value_prop":    {"ten-year warranty"},
		"brand_voice":          {"friendly"},
		"customer_pain_points": {"assembly is fiddly"},
		"frequent_questions":   {"is it worth it?"},
	}
}

func postForm(srv *Server, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleIndex(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "target_communities")
}

func TestHandleGenerate(t *testing.T) {
	srv, repo := newTestServer(t)

	rec := postForm(srv, validForm())

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "standing desks")
	require.Len(t, repo.runs, 1)
	for _, run := range repo.runs {
		assert.Equal(t, "standing desks", run.Topic)
		assert.Equal(t, []string{"homeoffice", "ergonomics"}, []string(run.Communities))
		assert.Equal(t, string(models.ResearchSourceFallback), run.ResearchSource)
	}
}

func TestHandleGenerateMissingField(t *testing.T) {
	srv, repo := newTestServer(t)

	form := validForm()
	form.Del("topic")
	rec := postForm(srv, form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing or invalid field: topic")
	assert.Empty(t, repo.runs)
}

func TestHandleGenerateEmptyCommunities(t *testing.T) {
	srv, _ := newTestServer(t)

	form := validForm()
	form.Set("target_communities", "  , r/ ,")
	rec := postForm(srv, form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "target_communities")
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Status             string            `json:"status"`
		Components         map[string]string `json:"components"`
		FallbackComponents int               `json:"fallback_components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))

	// No credentials are configured, so every upstream-backed component is
	// wired to its fallback.
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "fallback", health.Components["llm_gateway"])
	assert.Equal(t, "fallback", health.Components["research"])
	assert.Positive(t, health.FallbackComponents)
}

func TestHandleChatWithAnalysisData(t *testing.T) {
	srv, _ := newTestServer(t)

	payload := map[string]interface{}{
		"message": "what was the quality score?",
		"analysis_data": &models.PipelineResult{
			Quality: models.QualityAssessment{OverallScore: 8.1},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["response"], "8.1/10")
}

func TestHandleChatFormEncoded(t *testing.T) {
	srv, _ := newTestServer(t)

	analysis, err := json.Marshal(&models.PipelineResult{
		Quality: models.QualityAssessment{OverallScore: 8.1},
	})
	require.NoError(t, err)

	form := url.Values{
		"message":       {"what was the quality score?"},
		"analysis_data": {string(analysis)},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["response"], "8.1/10")
}

func TestHandleChatFormValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing message", url.Values{"run_id": {"x"}}},
		{"bad analysis_data", url.Values{"message": {"hi"}, "analysis_data": {"{not json"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleChatResolvesStoredRun(t *testing.T) {
	srv, _ := newTestServer(t)

	// Generate once so a run lands in the result cache and the repository
	rec := postForm(srv, validForm())
	require.Equal(t, http.StatusOK, rec.Code)

	var runID string
	for id := range srv.results.Items() {
		runID = id
	}
	require.NotEmpty(t, runID)

	body, err := json.Marshal(map[string]string{
		"message": "summarize the run",
		"run_id":  runID,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	chatRec := httptest.NewRecorder()
	srv.Router().ServeHTTP(chatRec, req)

	assert.Equal(t, http.StatusOK, chatRec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(chatRec.Body.Bytes(), &resp))
	assert.Contains(t, resp["response"], "standing desks")
}

func TestHandleChatUnknownRun(t *testing.T) {
	srv, _ := newTestServer(t)

	body, err := json.Marshal(map[string]string{
		"message": "what was the score?",
		"run_id":  "no-such-run",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["response"], "No analysis is loaded yet")
}

func TestHandleChatValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{not json"},
		{"missing message", `{"run_id":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleListRuns(t *testing.T) {
	srv, repo := newTestServer(t)
	repo.runs["a"] = &models.Run{ID: "a", Topic: "standing desks", ContentType: "guide"}
	repo.runs["b"] = &models.Run{ID: "b", Topic: "gaming chairs", ContentType: "listicle"}

	req := httptest.NewRequest(http.MethodGet, "/api/runs?topic=standing", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Runs  []*models.Run `json:"runs"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "a", resp.Runs[0].ID)
}

func TestHandleGetRun(t *testing.T) {
	srv, repo := newTestServer(t)
	repo.runs["a"] = &models.Run{ID: "a", Topic: "standing desks"}

	req := httptest.NewRequest(http.MethodGet, "/api/runs/a", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/runs/missing", nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
