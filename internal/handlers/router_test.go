package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/grindboard/practice-service/internal/models"
	"github.com/grindboard/practice-service/internal/repositories/memory"
	"github.com/grindboard/practice-service/internal/services"
	"github.com/grindboard/practice-service/internal/utils"
	"github.com/grindboard/practice-service/internal/validator"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sm := services.NewServiceManager(memory.NewRepository(), slogger, validator.New(), nil, nil)
	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	logger := utils.NewSlogLogger(slogger)
	router := gin.New()
	SetupMiddleware(router, logger)
	NewHandlerManager(sm, logger).SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestQuestionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/questions", map[string]interface{}{
		"title":      "Two Sum",
		"link":       "https://leetcode.com/problems/two-sum",
		"company":    "Google, Amazon",
		"topic":      []string{"Array", "Hash Table"},
		"difficulty": "Easy",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Errorf("missing X-Request-ID header")
	}
	question := decode[models.Question](t, w)
	if len(question.Company) != 2 || question.Difficulty != models.DifficultyEasy {
		t.Errorf("created question = %+v", question)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/attempts", map[string]interface{}{
		"question_id": question.ID,
		"time_spent":  12,
		"result":      "Solved",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("log status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/questions/"+question.ID+"/history", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}
	history := decode[models.QuestionHistory](t, w)
	if len(history.Sessions) != 1 || history.Stats.Solved != 1 {
		t.Errorf("history = %+v", history)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	stats := decode[models.GlobalStats](t, w)
	if stats.TotalSessions != 1 || len(stats.ByTopic) != 2 {
		t.Errorf("stats = %+v", stats)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/questions/"+question.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/questions/"+question.ID+"/history", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("history after delete status = %d", w.Code)
	}
	if resp := decode[ErrorResponse](t, w); resp.Message != "Question not found" {
		t.Errorf("error body = %+v", resp)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/attempts", nil)
	if page := decode[services.Paginated[models.EnrichedAttempt]](t, w); page.Total != 0 {
		t.Errorf("attempts survived cascade: %+v", page)
	}
}

func TestErrorMapping(t *testing.T) {
	router := newTestRouter(t)
	unknown := "11111111-2222-4333-8444-555555555555"

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
		wantDetail bool
	}{
		{name: "malformed json", method: http.MethodPost, path: "/api/v1/questions", body: "{", wantStatus: http.StatusBadRequest, wantDetail: true},
		{name: "validation", method: http.MethodPost, path: "/api/v1/questions", body: map[string]string{"title": ""}, wantStatus: http.StatusBadRequest, wantDetail: true},
		{name: "malformed id", method: http.MethodGet, path: "/api/v1/questions/abc", wantStatus: http.StatusBadRequest, wantDetail: true},
		{name: "unknown question", method: http.MethodGet, path: "/api/v1/questions/" + unknown, wantStatus: http.StatusNotFound},
		{name: "unknown attempt", method: http.MethodDelete, path: "/api/v1/attempts/" + unknown, wantStatus: http.StatusNotFound},
		{name: "bad difficulty filter", method: http.MethodGet, path: "/api/v1/questions?difficulty=Brutal", wantStatus: http.StatusBadRequest, wantDetail: true},
		{name: "bad result filter", method: http.MethodGet, path: "/api/v1/attempts?result=maybe", wantStatus: http.StatusBadRequest, wantDetail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			resp := decode[ErrorResponse](t, w)
			if resp.Message == "" {
				t.Errorf("empty message")
			}
			if tt.wantDetail && resp.Details == nil {
				t.Errorf("missing details")
			}
		})
	}
}

func TestListAttemptsPastLastPage(t *testing.T) {
	router := newTestRouter(t)
	for i := 0; i < 10; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/v1/attempts", map[string]interface{}{
			"question_id": "6a1f9d0c-2b3e-4f5a-8c7d-9e0f1a2b3c4d",
			"time_spent":  i,
			"result":      "Partial",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("log status = %d, body %s", w.Code, w.Body.String())
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/attempts?page=5&pageSize=50", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["data"]) != "[]" || string(raw["total"]) != "10" || string(raw["page"]) != "5" || string(raw["total_pages"]) != "1" {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestExportAttempts(t *testing.T) {
	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/v1/attempts", map[string]interface{}{
		"question_id": "6a1f9d0c-2b3e-4f5a-8c7d-9e0f1a2b3c4d",
		"time_spent":  30,
		"result":      "Unsolved",
		"notes":       "ran out of time",
	})

	w := doJSON(t, router, http.MethodGet, "/api/v1/attempts/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != xlsxContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), ".xlsx") {
		t.Errorf("Content-Disposition = %q", w.Header().Get("Content-Disposition"))
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Attempts")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 2 || rows[1][8] != "ran out of time" {
		t.Errorf("rows = %v", rows)
	}
}

func TestHealthAndCORS(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("health = %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodOptions, "/api/v1/questions", nil)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("preflight = %d %v", w.Code, w.Header())
	}
}
