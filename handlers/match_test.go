package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/resumematch/backend/ai"
	"github.com/resumematch/backend/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newChatServer fakes the upstream chat completions endpoint, always
// answering with the given content.
func newChatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
}

func newMatchRouter(upstreamURL string) *gin.Engine {
	cfg := &config.Config{
		AIBaseURL:          upstreamURL,
		HTTPTimeoutSeconds: 5,
		MaxUploadMB:        10,
	}
	router := gin.New()
	router.POST("/match-resume", NewMatchHandler(ai.NewClient(cfg), cfg).MatchResume)
	return router
}

func multipartRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("resume", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/match-resume", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestMatchResume(t *testing.T) {
	srv := newChatServer(t, "```json\n{\"candidateName\": \"Jane\", \"scoreOutOfTen\": 7}\n```")
	defer srv.Close()

	router := newMatchRouter(srv.URL)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, "resume.txt", []byte("Jane Doe\nBackend Engineer"), map[string]string{
		"job_description":  "Senior Go engineer",
		"experience_level": "senior",
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result["candidate_name"] != "Jane" {
		t.Errorf("candidate_name = %v", result["candidate_name"])
	}
	if result["score_out_of_ten"] != float64(7) {
		t.Errorf("score_out_of_ten = %v", result["score_out_of_ten"])
	}
}

func TestMatchResumeMissingFile(t *testing.T) {
	srv := newChatServer(t, "{}")
	defer srv.Close()

	router := newMatchRouter(srv.URL)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, "", nil, map[string]string{"job_description": "any"}))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMatchResumeUnsupportedType(t *testing.T) {
	srv := newChatServer(t, "{}")
	defer srv.Close()

	router := newMatchRouter(srv.URL)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, "resume.rtf", []byte("{\\rtf1}"), nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMatchResumeUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	router := newMatchRouter(srv.URL)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, "resume.txt", []byte("text"), nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestMatchResumeUnparseableModelOutput(t *testing.T) {
	srv := newChatServer(t, "I am sorry, I cannot help with that.")
	defer srv.Close()

	router := newMatchRouter(srv.URL)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, "resume.txt", []byte("text"), nil))

	// Recovery failure is a valid outcome, not a server error.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result["error"] != "Failed to parse JSON" {
		t.Errorf("error = %v", result["error"])
	}
	if result["original_string"] != "I am sorry, I cannot help with that." {
		t.Errorf("original_string = %v", result["original_string"])
	}
}
