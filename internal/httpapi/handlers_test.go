package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"quiz-service/internal/quiz"
	"quiz-service/internal/quiz/sqlite"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := sqlite.NewSQLiteStore(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return NewRouter(NewAPI(quiz.NewService(store), 1), Options{})
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func createID(t *testing.T, handler http.Handler, path, body string) int64 {
	t.Helper()

	rec := doRequest(t, handler, http.MethodPost, path, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST %s status = %d, body %s", path, rec.Code, rec.Body.String())
	}
	var payload createdResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode created response: %v", err)
	}
	return payload.ID
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) quiz.QuizView {
	t.Helper()

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var view quiz.QuizView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode quiz view: %v", err)
	}
	return view
}

func TestGeographyQuizScoring(t *testing.T) {
	router := newTestRouter(t)

	quizID := createID(t, router, "/api/quizzes", `{"title":"Geography"}`)
	base := fmt.Sprintf("/api/quizzes/%d", quizID)

	q1 := createID(t, router, base+"/questions", `{"text":"What is the capital of Cuba?"}`)
	q1Havana := createID(t, router, fmt.Sprintf("%s/questions/%d/answers", base, q1), `{"text":"Havana"}`)
	createID(t, router, fmt.Sprintf("%s/questions/%d/answers", base, q1), `{"text":"Santiago"}`)

	q2 := createID(t, router, base+"/questions", `{"text":"What is the capital of France?"}`)
	q2Paris := createID(t, router, fmt.Sprintf("%s/questions/%d/answers", base, q2), `{"text":"Paris"}`)
	q2Lyon := createID(t, router, fmt.Sprintf("%s/questions/%d/answers", base, q2), `{"text":"Lyon"}`)

	for _, update := range []struct {
		question int64
		body     string
	}{
		{q1, fmt.Sprintf(`{"text":"What is the capital of Cuba?","correctAnswerId":%d}`, q1Havana)},
		{q2, fmt.Sprintf(`{"text":"What is the capital of France?","correctAnswerId":%d}`, q2Paris)},
	} {
		rec := doRequest(t, router, http.MethodPut, fmt.Sprintf("%s/questions/%d", base, update.question), update.body)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("update question %d status = %d, body %s", update.question, rec.Code, rec.Body.String())
		}
	}

	rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("%s/questions/%d/answer/%d", base, q1, q1Havana), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit q1 status = %d, body %s", rec.Code, rec.Body.String())
	}
	var recorded quiz.Response
	if err := json.NewDecoder(rec.Body).Decode(&recorded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if recorded.Score != 1 || recorded.UserID != 1 {
		t.Fatalf("recorded = %+v, want score 1 for user 1", recorded)
	}

	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("%s/questions/%d/answer/%d", base, q2, q2Lyon), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit q2 status = %d, body %s", rec.Code, rec.Body.String())
	}

	view := decodeView(t, doRequest(t, router, http.MethodGet, base, ""))
	if view.TotalScore != 1 {
		t.Fatalf("total score = %d, want 1", view.TotalScore)
	}
	if len(view.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(view.Questions))
	}
	first, second := view.Questions[0], view.Questions[1]
	if first.Score == nil || *first.Score != 1 || first.UserAnswerID == nil || *first.UserAnswerID != q1Havana {
		t.Fatalf("first question = %+v", first)
	}
	if second.Score == nil || *second.Score != 0 || second.UserAnswerID == nil || *second.UserAnswerID != q2Lyon {
		t.Fatalf("second question = %+v", second)
	}
	if view.Links["self"] != base || view.Links["questions"] != base+"/questions" {
		t.Fatalf("links = %+v", view.Links)
	}

	// Another user sees the same quiz unanswered.
	other := decodeView(t, doRequest(t, router, http.MethodGet, base, "", userIDHeader, "2"))
	if other.TotalScore != 0 || other.Questions[0].UserAnswerID != nil || other.Questions[0].Score != nil {
		t.Fatalf("other user view = %+v", other)
	}
}

func TestResubmissionUsesLatestResponse(t *testing.T) {
	router := newTestRouter(t)

	quizID := createID(t, router, "/api/quizzes", `{"title":"Resubmit"}`)
	base := fmt.Sprintf("/api/quizzes/%d", quizID)
	questionID := createID(t, router, base+"/questions", `{"text":"2+2?"}`)
	answers := fmt.Sprintf("%s/questions/%d/answers", base, questionID)
	right := createID(t, router, answers, `{"text":"4"}`)
	wrong := createID(t, router, answers, `{"text":"5"}`)

	rec := doRequest(t, router, http.MethodPut, fmt.Sprintf("%s/questions/%d", base, questionID), fmt.Sprintf(`{"text":"2+2?","correctAnswerId":%d}`, right))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}

	submit := fmt.Sprintf("%s/questions/%d/answer/", base, questionID)
	for _, answerID := range []int64{right, wrong} {
		rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("%s%d", submit, answerID), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("submit %d status = %d", answerID, rec.Code)
		}
	}

	view := decodeView(t, doRequest(t, router, http.MethodGet, base, ""))
	got := view.Questions[0]
	if got.UserAnswerID == nil || *got.UserAnswerID != wrong || got.Score == nil || *got.Score != 0 {
		t.Fatalf("question view = %+v, want latest wrong answer", got)
	}
}

func TestCreateReturnsLocation(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/quizzes/", `{"title":"Located"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var payload createdResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got, want := rec.Header().Get("Location"), fmt.Sprintf("/api/quizzes/%d", payload.ID); got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
}

func TestLegacyPrefixServesSameData(t *testing.T) {
	router := newTestRouter(t)

	quizID := createID(t, router, "/quizzes", `{"title":"Legacy"}`)

	rec := doRequest(t, router, http.MethodGet, "/api/quizzes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var quizzes []quiz.Quiz
	if err := json.NewDecoder(rec.Body).Decode(&quizzes); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(quizzes) != 1 || quizzes[0].ID != quizID || quizzes[0].Title != "Legacy" {
		t.Fatalf("quizzes = %+v", quizzes)
	}

	view := decodeView(t, doRequest(t, router, http.MethodGet, fmt.Sprintf("/quizzes/%d", quizID), ""))
	if view.Links["self"] != fmt.Sprintf("/api/quizzes/%d", quizID) {
		t.Fatalf("self link = %q", view.Links["self"])
	}
}

func TestListEmptyIsArray(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/quizzes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want []", got)
	}
}

func TestMissingResourcesReturnNotFound(t *testing.T) {
	router := newTestRouter(t)
	quizID := createID(t, router, "/api/quizzes", `{"title":"Present"}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"get quiz", http.MethodGet, "/api/quizzes/999", ""},
		{"update quiz", http.MethodPut, "/api/quizzes/999", `{"title":"x"}`},
		{"delete quiz", http.MethodDelete, "/api/quizzes/999", ""},
		{"question under missing quiz", http.MethodPost, "/api/quizzes/999/questions", `{"text":"x"}`},
		{"update missing question", http.MethodPut, fmt.Sprintf("/api/quizzes/%d/questions/999", quizID), `{"text":"x"}`},
		{"delete missing question", http.MethodDelete, fmt.Sprintf("/api/quizzes/%d/questions/999", quizID), ""},
		{"update missing answer", http.MethodPut, fmt.Sprintf("/api/quizzes/%d/questions/1/answers/999", quizID), `{"text":"x"}`},
		{"delete missing answer", http.MethodDelete, fmt.Sprintf("/api/quizzes/%d/questions/1/answers/999", quizID), ""},
		{"unknown route", http.MethodGet, "/api/unknown", ""},
		{"non numeric id", http.MethodGet, "/api/quizzes/abc", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, tc.method, tc.path, tc.body)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusNotFound, rec.Body.String())
			}
		})
	}
}

func TestSubmitBadReferenceIsBadRequest(t *testing.T) {
	router := newTestRouter(t)

	quizID := createID(t, router, "/api/quizzes", `{"title":"Refs"}`)
	otherQuizID := createID(t, router, "/api/quizzes", `{"title":"Other"}`)
	questionID := createID(t, router, fmt.Sprintf("/api/quizzes/%d/questions", quizID), `{"text":"Q"}`)
	answerID := createID(t, router, fmt.Sprintf("/api/quizzes/%d/questions/%d/answers", quizID, questionID), `{"text":"A"}`)
	otherQuestionID := createID(t, router, fmt.Sprintf("/api/quizzes/%d/questions", quizID), `{"text":"Q2"}`)

	paths := []string{
		fmt.Sprintf("/api/quizzes/999/questions/%d/answer/%d", questionID, answerID),
		fmt.Sprintf("/api/quizzes/%d/questions/%d/answer/%d", otherQuizID, questionID, answerID),
		fmt.Sprintf("/api/quizzes/%d/questions/999/answer/%d", quizID, answerID),
		fmt.Sprintf("/api/quizzes/%d/questions/%d/answer/999", quizID, questionID),
		fmt.Sprintf("/api/quizzes/%d/questions/%d/answer/%d", quizID, otherQuestionID, answerID),
	}
	for _, path := range paths {
		rec := doRequest(t, router, http.MethodPost, path, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("POST %s status = %d, want %d", path, rec.Code, http.StatusBadRequest)
		}
		var payload errorResponse
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload.Error != "bad reference" {
			t.Fatalf("error = %q", payload.Error)
		}
	}
}

func TestUpdateQuestionRejectsForeignCorrectAnswer(t *testing.T) {
	router := newTestRouter(t)

	quizID := createID(t, router, "/api/quizzes", `{"title":"Foreign"}`)
	base := fmt.Sprintf("/api/quizzes/%d", quizID)
	q1 := createID(t, router, base+"/questions", `{"text":"Q1"}`)
	q2 := createID(t, router, base+"/questions", `{"text":"Q2"}`)
	foreign := createID(t, router, fmt.Sprintf("%s/questions/%d/answers", base, q2), `{"text":"A"}`)

	rec := doRequest(t, router, http.MethodPut, fmt.Sprintf("%s/questions/%d", base, q1), fmt.Sprintf(`{"text":"Q1","correctAnswerId":%d}`, foreign))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestInvalidBodies(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"malformed", `{"title":`, "invalid JSON body"},
		{"missing title", `{}`, "title failed required validation"},
		{"title too long", fmt.Sprintf(`{"title":%q}`, strings.Repeat("x", 501)), "title failed max validation"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/api/quizzes", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			var payload errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if payload.Error != tc.wantErr {
				t.Fatalf("error = %q, want %q", payload.Error, tc.wantErr)
			}
		})
	}
}

func TestInvalidUserIDHeader(t *testing.T) {
	router := newTestRouter(t)
	quizID := createID(t, router, "/api/quizzes", `{"title":"Users"}`)

	rec := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/quizzes/%d", quizID), "", userIDHeader, "nobody")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestWriteMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPatch, "/api/quizzes", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}

	var payload errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error != "method not allowed" {
		t.Fatalf("error payload = %q", payload.Error)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/quizzes/42", "", requestIDHeader, "trace-abc")
	if got := rec.Header().Get(requestIDHeader); got != "trace-abc" {
		t.Fatalf("request id header = %q", got)
	}
	var payload errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.RequestID != "trace-abc" {
		t.Fatalf("request id in body = %q", payload.RequestID)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/quizzes", "")
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected a generated request id")
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Status != "ok" {
		t.Fatalf("status = %q", payload.Status)
	}
}

func TestDeleteQuizOrphansChildren(t *testing.T) {
	router := newTestRouter(t)

	quizID := createID(t, router, "/api/quizzes", `{"title":"Doomed"}`)
	createID(t, router, fmt.Sprintf("/api/quizzes/%d/questions", quizID), `{"text":"Q"}`)

	rec := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/quizzes/%d", quizID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/quizzes/%d", quizID), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}
