package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"quiz-service/internal/quiz"
)

func (a *API) HandleListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := a.service.ListQuizzes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (a *API) HandleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(r, "id")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}
	userID, err := a.userID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	view, err := a.service.GetQuiz(r.Context(), quizID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) HandleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var request quizRequest
	if err := a.decodeBody(w, r, &request); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := a.service.CreateQuiz(r.Context(), request.Title)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, fmt.Sprintf("%s/%d", quiz.LinksBasePath, id), id)
}

func (a *API) HandleUpdateQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(r, "id")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}

	var request quizRequest
	if err := a.decodeBody(w, r, &request); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.service.UpdateQuiz(r.Context(), quizID, request.Title); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(r, "id")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}

	if err := a.service.DeleteQuiz(r.Context(), quizID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(r, "id")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}

	var request questionCreateRequest
	if err := a.decodeBody(w, r, &request); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	questionID, err := a.service.CreateQuestion(r.Context(), quizID, request.Text)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, fmt.Sprintf("%s/%d/questions/%d", quiz.LinksBasePath, quizID, questionID), questionID)
}

func (a *API) HandleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(r, "id")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}
	questionID, ok := pathID(r, "qid")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}

	var request questionUpdateRequest
	if err := a.decodeBody(w, r, &request); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.service.UpdateQuestion(r.Context(), quizID, questionID, request.Text, request.CorrectAnswerID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(r, "id")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}
	questionID, ok := pathID(r, "qid")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}

	if err := a.service.DeleteQuestion(r.Context(), quizID, questionID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateAnswer does not check that the question exists or belongs to
// the quiz in the path.
func (a *API) HandleCreateAnswer(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(r, "id")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}
	questionID, ok := pathID(r, "qid")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}

	var request answerRequest
	if err := a.decodeBody(w, r, &request); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	answerID, err := a.service.CreateAnswer(r.Context(), questionID, request.Text)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, fmt.Sprintf("%s/%d/questions/%d/answers/%d", quiz.LinksBasePath, quizID, questionID, answerID), answerID)
}

func (a *API) HandleUpdateAnswer(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(r, "qid")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}
	answerID, ok := pathID(r, "aid")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}

	var request answerRequest
	if err := a.decodeBody(w, r, &request); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.service.UpdateAnswer(r.Context(), questionID, answerID, request.Text); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleDeleteAnswer(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(r, "qid")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}
	answerID, ok := pathID(r, "aid")
	if !ok {
		writeRouteNotFound(w, r)
		return
	}

	if err := a.service.DeleteAnswer(r.Context(), questionID, answerID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSubmitAnswer reports every unresolved reference as 400 without
// saying which level was missing.
func (a *API) HandleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	quizID, okQuiz := pathID(r, "id")
	questionID, okQuestion := pathID(r, "qid")
	answerID, okAnswer := pathID(r, "aid")
	if !okQuiz || !okQuestion || !okAnswer {
		writeError(w, r, http.StatusBadRequest, "bad reference")
		return
	}
	userID, err := a.userID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	response, err := a.service.Submit(r.Context(), quiz.Submission{
		QuizID:     quizID,
		QuestionID: questionID,
		AnswerID:   answerID,
		UserID:     userID,
	})
	if err != nil {
		if errors.Is(err, quiz.ErrNotFound) {
			writeError(w, r, http.StatusBadRequest, "bad reference")
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (a *API) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.service.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
