// Package storetest holds behaviour checks shared by every quiz.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"testing"

	"quiz-service/internal/quiz"
)

// Factory returns an empty store. It should register its own cleanup.
type Factory func(t *testing.T) quiz.Store

func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store quiz.Store)
	}{
		{"QuizCRUD", testQuizCRUD},
		{"MissingIDs", testMissingIDs},
		{"QuestionsScopedToQuiz", testQuestionsScopedToQuiz},
		{"AnswersScopedToQuestion", testAnswersScopedToQuestion},
		{"CorrectAnswerCanBeCleared", testCorrectAnswerCanBeCleared},
		{"RecordResponseScores", testRecordResponseScores},
		{"RecordResponseRejectsBrokenReferences", testRecordResponseRejectsBrokenReferences},
		{"RecordResponseAppendsAndKeepsScore", testRecordResponseAppendsAndKeepsScore},
		{"DeleteQuestionOrphansAnswers", testDeleteQuestionOrphansAnswers},
		{"DeleteQuizOrphansQuestions", testDeleteQuizOrphansQuestions},
		{"CreateAnswerUnderMissingQuestion", testCreateAnswerUnderMissingQuestion},
		{"ReadQuizSnapshot", testReadQuizSnapshot},
		{"CreateQuizWithQuestions", testCreateQuizWithQuestions},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newStore(t))
		})
	}
}

// fixture is a quiz with one question and two answers, the first one correct.
type fixture struct {
	quizID     int64
	questionID int64
	correctID  int64
	wrongID    int64
}

func seed(t *testing.T, store quiz.Store) fixture {
	t.Helper()
	ctx := context.Background()

	var f fixture
	var err error
	if f.quizID, err = store.CreateQuiz(ctx, "Geography"); err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}
	if f.questionID, err = store.CreateQuestion(ctx, f.quizID, "Capital of France?"); err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}
	if f.correctID, err = store.CreateAnswer(ctx, f.questionID, "Paris"); err != nil {
		t.Fatalf("CreateAnswer failed: %v", err)
	}
	if f.wrongID, err = store.CreateAnswer(ctx, f.questionID, "Lyon"); err != nil {
		t.Fatalf("CreateAnswer failed: %v", err)
	}

	correct := f.correctID
	updated, err := store.UpdateQuestion(ctx, f.quizID, f.questionID, "Capital of France?", &correct)
	if err != nil || !updated {
		t.Fatalf("UpdateQuestion = (%v, %v), want (true, nil)", updated, err)
	}
	return f
}

func testQuizCRUD(t *testing.T, store quiz.Store) {
	ctx := context.Background()

	id, err := store.CreateQuiz(ctx, "First")
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}
	otherID, err := store.CreateQuiz(ctx, "Second")
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}
	if id == otherID {
		t.Fatalf("expected distinct ids, both were %d", id)
	}

	got, ok, err := store.GetQuiz(ctx, id)
	if err != nil || !ok {
		t.Fatalf("GetQuiz = (%v, %v), want found", ok, err)
	}
	if got.Title != "First" {
		t.Fatalf("title = %q, want First", got.Title)
	}

	updated, err := store.UpdateQuiz(ctx, id, "Renamed")
	if err != nil || !updated {
		t.Fatalf("UpdateQuiz = (%v, %v), want (true, nil)", updated, err)
	}
	got, _, _ = store.GetQuiz(ctx, id)
	if got.Title != "Renamed" {
		t.Fatalf("title after update = %q, want Renamed", got.Title)
	}

	quizzes, err := store.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("ListQuizzes failed: %v", err)
	}
	if len(quizzes) != 2 || quizzes[0].ID != id || quizzes[1].ID != otherID {
		t.Fatalf("unexpected quiz list: %+v", quizzes)
	}

	deleted, err := store.DeleteQuiz(ctx, id)
	if err != nil || !deleted {
		t.Fatalf("DeleteQuiz = (%v, %v), want (true, nil)", deleted, err)
	}
	exists, err := store.QuizExists(ctx, id)
	if err != nil || exists {
		t.Fatalf("QuizExists after delete = (%v, %v), want (false, nil)", exists, err)
	}
	exists, err = store.QuizExists(ctx, otherID)
	if err != nil || !exists {
		t.Fatalf("QuizExists = (%v, %v), want (true, nil)", exists, err)
	}
}

func testMissingIDs(t *testing.T, store quiz.Store) {
	ctx := context.Background()
	const missing = 9999

	if _, ok, err := store.GetQuiz(ctx, missing); err != nil || ok {
		t.Fatalf("GetQuiz(missing) = (%v, %v), want absent", ok, err)
	}
	if ok, err := store.UpdateQuiz(ctx, missing, "x"); err != nil || ok {
		t.Fatalf("UpdateQuiz(missing) = (%v, %v), want (false, nil)", ok, err)
	}
	if ok, err := store.DeleteQuiz(ctx, missing); err != nil || ok {
		t.Fatalf("DeleteQuiz(missing) = (%v, %v), want (false, nil)", ok, err)
	}
	if ok, err := store.QuizExists(ctx, missing); err != nil || ok {
		t.Fatalf("QuizExists(missing) = (%v, %v), want (false, nil)", ok, err)
	}

	if _, ok, err := store.GetQuestion(ctx, missing, missing); err != nil || ok {
		t.Fatalf("GetQuestion(missing) = (%v, %v), want absent", ok, err)
	}
	if ok, err := store.UpdateQuestion(ctx, missing, missing, "x", nil); err != nil || ok {
		t.Fatalf("UpdateQuestion(missing) = (%v, %v), want (false, nil)", ok, err)
	}
	if ok, err := store.DeleteQuestion(ctx, missing, missing); err != nil || ok {
		t.Fatalf("DeleteQuestion(missing) = (%v, %v), want (false, nil)", ok, err)
	}

	if _, ok, err := store.GetAnswer(ctx, missing, missing); err != nil || ok {
		t.Fatalf("GetAnswer(missing) = (%v, %v), want absent", ok, err)
	}
	if ok, err := store.UpdateAnswer(ctx, missing, missing, "x"); err != nil || ok {
		t.Fatalf("UpdateAnswer(missing) = (%v, %v), want (false, nil)", ok, err)
	}
	if ok, err := store.DeleteAnswer(ctx, missing, missing); err != nil || ok {
		t.Fatalf("DeleteAnswer(missing) = (%v, %v), want (false, nil)", ok, err)
	}
}

func testQuestionsScopedToQuiz(t *testing.T, store quiz.Store) {
	ctx := context.Background()
	f := seed(t, store)

	otherQuiz, err := store.CreateQuiz(ctx, "Other")
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}

	if _, ok, _ := store.GetQuestion(ctx, otherQuiz, f.questionID); ok {
		t.Fatalf("question must not be visible under another quiz")
	}
	if ok, _ := store.UpdateQuestion(ctx, otherQuiz, f.questionID, "hijack", nil); ok {
		t.Fatalf("question must not be updatable under another quiz")
	}
	if ok, _ := store.DeleteQuestion(ctx, otherQuiz, f.questionID); ok {
		t.Fatalf("question must not be deletable under another quiz")
	}
	if ok, _ := store.QuestionExists(ctx, otherQuiz, f.questionID); ok {
		t.Fatalf("question must not exist under another quiz")
	}

	question, ok, err := store.GetQuestion(ctx, f.quizID, f.questionID)
	if err != nil || !ok {
		t.Fatalf("GetQuestion = (%v, %v), want found", ok, err)
	}
	if question.Text != "Capital of France?" || question.CorrectAnswerID == nil || *question.CorrectAnswerID != f.correctID {
		t.Fatalf("unexpected question: %+v", question)
	}

	questions, err := store.ListQuestions(ctx, f.quizID)
	if err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != f.questionID {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func testAnswersScopedToQuestion(t *testing.T, store quiz.Store) {
	ctx := context.Background()
	f := seed(t, store)

	otherQuestion, err := store.CreateQuestion(ctx, f.quizID, "Another?")
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}

	if ok, _ := store.UpdateAnswer(ctx, otherQuestion, f.correctID, "hijack"); ok {
		t.Fatalf("answer must not be updatable under another question")
	}
	if ok, _ := store.AnswerExists(ctx, otherQuestion, f.correctID); ok {
		t.Fatalf("answer must not exist under another question")
	}

	updated, err := store.UpdateAnswer(ctx, f.questionID, f.wrongID, "Marseille")
	if err != nil || !updated {
		t.Fatalf("UpdateAnswer = (%v, %v), want (true, nil)", updated, err)
	}
	answer, ok, err := store.GetAnswer(ctx, f.questionID, f.wrongID)
	if err != nil || !ok || answer.Text != "Marseille" {
		t.Fatalf("GetAnswer = (%+v, %v, %v)", answer, ok, err)
	}

	deleted, err := store.DeleteAnswer(ctx, f.questionID, f.wrongID)
	if err != nil || !deleted {
		t.Fatalf("DeleteAnswer = (%v, %v), want (true, nil)", deleted, err)
	}
	answers, err := store.ListAnswers(ctx, f.questionID)
	if err != nil {
		t.Fatalf("ListAnswers failed: %v", err)
	}
	if len(answers) != 1 || answers[0].ID != f.correctID {
		t.Fatalf("unexpected answers: %+v", answers)
	}
}

func testCorrectAnswerCanBeCleared(t *testing.T, store quiz.Store) {
	ctx := context.Background()
	f := seed(t, store)

	updated, err := store.UpdateQuestion(ctx, f.quizID, f.questionID, "Reworded", nil)
	if err != nil || !updated {
		t.Fatalf("UpdateQuestion = (%v, %v), want (true, nil)", updated, err)
	}
	question, _, err := store.GetQuestion(ctx, f.quizID, f.questionID)
	if err != nil {
		t.Fatalf("GetQuestion failed: %v", err)
	}
	if question.Text != "Reworded" || question.CorrectAnswerID != nil {
		t.Fatalf("unexpected question after clearing: %+v", question)
	}

	response, err := store.RecordResponse(ctx, quiz.Submission{
		QuizID: f.quizID, QuestionID: f.questionID, AnswerID: f.correctID, UserID: 1,
	})
	if err != nil {
		t.Fatalf("RecordResponse failed: %v", err)
	}
	if response.Score != 0 {
		t.Fatalf("score with unset correct answer = %d, want 0", response.Score)
	}
}

func testRecordResponseScores(t *testing.T, store quiz.Store) {
	ctx := context.Background()
	f := seed(t, store)

	right, err := store.RecordResponse(ctx, quiz.Submission{
		QuizID: f.quizID, QuestionID: f.questionID, AnswerID: f.correctID, UserID: 1,
	})
	if err != nil {
		t.Fatalf("RecordResponse failed: %v", err)
	}
	if right.Score != 1 || right.AnswerID != f.correctID || right.UserID != 1 || right.ID == 0 {
		t.Fatalf("unexpected correct response: %+v", right)
	}

	wrong, err := store.RecordResponse(ctx, quiz.Submission{
		QuizID: f.quizID, QuestionID: f.questionID, AnswerID: f.wrongID, UserID: 2,
	})
	if err != nil {
		t.Fatalf("RecordResponse failed: %v", err)
	}
	if wrong.Score != 0 {
		t.Fatalf("score for wrong answer = %d, want 0", wrong.Score)
	}
}

func testRecordResponseRejectsBrokenReferences(t *testing.T, store quiz.Store) {
	ctx := context.Background()
	f := seed(t, store)

	otherQuiz, err := store.CreateQuiz(ctx, "Other")
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}
	otherQuestion, err := store.CreateQuestion(ctx, f.quizID, "Another?")
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}
	foreignAnswer, err := store.CreateAnswer(ctx, otherQuestion, "Elsewhere")
	if err != nil {
		t.Fatalf("CreateAnswer failed: %v", err)
	}

	cases := map[string]quiz.Submission{
		"missing quiz":           {QuizID: 9999, QuestionID: f.questionID, AnswerID: f.correctID, UserID: 1},
		"question of other quiz": {QuizID: otherQuiz, QuestionID: f.questionID, AnswerID: f.correctID, UserID: 1},
		"missing question":       {QuizID: f.quizID, QuestionID: 9999, AnswerID: f.correctID, UserID: 1},
		"missing answer":         {QuizID: f.quizID, QuestionID: f.questionID, AnswerID: 9999, UserID: 1},
		"answer of other question": {
			QuizID: f.quizID, QuestionID: f.questionID, AnswerID: foreignAnswer, UserID: 1,
		},
	}
	for name, submission := range cases {
		if _, err := store.RecordResponse(ctx, submission); !errors.Is(err, quiz.ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", name, err)
		}
	}

	responses, err := store.ListResponses(ctx, f.quizID, 1)
	if err != nil {
		t.Fatalf("ListResponses failed: %v", err)
	}
	if len(responses) != 0 {
		t.Fatalf("rejected submissions must not be stored, got %+v", responses)
	}
}

func testRecordResponseAppendsAndKeepsScore(t *testing.T, store quiz.Store) {
	ctx := context.Background()
	f := seed(t, store)

	first, err := store.RecordResponse(ctx, quiz.Submission{
		QuizID: f.quizID, QuestionID: f.questionID, AnswerID: f.correctID, UserID: 1,
	})
	if err != nil {
		t.Fatalf("RecordResponse failed: %v", err)
	}

	// Moving the correct answer must not rescore the stored response.
	wrong := f.wrongID
	if _, err := store.UpdateQuestion(ctx, f.quizID, f.questionID, "Capital of France?", &wrong); err != nil {
		t.Fatalf("UpdateQuestion failed: %v", err)
	}

	second, err := store.RecordResponse(ctx, quiz.Submission{
		QuizID: f.quizID, QuestionID: f.questionID, AnswerID: f.correctID, UserID: 1,
	})
	if err != nil {
		t.Fatalf("RecordResponse failed: %v", err)
	}
	if second.ID <= first.ID {
		t.Fatalf("response ids must increase: first=%d second=%d", first.ID, second.ID)
	}

	responses, err := store.ListResponses(ctx, f.quizID, 1)
	if err != nil {
		t.Fatalf("ListResponses failed: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("expected two responses in the log, got %d", len(responses))
	}
	if responses[0].ID != first.ID || responses[0].Score != 1 {
		t.Fatalf("first response changed: %+v", responses[0])
	}
	if responses[1].ID != second.ID || responses[1].Score != 0 {
		t.Fatalf("unexpected second response: %+v", responses[1])
	}
}

func testDeleteQuestionOrphansAnswers(t *testing.T, store quiz.Store) {
	ctx := context.Background()
	f := seed(t, store)

	deleted, err := store.DeleteQuestion(ctx, f.quizID, f.questionID)
	if err != nil || !deleted {
		t.Fatalf("DeleteQuestion = (%v, %v), want (true, nil)", deleted, err)
	}

	answers, err := store.ListAnswers(ctx, f.questionID)
	if err != nil {
		t.Fatalf("ListAnswers failed: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("answers must survive their question, got %+v", answers)
	}
	if _, ok, err := store.GetAnswer(ctx, f.questionID, f.correctID); err != nil || !ok {
		t.Fatalf("orphaned answer must stay addressable: (%v, %v)", ok, err)
	}
}

func testDeleteQuizOrphansQuestions(t *testing.T, store quiz.Store) {
	ctx := context.Background()
	f := seed(t, store)

	deleted, err := store.DeleteQuiz(ctx, f.quizID)
	if err != nil || !deleted {
		t.Fatalf("DeleteQuiz = (%v, %v), want (true, nil)", deleted, err)
	}

	if _, ok, err := store.GetQuestion(ctx, f.quizID, f.questionID); err != nil || !ok {
		t.Fatalf("question must survive its quiz: (%v, %v)", ok, err)
	}
	if _, ok, err := store.ReadQuizSnapshot(ctx, f.quizID, 1); err != nil || ok {
		t.Fatalf("snapshot of deleted quiz = (%v, %v), want absent", ok, err)
	}
}

func testCreateAnswerUnderMissingQuestion(t *testing.T, store quiz.Store) {
	ctx := context.Background()

	id, err := store.CreateAnswer(ctx, 4242, "Dangling")
	if err != nil {
		t.Fatalf("CreateAnswer under missing question failed: %v", err)
	}
	answer, ok, err := store.GetAnswer(ctx, 4242, id)
	if err != nil || !ok || answer.Text != "Dangling" {
		t.Fatalf("GetAnswer = (%+v, %v, %v)", answer, ok, err)
	}
}

func testReadQuizSnapshot(t *testing.T, store quiz.Store) {
	ctx := context.Background()

	if _, ok, err := store.ReadQuizSnapshot(ctx, 9999, 1); err != nil || ok {
		t.Fatalf("snapshot of missing quiz = (%v, %v), want absent", ok, err)
	}

	f := seed(t, store)
	empty, err := store.CreateQuestion(ctx, f.quizID, "No answers yet")
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}

	otherQuiz, err := store.CreateQuiz(ctx, "Other")
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}
	otherQuestion, err := store.CreateQuestion(ctx, otherQuiz, "Elsewhere?")
	if err != nil {
		t.Fatalf("CreateQuestion failed: %v", err)
	}
	if _, err := store.CreateAnswer(ctx, otherQuestion, "Not mine"); err != nil {
		t.Fatalf("CreateAnswer failed: %v", err)
	}

	for _, submission := range []quiz.Submission{
		{QuizID: f.quizID, QuestionID: f.questionID, AnswerID: f.wrongID, UserID: 1},
		{QuizID: f.quizID, QuestionID: f.questionID, AnswerID: f.correctID, UserID: 1},
		{QuizID: f.quizID, QuestionID: f.questionID, AnswerID: f.wrongID, UserID: 2},
	} {
		if _, err := store.RecordResponse(ctx, submission); err != nil {
			t.Fatalf("RecordResponse failed: %v", err)
		}
	}

	snapshot, ok, err := store.ReadQuizSnapshot(ctx, f.quizID, 1)
	if err != nil || !ok {
		t.Fatalf("ReadQuizSnapshot = (%v, %v), want found", ok, err)
	}
	if snapshot.Quiz.ID != f.quizID || snapshot.Quiz.Title != "Geography" {
		t.Fatalf("unexpected quiz: %+v", snapshot.Quiz)
	}
	if len(snapshot.Questions) != 2 || snapshot.Questions[0].ID != f.questionID || snapshot.Questions[1].ID != empty {
		t.Fatalf("unexpected questions: %+v", snapshot.Questions)
	}
	if len(snapshot.Answers) != 2 {
		t.Fatalf("answers of other quizzes must be excluded, got %+v", snapshot.Answers)
	}
	if len(snapshot.Responses) != 2 {
		t.Fatalf("responses of other users must be excluded, got %+v", snapshot.Responses)
	}
	if snapshot.Responses[1].AnswerID != f.correctID {
		t.Fatalf("responses must be in submission order, got %+v", snapshot.Responses)
	}

	view := quiz.BuildQuizView(snapshot)
	if view.Questions[0].UserAnswerID == nil || *view.Questions[0].UserAnswerID != f.correctID {
		t.Fatalf("latest response must win, got %+v", view.Questions[0])
	}
	if view.TotalScore != 1 {
		t.Fatalf("total score = %d, want 1", view.TotalScore)
	}
}

func testCreateQuizWithQuestions(t *testing.T, store quiz.Store) {
	ctx := context.Background()

	quizID, err := store.CreateQuizWithQuestions(ctx, "Imported", []quiz.QuestionDraft{
		{Text: "2+2?", Answers: []string{"3", "4"}, CorrectIndex: 1},
		{Text: "Open question", Answers: nil, CorrectIndex: -1},
	})
	if err != nil {
		t.Fatalf("CreateQuizWithQuestions failed: %v", err)
	}

	snapshot, ok, err := store.ReadQuizSnapshot(ctx, quizID, 1)
	if err != nil || !ok {
		t.Fatalf("ReadQuizSnapshot = (%v, %v), want found", ok, err)
	}
	if snapshot.Quiz.Title != "Imported" || len(snapshot.Questions) != 2 || len(snapshot.Answers) != 2 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}

	first := snapshot.Questions[0]
	if first.CorrectAnswerID == nil || *first.CorrectAnswerID != snapshot.Answers[1].ID {
		t.Fatalf("correct answer not wired: %+v answers=%+v", first, snapshot.Answers)
	}
	if snapshot.Questions[1].CorrectAnswerID != nil {
		t.Fatalf("question without answers must have no correct answer: %+v", snapshot.Questions[1])
	}
}
