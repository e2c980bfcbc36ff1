package quiz

import "testing"

func int64Ptr(v int64) *int64 {
	return &v
}

func TestBuildQuizViewGroupsAnswersAndScores(t *testing.T) {
	snapshot := QuizSnapshot{
		Quiz: Quiz{ID: 7, Title: "Mixed"},
		Questions: []Question{
			{ID: 1, QuizID: 7, Text: "First", CorrectAnswerID: int64Ptr(11)},
			{ID: 2, QuizID: 7, Text: "Second", CorrectAnswerID: int64Ptr(21)},
			{ID: 3, QuizID: 7, Text: "Unanswered"},
		},
		Answers: []Answer{
			{ID: 11, QuestionID: 1, Text: "1a"},
			{ID: 12, QuestionID: 1, Text: "1b"},
			{ID: 21, QuestionID: 2, Text: "2a"},
			{ID: 22, QuestionID: 2, Text: "2b"},
		},
		Responses: []Response{
			{ID: 100, QuestionID: 1, AnswerID: 11, Score: 1},
			{ID: 101, QuestionID: 2, AnswerID: 22, Score: 0},
		},
	}

	view := BuildQuizView(snapshot)

	if view.ID != 7 || view.Title != "Mixed" || len(view.Questions) != 3 {
		t.Fatalf("unexpected view header: %+v", view)
	}
	if len(view.Questions[0].Answers) != 2 || view.Questions[0].Answers[1].Text != "1b" {
		t.Fatalf("answers not grouped for question 1: %+v", view.Questions[0].Answers)
	}
	if view.Questions[2].Answers == nil || len(view.Questions[2].Answers) != 0 {
		t.Fatalf("question without answers must carry an empty list, got %#v", view.Questions[2].Answers)
	}
	if *view.Questions[0].UserAnswerID != 11 || *view.Questions[0].Score != 1 {
		t.Fatalf("unexpected user answer on question 1: %+v", view.Questions[0])
	}
	if *view.Questions[1].UserAnswerID != 22 || *view.Questions[1].Score != 0 {
		t.Fatalf("unexpected user answer on question 2: %+v", view.Questions[1])
	}
	if view.Questions[2].UserAnswerID != nil || view.Questions[2].Score != nil || view.Questions[2].CorrectAnswerID != nil {
		t.Fatalf("unanswered question must have nil user fields: %+v", view.Questions[2])
	}
	if view.TotalScore != 1 {
		t.Fatalf("total score = %d, want 1", view.TotalScore)
	}
}

func TestBuildQuizViewLatestResponseWins(t *testing.T) {
	view := BuildQuizView(QuizSnapshot{
		Quiz:      Quiz{ID: 1, Title: "Retry"},
		Questions: []Question{{ID: 1, QuizID: 1, Text: "Q", CorrectAnswerID: int64Ptr(2)}},
		Answers:   []Answer{{ID: 2, QuestionID: 1}, {ID: 3, QuestionID: 1}},
		Responses: []Response{
			{ID: 1, QuestionID: 1, AnswerID: 2, Score: 1},
			{ID: 2, QuestionID: 1, AnswerID: 3, Score: 0},
		},
	})

	question := view.Questions[0]
	if *question.UserAnswerID != 3 || *question.Score != 0 {
		t.Fatalf("expected the latest response to win, got %+v", question)
	}
	if view.TotalScore != 0 {
		t.Fatalf("superseded responses must not count, total = %d", view.TotalScore)
	}
}

func TestBuildQuizViewLinks(t *testing.T) {
	view := BuildQuizView(QuizSnapshot{Quiz: Quiz{ID: 5, Title: "Links"}})

	if view.Links["self"] != "/api/quizzes/5" {
		t.Fatalf("self link = %q", view.Links["self"])
	}
	if view.Links["questions"] != "/api/quizzes/5/questions" {
		t.Fatalf("questions link = %q", view.Links["questions"])
	}
	if view.Questions == nil {
		t.Fatalf("questions must be an empty list, not nil")
	}
}

func TestScoreAnswer(t *testing.T) {
	if got := ScoreAnswer(int64Ptr(4), 4); got != 1 {
		t.Fatalf("matching answer score = %d, want 1", got)
	}
	if got := ScoreAnswer(int64Ptr(4), 5); got != 0 {
		t.Fatalf("other answer score = %d, want 0", got)
	}
	if got := ScoreAnswer(nil, 4); got != 0 {
		t.Fatalf("unset correct answer score = %d, want 0", got)
	}
}
