package quiz

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound reports a quiz, question or answer reference that does not
	// resolve. It is the same error whichever level of the hierarchy is missing.
	ErrNotFound = errors.New("not found")

	ErrValidation       = errors.New("validation failed")
	ErrInvalidReference = fmt.Errorf("%w: correct answer does not belong to question", ErrValidation)
)

type Quiz struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Question belongs to a quiz. CorrectAnswerID is nil until configured.
type Question struct {
	ID              int64
	QuizID          int64
	Text            string
	CorrectAnswerID *int64
}

type Answer struct {
	ID         int64
	QuestionID int64
	Text       string
}

// Response is one entry of the append-only submission log. ID is issued by
// the store in submission order.
type Response struct {
	ID          int64     `json:"id"`
	QuizID      int64     `json:"quizId"`
	QuestionID  int64     `json:"questionId"`
	AnswerID    int64     `json:"answerId"`
	UserID      int64     `json:"userId"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type Submission struct {
	QuizID     int64
	QuestionID int64
	AnswerID   int64
	UserID     int64
}

// QuestionDraft describes a question together with its answers for the
// multi-entity create path. CorrectIndex < 0 leaves the correct answer unset.
type QuestionDraft struct {
	Text         string
	Answers      []string
	CorrectIndex int
}

// QuizSnapshot holds the flat rows the aggregator needs for one quiz and one user.
// Responses are ordered by submission sequence, oldest first.
type QuizSnapshot struct {
	Quiz      Quiz
	Questions []Question
	Answers   []Answer
	Responses []Response
}

// ScoreAnswer returns 1 when answerID is the configured correct answer and 0
// otherwise. An unset correct answer never matches.
func ScoreAnswer(correctAnswerID *int64, answerID int64) int {
	if correctAnswerID != nil && *correctAnswerID == answerID {
		return 1
	}
	return 0
}
