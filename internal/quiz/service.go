package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang/glog"
)

// Service holds the workflows that span more than one repository call. Plain
// CRUD passes straight through to the store, translating a false result into
// ErrNotFound.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	return s.store.ListQuizzes(ctx)
}

// GetQuiz returns the nested view of a quiz scored for userID.
func (s *Service) GetQuiz(ctx context.Context, quizID, userID int64) (QuizView, error) {
	snapshot, ok, err := s.store.ReadQuizSnapshot(ctx, quizID, userID)
	if err != nil {
		return QuizView{}, err
	}
	if !ok {
		return QuizView{}, ErrNotFound
	}
	return BuildQuizView(snapshot), nil
}

func (s *Service) CreateQuiz(ctx context.Context, title string) (int64, error) {
	return s.store.CreateQuiz(ctx, title)
}

func (s *Service) UpdateQuiz(ctx context.Context, id int64, title string) error {
	return foundOrNotFound(s.store.UpdateQuiz(ctx, id, title))
}

// DeleteQuiz removes only the quiz row. Questions, answers and responses that
// reference it are left in place.
func (s *Service) DeleteQuiz(ctx context.Context, id int64) error {
	return foundOrNotFound(s.store.DeleteQuiz(ctx, id))
}

func (s *Service) CreateQuestion(ctx context.Context, quizID int64, text string) (int64, error) {
	exists, err := s.store.QuizExists(ctx, quizID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrNotFound
	}
	return s.store.CreateQuestion(ctx, quizID, text)
}

// UpdateQuestion rejects a correct answer pointer that names an answer of a
// different question. A nil pointer clears the correct answer.
func (s *Service) UpdateQuestion(ctx context.Context, quizID, questionID int64, text string, correctAnswerID *int64) error {
	if correctAnswerID != nil {
		exists, err := s.store.QuestionExists(ctx, quizID, questionID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		belongs, err := s.store.AnswerExists(ctx, questionID, *correctAnswerID)
		if err != nil {
			return err
		}
		if !belongs {
			return fmt.Errorf("answer %d: %w", *correctAnswerID, ErrInvalidReference)
		}
	}
	return foundOrNotFound(s.store.UpdateQuestion(ctx, quizID, questionID, text, correctAnswerID))
}

// DeleteQuestion leaves the question's answers orphaned.
func (s *Service) DeleteQuestion(ctx context.Context, quizID, questionID int64) error {
	return foundOrNotFound(s.store.DeleteQuestion(ctx, quizID, questionID))
}

// CreateAnswer accepts any question id, including one that does not exist.
func (s *Service) CreateAnswer(ctx context.Context, questionID int64, text string) (int64, error) {
	return s.store.CreateAnswer(ctx, questionID, text)
}

func (s *Service) UpdateAnswer(ctx context.Context, questionID, answerID int64, text string) error {
	return foundOrNotFound(s.store.UpdateAnswer(ctx, questionID, answerID, text))
}

func (s *Service) DeleteAnswer(ctx context.Context, questionID, answerID int64) error {
	return foundOrNotFound(s.store.DeleteAnswer(ctx, questionID, answerID))
}

// Submit records the user's answer to a question and returns the stored
// response. Any broken quiz/question/answer reference yields ErrNotFound.
// Every call appends a new response; earlier ones are never modified.
func (s *Service) Submit(ctx context.Context, submission Submission) (Response, error) {
	if submission.UserID <= 0 {
		return Response{}, fmt.Errorf("user id %d: %w", submission.UserID, ErrValidation)
	}

	response, err := s.store.RecordResponse(ctx, submission)
	if err != nil {
		return Response{}, err
	}

	glog.V(2).Infof("recorded response %d: quiz=%d question=%d answer=%d user=%d score=%d",
		response.ID, response.QuizID, response.QuestionID, response.AnswerID, response.UserID, response.Score)
	return response, nil
}

// ImportQuiz creates a quiz together with its questions and answers in one
// store transaction.
func (s *Service) ImportQuiz(ctx context.Context, title string, drafts []QuestionDraft) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, fmt.Errorf("title is required: %w", ErrValidation)
	}
	for idx, draft := range drafts {
		if strings.TrimSpace(draft.Text) == "" {
			return 0, fmt.Errorf("question %d has no text: %w", idx, ErrValidation)
		}
		if draft.CorrectIndex >= len(draft.Answers) {
			return 0, fmt.Errorf("question %d correct index %d out of range: %w", idx, draft.CorrectIndex, ErrValidation)
		}
	}
	return s.store.CreateQuizWithQuestions(ctx, title, drafts)
}

// SeedDemo creates the demo quizzes when the store holds no quizzes yet.
func (s *Service) SeedDemo(ctx context.Context) error {
	existing, err := s.store.ListQuizzes(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		glog.V(2).Infof("store already holds %d quizzes, skipping demo seed", len(existing))
		return nil
	}

	for _, demo := range demoQuizzes {
		id, err := s.ImportQuiz(ctx, demo.title, demo.questions)
		if err != nil {
			return err
		}
		glog.Infof("seeded demo quiz %d %q", id, demo.title)
	}
	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func foundOrNotFound(found bool, err error) error {
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
