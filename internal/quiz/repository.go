package quiz

import "context"

// Get methods report absence through the boolean rather than an error.
// Update and Delete methods return false when no row matched.
type QuizRepository interface {
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	GetQuiz(ctx context.Context, id int64) (Quiz, bool, error)
	CreateQuiz(ctx context.Context, title string) (int64, error)
	UpdateQuiz(ctx context.Context, id int64, title string) (bool, error)
	DeleteQuiz(ctx context.Context, id int64) (bool, error)
	QuizExists(ctx context.Context, id int64) (bool, error)
}

// QuestionRepository operations are scoped under the owning quiz id.
// CreateQuestion does not check that the quiz exists.
type QuestionRepository interface {
	ListQuestions(ctx context.Context, quizID int64) ([]Question, error)
	GetQuestion(ctx context.Context, quizID, id int64) (Question, bool, error)
	CreateQuestion(ctx context.Context, quizID int64, text string) (int64, error)
	UpdateQuestion(ctx context.Context, quizID, id int64, text string, correctAnswerID *int64) (bool, error)
	DeleteQuestion(ctx context.Context, quizID, id int64) (bool, error)
	QuestionExists(ctx context.Context, quizID, id int64) (bool, error)
}

// AnswerRepository operations are scoped under the owning question id.
// CreateAnswer does not check that the question exists.
type AnswerRepository interface {
	ListAnswers(ctx context.Context, questionID int64) ([]Answer, error)
	GetAnswer(ctx context.Context, questionID, id int64) (Answer, bool, error)
	CreateAnswer(ctx context.Context, questionID int64, text string) (int64, error)
	UpdateAnswer(ctx context.Context, questionID, id int64, text string) (bool, error)
	DeleteAnswer(ctx context.Context, questionID, id int64) (bool, error)
	AnswerExists(ctx context.Context, questionID, id int64) (bool, error)
}

type ResponseRepository interface {
	// RecordResponse checks that the question belongs to the quiz and the
	// answer to the question, scores the answer with ScoreAnswer and appends
	// a response row, all in one transaction. Failed checks return ErrNotFound.
	RecordResponse(ctx context.Context, submission Submission) (Response, error)
	ListResponses(ctx context.Context, quizID, userID int64) ([]Response, error)
}

type Store interface {
	QuizRepository
	QuestionRepository
	AnswerRepository
	ResponseRepository

	// ReadQuizSnapshot runs the four aggregator reads in one read transaction.
	// The boolean is false when the quiz does not exist.
	ReadQuizSnapshot(ctx context.Context, quizID, userID int64) (QuizSnapshot, bool, error)
	// CreateQuizWithQuestions creates a quiz, its questions and answers and
	// sets correct answers atomically.
	CreateQuizWithQuestions(ctx context.Context, title string, drafts []QuestionDraft) (int64, error)
	Ping(ctx context.Context) error
}
