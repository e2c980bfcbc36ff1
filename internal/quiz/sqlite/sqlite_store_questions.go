package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"quiz-service/internal/quiz"
)

func (s *SQLiteStore) ListQuestions(ctx context.Context, quizID int64) ([]quiz.Question, error) {
	return listQuestions(ctx, s.db, quizID)
}

func listQuestions(ctx context.Context, q queryer, quizID int64) ([]quiz.Question, error) {
	rows, err := q.QueryContext(
		ctx,
		`SELECT id, quiz_id, text, correct_answer_id
		 FROM questions
		 WHERE quiz_id = ?
		 ORDER BY id ASC`,
		quizID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "list questions of quiz %d", quizID)
	}
	defer rows.Close()

	questions := make([]quiz.Question, 0)
	for rows.Next() {
		var (
			item          quiz.Question
			correctAnswer sql.NullInt64
		)
		if err := rows.Scan(&item.ID, &item.QuizID, &item.Text, &correctAnswer); err != nil {
			return nil, errors.Wrap(err, "scan question")
		}
		item.CorrectAnswerID = nullableID(correctAnswer)
		questions = append(questions, item)
	}

	return questions, errors.Wrap(rows.Err(), "list questions")
}

func (s *SQLiteStore) GetQuestion(ctx context.Context, quizID, id int64) (quiz.Question, bool, error) {
	var (
		item          quiz.Question
		correctAnswer sql.NullInt64
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, quiz_id, text, correct_answer_id FROM questions WHERE id = ? AND quiz_id = ?`,
		id,
		quizID,
	).Scan(&item.ID, &item.QuizID, &item.Text, &correctAnswer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.Question{}, false, nil
		}
		return quiz.Question{}, false, errors.Wrapf(err, "get question %d", id)
	}
	item.CorrectAnswerID = nullableID(correctAnswer)
	return item, true, nil
}

func (s *SQLiteStore) CreateQuestion(ctx context.Context, quizID int64, text string) (int64, error) {
	return insertQuestion(ctx, s.db, quizID, text)
}

func insertQuestion(ctx context.Context, q queryer, quizID int64, text string) (int64, error) {
	result, err := q.ExecContext(ctx, `INSERT INTO questions (quiz_id, text) VALUES (?, ?)`, quizID, text)
	if err != nil {
		return 0, errors.Wrap(err, "create question")
	}
	id, err := result.LastInsertId()
	return id, errors.Wrap(err, "create question")
}

func (s *SQLiteStore) UpdateQuestion(ctx context.Context, quizID, id int64, text string, correctAnswerID *int64) (bool, error) {
	result, err := s.db.ExecContext(
		ctx,
		`UPDATE questions SET text = ?, correct_answer_id = ? WHERE id = ? AND quiz_id = ?`,
		text,
		correctAnswerID,
		id,
		quizID,
	)
	if err != nil {
		return false, errors.Wrapf(err, "update question %d", id)
	}
	return affected(result, "update question")
}

func (s *SQLiteStore) DeleteQuestion(ctx context.Context, quizID, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ? AND quiz_id = ?`, id, quizID)
	if err != nil {
		return false, errors.Wrapf(err, "delete question %d", id)
	}
	return affected(result, "delete question")
}

func (s *SQLiteStore) QuestionExists(ctx context.Context, quizID, id int64) (bool, error) {
	return exists(ctx, s.db, "question exists", `SELECT 1 FROM questions WHERE id = ? AND quiz_id = ? LIMIT 1`, id, quizID)
}
