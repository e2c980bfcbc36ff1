package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"quiz-service/internal/quiz"
)

func (s *SQLiteStore) ListAnswers(ctx context.Context, questionID int64) ([]quiz.Answer, error) {
	return scanAnswers(s.db.QueryContext(
		ctx,
		`SELECT id, question_id, text FROM answers WHERE question_id = ? ORDER BY id ASC`,
		questionID,
	))
}

func listQuizAnswers(ctx context.Context, q queryer, quizID int64) ([]quiz.Answer, error) {
	return scanAnswers(q.QueryContext(
		ctx,
		`SELECT a.id, a.question_id, a.text
		 FROM answers a
		 JOIN questions q ON q.id = a.question_id
		 WHERE q.quiz_id = ?
		 ORDER BY a.id ASC`,
		quizID,
	))
}

func scanAnswers(rows *sql.Rows, err error) ([]quiz.Answer, error) {
	if err != nil {
		return nil, errors.Wrap(err, "list answers")
	}
	defer rows.Close()

	answers := make([]quiz.Answer, 0)
	for rows.Next() {
		var item quiz.Answer
		if err := rows.Scan(&item.ID, &item.QuestionID, &item.Text); err != nil {
			return nil, errors.Wrap(err, "scan answer")
		}
		answers = append(answers, item)
	}

	return answers, errors.Wrap(rows.Err(), "list answers")
}

func (s *SQLiteStore) GetAnswer(ctx context.Context, questionID, id int64) (quiz.Answer, bool, error) {
	var item quiz.Answer
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, question_id, text FROM answers WHERE id = ? AND question_id = ?`,
		id,
		questionID,
	).Scan(&item.ID, &item.QuestionID, &item.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.Answer{}, false, nil
		}
		return quiz.Answer{}, false, errors.Wrapf(err, "get answer %d", id)
	}
	return item, true, nil
}

func (s *SQLiteStore) CreateAnswer(ctx context.Context, questionID int64, text string) (int64, error) {
	return insertAnswer(ctx, s.db, questionID, text)
}

func insertAnswer(ctx context.Context, q queryer, questionID int64, text string) (int64, error) {
	result, err := q.ExecContext(ctx, `INSERT INTO answers (question_id, text) VALUES (?, ?)`, questionID, text)
	if err != nil {
		return 0, errors.Wrap(err, "create answer")
	}
	id, err := result.LastInsertId()
	return id, errors.Wrap(err, "create answer")
}

func (s *SQLiteStore) UpdateAnswer(ctx context.Context, questionID, id int64, text string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE answers SET text = ? WHERE id = ? AND question_id = ?`, text, id, questionID)
	if err != nil {
		return false, errors.Wrapf(err, "update answer %d", id)
	}
	return affected(result, "update answer")
}

func (s *SQLiteStore) DeleteAnswer(ctx context.Context, questionID, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM answers WHERE id = ? AND question_id = ?`, id, questionID)
	if err != nil {
		return false, errors.Wrapf(err, "delete answer %d", id)
	}
	return affected(result, "delete answer")
}

func (s *SQLiteStore) AnswerExists(ctx context.Context, questionID, id int64) (bool, error) {
	return answerExists(ctx, s.db, questionID, id)
}

func answerExists(ctx context.Context, q queryer, questionID, id int64) (bool, error) {
	return exists(ctx, q, "answer exists", `SELECT 1 FROM answers WHERE id = ? AND question_id = ? LIMIT 1`, id, questionID)
}
